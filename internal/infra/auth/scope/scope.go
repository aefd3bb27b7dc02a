// Package scope is the single tenant-scoping predicate every domain
// service applies after the gate: administrators see every exchange
// office, agents only their own.
package scope

import "exsys/internal/domain"

const denyReason = "Access denied: not your exchange office"

// Check permits the principal to touch a resource owned by officeID.
// Admins always pass; agents pass only for their own office.
func Check(principal domain.Principal, officeID string) error {
	if principal.IsAdmin() {
		return nil
	}
	if principal.OfficeID != "" && principal.OfficeID == officeID {
		return nil
	}
	return domain.Denial(denyReason)
}

// CheckWithReason behaves like Check but reports a caller-supplied
// reason, so services keep their established denial wording.
func CheckWithReason(principal domain.Principal, officeID, reason string) error {
	if err := Check(principal, officeID); err != nil {
		return domain.Denial(reason)
	}
	return nil
}

// BindOffice decides the office a newly created resource belongs to.
// Agents cannot choose: the resource is bound to their own office and
// any requested value is ignored. Admins carry no implicit office, so
// the request must name one.
func BindOffice(principal domain.Principal, requestedOfficeID string) (string, error) {
	if principal.IsAgent() {
		if principal.OfficeID == "" {
			return "", domain.Denial("Agent must be assigned to an exchange office")
		}
		return principal.OfficeID, nil
	}
	if requestedOfficeID == "" {
		return "", domain.Denial("Exchange office ID is required")
	}
	return requestedOfficeID, nil
}

// ListFilter narrows list and aggregate queries: it returns the office
// id the query must be constrained to, or "" when the principal may see
// every office.
func ListFilter(principal domain.Principal) string {
	if principal.IsAdmin() {
		return ""
	}
	return principal.OfficeID
}
