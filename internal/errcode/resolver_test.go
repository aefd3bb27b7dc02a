package errcode

import (
	"net/http"
	"testing"
)

func TestResolveExactMatches(t *testing.T) {
	cases := map[string]int{
		"Invalid credentials":                 http.StatusUnauthorized,
		"Account disabled":                    http.StatusForbidden,
		"Invalid or expired token":            http.StatusUnauthorized,
		"Transaction not found":               http.StatusNotFound,
		"Only agents can access this endpoint": http.StatusForbidden,
		"Agent must be assigned to an exchange office": http.StatusBadRequest,
		"Exchange office ID is required":               http.StatusBadRequest,
		// The gate's token message must not be swallowed by the
		// "Access denied" substring rule.
		"Access denied. Invalid token.":              http.StatusUnauthorized,
		"Endpoint not configured for authentication": http.StatusForbidden,
	}
	for reason, want := range cases {
		if got := Resolve(reason); got != want {
			t.Errorf("Resolve(%q) = %d, want %d", reason, got, want)
		}
	}
}

func TestResolveSubstringRules(t *testing.T) {
	cases := map[string]int{
		"Marketing campaign not found":                             http.StatusNotFound,
		"A user with this email already exists":                    http.StatusConflict,
		"Cannot delete exchange office: it has associated users or clients": http.StatusConflict,
		"Only administrators can view all exchange offices with clients":    http.StatusForbidden,
		"You can only update clients from your own exchange office":         http.StatusForbidden,
		"Access denied: not your exchange office":                           http.StatusForbidden,
		"Agent must be associated with an exchange office":                  http.StatusForbidden,
		"Invalid status value: frozen":                                      http.StatusBadRequest,
		"At least one field must be provided for update":                    http.StatusBadRequest,
		"something nobody ever wrote":                                       http.StatusBadRequest,
	}
	for reason, want := range cases {
		if got := Resolve(reason); got != want {
			t.Errorf("Resolve(%q) = %d, want %d", reason, got, want)
		}
	}
}

// Any text containing "already exists" must resolve to 409 regardless of
// what surrounds it.
func TestResolveConflictSurroundedText(t *testing.T) {
	if got := Resolve("prefix already exists suffix"); got != http.StatusConflict {
		t.Fatalf("Resolve = %d, want %d", got, http.StatusConflict)
	}
}

// "not found" outranks the forbidden phrases when a reason contains both.
func TestResolvePriorityOrder(t *testing.T) {
	if got := Resolve("Access denied: client not found"); got != http.StatusNotFound {
		t.Fatalf("Resolve = %d, want %d", got, http.StatusNotFound)
	}
}
