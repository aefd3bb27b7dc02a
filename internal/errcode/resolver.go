// Package errcode maps denial and validation reason strings to HTTP
// status codes. It is the single place that decides a status for a
// reason, so the gate and every domain service stay consistent.
package errcode

import (
	"net/http"
	"strings"
)

var exactMatches = map[string]int{
	"Invalid JSON data":                  http.StatusBadRequest,
	"Email and password are required":    http.StatusBadRequest,
	"Email and password cannot be empty": http.StatusBadRequest,
	"Invalid credentials":                http.StatusUnauthorized,
	"Account disabled":                   http.StatusForbidden,
	"Invalid or expired token":           http.StatusUnauthorized,

	// Gate messages. The token one must resolve before the generic
	// "Access denied" substring rule turns it into a 403.
	"Access denied. Invalid token.":              http.StatusUnauthorized,
	"Endpoint not configured for authentication": http.StatusForbidden,

	"Only agents can create transactions":          http.StatusForbidden,
	"Only administrators can update transactions":  http.StatusForbidden,
	"Only administrators can delete transactions":  http.StatusForbidden,
	"Transaction not found":                        http.StatusNotFound,
	"Agent must be assigned to an exchange office": http.StatusBadRequest,
	"Client not found":                             http.StatusNotFound,
	"You can only create transactions for clients of your exchange office": http.StatusForbidden,
	"You can only view transactions for clients of your exchange office":   http.StatusForbidden,
	"Source and target currencies must be different":                       http.StatusBadRequest,
	"Only agents can access this endpoint":                                 http.StatusForbidden,
	"Only agents and administrators can access this endpoint":              http.StatusForbidden,
	"Only administrators can access this endpoint":                         http.StatusForbidden,
	"Exchange office not found":                                            http.StatusNotFound,
	"Invalid JSON format":                                                  http.StatusBadRequest,
	"Exchange office ID is required":                                       http.StatusBadRequest,
	"Client ID is required":                                                http.StatusBadRequest,
	"Transaction ID is required":                                           http.StatusBadRequest,
}

// substringRules are checked in order; the first hit wins.
var substringRules = []struct {
	needle string
	code   int
}{
	{"not found", http.StatusNotFound},
	{"not assigned", http.StatusNotFound},

	{"already exists", http.StatusConflict},
	{"Cannot delete", http.StatusConflict},

	{"Only administrators", http.StatusForbidden},
	{"Only agents", http.StatusForbidden},
	{"You can only", http.StatusForbidden},
	{"can only", http.StatusForbidden},
	{"Access denied", http.StatusForbidden},
	{"Agent must be associated", http.StatusForbidden},

	{"Invalid token", http.StatusUnauthorized},
	{"expired token", http.StatusUnauthorized},

	{"Validation errors", http.StatusBadRequest},
	{"Missing required fields", http.StatusBadRequest},
	{"Missing required parameter", http.StatusBadRequest},
	{"Role must be", http.StatusBadRequest},
	{"Exchange office", http.StatusBadRequest},
	{"exchange office", http.StatusBadRequest},
	{"Current password is incorrect", http.StatusBadRequest},
	{"do not match", http.StatusBadRequest},
	{"Invalid email", http.StatusBadRequest},
	{"Invalid status value", http.StatusBadRequest},
	{"At least one field", http.StatusBadRequest},
	{"Entity validation errors", http.StatusBadRequest},
}

// Resolve returns the HTTP status for a reason string. Unknown reasons
// resolve to 400.
func Resolve(reason string) int {
	if code, ok := exactMatches[reason]; ok {
		return code
	}
	for _, rule := range substringRules {
		if strings.Contains(reason, rule.needle) {
			return rule.code
		}
	}
	return http.StatusBadRequest
}
