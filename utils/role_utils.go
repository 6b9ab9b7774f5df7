package utils

import (
	"strings"
)

var ValidUserRoles = map[string]bool{
	"admin":   true,
	"staff":   true,
	"student": true,
}

// StaffRoles may read forecasts.
var StaffRoles = map[string]bool{
	"admin": true,
	"staff": true,
}

// ValidateAndNormalizeRole validates and normalizes a role string.
// Returns the normalized role (lowercase) and a boolean indicating if it's valid.
func ValidateAndNormalizeRole(role string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(role))
	return normalized, ValidUserRoles[normalized]
}

// IsValidRole checks if a role is valid without normalizing it
func IsValidRole(role string) bool {
	return ValidUserRoles[strings.ToLower(role)]
}

// IsStaffRole reports whether the role may access staff dashboards.
func IsStaffRole(role string) bool {
	normalized, ok := ValidateAndNormalizeRole(role)
	return ok && StaffRoles[normalized]
}
