package validator

import "github.com/google/uuid"

// IsValidUUID4 reports whether s is a well-formed version 4 UUID.
// Path parameters are rejected before touching the database.
func IsValidUUID4(s string) bool {
	u, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return u.Version() == 4
}
