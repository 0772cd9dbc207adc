package shared

import "github.com/google/uuid"

// AdminGroup is the identity-provider group that bypasses ownership checks
const AdminGroup = "admin"

// Caller identifies the authenticated user on whose behalf an operation
// runs. UserID is the identity-provider subject; Groups come from the
// token's group claim.
type Caller struct {
	UserID uuid.UUID
	Groups []string
}

// IsAdmin returns true if the caller belongs to the admin group
func (c Caller) IsAdmin() bool {
	for _, g := range c.Groups {
		if g == AdminGroup {
			return true
		}
	}
	return false
}

// CanModify returns true if the caller owns the record or is an admin
func (c Caller) CanModify(ownerID uuid.UUID) bool {
	return c.UserID == ownerID || c.IsAdmin()
}
