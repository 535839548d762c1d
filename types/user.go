package types

// AuthUser is the identity carried in tokens and the gin context
type AuthUser struct {
	ID    uint   `json:"userid"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// HasRole reports whether the user holds one of roles; no roles means any
func (u AuthUser) HasRole(roles ...string) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
