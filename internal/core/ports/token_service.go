package ports

// Identity is the caller identity reconstructed from a validated token.
type Identity struct {
	Username string
	Roles    []string
}

// HasRole reports whether the identity carries the given role.
func (i Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// TokenService issues and validates signed bearer tokens.
type TokenService interface {
	// Issue produces a signed token with subject=username and an
	// "authorities" claim listing the roles.
	Issue(username string, roles []string) (string, error)
	// Validate verifies signature and expiry. Structural, signature and
	// expiry failures all collapse to domain.ErrInvalidToken.
	Validate(token string) (Identity, error)
}
