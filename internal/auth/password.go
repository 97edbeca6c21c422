package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/staff-roster/internal/config"
)

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// AdminGate validates the admin password that gates destructive roster
// operations (deletion and history clearing).
type AdminGate struct {
	hash      string
	plaintext string
}

// NewAdminGate builds the gate from config. A bcrypt hash takes
// precedence; the plaintext value only serves dev setups.
func NewAdminGate(cfg config.AuthConfig) *AdminGate {
	return &AdminGate{hash: cfg.AdminPasswordHash, plaintext: cfg.AdminPassword}
}

// Validate reports whether the supplied password is the admin password.
func (g *AdminGate) Validate(password string) bool {
	if password == "" {
		return false
	}
	if g.hash != "" {
		return ComparePassword(g.hash, password) == nil
	}
	if g.plaintext == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(g.plaintext), []byte(password)) == 1
}
