// Package access decides whether a caller may read an Instance given
// ownership, visibility and the password policy. It is pure: no store access,
// no mutation.
package access

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"mediavault/internal/model"
)

var (
	// ErrPasswordRequired is returned when a private instance is accessed by a
	// non-owner without supplying a password.
	ErrPasswordRequired = errors.New("password is required")
	// ErrPasswordInvalid is returned when the supplied password does not match
	// the stored hash.
	ErrPasswordInvalid = errors.New("invalid password")
)

// Authorize grants or denies read access to an instance.
//
// The owner is granted unconditionally regardless of any supplied password.
// Public instances are granted to everyone. Private instances require a
// non-empty password that verifies against the stored bcrypt hash; bcrypt's
// comparison is constant-time.
func Authorize(inst *model.Instance, callerID, suppliedPassword string) error {
	if inst.OwnerID == callerID {
		return nil
	}
	if inst.Visibility == model.VisibilityPublic {
		return nil
	}
	if strings.TrimSpace(suppliedPassword) == "" {
		return ErrPasswordRequired
	}
	if !VerifyPassword(inst.PasswordHash, suppliedPassword) {
		return ErrPasswordInvalid
	}
	return nil
}

// HashPassword produces a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether password matches the stored hash.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
