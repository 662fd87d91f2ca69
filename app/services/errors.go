// Package services holds gymcore's business rules: login, tenant-scoped
// member and plan management, plan assignment and super-admin operations.
package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/gymstack/gymcore/pkg/auth"
)

var (
	// ErrInvalidCredentials is the single login failure; it never says which
	// of email or password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already in use")
	// ErrNotFound covers records of other gyms as well as missing ones.
	ErrNotFound = errors.New("not found")
	// ErrCrossTenant is a write that would link or move data across gyms.
	ErrCrossTenant     = errors.New("cross-tenant access")
	ErrTooManyAttempts = errors.New("too many login attempts")
)

// ValidationError carries field-level messages for a 422 response.
type ValidationError struct {
	Fields map[string]string
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// notFound maps gorm's missing-record error to ErrNotFound and wraps any
// other store error with op.
func notFound(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// hashPassword hashes plain, reporting an over-long password as a
// validation failure on the password field.
func hashPassword(op, plain string) (string, error) {
	hash, err := auth.HashPassword(plain)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", invalid("password", fmt.Sprintf("The password must be at most %d bytes.", auth.MaxPasswordBytes))
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return hash, nil
}
