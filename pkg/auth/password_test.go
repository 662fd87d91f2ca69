package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("pw123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "pw123" {
		t.Fatal("HashPassword() returned the plain text")
	}
	if !CheckPassword(hash, "pw123") {
		t.Error("CheckPassword() = false for the right password")
	}
	if CheckPassword(hash, "pw124") {
		t.Error("CheckPassword() = true for the wrong password")
	}
}

func TestHashPasswordRejectsOverlongBytes(t *testing.T) {
	if _, err := HashPassword(strings.Repeat("é", 40)); !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("HashPassword(80 bytes) error = %v, want ErrPasswordTooLong", err)
	}
	if _, err := HashPassword(strings.Repeat("a", MaxPasswordBytes)); err != nil {
		t.Errorf("HashPassword(72 bytes) error = %v", err)
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	if _, ok := FromContext(ctx); ok {
		t.Fatal("FromContext() found a principal in an empty context")
	}

	ctx = WithPrincipal(ctx, MemberPrincipal{ID: 2, GymID: 5})
	if _, ok := GymFromContext(ctx); ok {
		t.Error("GymFromContext() matched a member principal")
	}
	m, ok := MemberFromContext(ctx)
	if !ok || m.TenantID() != 5 {
		t.Errorf("MemberFromContext() = %+v, %v", m, ok)
	}
}

func TestIsValidRole(t *testing.T) {
	for _, r := range MemberRoles {
		if !IsValidRole(r) {
			t.Errorf("IsValidRole(%q) = false", r)
		}
	}
	if IsValidRole("owner") {
		t.Error(`IsValidRole("owner") = true`)
	}
}
