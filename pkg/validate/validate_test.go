package validate_test

import (
	"strings"
	"testing"

	"github.com/gymstack/gymcore/pkg/validate"
)

type memberInput struct {
	Name     string  `json:"name"     validate:"required,max=20"`
	Email    string  `json:"email"    validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     string  `json:"role"     validate:"nullable,in=user|gym_admin"`
	Phone    *string `json:"phone"    validate:"nullable,max=5"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(memberInput{
		Name:     "Ann",
		Email:    "ann@example.com",
		Password: "pw1234",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(&memberInput{Name: "   "})
	for _, field := range []string{"name", "email", "password"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected %s to be required, got %v", field, errs)
		}
	}
}

func TestEmailRule(t *testing.T) {
	errs := validate.Struct(memberInput{Name: "a", Email: "not-an-email", Password: "pw1234"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
}

func TestMinMax(t *testing.T) {
	errs := validate.Struct(memberInput{Name: "a", Email: "a@b.co", Password: "123"})
	if got := errs["password"]; got != "The password must be at least 6 characters." {
		t.Errorf("password error = %q", got)
	}

	type qty struct {
		Sets int `json:"sets" validate:"min=1,max=20"`
	}
	if errs := validate.Struct(qty{Sets: 25}); errs["sets"] != "The sets must be at most 20." {
		t.Errorf("sets error = %q", errs["sets"])
	}
}

func TestMaxBytesCountsBytesNotRunes(t *testing.T) {
	type login struct {
		Password string `json:"password" validate:"required,max=72,maxbytes=72"`
	}

	wide := strings.Repeat("é", 40)
	errs := validate.Struct(login{Password: wide})
	if got := errs["password"]; got != "The password must be at most 72 bytes." {
		t.Errorf("password error = %q (len %d bytes)", got, len(wide))
	}

	if errs := validate.Struct(login{Password: strings.Repeat("é", 36)}); validate.HasErrors(errs) {
		t.Errorf("72-byte password should pass, got %v", errs)
	}
}

func TestInRule(t *testing.T) {
	errs := validate.Struct(memberInput{Name: "a", Email: "a@b.co", Password: "pw1234", Role: "super_admin"})
	if _, ok := errs["role"]; !ok {
		t.Error("expected role outside the allowed set to fail")
	}
}

func TestNullablePointer(t *testing.T) {
	long := "123456789"
	errs := validate.Struct(memberInput{Name: "a", Email: "a@b.co", Password: "pw1234", Phone: &long})
	if _, ok := errs["phone"]; !ok {
		t.Error("expected phone max to apply through the pointer")
	}
}

func TestDive(t *testing.T) {
	type meal struct {
		Name string `json:"name" validate:"required"`
	}
	type plan struct {
		Meals []meal `json:"meals" validate:"dive"`
	}

	errs := validate.Struct(plan{Meals: []meal{{Name: "Oats"}, {}}})
	if _, ok := errs["meals.1.name"]; !ok {
		t.Errorf("expected meals.1.name error, got %v", errs)
	}
	if _, ok := errs["meals.0.name"]; ok {
		t.Error("meals.0.name should be valid")
	}
}
