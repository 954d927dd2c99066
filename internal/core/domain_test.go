package core

import (
	"errors"
	"testing"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-31")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.String() != "2024-01-31" || d.MonthKey() != "2024-01" {
		t.Fatalf("unexpected date %s / %s", d, d.MonthKey())
	}
	if _, err := ParseDate("31/01/2024"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateMonth(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2024-01", true},
		{"2024-12", true},
		{"2024-13", false},
		{"2024-1", false},
		{"2024-01-01", false},
		{"", false},
	}
	for _, tc := range cases {
		err := ValidateMonth(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("%q expected ok, got %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestRegistrationValidate(t *testing.T) {
	good := Registration{FirstName: "Anita", LastName: "Rao", Age: "30", Email: "anita@example.com", Username: "anita"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bad := Registration{FirstName: "A1", LastName: "Rao", Age: "12", Email: "nope", Username: "ab"}
	err := bad.Validate()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	want := []string{
		"Name must contain only alphabets.",
		"Name must be at least 3 characters long.",
		"User must be at least 15 years old.",
		"Invalid email format. Example: name@example.com",
		"Username must be at least 3 chars.",
	}
	if len(verrs) != len(want) {
		t.Fatalf("expected %d errors, got %v", len(want), verrs)
	}
	for i := range want {
		if verrs[i] != want[i] {
			t.Fatalf("error %d: expected %q, got %q", i, want[i], verrs[i])
		}
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"anita@example.com", true},
		{"a@b.co", true},
		{"first.last+tag@mail.example.org", true},
		{"x@y.c", false},
		{"a@b.c1", false},
		{"a@b", false},
		{"nope", false},
		{"", false},
	}
	for _, tt := range tests {
		errs := ValidateEmail(tt.email)
		if tt.ok && len(errs) != 0 {
			t.Errorf("ValidateEmail(%q) = %v, want ok", tt.email, errs)
		}
		if !tt.ok && len(errs) != 1 {
			t.Errorf("ValidateEmail(%q) = %v, want one error", tt.email, errs)
		}
	}
}

func TestValidateAge(t *testing.T) {
	if errs := ValidateAge("abc"); len(errs) != 1 || errs[0] != "Age must be a number." {
		t.Fatalf("unexpected %v", errs)
	}
	if errs := ValidateAge("81"); len(errs) != 1 || errs[0] != "Age cannot be more than 80." {
		t.Fatalf("unexpected %v", errs)
	}
	if errs := ValidateAge("15"); len(errs) != 0 {
		t.Fatalf("unexpected %v", errs)
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		in   string
		errs int
	}{
		{"s3cret!pass", 0},
		{"short1!", 1},
		{"12345678!", 1},
		{"password!", 1},
		{"password1", 1},
		{"pass,word1", 0},
		{"pass|word1", 0},
		{"", 4},
	}
	for _, tc := range cases {
		if got := ValidatePassword(tc.in); len(got) != tc.errs {
			t.Fatalf("%q expected %d errors, got %v", tc.in, tc.errs, got)
		}
	}
}
