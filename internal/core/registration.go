package core

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationErrors carries the human readable reasons an input was rejected.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return "validation failed: " + strings.Join(v, "; ")
}

func (v ValidationErrors) Unwrap() error {
	return ErrValidation
}

// Registration is the profile data collected when a user signs up.
type Registration struct {
	FirstName string
	LastName  string
	Age       string
	Email     string
	Username  string
}

// tag params use 0x2C and 0x7C for ',' and '|'
const (
	letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits  = "0123456789"
	symbols = `!@#$%^&*()0x2C.?":{}0x7C<>`
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("tld", hasLetterTLD); err != nil {
		panic(err)
	}
	return v
}

// hasLetterTLD requires the domain after '@' to end in a dot and at least
// two ASCII letters.
func hasLetterTLD(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	at := strings.LastIndexByte(s, '@')
	if at < 0 {
		return false
	}
	domain := s[at+1:]
	dot := strings.LastIndexByte(domain, '.')
	if dot < 0 {
		return false
	}
	tld := domain[dot+1:]
	if len(tld) < 2 {
		return false
	}
	for _, c := range tld {
		if !strings.ContainsRune(letters, c) {
			return false
		}
	}
	return true
}

type rule struct {
	tag string
	msg string
}

func check(value any, rules ...rule) []string {
	var out []string
	for _, r := range rules {
		if err := validate.Var(value, r.tag); err != nil {
			out = append(out, r.msg)
		}
	}
	return out
}

func ValidateName(name string) []string {
	return check(name,
		rule{"alpha", "Name must contain only alphabets."},
		rule{"min=3", "Name must be at least 3 characters long."},
	)
}

func ValidateAge(age string) []string {
	if errs := check(age, rule{"number", "Age must be a number."}); len(errs) > 0 {
		return errs
	}
	n, err := strconv.Atoi(age)
	if err != nil {
		return []string{"Age must be a number."}
	}
	return check(n,
		rule{"gte=15", "User must be at least 15 years old."},
		rule{"lte=80", "Age cannot be more than 80."},
	)
}

func ValidateEmail(email string) []string {
	return check(email, rule{"required,email,tld", "Invalid email format. Example: name@example.com"})
}

func ValidateUsername(username string) []string {
	return check(username, rule{"min=3", "Username must be at least 3 chars."})
}

func ValidatePassword(password string) []string {
	return check(password,
		rule{"min=8", "Password must be at least 8 characters."},
		rule{"containsany=" + letters, "Password must contain at least one letter."},
		rule{"containsany=" + digits, "Password must contain at least one digit."},
		rule{"containsany=" + symbols, "Password must contain at least one special symbol."},
	)
}

// Validate checks every field and returns all problems at once.
func (r Registration) Validate() error {
	var errs ValidationErrors
	errs = append(errs, ValidateName(r.FirstName)...)
	errs = append(errs, ValidateName(r.LastName)...)
	errs = append(errs, ValidateAge(r.Age)...)
	errs = append(errs, ValidateEmail(r.Email)...)
	errs = append(errs, ValidateUsername(r.Username)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Profile converts a validated registration into the stored profile.
func (r Registration) Profile() Profile {
	age, _ := strconv.Atoi(r.Age)
	return Profile{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Age:       age,
		Email:     r.Email,
		Username:  r.Username,
	}
}
