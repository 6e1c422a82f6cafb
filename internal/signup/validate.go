package signup

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf16"
)

// Form is the sign-up input as typed by the user.
type Form struct {
	Username        string
	Phone           string
	Password        string
	ConfirmPassword string
}

// Field names a form input.
type Field string

const (
	FieldUsername Field = "username"
	FieldPhone    Field = "phone"
	FieldPassword Field = "password"
	FieldConfirm  Field = "confirm_password"
)

// Fields lists the form inputs in display order.
var Fields = []Field{FieldUsername, FieldPhone, FieldPassword, FieldConfirm}

// Rule identifies a failed validation rule. Its string value doubles as the
// translation key for the message.
type Rule string

const (
	UsernameRequired  Rule = "err_username_required"
	UsernameTooShort  Rule = "err_username_min"
	UsernameTooLong   Rule = "err_username_max"
	UsernameCharset   Rule = "err_username_charset"
	PhoneRequired     Rule = "err_phone_required"
	PasswordRequired  Rule = "err_password_required"
	PasswordTooShort  Rule = "err_password_min"
	PasswordUppercase Rule = "err_password_upper"
	PasswordLowercase Rule = "err_password_lower"
	PasswordDigit     Rule = "err_password_digit"
	PasswordSpecial   Rule = "err_password_special"
	ConfirmMismatch   Rule = "err_password_mismatch"

	// UsernameTaken is reported by the registrar, never by Validate.
	UsernameTaken Rule = "err_username_taken"
)

var messages = map[Rule]string{
	UsernameRequired:  "Username is required",
	UsernameTooShort:  "Username must be at least 3 characters",
	UsernameTooLong:   "Username must be at most 20 characters",
	UsernameCharset:   "Username can only contain letters, numbers, and underscores",
	PhoneRequired:     "Phone number is required",
	PasswordRequired:  "Password is required",
	PasswordTooShort:  "Password must be at least 8 characters",
	PasswordUppercase: "Password must contain at least one uppercase letter",
	PasswordLowercase: "Password must contain at least one lowercase letter",
	PasswordDigit:     "Password must contain at least one number",
	PasswordSpecial:   "Password must contain at least one special character",
	ConfirmMismatch:   "Passwords do not match",
	UsernameTaken:     "This username is already taken",
}

// Message returns the English text for r.
func (r Rule) Message() string {
	if m, ok := messages[r]; ok {
		return m
	}
	return string(r)
}

const (
	usernameMin = 3
	usernameMax = 20
	passwordMin = 8
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Errors maps each invalid field to the first rule it failed.
type Errors map[Field]Rule

// HasErrors reports whether any field failed.
func (e Errors) HasErrors() bool { return len(e) > 0 }

// Field returns the English message for f, or "" when f is valid.
func (e Errors) Field(f Field) string {
	r, ok := e[f]
	if !ok {
		return ""
	}
	return r.Message()
}

// Err returns nil when the form is valid, otherwise a *ValidationError.
func (e Errors) Err() error {
	if !e.HasErrors() {
		return nil
	}
	return &ValidationError{Fields: e}
}

// ValidationError reports per-field sign-up violations.
type ValidationError struct {
	Fields Errors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		keys = append(keys, string(f))
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[Field(k)].Message())
	}
	return "signup: invalid form: " + strings.Join(parts, "; ")
}

// Validate checks every field and records only the first failing rule per
// field. It never stops early across fields.
func Validate(f Form) Errors {
	errs := Errors{}
	if r, ok := checkUsername(f.Username); !ok {
		errs[FieldUsername] = r
	}
	if f.Phone == "" {
		errs[FieldPhone] = PhoneRequired
	}
	if r, ok := checkPassword(f.Password); !ok {
		errs[FieldPassword] = r
	}
	if f.Password != f.ConfirmPassword {
		errs[FieldConfirm] = ConfirmMismatch
	}
	return errs
}

// length counts UTF-16 code units, so characters outside the Basic
// Multilingual Plane count twice toward the length bounds.
func length(s string) int {
	return len(utf16.Encode([]rune(s)))
}

func checkUsername(s string) (Rule, bool) {
	n := length(s)
	switch {
	case s == "":
		return UsernameRequired, false
	case n < usernameMin:
		return UsernameTooShort, false
	case n > usernameMax:
		return UsernameTooLong, false
	case !usernamePattern.MatchString(s):
		return UsernameCharset, false
	}
	return "", true
}

func checkPassword(s string) (Rule, bool) {
	switch {
	case s == "":
		return PasswordRequired, false
	case length(s) < passwordMin:
		return PasswordTooShort, false
	case !strings.ContainsFunc(s, isUpper):
		return PasswordUppercase, false
	case !strings.ContainsFunc(s, isLower):
		return PasswordLowercase, false
	case !strings.ContainsFunc(s, isDigit):
		return PasswordDigit, false
	case !strings.ContainsFunc(s, isSpecial):
		return PasswordSpecial, false
	}
	return "", true
}

// Character classes are ASCII-only; anything else counts as special.
func isUpper(r rune) bool   { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool   { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool   { return r >= '0' && r <= '9' }
func isSpecial(r rune) bool { return !isUpper(r) && !isLower(r) && !isDigit(r) }
