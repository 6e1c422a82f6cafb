package signup

import (
	"errors"
	"strings"
	"testing"
)

func validForm() Form {
	return Form{
		Username:        "john_doe",
		Phone:           "+1 (555) 123-4567",
		Password:        "Secret#123",
		ConfirmPassword: "Secret#123",
	}
}

func TestValidateAcceptsValidForm(t *testing.T) {
	errs := Validate(validForm())
	if errs.HasErrors() {
		t.Errorf("Validate(valid) = %v, want no errors", errs)
	}
	if errs.Err() != nil {
		t.Errorf("Err() = %v, want nil", errs.Err())
	}
}

func TestValidateSingleViolation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Form)
		field  Field
		rule   Rule
	}{
		{"username empty", func(f *Form) { f.Username = "" }, FieldUsername, UsernameRequired},
		{"username short", func(f *Form) { f.Username = "ab" }, FieldUsername, UsernameTooShort},
		{"username long", func(f *Form) { f.Username = strings.Repeat("a", 21) }, FieldUsername, UsernameTooLong},
		{"username charset", func(f *Form) { f.Username = "john-doe" }, FieldUsername, UsernameCharset},
		{"username space", func(f *Form) { f.Username = "john doe" }, FieldUsername, UsernameCharset},
		{"phone empty", func(f *Form) { f.Phone = "" }, FieldPhone, PhoneRequired},
		{"confirm mismatch", func(f *Form) { f.ConfirmPassword = "Secret#124" }, FieldConfirm, ConfirmMismatch},
	}
	passwordTests := []struct {
		name     string
		password string
		rule     Rule
	}{
		{"password short", "Ab#1", PasswordTooShort},
		{"password no upper", "secret#123", PasswordUppercase},
		{"password no lower", "SECRET#123", PasswordLowercase},
		{"password no digit", "Secret#abc", PasswordDigit},
		{"password no special", "Secret1234", PasswordSpecial},
	}
	for _, pt := range passwordTests {
		p := pt.password
		tests = append(tests, struct {
			name   string
			mutate func(*Form)
			field  Field
			rule   Rule
		}{pt.name, func(f *Form) { f.Password, f.ConfirmPassword = p, p }, FieldPassword, pt.rule})
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			errs := Validate(f)
			if len(errs) != 1 {
				t.Fatalf("Validate() = %v, want exactly one field", errs)
			}
			if errs[tt.field] != tt.rule {
				t.Errorf("errs[%s] = %q, want %q", tt.field, errs[tt.field], tt.rule)
			}
		})
	}
}

func TestValidateBoundaries(t *testing.T) {
	f := validForm()
	f.Username = "abc"
	if errs := Validate(f); errs.HasErrors() {
		t.Errorf("3-char username rejected: %v", errs)
	}
	f.Username = strings.Repeat("z", 20)
	if errs := Validate(f); errs.HasErrors() {
		t.Errorf("20-char username rejected: %v", errs)
	}
	f.Password, f.ConfirmPassword = "Abcde#12", "Abcde#12"
	if errs := Validate(f); errs.HasErrors() {
		t.Errorf("8-char password rejected: %v", errs)
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	errs := Validate(Form{Password: "x"})
	want := Errors{
		FieldUsername: UsernameRequired,
		FieldPhone:    PhoneRequired,
		FieldPassword: PasswordTooShort,
		FieldConfirm:  ConfirmMismatch,
	}
	if len(errs) != len(want) {
		t.Fatalf("Validate() = %v, want %v", errs, want)
	}
	for f, r := range want {
		if errs[f] != r {
			t.Errorf("errs[%s] = %q, want %q", f, errs[f], r)
		}
	}
}

func TestEmptyPasswordsMatch(t *testing.T) {
	errs := Validate(Form{Username: "bob", Phone: "1"})
	if _, ok := errs[FieldConfirm]; ok {
		t.Error("empty password and confirmation should not report a mismatch")
	}
	if errs[FieldPassword] != PasswordRequired {
		t.Errorf("errs[password] = %q, want required", errs[FieldPassword])
	}
}

func TestValidationError(t *testing.T) {
	err := Validate(Form{Username: "bob", Phone: "1"}).Err()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Err() = %T, want *ValidationError", err)
	}
	if verr.Fields.Field(FieldPassword) != "Password is required" {
		t.Errorf("message = %q", verr.Fields.Field(FieldPassword))
	}
	if verr.Fields.Field(FieldUsername) != "" {
		t.Error("valid field should have no message")
	}
	if !strings.Contains(err.Error(), "password: Password is required") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestPasswordLengthCountsUTF16Units(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{"astral pairs reach minimum", "Ab1#\U0001F600\U0001F600", true},
		{"one astral short", "Ab1#\U0001F600", false},
		{"bmp letters short", "Ab1#éé", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, ok := checkPassword(tt.password)
			if ok != tt.wantOK {
				t.Errorf("checkPassword(%q) = %q, %v, want ok %v", tt.password, rule, ok, tt.wantOK)
			}
			if !ok && rule != PasswordTooShort {
				t.Errorf("rule = %q, want %q", rule, PasswordTooShort)
			}
		})
	}
}
