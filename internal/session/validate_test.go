package session

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "main", false},
		{"digits", "work2", false},
		{"inner hyphen", "alt-account", false},
		{"inner underscore", "alt_account", false},
		{"leading digit", "2nd", false},
		{"max length", strings.Repeat("x", MaxNameLen), false},
		{"empty", "", true},
		{"leading hyphen", "-main", true},
		{"leading underscore", "_main", true},
		{"uppercase", "Main", true},
		{"dot", "a.b", true},
		{"path", "../main", true},
		{"too long", strings.Repeat("x", MaxNameLen+1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidName) {
				t.Errorf("error %v does not match ErrInvalidName", err)
			}
		})
	}
}

func TestResolvePrecedence(t *testing.T) {
	t.Setenv("TGC_HOME", t.TempDir())
	t.Setenv("TGC_SESSION", "")

	if got := Resolve(""); got != DefaultSessionName {
		t.Errorf("Resolve() = %q, want %q", got, DefaultSessionName)
	}

	t.Setenv("TGC_SESSION", "work")
	if got := Resolve(""); got != "work" {
		t.Errorf("Resolve() with TGC_SESSION = %q, want work", got)
	}
	if got := Resolve("alt"); got != "alt" {
		t.Errorf("Resolve(alt) = %q, want alt", got)
	}
}
