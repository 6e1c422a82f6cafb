package profile

import (
	"errors"
	"strings"
	"testing"

	"github.com/matheus3301/tgclone/internal/contacts"
)

func TestNewDefaultsToOnline(t *testing.T) {
	u := New("u1", "John")
	if u.Status != contacts.StatusOnline {
		t.Errorf("Status = %q, want online", u.Status)
	}
	if u.Bio != "" || u.Avatar != "" {
		t.Errorf("optional fields should be empty: %+v", u)
	}
}

func TestUpdate(t *testing.T) {
	base := New("u1", "John")
	tests := []struct {
		name       string
		edit       Edit
		wantErr    error
		wantName   string
		wantStatus contacts.Status
	}{
		{"valid", Edit{Name: "  Jane ", Bio: "hi", Status: contacts.StatusBusy}, nil, "Jane", contacts.StatusBusy},
		{"blank name", Edit{Name: "   ", Status: contacts.StatusAway}, ErrNameRequired, "John", contacts.StatusOnline},
		{"bio at limit", Edit{Name: "J", Bio: strings.Repeat("é", BioMaxLen)}, nil, "J", contacts.StatusOnline},
		{"bio too long", Edit{Name: "J", Bio: strings.Repeat("a", BioMaxLen+1)}, ErrBioTooLong, "John", contacts.StatusOnline},
		{"unknown status", Edit{Name: "J", Status: "invisible"}, nil, "J", contacts.StatusOnline},
		{"offline", Edit{Name: "J", Status: contacts.StatusOffline}, nil, "J", contacts.StatusOffline},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Update(base, tt.edit)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got.Name != tt.wantName || got.Status != tt.wantStatus {
				t.Errorf("Update() = %+v, want name %q status %q", got, tt.wantName, tt.wantStatus)
			}
			if got.ID != "u1" {
				t.Errorf("ID changed to %q", got.ID)
			}
		})
	}
}

func TestEditorApply(t *testing.T) {
	ed := NewEditor(New("u1", "John"))
	if _, err := ed.Apply(Edit{Name: ""}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("err = %v", err)
	}
	if ed.User().Name != "John" {
		t.Error("failed edit should not change the user")
	}

	u, err := ed.Apply(Edit{Name: "Johnny", Bio: "bio", Status: contacts.StatusAway})
	if err != nil {
		t.Fatal(err)
	}
	if ed.User() != u {
		t.Errorf("User() = %+v, want %+v", ed.User(), u)
	}
	if got := EditOf(u); got.Name != "Johnny" || got.Bio != "bio" || got.Status != contacts.StatusAway {
		t.Errorf("EditOf() = %+v", got)
	}
}

func TestStatusesIsACopy(t *testing.T) {
	s := Statuses()
	if len(s) != 4 || s[0] != contacts.StatusOnline {
		t.Fatalf("Statuses() = %v", s)
	}
	s[0] = "mutated"
	if Statuses()[0] != contacts.StatusOnline {
		t.Error("Statuses() exposes shared state")
	}
}

func TestShareCode(t *testing.T) {
	u := New("u 1", "John Doe")
	if got := ShareLink(u); got != "tgclone://user/u%201?name=John+Doe" {
		t.Errorf("ShareLink() = %q", got)
	}
	code, err := ShareCode(u, "  ")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(code, "\n"), "\n")
	if len(lines) < 10 {
		t.Errorf("QR code has %d lines, want a full symbol", len(lines))
	}
	for _, l := range lines {
		if !strings.HasPrefix(l, "  ") {
			t.Fatalf("line %q missing indent", l)
		}
	}
}

func TestHalfBlocks(t *testing.T) {
	bitmap := [][]bool{
		{true, true, false, false},
		{true, false, true, false},
		{false, true, false, false},
	}
	want := "█▀▄ \n ▀  \n"
	if got := halfBlocks(bitmap, ""); got != want {
		t.Errorf("halfBlocks() = %q, want %q", got, want)
	}
}
