package prefs

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Theme is the active colour palette.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
	Black Theme = "black"
)

// Themes lists the palettes in cycle order.
var Themes = []Theme{Light, Dark, Black}

// Next returns the theme that follows t in the cycle light, dark, black.
// An unknown theme restarts the cycle at light.
func (t Theme) Next() Theme {
	switch t {
	case Light:
		return Dark
	case Dark:
		return Black
	default:
		return Light
	}
}

// Valid reports whether t is a known palette.
func (t Theme) Valid() bool {
	return t == Light || t == Dark || t == Black
}

// Language is a supported display language code.
type Language string

const (
	English Language = "en"
	French  Language = "fr"
	Spanish Language = "es"
	German  Language = "de"
	Russian Language = "ru"
	Amharic Language = "am"
)

// Languages lists the supported languages in menu order.
var Languages = []Language{English, French, Spanish, German, Russian, Amharic}

var languageTags = map[Language]language.Tag{
	English: language.English,
	French:  language.French,
	Spanish: language.Spanish,
	German:  language.German,
	Russian: language.Russian,
	Amharic: language.Amharic,
}

// Valid reports whether l is in the supported set.
func (l Language) Valid() bool {
	_, ok := languageTags[l]
	return ok
}

// Tag returns the BCP 47 tag for l, or language.Und if unsupported.
func (l Language) Tag() language.Tag {
	if tag, ok := languageTags[l]; ok {
		return tag
	}
	return language.Und
}

// Defaults used when nothing valid is stored.
const (
	DefaultTheme    = Light
	DefaultLanguage = English
)

var (
	ErrUnknownTheme    = errors.New("prefs: unknown theme")
	ErrUnknownLanguage = errors.New("prefs: unknown language")
)

// ParseTheme parses a theme code.
func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
	}
	return t, nil
}

// ParseLanguage parses a language code. Only the exact two-letter codes of
// the supported set are accepted; regional variants like "fr-CA" resolve to
// their base language.
func ParseLanguage(s string) (Language, error) {
	code := strings.ToLower(strings.TrimSpace(s))
	if l := Language(code); l.Valid() {
		return l, nil
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
	}
	base, conf := tag.Base()
	if conf == language.No {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
	}
	if l := Language(base.String()); l.Valid() {
		return l, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
}
