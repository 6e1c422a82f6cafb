// Package i18n translates UI strings using embedded YAML catalogs.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"sync"

	"github.com/matheus3301/tgclone/internal/prefs"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Bundle holds every parsed catalog. It is immutable after Load.
type Bundle struct {
	catalog *catalog.Builder
	keys    map[prefs.Language]map[string]struct{}
}

var (
	defaultOnce   sync.Once
	defaultBundle *Bundle
	defaultErr    error
)

// Default returns the bundle built from the embedded catalogs.
func Default() (*Bundle, error) {
	defaultOnce.Do(func() {
		defaultBundle, defaultErr = Load()
	})
	return defaultBundle, defaultErr
}

// Load parses locales/<code>.yaml for every supported language.
func Load() (*Bundle, error) {
	b := &Bundle{
		catalog: catalog.NewBuilder(),
		keys:    make(map[prefs.Language]map[string]struct{}),
	}
	for _, lang := range prefs.Languages {
		name := path.Join("locales", string(lang)+".yaml")
		data, err := localeFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		var entries map[string]string
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		keys := make(map[string]struct{}, len(entries))
		for key, msg := range entries {
			if err := b.catalog.SetString(lang.Tag(), key, msg); err != nil {
				return nil, fmt.Errorf("%s: %s: %w", name, key, err)
			}
			keys[key] = struct{}{}
		}
		b.keys[lang] = keys
	}
	return b, nil
}

// Has reports whether lang defines key.
func (b *Bundle) Has(lang prefs.Language, key string) bool {
	_, ok := b.keys[lang][key]
	return ok
}

// keyCount returns the number of keys defined for lang.
func (b *Bundle) keyCount(lang prefs.Language) int {
	return len(b.keys[lang])
}

// Translator renders keys in one language at a time.
type Translator struct {
	bundle *Bundle

	mu       sync.RWMutex
	lang     prefs.Language
	printer  *message.Printer
	fallback *message.Printer
}

// New returns a translator bound to lang. An unsupported lang binds English.
func New(b *Bundle, lang prefs.Language) *Translator {
	t := &Translator{
		bundle:   b,
		fallback: message.NewPrinter(prefs.English.Tag(), message.Catalog(b.catalog)),
	}
	t.SetLanguage(lang)
	return t
}

// Language returns the bound language.
func (t *Translator) Language() prefs.Language {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lang
}

// SetLanguage re-binds the translator.
func (t *Translator) SetLanguage(lang prefs.Language) {
	if !lang.Valid() {
		lang = prefs.English
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lang = lang
	t.printer = message.NewPrinter(lang.Tag(), message.Catalog(t.bundle.catalog))
}

// T translates key, formatting args with printf verbs. A key missing from
// the bound language falls back to English, and then to the key itself.
func (t *Translator) T(key string, args ...any) string {
	t.mu.RLock()
	lang, p := t.lang, t.printer
	t.mu.RUnlock()

	switch {
	case t.bundle.Has(lang, key):
		return p.Sprintf(key, args...)
	case t.bundle.Has(prefs.English, key):
		return t.fallback.Sprintf(key, args...)
	default:
		return key
	}
}
