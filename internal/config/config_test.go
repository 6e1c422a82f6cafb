package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.DefaultSession = "work"
	cfg.Service = ServiceRemote
	cfg.SearchTimeout = 3 * time.Second
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Load() = %+v, want %+v", loaded, cfg)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("/nonexistent/config.toml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "default_session = \"work\"\nsearch_timeout = \"750ms\"\n"
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultSession != "work" || cfg.SearchTimeout != 750*time.Millisecond {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.Service != ServiceMock || cfg.SearchLimit != 20 || cfg.MockDelay != time.Second {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestSavePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := Save(path, Default()); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	perm := info.Mode().Perm()
	if perm != 0600 {
		t.Errorf("file permission = %o, want 0600", perm)
	}
}

func TestResolveMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Resolve(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *Default() {
		t.Errorf("Resolve() = %+v, want defaults", cfg)
	}
}

func TestResolveEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("service = \"mock\"\nsearch_limit = 5\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TGC_SERVICE", "remote")
	t.Setenv("TGC_SEARCH_TIMEOUT", "2s")

	cfg, err := Resolve(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Service != ServiceRemote {
		t.Errorf("Service = %q, want remote", cfg.Service)
	}
	if cfg.SearchTimeout != 2*time.Second {
		t.Errorf("SearchTimeout = %s, want 2s", cfg.SearchTimeout)
	}
	if cfg.SearchLimit != 5 {
		t.Errorf("SearchLimit = %d, want 5 from file", cfg.SearchLimit)
	}
}

func TestResolveRejectsInvalid(t *testing.T) {
	t.Setenv("TGC_SERVICE", "carrier-pigeon")
	if _, err := Resolve(filepath.Join(t.TempDir(), "none.toml")); err == nil {
		t.Error("Resolve() should reject an unknown service")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero timeout", func(c *Config) { c.SearchTimeout = 0 }, true},
		{"zero limit", func(c *Config) { c.SearchLimit = 0 }, true},
		{"negative delay", func(c *Config) { c.MockDelay = -time.Second }, true},
		{"no delay", func(c *Config) { c.MockDelay = 0 }, false},
		{"negative rps", func(c *Config) { c.RateLimitRPS = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
