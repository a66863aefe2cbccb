package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeTOML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "glfm.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write toml: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	chdirForTest(t, t.TempDir())
	t.Setenv("GLFM_CONFIG", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Family.Strategy != "wikidata" {
		t.Errorf("Strategy = %q, want wikidata", cfg.Family.Strategy)
	}
	if cfg.Family.MaxDepth != 20 {
		t.Errorf("MaxDepth = %d, want 20", cfg.Family.MaxDepth)
	}
	if cfg.Family.Delay != 100*time.Millisecond {
		t.Errorf("Delay = %v, want 100ms", cfg.Family.Delay)
	}
	if len(cfg.Family.Generic) != 5 {
		t.Errorf("Generic = %v, want 5 ids", cfg.Family.Generic)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("Backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Family.SkipLabels {
		t.Error("SkipLabels should default to false")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTOML(t, dir, `
[paths]
data_dir = "/srv/glfm/data"

[family]
strategy = "wiktionary"
max_depth = 8
delay = "250ms"

[cache]
backend = "none"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Family.Strategy != "wiktionary" || cfg.Family.MaxDepth != 8 {
		t.Errorf("Family = %+v", cfg.Family)
	}
	if cfg.Family.Delay != 250*time.Millisecond {
		t.Errorf("Delay = %v, want 250ms", cfg.Family.Delay)
	}
	if got := cfg.Paths.Sources().ISO6393; got != "/srv/glfm/data/iso-639-3.tab" {
		t.Errorf("ISO6393 = %q", got)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want default :8080", cfg.Server.Addr)
	}
}

func TestLoadFileSkipLabels(t *testing.T) {
	path := writeTOML(t, t.TempDir(), "[family]\nskip_labels = true\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.Family.SkipLabels {
		t.Error("skip_labels = true in the file was not honored")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeTOML(t, t.TempDir(), "[family]\nmax_depth = 8\n")
	t.Setenv("GLFM_FAMILY_MAX_DEPTH", "12")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Family.MaxDepth != 12 {
		t.Errorf("MaxDepth = %d, want 12", cfg.Family.MaxDepth)
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("explicit missing file should fail")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Default()
		if err != nil {
			t.Fatalf("Default() error: %v", err)
		}
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"strategy", func(c *Config) { c.Family.Strategy = "glottolog" }},
		{"depth", func(c *Config) { c.Family.MaxDepth = 0 }},
		{"flush", func(c *Config) { c.Family.FlushEvery = -1 }},
		{"generic", func(c *Config) { c.Family.Generic = []string{"language"} }},
		{"endpoint", func(c *Config) { c.Family.Endpoint = "ftp://wikidata" }},
		{"backend", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"traversal", func(c *Config) { c.Paths.OutputDir = "../out" }},
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, cfg); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if !strings.Contains(buf.String(), "[family]") {
		t.Errorf("encoded config lacks [family]:\n%s", buf.String())
	}

	path := writeTOML(t, t.TempDir(), buf.String())
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() of written config: %v", err)
	}
	if got.Family.Delay != cfg.Family.Delay || got.Paths.DataDir != cfg.Paths.DataDir {
		t.Errorf("round trip changed config: %+v", got)
	}
}
