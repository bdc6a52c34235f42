package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kamusis/skillscope/internal/search"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := setHome(t)

	cfg, err := Load(filepath.Join(home, "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxResults != 5 {
		t.Fatalf("expected default max_results 5, got %d", cfg.MaxResults)
	}
	if cfg.CorpusPath != filepath.Join(home, ".claude") {
		t.Fatalf("unexpected corpus path %q", cfg.CorpusPath)
	}
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Fatalf("default config should validate, got %v", errs)
	}
}

func TestLoad_FileOverridesAndExpandsHome(t *testing.T) {
	home := setHome(t)
	p := filepath.Join(home, "cfg.yaml")
	body := "corpus_path: ~/corpus\nmin_score: 0\nmax_results: -1\nfallback: [general]\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CorpusPath != filepath.Join(home, "corpus") {
		t.Fatalf("~ not expanded: %q", cfg.CorpusPath)
	}
	if cfg.MaxResults != -1 {
		t.Fatalf("expected unbounded max_results, got %d", cfg.MaxResults)
	}
	if len(cfg.Fallback) != 1 || cfg.Fallback[0] != "general" {
		t.Fatalf("unexpected fallback %v", cfg.Fallback)
	}
	// Unset keys keep their defaults.
	if len(cfg.Patterns) != 3 || cfg.LogLevel != "info" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	home := setHome(t)
	p := filepath.Join(home, "cfg.yaml")
	if err := os.WriteFile(p, []byte("min_score: 0.2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvMinScore, "0.6")

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MinScore != 0.6 {
		t.Fatalf("expected env min score 0.6, got %v", cfg.MinScore)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	home := setHome(t)
	p := filepath.Join(home, "cfg.yaml")
	if err := os.WriteFile(p, []byte("patterns: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(p); err == nil || !strings.Contains(err.Error(), "invalid YAML") {
		t.Fatalf("expected invalid YAML error, got %v", err)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	home := setHome(t)
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Fallback = []string{"general", "triage"}
	cfg.MinScore = 0.3
	p := filepath.Join(home, "nested", "skillscope.yaml")

	if err := Save(cfg, p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.MinScore != 0.3 || len(got.Fallback) != 2 || got.Fallback[1] != "triage" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty corpus path", func(c *Config) { c.CorpusPath = "" }, "corpus_path"},
		{"negative min score", func(c *Config) { c.MinScore = -0.1 }, "min_score"},
		{"min score above reachable", func(c *Config) { c.MinScore = 2 }, "min_score"},
		{"zero max results", func(c *Config) { c.MaxResults = 0 }, "max_results"},
		{"no patterns", func(c *Config) { c.Patterns = nil }, "patterns"},
		{"unknown kind", func(c *Config) { c.Patterns["recipe"] = []string{"*.md"} }, "patterns.recipe"},
		{"bad glob", func(c *Config) { c.Patterns["skill"] = []string{"skills/[x"} }, "patterns.skill"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setHome(t)
			cfg, err := DefaultConfig()
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)

			errs := cfg.Validate()
			if len(errs) != 1 {
				t.Fatalf("expected one error, got %v", errs)
			}
			if errs[0].Field != tt.field {
				t.Fatalf("expected field %q, got %q", tt.field, errs[0].Field)
			}
		})
	}
}

func TestKindPatterns(t *testing.T) {
	cfg := &Config{Patterns: map[string][]string{
		"skills":  {"skills/**/SKILL.md"},
		"command": {"commands/*.md"},
		"recipe":  {"recipes/*.md"},
	}}

	got := cfg.KindPatterns()
	if len(got) != 2 {
		t.Fatalf("expected two kinds, got %v", got)
	}
	if got[search.KindSkill][0] != "skills/**/SKILL.md" || got[search.KindCommand][0] != "commands/*.md" {
		t.Fatalf("unexpected patterns %v", got)
	}
}
