package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the in-memory representation of ~/.skillscope/skillscope.yaml.
type Config struct {
	// CorpusPath is the directory holding skills/, commands/ and workflows/.
	CorpusPath string `yaml:"corpus_path"`
	// Patterns maps a document kind to glob patterns relative to CorpusPath.
	Patterns map[string][]string `yaml:"patterns,omitempty"`
	MinScore float64             `yaml:"min_score"`
	// MaxResults caps each selection; -1 disables the cap.
	MaxResults int `yaml:"max_results"`
	// Fallback lists document ids to materialize when nothing matches.
	Fallback  []string `yaml:"fallback,omitempty"`
	IndexDir  string   `yaml:"index_dir,omitempty"`
	LogLevel  string   `yaml:"log_level,omitempty"`
	LogFormat string   `yaml:"log_format,omitempty"`
}

// ScopeDir returns the absolute path to ~/.skillscope/.
func ScopeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".skillscope"), nil
}

// ConfigPath returns the absolute path to ~/.skillscope/skillscope.yaml.
func ConfigPath() (string, error) {
	dir, err := ScopeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "skillscope.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the Config written by skillscope init.
func DefaultConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		CorpusPath: filepath.Join(home, ".claude"),
		Patterns: map[string][]string{
			"skill":    {"skills/**/SKILL.md"},
			"command":  {"commands/**/*.md"},
			"workflow": {"workflows/**/*.md"},
		},
		MinScore:   0,
		MaxResults: 5,
		IndexDir:   filepath.Join(home, ".skillscope", "index"),
		LogLevel:   "info",
		LogFormat:  "text",
	}, nil
}

// Load reads path (or ~/.skillscope/skillscope.yaml when path is empty),
// fills unset fields from DefaultConfig and applies environment overrides.
// A missing file is not an error: defaults plus overrides are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
		cfg.merge(&fileCfg, data)
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	// Expand ~ at load time.
	if cfg.CorpusPath, err = ExpandPath(cfg.CorpusPath); err != nil {
		return nil, err
	}
	if cfg.IndexDir, err = ExpandPath(cfg.IndexDir); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge overlays values present in the file onto c. Numeric fields are only
// taken when their key appears, so an explicit zero is honored.
func (c *Config) merge(f *Config, raw []byte) {
	var keys map[string]any
	_ = yaml.Unmarshal(raw, &keys)
	has := func(k string) bool { _, ok := keys[k]; return ok }

	if f.CorpusPath != "" {
		c.CorpusPath = f.CorpusPath
	}
	if len(f.Patterns) > 0 {
		c.Patterns = f.Patterns
	}
	if has("min_score") {
		c.MinScore = f.MinScore
	}
	if has("max_results") {
		c.MaxResults = f.MaxResults
	}
	if f.Fallback != nil {
		c.Fallback = f.Fallback
	}
	if f.IndexDir != "" {
		c.IndexDir = f.IndexDir
	}
	if f.LogLevel != "" {
		c.LogLevel = f.LogLevel
	}
	if f.LogFormat != "" {
		c.LogFormat = f.LogFormat
	}
}

// Save marshals cfg and writes it to path (or the default config path).
func Save(cfg *Config, path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}
