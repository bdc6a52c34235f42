package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Environment keys that override config file values.
const (
	EnvCorpusPath = "SKILLSCOPE_CORPUS_PATH"
	EnvMinScore   = "SKILLSCOPE_MIN_SCORE"
	EnvMaxResults = "SKILLSCOPE_MAX_RESULTS"
	EnvIndexDir   = "SKILLSCOPE_INDEX_DIR"
	EnvLogLevel   = "SKILLSCOPE_LOG_LEVEL"
	EnvLogFormat  = "SKILLSCOPE_LOG_FORMAT"
)

// DotEnvPath returns the absolute path to the dotenv file (~/.skillscope/.env).
func DotEnvPath() (string, error) {
	dir, err := ScopeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".env"), nil
}

// LoadDotEnv reads ~/.skillscope/.env and returns key/value pairs.
//
// Parsing rules:
// - Lines starting with '#' are ignored.
// - Empty lines are ignored.
// - Lines must be of form KEY=VALUE.
// - Whitespace around KEY is trimmed.
// - VALUE is taken as-is (no quote parsing).
func LoadDotEnv() (map[string]string, error) {
	p, err := DotEnvPath()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("cannot open dotenv file %s: %w", p, err)
	}
	defer f.Close()

	out := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		i := strings.Index(line, "=")
		if i <= 0 {
			continue
		}
		k := strings.TrimSpace(line[:i])
		if k == "" {
			continue
		}
		out[k] = line[i+1:]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read dotenv file %s: %w", p, err)
	}
	return out, nil
}

// applyEnv overrides c with process environment variables first and
// ~/.skillscope/.env second.
func (c *Config) applyEnv() error {
	dotenv, err := LoadDotEnv()
	if err != nil {
		return err
	}
	get := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return strings.TrimSpace(dotenv[key])
	}

	if v := get(EnvCorpusPath); v != "" {
		c.CorpusPath = v
	}
	if v := get(EnvIndexDir); v != "" {
		c.IndexDir = v
	}
	if v := get(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := get(EnvLogFormat); v != "" {
		c.LogFormat = v
	}
	if v := get(EnvMinScore); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMinScore, v, err)
		}
		c.MinScore = f
	}
	if v := get(EnvMaxResults); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxResults, v, err)
		}
		c.MaxResults = n
	}
	return nil
}

// EnsureDotEnvTemplate creates ~/.skillscope/.env if it does not already exist.
func EnsureDotEnvTemplate() error {
	p, err := DotEnvPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(p); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("cannot stat dotenv file %s: %w", p, err)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(p), err)
	}

	body := "" +
		EnvCorpusPath + "=\n" +
		EnvMinScore + "=\n" +
		EnvMaxResults + "=\n" +
		EnvLogLevel + "=\n"

	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		return fmt.Errorf("cannot write dotenv template %s: %w", p, err)
	}
	return nil
}
