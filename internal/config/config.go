package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/autoprep/internal/clockify"
)

// Config is the root configuration for autoprep. By default it lives in
// ~/.autoprep/config.json, which supports single-line // comments.
type Config struct {
	Clockify ClockifyConfig `json:"clockify" yaml:"clockify" toml:"clockify"`
	Report   ReportConfig   `json:"report" yaml:"report" toml:"report"`
}

// ClockifyConfig holds credentials and endpoints of the Clockify API.
type ClockifyConfig struct {
	APIKey      string `json:"api_key" yaml:"api_key" toml:"api_key"`
	WorkspaceID string `json:"workspace_id" yaml:"workspace_id" toml:"workspace_id"`
	// ExcludedClientID drops time booked on this client from every total.
	ExcludedClientID string `json:"excluded_client_id" yaml:"excluded_client_id" toml:"excluded_client_id"`
	APIBaseURL       string `json:"api_url" yaml:"api_url" toml:"api_url"`
	ReportsBaseURL   string `json:"reports_url" yaml:"reports_url" toml:"reports_url"`
	// TimeoutSeconds bounds every single HTTP call.
	TimeoutSeconds int `json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
}

// ReportConfig tunes the retrieval run.
type ReportConfig struct {
	Concurrency int  `json:"concurrency" yaml:"concurrency" toml:"concurrency"`
	BestEffort  bool `json:"best_effort" yaml:"best_effort" toml:"best_effort"`
}

const (
	DefaultAPIBaseURL     = clockify.DefaultAPIBaseURL
	DefaultReportsBaseURL = clockify.DefaultReportsBaseURL
	DefaultTimeoutSeconds = 30
	DefaultConcurrency    = 1
)

// Environment variables that override file values.
const (
	EnvAPIKey           = "CLOCKIFY_API_KEY"
	EnvWorkspaceID      = "CLOCKIFY_WORKSPACE_ID"
	EnvExcludedClientID = "CLOCKIFY_EXCLUDED_CLIENT_ID"
	EnvAPIBaseURL       = "CLOCKIFY_API_URL"
	EnvReportsBaseURL   = "CLOCKIFY_REPORTS_URL"
	EnvTimeoutSeconds   = "CLOCKIFY_TIMEOUT_SECONDS"
)

// ErrIncomplete is returned by Validate when credentials are missing.
var ErrIncomplete = errors.New("incomplete configuration")

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		Clockify: ClockifyConfig{
			APIBaseURL:     DefaultAPIBaseURL,
			ReportsBaseURL: DefaultReportsBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Report: ReportConfig{
			Concurrency: DefaultConcurrency,
		},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing.
const configTemplate = `// autoprep configuration – ~/.autoprep/config.json
//
// Credentials may also come from the environment (or a .env file in the
// working directory): CLOCKIFY_API_KEY, CLOCKIFY_WORKSPACE_ID,
// CLOCKIFY_EXCLUDED_CLIENT_ID. Environment values win over this file.
{
  // ── Clockify API ──────────────────────────────────────────────────────────
  "clockify": {
    // Personal API key from https://app.clockify.me/user/settings
    "api_key": "",

    // Workspace to report on. Required.
    "workspace_id": "",

    // Time booked on this client is left out of every total. Leave empty to
    // count everything.
    "excluded_client_id": "",

    "api_url": "https://api.clockify.me/api/v1",
    "reports_url": "https://reports.api.clockify.me/v1",

    // Upper bound for a single HTTP call.
    "timeout_seconds": 30
  },

  // ── Retrieval ─────────────────────────────────────────────────────────────
  "report": {
    // Number of per-member reports requested in parallel.
    "concurrency": 1,

    // false: one failing member aborts the whole run.
    // true:  failing members are listed and the rest is shown.
    "best_effort": false
  }
}
`

// DefaultPath returns the path to ~/.autoprep/config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".autoprep", "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads the configuration. With an empty path it uses DefaultPath and
// creates the annotated default file on first run; an explicit path must
// exist and may be .json, .yaml/.yml or .toml. Environment variables are
// applied last.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return applyEnv(cfg)
		}
		if _, err := os.Stat(p); os.IsNotExist(err) {
			// First run: write the annotated template so users can discover options.
			if writeErr := writeDefault(p); writeErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", p, writeErr)
			}
			return applyEnv(cfg)
		}
		path = p
	}

	if err := decodeFile(path, &cfg); err != nil {
		return defaultConfig(), err
	}
	fillDefaults(&cfg)
	return applyEnv(cfg)
}

// decodeFile parses path into cfg based on its extension.
func decodeFile(path string, cfg *Config) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("accessing config file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", "":
		if err := json.Unmarshal(stripLineComments(data), cfg); err != nil {
			return fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parsing YAML config %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parsing TOML config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config file format: %s", ext)
	}
	return nil
}

// fillDefaults replaces zero values with built-in defaults so callers always
// get a usable Config even if the file is only partially filled in.
func fillDefaults(cfg *Config) {
	if cfg.Clockify.APIBaseURL == "" {
		cfg.Clockify.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.Clockify.ReportsBaseURL == "" {
		cfg.Clockify.ReportsBaseURL = DefaultReportsBaseURL
	}
	if cfg.Clockify.TimeoutSeconds <= 0 {
		cfg.Clockify.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if cfg.Report.Concurrency < 1 {
		cfg.Report.Concurrency = DefaultConcurrency
	}
}

// applyEnv overlays environment variables onto cfg.
func applyEnv(cfg Config) (Config, error) {
	overrides := []struct {
		key string
		dst *string
	}{
		{EnvAPIKey, &cfg.Clockify.APIKey},
		{EnvWorkspaceID, &cfg.Clockify.WorkspaceID},
		{EnvExcludedClientID, &cfg.Clockify.ExcludedClientID},
		{EnvAPIBaseURL, &cfg.Clockify.APIBaseURL},
		{EnvReportsBaseURL, &cfg.Clockify.ReportsBaseURL},
	}
	for _, o := range overrides {
		if v := strings.TrimSpace(os.Getenv(o.key)); v != "" {
			*o.dst = v
		}
	}
	if v := os.Getenv(EnvTimeoutSeconds); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("%s must be a positive number of seconds, got %q", EnvTimeoutSeconds, v)
		}
		cfg.Clockify.TimeoutSeconds = n
	}
	return cfg, nil
}

// Validate reports missing credentials.
func (c Config) Validate() error {
	var missing []string
	if c.Clockify.APIKey == "" {
		missing = append(missing, "clockify.api_key ("+EnvAPIKey+")")
	}
	if c.Clockify.WorkspaceID == "" {
		missing = append(missing, "clockify.workspace_id ("+EnvWorkspaceID+")")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(missing, ", "))
	}
	return nil
}

// Timeout returns the per-call HTTP timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.Clockify.TimeoutSeconds) * time.Second
}

// ClientConfig converts the Clockify section into a client configuration.
func (c Config) ClientConfig() clockify.Config {
	return clockify.Config{
		APIKey:           c.Clockify.APIKey,
		WorkspaceID:      c.Clockify.WorkspaceID,
		ExcludedClientID: c.Clockify.ExcludedClientID,
		APIBaseURL:       c.Clockify.APIBaseURL,
		ReportsBaseURL:   c.Clockify.ReportsBaseURL,
		Timeout:          c.Timeout(),
	}
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
