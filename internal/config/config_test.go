package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at a temp dir and clears the environment overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{EnvAPIKey, EnvWorkspaceID, EnvExcludedClientID, EnvAPIBaseURL, EnvReportsBaseURL, EnvTimeoutSeconds} {
		t.Setenv(k, "")
	}
	return home
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoad_FirstRunWritesTemplate(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	data, err := os.ReadFile(filepath.Join(home, ".autoprep", "config.json"))
	require.NoError(t, err)
	assert.Equal(t, configTemplate, string(data))

	// The template itself must parse once comments are stripped.
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeoutSeconds, cfg.Clockify.TimeoutSeconds)
	assert.Equal(t, DefaultAPIBaseURL, cfg.Clockify.APIBaseURL)
}

func TestLoad_CommentedJSON(t *testing.T) {
	dir := isolate(t)
	p := writeFile(t, dir, "cfg.json", `// comment
{
  // another
  "clockify": {"api_key": "k", "workspace_id": "ws", "excluded_client_id": "c1"},
  "report": {"concurrency": 4, "best_effort": true}
}`)

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "k", cfg.Clockify.APIKey)
	assert.Equal(t, "ws", cfg.Clockify.WorkspaceID)
	assert.Equal(t, "c1", cfg.Clockify.ExcludedClientID)
	assert.Equal(t, 4, cfg.Report.Concurrency)
	assert.True(t, cfg.Report.BestEffort)
	assert.Equal(t, DefaultReportsBaseURL, cfg.Clockify.ReportsBaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
}

func TestLoad_YAML(t *testing.T) {
	dir := isolate(t)
	p := writeFile(t, dir, "cfg.yaml", `
clockify:
  api_key: yk
  workspace_id: yws
  timeout_seconds: 5
report:
  concurrency: 2
`)

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "yk", cfg.Clockify.APIKey)
	assert.Equal(t, "yws", cfg.Clockify.WorkspaceID)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, 2, cfg.Report.Concurrency)
}

func TestLoad_TOML(t *testing.T) {
	dir := isolate(t)
	p := writeFile(t, dir, "cfg.toml", `
[clockify]
api_key = "tk"
workspace_id = "tws"

[report]
best_effort = true
`)

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "tk", cfg.Clockify.APIKey)
	assert.Equal(t, "tws", cfg.Clockify.WorkspaceID)
	assert.True(t, cfg.Report.BestEffort)
	assert.Equal(t, DefaultConcurrency, cfg.Report.Concurrency)
}

func TestLoad_Errors(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, dir, "cfg.ini", "x=1"))
	assert.ErrorContains(t, err, "unsupported")

	_, err = Load(writeFile(t, dir, "bad.json", "{"))
	assert.ErrorContains(t, err, "parsing config file")

	_, err = Load(dir)
	assert.ErrorContains(t, err, "directory")
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := isolate(t)
	p := writeFile(t, dir, "cfg.json", `{"clockify": {"api_key": "file", "workspace_id": "file-ws"}}`)
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvExcludedClientID, "env-client")
	t.Setenv(EnvTimeoutSeconds, "7")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Clockify.APIKey)
	assert.Equal(t, "file-ws", cfg.Clockify.WorkspaceID)
	assert.Equal(t, "env-client", cfg.Clockify.ExcludedClientID)
	assert.Equal(t, 7*time.Second, cfg.Timeout())

	t.Setenv(EnvTimeoutSeconds, "soon")
	_, err = Load(p)
	assert.ErrorContains(t, err, EnvTimeoutSeconds)
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.ErrorContains(t, err, EnvAPIKey)
	assert.ErrorContains(t, err, EnvWorkspaceID)

	cfg.Clockify.APIKey = "k"
	cfg.Clockify.WorkspaceID = "ws"
	assert.NoError(t, cfg.Validate())
}

func TestClientConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Clockify.APIKey = "k"
	cfg.Clockify.WorkspaceID = "ws"
	cfg.Clockify.ExcludedClientID = "c"

	cc := cfg.ClientConfig()
	assert.Equal(t, "k", cc.APIKey)
	assert.Equal(t, "ws", cc.WorkspaceID)
	assert.Equal(t, "c", cc.ExcludedClientID)
	assert.Equal(t, 30*time.Second, cc.Timeout)
}

func TestStripLineComments(t *testing.T) {
	in := []byte("// top\n{\n  // inner\n  \"a\": 1\n}")
	got := string(stripLineComments(in))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", got)
}
