package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leads.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	chdir(t, t.TempDir())

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default(), c)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))

	assert.Error(t, err)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
data_file = "/tmp/leads/data.json"
log_level = "debug"
confirm_exit = false
window_width = 900
pdf_page_size = "A4"
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/leads/data.json", c.DataFile)
	assert.Equal(t, "debug", c.LogLevel)
	assert.False(t, c.ConfirmExit)
	assert.Equal(t, 900, c.WindowWidth)
	assert.Equal(t, 800, c.WindowHeight)
	assert.Equal(t, "A4", c.PDFPageSize)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `data_file = "from-file.json"`)
	t.Setenv("LEADS_DATA_FILE", "from-env.json")
	t.Setenv("LEADS_LOG_LEVEL", "warn")
	t.Setenv("LEADS_JSON_LOGS", "true")
	t.Setenv("LEADS_CONFIRM_EXIT", "0")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env.json", c.DataFile)
	assert.Equal(t, "warn", c.LogLevel)
	assert.True(t, c.JSONLogs)
	assert.False(t, c.ConfirmExit)
}

func TestLoad_BadEnvBool(t *testing.T) {
	t.Setenv("LEADS_JSON_LOGS", "sometimes")

	_, err := Load(writeConfig(t, ""))

	assert.ErrorContains(t, err, "LEADS_JSON_LOGS")
}

func TestLoad_InvalidTOML(t *testing.T) {
	_, err := Load(writeConfig(t, "data_file = ["))

	assert.Error(t, err)
}

func TestLoad_UnknownPageSizeFails(t *testing.T) {
	path := writeConfig(t, `pdf_page_size = "B7"`)

	_, err := Load(path)

	assert.ErrorContains(t, err, "pdf_page_size")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"empty data file", func(c *Config) { c.DataFile = " " }, false},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, false},
		{"upper level", func(c *Config) { c.LogLevel = "WARN" }, true},
		{"zero width", func(c *Config) { c.WindowWidth = 0 }, false},
		{"unknown page size", func(c *Config) { c.PDFPageSize = "B7" }, false},
		{"lower page size", func(c *Config) { c.PDFPageSize = "a4" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

// chdir switches the working directory for the rest of the test and
// restores it afterwards (testing.T.Chdir needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
