package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"contractor-leads/internal/export"
)

// DefaultFile is read from the working directory when no --config is given.
const DefaultFile = "contractor-leads.toml"

type Config struct {
	DataFile     string `toml:"data_file"`     // LEADS_DATA_FILE (default "leads_data.json")
	LogLevel     string `toml:"log_level"`     // LEADS_LOG_LEVEL (default "info")
	JSONLogs     bool   `toml:"json_logs"`     // LEADS_JSON_LOGS (default false)
	ConfirmExit  bool   `toml:"confirm_exit"`  // LEADS_CONFIRM_EXIT (default true)
	WindowWidth  int    `toml:"window_width"`  // default 1200
	WindowHeight int    `toml:"window_height"` // default 800
	PDFPageSize  string `toml:"pdf_page_size"` // default "Letter"
}

func Default() *Config {
	return &Config{
		DataFile:     "leads_data.json",
		LogLevel:     "info",
		ConfirmExit:  true,
		WindowWidth:  1200,
		WindowHeight: 800,
		PDFPageSize:  "Letter",
	}
}

// Load layers defaults, the TOML file at path, then LEADS_* variables.
// An empty path falls back to DefaultFile, which may be absent.
func Load(path string) (*Config, error) {
	c := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if _, err := toml.DecodeFile(path, c); err != nil {
		if !errors.Is(err, os.ErrNotExist) || explicit {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	c.DataFile = envOrDefault("LEADS_DATA_FILE", c.DataFile)
	c.LogLevel = envOrDefault("LEADS_LOG_LEVEL", c.LogLevel)

	var err error
	if c.JSONLogs, err = envBool("LEADS_JSON_LOGS", c.JSONLogs); err != nil {
		return nil, err
	}
	if c.ConfirmExit, err = envBool("LEADS_CONFIRM_EXIT", c.ConfirmExit); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate rejects values the application cannot start with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		return fmt.Errorf("data_file must not be empty")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level %q: want debug, info, warn or error", c.LogLevel)
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.WindowWidth, c.WindowHeight)
	}
	if !export.ValidPageSize(c.PDFPageSize) {
		return fmt.Errorf("pdf_page_size %q: want one of %s", c.PDFPageSize, strings.Join(export.PageSizes, ", "))
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
