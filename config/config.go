package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables that override the file settings.
const (
	EnvHost     = "SLIDESERVER_HOST"
	EnvPort     = "SLIDESERVER_PORT"
	EnvLogDir   = "SLIDESERVER_LOG_DIR"
	EnvLanguage = "SLIDESERVER_LANGUAGE"
)

// Config structure
type Config struct {
	Host                string   `json:"host"`
	Port                int      `json:"port"`
	AllowedOrigins      []string `json:"allowedOrigins"`      // CORS origins; "*" allows any
	LogDir              string   `json:"logDir,omitempty"`    // Empty logs to stdout
	Language            string   `json:"language"`            // "English" or "简体中文"
	MaxBodyBytes        int64    `json:"maxBodyBytes"`        // Request body cap
	PreviewWidth        int      `json:"previewWidth"`        // Default preview PNG width in pixels
	MaxPreviewWidth     int      `json:"maxPreviewWidth"`     // Largest preview side in pixels
	ReadTimeoutSeconds  int      `json:"readTimeoutSeconds"`  // HTTP server read timeout
	WriteTimeoutSeconds int      `json:"writeTimeoutSeconds"` // HTTP server write timeout
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Host:                "0.0.0.0",
		Port:                8000,
		AllowedOrigins:      []string{"http://localhost:5173", "http://localhost:3000"},
		Language:            "English",
		MaxBodyBytes:        50 << 20,
		PreviewWidth:        480,
		MaxPreviewWidth:     2048,
		ReadTimeoutSeconds:  30,
		WriteTimeoutSeconds: 60,
	}
}

// Load reads path as JSON over the defaults, then applies environment
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := json.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	cfg.Normalize()
	return cfg, nil
}

// ApplyEnv overrides fields from the SLIDESERVER_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvHost); ok && v != "" {
		c.Host = v
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("invalid %s %q", EnvPort, v)
		}
		c.Port = port
	}
	if v, ok := lookup(EnvLogDir); ok {
		c.LogDir = v
	}
	if v, ok := lookup(EnvLanguage); ok && v != "" {
		c.Language = v
	}
	return nil
}

// Normalize replaces unusable values with defaults.
func (c *Config) Normalize() {
	def := Default()
	if c.Host == "" {
		c.Host = def.Host
	}
	if c.Port <= 0 || c.Port > 65535 {
		c.Port = def.Port
	}
	if c.Language == "" {
		c.Language = def.Language
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = def.MaxBodyBytes
	}
	if c.MaxPreviewWidth <= 0 {
		c.MaxPreviewWidth = def.MaxPreviewWidth
	}
	if c.PreviewWidth <= 0 {
		c.PreviewWidth = def.PreviewWidth
	}
	if c.PreviewWidth > c.MaxPreviewWidth {
		c.PreviewWidth = c.MaxPreviewWidth
	}
	if c.ReadTimeoutSeconds <= 0 {
		c.ReadTimeoutSeconds = def.ReadTimeoutSeconds
	}
	if c.WriteTimeoutSeconds <= 0 {
		c.WriteTimeoutSeconds = def.WriteTimeoutSeconds
	}
}

// Addr is the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AllowsOrigin reports whether a CORS origin is configured.
func (c Config) AllowsOrigin(origin string) bool {
	_, ok := c.MatchOrigin(origin)
	return ok
}

// MatchOrigin returns the Access-Control-Allow-Origin value for origin: the
// origin itself when it is listed, "*" when only the wildcard matches.
func (c Config) MatchOrigin(origin string) (string, bool) {
	wildcard := false
	for _, o := range c.AllowedOrigins {
		switch o {
		case origin:
			return origin, true
		case "*":
			wildcard = true
		}
	}
	if wildcard {
		return "*", true
	}
	return "", false
}
