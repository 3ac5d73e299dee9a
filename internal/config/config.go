// Package config provides configuration loading and validation for the
// job matcher server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Default values used by MergeWithDefaults via Defaults.
const (
	DefaultPort               = 8080
	DefaultUploadDir          = "uploads"
	DefaultMaxUploadBytes     = 16 << 20
	DefaultHighMatchThreshold = 60.0
	DefaultTopMatches         = 3
)

// Config represents the server configuration. It can be loaded from a JSON
// file and is then overlaid by environment variables.
type Config struct {
	// Connections
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Port        int    `json:"port,omitempty"`         // HTTP listen port

	// Skills
	SynonymsFile string `json:"synonyms_file,omitempty"` // YAML synonym table replacing the built-in one

	// Uploads
	UploadDir      string `json:"upload_dir,omitempty"`       // Directory resume files are written to
	MaxUploadBytes int64  `json:"max_upload_bytes,omitempty"` // Largest accepted resume file

	// Ranking
	HighMatchThreshold float64 `json:"high_match_threshold,omitempty"` // Scores above this count as high matches
	TopMatches         int     `json:"top_matches,omitempty"`          // Jobs shown on the candidate dashboard
	Workers            int     `json:"workers,omitempty"`              // Batch scoring goroutines, 0 uses GOMAXPROCS

	// HTTP
	CORSOrigins []string `json:"cors_origins,omitempty"` // Allowed origins, empty allows any
	Verbose     bool     `json:"verbose,omitempty"`      // Debug logging
}

// Defaults returns the configuration used for unset fields.
func Defaults() Config {
	return Config{
		Port:               DefaultPort,
		UploadDir:          DefaultUploadDir,
		MaxUploadBytes:     DefaultMaxUploadBytes,
		HighMatchThreshold: DefaultHighMatchThreshold,
		TopMatches:         DefaultTopMatches,
	}
}

// Load builds the effective configuration: the JSON file at path (optional),
// merged with defaults, overlaid by the environment, then validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overlays environment variables on c. Unset variables leave the
// field unchanged; malformed numbers are an error.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("SYNONYMS_FILE"); v != "" {
		c.SynonymsFile = v
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		c.UploadDir = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}

	if err := envInt("PORT", &c.Port); err != nil {
		return err
	}
	if err := envInt("TOP_MATCHES", &c.TopMatches); err != nil {
		return err
	}
	if err := envInt("SCORING_WORKERS", &c.Workers); err != nil {
		return err
	}

	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MAX_UPLOAD_BYTES: %v", err)
		}
		c.MaxUploadBytes = n
	}
	if v := os.Getenv("HIGH_MATCH_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid HIGH_MATCH_THRESHOLD: %v", err)
		}
		c.HighMatchThreshold = f
	}
	if v := os.Getenv("VERBOSE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid VERBOSE: %v", err)
		}
		c.Verbose = b
	}
	return nil
}

// Validate checks that the configuration has valid values.
// Required connection settings are checked by the commands that need them.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	if c.TopMatches < 0 {
		return fmt.Errorf("config error: 'top_matches' must be non-negative")
	}
	if c.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}
	if c.HighMatchThreshold < 0 || c.HighMatchThreshold > 100 {
		return fmt.Errorf("config error: 'high_match_threshold' must be between 0 and 100, got %g", c.HighMatchThreshold)
	}

	if c.SynonymsFile != "" {
		if _, err := os.Stat(c.SynonymsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: synonyms file not found: %s", c.SynonymsFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.SynonymsFile == "" {
		result.SynonymsFile = defaults.SynonymsFile
	}
	if result.UploadDir == "" {
		result.UploadDir = defaults.UploadDir
	}
	if len(result.CORSOrigins) == 0 {
		result.CORSOrigins = defaults.CORSOrigins
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.TopMatches == 0 {
		result.TopMatches = defaults.TopMatches
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if result.HighMatchThreshold == 0 {
		result.HighMatchThreshold = defaults.HighMatchThreshold
	}

	// Bools cannot distinguish unset from false, so they are not merged.

	return result
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %v", key, err)
	}
	*dst = n
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
