package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"database_url": "postgres://localhost/jobs",
		"port": 9090,
		"upload_dir": "/tmp/resumes",
		"high_match_threshold": 75,
		"top_matches": 5,
		"cors_origins": ["http://localhost:3000"],
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "postgres://localhost/jobs", cfg.DatabaseURL)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/tmp/resumes", cfg.UploadDir)
	assert.Equal(t, 75.0, cfg.HighMatchThreshold)
	assert.Equal(t, 5, cfg.TopMatches)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "defaults", cfg: Defaults()},
		{name: "negative port", cfg: Config{Port: -1}, wantErr: "port"},
		{name: "negative upload limit", cfg: Config{MaxUploadBytes: -1}, wantErr: "max_upload_bytes"},
		{name: "negative top matches", cfg: Config{TopMatches: -1}, wantErr: "top_matches"},
		{name: "negative workers", cfg: Config{Workers: -2}, wantErr: "workers"},
		{name: "threshold above 100", cfg: Config{HighMatchThreshold: 100.5}, wantErr: "high_match_threshold"},
		{name: "threshold below 0", cfg: Config{HighMatchThreshold: -1}, wantErr: "high_match_threshold"},
		{name: "missing synonyms file", cfg: Config{SynonymsFile: "/nonexistent/skills.yml"}, wantErr: "synonyms file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{
		DatabaseURL: "postgres://db/jobs",
		TopMatches:  10,
	}

	merged := partial.MergeWithDefaults(Defaults())

	// Custom values should be preserved
	assert.Equal(t, "postgres://db/jobs", merged.DatabaseURL)
	assert.Equal(t, 10, merged.TopMatches)

	// Default values should fill in empty fields
	assert.Equal(t, DefaultPort, merged.Port)
	assert.Equal(t, DefaultUploadDir, merged.UploadDir)
	assert.Equal(t, int64(DefaultMaxUploadBytes), merged.MaxUploadBytes)
	assert.Equal(t, DefaultHighMatchThreshold, merged.HighMatchThreshold)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Port: 3000}
	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, 3000, merged.Port)
	assert.Empty(t, merged.UploadDir)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/jobs")
	t.Setenv("PORT", "7000")
	t.Setenv("UPLOAD_DIR", "/var/uploads")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("HIGH_MATCH_THRESHOLD", "72.5")
	t.Setenv("TOP_MATCHES", "4")
	t.Setenv("SCORING_WORKERS", "8")
	t.Setenv("CORS_ORIGINS", "http://a.example, ,http://b.example")
	t.Setenv("VERBOSE", "true")

	cfg := Defaults()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "postgres://env/jobs", cfg.DatabaseURL)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "/var/uploads", cfg.UploadDir)
	assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
	assert.Equal(t, 72.5, cfg.HighMatchThreshold)
	assert.Equal(t, 4, cfg.TopMatches)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.Verbose)
}

func TestApplyEnv_InvalidNumbers(t *testing.T) {
	for _, key := range []string{"PORT", "TOP_MATCHES", "MAX_UPLOAD_BYTES", "HIGH_MATCH_THRESHOLD", "VERBOSE"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "not-a-number")
			cfg := Defaults()
			err := cfg.ApplyEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TOP_MATCHES", "")
	t.Setenv("HIGH_MATCH_THRESHOLD", "")
	t.Setenv("DATABASE_URL", "postgres://env/jobs")

	path := writeConfig(t, `{"database_url": "postgres://file/jobs", "top_matches": 7}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://env/jobs", cfg.DatabaseURL, "env overrides the file")
	assert.Equal(t, 7, cfg.TopMatches, "file overrides defaults")
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultHighMatchThreshold, cfg.HighMatchThreshold)
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv("HIGH_MATCH_THRESHOLD", "150")

	cfg, err := Load("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}
