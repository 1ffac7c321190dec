package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application configuration.
type Config struct {
	// ValueMaxChars is the maximum character count accepted for a stored value
	ValueMaxChars int `json:"value_max_chars"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized (reduces "database is locked" errors).
	// 0 means use sql.DB default (unlimited).
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// Bind is the interface the HTTP API listens on.
	Bind string `json:"bind,omitempty"`

	// Port is the TCP port the HTTP API listens on.
	Port int `json:"port,omitempty"`

	// LogJSON switches the logger to production JSON output.
	LogJSON bool `json:"log_json,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty"`

	// RateLimitPerMinute caps requests per client IP. 0 disables limiting.
	RateLimitPerMinute int `json:"rate_limit_per_minute,omitempty"`

	// RateLimitBurst is the burst size for the per-client limiter.
	RateLimitBurst int `json:"rate_limit_burst,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ValueMaxChars:  100000,
		Bind:           "127.0.0.1",
		Port:           8080,
		LogLevel:       "info",
		RateLimitBurst: 20,
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.sift.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithRepo loads configuration from both global (~/.sift) and repo (.sift) directories.
// Repo config is found by walking upward from startDir to find the nearest .sift/config.json.
// Repo config takes precedence for scalar values; arrays are merged (deduplicated).
// Either or both configs may be missing.
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	repo, err := loadFileRaw(FindRepoConfig(startDir))
	if err != nil {
		return nil, err
	}

	// Apply defaults, then global, then repo
	return Merge(Merge(DefaultConfig(), global), repo), nil
}

// FindRepoConfig walks upward from startDir to find the nearest .sift/config.json.
// Returns the path if found, or empty string if not found.
func FindRepoConfig(startDir string) string {
	dir := startDir
	for {
		configPath := filepath.Join(dir, ".sift", "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	// Scalars: overlay wins if non-zero, else base
	result.ValueMaxChars = firstNonZero(overlay.ValueMaxChars, base.ValueMaxChars)
	result.DBMaxOpenConns = firstNonZero(overlay.DBMaxOpenConns, base.DBMaxOpenConns)
	result.DBMaxIdleConns = firstNonZero(overlay.DBMaxIdleConns, base.DBMaxIdleConns)
	result.Port = firstNonZero(overlay.Port, base.Port)
	result.RateLimitPerMinute = firstNonZero(overlay.RateLimitPerMinute, base.RateLimitPerMinute)
	result.RateLimitBurst = firstNonZero(overlay.RateLimitBurst, base.RateLimitBurst)
	result.Bind = firstNonZero(strings.TrimSpace(overlay.Bind), base.Bind)
	result.LogLevel = firstNonZero(strings.TrimSpace(overlay.LogLevel), base.LogLevel)

	// Booleans: overlay wins if true, else base
	result.LogJSON = base.LogJSON || overlay.LogJSON

	// Arrays: merge and deduplicate
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

func firstNonZero[T comparable](a, b T) T {
	var zero T
	if a != zero {
		return a
	}
	return b
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
