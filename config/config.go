package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server settings
	ServerPort   string        `json:"server_port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
	Debug        bool          `json:"debug"`

	// Application paths
	LogDir string `json:"log_dir"`

	// Application version
	Version string `json:"version"`

	// Request and shutdown timeouts
	RequestTimeout  time.Duration `json:"request_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`

	CORS      CORSConfig      `json:"cors"`
	RateLimit RateLimitConfig `json:"rate_limit"`
	Database  DatabaseConfig  `json:"database"`
	LLM       LLMConfig       `json:"llm"`
	Pipeline  PipelineConfig  `json:"pipeline"`
	Video     VideoConfig     `json:"video"`
	Archive   ArchiveConfig   `json:"archive"`
}

type CORSConfig struct {
	Enabled          bool     `json:"enabled"`
	AllowedOrigins   []string `json:"allowed_origins"`
	AllowedMethods   []string `json:"allowed_methods"`
	AllowedHeaders   []string `json:"allowed_headers"`
	AllowCredentials bool     `json:"allow_credentials"`
	MaxAge           int      `json:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `json:"enabled"`
	RequestsPerMinute int  `json:"requests_per_minute"`
	BurstSize         int  `json:"burst_size"`
}

type DatabaseConfig struct {
	Path           string `json:"path"`
	MaxConnections int    `json:"max_connections"`
}

// LLMConfig holds settings for the external text-generation endpoint.
type LLMConfig struct {
	Endpoint             string        `json:"endpoint"`
	APIKey               string        `json:"-"`
	Model                string        `json:"model"`
	MaxTokens            int           `json:"max_tokens"`
	CopyeditTemperature  float64       `json:"copyedit_temperature"`
	HighlightTemperature float64       `json:"highlight_temperature"`
	CallTimeout          time.Duration `json:"call_timeout"`
	// RequestsPerMinute caps outbound generation calls across all
	// concurrent pipeline invocations. Zero disables the limiter.
	RequestsPerMinute int `json:"requests_per_minute"`
}

// PipelineConfig bounds the partition-and-merge pipeline.
type PipelineConfig struct {
	// LinesPerPartition approximates a five-minute span at ~5s per
	// transcript line.
	LinesPerPartition int `json:"lines_per_partition"`
	// MaxConcurrent caps in-flight generation calls per invocation.
	MaxConcurrent int `json:"max_concurrent"`
}

type VideoConfig struct {
	ProcessTimeout time.Duration `json:"process_timeout"`
	FetchRetries   int           `json:"fetch_retries"`
	StaleAfter     time.Duration `json:"stale_after"`
}

// ArchiveConfig configures the optional S3-compatible transcript archive.
// The archive is disabled unless both Endpoint and Bucket are set.
type ArchiveConfig struct {
	Endpoint  string `json:"endpoint"`
	Region    string `json:"region"`
	Bucket    string `json:"bucket"`
	AccessKey string `json:"-"`
	SecretKey string `json:"-"`
}

func (a ArchiveConfig) Enabled() bool {
	return a.Endpoint != "" && a.Bucket != ""
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:  getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		Debug:        getEnvAsBool("DEBUG", false),

		LogDir:  getEnv("LOG_DIR", "/var/log/yt-highlights"),
		Version: getEnv("VERSION", "1.0.0"),

		RequestTimeout:  getEnvAsDuration("REQUEST_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		CORS: CORSConfig{
			Enabled:        getEnvAsBool("CORS_ENABLED", true),
			AllowedOrigins: getEnvAsStringSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvAsStringSlice(
				"CORS_ALLOWED_METHODS",
				[]string{"GET", "POST", "PUT", "OPTIONS"},
			),
			AllowedHeaders:   getEnvAsStringSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 86400),
		},

		RateLimit: RateLimitConfig{
			Enabled:           getEnvAsBool("RATE_LIMIT_ENABLED", true),
			RequestsPerMinute: getEnvAsInt("RATE_LIMIT_RPM", 60),
			BurstSize:         getEnvAsInt("RATE_LIMIT_BURST", 10),
		},

		Database: DatabaseConfig{
			Path:           getEnv("DB_PATH", "/var/lib/yt-highlights/data.db"),
			MaxConnections: getEnvAsInt("DB_MAX_CONNECTIONS", 10),
		},

		LLM: LLMConfig{
			Endpoint:             getEnv("LLM_API_ENDPOINT", "https://api.openai.com/v1/chat/completions"),
			APIKey:               getEnv("LLM_API_KEY", os.Getenv("OPENAI_API_KEY")),
			Model:                getEnv("LLM_MODEL", "chatgpt-4o-latest"),
			MaxTokens:            getEnvAsInt("LLM_MAX_TOKENS", 10000),
			CopyeditTemperature:  getEnvAsFloat("LLM_COPYEDIT_TEMPERATURE", 0.1),
			HighlightTemperature: getEnvAsFloat("LLM_HIGHLIGHT_TEMPERATURE", 0.4),
			CallTimeout:          getEnvAsDuration("LLM_CALL_TIMEOUT", 90*time.Second),
			RequestsPerMinute:    getEnvAsInt("LLM_RPM", 0),
		},

		Pipeline: PipelineConfig{
			LinesPerPartition: getEnvAsInt("PIPELINE_LINES_PER_PARTITION", 60),
			MaxConcurrent:     getEnvAsInt("PIPELINE_MAX_CONCURRENT", 8),
		},

		Video: VideoConfig{
			ProcessTimeout: getEnvAsDuration("VIDEO_PROCESS_TIMEOUT", 30*time.Minute),
			FetchRetries:   getEnvAsInt("VIDEO_FETCH_RETRIES", 3),
			StaleAfter:     getEnvAsDuration("VIDEO_STALE_AFTER", time.Hour),
		},

		Archive: ArchiveConfig{
			Endpoint:  getEnv("ARCHIVE_ENDPOINT", ""),
			Region:    getEnv("ARCHIVE_REGION", "us-east-1"),
			Bucket:    getEnv("ARCHIVE_BUCKET", ""),
			AccessKey: getEnv("ARCHIVE_ACCESS_KEY", ""),
			SecretKey: getEnv("ARCHIVE_SECRET_KEY", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validatePaths(c); err != nil {
		return err
	}
	if err := validateTimeouts(c); err != nil {
		return err
	}
	return validatePipeline(c)
}

func validatePaths(c *Config) error {
	paths := []struct {
		path string
		name string
	}{
		{c.LogDir, "log directory"},
		{filepath.Dir(c.Database.Path), "database directory"},
	}

	for _, p := range paths {
		if err := os.MkdirAll(p.path, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", p.name, err)
		}
	}

	return nil
}

func validateTimeouts(c *Config) error {
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive")
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive")
	}
	if c.LLM.CallTimeout <= 0 {
		return fmt.Errorf("llm call timeout must be positive")
	}
	if c.Video.ProcessTimeout <= 0 {
		return fmt.Errorf("video process timeout must be positive")
	}
	return nil
}

func validatePipeline(c *Config) error {
	if c.Pipeline.LinesPerPartition <= 0 {
		return fmt.Errorf("lines per partition must be positive")
	}
	if c.Pipeline.MaxConcurrent <= 0 {
		return fmt.Errorf("max concurrent must be positive")
	}
	if c.LLM.Endpoint == "" {
		return fmt.Errorf("llm endpoint must be set")
	}
	return nil
}

// Helper functions for reading environment variables
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsStringSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists {
		if value = strings.TrimSpace(value); value != "" {
			return strings.Split(value, ",")
		}
	}
	return defaultValue
}
