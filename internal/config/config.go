package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/tenantdex/internal/index"
)

// Config holds the tenantdex service configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Index   IndexConfig   `yaml:"index"`
	Corpus  CorpusConfig  `yaml:"corpus"`
	Upload  UploadConfig  `yaml:"upload"`
	Archive ArchiveConfig `yaml:"archive"`
	Web     WebConfig     `yaml:"web"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// UnboundedFeatures as index.max_features disables the vocabulary cap.
// Zero or an absent key selects index.DefaultMaxFeatures.
const UnboundedFeatures = -1

// IndexConfig holds tokenizer, vocabulary and ranking settings.
type IndexConfig struct {
	MaxFeatures    int    `yaml:"max_features"`
	MinTokenLength int    `yaml:"min_token_length"`
	StopWords      string `yaml:"stop_words"` // english, none
	DefaultTopK    int    `yaml:"default_top_k"`
	MaxTopK        int    `yaml:"max_top_k"`
	MaxDocuments   int    `yaml:"max_documents"` // 0 = unlimited
	MaxBatchSize   int    `yaml:"max_batch_size"`
}

// CorpusConfig holds the sample document folder settings.
type CorpusConfig struct {
	SampleDir       string `yaml:"sample_dir"`
	SampleTenant    string `yaml:"sample_tenant"`
	SampleGlob      string `yaml:"sample_glob"`
	LoadOnStart     bool   `yaml:"load_on_start"`
	Watch           bool   `yaml:"watch"`
	WatchDebounceMs int    `yaml:"watch_debounce_ms"`
}

// UploadConfig holds multipart upload limits.
type UploadConfig struct {
	MaxBytes int64 `yaml:"max_bytes"`
}

// ArchiveConfig holds the upload archive connection settings.
type ArchiveConfig struct {
	Driver           string   `yaml:"driver"` // "" (disabled), redis
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	KeyPrefix        string   `yaml:"key_prefix"`
	TTLHours         int      `yaml:"ttl_hours"` // 0 = keep forever
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// WebConfig holds static page settings.
type WebConfig struct {
	StaticDir string `yaml:"static_dir"`
}

// Enabled reports whether an archive backend is configured.
func (a ArchiveConfig) Enabled() bool { return a.Driver != "" }

// TTL returns the record expiry.
func (a ArchiveConfig) TTL() time.Duration { return time.Duration(a.TTLHours) * time.Hour }

// IndexSettings converts the index section into core settings.
func (c *Config) IndexSettings() index.Config {
	maxFeatures := c.Index.MaxFeatures
	if maxFeatures == UnboundedFeatures {
		maxFeatures = 0
	}
	return index.Config{
		MaxFeatures:    maxFeatures,
		MinTokenLength: c.Index.MinTokenLength,
		StopWords:      c.Index.StopWords,
		DefaultTopK:    c.Index.DefaultTopK,
		MaxDocuments:   c.Index.MaxDocuments,
	}
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A .env file in the working directory, if present, is loaded first.
func Load(env string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse expands ${VAR} references, decodes YAML, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8000
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Index.MaxFeatures == 0 {
		c.Index.MaxFeatures = index.DefaultMaxFeatures
	}
	if c.Index.MinTokenLength <= 0 {
		c.Index.MinTokenLength = 1
	}
	if c.Index.StopWords == "" {
		c.Index.StopWords = index.StopWordsEnglish
	}
	if c.Index.DefaultTopK <= 0 {
		c.Index.DefaultTopK = 3
	}
	if c.Index.MaxTopK <= 0 {
		c.Index.MaxTopK = 50
	}
	if c.Index.MaxBatchSize <= 0 {
		c.Index.MaxBatchSize = 100
	}
	if c.Corpus.SampleDir == "" {
		c.Corpus.SampleDir = "sample_docs"
	}
	if c.Corpus.SampleTenant == "" {
		c.Corpus.SampleTenant = "demo"
	}
	if c.Corpus.SampleGlob == "" {
		c.Corpus.SampleGlob = "*.md"
	}
	if c.Corpus.WatchDebounceMs <= 0 {
		c.Corpus.WatchDebounceMs = 2000
	}
	if c.Upload.MaxBytes <= 0 {
		c.Upload.MaxBytes = 10 << 20
	}
	if c.Archive.KeyPrefix == "" {
		c.Archive.KeyPrefix = "tenantdex:"
	}
	if c.Archive.ReadinessTimeout <= 0 {
		c.Archive.ReadinessTimeout = 10
	}
	if c.Web.StaticDir == "" {
		c.Web.StaticDir = "web"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Index.MaxFeatures < UnboundedFeatures {
		return fmt.Errorf("index.max_features must be >= 0 or %d for no cap, got %d", UnboundedFeatures, c.Index.MaxFeatures)
	}
	if c.Index.MaxDocuments < 0 {
		return fmt.Errorf("index.max_documents must be >= 0, got %d", c.Index.MaxDocuments)
	}
	if _, ok := index.StopWords(c.Index.StopWords); !ok {
		return fmt.Errorf("index.stop_words must be \"english\" or \"none\", got %q", c.Index.StopWords)
	}
	if c.Index.DefaultTopK > c.Index.MaxTopK {
		return fmt.Errorf("index.default_top_k (%d) exceeds index.max_top_k (%d)", c.Index.DefaultTopK, c.Index.MaxTopK)
	}
	if _, err := filepath.Match(c.Corpus.SampleGlob, ""); err != nil {
		return fmt.Errorf("corpus.sample_glob %q: %w", c.Corpus.SampleGlob, err)
	}
	if c.Archive.TTLHours < 0 {
		return fmt.Errorf("archive.ttl_hours must be >= 0, got %d", c.Archive.TTLHours)
	}
	switch c.Archive.Driver {
	case "":
	case "redis":
		if len(c.Archive.Addrs) == 0 {
			return fmt.Errorf("archive.addrs is required when archive.driver is set")
		}
	default:
		return fmt.Errorf("archive.driver must be empty or \"redis\", got %q", c.Archive.Driver)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
