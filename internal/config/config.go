package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/linkroute/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "linkroute.json"

	// DefaultAddr is the default HTTP bridge listen address.
	DefaultAddr = ":8080"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "linkroute"

	// DefaultTracerName is the default OpenTelemetry tracer name.
	DefaultTracerName = "linkroute"
)

// Config represents the complete linkroute.json configuration.
type Config struct {
	// Manifest is the route manifest location: a file path, relative to
	// the config file, or "s3://bucket/key".
	Manifest string `json:"manifest,omitempty"`

	// Backtracking switches lookups to the backtracking matcher.
	Backtracking bool `json:"backtracking,omitempty"`

	// HTTP contains HTTP bridge configuration.
	HTTP HTTPConfig `json:"http,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// RateLimit contains dispatch rate limiting configuration.
	RateLimit RateLimitConfig `json:"rateLimit,omitempty"`

	// S3 contains the client settings for s3:// manifests.
	S3 S3Config `json:"s3,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// HTTPConfig contains HTTP bridge configuration.
type HTTPConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty"`
}

// MetricsConfig contains Prometheus configuration.
type MetricsConfig struct {
	// Enabled records dispatch metrics and serves /metrics.
	Enabled bool `json:"enabled,omitempty"`

	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry configuration.
type TracingConfig struct {
	// Enabled traces every dispatched request.
	Enabled bool `json:"enabled,omitempty"`

	// TracerName is the tracer requested from the global provider.
	TracerName string `json:"tracerName,omitempty"`
}

// RateLimitConfig contains dispatch rate limiting configuration.
type RateLimitConfig struct {
	// PerSecond is the sustained request rate. Zero disables limiting.
	PerSecond float64 `json:"perSecond,omitempty"`

	// Burst is the number of requests admitted at once.
	Burst int `json:"burst,omitempty"`
}

// S3Config contains S3 client configuration.
type S3Config struct {
	// Region is the AWS region.
	Region string `json:"region,omitempty"`

	// Endpoint overrides the S3 endpoint, e.g. for MinIO.
	Endpoint string `json:"endpoint,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr: DefaultAddr,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			TracerName: DefaultTracerName,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for linkroute.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("C001").
				WithDetail("No " + filepath.Base(path) + " found in " + filepath.Dir(path))
		}
		return nil, errors.New("C002").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("C002").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("C002").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("C002").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for fields a config file blanked.
func (c *Config) applyDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = DefaultAddr
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.RateLimit.PerSecond < 0 || c.RateLimit.Burst < 0 {
		return errors.New("C002").
			WithDetail("rateLimit.perSecond and rateLimit.burst must not be negative")
	}
	if c.RateLimit.PerSecond > 0 && c.RateLimit.Burst == 0 {
		return errors.New("C002").
			WithDetail("rateLimit.burst must be at least 1 when rateLimit.perSecond is set")
	}
	if strings.HasPrefix(c.Manifest, "s3://") && c.S3.Region == "" {
		return errors.New("C002").
			WithDetail("s3.region is required for manifest " + c.Manifest)
	}
	return nil
}

// ManifestLocation returns the manifest location with file paths resolved
// against the config directory.
func (c *Config) ManifestLocation() string {
	if c.Manifest == "" || strings.HasPrefix(c.Manifest, "s3://") || filepath.IsAbs(c.Manifest) {
		return c.Manifest
	}
	return filepath.Join(c.Dir(), c.Manifest)
}

// RateLimited reports whether dispatch rate limiting is configured.
func (c *Config) RateLimited() bool {
	return c.RateLimit.PerSecond > 0
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the nearest directory
// containing linkroute.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("C001").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working
// directory or its nearest ancestor holding linkroute.json.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
