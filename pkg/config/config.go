package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the sovdgw configuration.
//
// This structure captures static configuration for the diagnostics
// gateway:
//   - UDS transport and component catalogue
//   - Security access policy
//   - REST server bind settings
//   - Performance/pool sizing
//   - Logging and telemetry
//
// Configuration sources (in order of precedence):
//  1. Environment variables (SOVDGW_*)
//  2. Configuration file (YAML)
//  3. Default values (lowest priority)
type Config struct {
	// UDS controls the transport interface used to reach ECUs.
	UDS UDSConfig `mapstructure:"uds" yaml:"uds"`

	// Components maps a SOVD component id (e.g. "engine") to its UDS
	// target address (e.g. 0x7E0).
	Components map[string]uint32 `mapstructure:"components" validate:"required,min=1" yaml:"components"`

	// Security controls the security-access policy applied before
	// write/actuator/service operations that require it.
	Security SecurityConfig `mapstructure:"security" yaml:"security"`

	// Server controls the REST API bind address and timeouts.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Performance bounds concurrency and session pool sizing.
	Performance PerformanceConfig `mapstructure:"performance" yaml:"performance"`

	// DoIP is parsed and validated but never consumed: this gateway
	// talks to ECUs through a NativeClient collaborator, not a DoIP
	// stack of its own.
	DoIP DoIPConfig `mapstructure:"doip" yaml:"doip"`

	// Logging controls log output behavior.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Telemetry controls OpenTelemetry distributed tracing.
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`

	// Metrics contains Prometheus metrics server configuration.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// ShutdownTimeout is loaded and defaulted but not read: the API
	// server bounds its graceful shutdown with a fixed 5-second timeout.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required,gt=0" yaml:"shutdown_timeout"`
}

// UDSConfig controls the transport used to reach ECUs.
type UDSConfig struct {
	// Interface names the transport interface the NativeClient
	// collaborator binds to (e.g. "can0", "vcan0").
	Interface string `mapstructure:"interface" validate:"required" yaml:"interface"`

	// DefaultAddress is loaded and defaulted but not read: a component
	// id with no entry in Components is reported as not found.
	DefaultAddress uint32 `mapstructure:"default_address" yaml:"default_address"`

	// Timeout bounds a single UDS request/response round trip,
	// including any 0x78 (response pending) extensions.
	Timeout time.Duration `mapstructure:"timeout" validate:"required,gt=0" yaml:"timeout"`

	// MaxRetries is the number of retry attempts for a UDS request
	// that fails with a transport error. Retryable negative response
	// codes are retried once regardless of this value.
	MaxRetries int `mapstructure:"max_retries" validate:"gte=0" yaml:"max_retries"`
}

// SecurityConfig controls the UDS security-access policy.
type SecurityConfig struct {
	// RequireSecurityAccess gates write-data-by-identifier, actuator
	// control, and routine-control style service calls behind a
	// seed/key handshake.
	RequireSecurityAccess bool `mapstructure:"require_security_access" yaml:"require_security_access"`

	// SecurityLevel is the access level requested. The request-seed
	// sub-function is 2*level-1, the send-key sub-function is 2*level.
	SecurityLevel byte `mapstructure:"security_level" validate:"gte=1" yaml:"security_level"`

	// APIAuth controls whether inbound REST requests must carry a
	// valid bearer token issued by sovdgwctl.
	APIAuth APIAuthConfig `mapstructure:"api_auth" yaml:"api_auth"`
}

// APIAuthConfig controls service-to-service bearer token authentication
// on the REST surface.
type APIAuthConfig struct {
	// Enabled controls whether requests must carry a valid bearer token.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// SigningKey signs and validates issued tokens (HMAC).
	SigningKey string `mapstructure:"signing_key" yaml:"signing_key,omitempty"`

	// TokenTTL is the lifetime of issued service tokens.
	TokenTTL time.Duration `mapstructure:"token_ttl" yaml:"token_ttl"`
}

// ServerConfig controls the REST API HTTP server.
type ServerConfig struct {
	// Host is the bind address for the REST API.
	Host string `mapstructure:"host" validate:"required" yaml:"host"`

	// Port is the bind port for the REST API.
	Port int `mapstructure:"port" validate:"required,min=1,max=65535" yaml:"port"`

	// RequestTimeout bounds the total time spent handling a single
	// REST request, including any UDS round trips it triggers.
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"required,gt=0" yaml:"request_timeout"`
}

// PerformanceConfig bounds concurrency and session pool sizing.
type PerformanceConfig struct {
	// MaxConcurrentRequests is loaded and defaulted but not read; the
	// number of in-flight REST requests is not bounded by it.
	MaxConcurrentRequests int `mapstructure:"max_concurrent_requests" validate:"gte=0" yaml:"max_concurrent_requests"`

	// ConnectionPoolSize bounds the number of pooled ECU sessions kept
	// warm by internal/uds/pool.
	ConnectionPoolSize int `mapstructure:"connection_pool_size" validate:"gte=0" yaml:"connection_pool_size"`
}

// DoIPConfig is parsed and validated for config-surface parity with the
// adapter this gateway was modeled on, but is never read: DoIP/CAN-TP
// transport is out of scope, the NativeClient collaborator owns that.
type DoIPConfig struct {
	Enabled           bool   `mapstructure:"enabled" yaml:"enabled"`
	TargetAddress     string `mapstructure:"target_address" yaml:"target_address,omitempty"`
	Port              int    `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port,omitempty"`
	SourceAddress     uint32 `mapstructure:"source_address" yaml:"source_address,omitempty"`
	TargetLogicalAddr uint32 `mapstructure:"target_logical_address" yaml:"target_logical_address,omitempty"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output.
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive).
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`

	// Format specifies the log output format: text or json.
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`

	// Output specifies where logs are written: stdout, stderr, or a
	// file path.
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// TelemetryConfig controls OpenTelemetry distributed tracing.
type TelemetryConfig struct {
	// Enabled controls whether distributed tracing is enabled.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Endpoint is the OTLP collector endpoint (host:port).
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// Insecure controls whether to use an insecure (non-TLS) connection.
	Insecure bool `mapstructure:"insecure" yaml:"insecure"`

	// SampleRate controls the trace sampling rate (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate" validate:"omitempty,gte=0,lte=1" yaml:"sample_rate"`

	// Profiling contains Pyroscope continuous profiling configuration.
	Profiling ProfilingConfig `mapstructure:"profiling" yaml:"profiling"`
}

// ProfilingConfig controls Pyroscope continuous profiling.
type ProfilingConfig struct {
	// Enabled controls whether continuous profiling is enabled.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Endpoint is the Pyroscope server endpoint (URL).
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// ProfileTypes specifies which profile types to collect.
	ProfileTypes []string `mapstructure:"profile_types" yaml:"profile_types"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and exposed at
	// GET /metrics on the REST API server.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Port is loaded and defaulted but not read: there is no separate
	// metrics listener.
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`
}

// validate is the package-level validator instance, reused across calls.
var validate = validator.New()

// Validate checks a loaded Config against its struct-tag constraints.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Security.RequireSecurityAccess && cfg.Security.SecurityLevel == 0 {
		return fmt.Errorf("invalid configuration: security.security_level must be set when security.require_security_access is true")
	}

	for name, addr := range cfg.Components {
		if addr == 0 {
			return fmt.Errorf("invalid configuration: components.%s has no UDS address", name)
		}
	}

	return nil
}

// Load loads configuration from file, environment, and defaults.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (SOVDGW_*)
//  2. Configuration file
//  3. Default values
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	configFileFound, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}

	if !configFileFound {
		cfg := GetDefaultConfig()
		return cfg, nil
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad loads configuration with helpful error messages.
func MustLoad(configPath string) (*Config, error) {
	if configPath == "" {
		if !DefaultConfigExists() {
			return nil, fmt.Errorf("no configuration file found at default location: %s\n\n"+
				"Please initialize a configuration file first:\n"+
				"  sovdgwctl config init\n\n"+
				"Or specify a custom config file:\n"+
				"  sovdgw <command> --config /path/to/config.yaml",
				GetDefaultConfigPath())
		}
		configPath = GetDefaultConfigPath()
	} else {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s\n\n"+
				"Please create the configuration file:\n"+
				"  sovdgwctl config init --config %s",
				configPath, configPath)
		}
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to the specified file path in YAML.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setupViper configures viper with environment variable and config file
// settings.
func setupViper(v *viper.Viper, configPath string) {
	// Environment variables use the SOVDGW_ prefix and underscores.
	// Example: SOVDGW_LOGGING_LEVEL=DEBUG
	v.SetEnvPrefix("SOVDGW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		configDir := getConfigDir()
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists.
// Returns (fileFound, error).
func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}

	return true, nil
}

// configDecodeHooks returns the combined decode hook for custom types.
func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		durationDecodeHook(),
	)
}

// durationDecodeHook converts strings to time.Duration, enabling config
// files to use human-readable durations like "30s", "5m", "1h".
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return time.ParseDuration(v)
		case int:
			return time.Duration(v), nil
		case int64:
			return time.Duration(v), nil
		case float64:
			return time.Duration(v), nil
		default:
			return data, nil
		}
	}
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "sovdgw")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "sovdgw")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists checks if a config file exists at the default
// location.
func DefaultConfigExists() bool {
	path := GetDefaultConfigPath()
	_, err := os.Stat(path)
	return err == nil
}

// GetConfigDir returns the configuration directory path (exposed for the
// init command).
func GetConfigDir() string {
	return getConfigDir()
}
