package config

import (
	"strings"
	"time"
)

// ApplyDefaults sets default values for any unspecified configuration
// fields.
//
// This function is called after loading configuration from file and
// environment variables to fill in any missing values with sensible
// defaults.
//
// Default Strategy:
//   - Zero values (0, "", false, nil) are replaced with defaults
//   - Explicit values are preserved
func ApplyDefaults(cfg *Config) {
	applyUDSDefaults(&cfg.UDS)
	applyComponentsDefaults(cfg)
	applySecurityDefaults(&cfg.Security)
	applyServerDefaults(&cfg.Server)
	applyPerformanceDefaults(&cfg.Performance)
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyMetricsDefaults(&cfg.Metrics)

	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 15 * time.Second
	}
}

// applyUDSDefaults sets UDS transport defaults.
func applyUDSDefaults(cfg *UDSConfig) {
	if cfg.Interface == "" {
		cfg.Interface = "can0"
	}
	if cfg.DefaultAddress == 0 {
		cfg.DefaultAddress = 0x7E0 // engine, per the well-known component catalogue
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Second
	}
	// MaxRetries defaults to 2; an unset or zero value is replaced.
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 2
	}
}

// applyComponentsDefaults seeds the well-known component catalogue when
// none is configured: engine, transmission, abs, airbag at their
// conventional UDS physical addresses.
func applyComponentsDefaults(cfg *Config) {
	if len(cfg.Components) == 0 {
		cfg.Components = map[string]uint32{
			"engine":       0x7E0,
			"transmission": 0x7E1,
			"abs":          0x7E2,
			"airbag":       0x7E3,
		}
	}
}

// applySecurityDefaults sets security-access policy defaults.
func applySecurityDefaults(cfg *SecurityConfig) {
	// RequireSecurityAccess defaults to false (opt-in).
	if cfg.RequireSecurityAccess && cfg.SecurityLevel == 0 {
		cfg.SecurityLevel = 1
	}
	applyAPIAuthDefaults(&cfg.APIAuth)
}

// applyAPIAuthDefaults sets service-token authentication defaults.
func applyAPIAuthDefaults(cfg *APIAuthConfig) {
	// Enabled defaults to false (opt-in).
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 1 * time.Hour
	}
}

// applyServerDefaults sets REST server defaults.
func applyServerDefaults(cfg *ServerConfig) {
	if cfg.Host == "" {
		cfg.Host = "0.0.0.0"
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
}

// applyPerformanceDefaults sets concurrency and pool sizing defaults.
func applyPerformanceDefaults(cfg *PerformanceConfig) {
	if cfg.MaxConcurrentRequests == 0 {
		cfg.MaxConcurrentRequests = 64
	}
	if cfg.ConnectionPoolSize == 0 {
		cfg.ConnectionPoolSize = 8
	}
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

// applyTelemetryDefaults sets OpenTelemetry defaults.
func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0
	}
	applyProfilingDefaults(&cfg.Profiling)
}

// applyProfilingDefaults sets Pyroscope profiling defaults.
func applyProfilingDefaults(cfg *ProfilingConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "http://localhost:4040"
	}
	if len(cfg.ProfileTypes) == 0 {
		cfg.ProfileTypes = []string{"cpu", "alloc_objects", "alloc_space", "goroutines"}
	}
}

// applyMetricsDefaults sets metrics defaults.
func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Enabled && cfg.Port == 0 {
		cfg.Port = 9090
	}
}

// GetDefaultConfig returns a Config struct with all default values
// applied.
//
// This is useful for generating sample configuration files, testing,
// and documentation.
func GetDefaultConfig() *Config {
	cfg := &Config{
		UDS: UDSConfig{
			Interface: "can0",
		},
		Security: SecurityConfig{
			RequireSecurityAccess: false,
			SecurityLevel:         1,
		},
		Server: ServerConfig{},
		DoIP: DoIPConfig{
			Enabled: false,
		},
	}

	ApplyDefaults(cfg)
	return cfg
}
