package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/ini.v1"
)

// ServerConfig holds the bind address of the local API
type ServerConfig struct {
	Host string `json:"host"`
	Port string `json:"port"`
}

// TelemetryConfig configures OpenTelemetry export
type TelemetryConfig struct {
	Enabled     bool   `json:"enabled"`
	Endpoint    string `json:"endpoint"`
	ServiceName string `json:"service_name"`
}

// Config holds the main application configuration
type Config struct {
	Server ServerConfig `json:"server"`

	// Credential file
	Filename     string `json:"filename"`
	ProbeTimeout string `json:"probe_timeout"`

	// Logging
	LogFile  string `json:"log_file"`
	LogLevel string `json:"log_level"`
	Verbose  bool   `json:"verbose"`

	// Authentication
	AuthMode  string `json:"auth_mode"`
	JWTSecret string `json:"-"`

	Telemetry TelemetryConfig `json:"telemetry"`

	// Kubernetes secret token source
	KubeNamespace     string `json:"kube_namespace"`
	KubeConfig        string `json:"kubeconfig"`
	SecretPypiKey     string `json:"secret_pypi_key"`
	SecretTestpypiKey string `json:"secret_testpypi_key"`
}

const (
	defaultHost = "127.0.0.1"
	defaultPort = "5000"
)

// LoadConfig loads configuration from the optional settings file and
// environment variables. Environment variables win over the file.
func LoadConfig() *Config {
	file := loadSettingsFile(getEnv("PYPIRCGEN_CONFIG", "config.ini"))

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("HOST", file.host),
			Port: getEnv("PORT", file.port),
		},

		Filename:     getEnv("PYPIRC_FILENAME", ".pypirc"),
		ProbeTimeout: getEnv("PROBE_TIMEOUT", "10s"),

		LogFile:  getEnv("LOG_FILE", "app.log"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Verbose:  getEnvBool("VERBOSE", false),

		AuthMode:  getEnv("AUTH_MODE", "development"),
		JWTSecret: getEnv("JWT_SECRET", ""),

		Telemetry: TelemetryConfig{
			Enabled:     getEnvBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_ENDPOINT", "localhost:4317"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "pypircgen"),
		},

		KubeNamespace:     getEnv("KUBE_NAMESPACE", "default"),
		KubeConfig:        getEnv("KUBECONFIG", ""),
		SecretPypiKey:     getEnv("SECRET_PYPI_KEY", "pypi"),
		SecretTestpypiKey: getEnv("SECRET_TESTPYPI_KEY", "testpypi"),
	}

	return cfg
}

type settingsFile struct {
	host string
	port string
}

// loadSettingsFile reads host and port from an INI settings file. The
// [server] section wins; [flask] is read for settings files written for the
// earlier Flask-based tool. A missing or unreadable file yields the built-in
// defaults.
func loadSettingsFile(path string) settingsFile {
	s := settingsFile{host: defaultHost, port: defaultPort}
	if path == "" {
		return s
	}
	if _, err := os.Stat(path); err != nil {
		return s
	}
	f, err := ini.Load(path)
	if err != nil {
		return s
	}
	for _, name := range []string{"flask", "server"} {
		if !f.HasSection(name) {
			continue
		}
		section := f.Section(name)
		if host := section.Key("host").String(); host != "" {
			s.host = host
		}
		if port, err := section.Key("port").Int(); err == nil && port > 0 {
			s.port = strconv.Itoa(port)
		}
	}
	return s
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Addr returns the host:port the API binds to
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// EffectiveLogLevel returns the stderr log level. VERBOSE forces debug.
func (c *Config) EffectiveLogLevel() string {
	if c.Verbose {
		return "debug"
	}
	return c.LogLevel
}

// GetProbeTimeout returns the timeout of a single verification request
func (c *Config) GetProbeTimeout() time.Duration {
	if duration, err := time.ParseDuration(c.ProbeTimeout); err == nil && duration > 0 {
		return duration
	}
	return 10 * time.Second
}
