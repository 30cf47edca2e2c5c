package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const DefaultTicketKey = "AIP-6"

type Config struct {
	Viewer  ViewerConfig  `toml:"viewer"`
	Jira    JiraConfig    `toml:"jira"`
	Logging LoggingConfig `toml:"logging"`
}

type ViewerConfig struct {
	Name          string `toml:"name"`
	Environment   string `toml:"environment"`
	DefaultTicket string `toml:"default_ticket"`
}

type JiraConfig struct {
	BaseURL                string  `toml:"base_url"`
	Email                  string  `toml:"email"`
	APIToken               string  `toml:"api_token"`
	ConnectionTimeout      int     `toml:"connection_timeout"`
	ReadTimeout            int     `toml:"read_timeout"`
	MaxRetries             int     `toml:"max_retries"`
	RetryBackoffMultiplier float64 `toml:"retry_backoff_multiplier"`
	RetryBaseDelayMs       int     `toml:"retry_base_delay_ms"`
	ExpandRendered         bool    `toml:"expand_rendered"`
}

type LoggingConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	Output     string `toml:"output"`
	MaxSize    int    `toml:"max_size"`
	MaxBackups int    `toml:"max_backups"`
}

func DefaultConfig() *Config {
	return &Config{
		Viewer: ViewerConfig{
			Name:          executableName(),
			Environment:   "development",
			DefaultTicket: DefaultTicketKey,
		},
		Jira: JiraConfig{
			ConnectionTimeout:      30,
			ReadTimeout:            60,
			MaxRetries:             3,
			RetryBackoffMultiplier: 2.0,
			RetryBaseDelayMs:       1000,
		},
		Logging: *DefaultLoggingConfig(),
	}
}

// LoadConfig applies defaults, then the TOML file (explicit or auto-detected),
// then environment overrides, and finally validates the result.
func LoadConfig(configFile string) (*Config, error) {
	config := DefaultConfig()

	if configFile == "" {
		configFile = findConfigFile()
	}

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, WrapError(err, ErrorTypeConfiguration, "read_failed",
				fmt.Sprintf("failed to read config file %s", configFile))
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, WrapError(err, ErrorTypeConfiguration, "parse_failed",
				fmt.Sprintf("failed to parse config file %s", configFile))
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func findConfigFile() string {
	execPath, _ := os.Executable()
	execDir := filepath.Dir(execPath)

	possiblePaths := []string{
		filepath.Join(execDir, executableName()+".toml"),
		filepath.Join(execDir, "config.toml"),
		"config.toml",
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func executableName() string {
	execPath, err := os.Executable()
	if err != nil {
		return "jira-ticket-viewer"
	}
	execName := filepath.Base(execPath)
	return strings.TrimSuffix(execName, filepath.Ext(execName))
}

func applyEnvOverrides(config *Config) error {
	if v := os.Getenv("JIRA_BASE_URL"); v != "" {
		config.Jira.BaseURL = v
	}
	if v := os.Getenv("JIRA_EMAIL"); v != "" {
		config.Jira.Email = v
	}
	if v := os.Getenv("JIRA_API_TOKEN"); v != "" {
		config.Jira.APIToken = v
	}
	if v := os.Getenv("JIRA_DEFAULT_TICKET"); v != "" {
		config.Viewer.DefaultTicket = v
	}

	ints := []struct {
		env    string
		target *int
	}{
		{"JIRA_CONNECTION_TIMEOUT", &config.Jira.ConnectionTimeout},
		{"JIRA_READ_TIMEOUT", &config.Jira.ReadTimeout},
		{"JIRA_MAX_RETRIES", &config.Jira.MaxRetries},
		{"JIRA_RETRY_BASE_DELAY_MS", &config.Jira.RetryBaseDelayMs},
	}
	for _, o := range ints {
		v := os.Getenv(o.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return WrapError(err, ErrorTypeConfiguration, "invalid_env",
				fmt.Sprintf("%s must be an integer, got %q", o.env, v))
		}
		*o.target = n
	}

	if v := os.Getenv("JIRA_RETRY_BACKOFF_MULTIPLIER"); v != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return WrapError(err, ErrorTypeConfiguration, "invalid_env",
				fmt.Sprintf("JIRA_RETRY_BACKOFF_MULTIPLIER must be a number, got %q", v))
		}
		config.Jira.RetryBackoffMultiplier = f
	}

	if v := os.Getenv("JIRA_EXPAND_RENDERED"); v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return WrapError(err, ErrorTypeConfiguration, "invalid_env",
				fmt.Sprintf("JIRA_EXPAND_RENDERED must be true or false, got %q", v))
		}
		config.Jira.ExpandRendered = b
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.Logging.Level = logLevel
	}
	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		config.Logging.Format = logFormat
	}
	if logOutput := os.Getenv("LOG_OUTPUT"); logOutput != "" {
		config.Logging.Output = logOutput
	}

	return nil
}

func (c *Config) Validate() error {
	if _, err := c.Jira.Credentials(); err != nil {
		return err
	}

	if strings.TrimSpace(c.Viewer.DefaultTicket) == "" {
		c.Viewer.DefaultTicket = DefaultTicketKey
	}

	validLogLevels := []string{"debug", "info", "warn", "error", "fatal", "panic"}
	validLevel := false
	for _, level := range validLogLevels {
		if c.Logging.Level == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return NewConfigurationError("invalid_log_level", fmt.Sprintf("invalid log level: %s", c.Logging.Level))
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return NewConfigurationError("invalid_log_format", fmt.Sprintf("invalid log format: %s", c.Logging.Format))
	}

	validOutputs := []string{"console", "file", "both"}
	validOutput := false
	for _, output := range validOutputs {
		if c.Logging.Output == output {
			validOutput = true
			break
		}
	}
	if !validOutput {
		return NewConfigurationError("invalid_log_output", fmt.Sprintf("invalid log output: %s", c.Logging.Output))
	}

	return nil
}

// Credentials converts the Jira section into validated Credentials
func (j JiraConfig) Credentials() (Credentials, error) {
	creds := Credentials{
		BaseURL:           strings.TrimRight(strings.TrimSpace(j.BaseURL), "/"),
		Identity:          strings.TrimSpace(j.Email),
		Secret:            j.APIToken,
		ConnectTimeout:    time.Duration(j.ConnectionTimeout) * time.Second,
		ReadTimeout:       time.Duration(j.ReadTimeout) * time.Second,
		MaxRetries:        j.MaxRetries,
		BackoffMultiplier: j.RetryBackoffMultiplier,
		RetryBaseDelay:    time.Duration(j.RetryBaseDelayMs) * time.Millisecond,
	}
	if err := creds.Validate(); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

func (c *Config) IsProduction() bool {
	return c.Viewer.Environment == "production"
}

// Warnings lists settings that are valid but risky for the current environment
func (c *Config) Warnings() []string {
	var warnings []string
	if c.IsProduction() && strings.HasPrefix(strings.ToLower(strings.TrimSpace(c.Jira.BaseURL)), "http://") {
		warnings = append(warnings, "Jira base URL uses plain http; the API token is sent unencrypted")
	}
	if c.IsProduction() && c.Logging.Level == "debug" {
		warnings = append(warnings, "debug logging is enabled in production")
	}
	return warnings
}
