package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.x.ai/v1"

	EnvAPIKey     = "XAI_API_KEY"
	EnvBaseURL    = "XAI_BASE_URL"
	EnvConfigPath = "GROKMCP_CONFIG"
	EnvLogFile    = "GROKMCP_LOG_FILE"
	EnvDebug      = "GROKMCP_DEBUG"
)

// ModelsConfig holds the default model id for each tool family.
type ModelsConfig struct {
	Chat      string `toml:"chat"`
	Reasoning string `toml:"reasoning"`
	Vision    string `toml:"vision"`
	Image     string `toml:"image"`
	Search    string `toml:"search"`
	Stateful  string `toml:"stateful"`
}

// TimeoutsConfig holds per-request HTTP timeouts in seconds.
type TimeoutsConfig struct {
	DefaultSeconds       int `toml:"default_seconds"`
	ReasoningSeconds     int `toml:"reasoning_seconds"`
	DeepReasoningSeconds int `toml:"deep_reasoning_seconds"`
}

// FileConfig mirrors the on-disk TOML layout.
type FileConfig struct {
	BaseURL  string         `toml:"base_url"`
	LogFile  string         `toml:"log_file,omitempty"`
	Models   ModelsConfig   `toml:"models"`
	Timeouts TimeoutsConfig `toml:"timeouts"`
}

type Config struct {
	APIKey   string
	BaseURL  string
	LogFile  string
	Models   ModelsConfig
	Timeouts TimeoutsConfig

	// Path of the TOML file that was loaded, empty when running on defaults.
	Source string
}

var DebugLog *log.Logger

// HasAPIKey reports whether a credential is available for the vendor API.
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

func (c *Config) DefaultTimeout() time.Duration {
	return seconds(c.Timeouts.DefaultSeconds, 120)
}

func (c *Config) ReasoningTimeout() time.Duration {
	return seconds(c.Timeouts.ReasoningSeconds, 600)
}

func (c *Config) DeepReasoningTimeout() time.Duration {
	return seconds(c.Timeouts.DeepReasoningSeconds, 3600)
}

func seconds(v, fallback int) time.Duration {
	if v <= 0 {
		v = fallback
	}
	return time.Duration(v) * time.Second
}

func (c *Config) applyEnvOverrides() {
	if key := os.Getenv(EnvAPIKey); key != "" {
		c.APIKey = key
	}
	if baseURL := os.Getenv(EnvBaseURL); baseURL != "" {
		c.BaseURL = baseURL
	}
	if logFile := os.Getenv(EnvLogFile); logFile != "" {
		c.LogFile = logFile
	}
}

func CheckDebug() bool {
	debug := os.Getenv(EnvDebug)
	return debug == "true" || debug == "1"
}

// InitDebugLog enables DebugLog when GROKMCP_DEBUG is set. Output goes to the
// configured log file, or stderr when none is set. Stdout is reserved for the
// MCP stdio stream and is never used.
func InitDebugLog(cfg *Config) {
	if !CheckDebug() {
		return
	}

	var out io.Writer = os.Stderr
	logPath := ExpandPath(cfg.LogFile)

	if logPath != "" {
		// 0600: tool arguments may end up in the log
		f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		} else {
			out = f
		}
	}

	DebugLog = log.New(out, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (%s=%s) ===", EnvDebug, os.Getenv(EnvDebug))
	if logPath != "" {
		DebugLog.Printf("Log path: %s", logPath)
	}
}

// ResolvePath picks the config file: explicit flag, then GROKMCP_CONFIG, then
// the platform default.
func ResolvePath(flagPath string) string {
	if flagPath != "" {
		return ExpandPath(flagPath)
	}
	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		return ExpandPath(envPath)
	}
	return GetConfigFilePath()
}

// Load builds the process configuration. A missing config file is not an
// error; the defaults apply. Environment variables win over the file.
func Load(path string) (*Config, error) {
	fileCfg := DefaultFileConfig()
	source := ""

	if path != "" && FileExists(path) {
		loaded, err := LoadFileConfig(path)
		if err != nil {
			return nil, err
		}
		fileCfg = loaded
		source = path
	}

	cfg := &Config{
		BaseURL:  fileCfg.BaseURL,
		LogFile:  fileCfg.LogFile,
		Models:   fileCfg.Models,
		Timeouts: fileCfg.Timeouts,
		Source:   source,
	}
	cfg.applyEnvOverrides()

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return cfg, nil
}
