package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvAPIKey, EnvBaseURL, EnvConfigPath, EnvLogFile, EnvDebug} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.Models.Chat != DefaultChatModel {
		t.Errorf("Models.Chat = %q, want %q", cfg.Models.Chat, DefaultChatModel)
	}
	if cfg.Models.Image != DefaultImageModel {
		t.Errorf("Models.Image = %q, want %q", cfg.Models.Image, DefaultImageModel)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
	if cfg.HasAPIKey() {
		t.Error("HasAPIKey() = true with no key set")
	}
	if cfg.DefaultTimeout() != 120*time.Second {
		t.Errorf("DefaultTimeout() = %v", cfg.DefaultTimeout())
	}
	if cfg.DeepReasoningTimeout() != time.Hour {
		t.Errorf("DeepReasoningTimeout() = %v", cfg.DeepReasoningTimeout())
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
base_url = "http://file.example/v1/"

[models]
chat = "grok-3"

[timeouts]
reasoning_seconds = 30
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvAPIKey, "xai-test")
	t.Setenv(EnvBaseURL, "http://env.example/v1/")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Source != path {
		t.Errorf("Source = %q, want %q", cfg.Source, path)
	}
	if cfg.BaseURL != "http://env.example/v1" {
		t.Errorf("BaseURL = %q, env should win and trailing slash be trimmed", cfg.BaseURL)
	}
	if cfg.Models.Chat != "grok-3" {
		t.Errorf("Models.Chat = %q, want grok-3", cfg.Models.Chat)
	}
	if cfg.Models.Vision != DefaultVisionModel {
		t.Errorf("Models.Vision = %q, unset keys should keep defaults", cfg.Models.Vision)
	}
	if cfg.ReasoningTimeout() != 30*time.Second {
		t.Errorf("ReasoningTimeout() = %v, want 30s", cfg.ReasoningTimeout())
	}
	if cfg.DefaultTimeout() != 120*time.Second {
		t.Errorf("DefaultTimeout() = %v, want 120s", cfg.DefaultTimeout())
	}
	if !cfg.HasAPIKey() {
		t.Error("HasAPIKey() = false with XAI_API_KEY set")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("api_key = \"nope\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected error for unknown key")
	}
}

func TestGenerateConfigTemplateDecodes(t *testing.T) {
	cfg := &FileConfig{}
	meta, err := toml.Decode(GenerateConfigTemplate(), cfg)
	if err != nil {
		t.Fatalf("template does not decode: %v", err)
	}
	if len(meta.Undecoded()) != 0 {
		t.Errorf("template has undecoded keys: %v", meta.Undecoded())
	}

	want := DefaultFileConfig()
	if cfg.BaseURL != want.BaseURL || cfg.Models != want.Models || cfg.Timeouts != want.Timeouts {
		t.Errorf("template = %+v, want defaults %+v", cfg, want)
	}
}

func TestResolvePath(t *testing.T) {
	clearEnv(t)

	if got := ResolvePath("/tmp/explicit.toml"); got != "/tmp/explicit.toml" {
		t.Errorf("ResolvePath(flag) = %q", got)
	}

	t.Setenv(EnvConfigPath, "/tmp/env.toml")
	if got := ResolvePath(""); got != "/tmp/env.toml" {
		t.Errorf("ResolvePath(env) = %q", got)
	}

	t.Setenv(EnvConfigPath, "")
	if got := ResolvePath(""); got != GetConfigFilePath() {
		t.Errorf("ResolvePath(default) = %q, want %q", got, GetConfigFilePath())
	}
}

func TestInitDebugLog(t *testing.T) {
	t.Cleanup(func() { DebugLog = nil })

	tests := []struct {
		name    string
		debug   string
		wantLog bool
	}{
		{"unset", "", false},
		{"false", "false", false},
		{"true", "true", true},
		{"one", "1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvDebug, tt.debug)
			DebugLog = nil

			logPath := filepath.Join(t.TempDir(), "debug.log")
			InitDebugLog(&Config{LogFile: logPath})

			if (DebugLog != nil) != tt.wantLog {
				t.Fatalf("DebugLog set = %v, want %v", DebugLog != nil, tt.wantLog)
			}
			if !tt.wantLog {
				if FileExists(logPath) {
					t.Error("log file created while debug is off")
				}
				return
			}

			DebugLog.Printf("hello")
			data, err := os.ReadFile(logPath)
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			if !strings.Contains(string(data), "Debug logging started") || !strings.Contains(string(data), "hello") {
				t.Errorf("log = %q", data)
			}
		})
	}
}
