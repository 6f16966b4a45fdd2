// Package config resolves runtime settings from defaults, an optional config
// file and STUDYNAV_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/abhisek/studynav/internal/llm"
)

// EnvPrefix namespaces environment overrides: chat.reply_delay is read from
// STUDYNAV_CHAT_REPLY_DELAY.
const EnvPrefix = "STUDYNAV"

// Chat backends.
const (
	BackendAuto   = "auto"
	BackendCanned = "canned"
	BackendLLM    = "llm"
)

type Config struct {
	// DBPath overrides the default history database location.
	DBPath string `mapstructure:"db_path"`
	// Catalog points at a catalog JSON document; empty uses the built-in seed.
	Catalog string `mapstructure:"catalog"`

	Log    LogConfig    `mapstructure:"log"`
	Chat   ChatConfig   `mapstructure:"chat"`
	Upload UploadConfig `mapstructure:"upload"`
	LLM    llm.Config   `mapstructure:"llm"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	// File is the log destination; empty writes studynav.log in the data dir.
	File string `mapstructure:"file"`
}

type ChatConfig struct {
	// Backend is auto, canned or llm. Auto uses an LLM when one is configured.
	Backend     string        `mapstructure:"backend"`
	ReplyDelay  time.Duration `mapstructure:"reply_delay"`
	MaxHistory  int           `mapstructure:"max_history"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
}

type UploadConfig struct {
	Tick time.Duration `mapstructure:"tick"`
}

// Default returns the built-in settings.
func Default() Config {
	cfg := Config{
		Log: LogConfig{Level: "info"},
		Chat: ChatConfig{
			Backend:     BackendAuto,
			ReplyDelay:  1500 * time.Millisecond,
			MaxHistory:  10,
			MaxTokens:   1024,
			Temperature: 0.3,
		},
		Upload: UploadConfig{Tick: 200 * time.Millisecond},
		LLM:    llm.DefaultConfig(),
	}
	cfg.LLM.Provider = ""
	return cfg
}

// Load layers defaults, the file (when set) and the environment, then
// validates the result.
func Load(file string) (Config, error) {
	cfg := Default()
	v := viper.New()

	m := make(map[string]any)
	if err := mapstructure.Decode(cfg, &m); err != nil {
		return cfg, fmt.Errorf("mapstructure: %w", err)
	}
	// Registered as defaults rather than merged so that every key stays
	// visible to AutomaticEnv even when the file omits it.
	for key, val := range flatten("", m) {
		v.SetDefault(key, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("read config from file %s: %w", file, err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func flatten(prefix string, m map[string]any) map[string]any {
	out := make(map[string]any)
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			for nk, nv := range flatten(key, nested) {
				out[nk] = nv
			}
			continue
		}
		out[key] = v
	}
	return out
}

// Validate rejects settings the app cannot run with.
func (c Config) Validate() error {
	switch c.Chat.Backend {
	case BackendAuto, BackendCanned, BackendLLM:
	default:
		return fmt.Errorf("chat.backend: unknown backend %q", c.Chat.Backend)
	}
	if c.Chat.MaxHistory < 0 {
		return fmt.Errorf("chat.max_history: must not be negative")
	}
	if c.Upload.Tick < 0 {
		return fmt.Errorf("upload.tick: must not be negative")
	}
	if c.LLM.Provider != "" {
		if err := c.LLM.Validate(); err != nil {
			return fmt.Errorf("llm: %w", err)
		}
	}
	return nil
}

// ResolveLLM returns the provider config to use, or false when the copilot
// should stay on canned replies. An explicit llm.provider wins; otherwise the
// standard provider API key variables are probed.
func (c Config) ResolveLLM() (llm.Config, bool) {
	if c.Chat.Backend == BackendCanned {
		return llm.Config{}, false
	}
	if c.LLM.Provider != "" {
		return c.LLM, true
	}
	discovered, ok := llm.DiscoverConfig()
	if !ok {
		return llm.Config{}, false
	}
	discovered.Retry = c.LLM.Retry
	discovered.Timeout = c.LLM.Timeout
	return discovered, true
}
