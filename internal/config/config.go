// Package config loads the YAML configuration of the server and CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/0xcro3dile/lecturesum-go/internal/adapters/llm"
	"github.com/0xcro3dile/lecturesum-go/internal/adapters/store"
	"github.com/0xcro3dile/lecturesum-go/internal/domain/entities"
)

const DefaultConfigPath = "config.yaml"

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	LLM        LLMConfig        `yaml:"llm"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Store      StoreConfig      `yaml:"store"`
	Watch      WatchConfig      `yaml:"watch"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	MaxUploadMB    int      `yaml:"max_upload_mb"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	Debug          bool     `yaml:"debug"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type LLMConfig struct {
	Provider          string                 `yaml:"provider"`
	BaseURL           string                 `yaml:"base_url"`
	APIKey            string                 `yaml:"api_key"`
	Models            []entities.ModelOption `yaml:"models"`
	DefaultModel      string                 `yaml:"default_model"`
	Temperature       float64                `yaml:"temperature"`
	MaxTokens         int                    `yaml:"max_tokens"`
	Timeout           time.Duration          `yaml:"timeout"`
	RequestsPerSecond float64                `yaml:"requests_per_second"`
}

type SummarizerConfig struct {
	ChunkSize int `yaml:"chunk_size"`
}

type StoreConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

type WatchConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Inbox       string        `yaml:"inbox"`
	Outbox      string        `yaml:"outbox"`
	Model       string        `yaml:"model"`
	SummaryType string        `yaml:"summary_type"`
	SettleDelay time.Duration `yaml:"settle_delay"`
}

// defaultModels is the selectable list per provider when the file names none.
var defaultModels = map[string][]entities.ModelOption{
	llm.ProviderGroq: {
		{ID: "llama-3.3-70b-versatile", Label: "Llama 3.3 70B", Hint: "Best quality"},
		{ID: "llama-3.1-8b-instant", Label: "Llama 3.1 8B", Hint: "Fastest"},
		{ID: "mixtral-8x7b-32768", Label: "Mixtral 8x7B", Hint: "Balanced"},
	},
	llm.ProviderOpenAI: {
		{ID: "gpt-4o-mini", Label: "GPT-4o mini", Hint: "Fastest"},
		{ID: "gpt-4o", Label: "GPT-4o", Hint: "Best quality"},
	},
	llm.ProviderAnthropic: {
		{ID: "claude-haiku-4-5-20251001", Label: "Claude Haiku 4.5", Hint: "Fastest"},
		{ID: "claude-3-haiku-20240307", Label: "Claude 3 Haiku", Hint: "Cheapest"},
	},
	llm.ProviderGemini: {
		{ID: "gemini-2.5-flash", Label: "Gemini 2.5 Flash", Hint: "Balanced"},
	},
	llm.ProviderOllama: {
		{ID: "llama3.2", Label: "Llama 3.2 (local)", Hint: "Private"},
	},
}

// Default returns the built-in configuration, already validated.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// Load reads path (DefaultConfigPath when empty), applies environment
// overrides and validates the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := &Config{}
	content, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

// applyEnv overrides file values with LECTURESUM_* variables. GROQ_API_KEY is
// honoured when no other key is set.
func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("LECTURESUM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = getenv("GROQ_API_KEY")
	}
	if v := getenv("LECTURESUM_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := getenv("LECTURESUM_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate fills defaults and rejects values the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8501"
	}
	if c.Server.MaxUploadMB < 0 {
		return fmt.Errorf("server.max_upload_mb must not be negative")
	}
	if c.Server.MaxUploadMB == 0 {
		c.Server.MaxUploadMB = 200
	}

	c.Logging.Level = strings.ToLower(c.Logging.Level)
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	c.Logging.Format = strings.ToLower(c.Logging.Format)
	switch c.Logging.Format {
	case "":
		c.Logging.Format = "console"
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}

	if err := c.validateLLM(); err != nil {
		return err
	}

	if c.Summarizer.ChunkSize < 0 {
		return fmt.Errorf("summarizer.chunk_size must be positive")
	}
	if c.Summarizer.ChunkSize == 0 {
		c.Summarizer.ChunkSize = 3000
	}

	c.Store.Driver = strings.ToLower(c.Store.Driver)
	switch c.Store.Driver {
	case "":
		c.Store.Driver = store.DriverMemory
	case store.DriverMemory, store.DriverSQLite:
	default:
		return fmt.Errorf("store.driver %q must be %s or %s", c.Store.Driver, store.DriverMemory, store.DriverSQLite)
	}
	if c.Store.Path == "" {
		c.Store.Path = "./data"
	}

	if c.Watch.Inbox == "" {
		c.Watch.Inbox = "./inbox"
	}
	if c.Watch.Outbox == "" {
		c.Watch.Outbox = "./outbox"
	}
	st, err := entities.ParseSummaryType(c.Watch.SummaryType)
	if err != nil {
		return fmt.Errorf("watch.summary_type: %w", err)
	}
	c.Watch.SummaryType = string(st)
	if c.Watch.Model == "" {
		c.Watch.Model = c.LLM.DefaultModel
	}
	if c.Watch.SettleDelay <= 0 {
		c.Watch.SettleDelay = 2 * time.Second
	}
	if c.Watch.Enabled && c.LLM.APIKey == "" && c.KeyRequired() {
		return fmt.Errorf("watch.enabled requires llm.api_key")
	}

	return nil
}

func (c *Config) validateLLM() error {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if c.LLM.Provider == "" {
		c.LLM.Provider = llm.ProviderGroq
	}
	known := false
	for _, p := range llm.Providers() {
		if p == c.LLM.Provider {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("llm.provider %q is not one of %s", c.LLM.Provider, strings.Join(llm.Providers(), ", "))
	}
	if c.LLM.Provider == llm.ProviderOpenAICompatible && c.LLM.BaseURL == "" {
		return fmt.Errorf("llm.base_url is required for %s", c.LLM.Provider)
	}

	if len(c.LLM.Models) == 0 {
		c.LLM.Models = append([]entities.ModelOption(nil), defaultModels[c.LLM.Provider]...)
	}
	if len(c.LLM.Models) == 0 {
		return fmt.Errorf("llm.models is required for %s", c.LLM.Provider)
	}
	for i, m := range c.LLM.Models {
		if strings.TrimSpace(m.ID) == "" {
			return fmt.Errorf("llm.models[%d].id is required", i)
		}
		if m.Label == "" {
			c.LLM.Models[i].Label = m.ID
		}
	}
	if c.LLM.DefaultModel == "" {
		c.LLM.DefaultModel = c.LLM.Models[0].ID
	}
	if !c.HasModel(c.LLM.DefaultModel) {
		return fmt.Errorf("llm.default_model %q is not in llm.models", c.LLM.DefaultModel)
	}

	if c.LLM.Temperature < 0 {
		return fmt.Errorf("llm.temperature must not be negative")
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.3
	}
	if c.LLM.MaxTokens < 0 {
		return fmt.Errorf("llm.max_tokens must be positive")
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 2000
	}
	if c.LLM.Timeout <= 0 {
		c.LLM.Timeout = 120 * time.Second
	}
	if c.LLM.RequestsPerSecond < 0 {
		return fmt.Errorf("llm.requests_per_second must not be negative")
	}
	return nil
}

// HasModel reports whether id is one of the configured models.
func (c *Config) HasModel(id string) bool {
	for _, m := range c.LLM.Models {
		if m.ID == id {
			return true
		}
	}
	return false
}

// KeyRequired reports whether the configured provider needs an API key.
func (c *Config) KeyRequired() bool {
	return llm.RequiresAPIKey(c.LLM.Provider)
}

// MaxUploadBytes is the request body limit for uploads.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}

// LLMOptions converts the llm section for llm.New.
func (c *Config) LLMOptions() llm.Options {
	return llm.Options{
		Provider:          c.LLM.Provider,
		BaseURL:           c.LLM.BaseURL,
		Timeout:           c.LLM.Timeout,
		RequestsPerSecond: c.LLM.RequestsPerSecond,
	}
}
