package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port        string   `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
	LogLevel    string   `toml:"log_level"`
}

type StoreConfig struct {
	Root        string `toml:"root"`
	MergePolicy string `toml:"merge_policy"`
}

type LLMConfig struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	APIKey    string `toml:"api_key"`
	BaseURL   string `toml:"base_url"`
	MaxTokens int    `toml:"max_tokens"`
}

type ImageConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	Size     string `toml:"size"`
}

// Prompts holds the generation prompts. Character, Location, Image and
// Summary are format strings with a single %s.
type Prompts struct {
	SystemPromptPath string `toml:"system_prompt_path"`
	System           string `toml:"system"`
	Character        string `toml:"character"`
	Location         string `toml:"location"`
	Image            string `toml:"image"`
	Summary          string `toml:"summary"`
}

type Config struct {
	Server  ServerConfig `toml:"server"`
	Store   StoreConfig  `toml:"store"`
	LLM     LLMConfig    `toml:"llm"`
	Image   ImageConfig  `toml:"image"`
	Prompts Prompts      `toml:"prompts"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8080",
			CORSOrigins: []string{"*"},
			LogLevel:    "info",
		},
		Store: StoreConfig{
			Root:        "campaigns",
			MergePolicy: "append",
		},
		LLM: LLMConfig{
			Provider:  "claude",
			Model:     "claude-sonnet-4-20250514",
			MaxTokens: 4096,
		},
		Image: ImageConfig{
			Provider: "gemini",
			Model:    "gemini-2.5-flash-image",
			Size:     "1024x1024",
		},
		Prompts: Prompts{
			System:    DefaultSystemPrompt,
			Character: DefaultCharacterPrompt,
			Location:  DefaultLocationPrompt,
			Image:     DefaultImagePrompt,
			Summary:   DefaultSummaryPrompt,
		},
	}
}

// Load reads a TOML file over the defaults. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides file values with environment variables that are set.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Server.Port, "PORT")
	set(&c.Server.LogLevel, "LOG_LEVEL")
	set(&c.Store.Root, "CAMPAIGNS_DIR")
	set(&c.Store.MergePolicy, "MERGE_POLICY")
	set(&c.LLM.Provider, "LLM_PROVIDER")
	set(&c.LLM.Model, "LLM_MODEL")
	set(&c.LLM.APIKey, "LLM_API_KEY")
	set(&c.LLM.BaseURL, "LLM_BASE_URL")
	set(&c.Image.Provider, "IMAGE_PROVIDER")
	set(&c.Image.Model, "IMAGE_MODEL")
	set(&c.Image.APIKey, "IMAGE_API_KEY")
	set(&c.Image.BaseURL, "IMAGE_BASE_URL")
	set(&c.Prompts.SystemPromptPath, "SYSTEM_PROMPT_PATH")

	if v := getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.CORSOrigins = origins
	}

	// Provider keys double as defaults for the image client.
	if c.Image.APIKey == "" {
		switch strings.ToLower(c.Image.Provider) {
		case "gemini":
			c.Image.APIKey = getenv("GEMINI_API_KEY")
		case "openai":
			c.Image.APIKey = getenv("OPENAI_API_KEY")
		}
	}
	if c.LLM.APIKey == "" {
		switch strings.ToLower(c.LLM.Provider) {
		case "claude":
			c.LLM.APIKey = getenv("ANTHROPIC_API_KEY")
		case "openai":
			c.LLM.APIKey = getenv("OPENAI_API_KEY")
		case "gemini":
			c.LLM.APIKey = getenv("GEMINI_API_KEY")
		}
	}
}

// SystemPrompt returns the narrator system prompt, read from
// SystemPromptPath when it is set.
func (c *Config) SystemPrompt() (string, error) {
	if c.Prompts.SystemPromptPath == "" {
		return c.Prompts.System, nil
	}
	data, err := os.ReadFile(c.Prompts.SystemPromptPath)
	if err != nil {
		return "", fmt.Errorf("failed to read system prompt '%s': %w", c.Prompts.SystemPromptPath, err)
	}
	return string(data), nil
}
