package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderHuggingFace = "huggingface"
	ProviderGemini      = "gemini"
	ProviderNone        = "none"
)

type Config struct {
	Server      Server      `mapstructure:"server"`
	Remote      Remote      `mapstructure:"remote"`
	HuggingFace HuggingFace `mapstructure:"huggingface"`
	Gemini      Gemini      `mapstructure:"gemini"`
	CORS        CORS        `mapstructure:"cors"`
	Log         Log         `mapstructure:"log"`
}

type Server struct {
	Port              string        `mapstructure:"port"`
	MaxBodyBytes      int64         `mapstructure:"max_body_bytes"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type Remote struct {
	Provider string `mapstructure:"provider"`
}

type HuggingFace struct {
	APIKey  string        `mapstructure:"api_key"`
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Gemini struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type CORS struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// InitConfig loads defaults, then the optional YAML file, then environment
// overrides. An empty filename skips the file.
func InitConfig(filename string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if filename != "" {
		v.SetConfigFile(filename)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", filename, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Remote.Provider = strings.ToLower(strings.TrimSpace(cfg.Remote.Provider))
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.max_body_bytes", 10<<20)
	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	v.SetDefault("remote.provider", ProviderHuggingFace)

	v.SetDefault("huggingface.url", "https://api-inference.huggingface.co/models/sayakpaul/stable-diffusion-2-1-unclip")
	v.SetDefault("huggingface.timeout", 60*time.Second)

	v.SetDefault("gemini.model", "gemini-2.5-flash-image-preview")

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Keys without a default are invisible to AutomaticEnv during Unmarshal.
func bindEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"server.port":         {"PORT"},
		"huggingface.api_key": {"HUGGINGFACE_API_KEY"},
		"gemini.api_key":      {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}

// Validate rejects settings the server cannot start with. Credentials have no
// defaults and must come from the environment or the config file.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive")
	}

	switch c.Remote.Provider {
	case ProviderHuggingFace:
		if c.HuggingFace.APIKey == "" {
			return fmt.Errorf("HUGGINGFACE_API_KEY is required when remote.provider is %q", ProviderHuggingFace)
		}
		if c.HuggingFace.URL == "" {
			return fmt.Errorf("huggingface.url is required")
		}
		if c.HuggingFace.Timeout <= 0 {
			return fmt.Errorf("huggingface.timeout must be positive")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when remote.provider is %q", ProviderGemini)
		}
		if c.Gemini.Model == "" {
			return fmt.Errorf("gemini.model is required")
		}
	case ProviderNone:
	default:
		return fmt.Errorf("unknown remote.provider %q (want %s, %s or %s)",
			c.Remote.Provider, ProviderHuggingFace, ProviderGemini, ProviderNone)
	}

	return nil
}
