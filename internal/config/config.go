package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// APIKey comes from the YOUTUBE_API_KEY environment variable (or a
	// .env file). When empty the tool falls back to the OAuth flow.
	APIKey string `yaml:"-"`

	ClientSecretFile string `yaml:"client_secret_file"`
	TokenFile        string `yaml:"token_file"`

	MaxResults        int64   `yaml:"max_results"`
	Region            string  `yaml:"region"`
	CaptionLanguage   string  `yaml:"caption_language"`
	OutputDir         string  `yaml:"output_dir"`
	LogDir            string  `yaml:"log_dir"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	CaptionRPS        float64 `yaml:"caption_requests_per_second"`
}

func defaults() *Config {
	return &Config{
		ClientSecretFile:  "client_secret.json",
		TokenFile:         "token.json",
		MaxResults:        500,
		Region:            "US",
		CaptionLanguage:   "en",
		OutputDir:         "output",
		LogDir:            "logs",
		RequestsPerSecond: 10,
		CaptionRPS:        2.5,
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// the environment (a .env file is honored when present).
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if _, err := os.Stat(path); err == nil {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error while reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("error while parsing config file %s: %w", path, err)
		}
	}

	cfg.APIKey = os.Getenv("YOUTUBE_API_KEY")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.MaxResults <= 0 {
		return fmt.Errorf("max_results must be positive, got %d", c.MaxResults)
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive, got %g", c.RequestsPerSecond)
	}
	if c.CaptionRPS <= 0 {
		return fmt.Errorf("caption_requests_per_second must be positive, got %g", c.CaptionRPS)
	}
	if c.CaptionLanguage == "" {
		return fmt.Errorf("caption_language cannot be empty")
	}
	return nil
}
