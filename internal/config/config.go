package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`

	// APIToken, when set, is required as a bearer token on all API requests.
	APIToken string `envconfig:"API_TOKEN"`

	// DocsDir is the local directory scanned for guidance documents.
	DocsDir string `envconfig:"DOCS_DIR" default:"./docs"`

	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"sponsorag-docs"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`

	SearchTopK int `envconfig:"SEARCH_TOP_K" default:"5"`

	EmbedTimeout      time.Duration `envconfig:"EMBED_TIMEOUT" default:"30s"`
	SearchTimeout     time.Duration `envconfig:"SEARCH_TIMEOUT" default:"10s"`
	CompletionTimeout time.Duration `envconfig:"COMPLETION_TIMEOUT" default:"120s"`

	IngestPollInterval time.Duration `envconfig:"INGEST_POLL_INTERVAL" default:"5m"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("SPONSORAG", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}

func (c *Config) HasAuth() bool {
	return c.APIToken != ""
}
