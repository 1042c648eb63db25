// Package config loads the tool configuration from YAML with environment
// variable overrides.
package config

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the retrieval engine.
type Config struct {
	Ingest    IngestConfig    `yaml:"ingest"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Storage   StorageConfig   `yaml:"storage"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// IngestConfig holds chunking and directory-scan configuration.
type IngestConfig struct {
	ChunkSize    int      `yaml:"chunk_size" env:"RAGCORE_CHUNK_SIZE"`
	ChunkOverlap int      `yaml:"chunk_overlap" env:"RAGCORE_CHUNK_OVERLAP"`
	Includes     []string `yaml:"includes"`
	Excludes     []string `yaml:"excludes"`
}

// RetrieveConfig holds query-time configuration.
type RetrieveConfig struct {
	TopK int `yaml:"top_k" env:"RAGCORE_TOP_K"`
}

// EmbeddingConfig holds the embedding model identity.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider" env:"RAGCORE_EMBEDDING_PROVIDER"` // "openai" or "mock"
	Model     string `yaml:"model" env:"RAGCORE_EMBEDDING_MODEL"`
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url" env:"RAGCORE_EMBEDDING_BASE_URL"`
	Dimension int    `yaml:"dimension" env:"RAGCORE_EMBEDDING_DIMENSION"`
}

// LLMConfig holds the optional generation model. Generation is disabled
// when Enabled is false; queries then return context and sources only.
type LLMConfig struct {
	Enabled   bool   `yaml:"enabled" env:"RAGCORE_LLM_ENABLED"`
	Model     string `yaml:"model" env:"RAGCORE_LLM_MODEL"`
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url" env:"RAGCORE_LLM_BASE_URL"`
}

// StorageConfig holds the data directory for snapshot and registry files.
type StorageConfig struct {
	DataDir string `yaml:"data_dir" env:"RAGCORE_DATA_DIR"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" env:"RAGCORE_LOG_LEVEL"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Ingest: IngestConfig{
			ChunkSize:    1000,
			ChunkOverlap: 200,
			Includes:     []string{"**/*.txt", "**/*.md", "**/*.markdown", "**/*.csv", "**/*.pdf"},
			Excludes:     []string{"**/.git/**", "**/node_modules/**"},
		},
		Retrieve: RetrieveConfig{
			TopK: 5,
		},
		Embedding: EmbeddingConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 1536,
		},
		LLM: LLMConfig{
			Enabled:   false,
			Model:     "gpt-4o-mini",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		Storage: StorageConfig{
			DataDir: "data",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a YAML file and applies environment
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnv(cfg)
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return applyEnv(cfg)
}

// LoadFromDir looks for ragcore.yaml in the directory, then
// .ragcore/config.yaml, falling back to defaults.
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "ragcore.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".ragcore", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return applyEnv(DefaultConfig())
}

func applyEnv(cfg *Config) (*Config, error) {
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// IndexPath returns the path of the vector blob artifact.
func (c *Config) IndexPath() string {
	return filepath.Join(c.Storage.DataDir, "index.bin")
}

// MetadataPath returns the path of the metadata list artifact.
func (c *Config) MetadataPath() string {
	return filepath.Join(c.Storage.DataDir, "metadata.json")
}

// RegistryPath returns the path of the document registry database.
func (c *Config) RegistryPath() string {
	return filepath.Join(c.Storage.DataDir, "registry.db")
}

// EnsureDataDir creates the data directory if needed.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.Storage.DataDir, 0o755)
}
