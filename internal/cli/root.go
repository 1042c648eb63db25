package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"ragcore/config"
	"ragcore/internal/adapter/chunker"
	"ragcore/internal/adapter/embedding"
	"ragcore/internal/adapter/extract"
	"ragcore/internal/adapter/llm"
	"ragcore/internal/adapter/registry"
	"ragcore/internal/index"
	"ragcore/internal/port"
	"ragcore/internal/usecase"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ragcore",
	Short: "Retrieval engine for a growing document corpus",
	Long: `ragcore ingests documents into a persistent vector index and retrieves
the passages most relevant to a query, for grounding answer generation.

Example usage:
  ragcore ingest report.pdf notes/     # Add documents to the corpus
  ragcore query -q "refund policy"     # Retrieve relevant passages
  ragcore stats                        # Show corpus statistics`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			wd, werr := os.Getwd()
			if werr != nil {
				return fmt.Errorf("failed to get working directory: %w", werr)
			}
			cfg, err = config.LoadFromDir(wd)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./ragcore.yaml)")
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newEmbedder() (port.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "openai":
		return embedding.NewOpenAIEmbedder(cfg.Embedding.APIKeyEnv, cfg.Embedding.Model, cfg.Embedding.BaseURL, cfg.Embedding.Dimension)
	case "mock":
		return embedding.NewMockEmbedder(cfg.Embedding.Dimension), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Embedding.Provider)
	}
}

// buildEngine assembles the engine from config. The returned closer must be
// called when the command is done.
func buildEngine() (*usecase.Engine, func(), error) {
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	logger := newLogger()

	embedder, err := newEmbedder()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	idx, err := index.NewFlat(embedder.Dimension(), embedder.ModelName(), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create index: %w", err)
	}

	reg, err := registry.NewBoltRegistry(cfg.RegistryPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open document registry: %w", err)
	}

	var generator port.Generator
	if cfg.LLM.Enabled {
		generator, err = llm.NewOpenAIGenerator(cfg.LLM.APIKeyEnv, cfg.LLM.Model, cfg.LLM.BaseURL)
		if err != nil {
			reg.Close()
			return nil, nil, fmt.Errorf("failed to create generator: %w", err)
		}
	}

	chk, err := chunker.NewWindowChunker(cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap)
	if err != nil {
		reg.Close()
		return nil, nil, fmt.Errorf("invalid chunking config: %w", err)
	}

	engine := usecase.NewEngine(
		extract.NewRegistry(),
		chk,
		embedder,
		idx,
		reg,
		generator,
		cfg.IndexPath(),
		cfg.MetadataPath(),
		logger,
	)

	return engine, func() { reg.Close() }, nil
}
