package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	engine, closeEngine, err := buildEngine()
	if err != nil {
		return err
	}
	defer closeEngine()

	stats := engine.Stats()

	if statsJSON {
		output, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Corpus statistics:\n")
	fmt.Printf("  Stored chunks:       %d\n", stats.TotalChunks)
	fmt.Printf("  Distinct files:      %d\n", stats.DistinctFiles)
	fmt.Printf("  Embedding dimension: %d\n", stats.EmbeddingDimension)
	fmt.Printf("  Embedding model:     %s\n", stats.EmbeddingModel)
	return nil
}
