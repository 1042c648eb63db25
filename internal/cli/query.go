package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	queryText string
	queryTopK int
	queryJSON bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Retrieve passages relevant to a query",
	Long: `Embed the query, search the vector index and print the retrieved
passages with their sources. When generation is enabled in the config, the
assembled context is also sent to the language model for an answer.

Examples:
  ragcore query -q "what is the refund policy?"
  ragcore query -q "maintenance schedule" -k 10 --json`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "query text (required)")
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of passages to retrieve (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.MarkFlagRequired("query")
}

func runQuery(cmd *cobra.Command, args []string) error {
	engine, closeEngine, err := buildEngine()
	if err != nil {
		return err
	}
	defer closeEngine()

	topK := cfg.Retrieve.TopK
	if queryTopK > 0 {
		topK = queryTopK
	}

	result := engine.Query(queryText, topK, nil)

	if queryJSON {
		output, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(output))
		return nil
	}

	if !result.ContextUsed {
		fmt.Println("No relevant passages found.")
		return nil
	}

	fmt.Printf("Found %d passages for: %s\n\n", len(result.Sources), queryText)
	for i, src := range result.Sources {
		fmt.Printf("  [%d] %s (chunk %d, distance %.4f)\n", i+1, src.Filename, src.ChunkIndex, src.RelevanceScore)
	}

	if result.Answer != "" {
		fmt.Printf("\nAnswer:\n%s\n", result.Answer)
		return nil
	}

	fmt.Printf("\nContext:\n")
	text := result.Context
	if len(text) > 2000 {
		text = text[:2000] + "..."
	}
	fmt.Println(text)
	return nil
}
