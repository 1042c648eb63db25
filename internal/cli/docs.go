package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "List ingested documents",
	RunE:  runDocs,
}

func init() {
	rootCmd.AddCommand(docsCmd)
}

func runDocs(cmd *cobra.Command, args []string) error {
	engine, closeEngine, err := buildEngine()
	if err != nil {
		return err
	}
	defer closeEngine()

	docs, err := engine.Documents()
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		fmt.Println("No documents ingested yet.")
		return nil
	}

	fmt.Printf("%-40s %-8s %-8s %s\n", "FILENAME", "TYPE", "CHUNKS", "INGESTED")
	for _, doc := range docs {
		fmt.Printf("%-40s %-8s %-8d %s\n", doc.Filename, doc.FileType, doc.ChunkCount, doc.IngestedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
