package cli

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"ragcore/internal/adapter/fs"
	"ragcore/internal/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <path>...",
	Short: "Add documents to the corpus",
	Long: `Ingest one or more documents into the vector index. Directories are
scanned recursively using the configured include/exclude patterns.

Examples:
  ragcore ingest report.pdf
  ragcore ingest notes.md data/manuals/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no matching files found")
	}

	engine, closeEngine, err := buildEngine()
	if err != nil {
		return err
	}
	defer closeEngine()

	var bar *progressbar.ProgressBar
	if len(files) > 1 {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetDescription("Ingesting"),
			progressbar.OptionOnCompletion(func() {
				fmt.Println()
			}),
		)
	}

	var ingested, failed, totalChunks int
	var failures []domain.IngestResult

	for _, file := range files {
		result := engine.Ingest(file)
		if result.Status == domain.StatusSuccess {
			ingested++
			totalChunks += result.ChunksCreated
		} else {
			failed++
			result.Filename = file
			failures = append(failures, result)
		}
		if bar != nil {
			bar.Add(1)
		}
	}

	fmt.Printf("\nIngestion complete:\n")
	fmt.Printf("  Files ingested: %d\n", ingested)
	fmt.Printf("  Files failed:   %d\n", failed)
	fmt.Printf("  Chunks created: %d\n", totalChunks)

	if len(failures) > 0 {
		fmt.Printf("\nFailures:\n")
		for _, f := range failures {
			fmt.Printf("  - %s: %s\n", f.Filename, f.Message)
		}
	}

	return nil
}

// collectFiles expands directory arguments through the configured walker
// and passes file arguments through as-is.
func collectFiles(args []string) ([]string, error) {
	walker := fs.NewWalker(cfg.Ingest.Includes, cfg.Ingest.Excludes)

	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("path does not exist: %w", err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		matched, err := walker.Walk(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", arg, err)
		}
		files = append(files, matched...)
	}
	return files, nil
}
