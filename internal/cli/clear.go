package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var clearForce bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the entire corpus",
	Long: `Remove every stored chunk, the persisted snapshot and the document
registry. This cannot be undone.`,
	RunE: runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "skip confirmation")
}

func runClear(cmd *cobra.Command, args []string) error {
	if !clearForce {
		fmt.Print("This deletes all ingested documents. Continue? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	engine, closeEngine, err := buildEngine()
	if err != nil {
		return err
	}
	defer closeEngine()

	if err := engine.Clear(); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}

	fmt.Println("Corpus cleared.")
	return nil
}
