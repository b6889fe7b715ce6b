package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okoshkin/tagsmith/internal/memory"
)

var importMemoryPath string

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <snapshot.json>",
	Short: "Merge an external memory snapshot into the primary memory file",
	Long: `Import merges another tagsmith memory snapshot into yours:
- Fingerprints you have never seen are inserted as-is
- Filenames are unioned
- Imported answers fill gaps only; your own judgments always win

The merged result is persisted to the primary memory file.

Example:
  tagsmith import shared-memory.json
  tagsmith import shared-memory.json --memory ./project/memory.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importMemoryPath, "memory", "", "memory snapshot path (default: $HOME/.tagsmith/memory.json)")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if importMemoryPath != "" {
		cfg.Memory.Path = importMemoryPath
	}

	merged, err := memory.Import(cfg.Memory.Path, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("✓ Merged %s into %s (%d fingerprints)\n", args[0], cfg.Memory.Path, len(merged))
	return nil
}
