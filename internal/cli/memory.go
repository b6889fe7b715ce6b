package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/okoshkin/tagsmith/internal/memory"
	"github.com/okoshkin/tagsmith/internal/model"
)

var memoryCmdPath string

// memoryCmd represents the memory command
var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Inspect the judgment memory",
}

var memoryStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the memory snapshot",
	Long:  `Show how many fingerprints are remembered and how many decided answers exist per keyword.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, path, err := loadMemoryForInspection()
		if err != nil {
			return err
		}

		answers := make(map[string]int)
		decided := 0
		for _, e := range m {
			for kw := range e.Keywords {
				answers[kw]++
				decided++
			}
		}

		fmt.Printf("Memory: %s\n", path)
		fmt.Printf("  fingerprints: %d\n", len(m))
		fmt.Printf("  answers:      %d\n", decided)

		ids := make([]string, 0, len(answers))
		for kw := range answers {
			ids = append(ids, kw)
		}
		sort.Strings(ids)
		for _, kw := range ids {
			fmt.Printf("    %-24s %d\n", kw, answers[kw])
		}
		return nil
	},
}

var memoryShowCmd = &cobra.Command{
	Use:   "show <fingerprint>",
	Short: "Show everything remembered about one fingerprint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := loadMemoryForInspection()
		if err != nil {
			return err
		}

		fp := model.Fingerprint(args[0])
		entry, ok := m[fp]
		if !ok {
			return fmt.Errorf("fingerprint %s not in memory", fp)
		}

		fmt.Printf("Fingerprint: %s\n", fp)
		fmt.Println("Filenames:")
		for _, name := range entry.Filenames {
			fmt.Printf("  %s\n", name)
		}
		if len(entry.Keywords) > 0 {
			fmt.Println("Answers:")
			ids := make([]string, 0, len(entry.Keywords))
			for kw := range entry.Keywords {
				ids = append(ids, kw)
			}
			sort.Strings(ids)
			for _, kw := range ids {
				fmt.Printf("  %-24s %s\n", kw, entry.Keywords[kw])
			}
		}
		return nil
	},
}

// loadMemoryForInspection resolves the memory path and loads it
func loadMemoryForInspection() (memory.Memories, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, "", err
	}
	if memoryCmdPath != "" {
		cfg.Memory.Path = memoryCmdPath
	}
	return memory.Load(cfg.Memory.Path), cfg.Memory.Path, nil
}

func init() {
	rootCmd.AddCommand(memoryCmd)
	memoryCmd.AddCommand(memoryStatsCmd)
	memoryCmd.AddCommand(memoryShowCmd)

	memoryCmd.PersistentFlags().StringVar(&memoryCmdPath, "memory", "", "memory snapshot path (default: $HOME/.tagsmith/memory.json)")
}
