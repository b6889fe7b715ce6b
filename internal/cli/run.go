package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okoshkin/tagsmith/internal/engine"
	"github.com/okoshkin/tagsmith/internal/host"
	"github.com/okoshkin/tagsmith/internal/oracle"
)

var (
	runKind       string
	memoryPath    string
	activeKw      []string
	redoMaybes    bool
	catalogPath   string
	viewerProgram string
	viewerWorkdir string
	hashWorkers   int
	maxReadBytes  float64
	reportPath    string
	llmProvider   string
	llmModel      string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <manifest-dir>",
	Short: "Infer keywords for the records described under a manifest directory",
	Long: `Run processes every considerable record, one at a time:
- Hash each component's mesh file (concurrently, optionally throttled)
- Consult remembered judgments per mesh fingerprint
- Apply or skip keywords automatically where memory is conclusive
- Ask you one question per unresolved keyword, then learn the answer
- Flush memory after every record, so answers survive a crash

Cancel in any question aborts the current record only; the run
continues with the next one.

Example:
  tagsmith run ./data
  tagsmith run ./data --kind armor --keywords SOS_Revealing,ArmorHasFur
  tagsmith run ./data --viewer /usr/bin/nifskope --report patch.json
  tagsmith run ./data --llm-provider openai --redo-maybes`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runKind, "kind", "armor", "record kind to process")
	runCmd.Flags().StringVar(&memoryPath, "memory", "", "memory snapshot path (default: $HOME/.tagsmith/memory.json)")
	runCmd.Flags().StringSliceVar(&activeKw, "keywords", nil, "active keyword ids (default from config)")
	runCmd.Flags().BoolVar(&redoMaybes, "redo-maybes", false, "re-ask questions answered with a maybe")
	runCmd.Flags().StringVar(&catalogPath, "catalog", "", "keyword catalog YAML adding or overriding descriptors")
	runCmd.Flags().StringVar(&viewerProgram, "viewer", "", "external mesh viewer program")
	runCmd.Flags().StringVar(&viewerWorkdir, "viewer-workdir", "", "working directory for the viewer")
	runCmd.Flags().IntVar(&hashWorkers, "hash-workers", 0, "concurrent mesh hashing jobs (default from config)")
	runCmd.Flags().Float64Var(&maxReadBytes, "max-read-bps", 0, "mesh read throttle in bytes/sec (0 = unthrottled)")
	runCmd.Flags().StringVar(&reportPath, "report", "", "write a JSON patch report to this path")

	// LLM flags
	runCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "suggester provider (openai; empty = ask a human only)")
	runCmd.Flags().StringVar(&llmModel, "llm-model", "", "suggester model name")
}

func runRun(cmd *cobra.Command, args []string) error {
	manifestDir := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if memoryPath != "" {
		cfg.Memory.Path = memoryPath
	}
	if len(activeKw) > 0 {
		cfg.Keywords.Active = activeKw
	}
	if cmd.Flags().Changed("redo-maybes") {
		cfg.Keywords.RedoMaybes = redoMaybes
	}
	if catalogPath != "" {
		cfg.Keywords.CatalogPath = catalogPath
	}
	if viewerProgram != "" {
		cfg.Viewer.Program = viewerProgram
	}
	if viewerWorkdir != "" {
		cfg.Viewer.WorkDir = viewerWorkdir
	}
	if hashWorkers > 0 {
		cfg.Concurrency.HashWorkers = hashWorkers
	}
	if maxReadBytes > 0 {
		cfg.Concurrency.MaxReadBytesPerSec = maxReadBytes
	}
	if reportPath != "" {
		cfg.Output.ReportPath = reportPath
	}

	// Configure the suggester if enabled
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if cfg.LLM.Provider == "openai" && cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Manifests: %s\n", manifestDir)
		fmt.Fprintf(os.Stderr, "Kind:      %s\n", runKind)
		fmt.Fprintf(os.Stderr, "Memory:    %s\n", cfg.Memory.Path)
		fmt.Fprintf(os.Stderr, "Keywords:  %v\n", cfg.Keywords.Active)
		fmt.Fprintln(os.Stderr)
	}

	h, err := host.LoadManifests(manifestDir, os.Stderr)
	if err != nil {
		return err
	}

	suggester, err := oracle.NewSuggester(cfg.LLM)
	if err != nil {
		return err
	}
	prompter := oracle.NewTerminalPrompter(os.Stdin, os.Stdout)

	eng, err := engine.New(cfg, h, prompter, suggester)
	if err != nil {
		return err
	}

	st, err := eng.Initialize()
	if err != nil {
		return err
	}

	if err := eng.Run(context.Background(), runKind, st); err != nil {
		return err
	}
	if err := eng.Finalize(st); err != nil {
		return err
	}

	if cfg.Output.ReportPath != "" {
		if err := h.WriteReport(cfg.Output.ReportPath); err != nil {
			return err
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote report: %s\n", cfg.Output.ReportPath)
		}
	}

	fmt.Printf("processed %d, tagged %d, asked %d, failed %d, cancelled %d\n",
		st.Processed, st.Tagged, st.Asked, st.Failed, st.Cancelled)
	return nil
}
