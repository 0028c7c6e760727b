package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kbrag/config"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index figures",
	Long:  `Build the index if needed and print its size and composition.`,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	log := config.NewLogger(os.Stderr, cfg.Logging)
	engine, cleanup := newEngine(cfg, rootDir, log)
	defer cleanup()

	stats, err := engine.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to gather stats: %w", err)
	}

	fmt.Printf("Documents:            %d\n", stats.DocumentCount)
	fmt.Printf("Chunks:               %d\n", stats.TotalChunks)
	fmt.Printf("Unique terms:         %d\n", stats.UniqueTerms)
	fmt.Printf("Average chunk length: %.0f characters\n", stats.AvgChunkLen)
	return nil
}
