package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kbrag/config"
)

const version = "0.1.0"

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "kbrag",
	Short: "Knowledge base retrieval engine for grounding assistant answers",
	Long: `kbrag indexes a bilingual document collection into overlapping text chunks
and answers free-text questions with the most relevant passages, so a
conversational agent can ground its answers in source material.

Example usage:
  kbrag query -q "how many days of annual leave"   # One-shot search
  kbrag stats                                      # Show index figures
  kbrag serve                                      # Serve MCP tools`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
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
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./kbrag.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}
