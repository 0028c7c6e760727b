package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"kbrag/config"
	"kbrag/internal/usecase"
)

var (
	queryText string
	queryTopK int
	queryJSON bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Search the knowledge base",
	Long: `Build the index from the configured document directory and answer a
free-text question with the most relevant passages.

Examples:
  kbrag query -q "how many days of annual leave"
  kbrag query -q "working hours" --top-k 3 --json`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "search query (required)")
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of results (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.MarkFlagRequired("query")
}

// queryResult is a simplified result for CLI output.
type queryResult struct {
	Source       string   `json:"source"`
	ChunkIndex   int      `json:"chunk_index"`
	Score        float64  `json:"score"`
	MatchedTerms []string `json:"matched_terms,omitempty"`
	Content      string   `json:"content"`
}

func runQuery(cmd *cobra.Command, args []string) error {
	if queryTopK > 0 {
		cfg.Retrieval.TopK = queryTopK
	}

	log := config.NewLogger(os.Stderr, cfg.Logging)
	engine, cleanup := newEngine(cfg, rootDir, log)
	defer cleanup()

	if !queryJSON {
		attachProgressBar(engine)
	}

	results, err := engine.Search(cmd.Context(), queryText)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if queryJSON {
		out := make([]queryResult, 0, len(results))
		for _, r := range results {
			out = append(out, queryResult{
				Source:       r.Chunk.DocumentName,
				ChunkIndex:   r.Chunk.Index,
				Score:        r.Score,
				MatchedTerms: r.MatchedTerms,
				Content:      r.Chunk.Content,
			})
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(usecase.FormatResults(queryText, results))
	return nil
}

// attachProgressBar shows build progress on stderr while the pipeline runs.
func attachProgressBar(engine *usecase.Engine) {
	var bar *progressbar.ProgressBar
	engine.SetProgress(func(stage string, done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription(stage),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(done)
	})
}
