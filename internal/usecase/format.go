package usecase

import (
	"context"
	"fmt"
	"strings"

	"kbrag/internal/domain"
)

// SearchFormatted runs Search and renders the results as plain text suitable
// for direct injection into a conversational context. Validation problems are
// reported in the returned text, never as errors.
func (e *Engine) SearchFormatted(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "No search was performed: the query was empty.", nil
	}

	results, err := e.Search(ctx, query)
	if err != nil {
		return "", err
	}
	return FormatResults(query, results), nil
}

// FormatResults renders ranked results with their source and score.
func FormatResults(query string, results []domain.SearchResult) string {
	if len(results) == 0 {
		return fmt.Sprintf("No relevant passages found for: %s", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d relevant passage(s) for: %s\n\n", len(results), query)
	for i, r := range results {
		fmt.Fprintf(&b, "[%d] %s (relevance: %.2f)\n%s\n\n", i+1, r.Chunk.DocumentName, r.Score, r.Chunk.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}
