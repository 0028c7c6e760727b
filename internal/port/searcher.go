package port

import "kbrag/internal/domain"

// Searcher answers queries against a built index.
type Searcher interface {
	Search(query string) []domain.SearchResult
	Stats() domain.Stats
}
