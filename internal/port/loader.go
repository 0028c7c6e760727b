package port

import (
	"context"

	"kbrag/internal/domain"
)

// Loader produces the current document set. Implementations own their fallback
// policy; the engine accepts whatever set is returned.
type Loader interface {
	LoadDocuments(ctx context.Context) ([]domain.Document, error)
}
