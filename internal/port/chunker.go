package port

import "kbrag/internal/domain"

// Chunker splits a document into ordered chunks. Implementations must be
// deterministic for a fixed document and configuration.
type Chunker interface {
	Chunk(doc domain.Document) []domain.Chunk
}
