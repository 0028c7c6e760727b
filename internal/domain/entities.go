package domain

// Document is one physical source file after text extraction.
type Document struct {
	ID       string
	Filename string
	Text     string
}

// Chunk is a bounded segment of a document's text, the atomic unit of
// retrieval. Adjacent chunks of the same document may share up to the
// configured overlap so context survives split boundaries.
type Chunk struct {
	ID           string
	DocumentID   string
	DocumentName string
	Index        int
	Content      string
	StartPage    int // 0 when the document carries no page markers
	StartChar    int
	EndChar      int
}

// SearchResult pairs a chunk with its normalized relevance score.
type SearchResult struct {
	Chunk        Chunk
	Score        float64 // in [0, 1]
	MatchedTerms []string
}

// Stats describes the currently built index.
type Stats struct {
	TotalChunks   int
	UniqueTerms   int
	AvgChunkLen   float64
	DocumentCount int
}
