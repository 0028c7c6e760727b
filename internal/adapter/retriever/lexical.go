package retriever

import (
	"math"
	"sort"
	"strings"
	"sync"

	"kbrag/internal/adapter/analyzer"
	"kbrag/internal/domain"
)

// Config holds the retrieval tuning knobs. The partial-match weight, position
// bonus curve and score ceiling are empirical constants carried over from the
// original ranking behavior; changing them changes result order.
type Config struct {
	MinChunkLength     int
	TopK               int
	RelevanceThreshold float64
	K1                 float64
	B                  float64
	PartialMatchWeight float64
	PositionBonusMax   float64
	PositionBonusMin   float64
	ScoreCeiling       float64
}

// DefaultConfig returns the default retrieval configuration.
func DefaultConfig() Config {
	return Config{
		MinChunkLength:     50,
		TopK:               5,
		RelevanceThreshold: 0.15,
		K1:                 1.5,
		B:                  0.75,
		PartialMatchWeight: 0.5,
		PositionBonusMax:   2.0,
		PositionBonusMin:   0.2,
		ScoreCeiling:       10.0,
	}
}

// Lexical ranks chunks against queries with an IDF-weighted, length-normalized
// scheme. The index is immutable once built; Initialize installs a fresh build
// in one step so readers never observe a partially rebuilt index.
type Lexical struct {
	cfg       Config
	tokenizer *analyzer.Tokenizer

	mu  sync.RWMutex
	idx *index
}

// index is one complete build over a chunk set. IDF values are only valid
// relative to this exact chunk set, so the whole structure is replaced
// wholesale on every rebuild.
type index struct {
	chunks     []domain.Chunk
	termCounts []map[string]int
	lowered    []string
	docFreq    map[string]int
	idf        map[string]float64
	avgLen     float64
	docCount   int
}

// NewLexical creates a retriever with the given configuration.
func NewLexical(cfg Config) *Lexical {
	return &Lexical{
		cfg:       cfg,
		tokenizer: analyzer.NewTokenizer(),
	}
}

// Initialize rebuilds the index from scratch over the given chunks. Chunks
// shorter than the configured minimum are dropped, not merged. There is no
// incremental path: every call discards the previous index entirely.
func (r *Lexical) Initialize(chunks []domain.Chunk) {
	idx := &index{
		docFreq: make(map[string]int),
		idf:     make(map[string]float64),
	}

	docs := make(map[string]struct{})
	totalLen := 0
	for _, ch := range chunks {
		if len(ch.Content) < r.cfg.MinChunkLength {
			continue
		}
		counts := make(map[string]int)
		for _, tok := range r.tokenizer.Tokenize(ch.Content) {
			counts[tok]++
		}
		idx.chunks = append(idx.chunks, ch)
		idx.termCounts = append(idx.termCounts, counts)
		idx.lowered = append(idx.lowered, strings.ToLower(ch.Content))
		totalLen += len(ch.Content)
		for term := range counts {
			idx.docFreq[term]++
		}
		docs[ch.DocumentID] = struct{}{}
	}
	idx.docCount = len(docs)

	n := len(idx.chunks)
	if n > 0 {
		idx.avgLen = float64(totalLen) / float64(n)
	}
	for term, df := range idx.docFreq {
		// ln(N/df) without smoothing: a term present in every chunk gets
		// idf 0 and contributes nothing. Intentional, not a bug.
		idx.idf[term] = math.Log(float64(n) / float64(df))
	}

	r.mu.Lock()
	r.idx = idx
	r.mu.Unlock()
}

type scored struct {
	result domain.SearchResult
	exact  bool
}

// Search ranks indexed chunks against the query and returns at most TopK
// results, each scoring strictly above the relevance threshold. An empty or
// whitespace-only query returns no results.
func (r *Lexical) Search(query string) []domain.SearchResult {
	r.mu.RLock()
	idx := r.idx
	r.mu.RUnlock()

	trimmed := strings.TrimSpace(query)
	if trimmed == "" || idx == nil || len(idx.chunks) == 0 {
		return nil
	}

	loweredQuery := strings.ToLower(trimmed)
	terms := r.tokenizer.Terms(trimmed)

	var candidates []scored
	for i := range idx.chunks {
		var raw float64
		var matched []string
		exact := false

		if strings.Contains(idx.lowered[i], loweredQuery) {
			// Whole-query containment always attains the ceiling and is never
			// outranked by a partial token match.
			raw = r.cfg.ScoreCeiling
			matched = terms
			exact = true
		} else {
			if len(terms) == 0 {
				continue
			}
			raw, matched = r.scoreChunk(idx, i, terms)
			if len(matched)*2 < len(terms) {
				raw *= 0.5
			}
		}

		score := raw / r.cfg.ScoreCeiling
		if score > 1 {
			score = 1
		}
		if score <= r.cfg.RelevanceThreshold {
			continue
		}
		candidates = append(candidates, scored{
			result: domain.SearchResult{
				Chunk:        idx.chunks[i],
				Score:        score,
				MatchedTerms: matched,
			},
			exact: exact,
		})
	}

	// Stable sort keeps original chunk order on ties, so output is
	// deterministic. Exact containment sorts ahead of everything else even
	// when a partial match clamps to the same normalized score.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].exact != candidates[j].exact {
			return candidates[i].exact
		}
		return candidates[i].result.Score > candidates[j].result.Score
	})

	topK := r.cfg.TopK
	if topK <= 0 {
		topK = len(candidates)
	}
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	results := make([]domain.SearchResult, len(candidates))
	for i, c := range candidates {
		results[i] = c.result
	}
	return results
}

// scoreChunk computes the raw BM25-style score for one chunk. Each matched
// term contributes its exact frequency plus partial-weight credit for raw
// substring occurrences (inflected and conjugated forms), scaled by IDF and
// length-normalized against the mean chunk length, plus a position bonus that
// rewards terms appearing early in the chunk.
func (r *Lexical) scoreChunk(idx *index, i int, terms []string) (float64, []string) {
	lowered := idx.lowered[i]
	counts := idx.termCounts[i]
	chunkLen := float64(len(idx.chunks[i].Content))
	avgLen := idx.avgLen
	if avgLen == 0 {
		avgLen = 1
	}

	score := 0.0
	var matched []string
	for _, term := range terms {
		tf := counts[term]
		sub := strings.Count(lowered, term)
		if tf == 0 && sub == 0 {
			continue
		}
		matched = append(matched, term)

		freq := float64(tf) + r.cfg.PartialMatchWeight*float64(sub)
		norm := freq + r.cfg.K1*(1-r.cfg.B+r.cfg.B*chunkLen/avgLen)
		score += idx.idf[term] * (freq * (r.cfg.K1 + 1)) / norm

		if pos := strings.Index(lowered, term); pos >= 0 && len(lowered) > 0 {
			frac := float64(pos) / float64(len(lowered))
			score += r.cfg.PositionBonusMax - (r.cfg.PositionBonusMax-r.cfg.PositionBonusMin)*frac
		}
	}
	return score, matched
}

// Stats reports read-only figures for the currently built index.
func (r *Lexical) Stats() domain.Stats {
	r.mu.RLock()
	idx := r.idx
	r.mu.RUnlock()

	if idx == nil {
		return domain.Stats{}
	}
	return domain.Stats{
		TotalChunks:   len(idx.chunks),
		UniqueTerms:   len(idx.docFreq),
		AvgChunkLen:   idx.avgLen,
		DocumentCount: idx.docCount,
	}
}
