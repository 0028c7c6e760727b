package retriever

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"kbrag/internal/domain"
)

func makeChunk(id string, index int, content string) domain.Chunk {
	return domain.Chunk{
		ID:           id,
		DocumentID:   "doc1",
		DocumentName: "policy.txt",
		Index:        index,
		Content:      content,
	}
}

func policyChunks() []domain.Chunk {
	return []domain.Chunk{
		makeChunk("c0", 0, "Employees accrue annual leave throughout the year. Annual leave is 21 days for every full-time employee."),
		makeChunk("c1", 1, "Sick leave requires a medical certificate for absences longer than two consecutive days in a row."),
		makeChunk("c2", 2, "Working hours run from nine in the morning until half past five in the afternoon, Sunday through Thursday."),
		makeChunk("c3", 3, "The training budget covers courses, books and certifications for professional development each year."),
	}
}

func TestSearchExactPhraseRanksFirst(t *testing.T) {
	r := NewLexical(DefaultConfig())
	r.Initialize(policyChunks())

	results := r.Search("annual leave is 21 days")
	if len(results) == 0 {
		t.Fatal("expected results for exact phrase query")
	}
	if results[0].Chunk.ID != "c0" {
		t.Errorf("expected c0 first, got %s", results[0].Chunk.ID)
	}
	if results[0].Score != 1.0 {
		t.Errorf("exact containment must score 1.0, got %f", results[0].Score)
	}
	for _, r := range results[1:] {
		if r.Score >= 1.0 {
			t.Errorf("partial match %s must rank below the exact match", r.Chunk.ID)
		}
	}
}

func TestSearchPartialMatchScoresLowerButAboveThreshold(t *testing.T) {
	r := NewLexical(DefaultConfig())
	r.Initialize(policyChunks())

	// Not a substring of any chunk, so this goes through token scoring.
	results := r.Search("how many annual leave days")
	if len(results) == 0 {
		t.Fatal("expected results for partial query")
	}

	found := false
	for _, res := range results {
		if res.Chunk.ID == "c0" {
			found = true
			if res.Score >= 1.0 {
				t.Errorf("partial match must score below 1.0, got %f", res.Score)
			}
			if res.Score <= DefaultConfig().RelevanceThreshold {
				t.Errorf("score %f must exceed the relevance threshold", res.Score)
			}
		}
	}
	if !found {
		t.Error("expected the leave policy chunk to match the leave question")
	}
}

func TestSearchSubstringQueryAttainsCeiling(t *testing.T) {
	r := NewLexical(DefaultConfig())
	r.Initialize(policyChunks())

	// "21 days" appears verbatim in c0, so containment wins outright.
	results := r.Search("21 days")
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if results[0].Chunk.ID != "c0" || results[0].Score != 1.0 {
		t.Errorf("expected c0 at 1.0 via containment, got %s at %f",
			results[0].Chunk.ID, results[0].Score)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	r := NewLexical(DefaultConfig())
	r.Initialize(policyChunks())

	if got := r.Search(""); len(got) != 0 {
		t.Errorf("expected no results for empty query, got %d", len(got))
	}
	if got := r.Search("   \t "); len(got) != 0 {
		t.Errorf("expected no results for whitespace query, got %d", len(got))
	}
}

func TestSearchBeforeInitialize(t *testing.T) {
	r := NewLexical(DefaultConfig())

	if got := r.Search("anything"); len(got) != 0 {
		t.Errorf("expected no results before Initialize, got %d", len(got))
	}
	if stats := r.Stats(); stats.TotalChunks != 0 {
		t.Errorf("expected empty stats before Initialize, got %+v", stats)
	}
}

func TestSearchTopKAndThresholdBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TopK = 3
	r := NewLexical(cfg)

	var chunks []domain.Chunk
	for i := 0; i < 10; i++ {
		chunks = append(chunks, makeChunk(fmt.Sprintf("c%d", i), i,
			fmt.Sprintf("Vacation allowance details for team %d: vacation days accrue monthly across the year.", i)))
	}
	r.Initialize(chunks)

	results := r.Search("vacation days accrue")
	if len(results) > 3 {
		t.Errorf("expected at most TopK=3 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Score <= cfg.RelevanceThreshold {
			t.Errorf("result %s at score %f violates the threshold", res.Chunk.ID, res.Score)
		}
		if res.Score > 1.0 {
			t.Errorf("score %f above 1.0", res.Score)
		}
	}
}

func TestSearchTieBreakIsChunkOrder(t *testing.T) {
	r := NewLexical(DefaultConfig())

	same := "Identical content about remote work arrangements and approvals from management."
	r.Initialize([]domain.Chunk{
		makeChunk("c0", 0, same),
		makeChunk("c1", 1, same),
	})

	results := r.Search("remote work arrangements")
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Chunk.ID != "c0" || results[1].Chunk.ID != "c1" {
		t.Error("ties must preserve original chunk order")
	}
}

func TestInitializeDropsShortChunks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinChunkLength = 50
	r := NewLexical(cfg)

	r.Initialize([]domain.Chunk{
		makeChunk("short", 0, "too short"),
		makeChunk("long", 1, strings.Repeat("meaningful policy content ", 4)),
	})

	stats := r.Stats()
	if stats.TotalChunks != 1 {
		t.Errorf("expected the short chunk to be dropped, got %d chunks", stats.TotalChunks)
	}
}

func TestInitializeDeterministic(t *testing.T) {
	chunks := policyChunks()

	a := NewLexical(DefaultConfig())
	a.Initialize(chunks)
	b := NewLexical(DefaultConfig())
	b.Initialize(chunks)

	if !reflect.DeepEqual(a.idx.docFreq, b.idx.docFreq) {
		t.Error("document frequencies differ between identical rebuilds")
	}
	if !reflect.DeepEqual(a.idx.idf, b.idx.idf) {
		t.Error("IDF maps differ between identical rebuilds")
	}
	if !reflect.DeepEqual(a.idx.termCounts, b.idx.termCounts) {
		t.Error("term counts differ between identical rebuilds")
	}
}

func TestIDFZeroForUbiquitousTerm(t *testing.T) {
	r := NewLexical(DefaultConfig())
	r.Initialize([]domain.Chunk{
		makeChunk("c0", 0, "policy policy appears in every chunk of this small corpus here"),
		makeChunk("c1", 1, "policy appears here too alongside completely different other words"),
	})

	if got := r.idx.idf["policy"]; got != 0 {
		t.Errorf("a term present in every chunk must have idf 0, got %f", got)
	}
}

func TestSearchMatchedTerms(t *testing.T) {
	r := NewLexical(DefaultConfig())
	r.Initialize(policyChunks())

	results := r.Search("medical certificate")
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	got := results[0].MatchedTerms
	want := []string{"certificate", "medical"} // descending length order
	if !reflect.DeepEqual(got, want) {
		t.Errorf("matched terms %v, want %v", got, want)
	}
}

func TestSearchRebuildReplacesIndex(t *testing.T) {
	r := NewLexical(DefaultConfig())
	r.Initialize(policyChunks())

	r.Initialize([]domain.Chunk{
		makeChunk("n0", 0, "A completely new corpus about expense reimbursement procedures and receipts."),
	})

	if got := r.Search("annual leave is 21 days"); len(got) != 0 {
		t.Error("results referenced a chunk from the discarded index")
	}
	if got := r.Search("expense reimbursement"); len(got) == 0 {
		t.Error("expected the new corpus to be searchable")
	}
}

func TestStats(t *testing.T) {
	r := NewLexical(DefaultConfig())
	chunks := policyChunks()
	r.Initialize(chunks)

	stats := r.Stats()
	if stats.TotalChunks != len(chunks) {
		t.Errorf("expected %d chunks, got %d", len(chunks), stats.TotalChunks)
	}
	if stats.UniqueTerms == 0 {
		t.Error("expected unique terms to be counted")
	}
	if stats.AvgChunkLen <= 0 {
		t.Error("expected a positive average chunk length")
	}
	if stats.DocumentCount != 1 {
		t.Errorf("expected 1 document, got %d", stats.DocumentCount)
	}
}
