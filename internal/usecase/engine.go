package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"kbrag/internal/adapter/retriever"
	"kbrag/internal/domain"
	"kbrag/internal/port"
)

// ErrNoDocuments is returned when the loader produces no usable documents.
var ErrNoDocuments = errors.New("no usable documents loaded")

// State is the engine lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

const buildKey = "build"

// ProgressFunc reports pipeline progress: the stage name, items done and the
// total, for CLI progress display.
type ProgressFunc func(stage string, done, total int)

// Engine composes the document loader, the chunker and the retriever behind a
// single lifecycle-managed handle. The load→chunk→index pipeline runs under a
// single-flight guard: concurrent EnsureReady callers on a cold engine share
// exactly one pipeline execution and its outcome. Each successful build
// installs a fresh retriever; searches capture the current handle once and
// use it unmutated, so a concurrent rebuild never invalidates an in-flight
// search.
type Engine struct {
	loader   port.Loader
	chunker  port.Chunker
	retrCfg  retriever.Config
	log      *slog.Logger
	progress ProgressFunc

	group singleflight.Group

	mu       sync.RWMutex
	state    State
	retr     *retriever.Lexical
	docCount int
}

// NewEngine creates an engine in the Uninitialized state. No documents are
// loaded until the first EnsureReady, Search or Reset call.
func NewEngine(loader port.Loader, chunker port.Chunker, retrCfg retriever.Config, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		loader:  loader,
		chunker: chunker,
		retrCfg: retrCfg,
		log:     log,
	}
}

// SetProgress installs a progress callback for the build pipeline. Must be
// called before the first build.
func (e *Engine) SetProgress(fn ProgressFunc) {
	e.progress = fn
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// EnsureReady builds the index if it has not been built yet. It is idempotent
// when the engine is already Ready, and safe to call concurrently: callers
// racing during a build attach to the in-flight attempt and receive its
// outcome rather than starting builds of their own. On failure the engine
// reverts to Uninitialized so a later call can retry.
func (e *Engine) EnsureReady(ctx context.Context) error {
	e.mu.RLock()
	ready := e.retr != nil
	e.mu.RUnlock()
	if ready {
		return nil
	}

	_, err, _ := e.group.Do(buildKey, func() (any, error) {
		// A caller that queued behind a completed build must not rebuild.
		e.mu.RLock()
		ready := e.retr != nil
		e.mu.RUnlock()
		if ready {
			return nil, nil
		}
		return nil, e.rebuild(ctx)
	})
	return err
}

// Reset discards the current index and rebuilds from the current document
// set. The swap is a hard cutover: the new index is built fully before it
// replaces the old one, so no caller ever observes a half-reset state. A
// failed rebuild keeps a previously Ready index serving and surfaces the
// error. Reset shares the single-flight guard with EnsureReady, so a reset
// racing an in-flight build attaches to it instead of producing a torn index.
func (e *Engine) Reset(ctx context.Context) error {
	_, err, _ := e.group.Do(buildKey, func() (any, error) {
		return nil, e.rebuild(ctx)
	})
	return err
}

// Search builds the index if needed and returns raw ranked results for the
// query. An empty or whitespace-only query yields an empty result list.
func (e *Engine) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	if err := e.EnsureReady(ctx); err != nil {
		return nil, err
	}

	e.mu.RLock()
	retr := e.retr
	e.mu.RUnlock()
	if retr == nil {
		return nil, ErrNoDocuments
	}
	return retr.Search(query), nil
}

// Stats builds the index if needed and reports figures for the current build.
func (e *Engine) Stats(ctx context.Context) (domain.Stats, error) {
	if err := e.EnsureReady(ctx); err != nil {
		return domain.Stats{}, err
	}

	e.mu.RLock()
	retr := e.retr
	docCount := e.docCount
	e.mu.RUnlock()
	if retr == nil {
		return domain.Stats{}, ErrNoDocuments
	}
	stats := retr.Stats()
	// Count loaded documents, not just documents that survived chunk
	// filtering.
	if docCount > stats.DocumentCount {
		stats.DocumentCount = docCount
	}
	return stats, nil
}

// rebuild runs the full load→chunk→index pipeline and installs the result.
// Only ever invoked inside the single-flight group.
func (e *Engine) rebuild(ctx context.Context) error {
	e.mu.Lock()
	hadIndex := e.retr != nil
	if !hadIndex {
		e.state = StateInitializing
	}
	e.mu.Unlock()

	e.log.Info("building knowledge base index")

	retr, docCount, chunkCount, err := e.buildIndex(ctx)
	if err != nil {
		e.mu.Lock()
		if e.retr == nil {
			e.state = StateUninitialized
		}
		e.mu.Unlock()
		e.log.Error("index build failed", "error", err)
		return err
	}

	e.mu.Lock()
	e.retr = retr
	e.docCount = docCount
	e.state = StateReady
	e.mu.Unlock()

	e.log.Info("knowledge base ready", "documents", docCount, "chunks", chunkCount)
	return nil
}

// buildIndex produces a fully built retriever without touching engine state,
// so a failure leaves any previous index untouched.
func (e *Engine) buildIndex(ctx context.Context) (*retriever.Lexical, int, int, error) {
	docs, err := e.loader.LoadDocuments(ctx)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to load documents: %w", err)
	}
	if len(docs) == 0 {
		return nil, 0, 0, ErrNoDocuments
	}

	var chunks []domain.Chunk
	for i, doc := range docs {
		chunks = append(chunks, e.chunker.Chunk(doc)...)
		if e.progress != nil {
			e.progress("chunking", i+1, len(docs))
		}
	}

	retr := retriever.NewLexical(e.retrCfg)
	retr.Initialize(chunks)
	return retr, len(docs), len(chunks), nil
}
