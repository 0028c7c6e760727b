package cli

import (
	"log/slog"
	"path/filepath"

	"kbrag/config"
	"kbrag/internal/adapter/chunker"
	"kbrag/internal/adapter/loader"
	"kbrag/internal/adapter/retriever"
	"kbrag/internal/usecase"
)

// newEngine wires the loader, chunker and retriever from configuration. The
// returned cleanup closes the extracted-text cache and must be called once
// the engine is no longer needed.
func newEngine(cfg *config.Config, rootDir string, log *slog.Logger) (*usecase.Engine, func()) {
	docsDir := cfg.Documents.Dir
	if !filepath.IsAbs(docsDir) {
		docsDir = filepath.Join(rootDir, docsDir)
	}

	var cache *loader.TextCache
	cleanup := func() {}
	if cfg.Documents.CacheEnabled {
		if err := config.EnsureStateDir(rootDir); err != nil {
			log.Warn("state directory unavailable, text cache disabled", "error", err)
		} else if c, err := loader.OpenTextCache(config.CachePath(rootDir)); err != nil {
			log.Warn("text cache unavailable", "error", err)
		} else {
			cache = c
			cleanup = func() { c.Close() }
		}
	}

	ld := loader.NewFSLoader(
		docsDir,
		cfg.Documents.Includes,
		cfg.Documents.Excludes,
		cache,
		cfg.Documents.FallbackSamples,
		log,
	)

	chk := chunker.NewTextChunker(
		cfg.Chunking.ChunkSize,
		cfg.Chunking.OverlapSize,
		cfg.Chunking.SplitOnSentences,
	)

	retrCfg := retriever.Config{
		MinChunkLength:     cfg.Retrieval.MinChunkLength,
		TopK:               cfg.Retrieval.TopK,
		RelevanceThreshold: cfg.Retrieval.RelevanceThreshold,
		K1:                 cfg.Retrieval.K1,
		B:                  cfg.Retrieval.B,
		PartialMatchWeight: cfg.Retrieval.PartialMatchWeight,
		PositionBonusMax:   cfg.Retrieval.PositionBonusMax,
		PositionBonusMin:   cfg.Retrieval.PositionBonusMin,
		ScoreCeiling:       cfg.Retrieval.ScoreCeiling,
	}

	return usecase.NewEngine(ld, chk, retrCfg, log), cleanup
}
