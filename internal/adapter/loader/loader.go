package loader

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"kbrag/internal/domain"
)

// FSLoader loads documents from a directory on the local filesystem. Plain
// text and markdown files are ingested as-is; binary formats without an
// extractor are skipped with a log note. When the directory yields nothing
// and the fallback is enabled, a built-in bilingual sample set is returned so
// the assistant stays usable out of the box.
type FSLoader struct {
	dir             string
	includes        []string
	excludes        []string
	cache           *TextCache
	fallbackSamples bool
	log             *slog.Logger
}

// NewFSLoader creates a loader over dir. cache may be nil to disable the
// extracted-text cache.
func NewFSLoader(dir string, includes, excludes []string, cache *TextCache, fallbackSamples bool, log *slog.Logger) *FSLoader {
	if log == nil {
		log = slog.Default()
	}
	return &FSLoader{
		dir:             dir,
		includes:        includes,
		excludes:        excludes,
		cache:           cache,
		fallbackSamples: fallbackSamples,
		log:             log,
	}
}

// LoadDocuments walks the configured directory and returns one Document per
// readable source file.
func (l *FSLoader) LoadDocuments(ctx context.Context) ([]domain.Document, error) {
	files, err := walkDocuments(l.dir, l.includes, l.excludes)
	if err != nil {
		if os.IsNotExist(err) && l.fallbackSamples {
			l.log.Warn("documents directory missing, using built-in samples", "dir", l.dir)
			return sampleDocuments(), nil
		}
		return nil, err
	}

	var docs []domain.Document
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, ok := l.extractText(file)
		if !ok {
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		docs = append(docs, domain.Document{
			ID:       docID(file.rel),
			Filename: filepath.Base(file.path),
			Text:     text,
		})
	}

	if len(docs) == 0 && l.fallbackSamples {
		l.log.Warn("no usable documents found, using built-in samples", "dir", l.dir)
		return sampleDocuments(), nil
	}

	l.log.Info("documents loaded", "dir", l.dir, "count", len(docs))
	return docs, nil
}

// extractText returns the plain text of a file, serving unchanged files from
// the cache. Binary content is skipped.
func (l *FSLoader) extractText(file fileInfo) (string, bool) {
	if l.cache != nil {
		if text, hit := l.cache.Get(file.rel, file.modTime); hit {
			return text, true
		}
	}

	data, err := os.ReadFile(file.path)
	if err != nil {
		l.log.Warn("skipping unreadable file", "path", file.path, "error", err)
		return "", false
	}

	if bytes.HasPrefix(data, []byte("%PDF")) {
		l.log.Warn("skipping PDF, no text extractor available", "path", file.path)
		return "", false
	}
	if looksBinary(data) {
		l.log.Warn("skipping binary file", "path", file.path)
		return "", false
	}

	text := string(data)
	if l.cache != nil {
		if err := l.cache.Put(file.rel, file.modTime, text); err != nil {
			l.log.Warn("text cache write failed", "path", file.rel, "error", err)
		}
	}
	return text, true
}

// looksBinary sniffs the first bytes for a NUL, the usual tell of non-text
// content.
func looksBinary(data []byte) bool {
	window := data
	if len(window) > 512 {
		window = window[:512]
	}
	return bytes.IndexByte(window, 0) >= 0
}

func docID(rel string) string {
	hash := sha256.Sum256([]byte(filepath.ToSlash(rel)))
	return hex.EncodeToString(hash[:8])
}
