package chunker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"kbrag/internal/domain"
)

// TextChunker splits document text into overlapping, boundary-respecting
// segments. Paragraphs are kept whole when they fit; oversize paragraphs are
// split on sentence-terminal punctuation and greedily repacked. The trailing
// overlap of each flushed chunk seeds the next one so context carries across
// split boundaries.
type TextChunker struct {
	chunkSize        int
	overlapSize      int
	splitOnSentences bool
}

// NewTextChunker creates a TextChunker. Non-positive sizes fall back to the
// defaults (1000 character chunks, 200 character overlap).
func NewTextChunker(chunkSize, overlapSize int, splitOnSentences bool) *TextChunker {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlapSize < 0 {
		overlapSize = 0
	}
	return &TextChunker{
		chunkSize:        chunkSize,
		overlapSize:      overlapSize,
		splitOnSentences: splitOnSentences,
	}
}

var (
	paragraphRe  = regexp.MustCompile(`\n[\t ]*\n\s*`)
	sentenceRe   = regexp.MustCompile(`[^.!?]+[.!?]+`)
	pageMarkerRe = regexp.MustCompile(`\[Page (\d+)\]`)
)

// Chunk splits doc into ordered chunks. Deterministic for a fixed document
// and configuration; an empty document yields no chunks.
func (c *TextChunker) Chunk(doc domain.Document) []domain.Chunk {
	pieces := c.pieces(doc.Text)
	if len(pieces) == 0 {
		return nil
	}

	var chunks []domain.Chunk
	var buf strings.Builder
	bufStart := 0
	page := 0

	flush := func() {
		content := buf.String()
		if content == "" {
			return
		}
		idx := len(chunks)
		chunks = append(chunks, domain.Chunk{
			ID:           chunkID(doc.ID, idx),
			DocumentID:   doc.ID,
			DocumentName: doc.Filename,
			Index:        idx,
			Content:      content,
			StartPage:    page,
			StartChar:    bufStart,
			EndChar:      bufStart + len(content),
		})
	}

	for _, piece := range pieces {
		if buf.Len() > 0 && buf.Len()+len(piece) > c.chunkSize {
			flush()
			prev := buf.String()
			tail := overlapTail(prev, c.overlapSize)
			buf.Reset()
			bufStart = bufStart + len(prev) - len(tail)
			if tail != "" {
				buf.WriteString(tail)
				buf.WriteByte(' ')
			}
			buf.WriteString(piece)
		} else {
			if buf.Len() > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(piece)
		}

		// Page markers persist forward: the last one seen applies to every
		// following chunk until the next marker.
		if markers := pageMarkerRe.FindAllStringSubmatch(piece, -1); len(markers) > 0 {
			if n, err := strconv.Atoi(markers[len(markers)-1][1]); err == nil {
				page = n
			}
		}
	}
	flush()

	return chunks
}

// pieces splits text into paragraphs on blank lines, then sentence-splits any
// paragraph longer than the chunk size when sentence splitting is enabled.
func (c *TextChunker) pieces(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	var pieces []string
	for _, para := range paragraphRe.Split(normalized, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if c.splitOnSentences && len(para) > c.chunkSize {
			pieces = append(pieces, splitSentences(para, c.chunkSize)...)
		} else {
			pieces = append(pieces, para)
		}
	}
	return pieces
}

// splitSentences breaks a paragraph on sentence-terminal punctuation and
// greedily repacks the sentences into pieces no longer than limit, preserving
// order. A paragraph with no terminal punctuation is returned whole, even when
// oversized: an oversized chunk beats silent truncation.
func splitSentences(paragraph string, limit int) []string {
	locs := sentenceRe.FindAllStringIndex(paragraph, -1)
	if len(locs) == 0 {
		return []string{paragraph}
	}

	var sentences []string
	for _, loc := range locs {
		if s := strings.TrimSpace(paragraph[loc[0]:loc[1]]); s != "" {
			sentences = append(sentences, s)
		}
	}
	if rest := strings.TrimSpace(paragraph[locs[len(locs)-1][1]:]); rest != "" {
		sentences = append(sentences, rest)
	}

	var pieces []string
	var cur strings.Builder
	for _, s := range sentences {
		if cur.Len() > 0 && cur.Len()+1+len(s) > limit {
			pieces = append(pieces, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(s)
	}
	if cur.Len() > 0 {
		pieces = append(pieces, cur.String())
	}
	return pieces
}

// overlapTail returns the trailing overlap characters of s, cut at a rune
// boundary so multi-byte text never splits mid-character.
func overlapTail(s string, overlap int) string {
	if overlap <= 0 || len(s) <= overlap {
		if overlap <= 0 {
			return ""
		}
		return s
	}
	start := len(s) - overlap
	for start < len(s) && !utf8RuneStart(s[start]) {
		start++
	}
	return s[start:]
}

func utf8RuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

func chunkID(docID string, index int) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s:%d", docID, index)))
	return hex.EncodeToString(hash[:8])
}
