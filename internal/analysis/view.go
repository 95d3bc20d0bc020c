// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analysis derives read-only presentation values from a stored
// paper: summary text, document statistics, the similarity placeholder,
// and pie-chart geometry. Nothing here mutates the Paper.
package analysis

import (
	"hash/fnv"
	"math"
	"regexp"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// summaryLength is the number of characters shown before the ellipsis.
const summaryLength = 500

// Summary returns the paper's extracted text truncated to its first 500
// characters with an ellipsis suffix. Texts at or under the limit keep
// the suffix too; consumers depend on that exact shape, so it is
// reproduced rather than fixed.
func Summary(p types.Paper) string {
	runes := []rune(p.ExtractedText)
	if len(runes) > summaryLength {
		runes = runes[:summaryLength]
	}
	return string(runes) + "..."
}

// Stats holds derived document statistics.
type Stats struct {
	CharCount int `json:"char_count" yaml:"char_count"`
	WordCount int `json:"word_count" yaml:"word_count"`
}

var wordSplit = regexp.MustCompile(`\s+`)

// TextStats computes character and word counts for the paper's extracted
// text. Words are naive whitespace-delimited runs: empty text still
// counts as one word.
func TextStats(p types.Paper) Stats {
	return Stats{
		CharCount: len([]rune(p.ExtractedText)),
		WordCount: len(wordSplit.Split(p.ExtractedText, -1)),
	}
}

const (
	similarityMin  = 15
	similaritySpan = 30
)

// SimilarityScore returns the paper's synthetic similarity indicator in
// [15,45). It is a deterministic placeholder derived from a hash of the
// extracted text and carries no semantic relationship to originality;
// a real plagiarism measurement would replace it wholesale.
func SimilarityScore(p types.Paper) int {
	h := fnv.New32a()
	h.Write([]byte(p.ExtractedText))
	return similarityMin + int(h.Sum32()%similaritySpan)
}

// Arcs holds the stroke-dash geometry for the similarity pie chart at a
// given radius.
type Arcs struct {
	Circumference    float64
	PlagiarismOffset float64
	OriginalOffset   float64
}

// PieArcs computes the arc offsets for a similarity score out of 100. At
// score 0 the plagiarism arc is fully hidden (offset equals the
// circumference); at score 100 it is a full circle (offset 0).
func PieArcs(score int, radius float64) Arcs {
	c := 2 * math.Pi * radius
	return Arcs{
		Circumference:    c,
		PlagiarismOffset: c * (1 - float64(score)/100),
		OriginalOffset:   c * float64(score) / 100,
	}
}
