// Package keywords ranks the most frequent meaningful terms in a paper's
// extracted text.
package keywords

import (
	"sort"
	"strings"
	"unicode"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// maxKeywords caps the ranked list.
const maxKeywords = 10

// minTermLength is the shortest token kept; anything shorter is noise.
const minTermLength = 5

// stopwords is the fixed set of common words excluded from ranking.
var stopwords = map[string]struct{}{
	"the": {}, "is": {}, "at": {}, "which": {}, "on": {}, "and": {},
	"a": {}, "an": {}, "as": {}, "are": {}, "was": {}, "were": {},
	"been": {}, "be": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "must": {}, "can": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "of": {},
	"for": {}, "with": {}, "from": {}, "to": {}, "in": {}, "by": {},
}

// Extract returns the top terms of text ranked by descending frequency,
// ties broken by earliest first occurrence. The result is deterministic
// for identical input: casing is locale-independent and tokenization
// splits on ASCII non-word characters.
func Extract(text string) []types.Keyword {
	lowered := strings.ToLower(text)
	tokens := strings.FieldsFunc(lowered, func(r rune) bool {
		return !isWordChar(r)
	})

	type entry struct {
		term  string
		count int
		first int
	}
	seen := make(map[string]*entry)
	var order []*entry

	for i, tok := range tokens {
		if len(tok) < minTermLength {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		e, ok := seen[tok]
		if !ok {
			e = &entry{term: tok, first: i}
			seen[tok] = e
			order = append(order, e)
		}
		e.count++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].first < order[j].first
	})

	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}

	result := make([]types.Keyword, len(order))
	for i, e := range order {
		result[i] = types.Keyword{
			Term:  capitalize(e.term),
			Count: e.count,
			Rank:  i + 1,
		}
	}
	return result
}

// isWordChar matches the ASCII word-character class: letters, digits,
// underscore. Everything else is a token boundary.
func isWordChar(r rune) bool {
	return r == '_' ||
		('0' <= r && r <= '9') ||
		('a' <= r && r <= 'z') ||
		('A' <= r && r <= 'Z')
}

// capitalize upper-cases the first rune for display.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
