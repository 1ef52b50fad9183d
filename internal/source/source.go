// Package source builds candidate sources for the combobox: fixed lists,
// typo-tolerant search, and loaders for YAML, JSON and sqlite collections.
package source

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/jask/combobox/internal/combobox"
)

var ErrNoItems = errors.New("source: no items")

// Static returns a prefix-matching source over items.
func Static(items []string) combobox.Source {
	return combobox.Static(append([]string(nil), items...))
}

// Typo is a source that falls back to near matches. Prefix matches come
// first in candidate order, followed by candidates whose leading runes are
// within MaxDistance edits of the query.
type Typo struct {
	Items       []string
	MaxDistance int
}

func (t Typo) Search(query string) []string {
	out := combobox.Filter(query, t.Items)
	q := strings.ToLower(query)
	n := utf8.RuneCountInString(q)
	if t.MaxDistance <= 0 || n <= t.MaxDistance {
		return out
	}
	for _, item := range t.Items {
		lower := strings.ToLower(item)
		if strings.HasPrefix(lower, q) {
			continue
		}
		head := []rune(lower)
		if len(head) > n {
			head = head[:n]
		}
		if levenshtein.ComputeDistance(string(head), q) <= t.MaxDistance {
			out = append(out, item)
		}
	}
	return out
}
