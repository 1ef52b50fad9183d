package combobox

import "strings"

// Source is the injected search capability. Search returns the candidates
// matching query, in display order.
type Source interface {
	Search(query string) []string
}

type SourceFunc func(query string) []string

func (f SourceFunc) Search(query string) []string { return f(query) }

// Static is a fixed candidate set searched with Filter.
type Static []string

func (s Static) Search(query string) []string { return Filter(query, s) }

// Filter returns the candidates whose lowercase form starts with the
// lowercase query, preserving order. An empty query matches everything.
func Filter(query string, candidates []string) []string {
	q := strings.ToLower(query)
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), q) {
			out = append(out, c)
		}
	}
	return out
}

// Suggest runs src for query. Without showAll an empty query yields no
// suggestions, so focusing an empty field does not pop the list.
func Suggest(src Source, query string, showAll bool) []string {
	if src == nil {
		return nil
	}
	if query == "" && !showAll {
		return nil
	}
	return src.Search(query)
}
