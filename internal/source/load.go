package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/jask/combobox/internal/combobox"
	"github.com/jask/combobox/internal/database/repository"
)

type yamlFile struct {
	Items []string `yaml:"items"`
}

// FromYAML reads a candidate list. Both a bare sequence and a mapping with
// an "items" key are accepted.
func FromYAML(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read yaml: %w", err)
	}
	var items []string
	if err := yaml.Unmarshal(data, &items); err != nil {
		var f yamlFile
		if err2 := yaml.Unmarshal(data, &f); err2 != nil {
			return nil, fmt.Errorf("parse yaml: %w", err2)
		}
		items = f.Items
	}
	items = clean(items)
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return items, nil
}

// FromJSON projects JSON records to display strings with a gjson path,
// e.g. "fruit.#.name". An empty path reads a top-level array of strings.
func FromJSON(data []byte, path string) ([]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parse json: invalid document")
	}
	if strings.TrimSpace(path) == "" {
		path = "@this"
	}
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return nil, fmt.Errorf("json path %q: %w", path, ErrNoItems)
	}
	var items []string
	if res.IsArray() {
		res.ForEach(func(_, v gjson.Result) bool {
			items = append(items, v.String())
			return true
		})
	} else {
		items = []string{res.String()}
	}
	items = clean(items)
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return items, nil
}

// ItemLister is the part of repository.ItemRepo a loader needs.
type ItemLister interface {
	List(ctx context.Context, collection string) ([]repository.Item, error)
}

// FromRepo loads a stored collection in display order.
func FromRepo(ctx context.Context, repo ItemLister, collection string) ([]string, error) {
	rows, err := repo.List(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	items := make([]string, 0, len(rows))
	for _, it := range rows {
		items = append(items, it.Text)
	}
	items = clean(items)
	if len(items) == 0 {
		return nil, fmt.Errorf("collection %q: %w", collection, ErrNoItems)
	}
	return items, nil
}

// ItemSearcher is the part of repository.ItemRepo a live source needs.
type ItemSearcher interface {
	SearchPrefix(ctx context.Context, collection, prefix string) ([]repository.Item, error)
}

// RepoSearch queries the store on every search, so rows added while the
// widget is open show up. A failed query yields no suggestions and is
// logged. Case folding is ASCII only, as with sqlite LIKE.
func RepoSearch(ctx context.Context, repo ItemSearcher, collection string, logger *slog.Logger) combobox.SourceFunc {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return func(query string) []string {
		rows, err := repo.SearchPrefix(ctx, collection, query)
		if err != nil {
			logger.Warn("search candidates", "collection", collection, "query", query, "error", err)
			return nil
		}
		out := make([]string, 0, len(rows))
		for _, it := range rows {
			out = append(out, it.Text)
		}
		return out
	}
}

// clean trims entries and drops blanks. Order and duplicates are kept.
func clean(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
