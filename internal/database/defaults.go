package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/combobox/internal/database/repository"
)

// DefaultCollection is the collection seeded on first run.
const DefaultCollection = "fruit"

var defaultFruit = []string{
	"Apple", "Apricot", "Avocado", "Banana", "Blackberry", "Blueberry",
	"Cherry", "Coconut", "Cranberry", "Date", "Dragonfruit", "Durian",
	"Fig", "Grape", "Grapefruit", "Guava", "Kiwi", "Lemon", "Lime",
	"Lychee", "Mango", "Melon", "Nectarine", "Orange", "Papaya", "Peach",
	"Pear", "Pineapple", "Plum", "Pomegranate", "Raspberry", "Strawberry",
}

// ItemID derives a stable id for text in collection.
func ItemID(collection, text string) string {
	key := "item:" + collection + ":" + strings.ToLower(strings.TrimSpace(text))
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

// SeedDefaults ensures the default collection exists for new databases.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	return SeedCollection(ctx, db, DefaultCollection, defaultFruit)
}

// SeedCollection stores texts as collection unless it already has items.
// The check and the inserts share one transaction, so a failed seed leaves
// no partial collection behind.
func SeedCollection(ctx context.Context, db *sql.DB, collection string, texts []string) error {
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		items := repository.NewItemRepo(tx)
		n, err := items.Count(ctx, collection)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		for idx, text := range texts {
			it := repository.Item{ID: ItemID(collection, text), Collection: collection, Text: text, SortOrder: idx}
			if err := items.Upsert(ctx, it); err != nil {
				return fmt.Errorf("seed %s: %w", collection, err)
			}
		}
		return nil
	})
}
