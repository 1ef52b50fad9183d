package repository

import (
	"context"
	"database/sql"
	"strings"
)

// ItemRepo handles candidate collections.
type ItemRepo struct {
	db DBTX
}

func NewItemRepo(db DBTX) *ItemRepo {
	return &ItemRepo{db: db}
}

func (r *ItemRepo) Upsert(ctx context.Context, it Item) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO items(id, collection, text, sort_order)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 collection=excluded.collection,
	 text=excluded.text,
	 sort_order=excluded.sort_order;
	`, it.ID, it.Collection, it.Text, it.SortOrder)
	return err
}

// List returns a collection in display order.
func (r *ItemRepo) List(ctx context.Context, collection string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, collection, text, sort_order FROM items
	WHERE collection = ?
	ORDER BY sort_order, rowid`, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

// SearchPrefix returns items whose text starts with prefix, ignoring ASCII case.
func (r *ItemRepo) SearchPrefix(ctx context.Context, collection, prefix string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, collection, text, sort_order FROM items
	WHERE collection = ? AND text LIKE ? ESCAPE '\'
	ORDER BY sort_order, rowid`, collection, escapeLike(prefix)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *ItemRepo) Count(ctx context.Context, collection string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE collection = ?`, collection).Scan(&n)
	return n, err
}

func scanItems(rows *sql.Rows) ([]Item, error) {
	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Collection, &it.Text, &it.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
