package repository

import (
	"context"
	"time"
)

// SelectionRepo records committed selections.
type SelectionRepo struct {
	db DBTX
}

func NewSelectionRepo(db DBTX) *SelectionRepo { return &SelectionRepo{db: db} }

func (r *SelectionRepo) Record(ctx context.Context, s Selection) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO selections(id, combobox, text, selected_at) VALUES (?, ?, ?, ?)
	`, s.ID, s.Combobox, s.Text, s.SelectedAt.UTC())
	return err
}

// Recent returns the newest selections for a combobox first.
func (r *SelectionRepo) Recent(ctx context.Context, combobox string, limit int) ([]Selection, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, combobox, text, selected_at FROM selections
	WHERE combobox = ?
	ORDER BY selected_at DESC, rowid DESC
	LIMIT ?`, combobox, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Selection
	for rows.Next() {
		var s Selection
		var at time.Time
		if err := rows.Scan(&s.ID, &s.Combobox, &s.Text, &at); err != nil {
			return nil, err
		}
		s.SelectedAt = at
		out = append(out, s)
	}
	return out, rows.Err()
}
