package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/profanity/internal/core/domain"
	"github.com/custodia-labs/profanity/internal/core/ports/driven"
)

// referenceStore implements driven.ReferenceStore.
type referenceStore struct {
	store *Store
}

var _ driven.ReferenceStore = (*referenceStore)(nil)

// SaveReferences inserts entries, replacing the embedding of any entry
// that already exists for the same model and text.
func (s *referenceStore) SaveReferences(ctx context.Context, entries []domain.ReferenceEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO reference_entries (id, text, model, dimensions, embedding, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(model, text) DO UPDATE SET
			dimensions = excluded.dimensions,
			embedding = excluded.embedding,
			created_at = excluded.created_at
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		createdAt := e.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		if _, err := stmt.ExecContext(ctx, e.ID, e.Text, e.Model, len(e.Embedding),
			float32SliceToBytes(e.Embedding), createdAt.UTC()); err != nil {
			return fmt.Errorf("saving reference %q: %w", e.Text, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ListReferences returns all entries embedded with the given model, oldest first.
func (s *referenceStore) ListReferences(ctx context.Context, model string) ([]domain.ReferenceEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, text, model, embedding, created_at
		FROM reference_entries WHERE model = ?
		ORDER BY created_at, id
	`, model)
	if err != nil {
		return nil, fmt.Errorf("listing references: %w", err)
	}
	defer rows.Close()

	var entries []domain.ReferenceEntry
	for rows.Next() {
		var (
			e    domain.ReferenceEntry
			blob []byte
		)
		if err := rows.Scan(&e.ID, &e.Text, &e.Model, &blob, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning reference: %w", err)
		}
		e.Embedding = bytesToFloat32Slice(blob)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating references: %w", err)
	}
	return entries, nil
}

// CountReferences returns the number of entries for the given model.
func (s *referenceStore) CountReferences(ctx context.Context, model string) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reference_entries WHERE model = ?", model)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting references: %w", err)
	}
	return count, nil
}

// Close closes the underlying store.
func (s *referenceStore) Close() error {
	return s.store.Close()
}
