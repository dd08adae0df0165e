package repository

import (
	"context"
	"fmt"

	"github.com/olenko/satchel/internal/db"
	"github.com/olenko/satchel/internal/domain"
)

// NoteRepo is a SQLite implementation of NoteRepository
type NoteRepo struct {
	db *db.DB
}

// NewNoteRepo creates a new NoteRepo
func NewNoteRepo(database *db.DB) *NoteRepo {
	return &NoteRepo{db: database}
}

// Load reads the whole notebook in stored order
func (r *NoteRepo) Load(ctx context.Context) (*domain.Notebook, error) {
	query := `
		SELECT id, text, created_at
		FROM notes
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}
	defer rows.Close()

	nb := domain.NewNotebook()
	byID := make(map[int64]*domain.Note)
	for rows.Next() {
		var (
			id        int64
			note      domain.Note
			createdAt string
		)
		if err := rows.Scan(&id, &note.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		if note.CreatedAt, err = parseDate(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		byID[id] = &note
		nb.Notes = append(nb.Notes, &note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}

	if err := r.loadTags(ctx, byID); err != nil {
		return nil, err
	}

	return nb, nil
}

func (r *NoteRepo) loadTags(ctx context.Context, byID map[int64]*domain.Note) error {
	query := `
		SELECT note_id, tag
		FROM note_tags
		ORDER BY note_id, position
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			noteID int64
			tag    string
		)
		if err := rows.Scan(&noteID, &tag); err != nil {
			return fmt.Errorf("failed to scan tag: %w", err)
		}
		if note, ok := byID[noteID]; ok {
			note.Tags = append(note.Tags, tag)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating tags: %w", err)
	}

	return nil
}

// Save replaces the stored notebook with the given one in a single
// transaction
func (r *NoteRepo) Save(ctx context.Context, nb *domain.Notebook) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"note_tags", "notes"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, note := range nb.Notes {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO notes (position, text, created_at)
			VALUES (?, ?, ?)
		`, i, note.Text, formatDate(note.CreatedAt))
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get note ID: %w", err)
		}

		for j, tag := range note.Tags {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO note_tags (note_id, position, tag)
				VALUES (?, ?, ?)
			`, id, j, tag); err != nil {
				return fmt.Errorf("failed to insert tag: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit notebook: %w", err)
	}

	return nil
}
