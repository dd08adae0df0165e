package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/olenko/satchel/internal/db"
	"github.com/olenko/satchel/internal/domain"
)

// BookRepo is a SQLite implementation of BookRepository
type BookRepo struct {
	db *db.DB
}

// NewBookRepo creates a new BookRepo
func NewBookRepo(database *db.DB) *BookRepo {
	return &BookRepo{db: database}
}

// Load reads the whole address book, contacts in their stored order
func (r *BookRepo) Load(ctx context.Context) (*domain.AddressBook, error) {
	query := `
		SELECT id, name, surname, address, email, birthday
		FROM contacts
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}
	defer rows.Close()

	book := domain.NewAddressBook()
	byID := make(map[int64]*domain.Record)
	for rows.Next() {
		var (
			id       int64
			rec      domain.Record
			birthday sql.NullString
		)
		if err := rows.Scan(&id, &rec.Name, &rec.Surname, &rec.Address, &rec.Email, &birthday); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		if birthday.Valid {
			bd, err := parseDate(birthday.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse birthday: %w", err)
			}
			rec.Birthday = &bd
		}
		byID[id] = &rec
		book.Put(&rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}

	if err := r.loadPhones(ctx, byID); err != nil {
		return nil, err
	}
	if err := r.loadContactNotes(ctx, byID); err != nil {
		return nil, err
	}

	return book, nil
}

func (r *BookRepo) loadPhones(ctx context.Context, byID map[int64]*domain.Record) error {
	query := `
		SELECT contact_id, phone
		FROM contact_phones
		ORDER BY contact_id, position
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to load phones: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			contactID int64
			phone     string
		)
		if err := rows.Scan(&contactID, &phone); err != nil {
			return fmt.Errorf("failed to scan phone: %w", err)
		}
		if rec, ok := byID[contactID]; ok {
			rec.Phones = append(rec.Phones, phone)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating phones: %w", err)
	}

	return nil
}

func (r *BookRepo) loadContactNotes(ctx context.Context, byID map[int64]*domain.Record) error {
	query := `
		SELECT contact_id, text
		FROM contact_notes
		ORDER BY contact_id, position
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to load contact notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			contactID int64
			text      string
		)
		if err := rows.Scan(&contactID, &text); err != nil {
			return fmt.Errorf("failed to scan contact note: %w", err)
		}
		if rec, ok := byID[contactID]; ok {
			rec.Notes = append(rec.Notes, text)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating contact notes: %w", err)
	}

	return nil
}

// Save replaces the stored book with the given one in a single transaction
func (r *BookRepo) Save(ctx context.Context, book *domain.AddressBook) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Children first so foreign keys hold
	for _, table := range []string{"contact_phones", "contact_notes", "contacts"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, rec := range book.Records() {
		var birthday *string
		if rec.Birthday != nil {
			s := formatDate(*rec.Birthday)
			birthday = &s
		}

		result, err := tx.ExecContext(ctx, `
			INSERT INTO contacts (position, name, surname, address, email, birthday)
			VALUES (?, ?, ?, ?, ?, ?)
		`, i, rec.Name, rec.Surname, rec.Address, rec.Email, birthday)
		if err != nil {
			return fmt.Errorf("failed to insert contact: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get contact ID: %w", err)
		}

		for j, phone := range rec.Phones {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO contact_phones (contact_id, position, phone)
				VALUES (?, ?, ?)
			`, id, j, phone); err != nil {
				return fmt.Errorf("failed to insert phone: %w", err)
			}
		}

		for j, text := range rec.Notes {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO contact_notes (contact_id, position, text)
				VALUES (?, ?, ?)
			`, id, j, text); err != nil {
				return fmt.Errorf("failed to insert contact note: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit book: %w", err)
	}

	return nil
}
