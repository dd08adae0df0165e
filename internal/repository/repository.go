package repository

import (
	"context"

	"github.com/olenko/satchel/internal/domain"
)

// BookRepository persists one user's address book as a whole snapshot.
// Load runs once at session start and Save at session end, so the session
// owns the in-memory book exclusively in between.
type BookRepository interface {
	Load(ctx context.Context) (*domain.AddressBook, error)
	Save(ctx context.Context, book *domain.AddressBook) error
}

// NoteRepository persists the general notebook the same way.
type NoteRepository interface {
	Load(ctx context.Context) (*domain.Notebook, error)
	Save(ctx context.Context, nb *domain.Notebook) error
}
