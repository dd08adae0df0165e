package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/olenko/satchel/internal/ai"
	"github.com/olenko/satchel/internal/config"
	"github.com/olenko/satchel/internal/crypto"
	"github.com/olenko/satchel/internal/db"
	"github.com/olenko/satchel/internal/domain"
	"github.com/olenko/satchel/internal/repository"
	"github.com/olenko/satchel/internal/service"
)

// ErrNoUser is returned when no username was given and none is remembered
// in the config.
var ErrNoUser = errors.New("no user selected: pass --user or run 'satchel register'")

// ErrUnknownUser is returned when the named user has never registered.
var ErrUnknownUser = errors.New("unknown user: run 'satchel register' first")

// App is the dependency injection container for one user session
type App struct {
	Config *config.Config
	Log    *zap.Logger
	DB     *db.DB
	User   string

	// Repositories
	BookRepo repository.BookRepository
	NoteRepo repository.NoteRepository

	// Session state: loaded once at start, mutated in memory, written
	// back by SaveAll at session end
	Book     *domain.AddressBook
	Notebook *domain.Notebook

	// Optional AI collaborator; nil when no API key is configured
	Assist *ai.Assistant

	// Services
	NoteSearch service.NoteSearch
}

// New creates a session for username, initializing all dependencies.
// It handles:
// 1. Loading config
// 2. Getting the user's database key from the keyring
// 3. Opening the per-user encrypted database
// 4. Running migrations
// 5. Loading the book and notebook snapshots
// 6. Setting up the optional AI collaborator
func New(ctx context.Context, username string, logger *zap.Logger) (*App, error) {
	// Load config from default path
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg, username, logger)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config, username string, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if username == "" {
		username = cfg.DefaultUser
	}
	if username == "" {
		return nil, ErrNoUser
	}

	// Ensure all necessary directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	// Get keyring for secure key storage
	keyring := crypto.NewKeyring()

	// Try the keyring first; fall back to asking for the passphrase so a
	// user can still log in on a machine without their keychain entry.
	fromKeyring := true
	password, err := keyring.GetKey(username)
	if err != nil {
		dbPath := db.UserDBPath(cfg.Storage.DataDir, username)
		if _, serr := os.Stat(dbPath); os.IsNotExist(serr) {
			return nil, fmt.Errorf("%w (user %q)", ErrUnknownUser, username)
		}
		fromKeyring = false
		password, err = promptPassphrase(username)
		if err != nil {
			return nil, fmt.Errorf("failed to read passphrase: %w", err)
		}
	}

	database, err := openUserDB(cfg, username, password, fromKeyring, logger)
	if err != nil {
		return nil, err
	}

	// A prompted passphrase that opened the book is the right one, so
	// store it for the next session.
	if !fromKeyring {
		if err := keyring.SetKey(username, password); err != nil {
			logger.Warn("failed to store passphrase in keyring", zap.Error(err))
		}
	}

	// Create repositories
	bookRepo := repository.NewBookRepo(database)
	noteRepo := repository.NewNoteRepo(database)

	// Load the session snapshots. A book that cannot be read is replaced
	// with an empty one rather than blocking the session.
	book, err := bookRepo.Load(ctx)
	if err != nil {
		logger.Warn("failed to load contacts, starting with an empty book", zap.Error(err))
		book = domain.NewAddressBook()
	}
	notebook, err := noteRepo.Load(ctx)
	if err != nil {
		logger.Warn("failed to load notes, starting with an empty notebook", zap.Error(err))
		notebook = domain.NewNotebook()
	}

	// Optional AI collaborator: absent key file simply disables it
	assist, err := ai.NewFromKeyFile(ctx, cfg.AI.KeyFile, cfg.AI.Model)
	if err != nil {
		logger.Warn("AI collaborator unavailable", zap.Error(err))
		assist = nil
	}
	var semantic service.SemanticSearcher
	if assist != nil {
		semantic = assist
	}

	// Remember the user for the next start
	if cfg.DefaultUser != username {
		cfg.DefaultUser = username
		if err := cfg.Save(config.DefaultConfigPath()); err != nil {
			logger.Warn("failed to remember default user", zap.Error(err))
		}
	}

	return &App{
		Config:     cfg,
		Log:        logger,
		DB:         database,
		User:       username,
		BookRepo:   bookRepo,
		NoteRepo:   noteRepo,
		Book:       book,
		Notebook:   notebook,
		Assist:     assist,
		NoteSearch: service.NewNoteSearch(semantic),
	}, nil
}

// openUserDB opens the user's database and brings the schema up to date.
// When the trusted keyring key cannot open the file, the file is treated
// as corrupt: it is moved aside and a fresh database takes its place.
// A prompted passphrase gets no such treatment, since the likely cause is
// a typo, not corruption.
func openUserDB(cfg *config.Config, username, password string, fromKeyring bool, logger *zap.Logger) (*db.DB, error) {
	database, err := db.OpenUser(cfg.Storage.DataDir, username, password)
	if err == nil {
		if merr := database.RunMigrations(); merr != nil {
			database.Close()
			err = merr
		}
	}
	if err == nil {
		return database, nil
	}

	if !fromKeyring {
		return nil, fmt.Errorf("failed to open book for %q (wrong passphrase?): %w", username, err)
	}

	logger.Warn("database unreadable, starting fresh",
		zap.String("user", username),
		zap.Error(err))

	dbPath := db.UserDBPath(cfg.Storage.DataDir, username)
	if qerr := quarantine(dbPath); qerr != nil {
		return nil, fmt.Errorf("failed to quarantine database: %w", qerr)
	}

	database, err = db.OpenUser(cfg.Storage.DataDir, username, password)
	if err != nil {
		return nil, fmt.Errorf("failed to recreate database: %w", err)
	}
	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return database, nil
}

// quarantine moves an unreadable database file aside, keeping its bytes
// for manual recovery.
func quarantine(path string) error {
	dst := fmt.Sprintf("%s.corrupt-%s", path, time.Now().Format("20060102-150405"))
	return os.Rename(path, dst)
}

// SaveAll writes the in-memory book and notebook back to storage.
func (a *App) SaveAll(ctx context.Context) error {
	if err := a.BookRepo.Save(ctx, a.Book); err != nil {
		return fmt.Errorf("failed to save contacts: %w", err)
	}
	if err := a.NoteRepo.Save(ctx, a.Notebook); err != nil {
		return fmt.Errorf("failed to save notes: %w", err)
	}
	return nil
}

// Close cleanly shuts down the session
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}

// Register creates a new user: a passphrase is chosen, stored in the
// keyring, and a fresh encrypted database is created for the user.
func Register(ctx context.Context, username string) error {
	cfg, err := config.LoadDefault()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if username == "" {
		return errors.New("username cannot be empty")
	}

	keyring := crypto.NewKeyring()
	dbPath := db.UserDBPath(cfg.Storage.DataDir, username)
	if _, err := os.Stat(dbPath); err == nil {
		return fmt.Errorf("user %q is already registered", username)
	}
	if _, err := keyring.GetKey(username); err == nil {
		return fmt.Errorf("user %q is already registered", username)
	}

	password, err := promptForPassword()
	if err != nil {
		return fmt.Errorf("failed to set passphrase: %w", err)
	}

	// Store the key in keyring
	if err := keyring.SetKey(username, password); err != nil {
		return fmt.Errorf("failed to store database key: %w", err)
	}

	// Create the database so the first login finds a valid file
	database, err := db.OpenUser(cfg.Storage.DataDir, username, password)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer database.Close()
	if err := database.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// The first registered user becomes the default
	if cfg.DefaultUser == "" {
		cfg.DefaultUser = username
		if err := cfg.Save(config.DefaultConfigPath()); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
	}

	return nil
}

// promptForPassword prompts for a new passphrase with confirmation
// (registration flow).
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Your contacts and notes will be encrypted with a passphrase.")
	fmt.Println("This passphrase will be stored securely in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a passphrase: ")

	// Read password securely (no echo)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after password input
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("passphrase cannot be empty")
	}

	// Confirm password
	fmt.Print("Confirm passphrase: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after confirmation
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	// Check if passwords match
	if string(password) != string(confirm) {
		return "", fmt.Errorf("passphrases do not match")
	}

	return string(password), nil
}

// promptPassphrase asks for an existing passphrase once (login without a
// keyring entry).
func promptPassphrase(username string) (string, error) {
	fmt.Printf("Enter the passphrase for %s: ", username)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(password) == 0 {
		return "", errors.New("passphrase cannot be empty")
	}
	return string(password), nil
}
