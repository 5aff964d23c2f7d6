// Package repository persists roommait data in PostgreSQL, with in-memory
// fallbacks used when the database is disabled or unreachable.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/saswath-06/roommait/internal/domain"
)

var (
	// ErrNotFound is returned when a lookup by id matches no row.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when an insert hits an existing primary key.
	ErrAlreadyExists = errors.New("already exists")
)

type UsersRepository interface {
	GetBySubject(ctx context.Context, subject string) (*domain.User, error)
	// UpsertBySubject creates the user on first sight; email and name are
	// refreshed when non-empty.
	UpsertBySubject(ctx context.Context, u domain.User) (*domain.User, error)
}

type GenericModelsRepository interface {
	// ListModels returns active models, optionally filtered by category.
	ListModels(ctx context.Context, category string) ([]domain.GenericModel, error)
	UpsertModel(ctx context.Context, m domain.GenericModel) error
}

type ScansRepository interface {
	CreateScan(ctx context.Context, scan *domain.RoomScan) error
	GetScan(ctx context.Context, scanID string) (*domain.RoomScan, error)
	// ListScansByUser newest first, each with its placement row count.
	ListScansByUser(ctx context.Context, subject string) ([]domain.ScanSummary, error)
}

type PlacementsRepository interface {
	// SavePlacements writes one batch atomically.
	SavePlacements(ctx context.Context, batch []domain.FurniturePlacement) error
	ListPlacements(ctx context.Context, placementID string) ([]domain.FurniturePlacement, error)
}

type SearchesRepository interface {
	LogSearch(ctx context.Context, s *domain.ProductSearch) (int64, error)
	UpdateResultsCount(ctx context.Context, searchID int64, count int) error
}

type DesignsRepository interface {
	CreateDesign(ctx context.Context, d *domain.RoomDesign) error
	ListDesignsByUser(ctx context.Context, subject string) ([]domain.RoomDesign, error)
}

// Store groups the repositories the services depend on.
type Store struct {
	Users      UsersRepository
	Models     GenericModelsRepository
	Scans      ScansRepository
	Placements PlacementsRepository
	Searches   SearchesRepository
	Designs    DesignsRepository
}

func NewPostgresStore(db *sql.DB) *Store {
	return &Store{
		Users:      NewPostgresUsersRepository(db),
		Models:     NewPostgresGenericModelsRepository(db),
		Scans:      NewPostgresScansRepository(db),
		Placements: NewPostgresPlacementsRepository(db),
		Searches:   NewPostgresSearchesRepository(db),
		Designs:    NewPostgresDesignsRepository(db),
	}
}

func NewMemoryStore() *Store {
	m := NewMemoryRepo()
	return &Store{
		Users:      m,
		Models:     m,
		Scans:      m,
		Placements: m,
		Searches:   m,
		Designs:    m,
	}
}
