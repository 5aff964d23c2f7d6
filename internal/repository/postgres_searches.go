package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/saswath-06/roommait/internal/domain"
)

type PostgresSearchesRepository struct {
	db *sql.DB
}

func NewPostgresSearchesRepository(db *sql.DB) *PostgresSearchesRepository {
	return &PostgresSearchesRepository{db: db}
}

var _ SearchesRepository = (*PostgresSearchesRepository)(nil)

func (r *PostgresSearchesRepository) LogSearch(ctx context.Context, s *domain.ProductSearch) (int64, error) {
	roomCtx, err := toJSON(s.RoomContext)
	if err != nil {
		return 0, err
	}
	query := `
		INSERT INTO product_searches (user_id, search_query, category, room_context, existing_items, results_count)
		VALUES ($1, $2, $3, $4::jsonb, $5, $6)
		RETURNING search_id, created_at
	`
	err = r.db.QueryRowContext(ctx, query,
		nullableString(s.UserID), s.SearchQuery, s.Category, roomCtx,
		pq.StringArray(s.ExistingItems), s.ResultsCount,
	).Scan(&s.SearchID, &s.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to log product search: %w", err)
	}
	return s.SearchID, nil
}

func (r *PostgresSearchesRepository) UpdateResultsCount(ctx context.Context, searchID int64, count int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE product_searches SET results_count = $2 WHERE search_id = $1`,
		searchID, count,
	)
	if err != nil {
		return fmt.Errorf("failed to update results count: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("search %d: %w", searchID, ErrNotFound)
	}
	return nil
}
