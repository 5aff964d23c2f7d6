package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/saswath-06/roommait/internal/domain"
)

type PostgresDesignsRepository struct {
	db *sql.DB
}

func NewPostgresDesignsRepository(db *sql.DB) *PostgresDesignsRepository {
	return &PostgresDesignsRepository{db: db}
}

var _ DesignsRepository = (*PostgresDesignsRepository)(nil)

func (r *PostgresDesignsRepository) CreateDesign(ctx context.Context, d *domain.RoomDesign) error {
	query := `
		INSERT INTO room_designs (design_id, user_id, scan_id, placement_id, design_name, total_cost)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		d.DesignID, d.UserID, d.ScanID, d.PlacementID, d.DesignName, d.TotalCost.StringFixed(2),
	).Scan(&d.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create design: %w", err)
	}
	return nil
}

func (r *PostgresDesignsRepository) ListDesignsByUser(ctx context.Context, subject string) ([]domain.RoomDesign, error) {
	query := `
		SELECT design_id::text, user_id, scan_id, placement_id, design_name, total_cost, created_at
		FROM room_designs
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to list designs: %w", err)
	}
	defer rows.Close()

	out := []domain.RoomDesign{}
	for rows.Next() {
		var d domain.RoomDesign
		if err := rows.Scan(&d.DesignID, &d.UserID, &d.ScanID, &d.PlacementID, &d.DesignName, &d.TotalCost, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan design: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate designs: %w", err)
	}
	return out, nil
}
