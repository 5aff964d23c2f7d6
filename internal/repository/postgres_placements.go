package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/saswath-06/roommait/internal/domain"
)

type PostgresPlacementsRepository struct {
	db *sql.DB
}

func NewPostgresPlacementsRepository(db *sql.DB) *PostgresPlacementsRepository {
	return &PostgresPlacementsRepository{db: db}
}

var _ PlacementsRepository = (*PostgresPlacementsRepository)(nil)

// SavePlacements inserts every row of the batch in one transaction and fills
// ID and CreatedAt.
func (r *PostgresPlacementsRepository) SavePlacements(ctx context.Context, batch []domain.FurniturePlacement) error {
	if len(batch) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO furniture_placements (
			placement_id, scan_id, user_id, model_id,
			position, rotation, scale, surface_id, estimated_cost, design_name
		) VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb, $7::jsonb, $8, $9, $10)
		RETURNING id, created_at
	`
	for i := range batch {
		p := &batch[i]
		pos, err := toJSON(p.Position)
		if err != nil {
			return err
		}
		rot, err := toJSON(p.Rotation)
		if err != nil {
			return err
		}
		scale, err := toJSON(p.Scale)
		if err != nil {
			return err
		}
		err = tx.QueryRowContext(ctx, query,
			p.PlacementID, p.ScanID, nullableString(p.UserID), p.ModelID,
			pos, rot, scale, nullableString(p.SurfaceID), p.EstimatedCost.StringFixed(2), p.DesignName,
		).Scan(&p.ID, &p.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert placement %s/%s: %w", p.PlacementID, p.ModelID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit placements: %w", err)
	}
	return nil
}

func (r *PostgresPlacementsRepository) ListPlacements(ctx context.Context, placementID string) ([]domain.FurniturePlacement, error) {
	query := `
		SELECT id, placement_id, scan_id, user_id, model_id,
		       position, rotation, scale, surface_id, estimated_cost,
		       COALESCE(design_name, ''), created_at
		FROM furniture_placements
		WHERE placement_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, placementID)
	if err != nil {
		return nil, fmt.Errorf("failed to list placements: %w", err)
	}
	defer rows.Close()

	out := []domain.FurniturePlacement{}
	for rows.Next() {
		var (
			p                   domain.FurniturePlacement
			userID, surfaceID   sql.NullString
			pos, rot, scaleJSON []byte
		)
		if err := rows.Scan(
			&p.ID, &p.PlacementID, &p.ScanID, &userID, &p.ModelID,
			&pos, &rot, &scaleJSON, &surfaceID, &p.EstimatedCost,
			&p.DesignName, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan placement: %w", err)
		}
		if userID.Valid {
			p.UserID = &userID.String
		}
		if surfaceID.Valid {
			p.SurfaceID = &surfaceID.String
		}
		if err := fromJSON(pos, &p.Position); err != nil {
			return nil, err
		}
		if err := fromJSON(rot, &p.Rotation); err != nil {
			return nil, err
		}
		if err := fromJSON(scaleJSON, &p.Scale); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate placements: %w", err)
	}
	return out, nil
}
