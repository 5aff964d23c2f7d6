package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/saswath-06/roommait/internal/domain"
)

type PostgresGenericModelsRepository struct {
	db *sql.DB
}

func NewPostgresGenericModelsRepository(db *sql.DB) *PostgresGenericModelsRepository {
	return &PostgresGenericModelsRepository{db: db}
}

var _ GenericModelsRepository = (*PostgresGenericModelsRepository)(nil)

func (r *PostgresGenericModelsRepository) ListModels(ctx context.Context, category string) ([]domain.GenericModel, error) {
	query := `
		SELECT
			model_id, category, COALESCE(subcategory, ''), display_name,
			COALESCE(description, ''), model_url, COALESCE(thumbnail_url, ''),
			COALESCE(width, 0), COALESCE(depth, 0), COALESCE(height, 0),
			COALESCE(polygon_count, 0), COALESCE(file_size_mb, 0), is_active
		FROM generic_models
		WHERE is_active = true AND ($1 = '' OR category = $1)
		ORDER BY category, model_id
	`
	rows, err := r.db.QueryContext(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list generic models: %w", err)
	}
	defer rows.Close()

	out := []domain.GenericModel{}
	for rows.Next() {
		var m domain.GenericModel
		if err := rows.Scan(
			&m.ModelID, &m.Category, &m.Subcategory, &m.DisplayName,
			&m.Description, &m.ModelURL, &m.ThumbnailURL,
			&m.Width, &m.Depth, &m.Height,
			&m.PolygonCount, &m.FileSizeMB, &m.IsActive,
		); err != nil {
			return nil, fmt.Errorf("failed to scan generic model: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate generic models: %w", err)
	}
	return out, nil
}

func (r *PostgresGenericModelsRepository) UpsertModel(ctx context.Context, m domain.GenericModel) error {
	query := `
		INSERT INTO generic_models (
			model_id, category, subcategory, display_name, description,
			model_url, thumbnail_url, width, depth, height,
			polygon_count, file_size_mb, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (model_id) DO UPDATE SET
			category      = EXCLUDED.category,
			subcategory   = EXCLUDED.subcategory,
			display_name  = EXCLUDED.display_name,
			description   = EXCLUDED.description,
			model_url     = EXCLUDED.model_url,
			thumbnail_url = EXCLUDED.thumbnail_url,
			width         = EXCLUDED.width,
			depth         = EXCLUDED.depth,
			height        = EXCLUDED.height,
			polygon_count = EXCLUDED.polygon_count,
			file_size_mb  = EXCLUDED.file_size_mb,
			is_active     = EXCLUDED.is_active
	`
	_, err := r.db.ExecContext(ctx, query,
		m.ModelID, m.Category, m.Subcategory, m.DisplayName, m.Description,
		m.ModelURL, m.ThumbnailURL, m.Width, m.Depth, m.Height,
		m.PolygonCount, m.FileSizeMB, m.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert generic model %s: %w", m.ModelID, err)
	}
	return nil
}
