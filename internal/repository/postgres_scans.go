package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/saswath-06/roommait/internal/domain"
)

type PostgresScansRepository struct {
	db *sql.DB
}

func NewPostgresScansRepository(db *sql.DB) *PostgresScansRepository {
	return &PostgresScansRepository{db: db}
}

var _ ScansRepository = (*PostgresScansRepository)(nil)

// CreateScan inserts the scan and sets CreatedAt from the database clock.
// An existing scan_id yields ErrAlreadyExists.
func (r *PostgresScansRepository) CreateScan(ctx context.Context, scan *domain.RoomScan) error {
	dims, err := toJSON(scan.Dimensions)
	if err != nil {
		return err
	}
	surfaces, err := toJSON(scan.DetectedSurfaces)
	if err != nil {
		return err
	}
	meta, err := toJSON(scan.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO room_scans (scan_id, user_id, room_dimensions, detected_surfaces, scan_quality, processing_metadata)
		VALUES ($1, $2, $3::jsonb, $4::jsonb, $5, $6::jsonb)
		ON CONFLICT (scan_id) DO NOTHING
		RETURNING created_at
	`
	err = r.db.QueryRowContext(ctx, query,
		scan.ScanID, nullableString(scan.UserID), dims, surfaces, scan.ScanQuality, meta,
	).Scan(&scan.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to create scan %s: %w", scan.ScanID, ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("failed to create scan %s: %w", scan.ScanID, err)
	}
	return nil
}

func (r *PostgresScansRepository) GetScan(ctx context.Context, scanID string) (*domain.RoomScan, error) {
	query := `
		SELECT scan_id, user_id, room_dimensions, detected_surfaces, scan_quality,
		       COALESCE(processing_metadata, '{}'::jsonb), created_at
		FROM room_scans
		WHERE scan_id = $1
	`
	var (
		scan                 domain.RoomScan
		userID               sql.NullString
		dims, surfaces, meta []byte
	)
	err := r.db.QueryRowContext(ctx, query, scanID).Scan(
		&scan.ScanID, &userID, &dims, &surfaces, &scan.ScanQuality, &meta, &scan.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("scan %s: %w", scanID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get scan: %w", err)
	}
	if userID.Valid {
		scan.UserID = &userID.String
	}
	if err := fromJSON(dims, &scan.Dimensions); err != nil {
		return nil, err
	}
	if err := fromJSON(surfaces, &scan.DetectedSurfaces); err != nil {
		return nil, err
	}
	if scan.DetectedSurfaces == nil {
		scan.DetectedSurfaces = []domain.DetectedSurface{}
	}
	if err := fromJSON(meta, &scan.Metadata); err != nil {
		return nil, err
	}
	return &scan, nil
}

func (r *PostgresScansRepository) ListScansByUser(ctx context.Context, subject string) ([]domain.ScanSummary, error) {
	query := `
		SELECT s.scan_id, s.room_dimensions, s.scan_quality,
		       COALESCE(jsonb_array_length(s.detected_surfaces), 0),
		       (SELECT COUNT(*) FROM furniture_placements p WHERE p.scan_id = s.scan_id),
		       s.created_at
		FROM room_scans s
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	out := []domain.ScanSummary{}
	for rows.Next() {
		var (
			s    domain.ScanSummary
			dims []byte
		)
		if err := rows.Scan(&s.ScanID, &dims, &s.ScanQuality, &s.SurfacesDetected, &s.PlacementCount, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scan summary: %w", err)
		}
		if err := fromJSON(dims, &s.Dimensions); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scans: %w", err)
	}
	return out, nil
}

func nullableString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
