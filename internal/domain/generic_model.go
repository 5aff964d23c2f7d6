package domain

// GenericModel a placeable 3D model (generic_models table).
// Typical dimensions are in inches.
type GenericModel struct {
	ModelID      string  `db:"model_id" json:"model_id"`
	Category     string  `db:"category" json:"category"`
	Subcategory  string  `db:"subcategory" json:"subcategory"`
	DisplayName  string  `db:"display_name" json:"display_name"`
	Description  string  `db:"description" json:"description"`
	ModelURL     string  `db:"model_url" json:"model_url"`
	ThumbnailURL string  `db:"thumbnail_url" json:"thumbnail_url"`
	Width        float64 `db:"width" json:"width"`
	Depth        float64 `db:"depth" json:"depth"`
	Height       float64 `db:"height" json:"height"`
	PolygonCount int     `db:"polygon_count" json:"polygon_count"`
	FileSizeMB   float64 `db:"file_size_mb" json:"file_size_mb"`
	IsActive     bool    `db:"is_active" json:"is_active"`
}
