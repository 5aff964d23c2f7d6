package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/saswath-06/roommait/internal/domain"
)

// MemoryRepo implements every repository in process memory when the DB is
// disabled. Contents are lost on restart.
type MemoryRepo struct {
	mu sync.RWMutex

	users      map[string]domain.User // subject -> user
	models     map[string]domain.GenericModel
	scans      map[string]domain.RoomScan
	placements []domain.FurniturePlacement
	searches   map[int64]domain.ProductSearch
	designs    []domain.RoomDesign

	nextPlacementID int64
	nextSearchID    int64
	now             func() time.Time
}

var (
	_ UsersRepository         = (*MemoryRepo)(nil)
	_ GenericModelsRepository = (*MemoryRepo)(nil)
	_ ScansRepository         = (*MemoryRepo)(nil)
	_ PlacementsRepository    = (*MemoryRepo)(nil)
	_ SearchesRepository      = (*MemoryRepo)(nil)
	_ DesignsRepository       = (*MemoryRepo)(nil)
)

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users:    map[string]domain.User{},
		models:   map[string]domain.GenericModel{},
		scans:    map[string]domain.RoomScan{},
		searches: map[int64]domain.ProductSearch{},
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// --- users ---

func (r *MemoryRepo) GetBySubject(_ context.Context, subject string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[subject]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", subject, ErrNotFound)
	}
	return &u, nil
}

func (r *MemoryRepo) UpsertBySubject(_ context.Context, u domain.User) (*domain.User, error) {
	if u.Subject == "" {
		return nil, fmt.Errorf("user subject is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[u.Subject]
	if !ok {
		existing = domain.User{UserID: uuid.NewString(), Subject: u.Subject, CreatedAt: r.now()}
	}
	if u.Email != "" {
		existing.Email = u.Email
	}
	if u.Name != "" {
		existing.Name = u.Name
	}
	r.users[u.Subject] = existing
	return &existing, nil
}

// --- generic models ---

func (r *MemoryRepo) ListModels(_ context.Context, category string) ([]domain.GenericModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.GenericModel{}
	for _, m := range r.models {
		if !m.IsActive || (category != "" && m.Category != category) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].ModelID < out[j].ModelID
	})
	return out, nil
}

func (r *MemoryRepo) UpsertModel(_ context.Context, m domain.GenericModel) error {
	if strings.TrimSpace(m.ModelID) == "" {
		return fmt.Errorf("model_id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[m.ModelID] = m
	return nil
}

// --- scans ---

func (r *MemoryRepo) CreateScan(_ context.Context, scan *domain.RoomScan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.scans[scan.ScanID]; exists {
		return fmt.Errorf("failed to create scan %s: %w", scan.ScanID, ErrAlreadyExists)
	}
	scan.CreatedAt = r.now()
	r.scans[scan.ScanID] = *scan
	return nil
}

func (r *MemoryRepo) GetScan(_ context.Context, scanID string) (*domain.RoomScan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.scans[scanID]
	if !ok {
		return nil, fmt.Errorf("scan %s: %w", scanID, ErrNotFound)
	}
	return &s, nil
}

func (r *MemoryRepo) ListScansByUser(_ context.Context, subject string) ([]domain.ScanSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := map[string]int{}
	for _, p := range r.placements {
		counts[p.ScanID]++
	}
	out := []domain.ScanSummary{}
	for _, s := range r.scans {
		if s.UserID == nil || *s.UserID != subject {
			continue
		}
		out = append(out, domain.ScanSummary{
			ScanID:           s.ScanID,
			Dimensions:       s.Dimensions,
			ScanQuality:      s.ScanQuality,
			SurfacesDetected: len(s.DetectedSurfaces),
			PlacementCount:   counts[s.ScanID],
			CreatedAt:        s.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ScanID < out[j].ScanID
	})
	return out, nil
}

// --- placements ---

func (r *MemoryRepo) SavePlacements(_ context.Context, batch []domain.FurniturePlacement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range batch {
		if _, ok := r.scans[batch[i].ScanID]; !ok {
			return fmt.Errorf("failed to insert placement: scan %s: %w", batch[i].ScanID, ErrNotFound)
		}
	}
	now := r.now()
	for i := range batch {
		r.nextPlacementID++
		batch[i].ID = r.nextPlacementID
		batch[i].CreatedAt = now
		r.placements = append(r.placements, batch[i])
	}
	return nil
}

func (r *MemoryRepo) ListPlacements(_ context.Context, placementID string) ([]domain.FurniturePlacement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.FurniturePlacement{}
	for _, p := range r.placements {
		if p.PlacementID == placementID {
			out = append(out, p)
		}
	}
	return out, nil
}

// --- searches ---

func (r *MemoryRepo) LogSearch(_ context.Context, s *domain.ProductSearch) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextSearchID++
	s.SearchID = r.nextSearchID
	s.CreatedAt = r.now()
	r.searches[s.SearchID] = *s
	return s.SearchID, nil
}

func (r *MemoryRepo) UpdateResultsCount(_ context.Context, searchID int64, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.searches[searchID]
	if !ok {
		return fmt.Errorf("search %d: %w", searchID, ErrNotFound)
	}
	s.ResultsCount = count
	r.searches[searchID] = s
	return nil
}

// Search returns a logged search; used by tests and diagnostics.
func (r *MemoryRepo) Search(searchID int64) (domain.ProductSearch, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.searches[searchID]
	return s, ok
}

// --- designs ---

func (r *MemoryRepo) CreateDesign(_ context.Context, d *domain.RoomDesign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d.CreatedAt = r.now()
	r.designs = append(r.designs, *d)
	return nil
}

func (r *MemoryRepo) ListDesignsByUser(_ context.Context, subject string) ([]domain.RoomDesign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.RoomDesign{}
	for i := len(r.designs) - 1; i >= 0; i-- {
		if r.designs[i].UserID == subject {
			out = append(out, r.designs[i])
		}
	}
	return out, nil
}
