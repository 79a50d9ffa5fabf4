package reports

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory Repo used by tests and credential-less dev runs.
type MemoryRepo struct {
	mu     sync.Mutex
	byUser map[string][]Report
	byID   map[string]Report
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byUser: make(map[string][]Report),
		byID:   make(map[string]Report),
	}
}

func (m *MemoryRepo) Create(ctx context.Context, userID string, r Report) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r.ReportID = uuid.NewString()
	r.UserID = userID
	m.byUser[userID] = append(m.byUser[userID], r)
	m.byID[userID+"/"+r.ReportID] = r
	return r.ReportID, nil
}

func (m *MemoryRepo) List(ctx context.Context, userID string, limit int) ([]Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := m.byUser[userID]
	out := make([]Report, len(stored))
	copy(out, stored)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UploadedAt > out[j].UploadedAt
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryRepo) Get(ctx context.Context, userID, reportID string) (Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.byID[userID+"/"+reportID]
	if !ok {
		return Report{}, ErrNotFound
	}
	return r, nil
}
