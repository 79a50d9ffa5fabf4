package reports

import "context"

// Repo defines persistence operations for report records. Records live under
// the owning user and are create-only; there is no update or delete.
type Repo interface {
	// Create appends a record under the user and returns the store-assigned
	// report ID.
	Create(ctx context.Context, userID string, r Report) (string, error)

	// List returns up to limit records in strict uploaded_at descending
	// order.
	List(ctx context.Context, userID string, limit int) ([]Report, error)

	// Get fetches a single record; ErrNotFound when absent.
	Get(ctx context.Context, userID, reportID string) (Report, error)
}

// UnavailableRepo is the explicit sentinel used when the document store could
// not be initialized: every operation reports ErrStoreUnavailable.
type UnavailableRepo struct{}

func (UnavailableRepo) Create(ctx context.Context, userID string, r Report) (string, error) {
	return "", ErrStoreUnavailable
}

func (UnavailableRepo) List(ctx context.Context, userID string, limit int) ([]Report, error) {
	return nil, ErrStoreUnavailable
}

func (UnavailableRepo) Get(ctx context.Context, userID, reportID string) (Report, error) {
	return Report{}, ErrStoreUnavailable
}
