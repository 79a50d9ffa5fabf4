package reports

import "errors"

// ErrNotFound is the normal outcome for an unknown report ID.
var ErrNotFound = errors.New("report not found")

// ErrStoreUnavailable is returned by the unavailable repo sentinel when the
// document store could not be initialized.
var ErrStoreUnavailable = errors.New("report store unavailable")
