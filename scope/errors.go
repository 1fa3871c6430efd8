package scope

import "errors"

// Error taxonomy for tenant-scoped data access. Controllers map these to
// HTTP responses; nothing below this layer picks status codes.
var (
	// ErrNotFound covers both genuinely missing rows and rows belonging to
	// another tenant. The two are indistinguishable on purpose: the existence
	// of other tenants' data must never be revealed.
	ErrNotFound = errors.New("record not found")

	// ErrReferentialMismatch means a cross-entity reference points at a row
	// outside the active tenant. Fatal validation error at write time.
	ErrReferentialMismatch = errors.New("referenced record belongs to a different tenant")

	// ErrConflict is a transient concurrency failure (lock contention, stale
	// version). Callers retry a bounded number of times before surfacing it.
	ErrConflict = errors.New("concurrent modification conflict")

	// ErrInvariant means a derived financial value failed its consistency
	// check. Treated as a defect: logged loudly and the transaction aborted.
	ErrInvariant = errors.New("financial invariant violated")
)

// maxRetries bounds internal retries on ErrConflict.
const maxRetries = 3

// WithRetry runs fn, retrying up to the internal bound while it fails with
// ErrConflict. Any other error is returned immediately.
func WithRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err = fn()
		if !errors.Is(err, ErrConflict) {
			return err
		}
	}
	return err
}
