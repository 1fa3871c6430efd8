package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/garagehub/garagehub-api/models"
	"github.com/garagehub/garagehub-api/scope"
)

// Document number prefixes
const (
	PrefixJobCard = "JOB"
	PrefixInvoice = "INV"
)

// Sequencer issues human-readable sequential document numbers such as
// JOB-202506-0001, monotonically increasing within one (tenant, prefix,
// period) partition. The read-increment-write sequence is serialized two
// ways: a per-partition mutex covers concurrent goroutines in this process,
// and the row lock on document_sequences covers concurrent processes.
// Numbering restarts at 1 when the period rolls over.
type Sequencer struct {
	padWidth int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

var sequencerInstance *Sequencer

// InitSequencer initializes the sequencer with the configured padding width
func InitSequencer(padWidth int) *Sequencer {
	sequencerInstance = NewSequencer(padWidth)
	return sequencerInstance
}

// GetSequencer returns the initialized sequencer instance
func GetSequencer() *Sequencer {
	return sequencerInstance
}

// SetSequencer sets the sequencer instance (primarily for testing)
func SetSequencer(s *Sequencer) {
	sequencerInstance = s
}

// NewSequencer creates a sequencer with the given zero-padding width
func NewSequencer(padWidth int) *Sequencer {
	if padWidth < 1 {
		padWidth = 4
	}
	return &Sequencer{
		padWidth: padWidth,
		locks:    make(map[string]*sync.Mutex),
	}
}

// Period formats the year+month partition key for a point in time
func Period(at time.Time) string {
	return at.Format("200601")
}

// Next issues the next number for the tenant's prefix+period partition.
// No two callers are ever handed the same value.
func (q *Sequencer) Next(s *scope.TenantDB, prefix string, at time.Time) (string, error) {
	if !s.HasTenant() {
		return "", scope.ErrNotFound
	}

	period := Period(at)
	lock := q.partitionLock(s.TenantID(), prefix, period)
	lock.Lock()
	defer lock.Unlock()

	var number int
	err := scope.WithRetry(func() error {
		return s.Transaction(func(tx *scope.TenantDB) error {
			var seq models.DocumentSequence
			err := tx.FirstInTenantForUpdate(&seq, "prefix = ? AND period = ?", prefix, period)
			switch {
			case err == nil:
			case errors.Is(err, scope.ErrNotFound):
				// First number of a fresh partition. A concurrent first
				// writer loses on the unique index and retries.
				seq = models.DocumentSequence{Prefix: prefix, Period: period, LastNumber: 0}
				if createErr := tx.CreateInTenant(&seq); createErr != nil {
					if isUniqueViolation(createErr) {
						return scope.ErrConflict
					}
					return createErr
				}
			default:
				return err
			}

			seq.LastNumber++
			number = seq.LastNumber
			return tx.SaveInTenant(&seq)
		})
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%s-%0*d", prefix, period, q.padWidth, number), nil
}

// partitionLock returns the mutex for one tenant+prefix+period partition
func (q *Sequencer) partitionLock(tenantID, prefix, period string) *sync.Mutex {
	key := tenantID + "|" + prefix + "|" + period
	q.mu.Lock()
	defer q.mu.Unlock()
	if lock, ok := q.locks[key]; ok {
		return lock
	}
	lock := &sync.Mutex{}
	q.locks[key] = lock
	return lock
}

// isUniqueViolation detects duplicate-key errors from both PostgreSQL and
// SQLite without depending on driver error types.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
