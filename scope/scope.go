package scope

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TenantScoped is implemented by every model that carries a tenant_id column.
type TenantScoped interface {
	GetTenantID() string
	SetTenantID(string)
}

// TenantDB wraps a gorm handle with the active tenant. Every data-access
// path for tenant-scoped entities is required to go through it, so the
// tenant predicate is structurally unavoidable: reads are filtered before
// any caller-supplied condition, creates are force-stamped, and updates can
// never move a row between tenants.
//
// A TenantDB with an empty tenant fails closed: every operation reports
// ErrNotFound. "No tenant context" means "no access", never "all access".
type TenantDB struct {
	db       *gorm.DB
	tenantID string
	preloads []string
}

// New builds a TenantDB for the given tenant. tenantID may be empty when the
// request resolved no tenant; the resulting handle denies everything.
func New(db *gorm.DB, tenantID string) *TenantDB {
	return &TenantDB{db: db, tenantID: tenantID}
}

// TenantID returns the active tenant id (empty when unresolved)
func (s *TenantDB) TenantID() string {
	return s.tenantID
}

// HasTenant reports whether a tenant context is present
func (s *TenantDB) HasTenant() bool {
	return s.tenantID != ""
}

// Preload returns a copy of the handle that preloads the named associations
// on subsequent reads.
func (s *TenantDB) Preload(associations ...string) *TenantDB {
	clone := *s
	clone.preloads = append(append([]string{}, s.preloads...), associations...)
	return &clone
}

// scoped returns a query with the tenant predicate applied first.
func (s *TenantDB) scoped() *gorm.DB {
	q := s.db.Where("tenant_id = ?", s.tenantID)
	for _, assoc := range s.preloads {
		q = q.Preload(assoc)
	}
	return q
}

// FindInTenant loads the record with the given primary key inside the active
// tenant. A row owned by another tenant is reported as ErrNotFound.
func (s *TenantDB) FindInTenant(dest TenantScoped, id uint) error {
	if !s.HasTenant() {
		return ErrNotFound
	}
	err := s.scoped().First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// FindInTenantForUpdate loads a record like FindInTenant but takes a
// row-level lock for the duration of the surrounding transaction. Used where
// a read-modify-write must be serialized: job card recalculation, invoice
// balance updates and the numbering sequencer.
func (s *TenantDB) FindInTenantForUpdate(dest TenantScoped, id uint) error {
	if !s.HasTenant() {
		return ErrNotFound
	}
	err := s.scoped().Clauses(clause.Locking{Strength: "UPDATE"}).First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// FirstInTenant loads the first record matching the caller's conditions,
// with the tenant predicate applied before them.
func (s *TenantDB) FirstInTenant(dest TenantScoped, query string, args ...interface{}) error {
	if !s.HasTenant() {
		return ErrNotFound
	}
	err := s.scoped().Where(query, args...).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// FirstInTenantForUpdate is FirstInTenant with a row-level lock, for
// read-modify-write sequences keyed by something other than the primary key
// (the sequencer's prefix+period partition).
func (s *TenantDB) FirstInTenantForUpdate(dest TenantScoped, query string, args ...interface{}) error {
	if !s.HasTenant() {
		return ErrNotFound
	}
	err := s.scoped().Clauses(clause.Locking{Strength: "UPDATE"}).Where(query, args...).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ListInTenant loads all records matching the caller's conditions inside the
// active tenant. An empty tenant context yields an empty result, not an error,
// so index endpoints degrade to "nothing visible".
func (s *TenantDB) ListInTenant(dest interface{}, conds ...interface{}) error {
	if !s.HasTenant() {
		return nil
	}
	return s.scoped().Find(dest, conds...).Error
}

// ListInTenantPage loads one page of records and the total count.
func (s *TenantDB) ListInTenantPage(dest interface{}, model interface{}, page, perPage int, total *int64) error {
	if !s.HasTenant() {
		*total = 0
		return nil
	}
	if err := s.db.Model(model).Where("tenant_id = ?", s.tenantID).Count(total).Error; err != nil {
		return err
	}
	offset := (page - 1) * perPage
	return s.scoped().Limit(perPage).Offset(offset).Order("id").Find(dest).Error
}

// CountInTenant counts records matching the caller's conditions.
func (s *TenantDB) CountInTenant(model interface{}, total *int64, conds ...interface{}) error {
	if !s.HasTenant() {
		*total = 0
		return nil
	}
	q := s.db.Model(model).Where("tenant_id = ?", s.tenantID)
	if len(conds) > 0 {
		q = q.Where(conds[0], conds[1:]...)
	}
	return q.Count(total).Error
}

// CreateInTenant inserts a record. The tenant id is force-set from the
// active context, overriding whatever the caller (or a tampered request
// payload) put on the struct.
func (s *TenantDB) CreateInTenant(rec TenantScoped) error {
	if !s.HasTenant() {
		return ErrNotFound
	}
	rec.SetTenantID(s.tenantID)
	return s.db.Create(rec).Error
}

// UpdateInTenant applies column updates to a record inside the active
// tenant. tenant_id is immutable: it is stripped from the update set and the
// WHERE clause pins the row to the active tenant. Zero rows affected means
// the row does not exist in this tenant.
func (s *TenantDB) UpdateInTenant(model TenantScoped, id uint, updates map[string]interface{}) error {
	if !s.HasTenant() {
		return ErrNotFound
	}
	delete(updates, "tenant_id")
	res := s.db.Model(model).Where("id = ? AND tenant_id = ?", id, s.tenantID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveInTenant persists a loaded record, re-stamping the tenant id so a
// mutated struct can never migrate between tenants.
func (s *TenantDB) SaveInTenant(rec TenantScoped) error {
	if !s.HasTenant() {
		return ErrNotFound
	}
	rec.SetTenantID(s.tenantID)
	return s.db.Save(rec).Error
}

// DeleteInTenant soft-deletes the record with the given primary key inside
// the active tenant.
func (s *TenantDB) DeleteInTenant(model TenantScoped, id uint) error {
	if !s.HasTenant() {
		return ErrNotFound
	}
	res := s.db.Where("tenant_id = ?", s.tenantID).Delete(model, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CheckRef validates that a referenced row exists inside the active tenant.
// Used before inserts that point at customers, vehicles, products or job
// cards, so a reference can never silently cross tenants.
func (s *TenantDB) CheckRef(model interface{}, id uint) error {
	if !s.HasTenant() {
		return ErrNotFound
	}
	var count int64
	if err := s.db.Model(model).Where("id = ? AND tenant_id = ?", id, s.tenantID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrReferentialMismatch
	}
	return nil
}

// Transaction runs fn inside a database transaction, handing it a TenantDB
// bound to the transaction with the same tenant context.
func (s *TenantDB) Transaction(fn func(tx *TenantDB) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&TenantDB{db: tx, tenantID: s.tenantID, preloads: s.preloads})
	})
}

// DB exposes the underlying handle for queries that are not tenant-scoped
// (the tenants table itself, sequence bootstrapping). Tenant-scoped entities
// must not be touched through it.
func (s *TenantDB) DB() *gorm.DB {
	return s.db
}
