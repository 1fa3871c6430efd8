package scope

import (
	"errors"

	"gorm.io/gorm"

	"github.com/garagehub/garagehub-api/models"
)

// UserLookup is the one deliberately dual-mode data-access path. During
// login no tenant context exists yet, so the account has to be findable
// without tenant filtering; once a tenant is resolved, user reads are scoped
// like every other entity. Keeping the unscoped path on its own type makes
// the special case visible instead of hiding it in a conditional.
type UserLookup struct {
	db *gorm.DB
}

// NewUserLookup builds a lookup over the given handle
func NewUserLookup(db *gorm.DB) *UserLookup {
	return &UserLookup{db: db}
}

// FindForLogin returns every account with the given email across all
// tenants. The same address may legitimately exist once per tenant; the
// caller narrows the match once the tenant is known.
func (l *UserLookup) FindForLogin(email string) ([]models.User, error) {
	var users []models.User
	if err := l.db.Where("email = ?", email).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindByAuthID resolves the staff account for an authenticated subject
// inside the given tenant. Empty tenant fails closed.
func (l *UserLookup) FindByAuthID(tenantID, authID string) (*models.User, error) {
	if tenantID == "" {
		return nil, ErrNotFound
	}
	var user models.User
	err := l.db.Where("tenant_id = ? AND auth_id = ?", tenantID, authID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindInTenant loads a user by primary key inside the given tenant
func (l *UserLookup) FindInTenant(tenantID string, id uint) (*models.User, error) {
	if tenantID == "" {
		return nil, ErrNotFound
	}
	var user models.User
	err := l.db.Where("tenant_id = ?", tenantID).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
