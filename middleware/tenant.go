package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/garagehub/garagehub-api/config"
	"github.com/garagehub/garagehub-api/models"
	"github.com/garagehub/garagehub-api/scope"
)

// Context keys for the resolved tenant. The tenant context is request-scoped
// only; it is never stored in process-wide state.
const (
	tenantKey   = "active_tenant"
	tenantIDKey = "active_tenant_id"
)

// ResolveTenant maps the inbound request to a tenant using the configured
// strategy: full domain match, subdomain prefix, or the X-Tenant-ID header.
// Resolution never aborts the request and never guesses a default: if no
// tenant matches (or the matched tenant is suspended/cancelled) the context
// stays empty and the scoping layer fails closed downstream.
func ResolveTenant(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		db := config.GetDB()

		var tenant models.Tenant
		var err error

		switch cfg.TenantResolution {
		case config.ResolveByHeader:
			id := c.GetHeader("X-Tenant-ID")
			if id == "" {
				c.Next()
				return
			}
			err = db.Where("id = ?", id).First(&tenant).Error

		case config.ResolveByDomain:
			host := stripPort(c.Request.Host)
			if host == "" {
				c.Next()
				return
			}
			err = db.Where("domain = ?", host).First(&tenant).Error

		case config.ResolveBySubdomain:
			host := stripPort(c.Request.Host)
			if host == "" || cfg.IsCentralDomain(host) {
				c.Next()
				return
			}
			sub, ok := subdomainOf(host)
			if !ok {
				c.Next()
				return
			}
			err = db.Where("subdomain = ?", sub).First(&tenant).Error
		}

		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				// Lookup failures also leave the context empty; the request
				// proceeds with no tenant rather than a wrong one.
				c.Error(err)
			}
			c.Next()
			return
		}

		// Suspended and cancelled tenants get no context either
		if !tenant.IsActive() {
			c.Next()
			return
		}

		c.Set(tenantKey, tenant)
		c.Set(tenantIDKey, tenant.ID)
		c.Next()
	}
}

// GetTenantID returns the resolved tenant id, or "" when none was resolved
func GetTenantID(c *gin.Context) string {
	id, exists := c.Get(tenantIDKey)
	if !exists {
		return ""
	}
	idStr, ok := id.(string)
	if !ok {
		return ""
	}
	return idStr
}

// GetTenant returns the resolved tenant when present
func GetTenant(c *gin.Context) (models.Tenant, bool) {
	v, exists := c.Get(tenantKey)
	if !exists {
		return models.Tenant{}, false
	}
	tenant, ok := v.(models.Tenant)
	return tenant, ok
}

// TenantScope builds the request's scoped data-access handle. With no
// resolved tenant the handle denies all tenant-scoped access.
func TenantScope(c *gin.Context) *scope.TenantDB {
	return scope.New(config.GetDB(), GetTenantID(c))
}

// SetTenantForTesting injects a tenant context directly (tests only)
func SetTenantForTesting(c *gin.Context, tenant models.Tenant) {
	c.Set(tenantKey, tenant)
	c.Set(tenantIDKey, tenant.ID)
}

// stripPort removes a :port suffix from a host header value
func stripPort(host string) string {
	if i := strings.IndexByte(host, ':'); i >= 0 {
		return host[:i]
	}
	return host
}

// subdomainOf extracts the first label of a host with at least three labels
// ("acme.garagehub.io" → "acme"). Bare domains have no subdomain.
func subdomainOf(host string) (string, bool) {
	parts := strings.Split(host, ".")
	if len(parts) < 3 || parts[0] == "" || parts[0] == "www" {
		return "", false
	}
	return parts[0], true
}
