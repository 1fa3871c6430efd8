package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestSetAndGetDB(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	SetDB(db)
	assert.Same(t, db, GetDB())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid header strategy",
			config:  Config{DatabaseURL: "postgres://x", TenantResolution: ResolveByHeader},
			wantErr: false,
		},
		{
			name:    "valid subdomain strategy",
			config:  Config{DatabaseURL: "postgres://x", TenantResolution: ResolveBySubdomain},
			wantErr: false,
		},
		{
			name:    "missing database url",
			config:  Config{TenantResolution: ResolveByDomain},
			wantErr: true,
		},
		{
			name:    "unknown resolution strategy",
			config:  Config{DatabaseURL: "postgres://x", TenantResolution: "guess"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsCentralDomain(t *testing.T) {
	c := Config{CentralDomains: []string{"garagehub.io", "www.garagehub.io"}}

	assert.True(t, c.IsCentralDomain("garagehub.io"))
	assert.True(t, c.IsCentralDomain("GarageHub.io"), "match is case-insensitive")
	assert.False(t, c.IsCentralDomain("acme.garagehub.io"))
	assert.False(t, c.IsCentralDomain(""))
}
