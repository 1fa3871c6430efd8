package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagehub/garagehub-api/models"
)

func TestGetMe(t *testing.T) {
	db := setupControllerTestDB(t)
	tenant := createTestTenant(t, db, "Test Garage", "test.example.com")
	other := createTestTenant(t, db, "Other Garage", "other.example.com")

	// The same subject exists in two tenants with different roles
	require.NoError(t, db.Create(&models.User{
		TenantID: tenant.ID, AuthID: "auth0|staff123",
		Name: "Alex Advisor", Email: "alex@test.example.com", Role: "advisor",
	}).Error)
	require.NoError(t, db.Create(&models.User{
		TenantID: other.ID, AuthID: "auth0|staff123",
		Name: "Alex Elsewhere", Email: "alex@other.example.com", Role: "manager",
	}).Error)

	router := setupTestRouter()
	router.GET("/me", mockAuthMiddleware("auth0|staff123", "alex@test.example.com", "Alex"), tenantMiddleware(tenant), GetMe)

	w := performJSON(t, router, http.MethodGet, "/me", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := responseData(t, w)
	assert.Equal(t, "Alex Advisor", data["name"])
	assert.Equal(t, "advisor", data["role"])
	assert.Equal(t, tenant.ID, data["tenant_id"])
}

func TestGetMeUnknownSubject(t *testing.T) {
	db := setupControllerTestDB(t)
	tenant := createTestTenant(t, db, "Test Garage", "test.example.com")

	router := setupTestRouter()
	router.GET("/me", mockAuthMiddleware("auth0|nobody", "", ""), tenantMiddleware(tenant), GetMe)

	w := performJSON(t, router, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", responseErrorCode(t, w))
}

func TestGetMeWithoutAuth(t *testing.T) {
	db := setupControllerTestDB(t)
	tenant := createTestTenant(t, db, "Test Garage", "test.example.com")

	router := setupTestRouter()
	router.GET("/me", tenantMiddleware(tenant), GetMe)

	w := performJSON(t, router, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", responseErrorCode(t, w))
}

func TestCreateMe(t *testing.T) {
	db := setupControllerTestDB(t)
	tenant := createTestTenant(t, db, "Test Garage", "test.example.com")

	router := setupTestRouter()
	router.POST("/me", mockAuthMiddleware("auth0|new123", "new@test.example.com", "New Staffer"), tenantMiddleware(tenant), CreateMe)

	w := performJSON(t, router, http.MethodPost, "/me", map[string]interface{}{
		"name":  "New Staffer",
		"email": "new@test.example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	data := responseData(t, w)
	assert.Equal(t, "auth0|new123", data["auth_id"])
	assert.Equal(t, "advisor", data["role"], "role defaults to advisor")
	assert.Equal(t, tenant.ID, data["tenant_id"])

	// Creating a second profile for the same subject conflicts
	w = performJSON(t, router, http.MethodPost, "/me", map[string]interface{}{
		"name":  "New Staffer",
		"email": "new@test.example.com",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "PROFILE_EXISTS", responseErrorCode(t, w))
}
