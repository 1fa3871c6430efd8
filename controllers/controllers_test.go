package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/garagehub/garagehub-api/config"
	"github.com/garagehub/garagehub-api/middleware"
	"github.com/garagehub/garagehub-api/models"
	"github.com/garagehub/garagehub-api/services"
)

func setupControllerTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Tenant{}, &models.User{}, &models.Customer{}, &models.Vehicle{},
		&models.Product{}, &models.JobCard{}, &models.JobCardItem{},
		&models.Invoice{}, &models.Payment{}, &models.Attachment{},
		&models.DocumentSequence{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	services.SetSequencer(services.NewSequencer(4))
	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// mockAuthMiddleware stores the subject and claims the way the real JWT
// middleware does.
func mockAuthMiddleware(authID, email, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("auth_id", authID)
		c.Set("validated_claims", &validator.ValidatedClaims{
			CustomClaims: &middleware.CustomClaims{Email: email, Name: name},
			RegisteredClaims: validator.RegisteredClaims{
				Subject: authID,
			},
		})
		c.Next()
	}
}

// tenantMiddleware pins the request to one tenant, standing in for the real
// resolution middleware.
func tenantMiddleware(tenant models.Tenant) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetTenantForTesting(c, tenant)
		c.Next()
	}
}

func createTestTenant(t *testing.T, db *gorm.DB, name, domain string) models.Tenant {
	t.Helper()
	tenant := models.Tenant{Name: name, Domain: domain}
	require.NoError(t, db.Create(&tenant).Error)
	return tenant
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func responseData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	response := parseResponse(t, w)
	require.Equal(t, true, response["success"], "expected success envelope, got %s", w.Body.String())
	data, ok := response["data"].(map[string]interface{})
	require.True(t, ok, "expected object data, got %s", w.Body.String())
	return data
}

func responseErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	response := parseResponse(t, w)
	require.Equal(t, false, response["success"], "expected error envelope, got %s", w.Body.String())
	errObj, ok := response["error"].(map[string]interface{})
	require.True(t, ok)
	code, _ := errObj["code"].(string)
	return code
}
