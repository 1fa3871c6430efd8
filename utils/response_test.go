package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagehub/garagehub-api/scope"
)

func newResponseContext(t *testing.T, path string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)
	return c, w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRespondData(t *testing.T) {
	c, w := newResponseContext(t, "/api/v1/customers/1")
	RespondData(c, http.StatusOK, gin.H{"name": "Acme"})

	assert.Equal(t, http.StatusOK, w.Code)
	body := parseBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Acme", body["data"].(map[string]interface{})["name"])
}

func TestRespondList(t *testing.T) {
	c, w := newResponseContext(t, "/api/v1/customers?page=2&per_page=10")
	RespondList(c, []string{"a", "b"}, 2, 10, 35)

	body := parseBody(t, w)
	assert.Equal(t, true, body["success"])

	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, float64(2), meta["page"])
	assert.Equal(t, float64(10), meta["per_page"])
	assert.Equal(t, float64(35), meta["total"])

	links := body["links"].(map[string]interface{})
	assert.Equal(t, "/api/v1/customers?page=1&per_page=10", links["first"])
	assert.Equal(t, "/api/v1/customers?page=4&per_page=10", links["last"])
	assert.Equal(t, "/api/v1/customers?page=1&per_page=10", links["prev"])
	assert.Equal(t, "/api/v1/customers?page=3&per_page=10", links["next"])
}

func TestRespondListEdgePages(t *testing.T) {
	c, w := newResponseContext(t, "/api/v1/customers")
	RespondList(c, []string{}, 1, 25, 0)

	links := parseBody(t, w)["links"].(map[string]interface{})
	assert.Nil(t, links["prev"])
	assert.Nil(t, links["next"])
}

func TestRespondScopeError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"not found", scope.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"referential mismatch", scope.ErrReferentialMismatch, http.StatusUnprocessableEntity, "REFERENTIAL_MISMATCH"},
		{"conflict", scope.ErrConflict, http.StatusConflict, "CONFLICT"},
		{"invariant", scope.ErrInvariant, http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"unknown", assert.AnError, http.StatusInternalServerError, "DATABASE_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newResponseContext(t, "/api/v1/job-cards/1")
			RespondScopeError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := parseBody(t, w)
			assert.Equal(t, false, body["success"])
			errObj := body["error"].(map[string]interface{})
			assert.Equal(t, tt.expectedCode, errObj["code"])
		})
	}
}

func TestPagination(t *testing.T) {
	c, _ := newResponseContext(t, "/api/v1/customers?page=3&per_page=50")
	page, perPage := Pagination(c)
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, perPage)

	c, _ = newResponseContext(t, "/api/v1/customers?page=-1&per_page=9999")
	page, perPage = Pagination(c)
	assert.Equal(t, 1, page)
	assert.Equal(t, 25, perPage)

	c, _ = newResponseContext(t, "/api/v1/customers")
	page, perPage = Pagination(c)
	assert.Equal(t, 1, page)
	assert.Equal(t, 25, perPage)
}
