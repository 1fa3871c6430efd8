package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagehub/garagehub-api/models"
	"github.com/garagehub/garagehub-api/services"
)

// performMultipart posts a multipart form with the given fields and one file
func performMultipart(t *testing.T, router *gin.Engine, path string, fields map[string]string, filename string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("file content"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAttachmentEndpoints(t *testing.T) {
	db := setupControllerTestDB(t)
	tenant, customer, vehicle := seedJobCardFixture(t, db)

	job := models.JobCard{
		TenantID: tenant.ID, JobNumber: "JOB-202506-0001",
		CustomerID: customer.ID, VehicleID: vehicle.ID,
	}
	require.NoError(t, db.Create(&job).Error)

	mock := services.NewMockS3Service()
	original := services.GetS3Service()
	mock.SetAsMockForTesting()
	t.Cleanup(func() { services.SetS3Service(original) })

	router := setupTestRouter()
	router.POST("/attachments", tenantMiddleware(tenant), CreateAttachment)
	router.GET("/attachments/:id", tenantMiddleware(tenant), GetAttachment)
	router.DELETE("/attachments/:id", tenantMiddleware(tenant), DeleteAttachment)

	w := performMultipart(t, router, "/attachments", map[string]string{
		"owner_type": "job_card",
		"owner_id":   "1",
	}, "before-repair.jpg")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := responseData(t, w)
	assert.Equal(t, "job_card", data["owner_type"])
	assert.Equal(t, "before-repair.jpg", data["file_name"])

	w = performJSON(t, router, http.MethodGet, "/attachments/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = responseData(t, w)
	assert.NotEmpty(t, data["url"])

	w = performJSON(t, router, http.MethodDelete, "/attachments/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(t, router, http.MethodGet, "/attachments/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAttachmentValidation(t *testing.T) {
	db := setupControllerTestDB(t)
	tenant, customer, vehicle := seedJobCardFixture(t, db)

	job := models.JobCard{
		TenantID: tenant.ID, JobNumber: "JOB-202506-0001",
		CustomerID: customer.ID, VehicleID: vehicle.ID,
	}
	require.NoError(t, db.Create(&job).Error)

	mock := services.NewMockS3Service()
	original := services.GetS3Service()
	mock.SetAsMockForTesting()
	t.Cleanup(func() { services.SetS3Service(original) })

	router := setupTestRouter()
	router.POST("/attachments", tenantMiddleware(tenant), CreateAttachment)

	tests := []struct {
		name           string
		fields         map[string]string
		filename       string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Fail with missing owner type",
			fields:         map[string]string{"owner_id": "1"},
			filename:       "photo.png",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Fail with disallowed owner type",
			fields:         map[string]string{"owner_type": "payment", "owner_id": "1"},
			filename:       "photo.png",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "INVALID_OWNER_TYPE",
		},
		{
			name:           "Fail with missing file",
			fields:         map[string]string{"owner_type": "job_card", "owner_id": "1"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Fail with rejected file format",
			fields:         map[string]string{"owner_type": "job_card", "owner_id": "1"},
			filename:       "script.sh",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "INVALID_FILE_FORMAT",
		},
		{
			name:           "Fail with unknown owner",
			fields:         map[string]string{"owner_type": "job_card", "owner_id": "9999"},
			filename:       "photo.png",
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "REFERENTIAL_MISMATCH",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performMultipart(t, router, "/attachments", tt.fields, tt.filename)
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedError, responseErrorCode(t, w))
		})
	}
}
