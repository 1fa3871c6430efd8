package utils

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeFileHeader builds a multipart.FileHeader with the given name and size
func makeFileHeader(t *testing.T, filename string, size int) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), size))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/v1/attachments", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["file"][0]
}

func TestValidateAttachmentFile(t *testing.T) {
	tests := []struct {
		name         string
		filename     string
		size         int
		expectedCode string
	}{
		{"valid png", "brake-disc.png", 100, ""},
		{"valid jpg", "engine-bay.jpg", 100, ""},
		{"valid jpeg", "dashboard.jpeg", 100, ""},
		{"valid pdf", "inspection-report.pdf", 100, ""},
		{"uppercase extension", "PHOTO.PNG", 100, ""},
		{"rejected format", "malware.exe", 100, "INVALID_FILE_FORMAT"},
		{"no extension", "README", 100, "INVALID_FILE_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fh := makeFileHeader(t, tt.filename, tt.size)
			err := ValidateAttachmentFile(fh)

			if tt.expectedCode == "" {
				assert.NoError(t, err)
				return
			}

			var uploadErr *FileUploadError
			require.ErrorAs(t, err, &uploadErr)
			assert.Equal(t, tt.expectedCode, uploadErr.Code)
		})
	}
}

func TestValidateAttachmentFileTooLarge(t *testing.T) {
	fh := makeFileHeader(t, "huge.png", 10)
	fh.Size = MaxFileSize + 1 // avoid allocating a real 10MB buffer

	err := ValidateAttachmentFile(fh)
	var uploadErr *FileUploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, "FILE_TOO_LARGE", uploadErr.Code)
}

func TestContentTypeForFile(t *testing.T) {
	assert.Equal(t, "image/png", ContentTypeForFile("photo.png"))
	assert.Equal(t, "image/jpeg", ContentTypeForFile("photo.JPG"))
	assert.Equal(t, "application/pdf", ContentTypeForFile("report.pdf"))
	assert.Equal(t, "application/octet-stream", ContentTypeForFile("unknown.bin"))
}
