package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"sync"
)

// MockS3Service keeps uploaded attachment bytes in memory so tests can run
// the full pipeline without AWS credentials.
type MockS3Service struct {
	mu      sync.Mutex
	objects map[string][]byte
}

// NewMockS3Service creates a new mock S3 service
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{objects: make(map[string][]byte)}
}

// SetAsMockForTesting installs this mock as the process-wide S3 service.
func (m *MockS3Service) SetAsMockForTesting() {
	SetS3Service(m)
}

// UploadFile stores the file content in memory under a deterministic key.
// Unlike the real service the key carries no timestamp, so tests can
// predict it from the file name alone.
func (m *MockS3Service) UploadFile(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	key := fmt.Sprintf("attachments/mock_%s", fileHeader.Filename)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = content
	return key, nil
}

// GetPresignedURL returns a fake URL for a stored object.
func (m *MockS3Service) GetPresignedURL(s3Key string) (string, error) {
	if s3Key == "" {
		return "", nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[s3Key]; !ok {
		return "", fmt.Errorf("object not in mock store: %s", s3Key)
	}
	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", s3Key), nil
}

// DeleteFile drops a stored object. An empty key is a no-op.
func (m *MockS3Service) DeleteFile(s3Key string) error {
	if s3Key == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, s3Key)
	return nil
}

// FileExists reports whether an object is currently stored.
func (m *MockS3Service) FileExists(s3Key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[s3Key]
	return ok
}
