package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lawai/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testConfig(endpoint string) *config.StorageConfig {
	return &config.StorageConfig{
		Bucket:            "lawai-documents",
		AccessKey:         "test-key",
		SecretKey:         "test-secret",
		Region:            "sa-east-1",
		Endpoint:          endpoint,
		UsePathStyle:      true,
		PresignExpiration: 10 * time.Minute,
	}
}

func TestNewS3FileStorage_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.StorageConfig
		wantErr string
	}{
		{"nil config", nil, "configuration is required"},
		{"missing bucket", &config.StorageConfig{AccessKey: "k", SecretKey: "s"}, "bucket is required"},
		{"missing access key", &config.StorageConfig{Bucket: "b", SecretKey: "s"}, "access key is required"},
		{"missing secret key", &config.StorageConfig{Bucket: "b", AccessKey: "k"}, "secret key is required"},
		{"bad endpoint", &config.StorageConfig{Bucket: "b", AccessKey: "k", SecretKey: "s", Endpoint: "http://"}, "invalid storage endpoint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewS3FileStorage(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewS3FileStorage_Defaults(t *testing.T) {
	cfg := testConfig("minio:9000")
	cfg.PresignExpiration = 0

	s, err := NewS3FileStorage(cfg, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	assert.Equal(t, "lawai-documents", s.Bucket())
	assert.Equal(t, defaultPresignExpiration, s.presignExpiration)

	s, err = NewS3FileStorage(cfg, WithPresignExpiration(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, time.Hour, s.presignExpiration)
}

func TestNormalizeEndpoint(t *testing.T) {
	got, err := normalizeEndpoint("", false)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", got)

	got, err = normalizeEndpoint("s3.example.com/", true)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example.com", got)

	got, err = normalizeEndpoint("http://minio:9000", true)
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000", got)
}

func TestS3FileStorage_GenerateDownloadURL(t *testing.T) {
	s, err := NewS3FileStorage(testConfig("http://localhost:9000"))
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("empty key", func(t *testing.T) {
		_, _, err := s.GenerateDownloadURL(ctx, "", time.Minute)
		assert.ErrorIs(t, err, ErrStorageKeyRequired)
	})

	t.Run("presigns a path-style GET", func(t *testing.T) {
		url, expiresAt, err := s.GenerateDownloadURL(ctx, "documents/u1/d1/contrato.pdf", 0)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, "http://localhost:9000/lawai-documents/documents/u1/d1/contrato.pdf?"))
		assert.Contains(t, url, "X-Amz-Expires=600")
		assert.WithinDuration(t, time.Now().Add(10*time.Minute), expiresAt, 5*time.Second)
	})
}

// fakeS3 records the requests the SDK sends
type fakeS3 struct {
	mu       sync.Mutex
	requests []recordedRequest
}

type recordedRequest struct {
	Method      string
	Path        string
	ContentType string
	Body        string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		ContentType: r.Header.Get("Content-Type"),
		Body:        string(body),
	})
	f.mu.Unlock()

	switch r.Method {
	case http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusOK)
	}
}

func TestS3FileStorage_UploadAndDelete(t *testing.T) {
	fake := &fakeS3{}
	server := httptest.NewServer(fake)
	defer server.Close()

	s, err := NewS3FileStorage(testConfig(server.URL))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, "documents/u1/d1/peticao.txt", []byte("Excelentíssimo Senhor Juiz"), "text/plain"))
	require.NoError(t, s.DeleteObject(ctx, "documents/u1/d1/peticao.txt"))

	require.Len(t, fake.requests, 2)
	put := fake.requests[0]
	assert.Equal(t, http.MethodPut, put.Method)
	assert.Equal(t, "/lawai-documents/documents/u1/d1/peticao.txt", put.Path)
	assert.Equal(t, "text/plain", put.ContentType)
	assert.Contains(t, put.Body, "Excelentíssimo Senhor Juiz")

	del := fake.requests[1]
	assert.Equal(t, http.MethodDelete, del.Method)
	assert.Equal(t, "/lawai-documents/documents/u1/d1/peticao.txt", del.Path)
}

func TestS3FileStorage_EmptyKey(t *testing.T) {
	s, err := NewS3FileStorage(testConfig("http://localhost:9000"))
	require.NoError(t, err)

	assert.ErrorIs(t, s.Upload(context.Background(), "", []byte("x"), "text/plain"), ErrStorageKeyRequired)
	assert.ErrorIs(t, s.DeleteObject(context.Background(), ""), ErrStorageKeyRequired)
}
