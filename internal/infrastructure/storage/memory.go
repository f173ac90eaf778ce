package storage

import (
	"context"
	"net/url"
	"sync"
	"time"

	legalapp "github.com/lawai/backend/internal/application/legal"
)

var _ legalapp.FileStorage = (*MemoryFileStorage)(nil)

// StoredObject is a file kept by MemoryFileStorage
type StoredObject struct {
	Data        []byte
	ContentType string
}

// MemoryFileStorage keeps files in process memory. It backs development
// setups without an object store and is safe for concurrent use.
type MemoryFileStorage struct {
	// BaseURL prefixes generated download URLs
	BaseURL string

	mu      sync.RWMutex
	objects map[string]StoredObject
}

// NewMemoryFileStorage creates an empty MemoryFileStorage
func NewMemoryFileStorage() *MemoryFileStorage {
	return &MemoryFileStorage{
		BaseURL: "http://localhost:8080/files",
		objects: make(map[string]StoredObject),
	}
}

// Upload stores a copy of data
func (m *MemoryFileStorage) Upload(_ context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return ErrStorageKeyRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[storageKey] = StoredObject{Data: append([]byte(nil), data...), ContentType: contentType}
	return nil
}

// GenerateDownloadURL returns a pseudo URL; the file is not served
func (m *MemoryFileStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, ErrStorageKeyRequired
	}
	if expiresIn <= 0 {
		expiresIn = defaultPresignExpiration
	}
	expiresAt := time.Now().Add(expiresIn)
	q := url.Values{"expires": {expiresAt.UTC().Format(time.RFC3339)}}
	return m.BaseURL + "/" + storageKey + "?" + q.Encode(), expiresAt, nil
}

// DeleteObject removes storageKey
func (m *MemoryFileStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return ErrStorageKeyRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, storageKey)
	return nil
}

// Object returns the stored file, if any
func (m *MemoryFileStorage) Object(storageKey string) (StoredObject, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[storageKey]
	return obj, ok
}
