package legal

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lawai/backend/internal/domain/legal"
	"github.com/lawai/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type documentMocks struct {
	repo     *MockDocumentRepository
	storage  *MockFileStorage
	renderer *MockDocumentRenderer
}

func newDocumentServiceWithMocks() (*DocumentService, documentMocks) {
	m := documentMocks{
		repo:     new(MockDocumentRepository),
		storage:  new(MockFileStorage),
		renderer: new(MockDocumentRenderer),
	}
	svc := NewDocumentService(m.repo, m.storage, m.renderer, nil)
	return svc, m
}

func ownedDocument(owner string) *legal.Document {
	d, _ := legal.NewDocument(owner, "Petição inicial", "docx")
	return d
}

func TestDocumentService_Create_WithTextFile(t *testing.T) {
	ctx := context.Background()
	svc, m := newDocumentServiceWithMocks()

	data := []byte("Excelentíssimo Senhor Doutor Juiz")
	m.storage.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "documents/u1/") && strings.HasSuffix(key, "/peticao.txt")
	}), data, "text/plain").Return(nil)
	m.repo.On("Create", ctx, mock.AnythingOfType("*legal.Document")).Return(nil)

	resp, err := svc.Create(ctx, "u1",
		CreateDocumentRequest{Title: "Petição", FileType: "txt"},
		&UploadedFile{Filename: "peticao.txt", ContentType: "text/plain", Data: data},
	)

	require.NoError(t, err)
	assert.Equal(t, string(data), resp.Content)
	assert.Equal(t, legal.DocumentStatusDraft, resp.Status)
	assert.Equal(t, "agora mesmo", resp.CreatedAgo)
	require.NotNil(t, resp.FileInfo)
	info := legal.ParseFileInfo(*resp.FileInfo)
	require.NotNil(t, info)
	assert.Equal(t, int64(len(data)), info.Size)
	assert.Equal(t, "peticao.txt", info.Filename)
}

func TestDocumentService_Create_SniffsGenericContentType(t *testing.T) {
	ctx := context.Background()
	data := []byte("Excelentíssimo Senhor Doutor Juiz")

	for _, declared := range []string{"", "application/octet-stream"} {
		svc, m := newDocumentServiceWithMocks()
		m.storage.On("Upload", ctx, mock.Anything, data, "text/plain; charset=utf-8").Return(nil)
		m.repo.On("Create", ctx, mock.AnythingOfType("*legal.Document")).Return(nil)

		resp, err := svc.Create(ctx, "u1",
			CreateDocumentRequest{Title: "Petição", FileType: "txt"},
			&UploadedFile{Filename: "peticao.txt", ContentType: declared, Data: data},
		)

		require.NoError(t, err, declared)
		assert.Equal(t, string(data), resp.Content, declared)
		m.storage.AssertExpectations(t)
	}
}

func TestDocumentService_Create_KeepsDeclaredBinaryType(t *testing.T) {
	ctx := context.Background()
	svc, m := newDocumentServiceWithMocks()

	data := []byte("plain bytes labelled as a word file")
	m.storage.On("Upload", ctx, mock.Anything, data, "application/msword").Return(nil)
	m.repo.On("Create", ctx, mock.AnythingOfType("*legal.Document")).Return(nil)

	resp, err := svc.Create(ctx, "u1",
		CreateDocumentRequest{Title: "Contrato", FileType: "doc"},
		&UploadedFile{Filename: "contrato.doc", ContentType: "application/msword", Data: data},
	)

	require.NoError(t, err)
	assert.Empty(t, resp.Content)
}

func TestDocumentService_Create_StoreFailureRemovesFile(t *testing.T) {
	ctx := context.Background()
	svc, m := newDocumentServiceWithMocks()

	m.storage.On("Upload", ctx, mock.Anything, mock.Anything, "application/pdf").Return(nil)
	m.repo.On("Create", ctx, mock.Anything).Return(errors.New("insert failed"))
	m.storage.On("DeleteObject", ctx, mock.Anything).Return(nil)

	_, err := svc.Create(ctx, "u1",
		CreateDocumentRequest{Title: "Contrato", FileType: "pdf", Content: "x"},
		&UploadedFile{Filename: "c.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")},
	)

	require.Error(t, err)
	m.storage.AssertCalled(t, "DeleteObject", ctx, mock.Anything)
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()
	svc, m := newDocumentServiceWithMocks()
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return now })

	old := ownedDocument("u1")
	old.CreatedAt = now.Add(-3 * time.Hour)
	m.repo.On("FindAllByOwner", ctx, "u1", mock.MatchedBy(func(f shared.Filter) bool {
		return f.Limit == 20
	})).Return([]*legal.Document{old}, nil)

	docs, err := svc.List(ctx, "u1", 20)

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "há 3 horas", docs[0].CreatedAgo)
	assert.Nil(t, docs[0].FileInfo)
}

func TestDocumentService_Ownership(t *testing.T) {
	ctx := context.Background()
	svc, m := newDocumentServiceWithMocks()

	doc := ownedDocument("u2")
	m.repo.On("FindByID", ctx, doc.ID).Return(doc, nil)
	m.repo.On("FindByID", ctx, "missing").Return(nil, shared.ErrNotFound)

	_, err := svc.GetByID(ctx, "u1", doc.ID)
	assert.True(t, shared.IsForbidden(err))

	_, err = svc.GetByID(ctx, "u1", "missing")
	assert.True(t, shared.IsNotFound(err))

	assert.True(t, shared.IsForbidden(svc.Delete(ctx, "u1", doc.ID)))

	_, _, err = svc.RenderPDF(ctx, "u1", doc.ID)
	assert.True(t, shared.IsForbidden(err))
	m.renderer.AssertNotCalled(t, "RenderDocument", mock.Anything, mock.Anything)
}

func TestDocumentService_Delete_RemovesFileBestEffort(t *testing.T) {
	ctx := context.Background()
	svc, m := newDocumentServiceWithMocks()

	doc := ownedDocument("u1")
	doc.FileInfo = &legal.FileInfo{Filename: "a.pdf", StorageKey: "documents/u1/x/a.pdf"}
	m.repo.On("FindByID", ctx, doc.ID).Return(doc, nil)
	m.repo.On("Delete", ctx, doc.ID).Return(nil)
	m.storage.On("DeleteObject", ctx, "documents/u1/x/a.pdf").Return(errors.New("bucket offline"))

	assert.NoError(t, svc.Delete(ctx, "u1", doc.ID))
	m.storage.AssertExpectations(t)
}

func TestDocumentService_DownloadURL(t *testing.T) {
	ctx := context.Background()
	svc, m := newDocumentServiceWithMocks()

	withoutFile := ownedDocument("u1")
	m.repo.On("FindByID", ctx, withoutFile.ID).Return(withoutFile, nil)

	_, err := svc.DownloadURL(ctx, "u1", withoutFile.ID)
	assert.True(t, shared.IsNotFound(err))

	withFile := ownedDocument("u1")
	withFile.FileInfo = &legal.FileInfo{Filename: "a.pdf", StorageKey: "k"}
	expires := time.Now().Add(time.Hour)
	m.repo.On("FindByID", ctx, withFile.ID).Return(withFile, nil)
	m.storage.On("GenerateDownloadURL", ctx, "k", time.Duration(0)).Return("https://s3/k?sig", expires, nil)

	resp, err := svc.DownloadURL(ctx, "u1", withFile.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://s3/k?sig", resp.URL)
	assert.Equal(t, expires, resp.ExpiresAt)
}

func TestDocumentService_RenderPDF(t *testing.T) {
	ctx := context.Background()
	svc, m := newDocumentServiceWithMocks()

	doc := ownedDocument("u1")
	m.repo.On("FindByID", ctx, doc.ID).Return(doc, nil)
	m.renderer.On("RenderDocument", ctx, doc).Return([]byte("%PDF"), nil)

	pdf, title, err := svc.RenderPDF(ctx, "u1", doc.ID)

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), pdf)
	assert.Equal(t, "Petição inicial", title)

	noRenderer := NewDocumentService(m.repo, m.storage, nil, nil)
	_, _, err = noRenderer.RenderPDF(ctx, "u1", doc.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestDocumentService_Update_KeepsFileInfo(t *testing.T) {
	ctx := context.Background()
	svc, m := newDocumentServiceWithMocks()

	doc := ownedDocument("u1")
	doc.FileInfo = &legal.FileInfo{Filename: "a.pdf", StorageKey: "k"}
	m.repo.On("FindByID", ctx, doc.ID).Return(doc, nil)
	m.repo.On("Update", ctx, doc).Return(nil)

	analysis := "Sem riscos relevantes."
	resp, err := svc.Update(ctx, "u1", doc.ID, UpdateDocumentRequest{Analysis: &analysis})

	require.NoError(t, err)
	assert.Equal(t, analysis, resp.Analysis)
	assert.Equal(t, "Petição inicial", resp.Title)
	require.NotNil(t, resp.FileInfo)
	assert.Contains(t, *resp.FileInfo, `"storage_key":"k"`)
}
