package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	legalapp "github.com/lawai/backend/internal/application/legal"
	"github.com/lawai/backend/internal/interfaces/http/dto"
)

// DefaultMaxUploadSize bounds the file accepted with a document
const DefaultMaxUploadSize int64 = 10 << 20

// DocumentHandler handles document-related API endpoints
type DocumentHandler struct {
	BaseHandler
	documentService *legalapp.DocumentService
	maxUploadSize   int64
}

// NewDocumentHandler creates a new DocumentHandler. A non-positive
// maxUploadSize selects DefaultMaxUploadSize.
func NewDocumentHandler(documentService *legalapp.DocumentService, maxUploadSize int64) *DocumentHandler {
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}
	return &DocumentHandler{
		documentService: documentService,
		maxUploadSize:   maxUploadSize,
	}
}

type documentListQuery struct {
	Limit int `form:"limit" binding:"min=0,max=100"`
}

// List godoc
// @ID           listDocuments
// @Summary      List documents
// @Description  Newest first. created_ago is a Portuguese relative time.
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size (max 100)" default(50)
// @Success      200 {object} DocumentListResponse
// @Failure      400 {object} ErrorResponse
// @Router       /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	var query documentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	docs, err := h.documentService.List(c.Request.Context(), callerID(c), query.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, DocumentListResponse{Documents: docs})
}

// Create godoc
// @ID           createDocument
// @Summary      Create a document
// @Description  Multipart form. The optional "file" part is stored in object storage; text files fill an empty content.
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title         formData string true  "Title"
// @Param        file_type     formData string true  "File type (pdf, docx, txt...)"
// @Param        content       formData string false "Content"
// @Param        status        formData string false "Status" default(draft)
// @Param        client_name   formData string false "Client name"
// @Param        document_type formData string false "Document type"
// @Param        analysis      formData string false "Analysis"
// @Param        file          formData file   false "Attached file"
// @Success      201 {object} legalapp.DocumentResponse
// @Failure      400 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Router       /documents [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	var req legalapp.CreateDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BindError(c, err)
		return
	}

	file, ok := h.readUpload(c)
	if !ok {
		return
	}

	doc, err := h.documentService.Create(c.Request.Context(), callerID(c), req, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, doc)
}

// readUpload reads the optional "file" part. It writes the error response
// itself and returns false when the part cannot be accepted.
func (h *DocumentHandler) readUpload(c *gin.Context) (*legalapp.UploadedFile, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, true
		}
		h.BadRequest(c, "Arquivo inválido")
		return nil, false
	}
	if header.Size > h.maxUploadSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Arquivo excede o tamanho máximo permitido")
		return nil, false
	}

	f, err := header.Open()
	if err != nil {
		h.HandleError(c, err)
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadSize+1))
	if err != nil {
		h.HandleError(c, err)
		return nil, false
	}
	if int64(len(data)) > h.maxUploadSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Arquivo excede o tamanho máximo permitido")
		return nil, false
	}

	return &legalapp.UploadedFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, true
}

// GetByID godoc
// @ID           getDocumentById
// @Summary      Get a document
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Document ID"
// @Success      200 {object} legalapp.DocumentResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /documents/{id} [get]
func (h *DocumentHandler) GetByID(c *gin.Context) {
	doc, err := h.documentService.GetByID(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// Update godoc
// @ID           updateDocument
// @Summary      Update a document
// @Description  Only the supplied fields change
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Document ID"
// @Param        request body legalapp.UpdateDocumentRequest true "Fields to change"
// @Success      200 {object} legalapp.DocumentResponse
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /documents/{id} [put]
func (h *DocumentHandler) Update(c *gin.Context) {
	var req legalapp.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	doc, err := h.documentService.Update(c.Request.Context(), callerID(c), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// Delete godoc
// @ID           deleteDocument
// @Summary      Delete a document
// @Description  The stored file is removed as well
// @Tags         documents
// @Security     BearerAuth
// @Param        id path string true "Document ID"
// @Success      204
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.documentService.Delete(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Download godoc
// @ID           getDocumentDownloadUrl
// @Summary      Presigned download link
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Document ID"
// @Success      200 {object} legalapp.DownloadURLResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /documents/{id}/download [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	link, err := h.documentService.DownloadURL(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, link)
}

// PDF godoc
// @ID           exportDocumentPdf
// @Summary      Export a document as PDF
// @Description  Renders the document on an A4 page
// @Tags         documents
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "Document ID"
// @Success      200 {file} file
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /documents/{id}/pdf [get]
func (h *DocumentHandler) PDF(c *gin.Context) {
	pdf, title, err := h.documentService.RenderPDF(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": pdfFilename(title),
	}))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// pdfFilename turns a document title into a download filename
func pdfFilename(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', ':', '*', '?', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		name = "documento"
	}
	return name + ".pdf"
}
