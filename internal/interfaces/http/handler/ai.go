package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/lawai/backend/internal/application/assistant"
)

// AIHandler exposes the legal assistant. Provider failures are not HTTP
// errors: the body carries success=false with a fallback text.
type AIHandler struct {
	BaseHandler
	assistant *assistant.Service
}

// NewAIHandler creates a new AIHandler
func NewAIHandler(svc *assistant.Service) *AIHandler {
	return &AIHandler{assistant: svc}
}

// AnalyzeDocument godoc
// @ID           analyzeDocument
// @Summary      Analyze a document
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body assistant.AnalyzeDocumentRequest true "Document text"
// @Success      200 {object} assistant.AnalysisResponse
// @Failure      400 {object} ErrorResponse
// @Router       /ai/analyze-document [post]
func (h *AIHandler) AnalyzeDocument(c *gin.Context) {
	var req assistant.AnalyzeDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.assistant.AnalyzeDocument(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// LegalSearch godoc
// @ID           legalSearch
// @Summary      Legal research
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body assistant.LegalSearchRequest true "Query"
// @Success      200 {object} assistant.SearchResponse
// @Failure      400 {object} ErrorResponse
// @Router       /ai/legal-search [post]
func (h *AIHandler) LegalSearch(c *gin.Context) {
	var req assistant.LegalSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.assistant.LegalSearch(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GenerateDocument godoc
// @ID           generateDocument
// @Summary      Draft a document
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body assistant.GenerateDocumentRequest true "Document type and parameters"
// @Success      200 {object} assistant.GeneratedDocumentResponse
// @Failure      400 {object} ErrorResponse
// @Router       /ai/generate-document [post]
func (h *AIHandler) GenerateDocument(c *gin.Context) {
	var req assistant.GenerateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.assistant.GenerateDocument(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// AnswerLegalQuestions godoc
// @ID           answerLegalQuestions
// @Summary      Legal Q&A
// @Description  Well-known topics get a predefined answer; anything else goes to legal search
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body assistant.LegalQuestionRequest true "Question"
// @Success      200 {object} assistant.SearchResponse
// @Failure      400 {object} ErrorResponse
// @Router       /ai/answer-legal-questions [post]
func (h *AIHandler) AnswerLegalQuestions(c *gin.Context) {
	var req assistant.LegalQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	h.Success(c, h.assistant.AnswerLegalQuestion(c.Request.Context(), req))
}

// TestConnection godoc
// @ID           testAIConnection
// @Summary      Check the AI provider
// @Tags         ai
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} assistant.ConnectionStatus
// @Router       /ai/test-connection [get]
func (h *AIHandler) TestConnection(c *gin.Context) {
	h.Success(c, h.assistant.TestConnection(c.Request.Context()))
}
