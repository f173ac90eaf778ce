package handler

import (
	"github.com/gin-gonic/gin"
	legalapp "github.com/lawai/backend/internal/application/legal"
)

// CaseHandler handles case-related API endpoints
type CaseHandler struct {
	BaseHandler
	caseService *legalapp.CaseService
}

// NewCaseHandler creates a new CaseHandler
func NewCaseHandler(caseService *legalapp.CaseService) *CaseHandler {
	return &CaseHandler{caseService: caseService}
}

// List godoc
// @ID           listCases
// @Summary      List cases
// @Tags         cases
// @Produce      json
// @Security     BearerAuth
// @Param        skip      query int false "Rows to skip" default(0)
// @Param        limit     query int false "Page size (max 100)" default(50)
// @Param        client_id query int false "Only cases of this client"
// @Success      200 {object} CaseListResponse
// @Failure      400 {object} ErrorResponse
// @Router       /cases [get]
func (h *CaseHandler) List(c *gin.Context) {
	var query legalapp.CaseListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	cases, err := h.caseService.List(c.Request.Context(), callerID(c), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, CaseListResponse{Cases: cases})
}

// Options godoc
// @ID           listCaseOptions
// @Summary      Case dropdown options
// @Description  One entry per case, labelled "title (number)" with the client name
// @Tags         cases
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} legalapp.CaseOption
// @Router       /cases/options [get]
func (h *CaseHandler) Options(c *gin.Context) {
	options, err := h.caseService.Options(c.Request.Context(), callerID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, options)
}

// Stats godoc
// @ID           getCaseStats
// @Summary      Case counts by status
// @Tags         cases
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} legalapp.CaseStats
// @Router       /cases/stats [get]
func (h *CaseHandler) Stats(c *gin.Context) {
	stats, err := h.caseService.Stats(c.Request.Context(), callerID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// Create godoc
// @ID           createCase
// @Summary      Open a case
// @Description  The client must belong to the caller
// @Tags         cases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body legalapp.CreateCaseRequest true "Case"
// @Success      201 {object} legalapp.CaseResponse
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /cases [post]
func (h *CaseHandler) Create(c *gin.Context) {
	var req legalapp.CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.caseService.Create(c.Request.Context(), callerID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// GetByID godoc
// @ID           getCaseById
// @Summary      Get a case
// @Tags         cases
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Case ID"
// @Success      200 {object} legalapp.CaseResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /cases/{id} [get]
func (h *CaseHandler) GetByID(c *gin.Context) {
	id, ok := h.parseInt64Param(c, "id")
	if !ok {
		return
	}

	result, err := h.caseService.GetByID(c.Request.Context(), callerID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Update godoc
// @ID           updateCase
// @Summary      Update a case
// @Description  Only the supplied fields change. A new client_id must belong to the caller.
// @Tags         cases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Case ID"
// @Param        request body legalapp.UpdateCaseRequest true "Fields to change"
// @Success      200 {object} legalapp.CaseResponse
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /cases/{id} [put]
func (h *CaseHandler) Update(c *gin.Context) {
	id, ok := h.parseInt64Param(c, "id")
	if !ok {
		return
	}

	var req legalapp.UpdateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.caseService.Update(c.Request.Context(), callerID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete godoc
// @ID           deleteCase
// @Summary      Delete a case
// @Description  Deadlines of the case are kept and lose their case link
// @Tags         cases
// @Security     BearerAuth
// @Param        id path int true "Case ID"
// @Success      204
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /cases/{id} [delete]
func (h *CaseHandler) Delete(c *gin.Context) {
	id, ok := h.parseInt64Param(c, "id")
	if !ok {
		return
	}

	if err := h.caseService.Delete(c.Request.Context(), callerID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
