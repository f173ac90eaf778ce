package handler

import (
	"github.com/gin-gonic/gin"
	legalapp "github.com/lawai/backend/internal/application/legal"
)

// DeadlineHandler handles deadline-related API endpoints
type DeadlineHandler struct {
	BaseHandler
	deadlineService *legalapp.DeadlineService
}

// NewDeadlineHandler creates a new DeadlineHandler
func NewDeadlineHandler(deadlineService *legalapp.DeadlineService) *DeadlineHandler {
	return &DeadlineHandler{deadlineService: deadlineService}
}

// List godoc
// @ID           listDeadlines
// @Summary      List deadlines
// @Description  Ordered by due date. days_ahead keeps deadlines due between now and now+N days.
// @Tags         deadlines
// @Produce      json
// @Security     BearerAuth
// @Param        skip         query int  false "Rows to skip" default(0)
// @Param        limit        query int  false "Page size (max 100)" default(50)
// @Param        case_id      query int  false "Only deadlines of this case"
// @Param        pending_only query bool false "Hide completed deadlines"
// @Param        days_ahead   query int  false "Due window in days"
// @Success      200 {object} DeadlineListResponse
// @Failure      400 {object} ErrorResponse
// @Router       /deadlines [get]
func (h *DeadlineHandler) List(c *gin.Context) {
	var query legalapp.DeadlineListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	deadlines, err := h.deadlineService.List(c.Request.Context(), callerID(c), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, DeadlineListResponse{Deadlines: deadlines})
}

// Upcoming godoc
// @ID           listUpcomingDeadlines
// @Summary      Upcoming deadlines
// @Description  Deadlines due in the next days_ahead days, classified as urgente, próximo or agendado
// @Tags         deadlines
// @Produce      json
// @Security     BearerAuth
// @Param        days_ahead        query int  false "Window in days" default(7)
// @Param        include_completed query bool false "Include completed deadlines" default(false)
// @Success      200 {object} UpcomingDeadlineListResponse
// @Router       /deadlines/upcoming [get]
func (h *DeadlineHandler) Upcoming(c *gin.Context) {
	var query legalapp.UpcomingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	deadlines, err := h.deadlineService.ListUpcoming(c.Request.Context(), callerID(c), query.DaysAhead, query.IncludeCompleted)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, UpcomingDeadlineListResponse{Deadlines: deadlines})
}

// Stats godoc
// @ID           getDeadlineStats
// @Summary      Deadline statistics
// @Tags         deadlines
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} legalapp.DeadlineStatisticsResponse
// @Router       /deadlines/stats [get]
func (h *DeadlineHandler) Stats(c *gin.Context) {
	stats, err := h.deadlineService.Statistics(c.Request.Context(), callerID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// ByCase godoc
// @ID           listDeadlinesByCase
// @Summary      Deadlines of a case
// @Tags         deadlines
// @Produce      json
// @Security     BearerAuth
// @Param        caseId path int true "Case ID"
// @Success      200 {object} DeadlineListResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /deadlines/by-case/{caseId} [get]
func (h *DeadlineHandler) ByCase(c *gin.Context) {
	caseID, ok := h.parseInt64Param(c, "caseId")
	if !ok {
		return
	}

	deadlines, err := h.deadlineService.ListByCase(c.Request.Context(), callerID(c), caseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, DeadlineListResponse{Deadlines: deadlines})
}

// Create godoc
// @ID           createDeadline
// @Summary      Create a deadline
// @Description  due_date must be in the future. case_id, when given, must belong to the caller.
// @Tags         deadlines
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body legalapp.CreateDeadlineRequest true "Deadline"
// @Success      201 {object} legalapp.DeadlineResponse
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /deadlines [post]
func (h *DeadlineHandler) Create(c *gin.Context) {
	var req legalapp.CreateDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	deadline, err := h.deadlineService.Create(c.Request.Context(), callerID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, deadline)
}

// GetByID godoc
// @ID           getDeadlineById
// @Summary      Get a deadline
// @Tags         deadlines
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Deadline ID"
// @Success      200 {object} legalapp.DeadlineResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /deadlines/{id} [get]
func (h *DeadlineHandler) GetByID(c *gin.Context) {
	id, ok := h.parseInt64Param(c, "id")
	if !ok {
		return
	}

	deadline, err := h.deadlineService.GetByID(c.Request.Context(), callerID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, deadline)
}

// Update godoc
// @ID           updateDeadline
// @Summary      Update a deadline
// @Description  Only the supplied fields change
// @Tags         deadlines
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Deadline ID"
// @Param        request body legalapp.UpdateDeadlineRequest true "Fields to change"
// @Success      200 {object} legalapp.DeadlineResponse
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /deadlines/{id} [put]
func (h *DeadlineHandler) Update(c *gin.Context) {
	id, ok := h.parseInt64Param(c, "id")
	if !ok {
		return
	}

	var req legalapp.UpdateDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	deadline, err := h.deadlineService.Update(c.Request.Context(), callerID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, deadline)
}

// Complete godoc
// @ID           completeDeadline
// @Summary      Mark a deadline as completed
// @Description  Idempotent
// @Tags         deadlines
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Deadline ID"
// @Success      200 {object} legalapp.DeadlineResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /deadlines/{id}/complete [put]
func (h *DeadlineHandler) Complete(c *gin.Context) {
	id, ok := h.parseInt64Param(c, "id")
	if !ok {
		return
	}

	deadline, err := h.deadlineService.Complete(c.Request.Context(), callerID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, deadline)
}

// Delete godoc
// @ID           deleteDeadline
// @Summary      Delete a deadline
// @Tags         deadlines
// @Security     BearerAuth
// @Param        id path int true "Deadline ID"
// @Success      204
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /deadlines/{id} [delete]
func (h *DeadlineHandler) Delete(c *gin.Context) {
	id, ok := h.parseInt64Param(c, "id")
	if !ok {
		return
	}

	if err := h.deadlineService.Delete(c.Request.Context(), callerID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
