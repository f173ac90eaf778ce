package handler

import (
	"github.com/gin-gonic/gin"
	legalapp "github.com/lawai/backend/internal/application/legal"
)

// ClientHandler handles client-related API endpoints
type ClientHandler struct {
	BaseHandler
	clientService *legalapp.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *legalapp.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// List godoc
// @ID           listClients
// @Summary      List clients
// @Description  Lists the caller's clients. search matches name, email and document.
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query int    false "Rows to skip" default(0)
// @Param        limit  query int    false "Page size (max 100)" default(50)
// @Param        search query string false "Free-text filter"
// @Success      200 {object} ClientListResponse
// @Failure      400 {object} ErrorResponse
// @Router       /clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	var query legalapp.ClientListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	clients, err := h.clientService.List(c.Request.Context(), callerID(c), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ClientListResponse{Clients: clients})
}

// Create godoc
// @ID           createClient
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body legalapp.CreateClientRequest true "Client"
// @Success      201 {object} legalapp.ClientResponse
// @Failure      400 {object} ErrorResponse
// @Router       /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req legalapp.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), callerID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, client)
}

// GetByID godoc
// @ID           getClientById
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Client ID"
// @Success      200 {object} legalapp.ClientResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /clients/{id} [get]
func (h *ClientHandler) GetByID(c *gin.Context) {
	id, ok := h.parseInt64Param(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.GetByID(c.Request.Context(), callerID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// Update godoc
// @ID           updateClient
// @Summary      Update a client
// @Description  Only the supplied fields change
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Client ID"
// @Param        request body legalapp.UpdateClientRequest true "Fields to change"
// @Success      200 {object} legalapp.ClientResponse
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := h.parseInt64Param(c, "id")
	if !ok {
		return
	}

	var req legalapp.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), callerID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// Delete godoc
// @ID           deleteClient
// @Summary      Delete a client
// @Description  Fails with 422 while cases still reference the client
// @Tags         clients
// @Security     BearerAuth
// @Param        id path int true "Client ID"
// @Success      204
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := h.parseInt64Param(c, "id")
	if !ok {
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), callerID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
