package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/lawai/backend/internal/application/identity"
)

// UserHandler serves a user's own profile
type UserHandler struct {
	BaseHandler
	userService *identity.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetByID godoc
// @ID           getUserById
// @Summary      Get a user
// @Description  Users can only read their own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200 {object} identity.UserResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.userService.GetByID(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Update godoc
// @ID           updateUser
// @Summary      Update a user
// @Description  Users can only update their own profile; omitted fields are kept
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        request body identity.UpdateUserRequest true "Fields to change"
// @Success      200 {object} identity.UserResponse
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	var req identity.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), callerID(c), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}
