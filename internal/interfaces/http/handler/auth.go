package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/lawai/backend/internal/application/identity"
	"github.com/lawai/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
	userService *identity.UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService, userService *identity.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

// Token godoc
// @ID           createAuthToken
// @Summary      Issue an access token
// @Description  Signs in by email. Accepts an OAuth2 password form (username=email) or JSON {username|email}.
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        request body identity.LoginInput true "Login identifier"
// @Success      200 {object} identity.TokenResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var input identity.LoginInput
	if err := c.ShouldBind(&input); err != nil {
		h.BindError(c, err)
		return
	}

	token, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, token)
}

// Register godoc
// @ID           registerUser
// @Summary      Register a user
// @Description  Creates an account. Emails are unique, case-insensitively.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.RegisterRequest true "New user"
// @Success      200 {object} identity.UserResponse
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req identity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// CurrentUser godoc
// @ID           getCurrentUser
// @Summary      Get the signed-in user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} identity.UserResponse
// @Failure      401 {object} ErrorResponse
// @Router       /auth/user [get]
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	user, err := h.userService.Current(c.Request.Context(), callerID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// Logout godoc
// @ID           logoutUser
// @Summary      Revoke the current token
// @Description  Blacklists the presented token until it expires
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401 {object} ErrorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Não autenticado")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims.ID, claims.GetExpiresAtTime()); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
