package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lawai/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
)

func TestValidationDetails(t *testing.T) {
	type deadlineBody struct {
		Title    string `json:"title" binding:"required"`
		Priority string `json:"priority" binding:"omitempty,oneof=low medium high"`
	}
	SetupValidator()

	var details []dto.ValidationDetail
	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var body deadlineBody
		err := c.ShouldBindJSON(&body)
		details = ValidationDetails(err)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"priority":"urgent"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.ElementsMatch(t, []dto.ValidationDetail{
		{Field: "title", Message: "This field is required"},
		{Field: "priority", Message: "Must be one of: low medium high"},
	}, details)
}

func TestValidationDetails_OtherErrors(t *testing.T) {
	assert.Nil(t, ValidationDetails(errors.New("unexpected EOF")))
	assert.Nil(t, ValidationDetails(nil))
}
