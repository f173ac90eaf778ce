package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newEchoRouter(mw gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw)
	router.POST("/test", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too large")
			return
		}
		c.String(http.StatusOK, string(body))
	})
	return router
}

func postBody(router http.Handler, contentType, body string, chunked bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if chunked {
		req.ContentLength = -1
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBodyLimit(t *testing.T) {
	router := newEchoRouter(BodyLimit(10))

	w := postBody(router, "", "hello", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", w.Body.String())

	w = postBody(router, "", "hello world, too long", false)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_REQUEST_TOO_LARGE")

	w = postBody(router, "", "hello world, too long", true)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestBodyLimitWithUploads(t *testing.T) {
	router := newEchoRouter(BodyLimitWithUploads(10, 64))
	body := strings.Repeat("x", 40)

	assert.Equal(t, http.StatusRequestEntityTooLarge, postBody(router, "application/json", body, false).Code)
	assert.Equal(t, http.StatusOK, postBody(router, "multipart/form-data; boundary=x", body, false).Code)
	assert.Equal(t, http.StatusRequestEntityTooLarge,
		postBody(router, "multipart/form-data; boundary=x", strings.Repeat("x", 100), true).Code)
}
