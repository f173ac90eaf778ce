package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lawai/backend/internal/interfaces/http/dto"
)

// BodyLimit caps request bodies at maxBytes
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return BodyLimitWithUploads(maxBytes, maxBytes)
}

// BodyLimitWithUploads caps JSON and form bodies at maxBytes and multipart
// bodies at maxUpload. The file size itself is checked by the document
// handler; maxUpload only bounds what is read from the wire.
func BodyLimitWithUploads(maxBytes, maxUpload int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := maxBytes
		if strings.HasPrefix(c.ContentType(), "multipart/") {
			limit = max(maxBytes, maxUpload)
		}

		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRequestTooLarge,
				"Corpo da requisição excede o tamanho máximo permitido",
				GetRequestID(c),
			))
			return
		}

		// Chunked bodies carry no Content-Length
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
