package middleware

import (
	"errors"
	"net/http"

	"coworking-reservations/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

var errUnsupportedMediaType = errors.New("unsupported media type")

// RequireJSON rejects write requests whose body is not declared as JSON.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.ContentType() != gin.MIMEJSON {
			httperr.AbortWithCode(c, http.StatusUnsupportedMediaType, errUnsupportedMediaType,
				httperr.CodeMalformedInput, "Content-Type must be application/json", nil)
			return
		}
		c.Next()
	}
}
