package httperr

import (
	"github.com/gin-gonic/gin"
)

// CodeMalformedInput marks requests rejected before reaching a use case.
const CodeMalformedInput = "MALFORMED_INPUT"

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code    string `json:"code,omitempty"`
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	AbortWithCode(c, status, err, "", msg, detail)
}

func AbortWithCode(c *gin.Context, status int, err error, code, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Code = code
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// AbortMalformed rejects a request whose path, query or body cannot be bound.
func AbortMalformed(c *gin.Context, status int, err error, msg string) {
	AbortWithCode(c, status, err, CodeMalformedInput, msg, err.Error())
}
