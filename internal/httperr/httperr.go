package httperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Message string `json:"error"`
	Code    string `json:"code,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Message: message,
		Code:    code,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond maps err onto the HTTP taxonomy. Unclassified errors are logged with
// full detail and answered with a generic 500.
func Respond(c *gin.Context, err error) {
	var (
		ve ValidationError
		ne NotFoundError
		ce ConflictError
		ae AuthError
	)

	switch {
	case errors.As(err, &ve):
		Write(c, http.StatusBadRequest, ve.Code, ve.Message)
	case errors.As(err, &ne):
		Write(c, http.StatusNotFound, ne.Code, ne.Message)
	case errors.As(err, &ce):
		Write(c, http.StatusConflict, ce.Code, ce.Message)
	case errors.As(err, &ae):
		Write(c, http.StatusUnauthorized, ae.Code, ae.Message)
	default:
		_ = c.Error(err)
		log.Printf(
			"internal_error method=%s path=%s error=%q",
			c.Request.Method, c.Request.URL.Path, err.Error(),
		)
		Internal(c, "internal_error", "Internal server error")
	}
}
