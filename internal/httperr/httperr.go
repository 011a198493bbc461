package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

func BadRequest(c *gin.Context, message string) {
	Write(c, http.StatusBadRequest, message)
}

// Validation reports field-level failures detected before any storage call.
func Validation(c *gin.Context, errs []FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "Validation error",
		"errors":  errs,
	})
}

func Unauthorized(c *gin.Context, message string) {
	Write(c, http.StatusUnauthorized, message)
}

func InvalidCredentials(c *gin.Context) {
	// One message for unknown email and wrong password alike.
	Write(c, http.StatusUnauthorized, "Invalid credentials")
}

func Conflict(c *gin.Context, message string) {
	Write(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Write(c, http.StatusNotFound, message)
}

// Internal hides the underlying error outside development mode.
func Internal(c *gin.Context, message string, err error) {
	if err != nil && gin.Mode() != gin.ReleaseMode {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": message,
			"detail":  err.Error(),
		})
		return
	}
	Write(c, http.StatusInternalServerError, message)
}
