package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/summer-school-api/pkg/errors"
)

// ErrorBody is the wire contract the legacy clients expect for failures.
type ErrorBody struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// Message is a soft, non-error informational body (e.g. "already added").
type Message struct {
	Message string `json:"message"`
}

// JSON sends a success response. Bodies are the raw documents, no envelope.
func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// OK responds with HTTP 200.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Soft sends a 200 with an informational message only.
func Soft(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Message{Message: message})
}

// Error sends the `{error: true, message}` body with the error's status.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.JSON(appErr.Status, ErrorBody{Error: true, Message: appErr.Message})
}
