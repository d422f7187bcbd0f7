// Package response implements the wire contract shared by all handlers:
// success bodies are the resource itself, error bodies carry a single
// "error" message with the status taken from the typed error.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/bkpsdm/asn-monitor-api/pkg/errors"
)

// ErrorBody is the error payload returned by every endpoint.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON sends a success response.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
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

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error converts the error to the common structure and responds with its status.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, ErrorBody{Error: appErr.Message})
}

// Attachment streams a generated file download.
func Attachment(c *gin.Context, filename, contentType string, payload []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, payload)
}
