package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lifesource-backend/internal/catalog"
)

// Envelope is the uniform response body for every endpoint. Success carries
// errorCode "NO"; failures carry a stable errorCode and omit data.
type Envelope struct {
	StatusCode   int         `json:"statusCode"`
	Message      string      `json:"message,omitempty"`
	Data         interface{} `json:"data,omitempty"`
	ErrorCode    string      `json:"errorCode"`
	ErrorMessage string      `json:"errorMessage"`
}

const (
	codeOK         = "NO"
	codeValidation = "VALIDATION_ERROR"
	codeNotFound   = "NOT_FOUND"
	codeInternal   = "INTERNAL_ERROR"
)

func respondData(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{
		StatusCode: status,
		Message:    message,
		Data:       data,
		ErrorCode:  codeOK,
	})
}

func respondOK(c *gin.Context, data interface{}) {
	respondData(c, http.StatusOK, "", data)
}

func respondCreated(c *gin.Context, data interface{}) {
	respondData(c, http.StatusCreated, "created", data)
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Envelope{
		StatusCode:   status,
		ErrorCode:    code,
		ErrorMessage: message,
	})
}

func respondValidationError(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, codeValidation, message)
}

// respondCatalogError translates store failures into the envelope. Internal
// store errors keep their detail in the logs only; the caller sees a generic
// message.
func respondCatalogError(c *gin.Context, route string, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		respondError(c, http.StatusNotFound, codeNotFound, "not found")
	case errors.Is(err, catalog.ErrSlugTaken):
		respondValidationError(c, "slug already in use")
	case errors.Is(err, catalog.ErrBadCursor):
		respondValidationError(c, "invalid cursor")
	default:
		log.Printf("[%s] store error: %v", route, err)
		respondError(c, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

// PanicEnvelope is the recovery handler for gin.CustomRecovery: a recovered
// panic surfaces as the generic internal-error envelope instead of gin's
// bare 500.
func PanicEnvelope(c *gin.Context, err interface{}) {
	log.Printf("[%s %s] panic recovered: %v", c.Request.Method, c.FullPath(), err)
	respondError(c, http.StatusInternalServerError, codeInternal, "internal error")
}
