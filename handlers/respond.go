package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/firmdex/firmdex-api/internal/store"
	"github.com/firmdex/firmdex-api/pkg/logger"
)

// All failure bodies are {"message": string}; clients branch on status only.

func message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// serverError hides internal detail behind a generic body.
func serverError(c *gin.Context, err error) {
	logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	message(c, http.StatusInternalServerError, "Server error")
}

// storeError translates the store sentinels for an entity's :id routes.
func storeError(c *gin.Context, err error, entity string) {
	switch {
	case errors.Is(err, store.ErrInvalidID):
		message(c, http.StatusBadRequest, "Invalid "+entity+" ID")
	case errors.Is(err, store.ErrNotFound):
		message(c, http.StatusNotFound, entity+" not found")
	default:
		serverError(c, err)
	}
}
