package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondServiceError maps an error kind to its HTTP status. Every failure
// kind keeps its own status so clients can tell a denial from a collision
// from a missing resource.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrValidation):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotImplemented):
		respondError(c, http.StatusNotImplemented, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal error")
	}
}

func respondForbidden(c *gin.Context, message string) {
	respondError(c, http.StatusForbidden, message)
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// parsePagination reads the 1-based pageIndex and pageSize query values.
// pageSize must stay inside (0, 100); anything else is the caller's
// validation error, not the pagination engine's.
func parsePagination(c *gin.Context) (int, int, bool) {
	pageIndex := 1
	if raw := c.Query("pageIndex"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(c, http.StatusBadRequest, "pageIndex must be a positive integer")
			return 0, 0, false
		}
		pageIndex = parsed
	}

	pageSize := 20
	if raw := c.Query("pageSize"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed >= 100 {
			respondError(c, http.StatusBadRequest, "pageSize must be between 1 and 99")
			return 0, 0, false
		}
		pageSize = parsed
	}

	return pageIndex, pageSize, true
}
