package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/pagination"
)

type tagRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListTags returns the live tag catalog.
func (a *API) ListTags(c *gin.Context) {
	tags, err := a.tags.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": toTagResponses(tags)})
}

// ListArticlesByTag returns the published articles carrying a tag.
func (a *API) ListArticlesByTag(c *gin.Context) {
	pageIndex, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	tag, err := a.tags.GetBySlug(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	page, err := a.articles.ListPublishedByTag(tag.ID, pageIndex, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if err := a.attachArticleAggregates(page.Items); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, pagination.Map(page, toArticleResponse))
}

// CreateTag adds a tag to the catalog. Admin only.
func (a *API) CreateTag(c *gin.Context) {
	var req tagRequest
	if !bindJSON(c, &req, "name is required") {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(c, http.StatusBadRequest, "name is required")
		return
	}

	tag, err := a.tags.Create(name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tagResponse{ID: tag.ID, Slug: tag.Slug, Name: tag.Name})
}

// DeleteTag soft-deletes a tag from the catalog. Admin only.
func (a *API) DeleteTag(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.tags.SoftDelete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
