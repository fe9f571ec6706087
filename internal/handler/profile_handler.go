package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetProfile returns a public profile with its published article count.
// Accounts that never finished verification have no public profile.
func (a *API) GetProfile(c *gin.Context) {
	user, err := a.users.GetProfile(c.Param("profileName"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	published, err := a.articles.CountPublishedByAuthor(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profileName":       user.ProfileName,
		"displayName":       user.DisplayName,
		"joinedAt":          user.CreatedAt,
		"publishedArticles": published,
	})
}
