package handler

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/service"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type verifyRequest struct {
	Code string `json:"code" binding:"required"`
}

type profileRequest struct {
	ProfileName string `json:"profileName" binding:"required"`
	DisplayName string `json:"displayName" binding:"required"`
}

// Register creates a new account and sends its verification code.
func (a *API) Register(c *gin.Context) {
	var req credentialsRequest
	if !bindJSON(c, &req, "username and password are required") {
		return
	}
	if len(strings.TrimSpace(req.Username)) < 3 || len(req.Password) < 8 {
		respondError(c, http.StatusBadRequest, "username must be at least 3 characters and password at least 8")
		return
	}

	user, err := a.users.Register(strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"username": user.Username, "profileName": user.ProfileName})
}

// Login validates credentials and opens a session.
func (a *API) Login(c *gin.Context) {
	var req credentialsRequest
	if !bindJSON(c, &req, "username and password are required") {
		return
	}

	user, err := a.users.Authenticate(req.Username, req.Password)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "invalid username or password")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": user.Username, "profileName": user.ProfileName})
}

// Logout closes the session.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save session")
		return
	}
	c.Status(http.StatusNoContent)
}

// VerifyEmail redeems the emailed verification code for the current account.
func (a *API) VerifyEmail(c *gin.Context) {
	var req verifyRequest
	if !bindJSON(c, &req, "code is required") {
		return
	}

	user, err := a.users.GetByID(CurrentActor(c).ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := a.users.VerifyEmail(user, req.Code); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateProfile claims the public profile name and activates the account.
func (a *API) CreateProfile(c *gin.Context) {
	var req profileRequest
	if !bindJSON(c, &req, "profileName and displayName are required") {
		return
	}

	user, err := a.users.GetByID(CurrentActor(c).ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := a.users.CreateProfile(user, strings.TrimSpace(req.ProfileName), req.DisplayName); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateProfile will allow editing the display name; it is not wired up yet
// and deliberately fails the same way every time instead of pretending to
// succeed.
func (a *API) UpdateProfile(c *gin.Context) {
	respondServiceError(c, service.ErrNotImplemented)
}

// Me returns the authenticated account's own view.
func (a *API) Me(c *gin.Context) {
	user, err := a.users.GetByID(CurrentActor(c).ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":    user.Username,
		"profileName": user.ProfileName,
		"displayName": user.DisplayName,
		"verified":    user.IsEmailVerified(),
		"active":      user.IsActive(),
	})
}
