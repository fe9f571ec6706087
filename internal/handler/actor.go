package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/auth"
	"github.com/inkpress/internal/db"
	"github.com/inkpress/internal/service"
)

const (
	sessionUserKey  = "user_id"
	actorContextKey = "__actor"
)

// LoadActor rebuilds the request actor from the session on every request.
// Requests without a valid session get the anonymous actor; downstream
// handlers receive the actor explicitly and never consult the session
// themselves.
func (a *API) LoadActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		raw := session.Get(sessionUserKey)
		if raw == nil {
			c.Set(actorContextKey, auth.Anonymous)
			c.Next()
			return
		}

		userID, ok := raw.(uint)
		if !ok {
			c.Set(actorContextKey, auth.Anonymous)
			c.Next()
			return
		}

		user, err := a.users.GetByID(userID)
		if err != nil {
			if !errors.Is(err, service.ErrUserNotFound) {
				respondError(c, http.StatusInternalServerError, "internal error")
				c.Abort()
				return
			}
			// Stale session for a removed account.
			session.Clear()
			_ = session.Save()
			c.Set(actorContextKey, auth.Anonymous)
			c.Next()
			return
		}

		c.Set(actorContextKey, auth.ActorFromUser(user))
		c.Next()
	}
}

// CurrentActor returns the actor resolved by LoadActor.
func CurrentActor(c *gin.Context) auth.Actor {
	if raw, ok := c.Get(actorContextKey); ok {
		if actor, ok := raw.(auth.Actor); ok {
			return actor
		}
	}
	return auth.Anonymous
}

// RequireAuth rejects anonymous requests.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentActor(c).IsAnonymous() {
			respondError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireActiveVerified gates write routes: the account must have passed
// email verification and created its profile.
func RequireActiveVerified() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := CurrentActor(c)
		if actor.IsAnonymous() {
			respondError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		if !actor.IsActive || !actor.IsEmailVerified {
			respondForbidden(c, "account is not active")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin gates the tag catalog mutations.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := CurrentActor(c)
		if actor.IsAnonymous() {
			respondError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		if actor.Role != db.RoleAdmin {
			respondForbidden(c, "admin role required")
			c.Abort()
			return
		}
		c.Next()
	}
}
