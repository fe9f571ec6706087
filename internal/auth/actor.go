package auth

import "github.com/inkpress/internal/db"

// Actor is the authenticated entity performing an operation, reconstructed
// per request from the session. The zero value is the anonymous actor.
// Authorization decisions receive it explicitly; it is never read from
// ambient state.
type Actor struct {
	ID              uint
	Role            db.UserRole
	IsActive        bool
	IsEmailVerified bool
}

// Anonymous is the actor for unauthenticated requests.
var Anonymous = Actor{}

// IsAnonymous reports whether the actor is unauthenticated.
func (a Actor) IsAnonymous() bool {
	return a.ID == 0
}

// ActorFromUser derives the request actor from a stored user.
func ActorFromUser(u *db.User) Actor {
	if u == nil {
		return Anonymous
	}
	return Actor{
		ID:              u.ID,
		Role:            u.Role,
		IsActive:        u.IsActive(),
		IsEmailVerified: u.IsEmailVerified(),
	}
}
