// Package auth holds the authorization engine: pure decision functions
// evaluated per (actor, operation, resource) triple. They never touch the
// database and never fail; callers translate a Deny into a forbidden error.
package auth

import "github.com/inkpress/internal/db"

// Decision is the outcome of an authorization check.
type Decision bool

const (
	Deny  Decision = false
	Allow Decision = true
)

// Allowed reports whether the decision grants the operation.
func (d Decision) Allowed() bool {
	return bool(d)
}

// ArticleOperation enumerates everything that can be asked of an article.
type ArticleOperation uint8

const (
	ArticleCreate ArticleOperation = iota
	ArticleRead
	ArticleUpdate
	ArticleDelete
	ArticlePublish
	ArticleArchive
	ArticleVote
	ArticleComment
)

// CommentOperation enumerates everything that can be asked of a comment.
type CommentOperation uint8

const (
	CommentDelete CommentOperation = iota
	CommentVote
	CommentReply
)

// AuthorizeArticle decides one article operation. Permission and resource
// state are evaluated together in a single predicate per operation: several
// rules depend on both (author deletes stop at Published, admin deletes start
// after Draft), so layering an ownership check over a state check would get
// one of them wrong. article may be nil only for ArticleCreate.
func AuthorizeArticle(actor Actor, op ArticleOperation, article *db.Article) Decision {
	if op == ArticleCreate {
		return Decision(!actor.IsAnonymous())
	}
	if article == nil {
		return Deny
	}

	switch op {
	case ArticleRead:
		if isAdmin(actor) && article.Status != db.ArticleDraft {
			return Allow
		}
		if isAuthor(actor, article) {
			return Decision(article.Status != db.ArticleDeleted)
		}
		return Decision(article.Status == db.ArticlePublished)

	case ArticleUpdate:
		return Decision(isAuthor(actor, article) && article.Status <= db.ArticlePublished)

	case ArticleDelete:
		if isAuthor(actor, article) && article.Status <= db.ArticlePublished {
			return Allow
		}
		return Decision(isAdmin(actor) &&
			article.Status != db.ArticleDraft &&
			article.Status != db.ArticleDeleted)

	case ArticlePublish:
		return Decision(isAuthor(actor, article) && article.Status == db.ArticleDraft)

	case ArticleArchive:
		// Archiving an already archived article stays allowed; the service
		// treats it as a no-op so retried requests succeed.
		return Decision(isAuthor(actor, article) &&
			(article.Status == db.ArticlePublished || article.Status == db.ArticleArchived))

	case ArticleVote, ArticleComment:
		return Decision(!actor.IsAnonymous() && article.Status == db.ArticlePublished)
	}

	return Deny
}

// AuthorizeComment decides one comment operation.
func AuthorizeComment(actor Actor, op CommentOperation, comment *db.Comment) Decision {
	if comment == nil {
		return Deny
	}

	switch op {
	case CommentDelete:
		return Decision(!comment.IsDeleted && isOwner(actor, comment))

	case CommentVote:
		return Decision(!comment.IsDeleted)

	case CommentReply:
		return Decision(!comment.IsDeleted && comment.IsTopLevel())
	}

	return Deny
}

func isAuthor(actor Actor, article *db.Article) bool {
	return !actor.IsAnonymous() && actor.ID == article.AuthorID
}

func isOwner(actor Actor, comment *db.Comment) bool {
	return !actor.IsAnonymous() && actor.ID == comment.OwnerID
}

func isAdmin(actor Actor) bool {
	return !actor.IsAnonymous() && actor.Role == db.RoleAdmin
}
