package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/auth"
	"github.com/inkpress/internal/db"
	"github.com/inkpress/internal/pagination"
)

type replyRequest struct {
	Body      string `json:"body" binding:"required"`
	ReplyToID *uint  `json:"replyToId"`
}

// ListReplies returns a comment's replies, oldest first.
func (a *API) ListReplies(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	pageIndex, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	comment, err := a.comments.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	page, err := a.comments.ListReplies(comment.ID, pageIndex, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if err := a.attachCommentAggregates(page.Items); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, pagination.Map(page, toCommentResponse))
}

// CreateReply nests a reply one level under a top-level comment. Replying to
// a reply or to a deleted comment is denied.
func (a *API) CreateReply(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req replyRequest
	if !bindJSON(c, &req, "body is required") {
		return
	}

	comment, err := a.comments.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	actor := CurrentActor(c)
	if !auth.AuthorizeComment(actor, auth.CommentReply, comment).Allowed() {
		respondForbidden(c, "you do not have permission to reply to this comment")
		return
	}

	reply, err := a.comments.Reply(req.Body, actor.ID, comment, req.ReplyToID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": reply.ID})
}

// DeleteComment soft-deletes the actor's own comment; the thread keeps its
// place with a masked body.
func (a *API) DeleteComment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := a.comments.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !auth.AuthorizeComment(CurrentActor(c), auth.CommentDelete, comment).Allowed() {
		respondForbidden(c, "you do not have permission to delete this comment")
		return
	}

	if err := a.comments.Delete(comment); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpvoteComment records a positive vote on a comment.
func (a *API) UpvoteComment(c *gin.Context) {
	a.voteComment(c, true)
}

// DownvoteComment records a negative vote on a comment.
func (a *API) DownvoteComment(c *gin.Context) {
	a.voteComment(c, false)
}

// UnvoteComment removes the actor's vote on a comment; no vote is a quiet
// success.
func (a *API) UnvoteComment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := a.comments.GetByID(id); err != nil {
		respondServiceError(c, err)
		return
	}

	if err := a.votes.Unvote(CurrentActor(c).ID, db.VoteTargetComment, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) voteComment(c *gin.Context, positive bool) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := a.comments.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	actor := CurrentActor(c)
	if !auth.AuthorizeComment(actor, auth.CommentVote, comment).Allowed() {
		respondForbidden(c, "you do not have permission to vote on this comment")
		return
	}

	if _, err := a.votes.Vote(actor.ID, db.VoteTargetComment, comment.ID, positive); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
