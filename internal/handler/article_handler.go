package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/auth"
	"github.com/inkpress/internal/db"
	"github.com/inkpress/internal/pagination"
	"github.com/inkpress/internal/service"
)

type articleRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	TagIDs  []uint `json:"tagIds"`
}

type commentRequest struct {
	Body string `json:"body" binding:"required"`
}

// CreateArticle creates a new draft owned by the current actor.
func (a *API) CreateArticle(c *gin.Context) {
	var req articleRequest
	if !bindJSON(c, &req, "title and content are required") {
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		respondError(c, http.StatusBadRequest, "title and content are required")
		return
	}

	actor := CurrentActor(c)
	if !auth.AuthorizeArticle(actor, auth.ArticleCreate, nil).Allowed() {
		respondForbidden(c, "you do not have permission to create articles")
		return
	}

	tags, err := a.tags.ResolveTags(req.TagIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	article, err := a.articles.Create(service.ArticleInput{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: actor.ID,
		Tags:     tags,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := toArticleResponse(*article)
	resp.Content = article.Content
	c.JSON(http.StatusCreated, resp)
}

// ListPublishedArticles returns the public article feed, newest publication
// first.
func (a *API) ListPublishedArticles(c *gin.Context) {
	pageIndex, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	page, err := a.articles.ListPublished(pageIndex, pageSize)
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

// ListMyArticles returns the current actor's own articles, optionally
// narrowed to one status. Deleted articles stay hidden unless asked for.
func (a *API) ListMyArticles(c *gin.Context) {
	pageIndex, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	filter := service.AuthorArticleFilter{PageIndex: pageIndex, PageSize: pageSize}
	if raw := c.Query("status"); raw != "" {
		status, ok := db.ParseArticleStatus(raw)
		if !ok {
			respondError(c, http.StatusBadRequest, "unknown status")
			return
		}
		filter.Status = &status
	}
	actor := CurrentActor(c)
	if actor.Role == db.RoleAdmin && c.Query("includeDeleted") == "true" {
		filter.IncludeDeleted = true
	}

	page, err := a.articles.ListByAuthor(actor.ID, filter)
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

// GetArticleBySlug returns one article with rendered content. Draft and
// archived articles stay visible to their author, published ones to
// everyone.
func (a *API) GetArticleBySlug(c *gin.Context) {
	article, err := a.articles.GetBySlug(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !auth.AuthorizeArticle(CurrentActor(c), auth.ArticleRead, article).Allowed() {
		respondForbidden(c, "you do not have permission to read this article")
		return
	}

	articles := []db.Article{*article}
	if err := a.attachArticleAggregates(articles); err != nil {
		respondServiceError(c, err)
		return
	}

	rendered, err := renderMarkdown(articles[0].Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := toArticleResponse(articles[0])
	resp.Content = articles[0].Content
	resp.HTML = rendered
	c.JSON(http.StatusOK, resp)
}

// UpdateArticle rewrites title, content and tags of an author's article
// while it has not been archived or deleted.
func (a *API) UpdateArticle(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req articleRequest
	if !bindJSON(c, &req, "title and content are required") {
		return
	}

	article, err := a.articles.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !auth.AuthorizeArticle(CurrentActor(c), auth.ArticleUpdate, article).Allowed() {
		respondForbidden(c, "you do not have permission to update this article")
		return
	}

	tags, err := a.tags.ResolveTags(req.TagIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := a.articles.Update(article, req.Title, req.Content, tags); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteArticle removes a draft outright or soft-deletes anything later.
func (a *API) DeleteArticle(c *gin.Context) {
	a.transitionArticle(c, auth.ArticleDelete, "you do not have permission to delete this article", a.articles.Delete)
}

// PublishArticle moves a draft to Published.
func (a *API) PublishArticle(c *gin.Context) {
	a.transitionArticle(c, auth.ArticlePublish, "you do not have permission to publish this article", a.articles.Publish)
}

// ArchiveArticle moves a published article to Archived.
func (a *API) ArchiveArticle(c *gin.Context) {
	a.transitionArticle(c, auth.ArticleArchive, "you do not have permission to archive this article", a.articles.Archive)
}

// UpvoteArticle records a positive vote on a published article.
func (a *API) UpvoteArticle(c *gin.Context) {
	a.voteArticle(c, true)
}

// DownvoteArticle records a negative vote on a published article.
func (a *API) DownvoteArticle(c *gin.Context) {
	a.voteArticle(c, false)
}

// UnvoteArticle removes the actor's vote; removing a vote that does not
// exist succeeds quietly.
func (a *API) UnvoteArticle(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := a.articles.GetByID(id); err != nil {
		respondServiceError(c, err)
		return
	}

	if err := a.votes.Unvote(CurrentActor(c).ID, db.VoteTargetArticle, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListArticleComments returns the top-level comment thread of a readable
// article, oldest first.
func (a *API) ListArticleComments(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	pageIndex, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	article, err := a.articles.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !auth.AuthorizeArticle(CurrentActor(c), auth.ArticleRead, article).Allowed() {
		respondForbidden(c, "you do not have permission to read this article")
		return
	}

	page, err := a.comments.ListByArticle(article.ID, pageIndex, pageSize)
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

// CreateArticleComment adds a top-level comment to a published article.
func (a *API) CreateArticleComment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req commentRequest
	if !bindJSON(c, &req, "body is required") {
		return
	}

	article, err := a.articles.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	actor := CurrentActor(c)
	if !auth.AuthorizeArticle(actor, auth.ArticleComment, article).Allowed() {
		respondForbidden(c, "you do not have permission to comment on this article")
		return
	}

	comment, err := a.comments.CreateForArticle(req.Body, actor.ID, article)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": comment.ID})
}

func (a *API) transitionArticle(c *gin.Context, op auth.ArticleOperation, denyMessage string, transition func(*db.Article) error) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	article, err := a.articles.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !auth.AuthorizeArticle(CurrentActor(c), op, article).Allowed() {
		respondForbidden(c, denyMessage)
		return
	}

	if err := transition(article); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) voteArticle(c *gin.Context, positive bool) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	article, err := a.articles.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	actor := CurrentActor(c)
	if !auth.AuthorizeArticle(actor, auth.ArticleVote, article).Allowed() {
		respondForbidden(c, "you do not have permission to vote on this article")
		return
	}

	if _, err := a.votes.Vote(actor.ID, db.VoteTargetArticle, article.ID, positive); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// attachArticleAggregates fills vote and comment counters on a listing page
// in two grouped queries.
func (a *API) attachArticleAggregates(articles []db.Article) error {
	if len(articles) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(articles))
	for _, article := range articles {
		ids = append(ids, article.ID)
	}

	votes, err := a.votes.CountsByTarget(db.VoteTargetArticle, ids)
	if err != nil {
		return err
	}
	comments, err := a.comments.CountByArticles(ids)
	if err != nil {
		return err
	}

	for i := range articles {
		counts := votes[articles[i].ID]
		articles[i].UpVotes = counts.Up
		articles[i].DownVotes = counts.Down
		articles[i].CommentCount = comments[articles[i].ID]
	}
	return nil
}

// attachCommentAggregates fills vote counters for comments and their
// preloaded replies.
func (a *API) attachCommentAggregates(comments []db.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(comments))
	for _, comment := range comments {
		ids = append(ids, comment.ID)
		for _, reply := range comment.Replies {
			ids = append(ids, reply.ID)
		}
	}

	votes, err := a.votes.CountsByTarget(db.VoteTargetComment, ids)
	if err != nil {
		return err
	}

	for i := range comments {
		counts := votes[comments[i].ID]
		comments[i].UpVotes = counts.Up
		comments[i].DownVotes = counts.Down
		for j := range comments[i].Replies {
			replyCounts := votes[comments[i].Replies[j].ID]
			comments[i].Replies[j].UpVotes = replyCounts.Up
			comments[i].Replies[j].DownVotes = replyCounts.Down
		}
	}
	return nil
}
