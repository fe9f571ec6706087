package handler

import (
	"github.com/inkpress/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	articles *service.ArticleService
	comments *service.CommentService
	votes    *service.VoteService
	tags     *service.TagService
	users    *service.UserService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB) *API {
	return &API{
		db:       gdb,
		articles: service.NewArticleService(gdb),
		comments: service.NewCommentService(gdb),
		votes:    service.NewVoteService(gdb),
		tags:     service.NewTagService(gdb),
		users:    service.NewUserService(gdb, service.LogEmailSender{}),
	}
}

// Users exposes the user service for startup tasks.
func (a *API) Users() *service.UserService {
	return a.users
}
