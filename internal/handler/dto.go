package handler

import (
	"time"

	"github.com/inkpress/internal/db"
)

type tagResponse struct {
	ID   uint   `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type userResponse struct {
	ProfileName string `json:"profileName"`
	DisplayName string `json:"displayName"`
}

type articleResponse struct {
	ID             uint          `json:"id"`
	Slug           string        `json:"slug"`
	Title          string        `json:"title"`
	Content        string        `json:"content,omitempty"`
	HTML           string        `json:"html,omitempty"`
	Status         string        `json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`
	LastModifiedAt time.Time     `json:"lastModifiedAt"`
	PublishedAt    *time.Time    `json:"publishedAt,omitempty"`
	Author         userResponse  `json:"author"`
	Tags           []tagResponse `json:"tags"`
	UpVotes        int64         `json:"upVotes"`
	DownVotes      int64         `json:"downVotes"`
	CommentCount   int64         `json:"commentCount"`
}

type commentResponse struct {
	ID          uint              `json:"id"`
	Body        string            `json:"body"`
	IsDeleted   bool              `json:"isDeleted"`
	CommentedAt time.Time         `json:"commentedAt"`
	Owner       userResponse      `json:"owner"`
	ReplyTo     *userResponse     `json:"replyTo,omitempty"`
	UpVotes     int64             `json:"upVotes"`
	DownVotes   int64             `json:"downVotes"`
	Replies     []commentResponse `json:"replies,omitempty"`
}

func toTagResponses(tags []db.Tag) []tagResponse {
	out := make([]tagResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tagResponse{ID: tag.ID, Slug: tag.Slug, Name: tag.Name})
	}
	return out
}

func toUserResponse(u db.User) userResponse {
	return userResponse{ProfileName: u.ProfileName, DisplayName: u.DisplayName}
}

// toArticleResponse maps an article for listings; the raw content is left
// out, detail handlers attach content and rendered HTML themselves.
func toArticleResponse(article db.Article) articleResponse {
	return articleResponse{
		ID:             article.ID,
		Slug:           article.Slug,
		Title:          article.Title,
		Status:         article.Status.String(),
		CreatedAt:      article.CreatedAt,
		LastModifiedAt: article.LastModifiedAt,
		PublishedAt:    article.PublishedAt,
		Author:         toUserResponse(article.Author),
		Tags:           toTagResponses(article.Tags),
		UpVotes:        article.UpVotes,
		DownVotes:      article.DownVotes,
		CommentCount:   article.CommentCount,
	}
}

// toCommentResponse masks deleted bodies for every reader.
func toCommentResponse(comment db.Comment) commentResponse {
	resp := commentResponse{
		ID:          comment.ID,
		Body:        comment.DisplayBody(),
		IsDeleted:   comment.IsDeleted,
		CommentedAt: comment.CommentedAt,
		Owner:       toUserResponse(comment.Owner),
		UpVotes:     comment.UpVotes,
		DownVotes:   comment.DownVotes,
	}
	if comment.ReplyTo != nil {
		replyTo := toUserResponse(*comment.ReplyTo)
		resp.ReplyTo = &replyTo
	}
	for _, reply := range comment.Replies {
		resp.Replies = append(resp.Replies, toCommentResponse(reply))
	}
	return resp
}
