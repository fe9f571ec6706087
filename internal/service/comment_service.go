package service

import (
	"errors"
	"strings"

	"github.com/inkpress/internal/db"
	"github.com/inkpress/internal/pagination"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// commentSanitizer strips markup we will not render from stored bodies.
var commentSanitizer = bluemonday.UGCPolicy()

// CommentService owns comment threads: top-level comments on published
// articles, single-level replies and soft deletion. Deletion keeps the row
// so threads and vote history stay intact.
type CommentService struct {
	db *gorm.DB
}

// NewCommentService creates a CommentService instance.
func NewCommentService(gdb *gorm.DB) *CommentService {
	return &CommentService{db: gdb}
}

// GetByID fetches a comment by id.
func (s *CommentService) GetByID(id uint) (*db.Comment, error) {
	var comment db.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// CreateForArticle adds a top-level comment to an article.
func (s *CommentService) CreateForArticle(body string, ownerID uint, article *db.Article) (*db.Comment, error) {
	comment := &db.Comment{
		Body:      sanitizeBody(body),
		OwnerID:   ownerID,
		ArticleID: article.ID,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// Reply nests a new comment exactly one level under parent. replyToID is the
// optional mentioned user; threading does not depend on it.
func (s *CommentService) Reply(body string, ownerID uint, parent *db.Comment, replyToID *uint) (*db.Comment, error) {
	reply := &db.Comment{
		Body:        sanitizeBody(body),
		OwnerID:     ownerID,
		ArticleID:   parent.ArticleID,
		ReplyFromID: &parent.ID,
		ReplyToID:   replyToID,
	}
	if err := s.db.Create(reply).Error; err != nil {
		return nil, err
	}
	return reply, nil
}

// Delete soft-deletes a comment. The body column is untouched; readers get
// the placeholder through DisplayBody.
func (s *CommentService) Delete(comment *db.Comment) error {
	if comment.IsDeleted {
		return nil
	}
	if err := s.db.Model(&db.Comment{}).
		Where("id = ?", comment.ID).
		Update("is_deleted", true).Error; err != nil {
		return err
	}
	comment.IsDeleted = true
	return nil
}

// ListByArticle returns an article's top-level comments oldest first, with
// owners and replies preloaded.
func (s *CommentService) ListByArticle(articleID uint, pageIndex, pageSize int) (pagination.Page[db.Comment], error) {
	query := s.db.Model(&db.Comment{}).
		Preload("Owner").
		Preload("Replies", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("commented_at asc, id asc")
		}).
		Preload("Replies.Owner").
		Preload("Replies.ReplyTo").
		Where("article_id = ? AND reply_from_id IS NULL", articleID).
		Order("commented_at asc, id asc")
	return pagination.FromQuery[db.Comment](query, pageIndex, pageSize)
}

// ListReplies returns a comment's replies oldest first.
func (s *CommentService) ListReplies(commentID uint, pageIndex, pageSize int) (pagination.Page[db.Comment], error) {
	query := s.db.Model(&db.Comment{}).
		Preload("Owner").
		Preload("ReplyTo").
		Where("reply_from_id = ?", commentID).
		Order("commented_at asc, id asc")
	return pagination.FromQuery[db.Comment](query, pageIndex, pageSize)
}

// CountByArticles counts comments for a batch of articles in one query.
func (s *CommentService) CountByArticles(articleIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(articleIDs))
	if len(articleIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ArticleID uint
		Total     int64
	}
	if err := s.db.Model(&db.Comment{}).
		Select("article_id, COUNT(*) AS total").
		Where("article_id IN ?", articleIDs).
		Group("article_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ArticleID] = row.Total
	}
	return counts, nil
}

func sanitizeBody(body string) string {
	return strings.TrimSpace(commentSanitizer.Sanitize(body))
}
