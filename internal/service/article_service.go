package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/inkpress/internal/db"
	"github.com/inkpress/internal/pagination"
	"gorm.io/gorm"
)

// ArticleService owns the article lifecycle: Draft → Published → Archived,
// with any live status collapsing into Deleted. It does not re-check
// permissions; callers authorize before invoking a transition.
type ArticleService struct {
	db *gorm.DB
}

// ArticleInput carries the author-editable fields. Tags must already be
// resolved through TagService.ResolveTags.
type ArticleInput struct {
	Title    string
	Content  string
	AuthorID uint
	Tags     []db.Tag
}

// AuthorArticleFilter narrows an author's article listing. Status filters to
// one lifecycle state when set; IncludeDeleted is the explicit escape hatch
// for admin-facing reads, deleted articles are hidden otherwise.
type AuthorArticleFilter struct {
	Status         *db.ArticleStatus
	IncludeDeleted bool
	PageIndex      int
	PageSize       int
}

// NewArticleService creates an ArticleService instance.
func NewArticleService(gdb *gorm.DB) *ArticleService {
	return &ArticleService{db: gdb}
}

// GetByID fetches an article with author and tags preloaded.
func (s *ArticleService) GetByID(id uint) (*db.Article, error) {
	var article db.Article
	if err := s.db.Preload("Tags").Preload("Author").First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

// GetBySlug fetches an article by its slug. A freed slug can still sit on a
// soft-deleted row next to its live successor; the live article wins, the
// deleted one is returned only when nothing else carries the slug.
func (s *ArticleService) GetBySlug(slug string) (*db.Article, error) {
	var article db.Article
	if err := s.db.Preload("Tags").Preload("Author").
		Where("slug = ?", slug).
		Order(fmt.Sprintf("status = %d, id desc", db.ArticleDeleted)).
		First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

// ExistsBySlug reports whether a live (non-deleted) article already uses the
// slug.
func (s *ArticleService) ExistsBySlug(slug string) (bool, error) {
	var count int64
	err := s.db.Model(&db.Article{}).
		Where("slug = ? AND status <> ?", slug, db.ArticleDeleted).
		Count(&count).Error
	return count > 0, err
}

// Create persists a new draft for its author. The computed slug colliding
// with a live article is a conflict; the pre-check gives the friendly error
// and the live-slug unique index closes the race.
func (s *ArticleService) Create(input ArticleInput) (*db.Article, error) {
	slug := articleSlug(input.Title)

	taken, err := s.ExistsBySlug(slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	article := &db.Article{
		Title:    input.Title,
		Slug:     slug,
		Content:  input.Content,
		Status:   db.ArticleDraft,
		AuthorID: input.AuthorID,
	}
	if err := s.saveWithTags(article, input.Tags); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return article, nil
}

// Update rewrites the editable fields and replaces the tag set atomically.
// The slug is recomputed only when the title actually changed, so a
// content-only edit keeps the article's URL. It deliberately does not
// re-check slug collisions: the unique index is the enforcement point and a
// collision comes back as a conflict.
func (s *ArticleService) Update(article *db.Article, title, content string, tags []db.Tag) error {
	if title != article.Title {
		article.Slug = articleSlug(title)
	}
	article.Title = title
	article.Content = content
	article.LastModifiedAt = time.Now().UTC()

	if err := s.saveWithTags(article, tags); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSlugTaken
		}
		return err
	}
	return nil
}

// Publish moves a draft to Published. Publishing an already published
// article is a no-op so retried requests stay harmless. PublishedAt is set
// only the first time the article reaches Published.
func (s *ArticleService) Publish(article *db.Article) error {
	if article.Status == db.ArticlePublished {
		return nil
	}
	return s.changeStatus(article, db.ArticlePublished)
}

// Archive moves a published article to Archived; already archived is a
// no-op.
func (s *ArticleService) Archive(article *db.Article) error {
	if article.Status == db.ArticleArchived {
		return nil
	}
	return s.changeStatus(article, db.ArticleArchived)
}

// Delete removes a draft outright, cascading to its tag links, comments and
// votes. Anything past Draft is soft-deleted instead: the row stays so
// comment threads and vote history keep their anchor. Deleting a deleted
// article is a no-op.
func (s *ArticleService) Delete(article *db.Article) error {
	if article.Status == db.ArticleDraft {
		return s.hardDelete(article)
	}
	if article.Status == db.ArticleDeleted {
		return nil
	}
	return s.changeStatus(article, db.ArticleDeleted)
}

// CountPublishedByAuthor counts an author's published articles, shown on the
// public profile.
func (s *ArticleService) CountPublishedByAuthor(authorID uint) (int64, error) {
	var count int64
	err := s.db.Model(&db.Article{}).
		Where("author_id = ? AND status = ?", authorID, db.ArticlePublished).
		Count(&count).Error
	return count, err
}

// ListPublished returns published articles, newest publication first.
func (s *ArticleService) ListPublished(pageIndex, pageSize int) (pagination.Page[db.Article], error) {
	query := s.db.Model(&db.Article{}).
		Preload("Tags").
		Preload("Author").
		Where("status = ?", db.ArticlePublished).
		Order("published_at desc, id desc")
	return pagination.FromQuery[db.Article](query, pageIndex, pageSize)
}

// ListByAuthor returns one author's articles. Drafts sort by creation time,
// everything else by publication time, both newest first.
func (s *ArticleService) ListByAuthor(authorID uint, filter AuthorArticleFilter) (pagination.Page[db.Article], error) {
	query := s.db.Model(&db.Article{}).
		Preload("Tags").
		Preload("Author").
		Where("author_id = ?", authorID)

	orderBy := "published_at desc, id desc"
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
		if *filter.Status == db.ArticleDraft {
			orderBy = "created_at desc, id desc"
		}
	} else if !filter.IncludeDeleted {
		query = query.Where("status <> ?", db.ArticleDeleted)
	}

	return pagination.FromQuery[db.Article](query.Order(orderBy), filter.PageIndex, filter.PageSize)
}

// ListPublishedByTag returns published articles carrying the tag, newest
// publication first.
func (s *ArticleService) ListPublishedByTag(tagID uint, pageIndex, pageSize int) (pagination.Page[db.Article], error) {
	query := s.db.Model(&db.Article{}).
		Preload("Tags").
		Preload("Author").
		Joins("JOIN article_tags ON article_tags.article_id = articles.id").
		Where("article_tags.tag_id = ?", tagID).
		Where("articles.status = ?", db.ArticlePublished).
		Order("articles.published_at desc, articles.id desc")
	return pagination.FromQuery[db.Article](query, pageIndex, pageSize)
}

func (s *ArticleService) saveWithTags(article *db.Article, tags []db.Tag) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(article).Error; err != nil {
			return err
		}
		if err := tx.Model(article).Association("Tags").Replace(tags); err != nil {
			return err
		}
		return tx.Preload("Tags").Preload("Author").First(article, article.ID).Error
	})
}

// changeStatus persists a transition. Deleted is terminal: once there, no
// further status write is accepted.
func (s *ArticleService) changeStatus(article *db.Article, status db.ArticleStatus) error {
	if article.Status == db.ArticleDeleted {
		return nil
	}

	updates := map[string]interface{}{"status": status}
	var publishedAt *time.Time
	if status == db.ArticlePublished && article.PublishedAt == nil {
		now := time.Now().UTC()
		updates["published_at"] = now
		publishedAt = &now
	}

	if err := s.db.Model(&db.Article{}).
		Where("id = ?", article.ID).
		Updates(updates).Error; err != nil {
		return err
	}

	// The in-memory snapshot changes only once the write stuck.
	article.Status = status
	if publishedAt != nil {
		article.PublishedAt = publishedAt
	}
	return nil
}

func (s *ArticleService) hardDelete(article *db.Article) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var commentIDs []uint
		if err := tx.Model(&db.Comment{}).
			Where("article_id = ?", article.ID).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}

		if len(commentIDs) > 0 {
			if err := tx.Where("target_type = ? AND target_id IN ?", db.VoteTargetComment, commentIDs).
				Delete(&db.Vote{}).Error; err != nil {
				return err
			}
			if err := tx.Where("article_id = ?", article.ID).Delete(&db.Comment{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("target_type = ? AND target_id = ?", db.VoteTargetArticle, article.ID).
			Delete(&db.Vote{}).Error; err != nil {
			return err
		}

		if err := tx.Model(article).Association("Tags").Clear(); err != nil {
			return err
		}

		return tx.Delete(&db.Article{}, article.ID).Error
	})
}
