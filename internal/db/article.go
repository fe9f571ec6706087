package db

import "time"

// ArticleStatus orders the article lifecycle. The ordering is meaningful:
// several permission checks compare with <= Published.
type ArticleStatus uint8

const (
	ArticleDraft ArticleStatus = iota
	ArticlePublished
	ArticleArchived
	ArticleDeleted
)

// String returns the lowercase status name used in API payloads.
func (s ArticleStatus) String() string {
	switch s {
	case ArticleDraft:
		return "draft"
	case ArticlePublished:
		return "published"
	case ArticleArchived:
		return "archived"
	case ArticleDeleted:
		return "deleted"
	}
	return "unknown"
}

// ParseArticleStatus maps a status name back to its value.
func ParseArticleStatus(name string) (ArticleStatus, bool) {
	switch name {
	case "draft":
		return ArticleDraft, true
	case "published":
		return ArticlePublished, true
	case "archived":
		return ArticleArchived, true
	case "deleted":
		return ArticleDeleted, true
	}
	return 0, false
}

// Article is the writer-of-record for a post. Status transitions are owned by
// the article service; PublishedAt is set the first time the article reaches
// Published and never cleared afterwards.
type Article struct {
	ID             uint   `gorm:"primaryKey"`
	Slug           string `gorm:"size:255;index;not null"`
	Title          string `gorm:"size:255;not null"`
	Content        string
	Status         ArticleStatus `gorm:"not null;default:0"`
	CreatedAt      time.Time
	LastModifiedAt time.Time `gorm:"autoUpdateTime"`
	PublishedAt    *time.Time
	AuthorID       uint `gorm:"index;not null"`
	Author         User
	Tags           []Tag `gorm:"many2many:article_tags;"`

	// Aggregates attached by handlers, never persisted.
	UpVotes      int64 `gorm:"-"`
	DownVotes    int64 `gorm:"-"`
	CommentCount int64 `gorm:"-"`
}
