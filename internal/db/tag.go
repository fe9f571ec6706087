package db

// Tag is immutable reference data attached many-to-many to articles.
// Soft-deleted tags stay attached to existing articles but are excluded from
// listings and from valid-tag checks on article create and update.
type Tag struct {
	ID        uint   `gorm:"primaryKey"`
	Slug      string `gorm:"size:64;uniqueIndex;not null"`
	Name      string `gorm:"size:64;not null"`
	IsDeleted bool   `gorm:"not null;default:false"`
	Articles  []Article `gorm:"many2many:article_tags;"`
}
