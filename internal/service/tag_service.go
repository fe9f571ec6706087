package service

import (
	"errors"

	"github.com/inkpress/internal/db"
	"gorm.io/gorm"
)

// TagService is the tag catalog. Tags are reference data: created by admins,
// soft-deleted rather than removed, and invisible everywhere once deleted.
type TagService struct {
	db *gorm.DB
}

// NewTagService creates a TagService instance.
func NewTagService(gdb *gorm.DB) *TagService {
	return &TagService{db: gdb}
}

// ResolveTags maps tag ids to live tags. Receiving fewer tags than ids means
// at least one id is unknown or soft-deleted, which callers treat as a
// validation failure on the request.
func (s *TagService) ResolveTags(ids []uint) ([]db.Tag, error) {
	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return nil, nil
	}

	var tags []db.Tag
	if err := s.db.
		Where("id IN ? AND is_deleted = ?", unique, false).
		Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(unique) {
		return nil, ErrUnknownTag
	}
	return tags, nil
}

// List returns live tags ordered by name.
func (s *TagService) List() ([]db.Tag, error) {
	var tags []db.Tag
	if err := s.db.
		Where("is_deleted = ?", false).
		Order("name asc").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetBySlug fetches a live tag by slug.
func (s *TagService) GetBySlug(slug string) (*db.Tag, error) {
	var tag db.Tag
	if err := s.db.
		Where("slug = ? AND is_deleted = ?", slug, false).
		First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// Create adds a tag to the catalog. The slug is derived from the name and
// must be unique across all tags, deleted ones included.
func (s *TagService) Create(name string) (*db.Tag, error) {
	tag := &db.Tag{Name: name, Slug: slugify(name)}
	if err := s.db.Create(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTagExists
		}
		return nil, err
	}
	return tag, nil
}

// SoftDelete hides a tag from listings and future article edits. Existing
// article associations are left alone.
func (s *TagService) SoftDelete(id uint) error {
	result := s.db.Model(&db.Tag{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTagNotFound
	}
	return nil
}
