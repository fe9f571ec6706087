// Package pagination windows ordered result sets. It never imposes an
// ordering itself; callers hand it a source already sorted the way they want
// it exposed.
package pagination

import "gorm.io/gorm"

// Page is the shape every collection-returning endpoint responds with.
// PageIndex is 1-based.
type Page[T any] struct {
	Items       []T  `json:"items"`
	Count       int  `json:"count"`
	PageIndex   int  `json:"pageIndex"`
	TotalPages  int  `json:"totalPages"`
	HasPrevious bool `json:"hasPreviousPage"`
	HasNext     bool `json:"hasNextPage"`
}

// New assembles a page from an already-windowed item slice and the full
// source count. A pageIndex past the last page yields empty items with Count
// still reflecting the whole source.
func New[T any](items []T, count, pageIndex, pageSize int) Page[T] {
	totalPages := 0
	if count > 0 {
		totalPages = (count + pageSize - 1) / pageSize
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:       items,
		Count:       count,
		PageIndex:   pageIndex,
		TotalPages:  totalPages,
		HasPrevious: pageIndex > 1,
		HasNext:     pageIndex < totalPages,
	}
}

// FromSlice windows an in-memory ordered slice.
func FromSlice[T any](source []T, pageIndex, pageSize int) Page[T] {
	offset := (pageIndex - 1) * pageSize
	var items []T
	if offset < len(source) {
		end := offset + pageSize
		if end > len(source) {
			end = len(source)
		}
		items = source[offset:end]
	}
	return New(items, len(source), pageIndex, pageSize)
}

// Map converts a page's items while keeping the paging metadata, used by
// handlers to turn model pages into response pages.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, fn(item))
	}
	return Page[U]{
		Items:       items,
		Count:       p.Count,
		PageIndex:   p.PageIndex,
		TotalPages:  p.TotalPages,
		HasPrevious: p.HasPrevious,
		HasNext:     p.HasNext,
	}
}

// FromQuery windows an ordered gorm query: one count over the full source,
// one offset/limit fetch for the requested page.
func FromQuery[T any](query *gorm.DB, pageIndex, pageSize int) (Page[T], error) {
	var count int64
	if err := query.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return Page[T]{}, err
	}

	var items []T
	if err := query.Session(&gorm.Session{}).
		Offset((pageIndex - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error; err != nil {
		return Page[T]{}, err
	}

	return New(items, int(count), pageIndex, pageSize), nil
}
