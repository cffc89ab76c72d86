package services

import (
	"context"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// LastPage asks Paginate for the final page, whatever its number.
const LastPage = -1

// Page is one slice of a filtered, ordered listing.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	NumPages int   `json:"num_pages"`
	Total    int64 `json:"total"`
}

// ListOptions describes a list endpoint: fixed page size, default ordering,
// optional search scope and the relations to preload.
type ListOptions struct {
	PageSize int
	Order    string
	Filter   func(*gorm.DB) *gorm.DB
	Preloads []string
}

// ParsePage reads the page query parameter. Empty means the first page.
func ParsePage(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	if raw == "last" {
		return LastPage, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, NewValidationError("page", "page number is not an integer greater than zero")
	}
	return page, nil
}

// Paginate filters first, then counts and slices the filtered set.
// A page past the end is ErrNotFound; an empty listing still has one page.
func Paginate[T any](ctx context.Context, db *gorm.DB, opts ListOptions, page int) (*Page[T], error) {
	size := opts.PageSize
	if size < 1 {
		size = 1
	}
	if page < 1 && page != LastPage {
		return nil, NewValidationError("page", "page number is not an integer greater than zero")
	}

	var scopes []func(*gorm.DB) *gorm.DB
	if opts.Filter != nil {
		scopes = append(scopes, opts.Filter)
	}

	var total int64
	if err := db.WithContext(ctx).Model(new(T)).Scopes(scopes...).Count(&total).Error; err != nil {
		return nil, err
	}

	numPages := 1
	if total > 0 {
		numPages = int((total + int64(size) - 1) / int64(size))
	}
	if page == LastPage {
		page = numPages
	}
	if page > numPages {
		return nil, ErrNotFound
	}

	query := db.WithContext(ctx).Model(new(T)).Scopes(scopes...)
	for _, rel := range opts.Preloads {
		query = query.Preload(rel)
	}
	if opts.Order != "" {
		query = query.Order(opts.Order)
	}

	items := make([]T, 0, size)
	if err := query.Offset((page - 1) * size).Limit(size).Find(&items).Error; err != nil {
		return nil, err
	}

	return &Page[T]{
		Items:    items,
		Page:     page,
		PageSize: size,
		NumPages: numPages,
		Total:    total,
	}, nil
}

// FindByID loads one record with the given relations preloaded.
func FindByID[T any](ctx context.Context, db *gorm.DB, id uint, preloads ...string) (*T, error) {
	query := db.WithContext(ctx)
	for _, rel := range preloads {
		query = query.Preload(rel)
	}
	record := new(T)
	if err := query.First(record, id).Error; err != nil {
		return nil, translateLookupError(err)
	}
	return record, nil
}
