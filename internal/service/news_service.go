package service

import (
	"errors"
	"strings"

	"github.com/intraportal/internal/db"
	"gorm.io/gorm"
)

// ErrNewsNotFound is returned for an unknown news id.
var ErrNewsNotFound = errors.New("news not found")

// NewsCategories lists the categories offered by the admin form.
var NewsCategories = []string{"general", "production", "safety", "hr", "business", "sustainability"}

// NewsService handles announcements.
type NewsService struct {
	db *gorm.DB
}

// NewsFilter narrows List. A nil Featured returns both kinds.
type NewsFilter struct {
	Featured *bool
	Limit    int
}

// NewsInput holds the fields of a new announcement.
type NewsInput struct {
	Title      string
	Summary    string
	Content    string
	ImageURL   string
	Category   string
	IsFeatured bool
}

// NewsUpdate carries optional changes.
type NewsUpdate struct {
	Title      *string
	Summary    *string
	Content    *string
	ImageURL   *string
	Category   *string
	IsFeatured *bool
}

// NewNewsService creates a NewsService.
func NewNewsService(gdb *gorm.DB) *NewsService {
	return &NewsService{db: gdb}
}

// List returns the newest announcements first.
func (s *NewsService) List(filter NewsFilter) ([]db.News, error) {
	query := s.db.Model(&db.News{})
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}
	var items []db.News
	if err := query.Order("created_at desc").Order("id desc").
		Limit(normalizeLimit(filter.Limit, 20)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Featured returns up to n announcements for the home page highlight.
func (s *NewsService) Featured(n int) ([]db.News, error) {
	items, err := s.List(NewsFilter{Limit: maxListLimit})
	if err != nil {
		return nil, err
	}
	return SelectFeatured(items, n), nil
}

// SelectFeatured keeps the featured items in their original order. When none
// is featured the first n items stand in. n <= 0 means no cap.
func SelectFeatured(items []db.News, n int) []db.News {
	featured := make([]db.News, 0, len(items))
	for _, item := range items {
		if item.IsFeatured {
			featured = append(featured, item)
		}
	}
	if len(featured) == 0 {
		featured = append(featured, items...)
	}
	if n > 0 && len(featured) > n {
		featured = featured[:n]
	}
	return featured
}

// Get fetches an announcement by id.
func (s *NewsService) Get(id uint) (*db.News, error) {
	var item db.News
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts an announcement. Category defaults to general.
func (s *NewsService) Create(input NewsInput) (*db.News, error) {
	item := db.News{
		Title:      strings.TrimSpace(input.Title),
		Summary:    strings.TrimSpace(input.Summary),
		Content:    strings.TrimSpace(input.Content),
		ImageURL:   strings.TrimSpace(input.ImageURL),
		Category:   normalizeCategory(input.Category),
		IsFeatured: input.IsFeatured,
	}
	if err := validateNews(item); err != nil {
		return nil, err
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update applies the non-nil fields of input.
func (s *NewsService) Update(id uint, input NewsUpdate) (*db.News, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	applyString(&item.Title, input.Title)
	applyString(&item.Summary, input.Summary)
	applyString(&item.Content, input.Content)
	applyString(&item.ImageURL, input.ImageURL)
	if input.Category != nil {
		item.Category = normalizeCategory(*input.Category)
	}
	if input.IsFeatured != nil {
		item.IsFeatured = *input.IsFeatured
	}
	if err := validateNews(*item); err != nil {
		return nil, err
	}
	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an announcement.
func (s *NewsService) Delete(id uint) error {
	result := s.db.Delete(&db.News{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNewsNotFound
	}
	return nil
}

// Count returns the number of announcements.
func (s *NewsService) Count() (int64, error) {
	var count int64
	err := s.db.Model(&db.News{}).Count(&count).Error
	return count, err
}

func validateNews(item db.News) error {
	if item.Title == "" {
		return required("title")
	}
	if item.Content == "" {
		return required("content")
	}
	return nil
}

func normalizeCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return "general"
	}
	return category
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
