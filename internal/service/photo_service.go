package service

import (
	"errors"
	"strings"

	"github.com/intraportal/internal/db"
	"gorm.io/gorm"
)

var ErrPhotoNotFound = errors.New("photo not found")

// ErrPhotoImageMissing is also a validation error.
var ErrPhotoImageMissing error = &ValidationError{Field: "image_url", Message: "photo image is required"}

const maxListLimit = 200

// PhotoService handles gallery photo CRUD.
type PhotoService struct {
	db *gorm.DB
}

// PhotoFilter describes filters for listing photos.
type PhotoFilter struct {
	AlbumID  *uint
	Category string
	Limit    int
}

// PhotoInput represents fields accepted when creating a photo.
type PhotoInput struct {
	Title       string
	Description string
	ImageURL    string
	ImageWidth  int
	ImageHeight int
	Category    string
	AlbumID     *uint
}

// PhotoUpdate carries optional changes. AlbumID 0 detaches the photo.
type PhotoUpdate struct {
	Title       *string
	Description *string
	ImageURL    *string
	ImageWidth  *int
	ImageHeight *int
	Category    *string
	AlbumID     *uint
}

// NewPhotoService creates a PhotoService instance.
func NewPhotoService(gdb *gorm.DB) *PhotoService {
	return &PhotoService{db: gdb}
}

// List returns the newest photos first, each with its album title.
func (s *PhotoService) List(filter PhotoFilter) ([]db.Photo, error) {
	query := s.db.Model(&db.Photo{})
	if filter.AlbumID != nil {
		query = query.Where("album_id = ?", *filter.AlbumID)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}

	var items []db.Photo
	if err := query.Order("created_at desc").Order("id desc").
		Limit(normalizeLimit(filter.Limit, 50)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	if err := s.attachAlbumTitles(items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches a photo by id.
func (s *PhotoService) Get(id uint) (*db.Photo, error) {
	var item db.Photo
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	items := []db.Photo{item}
	if err := s.attachAlbumTitles(items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// Create inserts a new photo.
func (s *PhotoService) Create(input PhotoInput) (*db.Photo, error) {
	item := db.Photo{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		ImageWidth:  input.ImageWidth,
		ImageHeight: input.ImageHeight,
		Category:    strings.TrimSpace(input.Category),
		AlbumID:     nonZero(input.AlbumID),
	}
	if err := s.validatePhoto(item); err != nil {
		return nil, err
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return s.Get(item.ID)
}

// Update applies the non-nil fields of input.
func (s *PhotoService) Update(id uint, input PhotoUpdate) (*db.Photo, error) {
	var item db.Photo
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}

	applyString(&item.Title, input.Title)
	applyString(&item.Description, input.Description)
	applyString(&item.ImageURL, input.ImageURL)
	applyString(&item.Category, input.Category)
	if input.ImageWidth != nil {
		item.ImageWidth = *input.ImageWidth
	}
	if input.ImageHeight != nil {
		item.ImageHeight = *input.ImageHeight
	}
	if input.AlbumID != nil {
		item.AlbumID = nonZero(input.AlbumID)
	}
	if err := s.validatePhoto(item); err != nil {
		return nil, err
	}
	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Delete removes a photo.
func (s *PhotoService) Delete(id uint) error {
	result := s.db.Delete(&db.Photo{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

func (s *PhotoService) validatePhoto(item db.Photo) error {
	if item.Title == "" {
		return required("title")
	}
	if item.ImageURL == "" {
		return ErrPhotoImageMissing
	}
	if item.ImageWidth < 0 || item.ImageHeight < 0 {
		return invalid("image_width", "must not be negative")
	}
	if item.AlbumID != nil {
		var count int64
		if err := s.db.Model(&db.Album{}).Where("id = ?", *item.AlbumID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return invalid("album_id", "album not found")
		}
	}
	return nil
}

func (s *PhotoService) attachAlbumTitles(items []db.Photo) error {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if item.AlbumID != nil {
			ids = append(ids, *item.AlbumID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var albums []db.Album
	if err := s.db.Select("id", "title").Where("id IN ?", ids).Find(&albums).Error; err != nil {
		return err
	}
	titles := make(map[uint]string, len(albums))
	for _, album := range albums {
		titles[album.ID] = album.Title
	}
	for i := range items {
		if items[i].AlbumID != nil {
			items[i].AlbumTitle = titles[*items[i].AlbumID]
		}
	}
	return nil
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
