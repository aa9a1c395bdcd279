package service

import (
	"errors"
	"strings"

	"github.com/intraportal/internal/db"
	"gorm.io/gorm"
)

// ErrAlbumNotFound is returned for an unknown album id.
var ErrAlbumNotFound = errors.New("album not found")

// AlbumService groups photos into albums.
type AlbumService struct {
	db *gorm.DB
}

// AlbumInput holds the fields of a new album.
type AlbumInput struct {
	Title         string
	Description   string
	CoverImageURL string
}

// AlbumUpdate carries optional changes.
type AlbumUpdate struct {
	Title         *string
	Description   *string
	CoverImageURL *string
}

// NewAlbumService creates an AlbumService.
func NewAlbumService(gdb *gorm.DB) *AlbumService {
	return &AlbumService{db: gdb}
}

// List returns the newest albums first with their photo counts.
func (s *AlbumService) List(limit int) ([]db.Album, error) {
	var albums []db.Album
	if err := s.db.Order("created_at desc").Order("id desc").
		Limit(normalizeLimit(limit, 50)).
		Find(&albums).Error; err != nil {
		return nil, err
	}
	if err := s.attachCounts(albums); err != nil {
		return nil, err
	}
	return albums, nil
}

// Get fetches an album with its photo count.
func (s *AlbumService) Get(id uint) (*db.Album, error) {
	var album db.Album
	if err := s.db.First(&album, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlbumNotFound
		}
		return nil, err
	}
	albums := []db.Album{album}
	if err := s.attachCounts(albums); err != nil {
		return nil, err
	}
	return &albums[0], nil
}

// Create inserts an album.
func (s *AlbumService) Create(input AlbumInput) (*db.Album, error) {
	album := db.Album{
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		CoverImageURL: strings.TrimSpace(input.CoverImageURL),
	}
	if album.Title == "" {
		return nil, required("title")
	}
	if err := s.db.Create(&album).Error; err != nil {
		return nil, err
	}
	return &album, nil
}

// Update applies the non-nil fields of input.
func (s *AlbumService) Update(id uint, input AlbumUpdate) (*db.Album, error) {
	var album db.Album
	if err := s.db.First(&album, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlbumNotFound
		}
		return nil, err
	}
	applyString(&album.Title, input.Title)
	applyString(&album.Description, input.Description)
	applyString(&album.CoverImageURL, input.CoverImageURL)
	if album.Title == "" {
		return nil, required("title")
	}
	if err := s.db.Save(&album).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Delete removes an album. Its photos stay in the gallery without an album.
func (s *AlbumService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&db.Album{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAlbumNotFound
		}
		return tx.Model(&db.Photo{}).Where("album_id = ?", id).Update("album_id", nil).Error
	})
}

func (s *AlbumService) attachCounts(albums []db.Album) error {
	if len(albums) == 0 {
		return nil
	}
	ids := make([]uint, len(albums))
	for i, album := range albums {
		ids[i] = album.ID
	}

	var rows []struct {
		AlbumID uint
		Total   int64
	}
	if err := s.db.Model(&db.Photo{}).
		Select("album_id, COUNT(*) AS total").
		Where("album_id IN ?", ids).
		Group("album_id").
		Scan(&rows).Error; err != nil {
		return err
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.AlbumID] = row.Total
	}
	for i := range albums {
		albums[i].PhotoCount = counts[albums[i].ID]
	}
	return nil
}
