package db

import "time"

// Album 定义相册模型，PhotoCount 由查询时统计填充
type Album struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	CoverImageURL string    `gorm:"size:1000" json:"cover_image_url"`
	PhotoCount    int64     `gorm:"-" json:"photo_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Photo 定义图库图片模型
type Photo struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"size:1000;not null" json:"image_url"`
	ImageWidth  int       `json:"image_width"`
	ImageHeight int       `json:"image_height"`
	Category    string    `gorm:"size:50" json:"category"`
	AlbumID     *uint     `gorm:"index" json:"album_id"`
	AlbumTitle  string    `gorm:"-" json:"album_title,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
