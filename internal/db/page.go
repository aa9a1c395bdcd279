package db

import "time"

// Page represents a block-composed page addressed publicly by slug.
type Page struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	Title           string      `gorm:"size:200;not null" json:"title"`
	Slug            string      `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Description     string      `gorm:"type:text" json:"description"`
	Template        string      `gorm:"size:50" json:"template"`
	IsPublished     bool        `json:"is_published"`
	MetaTitle       string      `gorm:"size:200" json:"meta_title"`
	MetaDescription string      `gorm:"type:text" json:"meta_description"`
	Blocks          []PageBlock `gorm:"constraint:OnDelete:CASCADE" json:"blocks"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// PageBlock stores one typed block of a page. BlockID is the client-visible id.
type PageBlock struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	PageID    uint    `gorm:"index;not null" json:"-"`
	BlockID   string  `gorm:"size:64;not null" json:"id"`
	Type      string  `gorm:"size:40;not null" json:"type"`
	Content   JSONMap `gorm:"type:text" json:"content"`
	SortOrder int     `gorm:"not null;default:0" json:"order"`
}

// TableName 指定自定义表名。
func (PageBlock) TableName() string {
	return "page_blocks"
}
