package db

import "time"

// News is an announcement shown on the home page and the news list.
type News struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Summary    string    `gorm:"type:text" json:"summary"`
	Content    string    `gorm:"type:text" json:"content"`
	ImageURL   string    `gorm:"size:1000" json:"image_url"`
	Category   string    `gorm:"size:50;not null" json:"category"`
	IsFeatured bool      `gorm:"index" json:"is_featured"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName keeps the uncountable noun as-is.
func (News) TableName() string {
	return "news"
}

// Event is a calendar entry. EventDate uses the YYYY-MM-DD layout so that
// lexical and chronological ordering agree.
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	EventDate   string    `gorm:"size:10;index;not null" json:"event_date"`
	EventType   string    `gorm:"size:30;not null" json:"event_type"`
	Location    string    `gorm:"size:255" json:"location"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Employee is a directory entry.
type Employee struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:120;not null;index" json:"name"`
	Email      string    `gorm:"size:255;not null" json:"email"`
	Department string    `gorm:"size:120;not null;index" json:"department"`
	Position   string    `gorm:"size:120;not null" json:"position"`
	Phone      string    `gorm:"size:50" json:"phone"`
	AvatarURL  string    `gorm:"size:1000" json:"avatar_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
