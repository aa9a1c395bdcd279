package db

import "time"

// MenuItem 描述导航菜单中的一个节点
// ParentID 为空表示顶级菜单；PageID 不为空时 Path 由页面 slug 推导
// SortOrder 值越小越靠前，只在同一父级内比较
type MenuItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Label        string    `gorm:"size:120;not null" json:"label"`
	Path         string    `gorm:"size:500" json:"path"`
	PageID       *uint     `gorm:"index" json:"page_id"`
	Icon         string    `gorm:"size:50" json:"icon"`
	ParentID     *uint     `gorm:"index" json:"parent_id"`
	SortOrder    int       `gorm:"not null;default:0" json:"order"`
	IsVisible    bool      `json:"is_visible"`
	OpenInNewTab bool      `json:"open_in_new_tab"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName 返回自定义表名
func (MenuItem) TableName() string {
	return "menu_items"
}
