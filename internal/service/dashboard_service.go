package service

import (
	"time"

	"github.com/intraportal/internal/db"
	"gorm.io/gorm"
)

// DashboardStats 汇总后台首页展示的内容数量。
type DashboardStats struct {
	News           int64     `json:"news"`
	Events         int64     `json:"events"`
	UpcomingEvents int64     `json:"upcoming_events"`
	Photos         int64     `json:"photos"`
	Albums         int64     `json:"albums"`
	Employees      int64     `json:"employees"`
	Pages          int64     `json:"pages"`
	PublishedPages int64     `json:"published_pages"`
	MenuItems      int64     `json:"menu_items"`
	Users          int64     `json:"users"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// DashboardService 提供后台概览统计。
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService 创建 DashboardService。
func NewDashboardService(gdb *gorm.DB) *DashboardService {
	return &DashboardService{db: gdb}
}

// Stats counts every content type. now decides which events are upcoming.
func (s *DashboardService) Stats(now time.Time) (DashboardStats, error) {
	stats := DashboardStats{GeneratedAt: now}

	counts := []struct {
		model any
		where string
		args  []any
		dst   *int64
	}{
		{model: &db.News{}, dst: &stats.News},
		{model: &db.Event{}, dst: &stats.Events},
		{model: &db.Event{}, where: "event_date >= ?", args: []any{now.Format(EventDateLayout)}, dst: &stats.UpcomingEvents},
		{model: &db.Photo{}, dst: &stats.Photos},
		{model: &db.Album{}, dst: &stats.Albums},
		{model: &db.Employee{}, dst: &stats.Employees},
		{model: &db.Page{}, dst: &stats.Pages},
		{model: &db.Page{}, where: "is_published = ?", args: []any{true}, dst: &stats.PublishedPages},
		{model: &db.MenuItem{}, dst: &stats.MenuItems},
		{model: &db.User{}, dst: &stats.Users},
	}
	for _, c := range counts {
		query := s.db.Model(c.model)
		if c.where != "" {
			query = query.Where(c.where, c.args...)
		}
		if err := query.Count(c.dst).Error; err != nil {
			return stats, err
		}
	}
	return stats, nil
}
