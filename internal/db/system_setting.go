package db

import "time"

// SystemSetting 存储后台可配置的系统级键值对。
type SystemSetting struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"size:100;uniqueIndex;not null"`
	Value     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 自定义表名以保持命名一致。
func (SystemSetting) TableName() string {
	return "system_settings"
}

const (
	// SettingKeyHero 表示首页 Hero 区域配置。
	SettingKeyHero = "hero_settings"
	// SettingKeyTicker 表示底部滚动公告配置。
	SettingKeyTicker = "ticker_settings"
)
