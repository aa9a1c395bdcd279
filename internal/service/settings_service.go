package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/intraportal/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HeroSettings configures the home page hero section.
type HeroSettings struct {
	HeroImageURL        string `json:"hero_image_url"`
	HeroVideoURL        string `json:"hero_video_url"`
	BackgroundType      string `json:"background_type"`
	VideoMuted          bool   `json:"video_muted"`
	HeroTitleLine1      string `json:"hero_title_line1"`
	HeroTitleLine2      string `json:"hero_title_line2"`
	HeroSubtitle        string `json:"hero_subtitle"`
	HeroCTA1Text        string `json:"hero_cta1_text"`
	HeroCTA1Link        string `json:"hero_cta1_link"`
	HeroCTA2Text        string `json:"hero_cta2_text"`
	HeroCTA2Link        string `json:"hero_cta2_link"`
	ShowTitle           bool   `json:"show_title"`
	ShowSubtitle        bool   `json:"show_subtitle"`
	ShowCTAButtons      bool   `json:"show_cta_buttons"`
	ShowParticles       bool   `json:"show_particles"`
	ShowGradientOverlay bool   `json:"show_gradient_overlay"`
	ShowFloatingCards   bool   `json:"show_floating_cards"`
	ShowWelcomeBadge    bool   `json:"show_welcome_badge"`
}

// HeroSettingsUpdate carries optional hero changes.
type HeroSettingsUpdate struct {
	HeroImageURL        *string `json:"hero_image_url"`
	HeroVideoURL        *string `json:"hero_video_url"`
	BackgroundType      *string `json:"background_type"`
	VideoMuted          *bool   `json:"video_muted"`
	HeroTitleLine1      *string `json:"hero_title_line1"`
	HeroTitleLine2      *string `json:"hero_title_line2"`
	HeroSubtitle        *string `json:"hero_subtitle"`
	HeroCTA1Text        *string `json:"hero_cta1_text"`
	HeroCTA1Link        *string `json:"hero_cta1_link"`
	HeroCTA2Text        *string `json:"hero_cta2_text"`
	HeroCTA2Link        *string `json:"hero_cta2_link"`
	ShowTitle           *bool   `json:"show_title"`
	ShowSubtitle        *bool   `json:"show_subtitle"`
	ShowCTAButtons      *bool   `json:"show_cta_buttons"`
	ShowParticles       *bool   `json:"show_particles"`
	ShowGradientOverlay *bool   `json:"show_gradient_overlay"`
	ShowFloatingCards   *bool   `json:"show_floating_cards"`
	ShowWelcomeBadge    *bool   `json:"show_welcome_badge"`
}

// TickerSettings configures the scrolling announcement bar.
type TickerSettings struct {
	Mode       string `json:"mode"`
	ManualText string `json:"manual_text"`
	Icon       string `json:"icon"`
	BadgeText  string `json:"badge_text"`
	IsEnabled  bool   `json:"is_enabled"`
}

// TickerSettingsUpdate carries optional ticker changes.
type TickerSettingsUpdate struct {
	Mode       *string `json:"mode"`
	ManualText *string `json:"manual_text"`
	Icon       *string `json:"icon"`
	BadgeText  *string `json:"badge_text"`
	IsEnabled  *bool   `json:"is_enabled"`
}

// Ticker modes: default scrolls the latest news, manual shows ManualText.
const (
	TickerModeDefault = "default"
	TickerModeManual  = "manual"
)

// DefaultHeroSettings is served until an admin saves the hero section.
func DefaultHeroSettings() HeroSettings {
	return HeroSettings{
		HeroImageURL:        "https://images.unsplash.com/photo-1721745250213-c3e1a2f4eeeb?w=1920&q=80",
		BackgroundType:      "image",
		VideoMuted:          true,
		HeroTitleLine1:      "Building Indonesia's",
		HeroTitleLine2:      "Steel Future",
		HeroSubtitle:        "PT Garuda Yamato Steel is committed to excellence in steel manufacturing, delivering premium quality products while prioritizing safety and sustainability.",
		HeroCTA1Text:        "Latest News",
		HeroCTA1Link:        "#news",
		HeroCTA2Text:        "Employee Directory",
		HeroCTA2Link:        "#directory",
		ShowTitle:           true,
		ShowSubtitle:        true,
		ShowCTAButtons:      true,
		ShowParticles:       true,
		ShowGradientOverlay: true,
		ShowFloatingCards:   true,
		ShowWelcomeBadge:    true,
	}
}

// DefaultTickerSettings is served until an admin saves the ticker.
func DefaultTickerSettings() TickerSettings {
	return TickerSettings{
		Mode:      TickerModeDefault,
		Icon:      "sparkles",
		BadgeText: "Latest News",
		IsEnabled: true,
	}
}

// SettingsService stores the hero and ticker configuration as JSON values in
// system_settings.
type SettingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a SettingsService.
func NewSettingsService(gdb *gorm.DB) *SettingsService {
	return &SettingsService{db: gdb}
}

// Hero returns the stored hero settings or the defaults.
func (s *SettingsService) Hero() (HeroSettings, error) {
	settings := DefaultHeroSettings()
	if err := loadSetting(s.db, db.SettingKeyHero, &settings); err != nil {
		return DefaultHeroSettings(), err
	}
	return settings, nil
}

// UpdateHero merges the non-nil fields of input into the stored settings.
func (s *SettingsService) UpdateHero(input HeroSettingsUpdate) (HeroSettings, error) {
	var result HeroSettings
	err := s.db.Transaction(func(tx *gorm.DB) error {
		settings := DefaultHeroSettings()
		if err := loadSetting(tx, db.SettingKeyHero, &settings); err != nil {
			return err
		}
		applyHero(&settings, input)
		if settings.BackgroundType != "image" && settings.BackgroundType != "video" {
			return invalid("background_type", "must be image or video")
		}
		result = settings
		return storeSetting(tx, db.SettingKeyHero, settings)
	})
	if err != nil {
		return HeroSettings{}, err
	}
	return result, nil
}

// Ticker returns the stored ticker settings or the defaults.
func (s *SettingsService) Ticker() (TickerSettings, error) {
	settings := DefaultTickerSettings()
	if err := loadSetting(s.db, db.SettingKeyTicker, &settings); err != nil {
		return DefaultTickerSettings(), err
	}
	return settings, nil
}

// UpdateTicker merges the non-nil fields of input into the stored settings.
func (s *SettingsService) UpdateTicker(input TickerSettingsUpdate) (TickerSettings, error) {
	var result TickerSettings
	err := s.db.Transaction(func(tx *gorm.DB) error {
		settings := DefaultTickerSettings()
		if err := loadSetting(tx, db.SettingKeyTicker, &settings); err != nil {
			return err
		}
		if input.Mode != nil {
			settings.Mode = strings.ToLower(strings.TrimSpace(*input.Mode))
		}
		if input.ManualText != nil {
			settings.ManualText = strings.TrimSpace(*input.ManualText)
		}
		if input.Icon != nil {
			settings.Icon = strings.TrimSpace(*input.Icon)
		}
		if input.BadgeText != nil {
			settings.BadgeText = strings.TrimSpace(*input.BadgeText)
		}
		if input.IsEnabled != nil {
			settings.IsEnabled = *input.IsEnabled
		}
		if settings.Mode != TickerModeDefault && settings.Mode != TickerModeManual {
			return invalid("mode", "must be default or manual")
		}
		result = settings
		return storeSetting(tx, db.SettingKeyTicker, settings)
	})
	if err != nil {
		return TickerSettings{}, err
	}
	return result, nil
}

func applyHero(settings *HeroSettings, input HeroSettingsUpdate) {
	applyString(&settings.HeroImageURL, input.HeroImageURL)
	applyString(&settings.HeroVideoURL, input.HeroVideoURL)
	applyString(&settings.HeroTitleLine1, input.HeroTitleLine1)
	applyString(&settings.HeroTitleLine2, input.HeroTitleLine2)
	applyString(&settings.HeroSubtitle, input.HeroSubtitle)
	applyString(&settings.HeroCTA1Text, input.HeroCTA1Text)
	applyString(&settings.HeroCTA1Link, input.HeroCTA1Link)
	applyString(&settings.HeroCTA2Text, input.HeroCTA2Text)
	applyString(&settings.HeroCTA2Link, input.HeroCTA2Link)
	if input.BackgroundType != nil {
		settings.BackgroundType = strings.ToLower(strings.TrimSpace(*input.BackgroundType))
	}
	flags := []struct {
		dst *bool
		src *bool
	}{
		{&settings.VideoMuted, input.VideoMuted},
		{&settings.ShowTitle, input.ShowTitle},
		{&settings.ShowSubtitle, input.ShowSubtitle},
		{&settings.ShowCTAButtons, input.ShowCTAButtons},
		{&settings.ShowParticles, input.ShowParticles},
		{&settings.ShowGradientOverlay, input.ShowGradientOverlay},
		{&settings.ShowFloatingCards, input.ShowFloatingCards},
		{&settings.ShowWelcomeBadge, input.ShowWelcomeBadge},
	}
	for _, flag := range flags {
		if flag.src != nil {
			*flag.dst = *flag.src
		}
	}
}

// loadSetting decodes the stored JSON over dst. A missing key leaves dst untouched.
func loadSetting(tx *gorm.DB, key string, dst any) error {
	var record db.SystemSetting
	if err := tx.Where("key = ?", key).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("load setting %s: %w", key, err)
	}
	if strings.TrimSpace(record.Value) == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(record.Value), dst); err != nil {
		return fmt.Errorf("decode setting %s: %w", key, err)
	}
	return nil
}

func storeSetting(tx *gorm.DB, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode setting %s: %w", key, err)
	}
	return upsertSetting(tx, key, string(raw))
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	setting := db.SystemSetting{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}
