package service

import (
	"errors"
	"testing"
)

func TestSettingsDefaultsWhenNothingStored(t *testing.T) {
	svc := NewSettingsService(setupTestDB(t))

	hero, err := svc.Hero()
	if err != nil {
		t.Fatalf("get hero failed: %v", err)
	}
	if hero != DefaultHeroSettings() {
		t.Fatalf("expected default hero settings, got %+v", hero)
	}

	ticker, err := svc.Ticker()
	if err != nil {
		t.Fatalf("get ticker failed: %v", err)
	}
	if ticker.Mode != TickerModeDefault || !ticker.IsEnabled || ticker.BadgeText != "Latest News" {
		t.Fatalf("unexpected ticker defaults: %+v", ticker)
	}
}

func TestUpdateHeroMergesPartialInput(t *testing.T) {
	svc := NewSettingsService(setupTestDB(t))

	updated, err := svc.UpdateHero(HeroSettingsUpdate{
		HeroTitleLine1: stringPtr("  Welcome to  "),
		ShowParticles:  boolPtr(false),
	})
	if err != nil {
		t.Fatalf("update hero failed: %v", err)
	}
	if updated.HeroTitleLine1 != "Welcome to" || updated.ShowParticles {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.HeroTitleLine2 != DefaultHeroSettings().HeroTitleLine2 {
		t.Fatalf("untouched field changed: %q", updated.HeroTitleLine2)
	}

	second, err := svc.UpdateHero(HeroSettingsUpdate{BackgroundType: stringPtr("Video"), HeroVideoURL: stringPtr("/static/uploads/intro.mp4")})
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	if second.HeroTitleLine1 != "Welcome to" || second.BackgroundType != "video" {
		t.Fatalf("expected earlier update to persist: %+v", second)
	}

	stored, err := svc.Hero()
	if err != nil {
		t.Fatalf("reload hero failed: %v", err)
	}
	if stored != second {
		t.Fatalf("stored settings differ: %+v vs %+v", stored, second)
	}

	if _, err := svc.UpdateHero(HeroSettingsUpdate{BackgroundType: stringPtr("gif")}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateTickerValidatesMode(t *testing.T) {
	svc := NewSettingsService(setupTestDB(t))

	if _, err := svc.UpdateTicker(TickerSettingsUpdate{Mode: stringPtr("random")}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	ticker, err := svc.UpdateTicker(TickerSettingsUpdate{
		Mode:       stringPtr("manual"),
		ManualText: stringPtr("Plant shutdown on Friday"),
		IsEnabled:  boolPtr(false),
	})
	if err != nil {
		t.Fatalf("update ticker failed: %v", err)
	}
	if ticker.Mode != TickerModeManual || ticker.IsEnabled || ticker.Icon != "sparkles" {
		t.Fatalf("unexpected ticker: %+v", ticker)
	}

	reloaded, err := svc.Ticker()
	if err != nil {
		t.Fatalf("reload ticker failed: %v", err)
	}
	if reloaded != ticker {
		t.Fatalf("expected %+v, got %+v", ticker, reloaded)
	}
}
