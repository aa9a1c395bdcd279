package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/intraportal/internal/service"
	"github.com/intraportal/internal/view"
	"go.uber.org/zap"
)

// ListTemplates returns the page template catalogue.
func (a *API) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, a.templates.List())
}

func (a *API) GetTemplate(c *gin.Context) {
	tpl, err := a.templates.Get(c.Param("id"))
	if err != nil {
		a.respondServiceError(c, err, "failed to load template")
		return
	}
	c.JSON(http.StatusOK, tpl)
}

// ListIcons returns the icons selectable for menu items and feature blocks.
func (a *API) ListIcons(c *gin.Context) {
	c.JSON(http.StatusOK, view.IconOptions())
}

func (a *API) GetHeroSettings(c *gin.Context) {
	settings, err := a.settings.Hero()
	if err != nil {
		a.respondServiceError(c, err, "failed to load hero settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateHeroSettings merges the sent fields into the stored hero settings.
func (a *API) UpdateHeroSettings(c *gin.Context) {
	var payload service.HeroSettingsUpdate
	if !bindJSON(c, &payload, "invalid hero settings") {
		return
	}
	settings, err := a.settings.UpdateHero(payload)
	if err != nil {
		a.respondServiceError(c, err, "failed to save hero settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (a *API) GetTickerSettings(c *gin.Context) {
	settings, err := a.settings.Ticker()
	if err != nil {
		a.respondServiceError(c, err, "failed to load ticker settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateTickerSettings merges the sent fields into the stored ticker settings.
func (a *API) UpdateTickerSettings(c *gin.Context) {
	var payload service.TickerSettingsUpdate
	if !bindJSON(c, &payload, "invalid ticker settings") {
		return
	}
	settings, err := a.settings.UpdateTicker(payload)
	if err != nil {
		a.respondServiceError(c, err, "failed to save ticker settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// CheckEmbed probes ?url= and reports whether it can be framed.
func (a *API) CheckEmbed(c *gin.Context) {
	status, err := a.embeds.Check(c.Request.Context(), c.Query("url"))
	if err != nil {
		a.respondServiceError(c, err, "failed to check embedded service")
		return
	}
	c.JSON(http.StatusOK, status)
}

// Seed loads demo content into an empty portal.
func (a *API) Seed(c *gin.Context) {
	result, err := a.seeds.Seed(a.seedOpts)
	if err != nil {
		a.respondServiceError(c, err, "failed to seed data")
		return
	}
	if result.MenusSeeded || result.DataSeeded {
		a.logger.Info("demo data seeded",
			zap.Bool("menus", result.MenusSeeded),
			zap.Bool("data", result.DataSeeded),
		)
	}
	c.JSON(http.StatusOK, result)
}

// DashboardStats returns content counts for the admin overview.
func (a *API) DashboardStats(c *gin.Context) {
	stats, err := a.dashboard.Stats(a.now())
	if err != nil {
		a.respondServiceError(c, err, "failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, stats)
}
