package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/intraportal/internal/service"
)

type eventPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	EventDate   string `json:"event_date"`
	EventType   string `json:"event_type"`
	Location    string `json:"location"`
}

func (p eventPayload) toInput() service.EventInput {
	return service.EventInput{
		Title:       p.Title,
		Description: p.Description,
		EventDate:   p.EventDate,
		EventType:   p.EventType,
		Location:    p.Location,
	}
}

type eventUpdatePayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	EventDate   *string `json:"event_date"`
	EventType   *string `json:"event_type"`
	Location    *string `json:"location"`
}

func (p eventUpdatePayload) toUpdate() service.EventUpdate {
	return service.EventUpdate{
		Title:       p.Title,
		Description: p.Description,
		EventDate:   p.EventDate,
		EventType:   p.EventType,
		Location:    p.Location,
	}
}

// ListEvents returns calendar entries by date. Supports ?type= and ?limit=.
func (a *API) ListEvents(c *gin.Context) {
	items, err := a.events.List(service.EventFilter{
		Type:  c.Query("type"),
		Limit: queryInt(c, "limit", 0),
	})
	if err != nil {
		a.respondServiceError(c, err, "failed to load events")
		return
	}
	c.JSON(http.StatusOK, items)
}

// UpcomingEvents returns events dated today or later.
func (a *API) UpcomingEvents(c *gin.Context) {
	items, err := a.events.Upcoming(a.now(), queryInt(c, "limit", 5))
	if err != nil {
		a.respondServiceError(c, err, "failed to load events")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (a *API) GetEvent(c *gin.Context) {
	id, ok := idParam(c, "invalid event id")
	if !ok {
		return
	}
	item, err := a.events.Get(id)
	if err != nil {
		a.respondServiceError(c, err, "failed to load event")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (a *API) CreateEvent(c *gin.Context) {
	var payload eventPayload
	if !bindJSON(c, &payload, "invalid event payload") {
		return
	}
	item, err := a.events.Create(payload.toInput())
	if err != nil {
		a.respondServiceError(c, err, "failed to create event")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (a *API) UpdateEvent(c *gin.Context) {
	id, ok := idParam(c, "invalid event id")
	if !ok {
		return
	}
	var payload eventUpdatePayload
	if !bindJSON(c, &payload, "invalid event payload") {
		return
	}
	item, err := a.events.Update(id, payload.toUpdate())
	if err != nil {
		a.respondServiceError(c, err, "failed to update event")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (a *API) DeleteEvent(c *gin.Context) {
	id, ok := idParam(c, "invalid event id")
	if !ok {
		return
	}
	if err := a.events.Delete(id); err != nil {
		a.respondServiceError(c, err, "failed to delete event")
		return
	}
	respondMessage(c, "Event deleted successfully")
}
