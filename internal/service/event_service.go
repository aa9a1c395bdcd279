package service

import (
	"errors"
	"strings"
	"time"

	"github.com/intraportal/internal/db"
	"gorm.io/gorm"
)

// ErrEventNotFound is returned for an unknown event id.
var ErrEventNotFound = errors.New("event not found")

// EventDateLayout is the storage format of Event.EventDate.
const EventDateLayout = "2006-01-02"

// Event types shown on the calendar.
const (
	EventTypeEvent    = "event"
	EventTypeHoliday  = "holiday"
	EventTypeBirthday = "birthday"
)

// EventService handles calendar entries.
type EventService struct {
	db *gorm.DB
}

// EventFilter narrows List.
type EventFilter struct {
	Type  string
	Limit int
}

// EventInput holds the fields of a new event.
type EventInput struct {
	Title       string
	Description string
	EventDate   string
	EventType   string
	Location    string
}

// EventUpdate carries optional changes.
type EventUpdate struct {
	Title       *string
	Description *string
	EventDate   *string
	EventType   *string
	Location    *string
}

// NewEventService creates an EventService.
func NewEventService(gdb *gorm.DB) *EventService {
	return &EventService{db: gdb}
}

// List returns events in date order, soonest first.
func (s *EventService) List(filter EventFilter) ([]db.Event, error) {
	query := s.db.Model(&db.Event{})
	if kind := strings.TrimSpace(filter.Type); kind != "" {
		query = query.Where("event_type = ?", strings.ToLower(kind))
	}
	var items []db.Event
	if err := query.Order("event_date asc").Order("id asc").
		Limit(normalizeLimit(filter.Limit, 50)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Upcoming returns events dated on or after the day of now.
func (s *EventService) Upcoming(now time.Time, limit int) ([]db.Event, error) {
	var items []db.Event
	if err := s.db.Where("event_date >= ?", now.Format(EventDateLayout)).
		Order("event_date asc").Order("id asc").
		Limit(normalizeLimit(limit, 5)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches an event by id.
func (s *EventService) Get(id uint) (*db.Event, error) {
	var item db.Event
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts an event.
func (s *EventService) Create(input EventInput) (*db.Event, error) {
	item := db.Event{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		EventDate:   strings.TrimSpace(input.EventDate),
		EventType:   normalizeEventType(input.EventType),
		Location:    strings.TrimSpace(input.Location),
	}
	if err := validateEvent(item); err != nil {
		return nil, err
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update applies the non-nil fields of input.
func (s *EventService) Update(id uint, input EventUpdate) (*db.Event, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	applyString(&item.Title, input.Title)
	applyString(&item.Description, input.Description)
	applyString(&item.EventDate, input.EventDate)
	applyString(&item.Location, input.Location)
	if input.EventType != nil {
		item.EventType = normalizeEventType(*input.EventType)
	}
	if err := validateEvent(*item); err != nil {
		return nil, err
	}
	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an event.
func (s *EventService) Delete(id uint) error {
	result := s.db.Delete(&db.Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func validateEvent(item db.Event) error {
	if item.Title == "" {
		return required("title")
	}
	if item.EventDate == "" {
		return required("event_date")
	}
	if _, err := time.Parse(EventDateLayout, item.EventDate); err != nil {
		return invalid("event_date", "must use the YYYY-MM-DD format")
	}
	switch item.EventType {
	case EventTypeEvent, EventTypeHoliday, EventTypeBirthday:
	default:
		return invalid("event_type", "must be event, holiday or birthday")
	}
	return nil
}

func normalizeEventType(kind string) string {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		return EventTypeEvent
	}
	return kind
}
