package school

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core"
)

type Event struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Date        time.Time          `json:"date" bson:"date"`
	Location    string             `json:"location" bson:"location"`
	Description string             `json:"description" bson:"description"`
}

type NewEvent struct {
	Name        string     `json:"name" validate:"required"`
	Date        *time.Time `json:"date" validate:"required"`
	Location    string     `json:"location" validate:"required"`
	Description string     `json:"description" validate:"required"`
}

func (ne *NewEvent) Validate() error {
	ne.Name = core.CleanString(ne.Name)
	ne.Location = core.CleanString(ne.Location)
	ne.Description = core.CleanString(ne.Description)
	return core.Validate.Struct(ne)
}

type (
	EventRepository interface {
		CreateEvent(ctx context.Context, evt Event) (Event, error)
		QueryAllEvents(ctx context.Context, opts core.ListOptions) ([]Event, error)
	}

	EventService struct {
		repo EventRepository
	}
)

func NewEventService(repo EventRepository) *EventService {
	return &EventService{repo: repo}
}

func (svc *EventService) Create(ctx context.Context, ne NewEvent) (Event, error) {
	evt := Event{Name: ne.Name, Date: ne.Date.UTC(), Location: ne.Location, Description: ne.Description}
	return svc.repo.CreateEvent(ctx, evt)
}

func (svc *EventService) Query(ctx context.Context, opts core.ListOptions) ([]Event, error) {
	return svc.repo.QueryAllEvents(ctx, opts)
}
