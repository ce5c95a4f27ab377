package ports

import (
	"context"

	"github.com/eventsphere/events-api/internal/core/domain"
)

// EventRepository persists event aggregates.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
}

type SponsorRepository interface {
	Create(ctx context.Context, sponsor *domain.Sponsor) (*domain.Sponsor, error)
	FindByID(ctx context.Context, id string) (*domain.Sponsor, error)
	List(ctx context.Context) ([]*domain.Sponsor, error)
	Update(ctx context.Context, sponsor *domain.Sponsor) (*domain.Sponsor, error)
	Delete(ctx context.Context, id string) error
}

type SpeakerRepository interface {
	Create(ctx context.Context, speaker *domain.Speaker) (*domain.Speaker, error)
	FindByID(ctx context.Context, id string) (*domain.Speaker, error)
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Speaker, error)
	List(ctx context.Context) ([]*domain.Speaker, error)
	Update(ctx context.Context, speaker *domain.Speaker) (*domain.Speaker, error)
	Delete(ctx context.Context, id string) error
}

type AttendeeRepository interface {
	Create(ctx context.Context, attendee *domain.Attendee) (*domain.Attendee, error)
	FindByID(ctx context.Context, id string) (*domain.Attendee, error)
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Attendee, error)
	List(ctx context.Context) ([]*domain.Attendee, error)
	Delete(ctx context.Context, id string) error
}

// EventService exposes event CRUD with referential checks on owner and sponsor.
type EventService interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Get(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
}

type SponsorService interface {
	Create(ctx context.Context, sponsor *domain.Sponsor) (*domain.Sponsor, error)
	Get(ctx context.Context, id string) (*domain.Sponsor, error)
	List(ctx context.Context) ([]*domain.Sponsor, error)
	Update(ctx context.Context, sponsor *domain.Sponsor) (*domain.Sponsor, error)
	Delete(ctx context.Context, id string) error
}

type SpeakerService interface {
	Create(ctx context.Context, speaker *domain.Speaker) (*domain.Speaker, error)
	Get(ctx context.Context, id string) (*domain.Speaker, error)
	List(ctx context.Context, eventID string) ([]*domain.Speaker, error)
	Update(ctx context.Context, speaker *domain.Speaker) (*domain.Speaker, error)
	Delete(ctx context.Context, id string) error
}

type AttendeeService interface {
	Create(ctx context.Context, attendee *domain.Attendee) (*domain.Attendee, error)
	Get(ctx context.Context, id string) (*domain.Attendee, error)
	List(ctx context.Context, eventID string) ([]*domain.Attendee, error)
	Delete(ctx context.Context, id string) error
}
