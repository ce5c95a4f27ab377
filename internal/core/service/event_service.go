package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventsphere/events-api/internal/core/domain"
	"github.com/eventsphere/events-api/internal/core/ports"
)

type eventService struct {
	events   ports.EventRepository
	users    ports.UserRepository
	sponsors ports.SponsorRepository
	log      zerolog.Logger
}

// NewEventService returns an EventService that checks owner and sponsor
// references before writing.
func NewEventService(
	events ports.EventRepository,
	users ports.UserRepository,
	sponsors ports.SponsorRepository,
	log zerolog.Logger,
) ports.EventService {
	return &eventService{events: events, users: users, sponsors: sponsors, log: log}
}

func (s *eventService) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if event.Title == "" || event.UserID == "" {
		return nil, fmt.Errorf("%w: title and user_id are required", domain.ErrValidation)
	}
	if _, err := s.users.FindByID(ctx, event.UserID); err != nil {
		return nil, err
	}
	if event.SponsorID != "" {
		if _, err := s.sponsors.FindByID(ctx, event.SponsorID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	created, err := s.events.Create(ctx, event)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("event_id", created.ID).Str("title", created.Title).Msg("event created")
	return created, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.FindByID(ctx, id)
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	return s.events.List(ctx)
}

func (s *eventService) Update(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if event.SponsorID != "" {
		if _, err := s.sponsors.FindByID(ctx, event.SponsorID); err != nil {
			return nil, err
		}
	}
	event.UpdatedAt = time.Now().UTC()
	return s.events.Update(ctx, event)
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	return s.events.Delete(ctx, id)
}
