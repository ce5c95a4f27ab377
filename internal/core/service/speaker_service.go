package service

import (
	"context"
	"fmt"
	"time"

	"github.com/eventsphere/events-api/internal/core/domain"
	"github.com/eventsphere/events-api/internal/core/ports"
)

type speakerService struct {
	speakers ports.SpeakerRepository
	events   ports.EventRepository
}

func NewSpeakerService(speakers ports.SpeakerRepository, events ports.EventRepository) ports.SpeakerService {
	return &speakerService{speakers: speakers, events: events}
}

func (s *speakerService) Create(ctx context.Context, speaker *domain.Speaker) (*domain.Speaker, error) {
	if speaker.Name == "" || speaker.EventID == "" {
		return nil, fmt.Errorf("%w: name and event_id are required", domain.ErrValidation)
	}
	if _, err := s.events.FindByID(ctx, speaker.EventID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	speaker.CreatedAt = now
	speaker.UpdatedAt = now
	return s.speakers.Create(ctx, speaker)
}

func (s *speakerService) Get(ctx context.Context, id string) (*domain.Speaker, error) {
	return s.speakers.FindByID(ctx, id)
}

// List returns all speakers, or only those of eventID when it is non-empty.
func (s *speakerService) List(ctx context.Context, eventID string) ([]*domain.Speaker, error) {
	if eventID != "" {
		return s.speakers.ListByEvent(ctx, eventID)
	}
	return s.speakers.List(ctx)
}

func (s *speakerService) Update(ctx context.Context, speaker *domain.Speaker) (*domain.Speaker, error) {
	speaker.UpdatedAt = time.Now().UTC()
	return s.speakers.Update(ctx, speaker)
}

func (s *speakerService) Delete(ctx context.Context, id string) error {
	return s.speakers.Delete(ctx, id)
}
