package service

import (
	"context"
	"fmt"
	"time"

	"github.com/eventsphere/events-api/internal/core/domain"
	"github.com/eventsphere/events-api/internal/core/ports"
)

type attendeeService struct {
	attendees ports.AttendeeRepository
	events    ports.EventRepository
	users     ports.UserRepository
}

func NewAttendeeService(
	attendees ports.AttendeeRepository,
	events ports.EventRepository,
	users ports.UserRepository,
) ports.AttendeeService {
	return &attendeeService{attendees: attendees, events: events, users: users}
}

func (s *attendeeService) Create(ctx context.Context, attendee *domain.Attendee) (*domain.Attendee, error) {
	if attendee.EventID == "" || attendee.UserID == "" {
		return nil, fmt.Errorf("%w: event_id and user_id are required", domain.ErrValidation)
	}
	if _, err := s.events.FindByID(ctx, attendee.EventID); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, attendee.UserID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	attendee.CreatedAt = now
	attendee.UpdatedAt = now
	return s.attendees.Create(ctx, attendee)
}

func (s *attendeeService) Get(ctx context.Context, id string) (*domain.Attendee, error) {
	return s.attendees.FindByID(ctx, id)
}

func (s *attendeeService) List(ctx context.Context, eventID string) ([]*domain.Attendee, error) {
	if eventID != "" {
		return s.attendees.ListByEvent(ctx, eventID)
	}
	return s.attendees.List(ctx)
}

func (s *attendeeService) Delete(ctx context.Context, id string) error {
	return s.attendees.Delete(ctx, id)
}
