package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventsphere/events-api/internal/core/domain"
)

type stubEventRepo struct {
	events map[string]*domain.Event
	nextID int
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{events: make(map[string]*domain.Event)}
}

func (r *stubEventRepo) Create(_ context.Context, event *domain.Event) (*domain.Event, error) {
	r.nextID++
	cp := *event
	cp.ID = strconv.Itoa(r.nextID)
	r.events[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *stubEventRepo) FindByID(_ context.Context, id string) (*domain.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *stubEventRepo) List(_ context.Context) ([]*domain.Event, error) {
	out := make([]*domain.Event, 0, len(r.events))
	for _, e := range r.events {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubEventRepo) Update(_ context.Context, event *domain.Event) (*domain.Event, error) {
	if _, ok := r.events[event.ID]; !ok {
		return nil, domain.ErrEventNotFound
	}
	cp := *event
	r.events[event.ID] = &cp
	out := cp
	return &out, nil
}

func (r *stubEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

type stubSponsorRepo struct {
	sponsors map[string]*domain.Sponsor
}

func (r *stubSponsorRepo) Create(_ context.Context, s *domain.Sponsor) (*domain.Sponsor, error) {
	r.sponsors[s.ID] = s
	return s, nil
}

func (r *stubSponsorRepo) FindByID(_ context.Context, id string) (*domain.Sponsor, error) {
	s, ok := r.sponsors[id]
	if !ok {
		return nil, domain.ErrSponsorNotFound
	}
	return s, nil
}

func (r *stubSponsorRepo) List(_ context.Context) ([]*domain.Sponsor, error) {
	out := make([]*domain.Sponsor, 0, len(r.sponsors))
	for _, s := range r.sponsors {
		out = append(out, s)
	}
	return out, nil
}

func (r *stubSponsorRepo) Update(_ context.Context, s *domain.Sponsor) (*domain.Sponsor, error) {
	r.sponsors[s.ID] = s
	return s, nil
}

func (r *stubSponsorRepo) Delete(_ context.Context, id string) error {
	delete(r.sponsors, id)
	return nil
}

func TestEventCreateChecksOwner(t *testing.T) {
	svc := NewEventService(newStubEventRepo(), newStubUserRepo(), &stubSponsorRepo{sponsors: map[string]*domain.Sponsor{}}, zerolog.Nop())

	_, err := svc.Create(context.Background(), &domain.Event{
		Title:  "GopherCon",
		UserID: "missing",
	})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestEventCreateChecksSponsor(t *testing.T) {
	users := newStubUserRepo()
	owner, err := users.Create(context.Background(), &domain.User{Username: "alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}

	svc := NewEventService(newStubEventRepo(), users, &stubSponsorRepo{sponsors: map[string]*domain.Sponsor{}}, zerolog.Nop())

	_, err = svc.Create(context.Background(), &domain.Event{
		Title:     "GopherCon",
		UserID:    owner.ID,
		SponsorID: "missing",
	})
	if !errors.Is(err, domain.ErrSponsorNotFound) {
		t.Fatalf("expected ErrSponsorNotFound, got %v", err)
	}
}

func TestEventCreateStampsTimestamps(t *testing.T) {
	users := newStubUserRepo()
	owner, err := users.Create(context.Background(), &domain.User{Username: "alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}

	svc := NewEventService(newStubEventRepo(), users, &stubSponsorRepo{sponsors: map[string]*domain.Sponsor{}}, zerolog.Nop())

	created, err := svc.Create(context.Background(), &domain.Event{
		Title:  "GopherCon",
		UserID: owner.ID,
		Date:   time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Error("expected an assigned id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestEventCreateRequiresTitle(t *testing.T) {
	svc := NewEventService(newStubEventRepo(), newStubUserRepo(), &stubSponsorRepo{sponsors: map[string]*domain.Sponsor{}}, zerolog.Nop())

	_, err := svc.Create(context.Background(), &domain.Event{UserID: "1"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
