package service

import (
	"context"
	"fmt"
	"time"

	"github.com/eventsphere/events-api/internal/core/domain"
	"github.com/eventsphere/events-api/internal/core/ports"
)

type sponsorService struct {
	sponsors ports.SponsorRepository
}

func NewSponsorService(sponsors ports.SponsorRepository) ports.SponsorService {
	return &sponsorService{sponsors: sponsors}
}

func (s *sponsorService) Create(ctx context.Context, sponsor *domain.Sponsor) (*domain.Sponsor, error) {
	if sponsor.Title == "" || sponsor.Organisation == "" {
		return nil, fmt.Errorf("%w: title and organisation are required", domain.ErrValidation)
	}
	now := time.Now().UTC()
	sponsor.CreatedAt = now
	sponsor.UpdatedAt = now
	return s.sponsors.Create(ctx, sponsor)
}

func (s *sponsorService) Get(ctx context.Context, id string) (*domain.Sponsor, error) {
	return s.sponsors.FindByID(ctx, id)
}

func (s *sponsorService) List(ctx context.Context) ([]*domain.Sponsor, error) {
	return s.sponsors.List(ctx)
}

func (s *sponsorService) Update(ctx context.Context, sponsor *domain.Sponsor) (*domain.Sponsor, error) {
	sponsor.UpdatedAt = time.Now().UTC()
	return s.sponsors.Update(ctx, sponsor)
}

func (s *sponsorService) Delete(ctx context.Context, id string) error {
	return s.sponsors.Delete(ctx, id)
}
