package service

import (
	"context"
	"errors"
	"time"

	"github.com/MozaAdirafi/tabletap/menu-svc/internal/domain"
)

type RestaurantService struct {
	repo RestaurantRepository
	now  func() time.Time
}

func NewRestaurantService(repo RestaurantRepository) *RestaurantService {
	return &RestaurantService{repo: repo, now: time.Now}
}

// Get returns default settings for a principal that has not saved any yet.
func (s *RestaurantService) Get(ctx context.Context, id string) (*domain.Restaurant, error) {
	rest, err := s.repo.GetRestaurant(ctx, id)
	if errors.Is(err, domain.ErrRestaurantNotFound) {
		rest = &domain.Restaurant{ID: id, TaxRate: domain.DefaultTaxRate}
	} else if err != nil {
		return nil, err
	}
	rest.Name = rest.DisplayName()
	return rest, nil
}

func (s *RestaurantService) Update(ctx context.Context, rest *domain.Restaurant) error {
	if err := rest.Validate(); err != nil {
		return err
	}
	rest.UpdatedAt = s.now().UTC()
	return s.repo.UpsertRestaurant(ctx, rest)
}

var _ RestaurantServiceInterface = (*RestaurantService)(nil)
