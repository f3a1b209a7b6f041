package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MozaAdirafi/tabletap/menu-svc/internal/domain"

	"github.com/google/uuid"
)

type MenuService struct {
	repo        MenuRepository
	restaurants RestaurantServiceInterface
	now         func() time.Time
}

func NewMenuService(repo MenuRepository, restaurants RestaurantServiceInterface) *MenuService {
	return &MenuService{repo: repo, restaurants: restaurants, now: time.Now}
}

// Menu groups the catalog by category, in category order. Items whose
// category is gone are collected in a trailing "Other" section.
func (s *MenuService) Menu(ctx context.Context, restaurantID string) (*domain.Menu, error) {
	rest, err := s.restaurants.Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.ListCategories(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListItems(ctx, restaurantID, "")
	if err != nil {
		return nil, err
	}

	menu := &domain.Menu{RestaurantID: restaurantID, RestaurantName: rest.Name, Sections: []domain.MenuSection{}}
	index := make(map[string]int, len(categories))
	for _, category := range categories {
		index[category.ID] = len(menu.Sections)
		menu.Sections = append(menu.Sections, domain.MenuSection{Category: category, Items: []domain.MenuItem{}})
	}
	var other []domain.MenuItem
	for _, item := range items {
		if i, ok := index[item.CategoryID]; ok {
			menu.Sections[i].Items = append(menu.Sections[i].Items, item)
			continue
		}
		other = append(other, item)
	}
	if len(other) > 0 {
		menu.Sections = append(menu.Sections, domain.MenuSection{
			Category: domain.MenuCategory{RestaurantID: restaurantID, Name: "Other"},
			Items:    other,
		})
	}
	return menu, nil
}

func (s *MenuService) ListItems(ctx context.Context, restaurantID, categoryID string) ([]domain.MenuItem, error) {
	return s.repo.ListItems(ctx, restaurantID, categoryID)
}

func (s *MenuService) GetItem(ctx context.Context, restaurantID, itemID string) (*domain.MenuItem, error) {
	return s.repo.GetItem(ctx, restaurantID, itemID)
}

func (s *MenuService) CreateItem(ctx context.Context, item *domain.MenuItem) error {
	if err := s.checkItem(ctx, item); err != nil {
		return err
	}
	item.ID = uuid.NewString()
	item.CreatedAt = s.now().UTC()
	item.UpdatedAt = item.CreatedAt
	return s.repo.CreateItem(ctx, item)
}

func (s *MenuService) UpdateItem(ctx context.Context, item *domain.MenuItem) error {
	if err := s.checkItem(ctx, item); err != nil {
		return err
	}
	item.UpdatedAt = s.now().UTC()
	return s.repo.UpdateItem(ctx, item)
}

func (s *MenuService) checkItem(ctx context.Context, item *domain.MenuItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if _, err := s.repo.GetCategory(ctx, item.RestaurantID, item.CategoryID); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return &domain.ValidationError{Field: "category_id", Message: fmt.Sprintf("unknown category %q", item.CategoryID)}
		}
		return err
	}
	return nil
}

func (s *MenuService) DeleteItem(ctx context.Context, restaurantID, itemID string) error {
	return s.repo.DeleteItem(ctx, restaurantID, itemID)
}

func (s *MenuService) ListCategories(ctx context.Context, restaurantID string) ([]domain.MenuCategory, error) {
	return s.repo.ListCategories(ctx, restaurantID)
}

func (s *MenuService) CreateCategory(ctx context.Context, category *domain.MenuCategory) error {
	category.ID = domain.Slugify(category.Name)
	if category.ID == "" {
		return &domain.ValidationError{Field: "name", Message: "is required"}
	}
	category.CreatedAt = s.now().UTC()
	return s.repo.CreateCategory(ctx, category)
}

// DeleteCategory refuses to orphan items; they must be moved or deleted first.
func (s *MenuService) DeleteCategory(ctx context.Context, restaurantID, categoryID string) error {
	count, err := s.repo.CountItems(ctx, restaurantID, categoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d item(s) in %q", domain.ErrCategoryInUse, count, categoryID)
	}
	return s.repo.DeleteCategory(ctx, restaurantID, categoryID)
}

var _ MenuServiceInterface = (*MenuService)(nil)
