package service

import (
	"context"
	"time"

	"github.com/MozaAdirafi/tabletap/menu-svc/internal/domain"

	"github.com/google/uuid"
)

type TableService struct {
	repo        TableRepository
	restaurants RestaurantServiceInterface
	qrEncoder   QRGenerator
	now         func() time.Time
}

func NewTableService(repo TableRepository, restaurants RestaurantServiceInterface, qr QRGenerator) *TableService {
	return &TableService{repo: repo, restaurants: restaurants, qrEncoder: qr, now: time.Now}
}

func (s *TableService) List(ctx context.Context, restaurantID string) ([]domain.Table, error) {
	return s.repo.ListTables(ctx, restaurantID)
}

func (s *TableService) Get(ctx context.Context, restaurantID, tableID string) (*domain.Table, error) {
	return s.repo.GetTable(ctx, restaurantID, tableID)
}

func (s *TableService) Create(ctx context.Context, table *domain.Table) error {
	if err := table.Validate(); err != nil {
		return err
	}
	table.ID = uuid.NewString()
	table.CreatedAt = s.now().UTC()
	return s.repo.CreateTable(ctx, table)
}

// Delete leaves orders placed at the table untouched.
func (s *TableService) Delete(ctx context.Context, restaurantID, tableID string) error {
	return s.repo.DeleteTable(ctx, restaurantID, tableID)
}

func (s *TableService) QRCode(ctx context.Context, restaurantID, tableID string) ([]byte, error) {
	table, err := s.repo.GetTable(ctx, restaurantID, tableID)
	if err != nil {
		return nil, err
	}
	return s.qrEncoder.Generate(restaurantID, table.Number)
}

// Scan resolves the restaurant and table number carried by a QR code.
func (s *TableService) Scan(ctx context.Context, restaurantID string, number int) (*domain.ScanResult, error) {
	if number < 1 {
		return nil, domain.ErrTableNotFound
	}
	table, err := s.repo.GetTableByNumber(ctx, restaurantID, number)
	if err != nil {
		return nil, err
	}
	rest, err := s.restaurants.Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return &domain.ScanResult{
		RestaurantID:   restaurantID,
		RestaurantName: rest.Name,
		TableID:        table.ID,
		TableNumber:    table.Number,
	}, nil
}

var _ TableServiceInterface = (*TableService)(nil)
