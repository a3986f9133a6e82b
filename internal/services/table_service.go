package services

import (
	"errors"
	"fmt"

	"cafe_pos/internal/models"
	"cafe_pos/internal/repository"

	"gorm.io/gorm"
)

// TableUpdate carries the optional fields of a table update.
type TableUpdate struct {
	Number   *int
	Capacity *int
	Status   *string
}

type TableService interface {
	CreateTables(tables []models.Table) error
	GetTableByID(id uint) (*models.Table, error)
	GetAllTables() ([]models.Table, error)
	UpdateTable(id uint, update TableUpdate) (*models.Table, error)
	DeleteTable(id uint) error
}

type tableService struct {
	tableRepo repository.TableRepository
}

func NewTableService(tableRepo repository.TableRepository) TableService {
	return &tableService{tableRepo: tableRepo}
}

func (s *tableService) CreateTables(tables []models.Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("%w: at least one table is required", ErrValidation)
	}

	numbers := make([]int, 0, len(tables))
	seen := make(map[int]bool)
	for i := range tables {
		t := &tables[i]
		if t.Number <= 0 {
			return fmt.Errorf("%w: table number must be a positive integer", ErrValidation)
		}
		if t.Capacity <= 0 {
			return fmt.Errorf("%w: table capacity must be a positive integer", ErrValidation)
		}
		if t.Status == "" {
			t.Status = string(models.TableAvailable)
		}
		if !models.ValidTableStatus(t.Status) {
			return fmt.Errorf("%w: invalid table status %q", ErrValidation, t.Status)
		}
		if seen[t.Number] {
			return fmt.Errorf("%w: duplicate table number %d", ErrTableNumberTaken, t.Number)
		}
		seen[t.Number] = true
		numbers = append(numbers, t.Number)
	}

	existing, err := s.tableRepo.GetByNumbers(numbers)
	if err != nil {
		return fmt.Errorf("failed to check table numbers: %w", err)
	}
	if len(existing) > 0 {
		return fmt.Errorf("%w: table number %d", ErrTableNumberTaken, existing[0].Number)
	}

	return s.tableRepo.CreateBatch(tables)
}

func (s *tableService) GetTableByID(id uint) (*models.Table, error) {
	table, err := s.tableRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return table, nil
}

func (s *tableService) GetAllTables() ([]models.Table, error) {
	return s.tableRepo.GetAll()
}

func (s *tableService) UpdateTable(id uint, update TableUpdate) (*models.Table, error) {
	table, err := s.GetTableByID(id)
	if err != nil {
		return nil, err
	}

	if update.Number != nil {
		if *update.Number <= 0 {
			return nil, fmt.Errorf("%w: table number must be a positive integer", ErrValidation)
		}
		table.Number = *update.Number
	}
	if update.Capacity != nil {
		if *update.Capacity <= 0 {
			return nil, fmt.Errorf("%w: table capacity must be a positive integer", ErrValidation)
		}
		table.Capacity = *update.Capacity
	}
	if update.Status != nil {
		if !models.ValidTableStatus(*update.Status) {
			return nil, fmt.Errorf("%w: invalid table status %q", ErrValidation, *update.Status)
		}
		table.Status = *update.Status
	}

	if err := s.tableRepo.Update(table); err != nil {
		return nil, fmt.Errorf("failed to update table: %w", err)
	}
	return table, nil
}

func (s *tableService) DeleteTable(id uint) error {
	if _, err := s.GetTableByID(id); err != nil {
		return err
	}
	return s.tableRepo.Delete(id)
}
