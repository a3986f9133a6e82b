package services

import (
	"errors"
	"fmt"

	"cafe_pos/internal/models"
	"cafe_pos/internal/repository"

	"gorm.io/gorm"
)

// MenuItemUpdate carries the optional fields of a menu item update.
type MenuItemUpdate struct {
	Name        *string
	Description *string
	Price       *float64
}

type MenuService interface {
	CreateMenuItems(items []models.MenuItem) error
	GetMenuItemByID(id uint) (*models.MenuItem, error)
	GetAllMenuItems() ([]models.MenuItem, error)
	UpdateMenuItem(id uint, update MenuItemUpdate) (*models.MenuItem, error)
	DeleteMenuItem(id uint) error
}

type menuService struct {
	menuRepo repository.MenuItemRepository
}

func NewMenuService(menuRepo repository.MenuItemRepository) MenuService {
	return &menuService{menuRepo: menuRepo}
}

func (s *menuService) CreateMenuItems(items []models.MenuItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: at least one menu item is required", ErrValidation)
	}
	for _, item := range items {
		if item.Name == "" {
			return fmt.Errorf("%w: menu item name is required", ErrValidation)
		}
		if item.Price <= 0 {
			return fmt.Errorf("%w: menu item price must be positive", ErrValidation)
		}
	}
	return s.menuRepo.CreateBatch(items)
}

func (s *menuService) GetMenuItemByID(id uint) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *menuService) GetAllMenuItems() ([]models.MenuItem, error) {
	return s.menuRepo.GetAll()
}

func (s *menuService) UpdateMenuItem(id uint, update MenuItemUpdate) (*models.MenuItem, error) {
	item, err := s.GetMenuItemByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		item.Name = *update.Name
	}
	if update.Description != nil {
		item.Description = *update.Description
	}
	if update.Price != nil {
		if *update.Price <= 0 {
			return nil, fmt.Errorf("%w: menu item price must be positive", ErrValidation)
		}
		item.Price = *update.Price
	}

	if err := s.menuRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	return item, nil
}

func (s *menuService) DeleteMenuItem(id uint) error {
	if _, err := s.GetMenuItemByID(id); err != nil {
		return err
	}
	return s.menuRepo.Delete(id)
}
