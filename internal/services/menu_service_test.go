package services

import (
	"testing"

	"cafe_pos/internal/models"
	"cafe_pos/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMenuService(t *testing.T) MenuService {
	t.Helper()
	db := setupTestDB(t)
	return NewMenuService(repository.NewMenuItemRepository(db))
}

func TestCreateMenuItems(t *testing.T) {
	svc := newTestMenuService(t)

	err := svc.CreateMenuItems([]models.MenuItem{
		{Name: "Coffee", Description: "Freshly brewed coffee", Price: 2.5},
		{Name: "Sandwich", Description: "Ham and cheese sandwich", Price: 5.0},
	})
	require.NoError(t, err)

	items, err := svc.GetAllMenuItems()
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCreateMenuItems_RejectsInvalidInput(t *testing.T) {
	svc := newTestMenuService(t)

	require.ErrorIs(t, svc.CreateMenuItems(nil), ErrValidation)
	require.ErrorIs(t, svc.CreateMenuItems([]models.MenuItem{{Name: "", Price: 2.5}}), ErrValidation)
	require.ErrorIs(t, svc.CreateMenuItems([]models.MenuItem{{Name: "Coffee", Price: 0}}), ErrValidation)
	require.ErrorIs(t, svc.CreateMenuItems([]models.MenuItem{{Name: "Coffee", Price: -1}}), ErrValidation)
}

func TestUpdateMenuItem(t *testing.T) {
	svc := newTestMenuService(t)

	require.NoError(t, svc.CreateMenuItems([]models.MenuItem{{Name: "Coffee", Price: 2.5}}))
	items, err := svc.GetAllMenuItems()
	require.NoError(t, err)

	price := 3.0
	item, err := svc.UpdateMenuItem(items[0].ID, MenuItemUpdate{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 3.0, item.Price)

	negative := -1.0
	_, err = svc.UpdateMenuItem(items[0].ID, MenuItemUpdate{Price: &negative})
	require.ErrorIs(t, err, ErrValidation)
}

func TestMenuItemNotFound(t *testing.T) {
	svc := newTestMenuService(t)

	_, err := svc.GetMenuItemByID(999)
	require.ErrorIs(t, err, ErrMenuItemNotFound)

	err = svc.DeleteMenuItem(999)
	require.ErrorIs(t, err, ErrMenuItemNotFound)
}
