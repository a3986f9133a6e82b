package services

import (
	"testing"

	"cafe_pos/internal/models"
	"cafe_pos/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTableService(t *testing.T) TableService {
	t.Helper()
	db := setupTestDB(t)
	return NewTableService(repository.NewTableRepository(db))
}

func TestCreateTables_DefaultsToAvailable(t *testing.T) {
	svc := newTestTableService(t)

	err := svc.CreateTables([]models.Table{{Number: 1, Capacity: 4}})
	require.NoError(t, err)

	tables, err := svc.GetAllTables()
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, string(models.TableAvailable), tables[0].Status)
}

func TestCreateTables_RejectsInvalidInput(t *testing.T) {
	svc := newTestTableService(t)

	tests := []struct {
		name   string
		tables []models.Table
		want   error
	}{
		{"empty batch", nil, ErrValidation},
		{"zero number", []models.Table{{Number: 0, Capacity: 4}}, ErrValidation},
		{"zero capacity", []models.Table{{Number: 1, Capacity: 0}}, ErrValidation},
		{"bad status", []models.Table{{Number: 1, Capacity: 4, Status: "BROKEN"}}, ErrValidation},
		{"duplicate in batch", []models.Table{{Number: 1, Capacity: 4}, {Number: 1, Capacity: 2}}, ErrTableNumberTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CreateTables(tt.tables)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateTables_RejectsExistingNumber(t *testing.T) {
	svc := newTestTableService(t)

	require.NoError(t, svc.CreateTables([]models.Table{{Number: 1, Capacity: 4}}))

	err := svc.CreateTables([]models.Table{{Number: 1, Capacity: 2}})
	require.ErrorIs(t, err, ErrTableNumberTaken)
}

func TestUpdateTable(t *testing.T) {
	svc := newTestTableService(t)

	require.NoError(t, svc.CreateTables([]models.Table{{Number: 1, Capacity: 4}}))
	tables, err := svc.GetAllTables()
	require.NoError(t, err)

	status := string(models.TableReserved)
	capacity := 6
	table, err := svc.UpdateTable(tables[0].ID, TableUpdate{Capacity: &capacity, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, 6, table.Capacity)
	assert.Equal(t, string(models.TableReserved), table.Status)

	bad := "BROKEN"
	_, err = svc.UpdateTable(tables[0].ID, TableUpdate{Status: &bad})
	require.ErrorIs(t, err, ErrValidation)
}

func TestTableNotFound(t *testing.T) {
	svc := newTestTableService(t)

	_, err := svc.GetTableByID(999)
	require.ErrorIs(t, err, ErrTableNotFound)

	err = svc.DeleteTable(999)
	require.ErrorIs(t, err, ErrTableNotFound)
}
