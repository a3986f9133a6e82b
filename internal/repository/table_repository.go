package repository

import (
	"cafe_pos/internal/models"

	"gorm.io/gorm"
)

type TableRepository interface {
	Create(table *models.Table) error
	CreateBatch(tables []models.Table) error
	GetByID(id uint) (*models.Table, error)
	GetByNumbers(numbers []int) ([]models.Table, error)
	GetAll() ([]models.Table, error)
	Update(table *models.Table) error
	Delete(id uint) error
}

type tableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) Create(table *models.Table) error {
	return r.db.Create(table).Error
}

func (r *tableRepository) CreateBatch(tables []models.Table) error {
	return r.db.Create(&tables).Error
}

func (r *tableRepository) GetByID(id uint) (*models.Table, error) {
	var table models.Table
	err := r.db.First(&table, id).Error
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *tableRepository) GetByNumbers(numbers []int) ([]models.Table, error) {
	var tables []models.Table
	err := r.db.Where("number IN ?", numbers).Find(&tables).Error
	return tables, err
}

func (r *tableRepository) GetAll() ([]models.Table, error) {
	var tables []models.Table
	err := r.db.Order("id asc").Find(&tables).Error
	return tables, err
}

func (r *tableRepository) Update(table *models.Table) error {
	return r.db.Save(table).Error
}

func (r *tableRepository) Delete(id uint) error {
	return r.db.Delete(&models.Table{}, id).Error
}
