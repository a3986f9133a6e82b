package repository

import (
	"time"

	"cafe_pos/internal/models"

	"gorm.io/gorm"
)

// OrderFilter narrows a transaction listing. Nil/empty fields are ignored.
type OrderFilter struct {
	KasirID       uint
	Date          *time.Time
	PaymentMethod string
}

type OrderRepository interface {
	GetByID(id uint) (*models.Order, error)
	GetByIDWithTable(id uint) (*models.Order, error)
	Find(filter OrderFilter) ([]models.Order, error)
	Update(order *models.Order) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByIDWithTable(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Preload("Table").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Find(filter OrderFilter) ([]models.Order, error) {
	query := r.db.Preload("Items")

	if filter.KasirID != 0 {
		query = query.Where("kasir_id = ?", filter.KasirID)
	}
	if filter.Date != nil {
		start := time.Date(filter.Date.Year(), filter.Date.Month(), filter.Date.Day(), 0, 0, 0, 0, filter.Date.Location())
		end := start.AddDate(0, 0, 1)
		query = query.Where("created_at >= ? AND created_at < ?", start, end)
	}
	if filter.PaymentMethod != "" {
		query = query.Where("payment_method = ?", filter.PaymentMethod)
	}

	var orders []models.Order
	err := query.Order("id asc").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}
