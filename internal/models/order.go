package models

import "time"

type Order struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	TableID       uint        `json:"table_id" gorm:"not null;index"`
	Table         Table       `json:"table,omitempty" gorm:"foreignKey:TableID"`
	KasirID       uint        `json:"kasir_id" gorm:"not null;index"`
	Total         float64     `json:"total" gorm:"not null"`
	Status        string      `json:"status" gorm:"default:'OPEN'"` // OPEN, FINALIZED
	PaymentMethod string      `json:"payment_method" gorm:"default:'CASH'"`
	Items         []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type OrderStatus string

const (
	OrderOpen      OrderStatus = "OPEN"
	OrderFinalized OrderStatus = "FINALIZED"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
	PaymentQRIS PaymentMethod = "QRIS"
)

// ValidPaymentMethod reports whether method is one of the accepted payment methods.
func ValidPaymentMethod(method string) bool {
	switch PaymentMethod(method) {
	case PaymentCash, PaymentCard, PaymentQRIS:
		return true
	}
	return false
}
