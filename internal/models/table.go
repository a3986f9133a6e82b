package models

import "time"

type Table struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Number    int       `json:"number" gorm:"unique;not null"`
	Capacity  int       `json:"capacity" gorm:"not null"`
	Status    string    `json:"status" gorm:"default:'AVAILABLE'"` // AVAILABLE, RESERVED, OCCUPIED
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TableStatus string

const (
	TableAvailable TableStatus = "AVAILABLE"
	TableReserved  TableStatus = "RESERVED"
	TableOccupied  TableStatus = "OCCUPIED"
)

// ValidTableStatus reports whether status is one of the known table states.
func ValidTableStatus(status string) bool {
	switch TableStatus(status) {
	case TableAvailable, TableReserved, TableOccupied:
		return true
	}
	return false
}
