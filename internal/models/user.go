package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	Email     string         `json:"email" gorm:"unique;not null"`
	Password  string         `json:"-" gorm:"not null"`
	Role      string         `json:"role" gorm:"default:'KASIR'"` // ADMIN, MANAGER, KASIR
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleManager UserRole = "MANAGER"
	RoleKasir   UserRole = "KASIR"
)

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	switch UserRole(role) {
	case RoleAdmin, RoleManager, RoleKasir:
		return true
	}
	return false
}
