package migrations

import (
	"fmt"
	"log"

	"cafe_pos/internal/database"
	"cafe_pos/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunMigrations creates the schema and seeds default data on an empty
// database.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := seedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

// seedDefaultData creates the default users, menu and tables. Skipped when
// users already exist.
func seedDefaultData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Default data already present, skipping seed")
		return nil
	}

	log.Println("Seeding default data...")

	users := []struct {
		name     string
		email    string
		password string
		role     models.UserRole
	}{
		{"Admin User", "admin@example.com", "admin123", models.RoleAdmin},
		{"Manager User", "manager@example.com", "manager123", models.RoleManager},
		{"Kasir User", "kasir@example.com", "kasir123", models.RoleKasir},
	}
	for _, u := range users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", u.email, err)
		}
		user := models.User{
			Name:     u.name,
			Email:    u.email,
			Password: string(hashed),
			Role:     string(u.role),
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.email, err)
		}
	}

	menuItems := []models.MenuItem{
		{Name: "Coffee", Description: "Freshly brewed coffee", Price: 2.5},
		{Name: "Sandwich", Description: "Ham and cheese sandwich", Price: 5.0},
		{Name: "Bagel", Description: "Gluten-free bread", Price: 2.0},
	}
	if err := db.Create(&menuItems).Error; err != nil {
		return fmt.Errorf("failed to seed menu items: %w", err)
	}

	tables := []models.Table{
		{Number: 1, Capacity: 4, Status: string(models.TableAvailable)},
		{Number: 2, Capacity: 2, Status: string(models.TableReserved)},
		{Number: 3, Capacity: 2, Status: string(models.TableOccupied)},
		{Number: 4, Capacity: 3, Status: string(models.TableAvailable)},
	}
	if err := db.Create(&tables).Error; err != nil {
		return fmt.Errorf("failed to seed tables: %w", err)
	}

	log.Println("Default data seeded successfully!")
	return nil
}
