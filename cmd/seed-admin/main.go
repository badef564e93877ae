// seed-admin creates or updates the dashboard admin user and a starter menu.
//
// Usage:
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-admin
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/masaladesk/restro_backend/config"
	"github.com/masaladesk/restro_backend/models"
	"github.com/masaladesk/restro_backend/utils"
	"gorm.io/gorm"
)

const (
	adminEmail    = "admin@kitchen.com"
	adminPassword = "admin123"
	adminName     = "Admin"
)

type seedItem struct {
	Name  string
	Price string
}

var starterMenu = []struct {
	Category string
	Items    []seedItem
}{
	{"Starters", []seedItem{
		{"Paneer Tikka", "220.00"},
		{"Veg Manchurian", "180.00"},
	}},
	{"Mains", []seedItem{
		{"Butter Chicken", "320.00"},
		{"Dal Makhani", "240.00"},
	}},
	{"Breads", []seedItem{
		{"Butter Naan", "45.00"},
		{"Tandoori Roti", "25.00"},
	}},
}

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	if err := models.MigrateTable(); err != nil {
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}

	hashed, err := utils.HashPassword(adminPassword)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}

	var existing models.User
	err = db.WithContext(ctx).Where("email = ?", adminEmail).First(&existing).Error
	switch {
	case err == nil:
		if uerr := db.WithContext(ctx).Model(&existing).
			Update("password", string(hashed)).Error; uerr != nil {
			fmt.Fprintf(os.Stderr, "failed to update admin user: %v\n", uerr)
			os.Exit(1)
		}
		fmt.Printf("admin user updated: %s\n", adminEmail)
	case errors.Is(err, gorm.ErrRecordNotFound):
		user := models.User{
			Name:     adminName,
			Email:    adminEmail,
			Password: string(hashed),
			Role:     models.UserRoleAdmin,
		}
		if cerr := db.WithContext(ctx).Create(&user).Error; cerr != nil {
			fmt.Fprintf(os.Stderr, "failed to create admin user: %v\n", cerr)
			os.Exit(1)
		}
		fmt.Printf("admin user created: %s / %s\n", adminEmail, adminPassword)
	default:
		fmt.Fprintf(os.Stderr, "failed to lookup user: %v\n", err)
		os.Exit(1)
	}

	for rank, group := range starterMenu {
		category, err := models.CreateCategory(ctx, &models.NewCategory{Name: group.Category, Rank: rank + 1})
		if err != nil {
			// already seeded
			continue
		}
		for _, item := range group.Items {
			if _, err := models.CreateMenuItem(ctx, &models.NewMenuItem{
				Name:       item.Name,
				Price:      item.Price,
				CategoryId: category.ID,
			}); err != nil {
				fmt.Fprintf(os.Stderr, "failed to seed %q: %v\n", item.Name, err)
			}
		}
	}
	fmt.Println("seed complete")
}
