package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/masaladesk/restro_backend/config"
	"github.com/masaladesk/restro_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Category struct {
	ID        int        `gorm:"primary_key" json:"id"`
	Name      string     `gorm:"size:100;not null;unique" json:"name" binding:"required"`
	Rank      int        `gorm:"not null;default:0;index" json:"rank"`
	Items     []MenuItem `gorm:"foreignKey:CategoryId;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

type MenuItem struct {
	ID         int             `gorm:"primary_key" json:"id"`
	Name       string          `gorm:"size:100;not null" json:"name" binding:"required"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	CategoryId int             `gorm:"index;not null" json:"category_id" binding:"required"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCategory struct {
	Name string `json:"name" binding:"required"`
	Rank int    `json:"rank"`
}

type NewMenuItem struct {
	Name       string `json:"name" binding:"required"`
	Price      string `json:"price" binding:"required"`
	CategoryId int    `json:"category_id" binding:"required"`
}

func CreateCategory(ctx context.Context, input *NewCategory) (*Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, utils.NewValidationError("category name is required")
	}
	// name
	if err := utils.ValidateUnique[Category](ctx, "name", input.Name, 0); err != nil {
		return nil, utils.NewValidationError(err.Error())
	}

	category := Category{
		Name: strings.TrimSpace(input.Name),
		Rank: input.Rank,
	}

	db := config.GetDB()
	// db action
	if err := db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func CreateMenuItem(ctx context.Context, input *NewMenuItem) (*MenuItem, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, utils.NewValidationError("item name is required")
	}
	price, err := utils.ParseDecimal(input.Price)
	if err != nil || price.IsNegative() {
		return nil, utils.NewValidationError("invalid price")
	}

	// category
	if err := utils.ValidateResourceId[Category](ctx, input.CategoryId); err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			return nil, utils.NewValidationError("category not found")
		}
		return nil, err
	}

	item := MenuItem{
		Name:       strings.TrimSpace(input.Name),
		Price:      price.Round(2),
		CategoryId: input.CategoryId,
	}

	db := config.GetDB()
	// db action
	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GetMenu returns categories in display order with their items, as shown on
// the POS screen.
func GetMenu(ctx context.Context) ([]*Category, error) {
	db := config.GetDB()
	var results []*Category
	err := db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("menu_items.name") }).
		Order("`rank`, name").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
