package models

import (
	"context"
	"strings"
	"time"

	"github.com/masaladesk/restro_backend/config"
	"github.com/masaladesk/restro_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Default reasons written to the register when the staff leaves none.
const (
	StockReasonRestock = "Restock / Supply"
	StockReasonUsage   = "Kitchen Usage / Wastage"
)

type InventoryItem struct {
	ID            int             `gorm:"primary_key" json:"id"`
	Name          string          `gorm:"size:100;not null;unique" json:"name" binding:"required"`
	CurrentStock  decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"current_stock"`
	Unit          InventoryUnit   `gorm:"type:enum('kg','ltr','pcs','packets');not null" json:"unit"`
	MinStockLevel decimal.Decimal `gorm:"type:decimal(12,2);default:5.00" json:"min_stock_level"`
	Logs          []StockLog      `gorm:"foreignKey:InventoryId;constraint:OnDelete:CASCADE" json:"logs,omitempty"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsLowStock flags items at or below their reorder threshold.
func (item InventoryItem) IsLowStock() bool {
	return item.CurrentStock.LessThan(item.MinStockLevel)
}

// StockLog is the append-only register. Quantity is signed: positive for IN,
// negative for OUT. SUM(quantity) per item equals the item's current_stock.
type StockLog struct {
	ID          int             `gorm:"primary_key" json:"id"`
	InventoryId int             `gorm:"index;not null" json:"inventory_id"`
	Type        StockLogType    `gorm:"type:enum('IN','OUT');not null" json:"type"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"quantity"`
	StaffName   string          `gorm:"size:100" json:"staff_name"`
	Reason      string          `gorm:"size:255" json:"reason"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewInventoryItem struct {
	Name          string `json:"name" binding:"required"`
	Unit          string `json:"unit" binding:"required"`
	MinStockLevel string `json:"min_stock_level"`
}

type NewStockAdjustment struct {
	Quantity  string `json:"quantity" binding:"required"`
	StaffName string `json:"staff_name"`
	Reason    string `json:"reason"`
}

func CreateInventoryItem(ctx context.Context, input *NewInventoryItem) (*InventoryItem, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, utils.NewValidationError("item name is required")
	}
	unit, err := ParseInventoryUnit(input.Unit)
	if err != nil {
		return nil, err
	}

	minLevel := decimal.NewFromInt(5)
	if strings.TrimSpace(input.MinStockLevel) != "" {
		minLevel, err = utils.ParseDecimal(input.MinStockLevel)
		if err != nil || minLevel.IsNegative() {
			return nil, utils.NewValidationError("invalid minimum stock level")
		}
	}

	// name
	if err := utils.ValidateUnique[InventoryItem](ctx, "name", input.Name, 0); err != nil {
		return nil, utils.NewValidationError(err.Error())
	}

	item := InventoryItem{
		Name:          strings.TrimSpace(input.Name),
		CurrentStock:  decimal.Zero,
		Unit:          unit,
		MinStockLevel: minLevel.Round(2),
	}

	db := config.GetDB()
	// db action
	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateStock applies a signed quantity delta to an item's balance and
// appends the matching register entry as one atomic unit. IN adds, OUT
// subtracts; the balance may go negative (corrections come in later as IN).
// A missing item id affects zero rows and is not an error.
func UpdateStock(ctx context.Context, inventoryId int, logType StockLogType, input *NewStockAdjustment) error {
	qty, err := utils.ParseDecimal(input.Quantity)
	if err != nil || !qty.IsPositive() {
		return utils.NewValidationError("invalid quantity")
	}
	qty = qty.Round(2)

	signed := qty
	reason := input.Reason
	switch logType {
	case StockLogTypeIn:
		if reason == "" {
			reason = StockReasonRestock
		}
	case StockLogTypeOut:
		signed = qty.Neg()
		if reason == "" {
			reason = StockReasonUsage
		}
	default:
		return utils.NewValidationError("invalid stock log type")
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	// db action: balance update + register row commit together or not at all
	result := tx.Model(&InventoryItem{}).
		Where("id = ?", inventoryId).
		UpdateColumns(map[string]interface{}{
			"current_stock": gorm.Expr("current_stock + ?", signed),
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		tx.Rollback()
		return result.Error
	}
	if result.RowsAffected == 0 {
		// unknown item: zero rows affected, nothing to log
		tx.Rollback()
		return nil
	}

	entry := StockLog{
		InventoryId: inventoryId,
		Type:        logType,
		Quantity:    signed,
		StaffName:   input.StaffName,
		Reason:      reason,
	}
	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func GetInventory(ctx context.Context) ([]*InventoryItem, error) {
	db := config.GetDB()
	var results []*InventoryItem
	err := db.WithContext(ctx).Order("name").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func GetInventoryItem(ctx context.Context, id int) (*InventoryItem, error) {
	return utils.FetchSingleModel[InventoryItem](ctx, id)
}

// GetStockLogs returns the register for one item, newest first.
func GetStockLogs(ctx context.Context, inventoryId int, limit int) ([]*StockLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	db := config.GetDB()
	var results []*StockLog
	err := db.WithContext(ctx).
		Where("inventory_id = ?", inventoryId).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
