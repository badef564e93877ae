package models

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/masaladesk/restro_backend/config"
	"github.com/masaladesk/restro_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	orderTokenPrefix = "TK-"

	// tokenMaxAttempts bounds the retry loop when two orders race for the
	// same (token_date, token_seq) pair and one loses on the unique index.
	tokenMaxAttempts = 5

	// archiveRetention is how long terminal orders stay visible before the
	// sweep moves them to ARCHIVED.
	archiveRetention = 48 * time.Hour
)

type Order struct {
	ID          int         `gorm:"primary_key" json:"id"`
	TokenNumber string      `gorm:"size:20;not null" json:"token_number"`
	TokenDate   time.Time   `gorm:"type:date;not null;uniqueIndex:uq_orders_token_day,priority:1" json:"token_date"`
	TokenSeq    int         `gorm:"not null;uniqueIndex:uq_orders_token_day,priority:2" json:"token_seq"`
	Source      OrderSource `gorm:"type:enum('POS','ZOMATO','SWIGGY');default:POS" json:"source"`
	Status      OrderStatus `gorm:"type:enum('RECEIVED','PREPARING','READY','COMPLETED','CANCELLED','ARCHIVED');default:RECEIVED;index" json:"status"`

	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	GstAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"gst_amount"`
	NetAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"net_amount"`
	GstRate     decimal.Decimal `gorm:"type:decimal(5,2);default:5.00" json:"gst_rate"`

	CustomerPhone string      `gorm:"size:20" json:"customer_phone"`
	Items         []OrderItem `gorm:"foreignKey:OrderId;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// OrderItem rows are immutable once written.
type OrderItem struct {
	ID       int             `gorm:"primary_key" json:"id"`
	OrderId  int             `gorm:"index;not null" json:"order_id"`
	ItemName string          `gorm:"size:100;not null" json:"item_name" binding:"required"`
	Quantity int             `gorm:"not null" json:"quantity" binding:"required"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
}

type NewOrder struct {
	CustomerPhone string         `json:"customer_phone"`
	Items         []NewOrderItem `json:"items" binding:"required"`
}

type NewOrderItem struct {
	ItemName string          `json:"item_name" binding:"required"`
	Quantity int             `json:"quantity" binding:"required"`
	Price    decimal.Decimal `json:"price"`
}

// FormatOrderToken renders a day-sequence number as a kitchen token,
// zero-padded to at least three digits: 7 -> "TK-007", 1042 -> "TK-1042".
func FormatOrderToken(seq int) string {
	return fmt.Sprintf("%s%03d", orderTokenPrefix, seq)
}

// OrderTokenSeq extracts the numeric suffix of a token. Returns 0 for
// anything it cannot parse.
func OrderTokenSeq(token string) int {
	if !strings.HasPrefix(token, orderTokenPrefix) {
		return 0
	}
	n, err := strconv.Atoi(token[len(orderTokenPrefix):])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (input *NewOrder) validate() error {
	if len(input.Items) == 0 {
		return utils.NewValidationError("order must have at least one item")
	}
	for _, item := range input.Items {
		if strings.TrimSpace(item.ItemName) == "" {
			return utils.NewValidationError("item name is required")
		}
		if item.Quantity <= 0 {
			return utils.NewValidationError("item quantity must be positive")
		}
		if item.Price.IsNegative() {
			return utils.NewValidationError("item price must not be negative")
		}
	}
	return nil
}

// next sequence for the day = max existing + 1. Runs inside the caller's
// transaction; the unique index on (token_date, token_seq) catches races.
func nextTokenSeq(tx *gorm.DB, tokenDate time.Time) (int, error) {
	var maxSeq int
	err := tx.Model(&Order{}).
		Where("token_date = ?", tokenDate).
		Select("COALESCE(MAX(token_seq), 0)").
		Scan(&maxSeq).Error
	if err != nil {
		return 0, err
	}
	return maxSeq + 1, nil
}

// CreatePosOrder creates an in-store order: totals the line items, splits
// the GST-inclusive amount, assigns today's next kitchen token and writes
// the order plus its items in one transaction.
//
// Token assignment re-reads the day's maximum inside the transaction and
// retries on a duplicate-key error, so concurrent calls never share a token.
func CreatePosOrder(ctx context.Context, input *NewOrder) (*Order, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, item := range input.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	net, gst := utils.SplitGstInclusive(total)

	items := make([]OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, OrderItem{
			ItemName: item.ItemName,
			Quantity: item.Quantity,
			Price:    item.Price.Round(2),
		})
	}

	db := config.GetDB()
	tokenDate := utils.DateUTC(time.Now())

	var order *Order
	var err error
	for attempt := 1; attempt <= tokenMaxAttempts; attempt++ {
		order, err = createOrderOnce(ctx, db, tokenDate, input.CustomerPhone, total, net, gst, items)
		if err == nil {
			break
		}
		if !utils.IsDuplicateKeyError(err) {
			return nil, err
		}
		// lost the token race, re-read the max and try again
	}
	if err != nil {
		return nil, err
	}

	// Keep the board clean: sweep old terminal orders on every creation.
	// Best effort only, a failed sweep must not fail the sale.
	if _, sweepErr := ArchiveOldOrders(ctx); sweepErr != nil {
		config.LogError(config.GetLogger(), "order.go", "CreatePosOrder", "ArchiveOldOrders", nil, sweepErr)
	}

	return order, nil
}

func createOrderOnce(ctx context.Context, db *gorm.DB, tokenDate time.Time, phone string,
	total, net, gst decimal.Decimal, items []OrderItem) (*Order, error) {

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	seq, err := nextTokenSeq(tx, tokenDate)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	order := Order{
		TokenNumber:   FormatOrderToken(seq),
		TokenDate:     tokenDate,
		TokenSeq:      seq,
		Source:        OrderSourcePos,
		Status:        OrderStatusReceived,
		TotalAmount:   total.Round(2),
		GstAmount:     gst,
		NetAmount:     net,
		GstRate:       utils.GstRate.Mul(decimal.NewFromInt(100)).Round(2),
		CustomerPhone: phone,
		Items:         items,
	}

	// db action: order + items in one insert
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus moves an order through its lifecycle. A missing order id
// affects zero rows and is not an error.
func UpdateOrderStatus(ctx context.Context, orderId int, status string) error {
	st, err := ParseOrderStatus(status)
	if err != nil {
		return err
	}

	db := config.GetDB()
	return db.WithContext(ctx).Model(&Order{}).
		Where("id = ?", orderId).
		Update("status", st).Error
}

// ArchiveOldOrders transitions COMPLETED/CANCELLED orders older than the
// retention window to ARCHIVED. Idempotent; zero matches is fine.
func ArchiveOldOrders(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-archiveRetention)

	db := config.GetDB()
	result := db.WithContext(ctx).Model(&Order{}).
		Where("status IN ?", []OrderStatus{OrderStatusCompleted, OrderStatusCancelled}).
		Where("created_at < ?", cutoff).
		Update("status", OrderStatusArchived)
	return result.RowsAffected, result.Error
}

// GetActiveOrders returns the kitchen display feed: every non-terminal
// order, newest first, items included.
func GetActiveOrders(ctx context.Context) ([]*Order, error) {
	db := config.GetDB()
	var results []*Order
	err := db.WithContext(ctx).
		Where("status IN ?", []OrderStatus{OrderStatusReceived, OrderStatusPreparing, OrderStatusReady}).
		Preload("Items").
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// SearchOrders lists orders for the order board. status filters when set;
// query matches token numbers (prefix) and customer phones (substring).
func SearchOrders(ctx context.Context, status string, query string) ([]*Order, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Preload("Items")

	if status != "" {
		st, err := ParseOrderStatus(status)
		if err != nil {
			return nil, err
		}
		dbCtx = dbCtx.Where("status = ?", st)
	}
	if query = strings.TrimSpace(query); query != "" {
		dbCtx = dbCtx.Where("token_number LIKE ? OR customer_phone LIKE ?", query+"%", "%"+query+"%")
	}

	var results []*Order
	err := dbCtx.Order("created_at DESC").Limit(100).Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func GetOrder(ctx context.Context, id int) (*Order, error) {
	return utils.FetchSingleModel[Order](ctx, id, "Items")
}
