package models

import "github.com/masaladesk/restro_backend/utils"

type OrderSource string

const (
	OrderSourcePos    OrderSource = "POS"
	OrderSourceZomato OrderSource = "ZOMATO"
	OrderSourceSwiggy OrderSource = "SWIGGY"
)

func ParseOrderSource(s string) (OrderSource, error) {
	switch OrderSource(s) {
	case OrderSourcePos, OrderSourceZomato, OrderSourceSwiggy:
		return OrderSource(s), nil
	}
	return "", utils.NewValidationError("invalid order source")
}

type OrderStatus string

const (
	OrderStatusReceived  OrderStatus = "RECEIVED"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusArchived  OrderStatus = "ARCHIVED"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusReceived, OrderStatusPreparing, OrderStatusReady,
		OrderStatusCompleted, OrderStatusCancelled, OrderStatusArchived:
		return OrderStatus(s), nil
	}
	return "", utils.NewValidationError("invalid order status")
}

// IsTerminal reports whether the status is eligible for archival.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

type StockLogType string

const (
	StockLogTypeIn  StockLogType = "IN"
	StockLogTypeOut StockLogType = "OUT"
)

func ParseStockLogType(s string) (StockLogType, error) {
	switch StockLogType(s) {
	case StockLogTypeIn, StockLogTypeOut:
		return StockLogType(s), nil
	}
	return "", utils.NewValidationError("invalid stock log type")
}

type InventoryUnit string

const (
	InventoryUnitKg      InventoryUnit = "kg"
	InventoryUnitLtr     InventoryUnit = "ltr"
	InventoryUnitPcs     InventoryUnit = "pcs"
	InventoryUnitPackets InventoryUnit = "packets"
)

func ParseInventoryUnit(s string) (InventoryUnit, error) {
	switch InventoryUnit(s) {
	case InventoryUnitKg, InventoryUnitLtr, InventoryUnitPcs, InventoryUnitPackets:
		return InventoryUnit(s), nil
	}
	return "", utils.NewValidationError("invalid inventory unit")
}

type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleStaff UserRole = "staff"
)
