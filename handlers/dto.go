package handlers

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateOrderRequest struct {
	CustomerPhone string                   `json:"customerPhone" binding:"omitempty,inphone"`
	Items         []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type CreateOrderItemRequest struct {
	ItemName string `json:"itemName" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
	Price    string `json:"price" binding:"required"`
}

type CreateOrderResponse struct {
	Success bool   `json:"success"`
	OrderId int    `json:"orderId"`
	Token   string `json:"token"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type StockAdjustmentRequest struct {
	Type      string `json:"type" binding:"required,oneof=IN OUT"`
	Quantity  string `json:"quantity" binding:"required"`
	StaffName string `json:"staffName"`
	Reason    string `json:"reason"`
}

type CreateInventoryItemRequest struct {
	Name          string `json:"name" binding:"required"`
	Unit          string `json:"unit" binding:"required,oneof=kg ltr pcs packets"`
	MinStockLevel string `json:"minStockLevel"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Rank int    `json:"rank"`
}

type CreateMenuItemRequest struct {
	Name       string `json:"name" binding:"required"`
	Price      string `json:"price" binding:"required"`
	CategoryId int    `json:"categoryId" binding:"required"`
}

type StoreSettingsRequest struct {
	StoreName string `json:"storeName" binding:"required"`
}
