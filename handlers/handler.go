package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/masaladesk/restro_backend/config"
	"github.com/masaladesk/restro_backend/middlewares"
	"github.com/masaladesk/restro_backend/models"
	"github.com/masaladesk/restro_backend/utils"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	logger *logrus.Logger
}

func NewHandler() *Handler {
	return &Handler{logger: config.GetLogger()}
}

// RegisterCustomValidations installs binding rules that go beyond struct
// tags. "inphone" checks customer phone numbers for the store's region.
func RegisterCustomValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("inphone", func(fl validator.FieldLevel) bool {
			return utils.ValidatePhoneNumber(fl.Field().String(), utils.CountryCode) == nil
		})
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/auth/login", h.Login)

	api := r.Group("/", middlewares.AuthMiddleware())
	api.POST("/auth/logout", h.Logout)

	api.POST("/orders", h.CreateOrder)
	api.GET("/orders", h.ListOrders)
	api.GET("/orders/active", h.ActiveOrders)
	api.PATCH("/orders/:id/status", h.UpdateOrderStatus)
	api.POST("/orders/archive", h.ArchiveOrders)

	api.GET("/menu", h.GetMenu)
	api.POST("/menu/categories", h.CreateCategory)
	api.POST("/menu/items", h.CreateMenuItem)

	api.GET("/inventory", h.ListInventory)
	api.POST("/inventory", h.CreateInventoryItem)
	api.POST("/inventory/:id/stock", h.AdjustStock)
	api.GET("/inventory/:id/logs", h.StockLogs)

	api.GET("/reports/revenue", h.RevenueReport)
	api.GET("/reports/revenue/export", h.RevenueExport)

	api.PATCH("/settings/store", middlewares.RequireAdmin(), h.UpdateStoreSettings)
}

// fail writes the uniform error envelope. Nothing else leaves a handler on
// the error path.
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// handleError maps domain errors onto the envelope: validation problems keep
// their message, storage failures are logged and surfaced generically.
func (h *Handler) handleError(c *gin.Context, funcName string, context string, err error) {
	if utils.IsValidationError(err) {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	var data any
	if correlationId, ok := utils.GetCorrelationIdFromContext(c.Request.Context()); ok {
		data = map[string]string{"correlationId": correlationId}
	}
	config.LogError(h.logger, "handlers", funcName, context, data, err)
	fail(c, http.StatusInternalServerError, "operation failed")
}

func pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

/* auth */

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	info, err := models.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if utils.IsValidationError(err) {
			fail(c, http.StatusUnauthorized, err.Error())
			return
		}
		h.handleError(c, "Login", "models.Login", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": info.Token, "name": info.Name, "role": info.Role})
}

func (h *Handler) Logout(c *gin.Context) {
	if _, err := models.Logout(c.Request.Context()); err != nil {
		h.handleError(c, "Logout", "models.Logout", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

/* orders */

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	input := models.NewOrder{CustomerPhone: req.CustomerPhone}
	for _, item := range req.Items {
		price, err := utils.ParseDecimal(item.Price)
		if err != nil || price.IsNegative() {
			fail(c, http.StatusBadRequest, "invalid price")
			return
		}
		input.Items = append(input.Items, models.NewOrderItem{
			ItemName: item.ItemName,
			Quantity: item.Quantity,
			Price:    price,
		})
	}

	order, err := models.CreatePosOrder(c.Request.Context(), &input)
	if err != nil {
		h.handleError(c, "CreateOrder", "models.CreatePosOrder", err)
		return
	}
	c.JSON(http.StatusCreated, CreateOrderResponse{Success: true, OrderId: order.ID, Token: order.TokenNumber})
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := models.SearchOrders(c.Request.Context(), c.Query("status"), c.Query("q"))
	if err != nil {
		h.handleError(c, "ListOrders", "models.SearchOrders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

func (h *Handler) ActiveOrders(c *gin.Context) {
	orders, err := models.GetActiveOrders(c.Request.Context())
	if err != nil {
		h.handleError(c, "ActiveOrders", "models.GetActiveOrders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := models.UpdateOrderStatus(c.Request.Context(), id, req.Status); err != nil {
		h.handleError(c, "UpdateOrderStatus", "models.UpdateOrderStatus", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) ArchiveOrders(c *gin.Context) {
	archived, err := models.ArchiveOldOrders(c.Request.Context())
	if err != nil {
		h.handleError(c, "ArchiveOrders", "models.ArchiveOldOrders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "archived": archived})
}

/* menu */

func (h *Handler) GetMenu(c *gin.Context) {
	menu, err := models.GetMenu(c.Request.Context())
	if err != nil {
		h.handleError(c, "GetMenu", "models.GetMenu", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "categories": menu})
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	category, err := models.CreateCategory(c.Request.Context(), &models.NewCategory{Name: req.Name, Rank: req.Rank})
	if err != nil {
		h.handleError(c, "CreateCategory", "models.CreateCategory", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "category": category})
}

func (h *Handler) CreateMenuItem(c *gin.Context) {
	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	item, err := models.CreateMenuItem(c.Request.Context(), &models.NewMenuItem{
		Name:       req.Name,
		Price:      req.Price,
		CategoryId: req.CategoryId,
	})
	if err != nil {
		h.handleError(c, "CreateMenuItem", "models.CreateMenuItem", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "item": item})
}

/* inventory */

func (h *Handler) ListInventory(c *gin.Context) {
	items, err := models.GetInventory(c.Request.Context())
	if err != nil {
		h.handleError(c, "ListInventory", "models.GetInventory", err)
		return
	}

	type inventoryRow struct {
		*models.InventoryItem
		LowStock bool `json:"low_stock"`
	}
	rows := make([]inventoryRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, inventoryRow{InventoryItem: item, LowStock: item.IsLowStock()})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "items": rows})
}

func (h *Handler) CreateInventoryItem(c *gin.Context) {
	var req CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	item, err := models.CreateInventoryItem(c.Request.Context(), &models.NewInventoryItem{
		Name:          req.Name,
		Unit:          req.Unit,
		MinStockLevel: req.MinStockLevel,
	})
	if err != nil {
		h.handleError(c, "CreateInventoryItem", "models.CreateInventoryItem", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "item": item})
}

func (h *Handler) AdjustStock(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var req StockAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	logType, err := models.ParseStockLogType(req.Type)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	err = models.UpdateStock(c.Request.Context(), id, logType, &models.NewStockAdjustment{
		Quantity:  req.Quantity,
		StaffName: req.StaffName,
		Reason:    req.Reason,
	})
	if err != nil {
		h.handleError(c, "AdjustStock", "models.UpdateStock", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) StockLogs(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	logs, err := models.GetStockLogs(c.Request.Context(), id, limit)
	if err != nil {
		h.handleError(c, "StockLogs", "models.GetStockLogs", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "logs": logs})
}

/* reports */

func (h *Handler) RevenueReport(c *gin.Context) {
	days, _ := strconv.Atoi(c.Query("days"))

	daily, err := models.GetDailyRevenue(c.Request.Context(), days)
	if err != nil {
		h.handleError(c, "RevenueReport", "models.GetDailyRevenue", err)
		return
	}
	sources, err := models.GetSourceRevenue(c.Request.Context())
	if err != nil {
		h.handleError(c, "RevenueReport", "models.GetSourceRevenue", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "daily": daily, "sources": sources})
}

func (h *Handler) RevenueExport(c *gin.Context) {
	days, _ := strconv.Atoi(c.Query("days"))

	f, err := models.ExportRevenueXlsx(c.Request.Context(), days)
	if err != nil {
		h.handleError(c, "RevenueExport", "models.ExportRevenueXlsx", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="revenue.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		config.LogError(h.logger, "handlers", "RevenueExport", "xlsx write", nil, err)
	}
}

/* settings */

func (h *Handler) UpdateStoreSettings(c *gin.Context) {
	var req StoreSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := models.UpdateStoreSettings(c.Request.Context(), req.StoreName); err != nil {
		h.handleError(c, "UpdateStoreSettings", "models.UpdateStoreSettings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
