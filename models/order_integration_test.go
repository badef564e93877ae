package models_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/masaladesk/restro_backend/config"
	"github.com/masaladesk/restro_backend/models"
	"github.com/shopspring/decimal"
)

func newOrderInput(items ...models.NewOrderItem) *models.NewOrder {
	if len(items) == 0 {
		items = []models.NewOrderItem{
			{ItemName: "Butter Naan", Quantity: 2, Price: decimal.RequireFromString("45.00")},
		}
	}
	return &models.NewOrder{Items: items}
}

func TestCreatePosOrder_SequentialTokens(t *testing.T) {
	setupIntegration(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		order, err := models.CreatePosOrder(ctx, newOrderInput())
		if err != nil {
			t.Fatalf("CreatePosOrder #%d: %v", i, err)
		}
		expected := fmt.Sprintf("TK-%03d", i)
		if order.TokenNumber != expected {
			t.Fatalf("order #%d expected token %s, got %s", i, expected, order.TokenNumber)
		}
		if order.Status != models.OrderStatusReceived || order.Source != models.OrderSourcePos {
			t.Fatalf("order #%d has wrong defaults: %s/%s", i, order.Status, order.Source)
		}
	}
}

func TestCreatePosOrder_TokenResetsAfterMidnight(t *testing.T) {
	setupIntegration(t)
	ctx := context.Background()
	db := config.GetDB()

	order, err := models.CreatePosOrder(ctx, newOrderInput())
	if err != nil {
		t.Fatalf("CreatePosOrder: %v", err)
	}
	if order.TokenNumber != "TK-001" {
		t.Fatalf("expected TK-001, got %s", order.TokenNumber)
	}

	// push yesterday's trade back a day; the next order starts a fresh sequence
	if err := db.Exec(
		"UPDATE orders SET token_date = DATE_SUB(token_date, INTERVAL 1 DAY), created_at = DATE_SUB(created_at, INTERVAL 1 DAY)",
	).Error; err != nil {
		t.Fatalf("backdate orders: %v", err)
	}

	next, err := models.CreatePosOrder(ctx, newOrderInput())
	if err != nil {
		t.Fatalf("CreatePosOrder after midnight: %v", err)
	}
	if next.TokenNumber != "TK-001" {
		t.Fatalf("expected fresh TK-001 after midnight, got %s", next.TokenNumber)
	}
}

// Two simultaneous creations must never share a token: the unique index on
// (token_date, token_seq) forces the loser to re-read and retry.
func TestCreatePosOrder_ConcurrentTokensAreDistinct(t *testing.T) {
	setupIntegration(t)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	tokens := make(chan string, n)
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			order, err := models.CreatePosOrder(ctx, newOrderInput())
			if err != nil {
				errs <- err
				return
			}
			tokens <- order.TokenNumber
		}()
	}
	wg.Wait()
	close(tokens)
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent CreatePosOrder: %v", err)
	}
	seen := map[string]bool{}
	for token := range tokens {
		if seen[token] {
			t.Fatalf("duplicate token issued: %s", token)
		}
		seen[token] = true
	}
	if len(seen) != n {
		t.Fatalf("expected %d distinct tokens, got %d", n, len(seen))
	}
}

func TestCreatePosOrder_GstBreakdownPersisted(t *testing.T) {
	setupIntegration(t)
	ctx := context.Background()

	order, err := models.CreatePosOrder(ctx, newOrderInput(
		models.NewOrderItem{ItemName: "Paneer Tikka", Quantity: 1, Price: decimal.RequireFromString("55.00")},
		models.NewOrderItem{ItemName: "Lassi", Quantity: 3, Price: decimal.RequireFromString("15.00")},
	))
	if err != nil {
		t.Fatalf("CreatePosOrder: %v", err)
	}

	stored, err := models.GetOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if stored.TotalAmount.StringFixed(2) != "100.00" {
		t.Fatalf("expected total 100.00, got %s", stored.TotalAmount.StringFixed(2))
	}
	if stored.NetAmount.StringFixed(2) != "95.24" || stored.GstAmount.StringFixed(2) != "4.76" {
		t.Fatalf("expected 95.24/4.76, got %s/%s", stored.NetAmount.StringFixed(2), stored.GstAmount.StringFixed(2))
	}
	if len(stored.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(stored.Items))
	}

	drift := stored.NetAmount.Add(stored.GstAmount).Sub(stored.TotalAmount).Abs()
	if drift.GreaterThan(decimal.RequireFromString("0.01")) {
		t.Fatalf("net+gst drifts from total by %s", drift)
	}
}

func TestCreatePosOrder_RejectsBadInput(t *testing.T) {
	setupIntegration(t)
	ctx := context.Background()

	cases := []*models.NewOrder{
		{},
		{Items: []models.NewOrderItem{{ItemName: "X", Quantity: 0, Price: decimal.NewFromInt(10)}}},
		{Items: []models.NewOrderItem{{ItemName: "X", Quantity: 1, Price: decimal.NewFromInt(-1)}}},
		{Items: []models.NewOrderItem{{ItemName: "   ", Quantity: 1, Price: decimal.NewFromInt(10)}}},
	}
	for i, input := range cases {
		if _, err := models.CreatePosOrder(ctx, input); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}

	var count int64
	if err := config.GetDB().Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if count != 0 {
		t.Fatalf("rejected orders must not be written, found %d", count)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	setupIntegration(t)
	ctx := context.Background()

	order, err := models.CreatePosOrder(ctx, newOrderInput())
	if err != nil {
		t.Fatalf("CreatePosOrder: %v", err)
	}

	if err := models.UpdateOrderStatus(ctx, order.ID, "PREPARING"); err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	stored, err := models.GetOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if stored.Status != models.OrderStatusPreparing {
		t.Fatalf("expected PREPARING, got %s", stored.Status)
	}

	// unknown status is rejected before any write
	if err := models.UpdateOrderStatus(ctx, order.ID, "DELIVERED"); err == nil {
		t.Fatal("expected validation error for unknown status")
	}

	// missing id affects zero rows and still succeeds
	if err := models.UpdateOrderStatus(ctx, 999999, "READY"); err != nil {
		t.Fatalf("missing id must not error: %v", err)
	}
}

func TestArchiveOldOrders(t *testing.T) {
	setupIntegration(t)
	ctx := context.Background()
	db := config.GetDB()

	// create first, backdate afterwards: order creation itself runs a
	// best-effort sweep and must not see the aged rows early
	ids := make([]int, 3)
	for i := range ids {
		order, err := models.CreatePosOrder(ctx, newOrderInput())
		if err != nil {
			t.Fatalf("CreatePosOrder: %v", err)
		}
		ids[i] = order.ID
	}
	backdate := func(id int, status models.OrderStatus, age time.Duration) {
		t.Helper()
		if err := db.Exec("UPDATE orders SET status = ?, created_at = ? WHERE id = ?",
			status, time.Now().Add(-age), id).Error; err != nil {
			t.Fatalf("prepare order: %v", err)
		}
	}
	oldCompleted, freshCompleted, oldActive := ids[0], ids[1], ids[2]
	backdate(oldCompleted, models.OrderStatusCompleted, 49*time.Hour)
	backdate(freshCompleted, models.OrderStatusCompleted, 47*time.Hour)
	backdate(oldActive, models.OrderStatusPreparing, 72*time.Hour)

	archived, err := models.ArchiveOldOrders(ctx)
	if err != nil {
		t.Fatalf("ArchiveOldOrders: %v", err)
	}
	if archived != 1 {
		t.Fatalf("expected 1 archived order, got %d", archived)
	}

	status := func(id int) models.OrderStatus {
		var s models.OrderStatus
		if err := db.Model(&models.Order{}).Where("id = ?", id).Select("status").Scan(&s).Error; err != nil {
			t.Fatalf("read status: %v", err)
		}
		return s
	}
	if status(oldCompleted) != models.OrderStatusArchived {
		t.Fatal("49h-old completed order must be archived")
	}
	if status(freshCompleted) != models.OrderStatusCompleted {
		t.Fatal("47h-old completed order must stay visible")
	}
	if status(oldActive) != models.OrderStatusPreparing {
		t.Fatal("sweep must never touch non-terminal orders")
	}

	// idempotent: a second sweep matches nothing
	archived, err = models.ArchiveOldOrders(ctx)
	if err != nil || archived != 0 {
		t.Fatalf("second sweep expected 0 rows, got %d (%v)", archived, err)
	}
}
