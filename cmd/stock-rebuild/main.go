// stock-rebuild replays the stock register and reconciles each inventory
// item's current_stock against SUM(quantity) of its log rows. Dry run by
// default; pass --apply to write corrected balances.
//
// Usage:
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... \
//     go run ./cmd/stock-rebuild [--item-id N] [--apply]
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/masaladesk/restro_backend/config"
	"github.com/masaladesk/restro_backend/models"
	"github.com/shopspring/decimal"
)

func main() {
	itemID := flag.Int("item-id", 0, "Optional: reconcile a single inventory item")
	apply := flag.Bool("apply", false, "Write corrected balances (default: report only)")
	flag.Parse()

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}

	var items []models.InventoryItem
	query := db.Order("id")
	if *itemID > 0 {
		query = query.Where("id = ?", *itemID)
	}
	if err := query.Find(&items).Error; err != nil {
		fmt.Fprintf(os.Stderr, "load inventory: %v\n", err)
		os.Exit(1)
	}
	if len(items) == 0 {
		fmt.Fprintln(os.Stderr, "no inventory items matched")
		os.Exit(1)
	}

	drift := 0
	for _, item := range items {
		var replayed decimal.Decimal
		err := db.Model(&models.StockLog{}).
			Where("inventory_id = ?", item.ID).
			Select("COALESCE(SUM(quantity), 0)").
			Scan(&replayed).Error
		if err != nil {
			fmt.Fprintf(os.Stderr, "item %d (%s): sum register: %v\n", item.ID, item.Name, err)
			os.Exit(1)
		}

		if replayed.Equal(item.CurrentStock) {
			continue
		}
		drift++
		fmt.Printf("item %d (%s): balance %s, register %s\n",
			item.ID, item.Name, item.CurrentStock.StringFixed(2), replayed.StringFixed(2))

		if !*apply {
			continue
		}
		err = db.Model(&models.InventoryItem{}).
			Where("id = ?", item.ID).
			UpdateColumns(map[string]interface{}{
				"current_stock": replayed,
				"updated_at":    time.Now(),
			}).Error
		if err != nil {
			fmt.Fprintf(os.Stderr, "item %d (%s): write balance: %v\n", item.ID, item.Name, err)
			os.Exit(1)
		}
		fmt.Printf("item %d (%s): corrected to %s\n", item.ID, item.Name, replayed.StringFixed(2))
	}

	switch {
	case drift == 0:
		fmt.Printf("checked %d items, register and balances agree\n", len(items))
	case *apply:
		fmt.Printf("checked %d items, corrected %d\n", len(items), drift)
	default:
		fmt.Printf("checked %d items, %d drifted (re-run with --apply to fix)\n", len(items), drift)
	}
}
