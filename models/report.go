package models

import (
	"context"

	"github.com/masaladesk/restro_backend/config"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// DailyRevenue is one row of the revenue insights table: per-day order
// count, GST payable and gross sales.
type DailyRevenue struct {
	Date       string          `json:"date"`
	Orders     int64           `json:"orders"`
	GstTotal   decimal.Decimal `json:"gst_total"`
	SalesTotal decimal.Decimal `json:"sales_total"`
}

type SourceRevenue struct {
	Source     OrderSource     `json:"source"`
	Orders     int64           `json:"orders"`
	SalesTotal decimal.Decimal `json:"sales_total"`
}

// GetDailyRevenue aggregates orders per store-local day, newest first.
func GetDailyRevenue(ctx context.Context, days int) ([]*DailyRevenue, error) {
	if days <= 0 || days > 365 {
		days = 30
	}

	db := config.GetDB()
	var results []*DailyRevenue
	err := db.WithContext(ctx).Raw(`
		SELECT
			DATE_FORMAT(token_date, '%Y-%m-%d') AS date,
			COUNT(id) AS orders,
			COALESCE(SUM(gst_amount), 0) AS gst_total,
			COALESCE(SUM(total_amount), 0) AS sales_total
		FROM orders
		GROUP BY token_date
		ORDER BY token_date DESC
		LIMIT ?
	`, days).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetSourceRevenue breaks sales down per channel (POS / aggregators).
func GetSourceRevenue(ctx context.Context) ([]*SourceRevenue, error) {
	db := config.GetDB()
	var results []*SourceRevenue
	err := db.WithContext(ctx).Raw(`
		SELECT
			source,
			COUNT(id) AS orders,
			COALESCE(SUM(total_amount), 0) AS sales_total
		FROM orders
		GROUP BY source
		ORDER BY sales_total DESC
	`).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ExportRevenueXlsx renders the daily revenue table as a spreadsheet for
// the accountant.
func ExportRevenueXlsx(ctx context.Context, days int) (*excelize.File, error) {
	rows, err := GetDailyRevenue(ctx, days)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Revenue"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Orders", "GST (5%)", "Revenue"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.Date,
			row.Orders,
			row.GstTotal.InexactFloat64(),
			row.SalesTotal.InexactFloat64(),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "D", 16); err != nil {
		return nil, err
	}
	return f, nil
}
