package database

import (
	"context"
	"fmt"
	"time"
)

// SalesRepository reads per-product sales from the transactions table.
type SalesRepository struct {
	db Querier
}

func NewSalesRepository(db Querier) *SalesRepository {
	return &SalesRepository{db: db}
}

// RecentDailySales returns one value per calendar day for the last days days
// up to and including today, oldest first. Days without sales count as zero.
// The series never starts before the product's first sale, so a product sold
// for only three days yields three values and one never sold yields none.
// Calendar days are the database's.
func (r *SalesRepository) RecentDailySales(ctx context.Context, productID, days int) ([]float64, error) {
	if days <= 0 {
		return nil, nil
	}

	var firstSale *time.Time
	var today time.Time
	err := r.db.QueryRow(ctx, `
        SELECT MIN(transaction_date)::date, CURRENT_DATE
        FROM transactions
        WHERE product_id = $1
    `, productID).Scan(&firstSale, &today)
	if err != nil {
		return nil, fmt.Errorf("failed to query first sale: %w", err)
	}
	if firstSale == nil {
		return nil, nil
	}

	start := today.AddDate(0, 0, -(days - 1))
	if firstSale.After(start) {
		start = *firstSale
	}
	if start.After(today) {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `
        SELECT transaction_date::date AS day, SUM(quantity_sold)::float8 AS quantity
        FROM transactions
        WHERE product_id = $1 AND transaction_date::date BETWEEN $2::date AND $3::date
        GROUP BY day
        ORDER BY day
    `, productID, start.Format(dateLayout), today.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query sales history: %w", err)
	}
	defer rows.Close()

	history := make([]float64, daysBetween(start, today)+1)
	for rows.Next() {
		var day time.Time
		var qty float64
		if err := rows.Scan(&day, &qty); err != nil {
			return nil, fmt.Errorf("failed to scan sales row: %w", err)
		}
		if i := daysBetween(start, day); i >= 0 && i < len(history) {
			history[i] += qty
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sales history: %w", err)
	}
	return history, nil
}

const dateLayout = "2006-01-02"

// daysBetween counts calendar days from a to b. Both are dates as scanned by
// pgx, i.e. midnight UTC.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Round(time.Hour) / (24 * time.Hour))
}
