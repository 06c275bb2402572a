package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
)

// ErrProductNotFound is returned when the catalog has no row for a product.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository reads product master data.
type ProductRepository struct {
	db Querier
}

func NewProductRepository(db Querier) *ProductRepository {
	return &ProductRepository{db: db}
}

// ProductName returns the display name of a product. A NULL name is returned
// as an empty string.
func (r *ProductRepository) ProductName(ctx context.Context, productID int) (string, error) {
	var name *string
	err := r.db.QueryRow(ctx, "SELECT name FROM products WHERE id = $1", productID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrProductNotFound
		}
		return "", fmt.Errorf("failed to query product name: %w", err)
	}
	if name == nil {
		return "", nil
	}
	return *name, nil
}
