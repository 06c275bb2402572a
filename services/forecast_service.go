// Package services wires the data sources, the forecast engine and the restock
// policy into the operations exposed over HTTP and the CLI.
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"restock/database"
	"restock/forecast"
	"restock/restock"
	"restock/utils"
)

// HistoryProvider supplies recent daily sales, oldest first. It may return
// fewer than days values.
type HistoryProvider interface {
	RecentDailySales(ctx context.Context, productID, days int) ([]float64, error)
}

// StockProvider supplies the current on-hand quantity of a product.
type StockProvider interface {
	CurrentStock(ctx context.Context, productID int) (int, error)
}

// CatalogProvider supplies product display names.
type CatalogProvider interface {
	ProductName(ctx context.Context, productID int) (string, error)
}

// Options controls how the service treats missing data.
type Options struct {
	// Timeout bounds each call to a provider.
	Timeout time.Duration
	// StrictHistory rejects products with fewer than forecast.Window days of
	// sales instead of padding them.
	StrictHistory bool
	Pad           forecast.PadStrategy
}

// ProductForecast is everything produced for one forecast request.
type ProductForecast struct {
	ProductID   int
	ProductName string
	Model       forecast.Handle
	// HistoryDays is the number of real observations behind Window; the rest
	// is padding.
	HistoryDays int
	Window      []float64
	Result      forecast.Result
	Stock       restock.StockSnapshot
}

// Demand is the aggregate forecast in whole units.
func (p *ProductForecast) Demand() int {
	return p.Result.Units()
}

// ForecastService runs forecasts and restock checks. It holds no mutable
// state and is safe for concurrent use.
type ForecastService struct {
	registry *forecast.Registry
	history  HistoryProvider
	stock    StockProvider
	catalog  CatalogProvider
	opts     Options
}

// NewForecastService builds the service. history, stock and catalog may be
// nil, in which case their fallbacks are always used.
func NewForecastService(registry *forecast.Registry, history HistoryProvider, stock StockProvider, catalog CatalogProvider, opts Options) *ForecastService {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Pad == "" {
		opts.Pad = forecast.PadZero
	}
	return &ForecastService{registry: registry, history: history, stock: stock, catalog: catalog, opts: opts}
}

// Registry exposes the model registry the service resolves against.
func (s *ForecastService) Registry() *forecast.Registry {
	return s.registry
}

// Forecast predicts the next forecast.Horizon days of demand for a product and
// looks up its current stock. Only ErrModelNotFound and ErrInsufficientHistory
// are returned to the caller; unavailable data sources fall back to defaults.
func (s *ForecastService) Forecast(ctx context.Context, productID int) (*ProductForecast, error) {
	handle, err := s.registry.Resolve(productID)
	if err != nil {
		return nil, err
	}
	if handle.Substituted {
		log.Printf("No model for product %d, using model of product %d", productID, handle.SourceID)
	}

	raw, fetched := s.fetchHistory(ctx, productID)
	if s.opts.StrictHistory && fetched && len(raw) < forecast.Window {
		return nil, &forecast.InsufficientHistoryError{ProductID: productID, Have: len(raw), Need: forecast.Window}
	}
	window := forecast.Normalize(raw, forecast.Window, forecast.PadValue(raw, s.opts.Pad))

	res, err := forecast.Forecast(handle.Model, window)
	if err != nil {
		log.Printf("Model of product %d failed for product %d: %v", handle.SourceID, productID, err)
		return nil, fmt.Errorf("%w: model for product %d failed: %v", forecast.ErrModelNotFound, productID, err)
	}

	historyDays := len(raw)
	if historyDays > forecast.Window {
		historyDays = forecast.Window
	}
	return &ProductForecast{
		ProductID:   productID,
		ProductName: s.productName(ctx, productID),
		Model:       handle,
		HistoryDays: historyDays,
		Window:      window,
		Result:      res,
		Stock:       s.fetchStock(ctx, productID),
	}, nil
}

// Restock runs a forecast and decides whether the product must be reordered.
// Unknown stock counts as zero.
func (s *ForecastService) Restock(ctx context.Context, productID int) (*ProductForecast, restock.Decision, error) {
	pf, err := s.Forecast(ctx, productID)
	if err != nil {
		return nil, restock.Decision{}, err
	}
	return pf, restock.Decide(productID, pf.Demand(), restock.ResolveStock(pf.Stock)), nil
}

// fetchHistory returns the raw history and whether the sales source answered.
func (s *ForecastService) fetchHistory(ctx context.Context, productID int) ([]float64, bool) {
	if s.history == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	raw, err := s.history.RecentDailySales(ctx, productID, forecast.Window)
	if err != nil {
		log.Printf("Error fetching sales for product %d, using empty history: %v", productID, err)
		return nil, false
	}
	return raw, true
}

func (s *ForecastService) fetchStock(ctx context.Context, productID int) restock.StockSnapshot {
	if s.stock == nil {
		return restock.UnknownStock(productID)
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	qty, err := s.stock.CurrentStock(ctx, productID)
	if err != nil {
		log.Printf("Error fetching stock for product %d, treating it as 0: %v", productID, err)
		return restock.UnknownStock(productID)
	}
	return restock.StockSnapshot{ProductID: productID, Quantity: qty, Known: true}
}

func (s *ForecastService) productName(ctx context.Context, productID int) string {
	def := utils.DefaultProductName(productID)
	if s.catalog == nil {
		return def
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	name, err := s.catalog.ProductName(ctx, productID)
	if err != nil {
		if !errors.Is(err, database.ErrProductNotFound) {
			log.Printf("Error fetching product name for %d: %v", productID, err)
		}
		return def
	}
	return utils.StringOrDefault(&name, def)
}
