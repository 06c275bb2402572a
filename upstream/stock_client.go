// Package upstream talks to the services this one depends on over HTTP.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrUpstreamUnavailable wraps every failure to get an answer from a dependency.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// StockClient reads current stock levels from the stock service.
type StockClient struct {
	baseURL string
	timeout time.Duration
}

func NewStockClient(baseURL string, timeout time.Duration) *StockClient {
	return &StockClient{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

// Stock lookups are never retried; the caller falls back instead.
func noRetry(*fiber.Request) bool { return false }

type stockResponse struct {
	CurrentStock *int `json:"current_stock"`
}

// CurrentStock calls GET /stock/:id. A 200 response without current_stock
// reports zero. Any other status, a transport error or an unreadable body is
// returned wrapped in ErrUpstreamUnavailable.
func (c *StockClient) CurrentStock(ctx context.Context, productID int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	timeout := c.timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}

	url := fmt.Sprintf("%s/stock/%d", c.baseURL, productID)
	agent := fiber.Get(url).Timeout(timeout).RetryIf(noRetry)
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return 0, fmt.Errorf("%w: stock service: %v", ErrUpstreamUnavailable, errors.Join(errs...))
	}
	if code != fiber.StatusOK {
		return 0, fmt.Errorf("%w: stock service returned status %d", ErrUpstreamUnavailable, code)
	}

	var resp stockResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("%w: decode stock response: %v", ErrUpstreamUnavailable, err)
	}
	if resp.CurrentStock == nil {
		return 0, nil
	}
	return *resp.CurrentStock, nil
}
