package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stockServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestCurrentStock(t *testing.T) {
	var gotPath string
	srv := stockServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"product_id": 42, "current_stock": 17}`))
	})

	qty, err := NewStockClient(srv.URL+"/", time.Second).CurrentStock(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 17, qty)
	assert.Equal(t, "/stock/42", gotPath)
}

func TestCurrentStockMissingFieldIsZero(t *testing.T) {
	srv := stockServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"product_id": 42}`))
	})

	qty, err := NewStockClient(srv.URL, time.Second).CurrentStock(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 0, qty)
}

func TestCurrentStockFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"not found": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"product not found"}`))
		},
		"bad body": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>oops</html>`))
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := stockServer(t, h)
			_, err := NewStockClient(srv.URL, time.Second).CurrentStock(context.Background(), 1)
			assert.ErrorIs(t, err, ErrUpstreamUnavailable)
		})
	}
}

func TestCurrentStockUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewStockClient(url, 200*time.Millisecond).CurrentStock(context.Background(), 1)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestCurrentStockTimeout(t *testing.T) {
	srv := stockServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`{"current_stock": 1}`))
	})

	_, err := NewStockClient(srv.URL, 50*time.Millisecond).CurrentStock(context.Background(), 1)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestCurrentStockCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStockClient("http://127.0.0.1:1", time.Second).CurrentStock(ctx, 1)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}
