package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"restock/config"
	"restock/database"
	"restock/forecast"
	"restock/handlers"
	"restock/insight"
	"restock/models"
	"restock/regression"
	"restock/routes"
	"restock/services"
	"restock/upstream"
	"restock/utils"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	app := &cli.App{
		Name:  "restock",
		Usage: "7-day demand forecasts and restock decisions",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "model-dir", Usage: "directory of model artifacts", EnvVars: []string{"MODEL_DIR"}},
			&cli.StringFlag{Name: "model-resolution", Usage: "strict or fallback_to_any", EnvVars: []string{"MODEL_RESOLUTION"}},
		},
		Commands: []*cli.Command{
			serveCommand(),
			forecastCommand(),
			modelsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadConfig reads the environment and applies global flag overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if c.IsSet("model-dir") {
		cfg.ModelDir = c.String("model-dir")
	}
	if c.IsSet("model-resolution") {
		if cfg.ModelResolution, err = forecast.ParseResolutionMode(c.String("model-resolution")); err != nil {
			return cfg, err
		}
	}
	return cfg, cfg.Validate()
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "listen port", EnvVars: []string{"PORT"}},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if c.IsSet("port") {
				cfg.Port = c.String("port")
			}

			// Models are loaded before the listener starts and never change afterwards.
			registry, err := regression.LoadRegistry(cfg.ModelDir, cfg.ModelResolution)
			if err != nil {
				return err
			}

			var history services.HistoryProvider
			var catalog services.CatalogProvider
			if cfg.DatabaseURL == "" {
				log.Println("DATABASE_URL is not set, forecasting from empty history")
			} else {
				ctx, cancel := context.WithTimeout(context.Background(), cfg.UpstreamTimeout)
				pool, err := database.Connect(ctx, cfg.DatabaseURL)
				cancel()
				if err != nil {
					log.Printf("Database disabled, forecasting from empty history: %v", err)
				} else {
					defer database.Close(pool)
					history = database.NewSalesRepository(pool)
					catalog = database.NewProductRepository(pool)
				}
			}

			var narrator insight.Narrator
			if g := insight.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel); g != nil {
				narrator = g
			}

			svc := services.NewForecastService(
				registry,
				history,
				upstream.NewStockClient(cfg.StockServiceURL, cfg.UpstreamTimeout),
				catalog,
				services.Options{
					Timeout:       cfg.UpstreamTimeout,
					StrictHistory: cfg.StrictHistory(),
					Pad:           cfg.HistoryPad,
				},
			)
			app := routes.NewApp(handlers.New(svc, narrator))

			errc := make(chan error, 1)
			go func() {
				log.Printf("Listening on :%s", cfg.Port)
				errc <- app.Listen(":" + cfg.Port)
			}()

			sigc := make(chan os.Signal, 1)
			signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
			select {
			case err := <-errc:
				return err
			case s := <-sigc:
				log.Printf("Received %s, shutting down", s)
			}
			return app.ShutdownWithTimeout(10 * time.Second)
		},
	}
}

func forecastCommand() *cli.Command {
	return &cli.Command{
		Name:      "forecast",
		Usage:     "forecast one product and print the restock decision",
		ArgsUsage: "PRODUCT_ID",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "history", Usage: "comma separated daily sales, oldest first, instead of the database"},
			&cli.IntFlag{Name: "stock", Usage: "current stock, instead of asking the stock service"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			productID, err := utils.ParseProductID(c.Args().First())
			if err != nil {
				return fmt.Errorf("usage: restock forecast PRODUCT_ID: %w", err)
			}

			registry, err := regression.LoadRegistry(cfg.ModelDir, cfg.ModelResolution)
			if err != nil {
				return err
			}

			var history services.HistoryProvider
			if c.IsSet("history") {
				values, err := parseHistory(c.String("history"))
				if err != nil {
					return err
				}
				history = staticHistory(values)
			} else if cfg.DatabaseURL != "" {
				pool, err := database.Connect(c.Context, cfg.DatabaseURL)
				if err != nil {
					return err
				}
				defer database.Close(pool)
				history = database.NewSalesRepository(pool)
			}

			var stock services.StockProvider = upstream.NewStockClient(cfg.StockServiceURL, cfg.UpstreamTimeout)
			if c.IsSet("stock") {
				stock = staticStock(c.Int("stock"))
			}

			svc := services.NewForecastService(registry, history, stock, nil, services.Options{
				Timeout:       cfg.UpstreamTimeout,
				StrictHistory: cfg.StrictHistory(),
				Pad:           cfg.HistoryPad,
			})
			pf, decision, err := svc.Restock(c.Context, productID)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(models.AutoRestockResponse{
				Forecast: models.NewForecastResponse(pf),
				Decision: decision.Decision,
				Amount:   decision.Amount,
			})
		},
	}
}

func modelsCommand() *cli.Command {
	return &cli.Command{
		Name:  "models",
		Usage: "list the products that have a model",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			registry, err := regression.LoadRegistry(cfg.ModelDir, cfg.ModelResolution)
			if err != nil {
				return err
			}
			for _, id := range registry.ProductIDs() {
				fmt.Println(id)
			}
			return nil
		},
	}
}

type staticHistory []float64

func (h staticHistory) RecentDailySales(_ context.Context, _ int, days int) ([]float64, error) {
	if len(h) > days {
		return h[len(h)-days:], nil
	}
	return h, nil
}

type staticStock int

func (s staticStock) CurrentStock(context.Context, int) (int, error) {
	return int(s), nil
}

func parseHistory(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid history value %q", part)
		}
		out = append(out, v)
	}
	return out, nil
}
