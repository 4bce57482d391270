package main

import (
	"context"

	"staybook/internal/web/handler"
	"staybook/pkg/app"
	"staybook/pkg/client"
	"staybook/pkg/config"
	"staybook/pkg/metrics"
)

const ServiceName = "web"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Web frontend")
	m := metrics.New()
	clients := initClients(cfg, m)
	waitForAPIs(cfg, clients)

	webHandler, err := handler.NewWebHandler(clients.BookingClient, clients.ListingClient, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to load page templates", "error", err)
	}

	serverApp := app.NewApplication(cfg,
		app.WithMetrics(m),
		app.WithFormPosts(),
	)
	serverApp.SetApp(webHandler)
	serverApp.Run()
}

func initClients(cfg *config.Config, m *metrics.Metrics) *client.Client {
	clients := client.NewClient()
	clients.SetBookingClient(cfg.BookingsAPIURL,
		client.WithTimeout(cfg.APIClientTimeout),
		client.WithMetrics(m, "bookings"),
	)
	clients.SetListingClient(cfg.ListingsAPIURL,
		client.WithTimeout(cfg.APIClientTimeout),
		client.WithMetrics(m, "listings"),
	)
	cfg.Log.Info("API clients configured", "bookings", cfg.BookingsAPIURL, "listings", cfg.ListingsAPIURL)
	return clients
}

// waitForAPIs only warns; pages report their own load failures.
func waitForAPIs(cfg *config.Config, clients *client.Client) {
	ctx := context.Background()
	if err := clients.BookingClient.WaitForHealthy(ctx, cfg.APIClientTimeout); err != nil {
		cfg.Log.Warn("Bookings API is not healthy yet", "url", cfg.BookingsAPIURL, "error", err)
	}
	if err := clients.ListingClient.WaitForHealthy(ctx, cfg.APIClientTimeout); err != nil {
		cfg.Log.Warn("Listings API is not healthy yet", "url", cfg.ListingsAPIURL, "error", err)
	}
}
