package main

import (
	"context"

	"staybook/internal/listings/cache"
	"staybook/internal/listings/handler"
	"staybook/internal/listings/repository"
	"staybook/internal/listings/service"
	"staybook/pkg/app"
	"staybook/pkg/client"
	"staybook/pkg/config"
	"staybook/pkg/health"
	"staybook/pkg/metrics"
)

const ServiceName = "listings"

func main() {
	cfg := config.Load(ServiceName)
	if err := cfg.RequireMongo(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.Log.Info("Starting Listings service")
	clients := initClients(cfg)
	m := metrics.New()
	listingService := initServices(cfg, clients, m)

	opts := []app.Option{
		app.WithMetrics(m),
		app.WithHealthCheck("mongo", clients.Mongo),
		app.WithCloser(clients.Close),
	}
	if clients.Redis != nil {
		opts = append(opts,
			app.WithRedis(clients.Redis),
			app.WithHealthCheck("redis", health.PingFunc(func(ctx context.Context) error {
				return clients.Redis.Ping(ctx).Err()
			})),
		)
	}

	serverApp := app.NewApplication(cfg, opts...)
	serverApp.SetApp(handler.NewListingHandler(listingService, cfg.Log))
	serverApp.Run()
}

func initClients(cfg *config.Config) *client.Client {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()

	clients := client.NewClient()
	if err := clients.SetMongo(ctx, cfg); err != nil {
		cfg.Log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	if err := clients.SetRedis(ctx, cfg); err != nil {
		cfg.Log.Fatal("Failed to connect to Redis", "error", err)
	}
	return clients
}

func initServices(cfg *config.Config, clients *client.Client, m *metrics.Metrics) service.ListingService {
	var listingCache cache.Cache
	if clients.Redis != nil {
		listingCache = cache.NewRedisCache(clients.Redis, cfg.ListingsCacheTTL, m)
		cfg.Log.Info("Listing search cache enabled", "ttl", cfg.ListingsCacheTTL)
	}

	listingRepo := repository.NewMongoListingRepository(cfg, clients.Mongo)
	listingService := service.NewListingService(listingRepo, listingCache, cfg)

	cfg.Log.Info("Listing service initialized", "database", cfg.MongoDatabaseName, "collection", cfg.ListingsCollection)
	return listingService
}
