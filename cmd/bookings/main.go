package main

import (
	"context"

	"staybook/internal/bookings/events"
	"staybook/internal/bookings/handler"
	"staybook/internal/bookings/repository"
	"staybook/internal/bookings/service"
	"staybook/internal/bookings/validator"
	"staybook/pkg/app"
	"staybook/pkg/client"
	"staybook/pkg/config"
	"staybook/pkg/metrics"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	if err := cfg.RequireMongo(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.Log.Info("Starting Bookings service")
	m := metrics.New()
	clients := initClients(cfg, m)
	bookingService := initServices(cfg, clients, m)

	opts := []app.Option{
		app.WithMetrics(m),
		app.WithHealthCheck("mongo", clients.Mongo),
		app.WithCloser(clients.Close),
	}
	if clients.Redis != nil {
		opts = append(opts, app.WithRedis(clients.Redis))
	}

	serverApp := app.NewApplication(cfg, opts...)
	serverApp.SetApp(handler.NewBookingHandler(bookingService, cfg.Log))
	serverApp.Run()
}

func initClients(cfg *config.Config, m *metrics.Metrics) *client.Client {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()

	clients := client.NewClient()
	if err := clients.SetMongo(ctx, cfg); err != nil {
		cfg.Log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	if err := clients.SetRedis(ctx, cfg); err != nil {
		cfg.Log.Fatal("Failed to connect to Redis", "error", err)
	}
	if err := clients.SetKafkaProducer(cfg, m); err != nil {
		cfg.Log.Fatal("Failed to configure Kafka producer", "error", err)
	}
	return clients
}

func initServices(cfg *config.Config, clients *client.Client, m *metrics.Metrics) service.BookingService {
	var publisher events.Publisher = events.NoopPublisher{}
	if clients.Producer != nil {
		publisher = events.NewKafkaPublisher(clients.Producer, ServiceName)
	} else {
		cfg.Log.Warn("No Kafka brokers configured, booking events are not published")
	}

	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg, clients.Mongo)
	bookingService := service.NewBookingService(
		bookingRepo,
		bookingValidator,
		publisher,
		m,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName, "collection", cfg.BookingsCollection)
	return bookingService
}
