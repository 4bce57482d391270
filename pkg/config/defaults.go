package config

import "time"

const (
	DefaultMongoDatabaseName = "sample_airbnb"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultBookingsCollection = "bookings"
	DefaultListingsCollection = "listingsAndReviews"

	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultListingsCacheTTL = 5 * time.Minute

	DefaultKafkaBookingsTopic = "bookings.events"

	DefaultBookingsAPIURL   = "http://localhost:8080"
	DefaultListingsAPIURL   = "http://localhost:8081"
	DefaultAPIClientTimeout = 10 * time.Second

	DefaultPaginationLimit = 50
	MaxPaginationLimit     = 200

	// MaxListingResults caps a single listings search.
	MaxListingResults = 50
)

// DefaultPorts lets the services run side by side without PORT overrides.
// Services not listed fall back to DefaultPort.
var DefaultPorts = map[string]string{
	"bookings": "8080",
	"listings": "8081",
	"web":      "3000",
}

func defaultPort(serviceName string) string {
	if port, ok := DefaultPorts[serviceName]; ok {
		return port
	}
	return DefaultPort
}
