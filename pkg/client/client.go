package client

import (
	"context"
	"errors"
	"fmt"

	"staybook/pkg/config"
	"staybook/pkg/db/mongostore"
	"staybook/pkg/kafka"
	kafka_config "staybook/pkg/kafka/config"
	kafka_middleware "staybook/pkg/kafka/middleware"
	"staybook/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

// Client holds the long-lived connections a service opens at startup:
// stores for the API services, API clients for the web frontend.
type Client struct {
	Mongo    *mongostore.Store
	Redis    redis.UniversalClient
	Producer *kafka.Producer

	BookingClient *BookingClient
	ListingClient *ListingClient
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) SetMongo(ctx context.Context, cfg *config.Config) error {
	store, err := mongostore.Connect(ctx, mongostore.Config{
		ConnectionString: cfg.MongoURI,
		Database:         cfg.MongoDatabaseName,
		ConnTimeout:      cfg.MongoConnTimeout,
		AppName:          cfg.ServiceName,
	})
	if err != nil {
		return err
	}

	cfg.Log.Info("Successfully connected to MongoDB", "database", cfg.MongoDatabaseName)
	c.Mongo = store
	return nil
}

// SetRedis is a no-op when no address is configured.
func (c *Client) SetRedis(ctx context.Context, cfg *config.Config) error {
	if cfg.RedisAddr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}

	cfg.Log.Info("Successfully connected to Redis", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	c.Redis = rdb
	return nil
}

// SetKafkaProducer is a no-op when no brokers are configured.
func (c *Client) SetKafkaProducer(cfg *config.Config, m *metrics.Metrics) error {
	if len(cfg.KafkaBrokers) == 0 {
		return nil
	}

	kafkaCfg, err := kafka_config.Load(cfg.KafkaBrokers)
	if err != nil {
		return err
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.KafkaBookingsTopic, cfg.Log)
	if err != nil {
		return err
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	producer.Use(kafka_middleware.MetricsProducerMiddleware(m))

	cfg.Log.Info("Kafka producer configured", "topic", cfg.KafkaBookingsTopic, "brokers", cfg.KafkaBrokers)
	c.Producer = producer
	return nil
}

func (c *Client) SetBookingClient(baseURL string, opts ...Option) {
	c.BookingClient = NewBookingClient(baseURL, opts...)
}

func (c *Client) SetListingClient(baseURL string, opts ...Option) {
	c.ListingClient = NewListingClient(baseURL, opts...)
}

func (c *Client) Close(ctx context.Context) error {
	var errs []error
	if c.Producer != nil {
		errs = append(errs, c.Producer.Close())
	}
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.Mongo != nil {
		errs = append(errs, c.Mongo.Disconnect(ctx))
	}
	return errors.Join(errs...)
}
