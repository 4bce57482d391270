package main

import (
	"context"
	"fmt"
	"time"

	mongoMigration "staybook/internal/migrations/mongo"
	"staybook/pkg/client"
	"staybook/pkg/config"
)

const JobName = "mongo-migration"

func main() {
	cfg := config.Load(JobName)
	if err := cfg.RequireMongo(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.Log.Info("Starting Mongo migration job")
	if err := migrateMongo(cfg); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	fmt.Println("Migration completed successfully.")
}

func migrateMongo(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	clients := client.NewClient()
	if err := clients.SetMongo(ctx, cfg); err != nil {
		return err
	}
	defer func() {
		if err := clients.Close(context.Background()); err != nil {
			cfg.Log.Error("Failed to disconnect from MongoDB", "error", err)
		}
	}()

	return mongoMigration.RunMigration(ctx, clients.Mongo.DB, cfg)
}
