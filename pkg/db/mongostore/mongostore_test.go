package mongostore

import (
	"context"
	"errors"
	"testing"
)

func TestConnect_RequiresConnectionString(t *testing.T) {
	_, err := Connect(context.Background(), Config{Database: "sample_airbnb"})
	if !errors.Is(err, ErrMissingConnectionString) {
		t.Fatalf("expected ErrMissingConnectionString, got %v", err)
	}
}

func TestConnect_RequiresDatabase(t *testing.T) {
	_, err := Connect(context.Background(), Config{ConnectionString: "mongodb://localhost:27017"})
	if err == nil {
		t.Fatal("expected error for empty database name")
	}
}

func TestConnect_RejectsMalformedURI(t *testing.T) {
	_, err := Connect(context.Background(), Config{
		ConnectionString: "postgres://localhost:5432",
		Database:         "sample_airbnb",
	})
	if err == nil {
		t.Fatal("expected error for non-mongo scheme")
	}
}
