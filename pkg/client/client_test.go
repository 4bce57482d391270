package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"staybook/pkg/metrics"
	"staybook/pkg/middleware"
	"staybook/pkg/model"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestBookingClient_CreateBooking(t *testing.T) {
	var gotKey string
	var gotBody model.Booking

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/bookings" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotKey = r.Header.Get(middleware.IdempotencyHeader)
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"65f1c2e4a1b2c3d4e5f60718","clientName":"Alice","listingId":"abc123"}}`))
	}))
	defer srv.Close()

	c := NewBookingClient(srv.URL)
	created, err := c.CreateBooking(context.Background(), model.Booking{ClientName: "Alice", ListingID: "abc123"}, "key-1")
	if err != nil {
		t.Fatalf("CreateBooking() error: %v", err)
	}

	if created.ID != "65f1c2e4a1b2c3d4e5f60718" {
		t.Errorf("unexpected id %q", created.ID)
	}
	if gotKey != "key-1" {
		t.Errorf("expected idempotency key header, got %q", gotKey)
	}
	if gotBody.ClientName != "Alice" || gotBody.ListingID != "abc123" {
		t.Errorf("unexpected body %+v", gotBody)
	}
}

func TestBookingClient_CreateBooking_ValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"Booking validation failed","code":"VALIDATION_ERROR","details":{"fields":{"email":"Enter a valid email address"}}}`))
	}))
	defer srv.Close()

	_, err := NewBookingClient(srv.URL).CreateBooking(context.Background(), model.Booking{}, "")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("unexpected status %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Booking validation failed" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
	if apiErr.Fields["email"] != "Enter a valid email address" {
		t.Errorf("unexpected fields %v", apiErr.Fields)
	}
}

func TestBookingClient_ListBookings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "20" || r.URL.Query().Get("offset") != "0" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"data":[{"id":"b1","startDate":"2025-07-01"},{"id":"b2","startDate":"2025-06-01"}],"total_count":2,"limit":20,"offset":0}`))
	}))
	defer srv.Close()

	bookings, meta, err := NewBookingClient(srv.URL).ListBookings(context.Background(), 20, 0)
	if err != nil {
		t.Fatalf("ListBookings() error: %v", err)
	}
	if len(bookings) != 2 || bookings[0].ID != "b1" {
		t.Errorf("unexpected bookings %+v", bookings)
	}
	if meta.TotalCount != 2 || meta.Limit != 20 {
		t.Errorf("unexpected metadata %+v", meta)
	}
}

func TestListingClient_ListListings(t *testing.T) {
	m := metrics.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("location") != "Porto" || q.Get("bedrooms") != "4+" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"data":[{"id":"10006546","name":"Ribeira Charming Duplex","summary":"Fantastic duplex","price":80,"reviewScore":89}]}`))
	}))
	defer srv.Close()

	c := NewListingClient(srv.URL, WithMetrics(m, "listings"))
	listings, err := c.ListListings(context.Background(), model.SearchFilters{Location: "Porto", Bedrooms: model.BedroomsAtLeastFour})
	if err != nil {
		t.Fatalf("ListListings() error: %v", err)
	}
	if len(listings) != 1 || listings[0].Name != "Ribeira Charming Duplex" {
		t.Fatalf("unexpected listings %+v", listings)
	}
	if listings[0].ReviewScore == nil || *listings[0].ReviewScore != 89 {
		t.Errorf("unexpected review score %v", listings[0].ReviewScore)
	}

	if got := testutil.ToFloat64(m.ExternalRequests.WithLabelValues("listings", "/api/v1/listings", "200")); got != 1 {
		t.Errorf("expected one external request observation, got %v", got)
	}
}

func TestListingClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
	}))
	defer srv.Close()

	_, err := NewListingClient(srv.URL).ListListings(context.Background(), model.SearchFilters{Location: "Porto"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500 APIError, got %v", err)
	}
}

func TestHttpClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewListingClient(url).ListListings(context.Background(), model.SearchFilters{})
	if err == nil {
		t.Fatal("expected transport error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("transport failure should not be an APIError")
	}
}

func TestGetErrorMessage_FallsBackToStatusText(t *testing.T) {
	resp := &Response{Response: &http.Response{StatusCode: http.StatusBadGateway}, Body: []byte("<html>")}
	if got := GetErrorMessage(resp); got != "Bad Gateway" {
		t.Errorf("GetErrorMessage() = %q", got)
	}
}

func TestClient_OptionalDependenciesAreSkipped(t *testing.T) {
	c := NewClient()
	if err := c.Close(context.Background()); err != nil {
		t.Errorf("closing an empty client should succeed, got %v", err)
	}
}

func TestWaitForHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := NewListingClient(srv.URL).WaitForHealthy(context.Background(), time.Second); err != nil {
		t.Errorf("WaitForHealthy() = %v", err)
	}
}

func TestWaitForHealthy_GivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if err := NewBookingClient(srv.URL).WaitForHealthy(context.Background(), 700*time.Millisecond); err == nil {
		t.Error("expected WaitForHealthy() to fail")
	}
}

func TestHttpClient_ForwardsClientIP(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("X-Forwarded-For"))
		_, _ = io.WriteString(w, `{"data":[]}`)
	}))
	defer srv.Close()

	c := NewListingClient(srv.URL)
	if _, err := c.ListListings(WithClientIP(context.Background(), "203.0.113.9"), model.SearchFilters{Location: "Porto"}); err != nil {
		t.Fatalf("ListListings() error: %v", err)
	}
	if _, err := c.ListListings(context.Background(), model.SearchFilters{Location: "Porto"}); err != nil {
		t.Fatalf("ListListings() error: %v", err)
	}

	if len(got) != 2 || got[0] != "203.0.113.9" || got[1] != "" {
		t.Errorf("X-Forwarded-For = %q, want [203.0.113.9 \"\"]", got)
	}
}
