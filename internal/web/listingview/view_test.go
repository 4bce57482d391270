package listingview

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"staybook/pkg/model"
)

type fetchFunc func(ctx context.Context, f model.SearchFilters) ([]model.Listing, error)

func (fn fetchFunc) ListListings(ctx context.Context, f model.SearchFilters) ([]model.Listing, error) {
	return fn(ctx, f)
}

func TestLoad_Displayed(t *testing.T) {
	score := 89.0
	v := New(fetchFunc(func(context.Context, model.SearchFilters) ([]model.Listing, error) {
		return []model.Listing{
			{ID: "10006546", Name: "Ribeira Charming Duplex", Summary: "Fantastic duplex", Price: 80, ReviewScore: &score},
			{ID: "10009999", Name: "Horto flat", Price: 317},
		}, nil
	}))

	if v.State() != StateIdle {
		t.Fatalf("initial state = %s, want idle", v.State())
	}
	if err := v.Load(context.Background(), model.SearchFilters{Location: "Porto"}); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if v.State() != StateDisplayed {
		t.Fatalf("state = %s, want displayed", v.State())
	}
	if msg := v.Message(); msg != "" {
		t.Errorf("unexpected message %q", msg)
	}

	rows := v.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ReviewScore != "89.0" {
		t.Errorf("review score = %q, want 89.0", rows[0].ReviewScore)
	}
	if rows[1].ReviewScore != MsgNoRating {
		t.Errorf("missing review score = %q, want N/A", rows[1].ReviewScore)
	}
	if !strings.Contains(rows[0].Price, "80") || !strings.Contains(rows[0].Price, "$") {
		t.Errorf("unexpected price %q", rows[0].Price)
	}
	if rows[0].BookingURL != "/bookings?listingId=10006546" {
		t.Errorf("unexpected booking url %q", rows[0].BookingURL)
	}
}

func TestLoad_EmptyIsDistinctFromError(t *testing.T) {
	empty := New(fetchFunc(func(context.Context, model.SearchFilters) ([]model.Listing, error) {
		return nil, nil
	}))
	if err := empty.Load(context.Background(), model.SearchFilters{Location: "Atlantis"}); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if empty.State() != StateDisplayed || empty.Message() != MsgNoListings {
		t.Errorf("empty result: state=%s message=%q", empty.State(), empty.Message())
	}

	failing := New(fetchFunc(func(context.Context, model.SearchFilters) ([]model.Listing, error) {
		return nil, errors.New("api error 500: Internal server error")
	}))
	if err := failing.Load(context.Background(), model.SearchFilters{Location: "Porto"}); err == nil {
		t.Fatal("expected an error")
	}
	if failing.State() != StateErrored || failing.Message() != MsgLoadFailed {
		t.Errorf("error result: state=%s message=%q", failing.State(), failing.Message())
	}
	if failing.Rows() != nil {
		t.Errorf("no rows expected in the errored state")
	}
}

func TestLoad_PassesFourPlusSentinel(t *testing.T) {
	var got model.SearchFilters
	v := New(fetchFunc(func(_ context.Context, f model.SearchFilters) ([]model.Listing, error) {
		got = f
		return nil, nil
	}))

	_ = v.Load(context.Background(), model.SearchFilters{Location: "Porto", Bedrooms: model.BedroomsAtLeastFour})
	if got.Bedrooms != "4+" {
		t.Errorf("bedrooms = %q, want 4+", got.Bedrooms)
	}
}

func TestLoad_NewerLoadSupersedesOlder(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	cancelled := false

	v := New(fetchFunc(func(ctx context.Context, f model.SearchFilters) ([]model.Listing, error) {
		if f.Location == "slow" {
			select {
			case <-ctx.Done():
				mu.Lock()
				cancelled = true
				mu.Unlock()
			case <-release:
			}
			return []model.Listing{{ID: "stale"}}, nil
		}
		return []model.Listing{{ID: "fresh"}}, nil
	}))

	done := make(chan error, 1)
	go func() { done <- v.Load(context.Background(), model.SearchFilters{Location: "slow"}) }()

	deadline := time.After(2 * time.Second)
	for v.State() != StateLoading {
		select {
		case <-deadline:
			t.Fatal("first load never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if err := v.Load(context.Background(), model.SearchFilters{Location: "fast"}); err != nil {
		t.Fatalf("second Load() error: %v", err)
	}
	close(release)

	if err := <-done; !errors.Is(err, ErrSuperseded) {
		t.Errorf("first load = %v, want ErrSuperseded", err)
	}

	rows := v.Rows()
	if len(rows) != 1 || rows[0].ID != "fresh" {
		t.Errorf("stale result leaked into the view: %+v", rows)
	}
	mu.Lock()
	defer mu.Unlock()
	if !cancelled {
		t.Errorf("superseded load should have been cancelled")
	}
}

func TestFormatReviewScore(t *testing.T) {
	tests := []struct {
		in   *float64
		want string
	}{
		{nil, "N/A"},
		{ptr(97), "97.0"},
		{ptr(4.66), "4.7"},
	}
	for _, tt := range tests {
		if got := FormatReviewScore(tt.in); got != tt.want {
			t.Errorf("FormatReviewScore(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func ptr(f float64) *float64 { return &f }
