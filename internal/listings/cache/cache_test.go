package cache

import (
	"context"
	"testing"
	"time"

	"staybook/pkg/metrics"
	"staybook/pkg/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis, *metrics.Metrics) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	m := metrics.New()
	return NewRedisCache(rdb, time.Minute, m), mr, m
}

func TestKey_NormalizesEquivalentFilters(t *testing.T) {
	a := Key(model.SearchFilters{Location: " Porto ", Bedrooms: "2"})
	b := Key(model.SearchFilters{Location: "porto", Bedrooms: "2"})
	if a != b {
		t.Errorf("expected equal keys, got %q and %q", a, b)
	}

	c := Key(model.SearchFilters{Location: "porto", Bedrooms: "3"})
	if a == c {
		t.Errorf("different bedrooms should not share a key")
	}
}

func TestRedisCache_MissThenHit(t *testing.T) {
	c, _, m := newTestCache(t)
	ctx := context.Background()
	filters := model.SearchFilters{Location: "Porto"}

	if _, ok, err := c.Get(ctx, filters); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	score := 97.0
	want := []model.Listing{{ID: "10006546", Name: "Ribeira Charming Duplex", Price: 80, ReviewScore: &score}}
	if err := c.Set(ctx, filters, want); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, ok, err := c.Get(ctx, model.SearchFilters{Location: "PORTO"})
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0].Name != want[0].Name || *got[0].ReviewScore != 97 {
		t.Errorf("unexpected cached listings %+v", got)
	}

	if v := testutil.ToFloat64(m.CacheEvents.WithLabelValues(metrics.CacheMiss)); v != 1 {
		t.Errorf("miss count = %v", v)
	}
	if v := testutil.ToFloat64(m.CacheEvents.WithLabelValues(metrics.CacheHit)); v != 1 {
		t.Errorf("hit count = %v", v)
	}
	if v := testutil.ToFloat64(m.CacheEvents.WithLabelValues(metrics.CacheSet)); v != 1 {
		t.Errorf("set count = %v", v)
	}
}

func TestRedisCache_EntriesExpire(t *testing.T) {
	c, mr, _ := newTestCache(t)
	ctx := context.Background()
	filters := model.SearchFilters{Location: "Porto"}

	if err := c.Set(ctx, filters, []model.Listing{{ID: "1"}}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, ok, _ := c.Get(ctx, filters); ok {
		t.Errorf("expected entry to expire")
	}
}

func TestRedisCache_CorruptEntry(t *testing.T) {
	c, mr, m := newTestCache(t)
	filters := model.SearchFilters{Location: "Porto"}
	if err := mr.Set(Key(filters), "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, ok, err := c.Get(context.Background(), filters); ok || err == nil {
		t.Errorf("expected decode error, got ok=%v err=%v", ok, err)
	}
	if v := testutil.ToFloat64(m.CacheEvents.WithLabelValues(metrics.CacheError)); v != 1 {
		t.Errorf("error count = %v", v)
	}
}

func TestRedisCache_ServerDown(t *testing.T) {
	c, mr, _ := newTestCache(t)
	mr.Close()

	if _, _, err := c.Get(context.Background(), model.SearchFilters{Location: "Porto"}); err == nil {
		t.Errorf("expected an error when redis is unreachable")
	}
}
