package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "staybook/pkg/errors"
	"staybook/pkg/logger"
	"staybook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockListingService struct {
	got        model.SearchFilters
	searchFunc func(ctx context.Context, f model.SearchFilters) ([]model.Listing, error)
}

func (m *mockListingService) Search(ctx context.Context, f model.SearchFilters) ([]model.Listing, error) {
	m.got = f
	if m.searchFunc != nil {
		return m.searchFunc(ctx, f)
	}
	return []model.Listing{}, nil
}

func serve(svc *mockListingService, target string) *httptest.ResponseRecorder {
	router := httprouter.New()
	NewListingHandler(svc, logger.Discard()).RegisterRoutes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestSearch_PassesFilters(t *testing.T) {
	score := 92.0
	svc := &mockListingService{
		searchFunc: func(context.Context, model.SearchFilters) ([]model.Listing, error) {
			return []model.Listing{{ID: "10006546", Name: "Ribeira Charming Duplex", Price: 80, ReviewScore: &score}}, nil
		},
	}

	w := serve(svc, "/api/v1/listings?location=Porto&propertyType=House&bedrooms=4%2B")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	want := model.SearchFilters{Location: "Porto", PropertyType: "House", Bedrooms: "4+"}
	if svc.got != want {
		t.Errorf("service got %+v, want %+v", svc.got, want)
	}

	var resp struct {
		Data []model.Listing `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Name != "Ribeira Charming Duplex" {
		t.Errorf("unexpected data %+v", resp.Data)
	}
}

func TestSearch_EmptyResultIsArray(t *testing.T) {
	w := serve(&mockListingService{}, "/api/v1/listings?location=Atlantis")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); body != "{\"data\":[]}\n" {
		t.Errorf("unexpected body %q", body)
	}
}

func TestSearch_InvalidFilter(t *testing.T) {
	svc := &mockListingService{
		searchFunc: func(context.Context, model.SearchFilters) ([]model.Listing, error) {
			return nil, apperrors.InvalidInput("Invalid bedrooms filter")
		},
	}

	w := serve(svc, "/api/v1/listings?bedrooms=many")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
