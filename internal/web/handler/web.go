// Package handler serves the server-rendered pages of the web frontend.
package handler

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"

	"staybook/internal/web/form"
	"staybook/internal/web/listingview"
	"staybook/pkg/client"
	httputil "staybook/pkg/http"
	"staybook/pkg/logger"
	"staybook/pkg/model"
	"staybook/pkg/validation"

	"github.com/julienschmidt/httprouter"
)

const recentBookingsLimit = 50

const msgBookingsUnavailable = "Failed to load bookings. Please try again."

// BookingAPI is satisfied by *client.BookingClient.
type BookingAPI interface {
	form.Creator
	ListBookings(ctx context.Context, limit int, offset int64) ([]model.Booking, *client.Metadata, error)
}

type WebHandler struct {
	bookings BookingAPI
	listings listingview.Fetcher
	pages    map[string]*template.Template
	log      *logger.Logger
}

func NewWebHandler(bookings BookingAPI, listings listingview.Fetcher, log *logger.Logger) (*WebHandler, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	return &WebHandler{
		bookings: bookings,
		listings: listings,
		pages:    pages,
		log:      log,
	}, nil
}

// Search renders the search form and, when the query carries a valid
// search, the matching listings.
func (h *WebHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	search := form.NewSearchForm(q)
	page := searchPage{
		Title:          "Search",
		Search:         search,
		PropertyTypes:  model.PropertyTypes,
		BedroomOptions: model.BedroomOptions,
	}

	if search.Submitted(q) && search.Validate() {
		view := listingview.New(h.listings)
		if err := view.Load(apiContext(r), search.Filters); err != nil {
			h.log.Warn("Listing search failed", "location", search.Filters.Location, "error", err)
		}
		page.Searched = true
		page.Message = view.Message()
		page.Rows = view.Rows()
	}

	h.render(w, http.StatusOK, pageSearch, page)
}

func (h *WebHandler) BookingForm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	f := form.New(r.URL.Query().Get(validation.FieldListingID))
	h.render(w, http.StatusOK, pageBooking, newBookingPage(f))
}

// SubmitBooking runs the submission pipeline for a posted form.
func (h *WebHandler) SubmitBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	f := form.New(r.PostForm.Get(validation.FieldListingID))
	for _, field := range form.Fields {
		if err := f.Set(field, r.PostForm.Get(field)); err != nil {
			h.log.Error("Unexpected form field", "field", field, "error", err)
		}
	}

	status := http.StatusOK
	err := f.Submit(apiContext(r), h.bookings)
	switch {
	case err == nil:
		h.log.Info("Booking submitted", "id", f.State().CreatedID, "listing_id", f.ListingID())
	case errors.Is(err, form.ErrInvalid):
		status = http.StatusUnprocessableEntity
	default:
		h.log.Warn("Booking submission failed", "listing_id", f.ListingID(), "error", err)
		status = http.StatusBadGateway
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnprocessableEntity {
			status = http.StatusUnprocessableEntity
		}
	}

	h.render(w, status, pageBooking, newBookingPage(f))
}

func (h *WebHandler) RecentBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page := recentPage{Title: "Recent bookings"}

	bookings, _, err := h.bookings.ListBookings(apiContext(r), recentBookingsLimit, 0)
	if err != nil {
		h.log.Warn("Failed to list bookings", "error", err)
		page.Error = msgBookingsUnavailable
	} else {
		page.Bookings = bookings
	}

	h.render(w, http.StatusOK, pageRecent, page)
}

// apiContext carries the visitor's address to the API calls made for r.
func apiContext(r *http.Request) context.Context {
	return client.WithClientIP(r.Context(), httputil.ClientIP(r))
}

// render buffers the page so a template error still yields a clean 500.
func (h *WebHandler) render(w http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := h.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.log.Error("failed to render page", "page", page, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Error("failed to write page", "page", page, "error", err)
	}
}

func (h *WebHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/", h.Search)
	router.GET("/bookings", h.BookingForm)
	router.POST("/bookings", h.SubmitBooking)
	router.GET("/bookings/recent", h.RecentBookings)
}
