// Package listingview loads listing search results and renders them as rows.
//
// A View moves idle -> loading -> displayed or errored, and goes back to
// loading on every Load. A newer Load cancels the one still in flight and
// its result is dropped, so a slow response can never overwrite a fresh one.
package listingview

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"sync"

	"staybook/pkg/model"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	MsgNoListings  = "No listings found."
	MsgLoadFailed  = "Failed to load listings. Please try again."
	MsgNoRating    = "N/A"
	bookingPath    = "/bookings"
	listingIDParam = "listingId"
)

// ErrSuperseded is returned by a Load that a newer Load replaced.
var ErrSuperseded = errors.New("listing load superseded")

// Fetcher is satisfied by *client.ListingClient.
type Fetcher interface {
	ListListings(ctx context.Context, filters model.SearchFilters) ([]model.Listing, error)
}

type State int

const (
	StateIdle State = iota
	StateLoading
	StateDisplayed
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateDisplayed:
		return "displayed"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

type Row struct {
	ID          string
	Name        string
	Summary     string
	Price       string
	ReviewScore string
	BookingURL  string
}

type Option func(*View)

// WithCurrency sets the unit and locale used to format prices. The default is USD in American English.
func WithCurrency(unit currency.Unit, tag language.Tag) Option {
	return func(v *View) {
		v.unit = unit
		v.printer = message.NewPrinter(tag)
	}
}

type View struct {
	fetcher Fetcher
	unit    currency.Unit
	printer *message.Printer

	mu       sync.Mutex
	state    State
	filters  model.SearchFilters
	listings []model.Listing
	err      error
	gen      uint64
	cancel   context.CancelFunc
}

func New(fetcher Fetcher, opts ...Option) *View {
	v := &View{
		fetcher: fetcher,
		unit:    currency.USD,
		printer: message.NewPrinter(language.AmericanEnglish),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Load fetches listings for filters. It returns ErrSuperseded when a later
// Load started before this one finished.
func (v *View) Load(ctx context.Context, filters model.SearchFilters) error {
	v.mu.Lock()
	if v.cancel != nil {
		v.cancel()
	}
	v.gen++
	gen := v.gen
	loadCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.state = StateLoading
	v.filters = filters
	v.err = nil
	v.mu.Unlock()

	listings, err := v.fetcher.ListListings(loadCtx, filters)

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.gen {
		cancel()
		return ErrSuperseded
	}
	cancel()
	v.cancel = nil

	if err != nil {
		v.state = StateErrored
		v.listings = nil
		v.err = err
		return err
	}
	if listings == nil {
		listings = []model.Listing{}
	}
	v.state = StateDisplayed
	v.listings = listings
	return nil
}

func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *View) Filters() model.SearchFilters {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filters
}

func (v *View) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Message is the notice shown instead of rows, or "" when there are rows to show.
func (v *View) Message() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch v.state {
	case StateErrored:
		return MsgLoadFailed
	case StateDisplayed:
		if len(v.listings) == 0 {
			return MsgNoListings
		}
	}
	return ""
}

func (v *View) Rows() []Row {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state != StateDisplayed {
		return nil
	}
	rows := make([]Row, 0, len(v.listings))
	for _, l := range v.listings {
		rows = append(rows, Row{
			ID:          l.ID,
			Name:        l.Name,
			Summary:     l.Summary,
			Price:       v.FormatPrice(l.Price),
			ReviewScore: FormatReviewScore(l.ReviewScore),
			BookingURL:  BookingURL(l.ID),
		})
	}
	return rows
}

func (v *View) FormatPrice(amount float64) string {
	return v.printer.Sprint(currency.Symbol(v.unit.Amount(amount)))
}

func FormatReviewScore(score *float64) string {
	if score == nil {
		return MsgNoRating
	}
	return strconv.FormatFloat(*score, 'f', 1, 64)
}

// BookingURL is the booking page preconfigured for listingID.
func BookingURL(listingID string) string {
	return bookingPath + "?" + url.Values{listingIDParam: {listingID}}.Encode()
}
