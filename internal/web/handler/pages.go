package handler

import (
	"embed"
	"fmt"
	"html/template"

	"staybook/internal/web/form"
	"staybook/internal/web/listingview"
	"staybook/pkg/model"
	"staybook/pkg/validation"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageSearch  = "search"
	pageBooking = "booking"
	pageRecent  = "recent"
)

func parsePages() (map[string]*template.Template, error) {
	pages := map[string]*template.Template{}
	for _, name := range []string{pageSearch, pageBooking, pageRecent} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s page: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

type searchPage struct {
	Title          string
	Search         *form.SearchForm
	PropertyTypes  []model.Option
	BedroomOptions []model.Option
	Searched       bool
	Message        string
	Rows           []listingview.Row
}

type fieldView struct {
	Name  string
	Label string
	Type  string
	Value string
	Error string
}

type bookingPage struct {
	Title          string
	ListingID      string
	State          form.State
	Fields         []fieldView
	Succeeded      bool
	SuccessMessage string
}

type recentPage struct {
	Title    string
	Bookings []model.Booking
	Error    string
}

var fieldLabels = map[string]struct{ label, inputType string }{
	validation.FieldStartDate:     {"Start date", "date"},
	validation.FieldEndDate:       {"End date", "date"},
	validation.FieldClientName:    {"Full name", "text"},
	validation.FieldEmail:         {"Email", "email"},
	validation.FieldDaytimePhone:  {"Daytime phone", "tel"},
	validation.FieldMobile:        {"Mobile (optional)", "tel"},
	validation.FieldPostalAddress: {"Postal address (optional)", "text"},
	validation.FieldHomeAddress:   {"Home address (optional)", "text"},
}

func newBookingPage(f *form.Form) bookingPage {
	state := f.State()
	fields := make([]fieldView, 0, len(form.Fields))
	for _, name := range form.Fields {
		meta := fieldLabels[name]
		fields = append(fields, fieldView{
			Name:  name,
			Label: meta.label,
			Type:  meta.inputType,
			Value: f.Value(name),
			Error: state.Errors[name],
		})
	}
	return bookingPage{
		Title:          "Book",
		ListingID:      f.ListingID(),
		State:          state,
		Fields:         fields,
		Succeeded:      state.Status == form.StatusSucceeded,
		SuccessMessage: form.MsgSubmitted,
	}
}
