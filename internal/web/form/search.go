package form

import (
	"net/url"
	"strings"

	"staybook/pkg/model"
	"staybook/pkg/validation"
)

const (
	FieldLocation       = "location"
	MsgLocationRequired = "Location is required"
)

// SearchForm holds the listing search inputs. Option lists are fixed, see
// model.PropertyTypes and model.BedroomOptions.
type SearchForm struct {
	Filters model.SearchFilters
	Errors  validation.Errors
}

func NewSearchForm(q url.Values) *SearchForm {
	return &SearchForm{
		Filters: model.FiltersFromQuery(q),
		Errors:  validation.Errors{},
	}
}

// Submitted reports whether the query carried any search input.
func (s *SearchForm) Submitted(q url.Values) bool {
	_, ok := q[FieldLocation]
	return ok || !s.Filters.IsZero()
}

func (s *SearchForm) Validate() bool {
	s.Errors = validation.Errors{}
	if strings.TrimSpace(s.Filters.Location) == "" {
		s.Errors[FieldLocation] = MsgLocationRequired
	}
	return len(s.Errors) == 0
}
