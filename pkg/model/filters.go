package model

import (
	"net/url"
	"strings"
)

// BedroomsAtLeastFour is the bedrooms filter value meaning "4 or more".
const BedroomsAtLeastFour = "4+"

type Option struct {
	Value string
	Label string
}

var PropertyTypes = []Option{
	{Value: "", Label: "Select property type (optional)"},
	{Value: "House", Label: "House"},
	{Value: "Apartment", Label: "Apartment"},
	{Value: "Condominium", Label: "Condo"},
	{Value: "Townhouse", Label: "Townhouse"},
}

var BedroomOptions = []Option{
	{Value: "", Label: "Any bedrooms (optional)"},
	{Value: "1", Label: "1 bedroom"},
	{Value: "2", Label: "2 bedrooms"},
	{Value: "3", Label: "3 bedrooms"},
	{Value: BedroomsAtLeastFour, Label: "4+ bedrooms"},
}

type SearchFilters struct {
	Location     string `json:"location,omitempty"`
	PropertyType string `json:"propertyType,omitempty"`
	Bedrooms     string `json:"bedrooms,omitempty"`
}

func FiltersFromQuery(q url.Values) SearchFilters {
	return SearchFilters{
		Location:     strings.TrimSpace(q.Get("location")),
		PropertyType: strings.TrimSpace(q.Get("propertyType")),
		Bedrooms:     strings.TrimSpace(q.Get("bedrooms")),
	}
}

// Query encodes the non-empty filters as URL query parameters.
func (f SearchFilters) Query() url.Values {
	q := url.Values{}
	if f.Location != "" {
		q.Set("location", f.Location)
	}
	if f.PropertyType != "" {
		q.Set("propertyType", f.PropertyType)
	}
	if f.Bedrooms != "" {
		q.Set("bedrooms", f.Bedrooms)
	}
	return q
}

func (f SearchFilters) IsZero() bool {
	return f.Location == "" && f.PropertyType == "" && f.Bedrooms == ""
}
