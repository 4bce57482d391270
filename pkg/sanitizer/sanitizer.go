package sanitizer

import (
	"strings"

	"staybook/pkg/model"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	emailPipeline = Pipeline{strings.TrimSpace, strings.ToLower}
	datePipeline  = Pipeline{strings.TrimSpace}
)

func NormalizeEmail(email string) string {
	return emailPipeline.Apply(email)
}

// SanitizeBooking returns a copy of b with every user-supplied field normalized.
// ID and CreatedAt are left untouched.
func SanitizeBooking(b model.Booking) model.Booking {
	b.StartDate = datePipeline.Apply(b.StartDate)
	b.EndDate = datePipeline.Apply(b.EndDate)
	b.ClientName = NormalizeName(b.ClientName)
	b.Email = NormalizeEmail(b.Email)
	b.DaytimePhone = NormalizePhone(b.DaytimePhone)
	b.Mobile = NormalizePhone(b.Mobile)
	b.PostalAddress = TrimAndNormalize(b.PostalAddress)
	b.HomeAddress = TrimAndNormalize(b.HomeAddress)
	b.ListingID = strings.TrimSpace(b.ListingID)
	return b
}
