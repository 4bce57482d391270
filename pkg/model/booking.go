package model

import (
	"time"
)

// DateLayout is the calendar date format used for booking dates.
const DateLayout = "2006-01-02"

type Booking struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	StartDate     string    `json:"startDate" bson:"startDate" validate:"required"`
	EndDate       string    `json:"endDate" bson:"endDate" validate:"required"`
	ClientName    string    `json:"clientName" bson:"clientName" validate:"required,max=200"`
	Email         string    `json:"email" bson:"email" validate:"required,max=254"`
	DaytimePhone  string    `json:"daytimePhone" bson:"daytimePhone" validate:"required,max=32"`
	Mobile        string    `json:"mobile,omitempty" bson:"mobile,omitempty" validate:"omitempty,max=32"`
	PostalAddress string    `json:"postalAddress,omitempty" bson:"postalAddress,omitempty" validate:"omitempty,max=500"`
	HomeAddress   string    `json:"homeAddress,omitempty" bson:"homeAddress,omitempty" validate:"omitempty,max=500"`
	ListingID     string    `json:"listingId" bson:"listingId" validate:"required,max=64"`
	CreatedAt     time.Time `json:"createdAt,omitzero" bson:"createdAt,omitempty"`
}
