// Package validation holds the field rules shared by the booking form and the bookings API.
//
// Every rule is a pure function of its input. ValidateBooking runs all of them and
// reports one message per offending field, so callers can show every problem at once.
package validation

import (
	"strings"
	"time"

	"staybook/pkg/model"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

const (
	FieldStartDate     = "startDate"
	FieldEndDate       = "endDate"
	FieldClientName    = "clientName"
	FieldEmail         = "email"
	FieldDaytimePhone  = "daytimePhone"
	FieldMobile        = "mobile"
	FieldPostalAddress = "postalAddress"
	FieldHomeAddress   = "homeAddress"
	FieldListingID     = "listingId"
)

const (
	MsgStartDateRequired    = "Start date is required"
	MsgEndDateRequired      = "End date is required"
	MsgClientNameRequired   = "Client name is required"
	MsgEmailRequired        = "Email is required"
	MsgEmailInvalid         = "Enter a valid email address"
	MsgDaytimePhoneRequired = "Daytime phone is required"
	MsgDaytimePhoneInvalid  = "Enter a valid daytime phone number"
	MsgMobileInvalid        = "Enter a valid mobile phone number"
	MsgStartAfterEnd        = "Start date must be before end date"
	MsgEndBeforeStart       = "End date must be after start date"
	MsgDateInvalid          = "Enter a valid date"
	MsgListingIDRequired    = "Listing is required"
)

// DefaultPhoneRegions are tried in order for numbers written without a country code.
var DefaultPhoneRegions = []string{"US", "GB", "IL"}

var (
	validate = validator.New()

	phoneSeparators = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "")
)

// Errors maps a field name to its failure message.
type Errors map[string]string

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func IsEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return validate.Var(s, "email") == nil
}

// IsPhone reports whether s is a phone number for an unspecified region:
// either E.164 once separators are stripped, or a valid number in one of
// DefaultPhoneRegions.
func IsPhone(s string) bool {
	compact := phoneSeparators.Replace(strings.TrimSpace(s))
	if compact == "" {
		return false
	}
	if validate.Var(compact, "e164") == nil {
		return true
	}
	for _, region := range DefaultPhoneRegions {
		num, err := phonenumbers.Parse(compact, region)
		if err == nil && phonenumbers.IsValidNumber(num) {
			return true
		}
	}
	return false
}

func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(model.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ValidateBooking runs every field rule against b. The date ordering check
// only runs when both dates are present and well formed.
func ValidateBooking(b model.Booking) Errors {
	errs := Errors{}

	start, startOK := checkDate(errs, FieldStartDate, b.StartDate, MsgStartDateRequired)
	end, endOK := checkDate(errs, FieldEndDate, b.EndDate, MsgEndDateRequired)

	if IsBlank(b.ClientName) {
		errs[FieldClientName] = MsgClientNameRequired
	}

	switch {
	case IsBlank(b.Email):
		errs[FieldEmail] = MsgEmailRequired
	case !IsEmail(b.Email):
		errs[FieldEmail] = MsgEmailInvalid
	}

	switch {
	case IsBlank(b.DaytimePhone):
		errs[FieldDaytimePhone] = MsgDaytimePhoneRequired
	case !IsPhone(b.DaytimePhone):
		errs[FieldDaytimePhone] = MsgDaytimePhoneInvalid
	}

	if !IsBlank(b.Mobile) && !IsPhone(b.Mobile) {
		errs[FieldMobile] = MsgMobileInvalid
	}

	if startOK && endOK && start.After(end) {
		errs[FieldStartDate] = MsgStartAfterEnd
		errs[FieldEndDate] = MsgEndBeforeStart
	}

	return errs
}

func checkDate(errs Errors, field, value, requiredMsg string) (time.Time, bool) {
	if IsBlank(value) {
		errs[field] = requiredMsg
		return time.Time{}, false
	}
	t, ok := ParseDate(value)
	if !ok {
		errs[field] = MsgDateInvalid
	}
	return t, ok
}
