// Package form holds booking form state and runs the submission pipeline
// against a booking creator.
package form

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"staybook/pkg/model"
	"staybook/pkg/validation"

	"github.com/google/uuid"
)

const (
	MsgSubmitFailed = "Failed to submit booking"
	MsgSubmitted    = "Booking submitted successfully!"
)

var (
	ErrUnknownField = errors.New("unknown booking field")
	ErrInFlight     = errors.New("a submission is already in progress")
	ErrInvalid      = errors.New("booking form has field errors")
)

// Creator persists a booking. *client.BookingClient satisfies it.
type Creator interface {
	CreateBooking(ctx context.Context, b model.Booking, idempotencyKey string) (*model.Booking, error)
}

type Status string

const (
	StatusEditing    Status = "editing"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// State is a point-in-time copy of a Form.
type State struct {
	Values      model.Booking
	Errors      validation.Errors
	Status      Status
	SubmitError string
	CreatedID   string
}

type Form struct {
	mu sync.Mutex

	listingID   string
	values      model.Booking
	errors      validation.Errors
	status      Status
	submitError string
	createdID   string

	newKey func() string
}

// New returns an empty form preconfigured for listingID. The listing
// survives a reset after a successful submission.
func New(listingID string) *Form {
	return &Form{
		listingID: listingID,
		values:    model.Booking{ListingID: listingID},
		errors:    validation.Errors{},
		status:    StatusEditing,
		newKey:    uuid.NewString,
	}
}

func (f *Form) ListingID() string {
	return f.listingID
}

// Set records a field change. Errors from the last attempt are kept until
// the next submit. Edits are refused while a submission is in flight.
func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status == StatusSubmitting {
		return ErrInFlight
	}
	ptr := fieldPtr(&f.values, field)
	if ptr == nil {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	*ptr = value
	if f.status == StatusSucceeded {
		f.status = StatusEditing
		f.createdID = ""
	}
	return nil
}

func (f *Form) Value(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if ptr := fieldPtr(&f.values, field); ptr != nil {
		return *ptr
	}
	return ""
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	return State{
		Values:      f.values,
		Errors:      maps.Clone(f.errors),
		Status:      f.status,
		SubmitError: f.submitError,
		CreatedID:   f.createdID,
	}
}

// Reset returns the form to its initial state.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
}

func (f *Form) resetLocked() {
	f.values = model.Booking{ListingID: f.listingID}
	f.errors = validation.Errors{}
	f.status = StatusEditing
	f.submitError = ""
	f.createdID = ""
}

func fieldPtr(b *model.Booking, field string) *string {
	switch field {
	case validation.FieldStartDate:
		return &b.StartDate
	case validation.FieldEndDate:
		return &b.EndDate
	case validation.FieldClientName:
		return &b.ClientName
	case validation.FieldEmail:
		return &b.Email
	case validation.FieldDaytimePhone:
		return &b.DaytimePhone
	case validation.FieldMobile:
		return &b.Mobile
	case validation.FieldPostalAddress:
		return &b.PostalAddress
	case validation.FieldHomeAddress:
		return &b.HomeAddress
	case validation.FieldListingID:
		return &b.ListingID
	default:
		return nil
	}
}

// Fields lists the editable booking fields in display order.
var Fields = []string{
	validation.FieldStartDate,
	validation.FieldEndDate,
	validation.FieldClientName,
	validation.FieldEmail,
	validation.FieldDaytimePhone,
	validation.FieldMobile,
	validation.FieldPostalAddress,
	validation.FieldHomeAddress,
}
