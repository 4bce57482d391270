package form

import (
	"context"
	"errors"
	"fmt"

	"staybook/pkg/client"
	"staybook/pkg/model"
	"staybook/pkg/validation"
)

// attempt carries one submission through the pipeline steps.
type attempt struct {
	booking model.Booking
	key     string
	errs    validation.Errors
	created *model.Booking
}

type step struct {
	name string
	run  func(ctx context.Context, a *attempt) error
}

func pipeline(creator Creator) []step {
	return []step{
		{name: "validate", run: func(_ context.Context, a *attempt) error {
			a.errs = validation.ValidateBooking(a.booking)
			if validation.IsBlank(a.booking.ListingID) {
				a.errs[validation.FieldListingID] = validation.MsgListingIDRequired
			}
			if len(a.errs) > 0 {
				return ErrInvalid
			}
			return nil
		}},
		{name: "persist", run: func(ctx context.Context, a *attempt) error {
			created, err := creator.CreateBooking(ctx, a.booking, a.key)
			if err != nil {
				return err
			}
			a.created = created
			return nil
		}},
	}
}

// Submit validates the current values and, only when every field passes,
// makes exactly one create call. Success resets the form; failure keeps the
// values and records the message to show.
func (f *Form) Submit(ctx context.Context, creator Creator) error {
	f.mu.Lock()
	if f.status == StatusSubmitting {
		f.mu.Unlock()
		return ErrInFlight
	}
	a := &attempt{booking: f.values, key: f.newKey()}
	f.status = StatusSubmitting
	f.submitError = ""
	f.mu.Unlock()

	var failed string
	var err error
	for _, s := range pipeline(creator) {
		if err = s.run(ctx, a); err != nil {
			failed = s.name
			break
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case err == nil:
		f.resetLocked()
		f.status = StatusSucceeded
		if a.created != nil {
			f.createdID = a.created.ID
		}
		return nil
	case errors.Is(err, ErrInvalid):
		f.errors = a.errs
		f.status = StatusEditing
		return err
	default:
		f.errors = validation.Errors{}
		f.status = StatusFailed
		f.submitError = MsgSubmitFailed

		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			if apiErr.Message != "" {
				f.submitError = apiErr.Message
			}
			for field, msg := range apiErr.Fields {
				f.errors[field] = msg
			}
		}
		return fmt.Errorf("%s step: %w", failed, err)
	}
}
