package errors

import "errors"

var (
	ErrInvalidBedrooms = errors.New("bedrooms must be a whole number or 4+")
)
