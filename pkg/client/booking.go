package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"staybook/pkg/middleware"
	"staybook/pkg/model"
)

const bookingsPath = "/api/v1/bookings"

type Metadata struct {
	TotalCount int64 `json:"total_count"`
	Limit      int   `json:"limit"`
	Offset     int64 `json:"offset"`
}

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseUrl string, opts ...Option) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseUrl, opts...),
	}
}

// CreateBooking posts b and returns the stored booking. A non-empty
// idempotencyKey lets the API replay the first result for a resent attempt.
func (c *BookingClient) CreateBooking(ctx context.Context, b model.Booking, idempotencyKey string) (*model.Booking, error) {
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers[middleware.IdempotencyHeader] = idempotencyKey
	}

	resp, err := c.httpClient.POSTWithHeaders(ctx, bookingsPath, b, headers)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, NewAPIError(resp)
	}
	return c.DecodeBooking(resp)
}

func (c *BookingClient) ListBookings(ctx context.Context, limit int, offset int64) ([]model.Booking, *Metadata, error) {
	path := fmt.Sprintf("%s?limit=%d&offset=%d", bookingsPath, limit, offset)
	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	if !resp.IsSuccess() {
		return nil, nil, NewAPIError(resp)
	}
	return c.DecodeBookings(resp)
}

func (c *BookingClient) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	resp, err := c.httpClient.GET(ctx, bookingsPath+"/id/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, NewAPIError(resp)
	}
	return c.DecodeBooking(resp)
}

func (c *BookingClient) DecodeBooking(resp *Response) (*model.Booking, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode booking wrapper: %s: %w", resp.ToString(), err)
	}

	var booking model.Booking
	if err := json.Unmarshal(wrapper.Data, &booking); err != nil {
		return nil, fmt.Errorf("could not decode booking json: %s: %w", resp.ToString(), err)
	}

	return &booking, nil
}

func (c *BookingClient) DecodeBookings(resp *Response) ([]model.Booking, *Metadata, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
		Metadata
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated resp: %s: %w", resp.ToString(), err)
	}

	var bookings []model.Booking
	if err := json.Unmarshal(wrapper.Data, &bookings); err != nil {
		return nil, nil, fmt.Errorf("could not decode booking list: %s: %w", resp.ToString(), err)
	}

	return bookings, &wrapper.Metadata, nil
}

func (c *BookingClient) WaitForHealthy(ctx context.Context, maxWait time.Duration) error {
	return c.httpClient.WaitForHealthy(ctx, maxWait)
}
