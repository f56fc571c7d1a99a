package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"movie-booking-cli/model"
)

// CreateShow registers one screening for a single booking attempt.
func (c *Client) CreateShow(ctx context.Context, req model.ShowRequest) (model.Envelope[model.Show], error) {
	if req.MovieId <= 0 {
		return model.Envelope[model.Show]{}, errors.New("movie id is required")
	}
	var out model.Envelope[model.Show]
	if err := c.do(ctx, http.MethodPost, "/shows", req, &out); err != nil {
		return model.Envelope[model.Show]{}, err
	}
	return out, nil
}

// CreateSeat registers one seat position.
func (c *Client) CreateSeat(ctx context.Context, req model.SeatRequest) (model.Envelope[model.Seat], error) {
	if req.Row == "" || req.Number <= 0 {
		return model.Envelope[model.Seat]{}, errors.New("seat row and number are required")
	}
	var out model.Envelope[model.Seat]
	if err := c.do(ctx, http.MethodPost, "/seats", req, &out); err != nil {
		return model.Envelope[model.Seat]{}, err
	}
	return out, nil
}

// RegisterBooking links a person, a show, and the created seats.
func (c *Client) RegisterBooking(ctx context.Context, req model.BookingRequest) (model.Envelope[[]model.Booking], error) {
	if req.ShowId <= 0 || len(req.SeatIds) == 0 {
		return model.Envelope[[]model.Booking]{}, errors.New("show id and at least one seat id are required")
	}
	var out model.Envelope[[]model.Booking]
	if err := c.do(ctx, http.MethodPost, "/bookings", req, &out); err != nil {
		return model.Envelope[[]model.Booking]{}, err
	}
	return out, nil
}

func (c *Client) ListBookings(ctx context.Context, page int, size int) (model.Envelope[[]model.Booking], error) {
	var out model.Envelope[[]model.Booking]
	path := fmt.Sprintf("/bookings?page=%d&size=%d", page, size)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return model.Envelope[[]model.Booking]{}, err
	}
	return out, nil
}

func (c *Client) UpdateBooking(ctx context.Context, id int, req model.EditRequest) (model.Envelope[[]model.Booking], error) {
	if id <= 0 {
		return model.Envelope[[]model.Booking]{}, errors.New("booking id is required")
	}
	var out model.Envelope[[]model.Booking]
	path := fmt.Sprintf("/bookings/%d", id)
	if err := c.do(ctx, http.MethodPut, path, req, &out); err != nil {
		return model.Envelope[[]model.Booking]{}, err
	}
	return out, nil
}

func (c *Client) DeleteBooking(ctx context.Context, id int) (model.Envelope[[]model.Booking], error) {
	if id <= 0 {
		return model.Envelope[[]model.Booking]{}, errors.New("booking id is required")
	}
	var out model.Envelope[[]model.Booking]
	path := fmt.Sprintf("/bookings/%d", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, &out); err != nil {
		return model.Envelope[[]model.Booking]{}, err
	}
	return out, nil
}
