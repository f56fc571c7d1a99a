package model

import (
	"encoding/json"
	"strconv"
)

type Show struct {
	ShowId         int    `json:"showId"`
	ShowDate       string `json:"showDate"`
	ShowTime       string `json:"showTime"`
	NumberOfTicket int    `json:"numberOfTicket"`
}

type Seat struct {
	SeatId int    `json:"seatId"`
	Row    Row    `json:"row"`
	Number int    `json:"number"`
}

// Row is a seat row letter ("A".."F"). The backend occasionally serializes
// it as the 1-based row index, so decoding accepts both forms and
// normalizes to the letter.
type Row string

func (r *Row) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = Row(s)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if n >= 1 && n <= 26 {
		*r = Row(string(rune('A' + n - 1)))
		return nil
	}
	*r = Row(strconv.Itoa(n))
	return nil
}

type Booking struct {
	BookingId  int     `json:"bookingId"`
	FullName   string  `json:"fullName"`
	Email      string  `json:"email"`
	TotalPrice float64 `json:"totalPrice"`
	Show       Show    `json:"show"`
	Seats      []Seat  `json:"seats"`
}

type ShowRequest struct {
	ShowDate       string `json:"showDate"`
	ShowTime       string `json:"showTime"`
	NumberOfTicket int    `json:"numberOfTicket"`
	MovieId        int    `json:"movieId"`
}

type SeatRequest struct {
	Row    string `json:"row"`
	Number int    `json:"number"`
}

type BookingRequest struct {
	FullName   string  `json:"fullName" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	TotalPrice float64 `json:"totalPrice"`
	ShowId     int     `json:"showId"`
	SeatIds    []int   `json:"seatIds"`
}

// EditRequest carries the full booking shape the update endpoint expects,
// even though only name and email are editable from the client.
type EditRequest struct {
	FullName   string  `json:"fullName" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	TotalPrice float64 `json:"totalPrice"`
	ShowId     int     `json:"showId"`
	SeatIds    []int   `json:"seatIds"`
}
