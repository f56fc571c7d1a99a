package tui

import (
	"reflect"
	"testing"

	"movie-booking-cli/model"
)

func sampleBookings() []model.Booking {
	return []model.Booking{
		{
			BookingId:  1,
			FullName:   "John Roe",
			Email:      "john@roe.dev",
			TotalPrice: 10,
			Show:       model.Show{ShowId: 42, ShowDate: "2026-09-01", ShowTime: "7:00 PM"},
			Seats:      []model.Seat{{SeatId: 101, Row: "A", Number: 1}, {SeatId: 102, Row: "A", Number: 2}},
		},
		{
			BookingId:  2,
			FullName:   "Jane Doe",
			Email:      "jane@doe.dev",
			TotalPrice: 5,
			Show:       model.Show{ShowId: 43, ShowDate: "2026-09-02", ShowTime: "10:00 AM"},
			Seats:      []model.Seat{{SeatId: 103, Row: "B", Number: 1}},
		},
	}
}

func TestRemoveBooking(t *testing.T) {
	bookings := sampleBookings()
	out := removeBooking(bookings, 1)
	if len(out) != 1 || out[0].BookingId != 2 {
		t.Fatalf("unexpected result: %+v", out)
	}

	// Removing an unknown id leaves the list untouched.
	out = removeBooking(bookings, 99)
	if len(out) != 2 {
		t.Fatalf("unexpected result: %+v", out)
	}
}

func TestApplyBookingEdit(t *testing.T) {
	bookings := sampleBookings()
	out := applyBookingEdit(bookings, 2, "Janet Doe", "janet@doe.dev")

	if out[1].FullName != "Janet Doe" || out[1].Email != "janet@doe.dev" {
		t.Fatalf("edit not applied: %+v", out[1])
	}
	// Only the contact fields change.
	if out[1].TotalPrice != 5 || out[1].Show.ShowId != 43 || len(out[1].Seats) != 1 {
		t.Fatalf("unrelated fields changed: %+v", out[1])
	}
	// The input slice is not mutated.
	if bookings[1].FullName != "Jane Doe" {
		t.Fatalf("input mutated: %+v", bookings[1])
	}
}

func TestEditRequestFor_RebuildsFullPayload(t *testing.T) {
	booking := sampleBookings()[0]
	req := editRequestFor(booking, "  Johnny Roe ", " johnny@roe.dev ")

	if req.FullName != "Johnny Roe" || req.Email != "johnny@roe.dev" {
		t.Fatalf("unexpected contact fields: %+v", req)
	}
	if req.TotalPrice != 10 || req.ShowId != 42 {
		t.Fatalf("unexpected carried fields: %+v", req)
	}
	if !reflect.DeepEqual(req.SeatIds, []int{101, 102}) {
		t.Fatalf("unexpected seat ids: %v", req.SeatIds)
	}
}

func TestBookingItem_FilterValueIsHolderName(t *testing.T) {
	item := bookingItem{booking: sampleBookings()[0]}
	if got := item.FilterValue(); got != "John Roe" {
		t.Fatalf("unexpected filter value: %q", got)
	}
}

func TestHandleBookingDeleted_FailureKeepsEntry(t *testing.T) {
	m := newTestModel(t, "http://example.invalid")
	m.bookings = sampleBookings()
	m.bookingList.SetItems(buildBookingItems(m.bookings))
	m.state = stateDeletingBooking

	next, _ := m.Update(bookingDeletedMsg{bookingID: 1, status: "BAD_REQUEST", message: "not yours"})
	m = next.(appModel)
	if m.state != stateBookingList {
		t.Fatalf("unexpected state: %d", m.state)
	}
	if len(m.bookings) != 2 {
		t.Fatalf("booking removed despite failure: %+v", m.bookings)
	}
	if m.bookingNotice == "" {
		t.Fatal("expected a visible failure notice")
	}
}

func TestHandleBookingDeleted_SuccessRemovesExactlyOne(t *testing.T) {
	m := newTestModel(t, "http://example.invalid")
	m.bookings = sampleBookings()
	m.bookingList.SetItems(buildBookingItems(m.bookings))
	m.state = stateDeletingBooking

	next, _ := m.Update(bookingDeletedMsg{bookingID: 1, status: model.StatusOK})
	m = next.(appModel)
	if len(m.bookings) != 1 || m.bookings[0].BookingId != 2 {
		t.Fatalf("unexpected bookings: %+v", m.bookings)
	}
	if len(m.bookingList.Items()) != 1 {
		t.Fatalf("list not refreshed: %d items", len(m.bookingList.Items()))
	}
}

func TestHandleBookingUpdated_SuccessMergesContactFields(t *testing.T) {
	m := newTestModel(t, "http://example.invalid")
	m.bookings = sampleBookings()
	m.state = stateSavingEdit

	next, _ := m.Update(bookingUpdatedMsg{bookingID: 2, name: "Janet Doe", email: "janet@doe.dev", status: model.StatusOK})
	m = next.(appModel)
	if m.state != stateBookingList {
		t.Fatalf("unexpected state: %d", m.state)
	}
	if m.bookings[1].FullName != "Janet Doe" {
		t.Fatalf("edit not merged: %+v", m.bookings[1])
	}
}

func TestHandleBookingUpdated_FailureReturnsToEditForm(t *testing.T) {
	m := newTestModel(t, "http://example.invalid")
	m.bookings = sampleBookings()
	m.selectedBooking = m.bookings[1]
	m.editForm = newEditForm()
	m.editForm.name.SetValue("Janet Doe")
	m.editForm.email.SetValue("janet@doe.dev")
	m.state = stateSavingEdit

	next, _ := m.Update(bookingUpdatedMsg{bookingID: 2, err: errFake})
	m = next.(appModel)
	if m.state != stateEditBooking {
		t.Fatalf("unexpected state: %d", m.state)
	}
	// Entered values survive for the retry.
	if m.editForm.name.Value() != "Janet Doe" {
		t.Fatalf("edit form reset: %q", m.editForm.name.Value())
	}
	if m.bookings[1].FullName != "Jane Doe" {
		t.Fatalf("edit applied despite failure: %+v", m.bookings[1])
	}
}
