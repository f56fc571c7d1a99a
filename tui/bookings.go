package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"movie-booking-cli/model"
)

type bookingItem struct {
	booking model.Booking
}

func (i bookingItem) Title() string {
	return fmt.Sprintf("#%d %s", i.booking.BookingId, i.booking.FullName)
}

func (i bookingItem) Description() string {
	parts := []string{}
	if i.booking.Email != "" {
		parts = append(parts, i.booking.Email)
	}
	if i.booking.Show.ShowDate != "" {
		parts = append(parts, fmt.Sprintf("%s %s", i.booking.Show.ShowDate, i.booking.Show.ShowTime))
	}
	if seats := seatLabels(i.booking.Seats); seats != "" {
		parts = append(parts, "seats "+seats)
	}
	parts = append(parts, fmt.Sprintf("$%.0f", i.booking.TotalPrice))
	return strings.Join(parts, " • ")
}

// Search covers the holder's name only.
func (i bookingItem) FilterValue() string {
	return i.booking.FullName
}

func seatLabels(seats []model.Seat) string {
	labels := make([]string, 0, len(seats))
	for _, seat := range seats {
		labels = append(labels, fmt.Sprintf("%s%d", seat.Row, seat.Number))
	}
	return strings.Join(labels, " ")
}

func buildBookingItems(bookings []model.Booking) []list.Item {
	items := make([]list.Item, 0, len(bookings))
	for _, booking := range bookings {
		items = append(items, bookingItem{booking: booking})
	}
	return items
}

type editForm struct {
	name  textinput.Model
	email textinput.Model
	focus int
}

func newEditForm() editForm {
	name := textinput.New()
	name.Placeholder = "full name"
	name.CharLimit = 120

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120

	return editForm{name: name, email: email}
}

type bookingsMsg struct {
	bookings []model.Booking
	err      error
}

type bookingDeletedMsg struct {
	bookingID int
	status    string
	message   string
	err       error
}

type bookingUpdatedMsg struct {
	bookingID int
	name      string
	email     string
	status    string
	message   string
	err       error
}

func (m appModel) fetchBookingsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		resp, err := m.client.ListBookings(ctx, firstPage, unboundedSize)
		if err != nil {
			return bookingsMsg{err: err}
		}
		return bookingsMsg{bookings: resp.Payload}
	}
}

func (m appModel) deleteBookingCmd(id int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		resp, err := m.client.DeleteBooking(ctx, id)
		if err != nil {
			return bookingDeletedMsg{bookingID: id, err: err}
		}
		return bookingDeletedMsg{bookingID: id, status: resp.Status, message: resp.Message}
	}
}

func (m appModel) updateBookingCmd(id int, req model.EditRequest) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		resp, err := m.client.UpdateBooking(ctx, id, req)
		if err != nil {
			return bookingUpdatedMsg{bookingID: id, err: err}
		}
		return bookingUpdatedMsg{
			bookingID: id,
			name:      req.FullName,
			email:     req.Email,
			status:    resp.Status,
			message:   resp.Message,
		}
	}
}

func (m appModel) handleBookingsLoaded(msg bookingsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, errWithOptionsCmd(msg.err, stateSelectMovie)
	}
	m.bookings = msg.bookings
	m.bookingList.SetItems(buildBookingItems(msg.bookings))
	m.state = stateBookingList
	return m, nil
}

// handleBookingDeleted removes the booking locally on success. A failed
// delete keeps the entry and surfaces the reason above the list.
func (m appModel) handleBookingDeleted(msg bookingDeletedMsg) (tea.Model, tea.Cmd) {
	m.state = stateBookingList
	if msg.err != nil {
		m.bookingNotice = "Delete failed: " + msg.err.Error()
		return m, nil
	}
	if msg.status != model.StatusOK {
		m.bookingNotice = "Delete failed: " + failMessage(msg.status, msg.message)
		return m, nil
	}
	m.bookings = removeBooking(m.bookings, msg.bookingID)
	m.bookingList.SetItems(buildBookingItems(m.bookings))
	m.bookingNotice = fmt.Sprintf("Booking #%d deleted.", msg.bookingID)
	return m, nil
}

// handleBookingUpdated merges the edited name and email into the local
// copy on success. A failed save returns to the edit form with the
// entered values intact.
func (m appModel) handleBookingUpdated(msg bookingUpdatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.state = stateEditBooking
		m.bookingNotice = "Save failed: " + msg.err.Error()
		return m, nil
	}
	if msg.status != model.StatusOK {
		m.state = stateEditBooking
		m.bookingNotice = "Save failed: " + failMessage(msg.status, msg.message)
		return m, nil
	}
	m.bookings = applyBookingEdit(m.bookings, msg.bookingID, msg.name, msg.email)
	m.bookingList.SetItems(buildBookingItems(m.bookings))
	m.state = stateBookingList
	m.bookingNotice = fmt.Sprintf("Booking #%d updated.", msg.bookingID)
	return m, nil
}

func (m appModel) updateBookingList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "e":
		item, ok := m.bookingList.SelectedItem().(bookingItem)
		if !ok {
			return m, nil
		}
		m.selectedBooking = item.booking
		m.editForm = newEditForm()
		m.editForm.name.SetValue(item.booking.FullName)
		m.editForm.email.SetValue(item.booking.Email)
		m.bookingNotice = ""
		m.state = stateEditBooking
		return m, m.editForm.name.Focus()
	case "d":
		item, ok := m.bookingList.SelectedItem().(bookingItem)
		if !ok {
			return m, nil
		}
		m.selectedBooking = item.booking
		m.bookingNotice = ""
		m.state = stateConfirmDelete
		return m, nil
	case "r":
		m.bookingNotice = ""
		m.state = stateLoadingBookings
		return m, tea.Batch(m.fetchBookingsCmd(), m.spinner.Tick)
	}
	var cmd tea.Cmd
	m.bookingList, cmd = m.bookingList.Update(msg)
	return m, cmd
}

func (m appModel) updateEditBooking(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return m.cycleEditFocus(1)
	case "shift+tab", "up":
		return m.cycleEditFocus(-1)
	}
	if msg.Type == tea.KeyEnter {
		return m.submitEdit()
	}
	var cmd tea.Cmd
	if m.editForm.focus == 0 {
		m.editForm.name, cmd = m.editForm.name.Update(msg)
	} else {
		m.editForm.email, cmd = m.editForm.email.Update(msg)
	}
	return m, cmd
}

func (m appModel) cycleEditFocus(delta int) (tea.Model, tea.Cmd) {
	m.editForm.focus = (m.editForm.focus + delta + 2) % 2
	if m.editForm.focus == 0 {
		m.editForm.email.Blur()
		return m, m.editForm.name.Focus()
	}
	m.editForm.name.Blur()
	return m, m.editForm.email.Focus()
}

func (m appModel) submitEdit() (tea.Model, tea.Cmd) {
	req := editRequestFor(m.selectedBooking, m.editForm.name.Value(), m.editForm.email.Value())
	if err := validate.Struct(req); err != nil {
		m.bookingNotice = confirmationProblem(err)
		return m, nil
	}
	m.bookingNotice = ""
	m.state = stateSavingEdit
	return m, tea.Batch(m.updateBookingCmd(m.selectedBooking.BookingId, req), m.spinner.Tick)
}

// editRequestFor rebuilds the full update payload from the stored booking,
// swapping in only the edited contact fields.
func editRequestFor(booking model.Booking, name string, email string) model.EditRequest {
	seatIDs := make([]int, 0, len(booking.Seats))
	for _, seat := range booking.Seats {
		seatIDs = append(seatIDs, seat.SeatId)
	}
	return model.EditRequest{
		FullName:   strings.TrimSpace(name),
		Email:      strings.TrimSpace(email),
		TotalPrice: booking.TotalPrice,
		ShowId:     booking.Show.ShowId,
		SeatIds:    seatIDs,
	}
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.state = stateDeletingBooking
		return m, tea.Batch(m.deleteBookingCmd(m.selectedBooking.BookingId), m.spinner.Tick)
	case "n", "N", "esc":
		m.state = stateBookingList
		return m, nil
	}
	return m, nil
}

func (m appModel) bookingListView() string {
	view := m.bookingList.View()
	if m.bookingNotice == "" {
		return view
	}
	notice := m.bookingNotice
	if strings.HasPrefix(notice, "Delete failed") || strings.HasPrefix(notice, "Save failed") {
		notice = errorStyle.Render(notice)
	} else {
		notice = hint(notice)
	}
	return notice + "\n\n" + view
}

func (m appModel) editBookingView() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Edit booking #%d\n\n", m.selectedBooking.BookingId))
	b.WriteString(fmt.Sprintf("%-10s %s\n", "Name", m.editForm.name.View()))
	b.WriteString(fmt.Sprintf("%-10s %s\n", "Email", m.editForm.email.View()))
	b.WriteString("\n")
	b.WriteString(hint(fmt.Sprintf("%s %s • seats %s • $%.0f",
		m.selectedBooking.Show.ShowDate, m.selectedBooking.Show.ShowTime,
		seatLabels(m.selectedBooking.Seats), m.selectedBooking.TotalPrice)))
	if m.bookingNotice != "" {
		b.WriteString("\n\n" + errorStyle.Render(m.bookingNotice))
	}
	return b.String()
}

func (m appModel) confirmDeleteView() string {
	return fmt.Sprintf("Delete booking #%d for %s?\n\n%s",
		m.selectedBooking.BookingId, m.selectedBooking.FullName,
		hint("y delete • n cancel"))
}

func removeBooking(bookings []model.Booking, id int) []model.Booking {
	out := make([]model.Booking, 0, len(bookings))
	for _, booking := range bookings {
		if booking.BookingId == id {
			continue
		}
		out = append(out, booking)
	}
	return out
}

func applyBookingEdit(bookings []model.Booking, id int, name string, email string) []model.Booking {
	out := make([]model.Booking, len(bookings))
	copy(out, bookings)
	for i := range out {
		if out[i].BookingId == id {
			out[i].FullName = name
			out[i].Email = email
			break
		}
	}
	return out
}
