package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-playground/validator/v10"

	"movie-booking-cli/model"
)

// Pricing and room layout are fixed by the backend: one flat ticket price
// and a single 6x8 room, rows A-F with seats 1-8.
const (
	ticketPrice = 5
	seatRows    = "ABCDEF"
	seatsPerRow = 8
	minTickets  = 1
	maxTickets  = 8
)

var showTimes = []string{"10:00 AM", "1:00 PM", "4:00 PM", "7:00 PM", "10:00 PM"}

// bookingFlow carries everything a single booking attempt accumulates
// across the three steps. Values survive back-navigation; nothing created
// on the backend is rolled back.
type bookingFlow struct {
	movieID int

	// show selection
	date    textinput.Model
	timeIdx int // index into showTimes, -1 when unset
	tickets int
	focus   int // 0 date, 1 time, 2 tickets

	// seat selection
	showID    int
	selected  []string // labels in selection order
	cursorRow int
	cursorCol int

	// confirmation
	seatIDs      []int
	name         textinput.Model
	email        textinput.Model
	confirmFocus int

	notice string
}

func newBookingFlow() bookingFlow {
	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = 10
	date.Width = 12

	name := textinput.New()
	name.Placeholder = "full name"
	name.CharLimit = 120

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120

	return bookingFlow{
		date:    date,
		timeIdx: -1,
		tickets: minTickets,
		name:    name,
		email:   email,
	}
}

func (f bookingFlow) timeSlot() string {
	if f.timeIdx < 0 || f.timeIdx >= len(showTimes) {
		return ""
	}
	return showTimes[f.timeIdx]
}

type showCreatedMsg struct {
	show    model.Show
	status  string
	message string
	err     error
}

type seatsCreatedMsg struct {
	seatIDs  []int
	failures []string
}

type bookingRegisteredMsg struct {
	status  string
	message string
	err     error
}

// --- step 1: show selection ---

func (m appModel) updateShowForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.flow.focus = (m.flow.focus + 1) % 3
		return m.refocusShowForm()
	case "shift+tab", "up":
		m.flow.focus = (m.flow.focus + 2) % 3
		return m.refocusShowForm()
	case "left":
		switch m.flow.focus {
		case 1:
			if m.flow.timeIdx > 0 {
				m.flow.timeIdx--
			} else if m.flow.timeIdx < 0 {
				m.flow.timeIdx = 0
			}
			return m, nil
		case 2:
			if m.flow.tickets > minTickets {
				m.flow.tickets--
			}
			return m, nil
		}
	case "right":
		switch m.flow.focus {
		case 1:
			if m.flow.timeIdx < len(showTimes)-1 {
				m.flow.timeIdx++
			}
			return m, nil
		case 2:
			if m.flow.tickets < maxTickets {
				m.flow.tickets++
			}
			return m, nil
		}
	}

	if msg.Type == tea.KeyEnter {
		return m.submitShow()
	}

	if m.flow.focus == 0 {
		var cmd tea.Cmd
		m.flow.date, cmd = m.flow.date.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) refocusShowForm() (tea.Model, tea.Cmd) {
	if m.flow.focus == 0 {
		return m, m.flow.date.Focus()
	}
	m.flow.date.Blur()
	return m, nil
}

func (m appModel) submitShow() (tea.Model, tea.Cmd) {
	if err := validateShowForm(m.flow.date.Value(), m.flow.timeSlot(), m.flow.tickets, time.Now()); err != nil {
		m.flow.notice = err.Error()
		return m, nil
	}
	m.flow.notice = ""
	req := model.ShowRequest{
		ShowDate:       strings.TrimSpace(m.flow.date.Value()),
		ShowTime:       m.flow.timeSlot(),
		NumberOfTicket: m.flow.tickets,
		MovieId:        m.flow.movieID,
	}
	m.state = stateCreatingShow
	return m, tea.Batch(m.createShowCmd(req), m.spinner.Tick)
}

// validateShowForm gates the show submission: both date and time must be
// set, the date must not be in the past, and the ticket count must stay
// within the room's bounds.
func validateShowForm(date string, timeSlot string, tickets int, now time.Time) error {
	date = strings.TrimSpace(date)
	if date == "" || timeSlot == "" {
		return errors.New("Pick a date and a show time first.")
	}
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return errors.New("Date must look like 2025-06-01.")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return errors.New("Date must not be earlier than today.")
	}
	if tickets < minTickets || tickets > maxTickets {
		return fmt.Errorf("Ticket count must be between %d and %d.", minTickets, maxTickets)
	}
	return nil
}

func (m appModel) createShowCmd(req model.ShowRequest) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		resp, err := m.client.CreateShow(ctx, req)
		if err != nil {
			return showCreatedMsg{err: err}
		}
		return showCreatedMsg{show: resp.Payload, status: resp.Status, message: resp.Message}
	}
}

func (m appModel) handleShowCreated(msg showCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.state = stateShowForm
		m.flow.notice = "Show creation failed: " + msg.err.Error()
		return m, nil
	}
	if msg.status != model.StatusCreated {
		m.state = stateShowForm
		m.flow.notice = "Show creation failed: " + failMessage(msg.status, msg.message)
		return m, nil
	}
	m.flow.showID = msg.show.ShowId
	m.flow.notice = ""
	m.flow.date.Blur()
	m.state = stateSeatSelection
	return m, nil
}

func (m appModel) showFormView() string {
	focused := lipgloss.NewStyle().Bold(true)
	line := func(i int, label string, value string) string {
		marker := "  "
		if m.flow.focus == i {
			marker = "> "
			return marker + focused.Render(fmt.Sprintf("%-8s", label)) + value
		}
		return marker + fmt.Sprintf("%-8s", label) + value
	}

	timeValue := hint("← → to choose")
	if slot := m.flow.timeSlot(); slot != "" {
		timeValue = slot
	}

	var b strings.Builder
	b.WriteString("Book tickets — pick a show\n\n")
	b.WriteString(line(0, "Date", m.flow.date.View()) + "\n")
	b.WriteString(line(1, "Time", timeValue) + "\n")
	b.WriteString(line(2, "Tickets", fmt.Sprintf("%d", m.flow.tickets)) + "\n")
	if m.flow.notice != "" {
		b.WriteString("\n" + errorStyle.Render(m.flow.notice))
	}
	return b.String()
}

// --- step 2: seat selection ---

func (m appModel) updateSeatSelection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.flow.cursorRow > 0 {
			m.flow.cursorRow--
		}
		return m, nil
	case "down", "j":
		if m.flow.cursorRow < len(seatRows)-1 {
			m.flow.cursorRow++
		}
		return m, nil
	case "left", "h":
		if m.flow.cursorCol > 0 {
			m.flow.cursorCol--
		}
		return m, nil
	case "right", "l":
		if m.flow.cursorCol < seatsPerRow-1 {
			m.flow.cursorCol++
		}
		return m, nil
	case " ":
		return m.toggleSeatUnderCursor()
	}
	if msg.Type == tea.KeyEnter {
		return m.submitSeats()
	}
	return m, nil
}

func (m appModel) toggleSeatUnderCursor() (tea.Model, tea.Cmd) {
	label := seatLabel(m.flow.cursorRow, m.flow.cursorCol)
	selected, changed := toggleSeat(m.flow.selected, label, m.flow.tickets)
	m.flow.selected = selected
	if !changed {
		m.flow.notice = fmt.Sprintf("You can only select %d seat%s.", m.flow.tickets, plural(m.flow.tickets))
		return m, nil
	}
	m.flow.notice = ""
	return m, nil
}

func (m appModel) submitSeats() (tea.Model, tea.Cmd) {
	if len(m.flow.selected) != m.flow.tickets {
		m.flow.notice = fmt.Sprintf("Select exactly %d seat%s before continuing.", m.flow.tickets, plural(m.flow.tickets))
		return m, nil
	}
	m.flow.notice = ""
	m.state = stateCreatingSeats
	return m, tea.Batch(m.createSeatsCmd(m.flow.selected), m.spinner.Tick)
}

// createSeatsCmd registers every selected seat sequentially, in selection
// order. Failures do not short-circuit the rest of the batch, and the
// whole batch must succeed: on any failure the partial seat ids are
// discarded rather than carried into the booking.
func (m appModel) createSeatsCmd(labels []string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		ids := make([]int, 0, len(labels))
		var failures []string
		for _, label := range labels {
			req, err := seatRequestFromLabel(label)
			if err != nil {
				failures = append(failures, fmt.Sprintf("%s: %v", label, err))
				continue
			}
			resp, err := m.client.CreateSeat(ctx, req)
			if err != nil {
				failures = append(failures, fmt.Sprintf("%s: %v", label, err))
				continue
			}
			if !resp.Created() {
				failures = append(failures, fmt.Sprintf("%s: %s", label, failMessage(resp.Status, resp.Message)))
				continue
			}
			ids = append(ids, resp.Payload.SeatId)
		}
		if len(failures) > 0 {
			return seatsCreatedMsg{failures: failures}
		}
		return seatsCreatedMsg{seatIDs: ids}
	}
}

func (m appModel) handleSeatsCreated(msg seatsCreatedMsg) (tea.Model, tea.Cmd) {
	if len(msg.failures) > 0 {
		m.state = stateSeatSelection
		m.flow.notice = "Seat reservation failed: " + strings.Join(msg.failures, "; ")
		return m, nil
	}
	m.flow.seatIDs = msg.seatIDs
	m.flow.notice = ""
	m.flow.confirmFocus = 0
	m.state = stateConfirmation
	return m, m.flow.name.Focus()
}

func (m appModel) seatSelectionView() string {
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("4"))
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	disabledStyle := lipgloss.NewStyle().Faint(true)

	selected := make(map[string]bool, len(m.flow.selected))
	for _, label := range m.flow.selected {
		selected[label] = true
	}
	atLimit := len(m.flow.selected) >= m.flow.tickets

	var b strings.Builder
	b.WriteString(screenBar(seatsPerRow*5 - 1))
	b.WriteString("\n\n")
	for r := 0; r < len(seatRows); r++ {
		b.WriteString(string(seatRows[r]) + "  ")
		for c := 0; c < seatsPerRow; c++ {
			label := seatLabel(r, c)
			cell := fmt.Sprintf(" %s ", label)
			switch {
			case r == m.flow.cursorRow && c == m.flow.cursorCol:
				cell = cursorStyle.Render(fmt.Sprintf("[%s]", label))
			case selected[label]:
				cell = selectedStyle.Render(cell)
			case atLimit:
				cell = disabledStyle.Render(cell)
			}
			b.WriteString(cell)
			if c < seatsPerRow-1 {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Selected %d/%d: %s\n", len(m.flow.selected), m.flow.tickets, strings.Join(m.flow.selected, " ")))
	b.WriteString(fmt.Sprintf("Total: $%d\n", priceFor(len(m.flow.selected))))
	if m.flow.notice != "" {
		b.WriteString("\n" + errorStyle.Render(m.flow.notice))
	}
	return b.String()
}

func screenBar(width int) string {
	if width < 10 {
		width = 10
	}
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214"))
	label := " SCREEN "
	padding := width - len(label)
	left := padding / 2
	right := padding - left
	return "   " + style.Render(strings.Repeat(" ", left)+label+strings.Repeat(" ", right))
}

// --- step 3: confirmation ---

func (m appModel) updateConfirmation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return m.cycleConfirmFocus(1)
	case "shift+tab", "up":
		return m.cycleConfirmFocus(-1)
	}
	if msg.Type == tea.KeyEnter {
		return m.submitBooking()
	}
	var cmd tea.Cmd
	if m.flow.confirmFocus == 0 {
		m.flow.name, cmd = m.flow.name.Update(msg)
	} else {
		m.flow.email, cmd = m.flow.email.Update(msg)
	}
	return m, cmd
}

func (m appModel) cycleConfirmFocus(delta int) (tea.Model, tea.Cmd) {
	m.flow.confirmFocus = (m.flow.confirmFocus + delta + 2) % 2
	if m.flow.confirmFocus == 0 {
		m.flow.email.Blur()
		return m, m.flow.name.Focus()
	}
	m.flow.name.Blur()
	return m, m.flow.email.Focus()
}

func (m appModel) submitBooking() (tea.Model, tea.Cmd) {
	req := model.BookingRequest{
		FullName:   strings.TrimSpace(m.flow.name.Value()),
		Email:      strings.TrimSpace(m.flow.email.Value()),
		TotalPrice: float64(priceFor(len(m.flow.selected))),
		ShowId:     m.flow.showID,
		SeatIds:    m.flow.seatIDs,
	}
	if err := validate.Struct(req); err != nil {
		m.flow.notice = confirmationProblem(err)
		return m, nil
	}
	m.flow.notice = ""
	m.state = stateRegisteringBooking
	return m, tea.Batch(m.registerBookingCmd(req), m.spinner.Tick)
}

func (m appModel) registerBookingCmd(req model.BookingRequest) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		resp, err := m.client.RegisterBooking(ctx, req)
		if err != nil {
			return bookingRegisteredMsg{err: err}
		}
		return bookingRegisteredMsg{status: resp.Status, message: resp.Message}
	}
}

// handleBookingRegistered ends the workflow on success; on failure all
// accumulated state is kept so the user can retry.
func (m appModel) handleBookingRegistered(msg bookingRegisteredMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.state = stateConfirmation
		m.flow.notice = "Booking failed: " + msg.err.Error()
		return m, nil
	}
	if msg.status != model.StatusCreated {
		m.state = stateConfirmation
		m.flow.notice = "Booking failed: " + failMessage(msg.status, msg.message)
		return m, nil
	}
	m.flow = newBookingFlow()
	m.state = stateLoadingBookings
	m.bookingNotice = "Booking confirmed."
	return m, tea.Batch(m.fetchBookingsCmd(), m.spinner.Tick)
}

func (m appModel) confirmationView() string {
	var b strings.Builder
	b.WriteString("Confirm your booking\n\n")
	b.WriteString(fmt.Sprintf("%-10s %s\n", "Name", m.flow.name.View()))
	b.WriteString(fmt.Sprintf("%-10s %s\n", "Email", m.flow.email.View()))
	b.WriteString("\n")
	b.WriteString(hint(fmt.Sprintf("%s at %s • seats %s • total $%d",
		m.flow.date.Value(), m.flow.timeSlot(), strings.Join(m.flow.selected, " "), priceFor(len(m.flow.selected)))))
	if m.flow.notice != "" {
		b.WriteString("\n\n" + errorStyle.Render(m.flow.notice))
	}
	return b.String()
}

func confirmationProblem(err error) string {
	problem := "Name and email are required."
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 && fields[0].Tag() == "email" {
		problem = "Email address is malformed."
	}
	return problem
}

// --- shared helpers ---

func priceFor(seatCount int) int {
	return ticketPrice * seatCount
}

func seatLabel(row int, col int) string {
	return string(seatRows[row]) + strconv.Itoa(col+1)
}

// toggleSeat flips membership of label in the selected set. Adding past
// the limit is rejected and reported via the second return; removing is
// always allowed.
func toggleSeat(selected []string, label string, limit int) ([]string, bool) {
	for i, existing := range selected {
		if existing == label {
			return append(selected[:i:i], selected[i+1:]...), true
		}
	}
	if len(selected) >= limit {
		return selected, false
	}
	return append(selected, label), true
}

// seatRequestFromLabel splits "A1" into its row letter and seat number.
func seatRequestFromLabel(label string) (model.SeatRequest, error) {
	if len(label) < 2 {
		return model.SeatRequest{}, fmt.Errorf("invalid seat label %q", label)
	}
	row := string(label[0])
	if !strings.Contains(seatRows, row) {
		return model.SeatRequest{}, fmt.Errorf("invalid seat row %q", row)
	}
	number, err := strconv.Atoi(label[1:])
	if err != nil || number < 1 || number > seatsPerRow {
		return model.SeatRequest{}, fmt.Errorf("invalid seat number in %q", label)
	}
	return model.SeatRequest{Row: row, Number: number}, nil
}

func failMessage(status string, message string) string {
	if message != "" {
		return message
	}
	if status != "" {
		return "unexpected status " + status
	}
	return "unexpected response"
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
