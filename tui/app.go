package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"movie-booking-cli/model"
	"movie-booking-cli/service"
	"movie-booking-cli/session"
)

type appState int

const (
	stateLogin appState = iota
	stateRegister
	stateAuthenticating
	stateLoadingMovies
	stateSelectMovie
	stateLoadingMovieDetail
	stateMovieDetail
	stateShowForm
	stateCreatingShow
	stateSeatSelection
	stateCreatingSeats
	stateConfirmation
	stateRegisteringBooking
	stateLoadingBookings
	stateBookingList
	stateEditBooking
	stateSavingEdit
	stateConfirmDelete
	stateDeletingBooking
	stateError
)

// Listing screens fetch a single unbounded page, the way the hosting app
// always has.
const (
	firstPage     = 1
	unboundedSize = 1000000
)

type appModel struct {
	client *service.Client
	auth   *session.Authenticator

	state     appState
	lastState appState
	err       error

	width  int
	height int

	spinner spinner.Model

	authForm authForm

	movies      []model.Movie
	categories  []model.Category
	categoryIdx int
	movieList   list.Model
	movie       model.Movie

	flow bookingFlow

	bookings        []model.Booking
	bookingList     list.Model
	bookingNotice   string
	selectedBooking model.Booking
	editForm        editForm
}

type errMsg struct {
	err            error
	returnState    appState
	returnStateSet bool
}

type moviesMsg struct {
	movies     []model.Movie
	categories []model.Category
	err        error
}

type movieDetailMsg struct {
	movie model.Movie
	err   error
}

type favoriteMsg struct {
	movieID int
	status  bool
	err     error
}

// New builds the application model around a configured API client and
// authenticator.
func New(client *service.Client, auth *session.Authenticator) tea.Model {
	m := appModel{
		client: client,
		auth:   auth,
		state:  stateLogin,
	}

	m.movieList = newList("Select Movie")
	m.bookingList = newList("My Bookings")
	m.bookingList.Filter = substringFilter

	m.authForm = newAuthForm()
	m.editForm = newEditForm()
	m.flow = newBookingFlow()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	// A still-valid persisted session skips the login screen.
	if auth.Resume() {
		m.state = stateLoadingMovies
	}

	return m
}

func (m appModel) Init() tea.Cmd {
	if m.state == stateLoadingMovies {
		return tea.Batch(m.fetchMoviesCmd(), m.spinner.Tick)
	}
	return m.authForm.focusCmd()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.handleFilterInput(msg) {
			return m, nil
		}
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isLoadingState() {
			return m, cmd
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		if msg.returnStateSet {
			m.lastState = msg.returnState
		} else {
			m.lastState = recoverStateFrom(m.state)
		}
		m.state = stateError
		return m, nil

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case registerResultMsg:
		return m.handleRegisterResult(msg)

	case moviesMsg:
		if msg.err != nil {
			return m, errWithOptionsCmd(msg.err, stateLogin)
		}
		m.movies = msg.movies
		m.categories = msg.categories
		m.movieList.SetItems(buildMovieItems(msg.movies))
		m.state = stateSelectMovie
		return m, nil

	case movieDetailMsg:
		if msg.err != nil {
			return m, errWithOptionsCmd(msg.err, stateSelectMovie)
		}
		m.movie = msg.movie
		m.state = stateMovieDetail
		return m, nil

	case favoriteMsg:
		if msg.err != nil {
			return m, errWithOptionsCmd(msg.err, stateMovieDetail)
		}
		if m.movie.MovieId == msg.movieID {
			m.movie.IsFavorite = msg.status
		}
		return m, nil

	case showCreatedMsg:
		return m.handleShowCreated(msg)

	case seatsCreatedMsg:
		return m.handleSeatsCreated(msg)

	case bookingRegisteredMsg:
		return m.handleBookingRegistered(msg)

	case bookingsMsg:
		return m.handleBookingsLoaded(msg)

	case bookingDeletedMsg:
		return m.handleBookingDeleted(msg)

	case bookingUpdatedMsg:
		return m.handleBookingUpdated(msg)
	}

	var cmd tea.Cmd
	switch m.state {
	case stateSelectMovie:
		m.movieList, cmd = m.movieList.Update(msg)
	case stateBookingList:
		m.bookingList, cmd = m.bookingList.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateLogin, stateRegister:
		return header + "\n\n" + m.authView()
	case stateAuthenticating, stateLoadingMovies, stateLoadingMovieDetail,
		stateCreatingShow, stateCreatingSeats, stateRegisteringBooking,
		stateLoadingBookings, stateDeletingBooking, stateSavingEdit:
		return header + "\n\n" + m.loadingView()
	case stateSelectMovie:
		return header + "\n\n" + m.movieList.View()
	case stateMovieDetail:
		return header + "\n\n" + m.movieDetailView()
	case stateShowForm:
		return header + "\n\n" + m.showFormView()
	case stateSeatSelection:
		return header + "\n\n" + m.seatSelectionView()
	case stateConfirmation:
		return header + "\n\n" + m.confirmationView()
	case stateBookingList:
		return header + "\n\n" + m.bookingListView()
	case stateEditBooking:
		return header + "\n\n" + m.editBookingView()
	case stateConfirmDelete:
		return header + "\n\n" + m.confirmDeleteView()
	case stateError:
		return header + "\n\n" + errorStyle.Render(m.err.Error()) + "\n\n" + hint("Press esc to go back or ctrl+c to quit.")
	default:
		return header
	}
}

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("Movie Booking")
	sub := []string{}
	if email := m.auth.Email(); email != "" {
		sub = append(sub, fmt.Sprintf("User: %s", email))
	}
	if m.movie.Title != "" && m.state != stateSelectMovie && m.state != stateBookingList {
		sub = append(sub, fmt.Sprintf("Movie: %s", m.movie.Title))
	}
	if m.state == stateSeatSelection || m.state == stateConfirmation || m.state == stateCreatingSeats || m.state == stateRegisteringBooking {
		sub = append(sub, fmt.Sprintf("Show: %s %s", m.flow.date.Value(), m.flow.timeSlot()))
		sub = append(sub, fmt.Sprintf("Tickets: %d", m.flow.tickets))
	}
	if m.state == stateConfirmation || m.state == stateRegisteringBooking {
		sub = append(sub, fmt.Sprintf("Seats: %s", strings.Join(m.flow.selected, " ")))
		sub = append(sub, fmt.Sprintf("Total: $%d", priceFor(len(m.flow.selected))))
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}

	hints := "ctrl+c quit • esc back"
	switch m.state {
	case stateLogin:
		hints = "ctrl+c quit • tab next field • enter sign in • ctrl+r create account"
	case stateRegister:
		hints = "ctrl+c quit • tab next field • enter register • esc back to sign in"
	case stateSelectMovie:
		hints = "ctrl+c quit • type to filter • enter open movie • ctrl+g cycle category • ctrl+b my bookings • ctrl+l sign out"
	case stateMovieDetail:
		hints = "ctrl+c quit • esc back • b book tickets • f toggle favorite"
	case stateShowForm:
		hints = "ctrl+c quit • esc back • tab next field • left/right change value • enter continue"
	case stateSeatSelection:
		hints = "ctrl+c quit • esc back • arrows move • space toggle seat • enter continue"
	case stateConfirmation:
		hints = "ctrl+c quit • esc back • tab next field • enter confirm booking"
	case stateBookingList:
		hints = "ctrl+c quit • esc movies • type to search by name • e edit • d delete • r refresh"
	case stateEditBooking:
		hints = "ctrl+c quit • esc cancel • tab next field • enter save"
	case stateConfirmDelete:
		hints = "y delete • n cancel"
	}

	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint(fmt.Sprintf("Filter: %s", filter))
		}
	}
	return title + meta + filterLine + "\n" + hint(hints)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		if listPtr := m.activeList(); listPtr != nil {
			if listPtr.SettingFilter() || listPtr.IsFiltered() {
				listPtr.ResetFilter()
				return m, nil
			}
		}
		return m.goBack()
	}

	switch m.state {
	case stateLogin, stateRegister:
		return m.updateAuth(msg)
	case stateSelectMovie:
		return m.updateMovieSelect(msg)
	case stateMovieDetail:
		return m.updateMovieDetail(msg)
	case stateShowForm:
		return m.updateShowForm(msg)
	case stateSeatSelection:
		return m.updateSeatSelection(msg)
	case stateConfirmation:
		return m.updateConfirmation(msg)
	case stateBookingList:
		return m.updateBookingList(msg)
	case stateEditBooking:
		return m.updateEditBooking(msg)
	case stateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}
	return m, nil
}

func (m appModel) goBack() (tea.Model, tea.Cmd) {
	switch m.state {
	case stateRegister:
		m.state = stateLogin
		m.authForm.notice = ""
		return m, m.authForm.focusCmd()
	case stateMovieDetail:
		m.state = stateSelectMovie
	case stateShowForm:
		m.state = stateMovieDetail
	case stateSeatSelection:
		// Entered values stay; the created show is not rolled back.
		m.state = stateShowForm
	case stateConfirmation:
		m.state = stateSeatSelection
	case stateBookingList:
		if len(m.movieList.Items()) == 0 {
			m.state = stateLoadingMovies
			return m, tea.Batch(m.fetchMoviesCmd(), m.spinner.Tick)
		}
		m.state = stateSelectMovie
	case stateEditBooking, stateConfirmDelete:
		m.state = stateBookingList
	case stateError:
		m.state = m.lastState
		if m.state == stateLogin {
			return m, m.authForm.focusCmd()
		}
	}
	return m, nil
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil {
		return false
	}
	if !listPtr.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		if m.state == stateBookingList && isBookingListCommand(string(msg.Runes)) && listPtr.FilterValue() == "" {
			return false
		}
		m.appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		m.appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		m.popFilter(listPtr)
		return true
	default:
		return false
	}
}

// Single-letter actions on the booking list win over the live filter while
// the filter is empty.
func isBookingListCommand(runes string) bool {
	switch runes {
	case "e", "d", "r":
		return true
	default:
		return false
	}
}

func (m *appModel) appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	current := listPtr.FilterValue()
	listPtr.SetFilterText(current + value)
}

func (m *appModel) popFilter(listPtr *list.Model) {
	value := listPtr.FilterValue()
	if value == "" {
		return
	}
	value = trimLastRune(value)
	if value == "" {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(value)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func (m *appModel) activeList() *list.Model {
	switch m.state {
	case stateSelectMovie:
		return &m.movieList
	case stateBookingList:
		return &m.bookingList
	default:
		return nil
	}
}

func (m appModel) isLoadingState() bool {
	switch m.state {
	case stateAuthenticating, stateLoadingMovies, stateLoadingMovieDetail,
		stateCreatingShow, stateCreatingSeats, stateRegisteringBooking,
		stateLoadingBookings, stateDeletingBooking, stateSavingEdit:
		return true
	default:
		return false
	}
}

func (m appModel) loadingView() string {
	title := "Loading"
	switch m.state {
	case stateAuthenticating:
		title = "Signing in"
	case stateLoadingMovies:
		title = "Loading movies"
	case stateLoadingMovieDetail:
		title = "Loading movie"
	case stateCreatingShow:
		title = "Creating show"
	case stateCreatingSeats:
		title = "Reserving seats"
	case stateRegisteringBooking:
		title = "Registering booking"
	case stateLoadingBookings:
		title = "Loading bookings"
	case stateDeletingBooking:
		title = "Deleting booking"
	case stateSavingEdit:
		title = "Saving changes"
	}
	return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), title, hint("Waiting for the server..."))
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	m.movieList.SetSize(m.width, h)
	m.bookingList.SetSize(m.width, h)
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err}
	}
}

func errWithOptionsCmd(err error, returnState appState) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err, returnState: returnState, returnStateSet: true}
	}
}

func recoverStateFrom(state appState) appState {
	switch state {
	case stateAuthenticating:
		return stateLogin
	case stateLoadingMovies, stateLoadingMovieDetail:
		return stateSelectMovie
	case stateCreatingShow:
		return stateShowForm
	case stateCreatingSeats:
		return stateSeatSelection
	case stateRegisteringBooking:
		return stateConfirmation
	case stateLoadingBookings, stateDeletingBooking:
		return stateBookingList
	case stateSavingEdit:
		return stateEditBooking
	default:
		return state
	}
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}

// substringFilter keeps only targets containing the term, case-insensitive.
// The bookings search must not fuzzy-match ("jo" should not hit "Jane Doe").
func substringFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	ranks := make([]list.Rank, 0, len(targets))
	for i, target := range targets {
		if strings.Contains(strings.ToLower(target), term) {
			ranks = append(ranks, list.Rank{Index: i, MatchedIndexes: []int{}})
		}
	}
	return ranks
}
