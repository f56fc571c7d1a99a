package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"movie-booking-cli/model"
)

type movieItem struct {
	movie model.Movie
}

func (i movieItem) Title() string {
	if i.movie.IsFavorite {
		return i.movie.Title + " ♥"
	}
	return i.movie.Title
}

func (i movieItem) Description() string {
	parts := []string{}
	if i.movie.Year > 0 {
		parts = append(parts, fmt.Sprintf("%d", i.movie.Year))
	}
	if i.movie.Category.Name != "" {
		parts = append(parts, i.movie.Category.Name)
	}
	if i.movie.Rating > 0 {
		parts = append(parts, fmt.Sprintf("%.1f/10", i.movie.Rating))
	}
	if i.movie.Duration > 0 {
		parts = append(parts, fmt.Sprintf("%d min", i.movie.Duration))
	}
	return strings.Join(parts, " • ")
}

func (i movieItem) FilterValue() string {
	return strings.ToLower(strings.Join([]string{i.movie.Title, i.movie.Category.Name, i.movie.DirectorName}, " "))
}

func buildMovieItems(movies []model.Movie) []list.Item {
	items := make([]list.Item, 0, len(movies))
	for _, movie := range movies {
		items = append(items, movieItem{movie: movie})
	}
	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].(movieItem).movie.Title) < strings.ToLower(items[j].(movieItem).movie.Title)
	})
	return items
}

func (m appModel) fetchMoviesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		movies, err := m.client.ListMovies(ctx, firstPage, unboundedSize)
		if err != nil {
			return moviesMsg{err: err}
		}
		// Categories only enrich the browse view; their failure is not fatal.
		categories, err := m.client.ListCategories(ctx, firstPage, unboundedSize)
		if err != nil {
			return moviesMsg{movies: movies.Payload}
		}
		return moviesMsg{movies: movies.Payload, categories: categories.Payload}
	}
}

func (m appModel) fetchMoviesByCategoryCmd(name string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		movies, err := m.client.MoviesByCategory(ctx, name, firstPage, unboundedSize)
		if err != nil {
			return moviesMsg{err: err}
		}
		return moviesMsg{movies: movies.Payload, categories: m.categories}
	}
}

func (m appModel) fetchMovieDetailCmd(id int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		movie, err := m.client.GetMovie(ctx, id)
		if err != nil {
			return movieDetailMsg{err: err}
		}
		return movieDetailMsg{movie: movie.Payload}
	}
}

func (m appModel) toggleFavoriteCmd(id int, status bool) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := m.client.ToggleFavorite(ctx, id, status); err != nil {
			return favoriteMsg{movieID: id, err: err}
		}
		return favoriteMsg{movieID: id, status: status}
	}
}

func (m appModel) updateMovieSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+b":
		m.state = stateLoadingBookings
		m.bookingNotice = ""
		return m, tea.Batch(m.fetchBookingsCmd(), m.spinner.Tick)
	case "ctrl+l":
		if err := m.auth.Logout(); err != nil {
			return m, errCmd(err)
		}
		m.state = stateLogin
		m.authForm = newAuthForm()
		return m, m.authForm.focusCmd()
	case "ctrl+g":
		return m.cycleCategory()
	}
	if msg.Type == tea.KeyEnter {
		item, ok := m.movieList.SelectedItem().(movieItem)
		if !ok {
			return m, nil
		}
		m.state = stateLoadingMovieDetail
		return m, tea.Batch(m.fetchMovieDetailCmd(item.movie.MovieId), m.spinner.Tick)
	}
	var cmd tea.Cmd
	m.movieList, cmd = m.movieList.Update(msg)
	return m, cmd
}

// cycleCategory steps through all categories and back to the full catalog.
func (m appModel) cycleCategory() (tea.Model, tea.Cmd) {
	if len(m.categories) == 0 {
		return m, nil
	}
	m.categoryIdx++
	if m.categoryIdx > len(m.categories) {
		m.categoryIdx = 0
	}
	m.state = stateLoadingMovies
	if m.categoryIdx == 0 {
		m.movieList.Title = "Select Movie"
		return m, tea.Batch(m.fetchMoviesCmd(), m.spinner.Tick)
	}
	category := m.categories[m.categoryIdx-1]
	m.movieList.Title = fmt.Sprintf("Select Movie • %s", category.Name)
	return m, tea.Batch(m.fetchMoviesByCategoryCmd(category.Name), m.spinner.Tick)
}

func (m appModel) updateMovieDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "b":
		m.flow = newBookingFlow()
		m.flow.movieID = m.movie.MovieId
		m.state = stateShowForm
		return m, m.flow.date.Focus()
	case "f":
		return m, m.toggleFavoriteCmd(m.movie.MovieId, !m.movie.IsFavorite)
	}
	return m, nil
}

func (m appModel) movieDetailView() string {
	movie := m.movie
	titleStyle := lipgloss.NewStyle().Bold(true)
	label := lipgloss.NewStyle().Faint(true)

	lines := []string{titleStyle.Render(fmt.Sprintf("%s (%d)", movie.Title, movie.Year))}
	facts := []string{}
	if movie.Category.Name != "" {
		facts = append(facts, movie.Category.Name)
	}
	if movie.Duration > 0 {
		facts = append(facts, fmt.Sprintf("%d min", movie.Duration))
	}
	if movie.Rating > 0 {
		facts = append(facts, fmt.Sprintf("%.1f/10", movie.Rating))
	}
	if movie.IsFavorite {
		facts = append(facts, "favorite ♥")
	}
	if len(facts) > 0 {
		lines = append(lines, hint(strings.Join(facts, " • ")))
	}
	lines = append(lines, "")
	if movie.Overview != "" {
		lines = append(lines, wrap(movie.Overview, m.width-4), "")
	}
	if movie.DirectorName != "" {
		lines = append(lines, label.Render("Director: ")+movie.DirectorName)
	}
	if len(movie.CastMembers) > 0 {
		names := make([]string, 0, len(movie.CastMembers))
		for _, member := range movie.CastMembers {
			names = append(names, member.Name)
		}
		lines = append(lines, label.Render("Cast: ")+strings.Join(names, ", "))
	}
	lines = append(lines, "", hint("Press b to book tickets."))
	return strings.Join(lines, "\n")
}

func wrap(text string, width int) string {
	if width < 20 {
		width = 72
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		if i > 0 {
			if lineLen+1+len(word) > width {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	return b.String()
}
