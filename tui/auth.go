package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"

	"movie-booking-cli/model"
	"movie-booking-cli/session"
)

var validate = validator.New()

type authForm struct {
	login    []textinput.Model // email, password
	register []textinput.Model // full name, email, password
	focus    int
	notice   string
}

func newAuthForm() authForm {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 120

	name := textinput.New()
	name.Placeholder = "full name"
	name.CharLimit = 120

	regEmail := textinput.New()
	regEmail.Placeholder = "email"
	regEmail.CharLimit = 120

	regPassword := textinput.New()
	regPassword.Placeholder = "password (min 6 chars)"
	regPassword.EchoMode = textinput.EchoPassword
	regPassword.CharLimit = 120

	return authForm{
		login:    []textinput.Model{email, password},
		register: []textinput.Model{name, regEmail, regPassword},
	}
}

func (f *authForm) focusCmd() tea.Cmd {
	f.focus = 0
	for i := range f.login {
		f.login[i].Blur()
	}
	for i := range f.register {
		f.register[i].Blur()
	}
	return f.login[0].Focus()
}

func (f *authForm) inputs(state appState) []textinput.Model {
	if state == stateRegister {
		return f.register
	}
	return f.login
}

type loginResultMsg struct {
	err error
}

type registerResultMsg struct {
	message string
	err     error
}

func (m appModel) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	inputs := m.authForm.inputs(m.state)

	switch msg.String() {
	case "ctrl+r":
		if m.state == stateLogin {
			m.state = stateRegister
			m.authForm.focus = 0
			m.authForm.notice = ""
			for i := range m.authForm.login {
				m.authForm.login[i].Blur()
			}
			return m, m.authForm.register[0].Focus()
		}
	case "tab", "down":
		return m.cycleAuthFocus(1)
	case "shift+tab", "up":
		return m.cycleAuthFocus(-1)
	}

	if msg.Type == tea.KeyEnter {
		if m.state == stateRegister {
			return m.submitRegister()
		}
		return m.submitLogin()
	}

	var cmd tea.Cmd
	inputs[m.authForm.focus], cmd = inputs[m.authForm.focus].Update(msg)
	return m, cmd
}

func (m appModel) cycleAuthFocus(delta int) (tea.Model, tea.Cmd) {
	inputs := m.authForm.inputs(m.state)
	inputs[m.authForm.focus].Blur()
	m.authForm.focus = (m.authForm.focus + delta + len(inputs)) % len(inputs)
	return m, inputs[m.authForm.focus].Focus()
}

func (m appModel) submitLogin() (tea.Model, tea.Cmd) {
	email := strings.TrimSpace(m.authForm.login[0].Value())
	password := m.authForm.login[1].Value()
	if email == "" || password == "" {
		m.authForm.notice = "Email and password are required."
		return m, nil
	}
	m.authForm.notice = ""
	m.state = stateAuthenticating
	return m, tea.Batch(m.loginCmd(email, password), m.spinner.Tick)
}

func (m appModel) submitRegister() (tea.Model, tea.Cmd) {
	req := model.RegisterRequest{
		FullName: strings.TrimSpace(m.authForm.register[0].Value()),
		Email:    strings.TrimSpace(m.authForm.register[1].Value()),
		Password: m.authForm.register[2].Value(),
	}
	if err := validate.Struct(req); err != nil {
		m.authForm.notice = registrationProblem(err)
		return m, nil
	}
	m.authForm.notice = ""
	m.state = stateAuthenticating
	return m, tea.Batch(m.registerCmd(req), m.spinner.Tick)
}

func (m appModel) loginCmd(email string, password string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		return loginResultMsg{err: m.auth.Login(ctx, email, password)}
	}
}

func (m appModel) registerCmd(req model.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		resp, err := m.client.Register(ctx, req)
		if err != nil {
			return registerResultMsg{err: err}
		}
		if !resp.Created() && resp.Status != "" && !resp.OK() {
			return registerResultMsg{err: fmt.Errorf("registration failed: %s", failMessage(resp.Status, resp.Message))}
		}
		return registerResultMsg{message: "Account created. Sign in to continue."}
	}
}

func (m appModel) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.state = stateLogin
		if errors.Is(msg.err, session.ErrInvalidCredentials) {
			m.authForm.notice = msg.err.Error()
		} else {
			m.authForm.notice = "Sign in failed: " + msg.err.Error()
		}
		return m, m.authForm.focusCmd()
	}
	m.state = stateLoadingMovies
	return m, tea.Batch(m.fetchMoviesCmd(), m.spinner.Tick)
}

func (m appModel) handleRegisterResult(msg registerResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.state = stateRegister
		m.authForm.notice = msg.err.Error()
		return m, nil
	}
	m.state = stateLogin
	m.authForm.notice = msg.message
	return m, m.authForm.focusCmd()
}

func (m appModel) authView() string {
	var b strings.Builder
	if m.state == stateRegister {
		b.WriteString("Create an account\n\n")
		labels := []string{"Full name", "Email", "Password"}
		for i, input := range m.authForm.register {
			b.WriteString(fmt.Sprintf("%-10s %s\n", labels[i], input.View()))
		}
	} else {
		b.WriteString("Sign in\n\n")
		labels := []string{"Email", "Password"}
		for i, input := range m.authForm.login {
			b.WriteString(fmt.Sprintf("%-10s %s\n", labels[i], input.View()))
		}
	}
	if m.authForm.notice != "" {
		b.WriteString("\n" + errorStyle.Render(m.authForm.notice))
	}
	return b.String()
}

func registrationProblem(err error) string {
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		field := fields[0]
		switch field.Tag() {
		case "email":
			return "Email address is malformed."
		case "min":
			return "Password must be at least 6 characters."
		default:
			return field.Field() + " is required."
		}
	}
	return "All fields are required."
}
