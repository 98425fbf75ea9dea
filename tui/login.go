package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/deAdler-alt/Skill-Sense/api"
)

// loginResultMsg is sent when the credential exchange completes.
type loginResultMsg struct {
	err error
}

func (m loginResultMsg) fail() error { return m.err }

type loginModel struct {
	client *api.Client

	username textinput.Model
	password textinput.Model
	focus    int

	submitting bool
	errMsg     string
	notice     string
}

func newLogin(client *api.Client, notice string) loginModel {
	u := textinput.New()
	u.Placeholder = "Nazwa użytkownika"
	u.CharLimit = 100
	u.SetValue("testuser")
	u.Focus()

	p := textinput.New()
	p.Placeholder = "Hasło"
	p.CharLimit = 100
	p.EchoMode = textinput.EchoPassword
	p.SetValue("testpassword")

	return loginModel{
		client:   client,
		username: u,
		password: p,
		notice:   notice,
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		// success is handled by the shell; only failures arrive here
		m.submitting = false
		switch {
		case errors.Is(msg.err, api.ErrConnectivity):
			m.errMsg = "Błąd połączenia z serwerem. Spróbuj ponownie później."
		default:
			m.errMsg = "Nieprawidłowa nazwa użytkownika lub hasło."
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down", "shift+tab", "up":
			if m.focus == 0 {
				m.focus = 1
				m.username.Blur()
				m.password.Focus()
			} else {
				m.focus = 0
				m.password.Blur()
				m.username.Focus()
			}
			return m, nil

		case "enter":
			return m.submit()
		}

		var cmd tea.Cmd
		if m.focus == 0 {
			m.username, cmd = m.username.Update(msg)
		} else {
			m.password, cmd = m.password.Update(msg)
		}
		return m, cmd
	}

	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.submitting = true
	m.errMsg = ""

	username := m.username.Value()
	password := m.password.Value()
	client := m.client
	return m, func() tea.Msg {
		return loginResultMsg{err: client.Login(context.Background(), username, password)}
	}
}

func (m loginModel) View(width, height int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("33")).
		Render("SkillSense")

	var status string
	switch {
	case m.submitting:
		status = dimStyle.Render("Logowanie...")
	case m.errMsg != "":
		status = errorStyle.Render(m.errMsg)
	case m.notice != "":
		status = dimStyle.Render(m.notice)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		dimStyle.Render("Zaloguj się do swojego konta"),
		"",
		m.fieldLabel("Login:", m.focus == 0)+" "+m.username.View(),
		"",
		m.fieldLabel("Hasło:", m.focus == 1)+" "+m.password.View(),
		"",
		status,
		"",
		helpStyle.Render("Enter: zaloguj  Tab: pole  Ctrl+C: wyjście"),
	)

	box := boxStyle.Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (m loginModel) fieldLabel(label string, focused bool) string {
	style := lipgloss.NewStyle().Width(7)
	if focused {
		style = style.Bold(true).Foreground(lipgloss.Color("33"))
	} else {
		style = style.Foreground(lipgloss.Color("252"))
	}
	return style.Render(label)
}
