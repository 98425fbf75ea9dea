package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/deAdler-alt/Skill-Sense/api"
	"github.com/deAdler-alt/Skill-Sense/model"
)

// uploadResultMsg is sent when a résumé ingestion completes.
type uploadResultMsg struct {
	profile *model.Profile
	err     error
}

func (m uploadResultMsg) fail() error { return m.err }

type uploadModel struct {
	client *api.Client

	path      textinput.Model
	uploading bool
	status    string
}

func newUpload(client *api.Client) uploadModel {
	in := textinput.New()
	in.Placeholder = "/ścieżka/do/cv.pdf"
	in.CharLimit = 300
	in.Focus()

	return uploadModel{client: client, path: in}
}

func (m uploadModel) Update(msg tea.Msg) (uploadModel, tea.Cmd) {
	switch msg := msg.(type) {
	case uploadResultMsg:
		m.uploading = false
		if msg.err != nil {
			var apiErr *api.APIError
			if errors.As(msg.err, &apiErr) && apiErr.Detail != "" {
				m.status = "Błąd: " + apiErr.Detail
			} else {
				m.status = "Błąd: Nie udało się połączyć z serwerem."
			}
			return m, nil
		}
		m.status = "Sukces! Utworzono profil dla: " + msg.profile.FullName() + "."
		m.path.SetValue("")
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return m.submit()
		}
		var cmd tea.Cmd
		m.path, cmd = m.path.Update(msg)
		return m, cmd
	}

	return m, nil
}

// submit starts the upload. A missing file selection is rejected before
// any network call.
func (m uploadModel) submit() (uploadModel, tea.Cmd) {
	if m.uploading {
		return m, nil
	}
	path := strings.TrimSpace(m.path.Value())
	if path == "" {
		m.status = "Proszę najpierw wybrać plik."
		return m, nil
	}

	m.uploading = true
	m.status = "Wysyłanie i przetwarzanie pliku..."

	client := m.client
	return m, func() tea.Msg {
		profile, err := client.UploadCV(context.Background(), path)
		return uploadResultMsg{profile: profile, err: err}
	}
}

func (m uploadModel) View(width, height int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Dodaj Profil Kandydata") + "\n")
	b.WriteString(dimStyle.Render(" Wskaż plik CV (.pdf), a system utworzy z niego profil.") + "\n\n")

	b.WriteString(statusBarStyle.Render("Plik:") + " " + m.path.View() + "\n\n")

	switch {
	case m.uploading:
		b.WriteString(dimStyle.Render(" "+m.status) + "\n")
	case strings.HasPrefix(m.status, "Błąd") || m.status == "Proszę najpierw wybrać plik.":
		b.WriteString(errorStyle.Render(" "+m.status) + "\n")
	case m.status != "":
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Render(" "+m.status) + "\n")
	default:
		b.WriteString("\n")
	}

	b.WriteString("\n" + helpStyle.Render(" Enter: wyślij i przeanalizuj"))

	return b.String()
}
