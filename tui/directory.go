package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/deAdler-alt/Skill-Sense/api"
	"github.com/deAdler-alt/Skill-Sense/model"
	"github.com/deAdler-alt/Skill-Sense/preview"
)

// debounceMsg fires when the quiet period after a search keystroke ends.
// Only the most recently scheduled timer is honored.
type debounceMsg struct {
	seq int
}

// listResultMsg carries a profile listing. seq identifies the request so
// a response overtaken by a newer request is discarded instead of
// overwriting the list.
type listResultMsg struct {
	seq   int
	items []model.Profile
	err   error
}

func (m listResultMsg) fail() error { return m.err }

// previewFetchedMsg carries a materialized document for a profile.
type previewFetchedMsg struct {
	profileID int
	handle    *preview.Handle
	err       error
}

func (m previewFetchedMsg) fail() error { return m.err }

type directoryModel struct {
	client   *api.Client
	debounce time.Duration

	search  textinput.Model
	lastVal string

	profiles []model.Profile
	cursor   int
	loading  bool
	listErr  bool

	debounceSeq int
	fetchSeq    int

	selected       *model.Profile
	handle         *preview.Handle
	previewLoading bool
	previewFailed  bool
	previewOffset  int
}

func newDirectory(client *api.Client, debounce time.Duration) directoryModel {
	in := textinput.New()
	in.Placeholder = "Szukaj..."
	in.CharLimit = 200
	in.Focus()

	return directoryModel{client: client, debounce: debounce, search: in}
}

func (m directoryModel) Update(msg tea.Msg) (directoryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case debounceMsg:
		// a newer keystroke superseded this timer
		if msg.seq != m.debounceSeq {
			return m, nil
		}
		return m.issueFetch()

	case listResultMsg:
		// a newer request is already in flight; this response is stale
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.listErr = true
			return m, nil
		}
		m.listErr = false
		m.profiles = msg.items
		if m.cursor >= len(m.profiles) {
			m.cursor = len(m.profiles) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case previewFetchedMsg:
		// selection moved on while the document was in flight
		if m.selected == nil || msg.profileID != m.selected.ID {
			msg.handle.Release()
			return m, nil
		}
		m.previewLoading = false
		// duplicate in-flight fetches for the same profile must not stack
		// handles; the one already held is superseded either way
		m.handle.Release()
		m.handle = nil
		if msg.err != nil || msg.handle.Text() == "" {
			msg.handle.Release()
			m.previewFailed = true
			return m, nil
		}
		m.handle = msg.handle
		m.previewOffset = 0
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m directoryModel) updateKey(msg tea.KeyMsg) (directoryModel, tea.Cmd) {
	switch msg.String() {
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down":
		if m.cursor < len(m.profiles)-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		return m.selectUnderCursor()

	case "ctrl+o":
		if m.selected != nil {
			profile := *m.selected
			return m, func() tea.Msg { return openProfileMsg{profile: profile} }
		}
		return m, nil

	case "pgup":
		m.previewOffset -= 10
		if m.previewOffset < 0 {
			m.previewOffset = 0
		}
		return m, nil
	case "pgdown":
		m.previewOffset += 10
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	// schedule a fetch only when the text actually changed; the newest
	// timer wins the quiet period
	if v := m.search.Value(); v != m.lastVal {
		m.lastVal = v
		m.debounceSeq++
		seq := m.debounceSeq
		tick := tea.Tick(m.debounce, func(time.Time) tea.Msg {
			return debounceMsg{seq: seq}
		})
		return m, tea.Batch(cmd, tick)
	}
	return m, cmd
}

// issueFetch starts a listing request carrying the next sequence number.
func (m directoryModel) issueFetch() (directoryModel, tea.Cmd) {
	m.fetchSeq++
	seq := m.fetchSeq
	query := m.search.Value()
	client := m.client
	m.loading = true

	return m, func() tea.Msg {
		items, err := client.ListProfiles(context.Background(), query)
		return listResultMsg{seq: seq, items: items, err: err}
	}
}

// selectUnderCursor changes the selection. The previous document handle is
// released before a new fetch is issued.
func (m directoryModel) selectUnderCursor() (directoryModel, tea.Cmd) {
	if len(m.profiles) == 0 {
		return m, nil
	}
	p := m.profiles[m.cursor]
	m.selected = &p

	m.handle.Release()
	m.handle = nil
	m.previewFailed = false
	m.previewOffset = 0

	if p.CVFilepath == nil || *p.CVFilepath == "" {
		m.previewLoading = false
		return m, nil
	}

	m.previewLoading = true
	client := m.client
	id := p.ID
	return m, func() tea.Msg {
		data, err := client.FetchCV(context.Background(), id)
		if err != nil {
			return previewFetchedMsg{profileID: id, err: err}
		}
		h, err := preview.Materialize(data)
		return previewFetchedMsg{profileID: id, handle: h, err: err}
	}
}

// teardown releases the document handle; called when the view unmounts.
func (m *directoryModel) teardown() {
	m.handle.Release()
	m.handle = nil
}

func (m directoryModel) View(width, height int) string {
	listWidth := width / 3
	if listWidth < 26 {
		listWidth = 26
	}
	paneWidth := (width - listWidth) / 2

	list := m.viewList(listWidth, height)
	previewPane := m.viewPreview(paneWidth, height)
	detail := m.viewDetailPane(paneWidth, height)

	return lipgloss.JoinHorizontal(lipgloss.Top, list, previewPane, detail)
}

func (m directoryModel) viewList(width, height int) string {
	var b strings.Builder
	b.WriteString(statusBarStyle.Render("Szukaj:") + " " + m.search.View() + "\n")

	rows := height - 3
	if rows < 1 {
		rows = 1
	}

	switch {
	case m.loading && len(m.profiles) == 0:
		b.WriteString(dimStyle.Render(" Ładowanie...") + "\n")
	case m.listErr:
		b.WriteString(errorStyle.Render(" Nie udało się załadować listy kandydatów.") + "\n")
	default:
		offset := 0
		if m.cursor >= rows {
			offset = m.cursor - rows + 1
		}
		end := offset + rows
		if end > len(m.profiles) {
			end = len(m.profiles)
		}
		for i := offset; i < end; i++ {
			p := m.profiles[i]
			summary := "Brak opisu"
			if p.AISummary != nil && *p.AISummary != "" {
				summary = *p.AISummary
			}
			row := pad(p.FullName()+" · "+summary, width-2)
			switch {
			case i == m.cursor:
				b.WriteString(selectedStyle.Render(row) + "\n")
			case m.selected != nil && p.ID == m.selected.ID:
				b.WriteString(headerStyle.Render(row) + "\n")
			default:
				b.WriteString(" " + row + "\n")
			}
		}
	}

	b.WriteString("\n" + helpStyle.Render(" ↑/↓: lista  Enter: wybierz"))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Render(b.String())
}

func (m directoryModel) viewPreview(width, height int) string {
	var body string
	switch {
	case m.selected == nil:
		body = dimStyle.Render("Wybierz kandydata z listy.")
	case m.previewLoading:
		body = dimStyle.Render("Ładowanie podglądu...")
	case m.selected.CVFilepath == nil || *m.selected.CVFilepath == "":
		body = dimStyle.Render("Kandydat nie posiada pliku CV.")
	case m.previewFailed || m.handle == nil:
		body = dimStyle.Render("Nie udało się załadować podglądu PDF.")
	default:
		lines := wrapText(m.handle.Text(), width-4)
		offset := m.previewOffset
		if offset > len(lines)-1 {
			offset = len(lines) - 1
		}
		if offset < 0 {
			offset = 0
		}
		end := offset + height - 4
		if end > len(lines) {
			end = len(lines)
		}
		body = strings.Join(lines[offset:end], "\n")
	}

	content := headerStyle.Render(pad("Podgląd CV", width-4)) + "\n" + body
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(0, 1).
		Render(content)
}

func (m directoryModel) viewDetailPane(width, height int) string {
	var body string
	if m.selected == nil {
		body = dimStyle.Render("Wybierz kandydata z listy.")
	} else {
		lines := renderProfileLines(*m.selected, width-4)
		if len(lines) > height-3 {
			lines = lines[:height-3]
		}
		body = strings.Join(lines, "\n")
	}

	content := headerStyle.Render(pad("Profil", width-4)) + "\n" + body + "\n" +
		helpStyle.Render("Ctrl+O: pełny profil  PgUp/PgDn: podgląd")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(0, 1).
		Render(content)
}
