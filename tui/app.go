// Package tui implements the terminal interface: a login form gating a
// sidebar-driven shell with three feature views and a profile detail
// overlay. Exactly one feature view is mounted at a time; switching views
// discards the previous view's state entirely.
package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/deAdler-alt/Skill-Sense/api"
	"github.com/deAdler-alt/Skill-Sense/config"
	"github.com/deAdler-alt/Skill-Sense/model"
	"github.com/deAdler-alt/Skill-Sense/session"
)

type view int

const (
	viewDashboard view = iota
	viewUpload
	viewDatabase
	viewCount
)

const sidebarWidth = 24

// failer is implemented by every async result message, so authentication
// failures can be handled once at the root instead of per view.
type failer interface {
	fail() error
}

// openProfileMsg asks the shell to show the detail overlay for a profile
// already held in memory.
type openProfileMsg struct {
	profile model.Profile
}

// closeModalMsg closes the detail overlay.
type closeModalMsg struct{}

// App is the root Bubble Tea model.
type App struct {
	cfg     *config.Config
	client  *api.Client
	session *session.Store
	log     *zap.Logger

	width  int
	height int

	loggedIn bool
	login    loginModel

	active    view
	chat      chatModel
	upload    uploadModel
	directory directoryModel

	modal *detailModel

	quitting bool
}

// NewApp builds the root model. The session store decides whether the
// login form or the shell is shown first.
func NewApp(cfg *config.Config, client *api.Client, sess *session.Store, log *zap.Logger) App {
	a := App{
		cfg:     cfg,
		client:  client,
		session: sess,
		log:     log,
		width:   120,
		height:  30,
	}
	a.loggedIn = sess.Token() != ""
	if a.loggedIn {
		a.chat = newChat(client)
	} else {
		a.login = newLogin(client, "")
	}
	return a
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case openProfileMsg:
		d := newDetail(msg.profile)
		a.modal = &d
		return a, nil

	case closeModalMsg:
		a.modal = nil
		return a, nil
	}

	// Any 401 resets the root to a fresh login form, no matter which view
	// triggered it. The api client already cleared the session.
	if f, ok := msg.(failer); ok && errors.Is(f.fail(), api.ErrUnauthorized) && a.loggedIn {
		return a.resetToLogin("Sesja wygasła. Zaloguj się ponownie."), nil
	}

	return a.route(msg)
}

// route delegates a non-key message to whichever view owns it.
func (a App) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !a.loggedIn {
		if res, ok := msg.(loginResultMsg); ok && res.err == nil {
			return a.enterShell()
		}
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	switch a.active {
	case viewDashboard:
		a.chat, cmd = a.chat.Update(msg)
	case viewUpload:
		a.upload, cmd = a.upload.Update(msg)
	case viewDatabase:
		a.directory, cmd = a.directory.Update(msg)
	}
	return a, cmd
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		a.teardownActive()
		a.quitting = true
		return a, tea.Quit
	}

	if !a.loggedIn {
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd
	}

	if a.modal != nil {
		m, cmd := a.modal.Update(msg)
		a.modal = &m
		return a, cmd
	}

	switch msg.String() {
	case "tab":
		return a.switchView((a.active + 1) % viewCount)
	case "shift+tab":
		return a.switchView((a.active + viewCount - 1) % viewCount)
	case "ctrl+l":
		return a.logout()
	}

	return a.route(msg)
}

// switchView fully unmounts the current view and mounts a fresh one, so
// transcripts, timers, and selections never leak across navigation.
func (a App) switchView(v view) (tea.Model, tea.Cmd) {
	if v == a.active {
		return a, nil
	}
	a.teardownActive()

	a.active = v
	switch v {
	case viewDashboard:
		a.chat = newChat(a.client)
		return a, nil
	case viewUpload:
		a.upload = newUpload(a.client)
		return a, nil
	case viewDatabase:
		// the mount fetch must advance the stored model's sequence, or the
		// response would be dropped as stale
		var cmd tea.Cmd
		a.directory, cmd = newDirectory(a.client, a.cfg.Directory.Debounce).issueFetch()
		return a, cmd
	}
	return a, nil
}

// teardownActive releases resources owned by the mounted view.
func (a *App) teardownActive() {
	if a.loggedIn && a.active == viewDatabase {
		a.directory.teardown()
	}
}

func (a App) enterShell() (tea.Model, tea.Cmd) {
	a.loggedIn = true
	a.modal = nil
	a.active = viewDashboard
	a.chat = newChat(a.client)
	a.login = loginModel{}
	return a, nil
}

func (a App) logout() (tea.Model, tea.Cmd) {
	a.teardownActive()
	if err := a.session.Clear(); err != nil {
		a.log.Error("failed to clear session", zap.Error(err))
	}
	a.log.Info("logged out")
	return a.resetToLogin(""), nil
}

// resetToLogin discards all view state and shows a fresh login form.
func (a App) resetToLogin(notice string) App {
	a.teardownActive()
	a.loggedIn = false
	a.modal = nil
	a.active = viewDashboard
	a.chat = chatModel{}
	a.upload = uploadModel{}
	a.directory = directoryModel{}
	a.login = newLogin(a.client, notice)
	return a
}

func (a App) View() string {
	if a.quitting {
		return ""
	}
	if !a.loggedIn {
		return a.login.View(a.width, a.height)
	}
	if a.modal != nil {
		return a.modal.View(a.width, a.height)
	}

	sidebar := a.viewSidebar()
	contentWidth := a.width - sidebarWidth - 1
	if contentWidth < 40 {
		contentWidth = 40
	}

	var content string
	switch a.active {
	case viewDashboard:
		content = a.chat.View(contentWidth, a.height)
	case viewUpload:
		content = a.upload.View(contentWidth, a.height)
	case viewDatabase:
		content = a.directory.View(contentWidth, a.height)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)
}

func (a App) viewSidebar() string {
	items := []struct {
		v     view
		label string
	}{
		{viewDashboard, "Dashboard"},
		{viewUpload, "Dodaj Profil"},
		{viewDatabase, "Baza Kandydatów"},
	}

	lines := []string{
		titleStyle.Render("SkillSense"),
		dimStyle.Render(" Politechnika Rzeszowska"),
		"",
	}
	for _, it := range items {
		if it.v == a.active {
			lines = append(lines, navActiveStyle.Render("▸ "+it.label))
		} else {
			lines = append(lines, navItemStyle.Render("  "+it.label))
		}
	}
	lines = append(lines, "",
		helpStyle.Render(" Tab: widok"),
		helpStyle.Render(" Ctrl+L: wyloguj"),
		helpStyle.Render(" Ctrl+C: wyjście"),
	)

	col := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.NewStyle().Width(sidebarWidth).Height(a.height).Render(col)
}

// pad truncates or right-pads s to width columns.
func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	out := make([]rune, width)
	copy(out, runes)
	for i := len(runes); i < width; i++ {
		out[i] = ' '
	}
	return string(out)
}

// wrapText splits text into lines that fit within maxWidth.
func wrapText(text string, maxWidth int) []string {
	if maxWidth < 1 {
		maxWidth = 1
	}
	var result []string
	for _, line := range splitLines(text) {
		if line == "" {
			result = append(result, "")
			continue
		}
		runes := []rune(line)
		for len(runes) > maxWidth {
			result = append(result, string(runes[:maxWidth]))
			runes = runes[maxWidth:]
		}
		result = append(result, string(runes))
	}
	return result
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
