package tui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/deAdler-alt/Skill-Sense/api"
	"github.com/deAdler-alt/Skill-Sense/model"
)

const (
	chatGreeting = "Dzień dobry! Jestem asystentem SkillSense. Opisz kogo szukasz, a ja postaram się znaleźć odpowiednich kandydatów."
	chatErrorMsg = "Wystąpił błąd podczas połączenia z serwerem. Proszę spróbować ponownie."
)

// searchResultMsg is sent when a candidate search completes.
type searchResultMsg struct {
	resp *api.SearchResponse
	err  error
}

func (m searchResultMsg) fail() error { return m.err }

type chatModel struct {
	client *api.Client

	input    textinput.Model
	messages []model.Message
	inFlight bool

	// flattened result profiles across all results messages, for the
	// card cursor
	cards      []model.Profile
	cardCursor int

	offset     int
	autoScroll bool
}

func newChat(client *api.Client) chatModel {
	in := textinput.New()
	in.Placeholder = "Np. 'doświadczony analityk danych z Pythonem i SQL'"
	in.CharLimit = 500
	in.Focus()

	return chatModel{
		client:     client,
		input:      in,
		messages:   []model.Message{newChatMessage(model.MessageAssistant, chatGreeting)},
		cardCursor: -1,
		autoScroll: true,
	}
}

func newChatMessage(t model.MessageType, content string) model.Message {
	return model.Message{
		ID:        uuid.NewString(),
		Type:      t,
		Content:   content,
		Timestamp: time.Now(),
	}
}

func (m chatModel) Update(msg tea.Msg) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case searchResultMsg:
		m.inFlight = false
		if msg.err != nil {
			m.messages = append(m.messages, newChatMessage(model.MessageAssistant, chatErrorMsg))
		} else {
			m.messages = append(m.messages,
				newChatMessage(model.MessageAssistant, msg.resp.Summary))
			results := newChatMessage(model.MessageResults, "")
			results.Results = msg.resp.Profiles.Items
			m.messages = append(m.messages, results)

			first := len(m.cards)
			m.cards = append(m.cards, msg.resp.Profiles.Items...)
			if m.cardCursor < 0 && len(m.cards) > first {
				m.cardCursor = first
			}
		}
		m.autoScroll = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m.submit()

		case "up":
			m.autoScroll = false
			if m.offset > 0 {
				m.offset--
			}
			return m, nil
		case "down":
			m.offset++
			return m, nil
		case "pgup":
			m.autoScroll = false
			m.offset -= 10
			if m.offset < 0 {
				m.offset = 0
			}
			return m, nil
		case "pgdown":
			m.offset += 10
			return m, nil

		case "ctrl+n":
			if len(m.cards) > 0 {
				m.cardCursor = (m.cardCursor + 1) % len(m.cards)
			}
			return m, nil
		case "ctrl+p":
			if len(m.cards) > 0 {
				m.cardCursor--
				if m.cardCursor < 0 {
					m.cardCursor = len(m.cards) - 1
				}
			}
			return m, nil

		case "ctrl+o":
			if m.cardCursor >= 0 && m.cardCursor < len(m.cards) {
				profile := m.cards[m.cardCursor]
				return m, func() tea.Msg { return openProfileMsg{profile: profile} }
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// submit sends the current query. Blank input and an in-flight search are
// both rejected before any network call.
func (m chatModel) submit() (chatModel, tea.Cmd) {
	query := strings.TrimSpace(m.input.Value())
	if query == "" || m.inFlight {
		return m, nil
	}

	m.messages = append(m.messages, newChatMessage(model.MessageUser, query))
	m.input.SetValue("")
	m.inFlight = true
	m.autoScroll = true

	client := m.client
	return m, func() tea.Msg {
		resp, err := client.Search(context.Background(), query)
		return searchResultMsg{resp: resp, err: err}
	}
}

func (m chatModel) View(width, height int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Witaj w SkillSense") + "\n")
	b.WriteString(dimStyle.Render(" Opisz, kogo lub czego szukasz, a ja znajdę najlepsze dopasowania.") + "\n")

	lines := m.renderTranscript(width)

	visible := height - 6
	if visible < 3 {
		visible = 3
	}

	offset := m.offset
	maxOffset := len(lines) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.autoScroll || offset > maxOffset {
		offset = maxOffset
	}

	end := offset + visible
	if end > len(lines) {
		end = len(lines)
	}
	for i := offset; i < end; i++ {
		b.WriteString(lines[i] + "\n")
	}
	for i := end - offset; i < visible; i++ {
		b.WriteString("\n")
	}

	if m.inFlight {
		b.WriteString(dimStyle.Render(" Analizuję kandydatów...") + "\n")
	} else {
		b.WriteString("\n")
	}

	b.WriteString(statusBarStyle.Render("Szukaj:") + " " + m.input.View() + "\n")
	b.WriteString(helpStyle.Render(" Enter: szukaj  Ctrl+N/P: kandydat  Ctrl+O: pełny profil  ↑/↓: przewiń"))

	return b.String()
}

// renderTranscript lays the whole transcript out as terminal lines. A
// results message renders profile cards instead of text.
func (m chatModel) renderTranscript(width int) []string {
	maxWidth := width - 2
	if maxWidth < 40 {
		maxWidth = 40
	}

	var lines []string
	card := 0
	for _, msg := range m.messages {
		switch msg.Type {
		case model.MessageUser:
			lines = append(lines, userMsgStyle.Render(" Ty "))
			for _, wl := range wrapText(msg.Content, maxWidth-2) {
				lines = append(lines, " "+wl)
			}
			lines = append(lines, "")

		case model.MessageAssistant:
			lines = append(lines, assistantMsgStyle.Render(" SkillSense "))
			for _, wl := range wrapText(msg.Content, maxWidth-2) {
				lines = append(lines, " "+msgTextStyle.Render(wl))
			}
			lines = append(lines, "")

		case model.MessageResults:
			for _, p := range msg.Results {
				lines = append(lines, m.renderCard(p, card == m.cardCursor, maxWidth)...)
				lines = append(lines, "")
				card++
			}
		}
	}
	return lines
}

// renderCard renders one ranked candidate as a bordered card.
func (m chatModel) renderCard(p model.Profile, selected bool, maxWidth int) []string {
	innerWidth := maxWidth - 6
	if innerWidth < 30 {
		innerWidth = 30
	}

	score := int(math.Round(p.Score()))
	var rows []string

	rows = append(rows,
		sectionStyle.Render(p.FullName())+
			"  "+scoreStyle.Render(fmt.Sprintf("%d%%", score)))
	rows = append(rows, renderScoreBar(p.Score(), 24))

	if p.Reasoning != nil && *p.Reasoning != "" {
		rows = append(rows, "")
		rows = append(rows, sectionStyle.Render("Dlaczego pasuje?"))
		for _, wl := range wrapText(*p.Reasoning, innerWidth) {
			rows = append(rows, reasoningStyle.Render(wl))
		}
	}

	if skills := p.TopSkills(5); len(skills) > 0 {
		rows = append(rows, "")
		rows = append(rows, sectionStyle.Render("Kluczowe umiejętności"))
		rows = append(rows, skillTagStyle.Render(strings.Join(skills, " · ")))
	}

	if selected {
		rows = append(rows, "")
		rows = append(rows, dimStyle.Render("Ctrl+O: Zobacz Pełny Profil"))
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(innerWidth + 2)
	if selected {
		border = border.BorderForeground(lipgloss.Color("33"))
	} else {
		border = border.BorderForeground(lipgloss.Color("238"))
	}

	return splitLines(border.Render(strings.Join(rows, "\n")))
}

func renderScoreBar(score float64, width int) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := int(math.Round(score / 100 * float64(width)))
	return scoreStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
}
