package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/deAdler-alt/Skill-Sense/model"
)

// detailModel is the full-profile overlay. It renders data already held in
// memory and performs no network access; closing is the only interaction.
type detailModel struct {
	profile model.Profile
	offset  int
}

func newDetail(p model.Profile) detailModel {
	return detailModel{profile: p}
}

func (m detailModel) Update(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return m, func() tea.Msg { return closeModalMsg{} }

	case "up", "k":
		if m.offset > 0 {
			m.offset--
		}
	case "down", "j":
		m.offset++
	case "pgup":
		m.offset -= 10
		if m.offset < 0 {
			m.offset = 0
		}
	case "pgdown":
		m.offset += 10
	case "home", "g":
		m.offset = 0
	}
	return m, nil
}

func (m detailModel) View(width, height int) string {
	boxWidth := width - 10
	if boxWidth > 90 {
		boxWidth = 90
	}
	if boxWidth < 40 {
		boxWidth = 40
	}
	innerWidth := boxWidth - 6

	lines := renderProfileLines(m.profile, innerWidth)

	visible := height - 8
	if visible < 5 {
		visible = 5
	}
	offset := m.offset
	if offset > len(lines)-visible {
		offset = len(lines) - visible
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + visible
	if end > len(lines) {
		end = len(lines)
	}

	header := titleStyle.Render(m.profile.Initials()) + " " +
		sectionStyle.Render(m.profile.FullName())

	content := header + "\n\n" +
		strings.Join(lines[offset:end], "\n") + "\n\n" +
		helpStyle.Render("Esc: zamknij  ↑/↓: przewiń")

	box := modalStyle.Width(boxWidth).Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// renderProfileLines lays out a profile's full snapshot as terminal lines.
// Shared by the detail overlay and the directory's profile pane.
func renderProfileLines(p model.Profile, width int) []string {
	var lines []string

	add := func(s string) { lines = append(lines, s) }
	addWrapped := func(s string, style lipgloss.Style) {
		for _, wl := range wrapText(s, width) {
			add(style.Render(wl))
		}
	}
	section := func(title string) {
		add("")
		add(sectionStyle.Render(title))
	}

	var contact []string
	if p.Email != nil && *p.Email != "" {
		contact = append(contact, *p.Email)
	}
	if p.Phone != nil && *p.Phone != "" {
		contact = append(contact, *p.Phone)
	}
	if p.LinkedinURL != nil && *p.LinkedinURL != "" {
		contact = append(contact, *p.LinkedinURL)
	}
	if p.GithubURL != nil && *p.GithubURL != "" {
		contact = append(contact, *p.GithubURL)
	}
	if len(contact) > 0 {
		addWrapped(strings.Join(contact, "  "), dimStyle)
	}

	if p.Description != nil && *p.Description != "" {
		section("Podsumowanie")
		addWrapped(*p.Description, msgTextStyle)
	}

	if p.AISummary != nil && *p.AISummary != "" {
		section("Podsumowanie AI")
		addWrapped(*p.AISummary, reasoningStyle)
	}

	if len(p.WorkExperiences) > 0 {
		section("Doświadczenie zawodowe")
		for _, exp := range p.WorkExperiences {
			add(msgTextStyle.Render(exp.Position + " w " + exp.Company))
			add(dimStyle.Render(orEmpty(exp.StartDate) + " - " + orEmpty(exp.EndDate)))
			if exp.Description != nil && *exp.Description != "" {
				addWrapped(*exp.Description, dimStyle)
			}
			add("")
		}
	}

	if len(p.EducationHistory) > 0 {
		section("Edukacja")
		for _, edu := range p.EducationHistory {
			add(msgTextStyle.Render(edu.Institution))
			if edu.Degree != nil && *edu.Degree != "" {
				add(dimStyle.Render(*edu.Degree))
			}
		}
	}

	if len(p.Projects) > 0 {
		section("Projekty i Osiągnięcia")
		for _, proj := range p.Projects {
			add(msgTextStyle.Render(proj.Name))
			if proj.Description != nil && *proj.Description != "" {
				addWrapped(*proj.Description, dimStyle)
			}
		}
	}

	if len(p.Skills) > 0 {
		section("Umiejętności")
		var names []string
		for _, s := range p.Skills {
			names = append(names, s.Name)
		}
		addWrapped(strings.Join(names, " · "), skillTagStyle)
	}

	if len(p.Languages) > 0 {
		section("Języki")
		for _, l := range p.Languages {
			add(msgTextStyle.Render(l.Name + " - " + l.Level))
		}
	}

	if len(p.Publications) > 0 {
		section("Publikacje")
		for _, pub := range p.Publications {
			add(msgTextStyle.Render(pub.Title))
			meta := orEmpty(pub.Outlet)
			if pub.Date != nil && *pub.Date != "" {
				meta += " (" + *pub.Date + ")"
			}
			if meta != "" {
				add(dimStyle.Render(meta))
			}
		}
	}

	if len(p.Certifications) > 0 {
		section("Certyfikaty")
		for _, c := range p.Certifications {
			line := c.Name
			if c.IssuingOrganization != nil && *c.IssuingOrganization != "" {
				line += " · " + *c.IssuingOrganization
			}
			add(msgTextStyle.Render(line))
		}
	}

	if len(p.OtherData) > 0 {
		section("Inne informacje")
		for _, o := range p.OtherData {
			add(msgTextStyle.Render(o.Title))
			addWrapped(o.Content, dimStyle)
		}
	}

	return lines
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
