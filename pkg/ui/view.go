package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the whole screen. Exactly one of the two tab panels is
// visible at a time; the level modal, when open, covers everything.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.detail != nil {
		return m.renderDetailModal()
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")

	switch {
	case m.loading:
		sb.WriteString(m.renderLoading())
	case m.activeTab == tabRoadmap:
		sb.WriteString(m.renderRoadmap())
	default:
		sb.WriteString(m.renderInsights())
	}

	sb.WriteString("\n")
	sb.WriteString(m.renderFooter())
	return sb.String()
}

func (m Model) renderHeader() string {
	title := m.theme.Header.Render(" IoT Career Roadmap ")

	var tabs []string
	for _, t := range []tab{tabRoadmap, tabInsights} {
		label := " " + t.String() + " "
		if t == m.activeTab {
			tabs = append(tabs, m.theme.PrimaryBold.Underline(true).Render(label))
		} else {
			tabs = append(tabs, m.theme.MutedText.Render(label))
		}
	}

	line := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", strings.Join(tabs, m.theme.MutedText.Render("│")))
	return line + "\n" + RenderDivider(m.width)
}

func (m Model) renderLoading() string {
	frame := spinnerFrames[m.spinnerFrame]
	msg := fmt.Sprintf("%s Loading your IoT career roadmap...", frame)
	return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center,
		m.theme.SecondaryText.Render(msg))
}

func (m Model) contentHeight() int {
	h := m.height - 5
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) renderRoadmap() string {
	if len(m.levels) == 0 {
		return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center,
			m.theme.MutedText.Render("No roadmap levels available."))
	}

	var rows []string
	for i, lv := range m.levels {
		icon := m.theme.Renderer.NewStyle().
			Foreground(m.theme.DifficultyColor(lv.DifficultyLevel)).
			Render(DifficultyIcon(lv.DifficultyLevel))

		line := fmt.Sprintf("%s %s %s  %s  %s",
			icon,
			RenderDifficultyBadge(lv.DifficultyLevel),
			m.theme.Base.Bold(true).Render(fmt.Sprintf("Level %d: %s", lv.LevelNumber, lv.Title)),
			m.theme.MutedText.Render(formatMonths(lv.EstimatedDurationMonths)),
			m.theme.SecondaryText.Render(truncate(lv.Description, maxDescWidth(m.width))),
		)

		if i == m.cursor {
			line = m.theme.Selected.Render(line)
		} else {
			line = "  " + line
		}
		rows = append(rows, line)

		if i == m.cursor && len(lv.SpecializationPaths) > 0 {
			paths := make([]string, len(lv.SpecializationPaths))
			for j, p := range lv.SpecializationPaths {
				paths[j] = p.Label()
			}
			rows = append(rows, "      "+m.theme.MutedText.Render("paths: "+strings.Join(paths, ", ")))
		}
	}
	return strings.Join(rows, "\n")
}

func maxDescWidth(total int) int {
	w := total - 60
	if w < 10 {
		w = 10
	}
	return w
}

func (m Model) renderInsights() string {
	if len(m.insights) == 0 {
		return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center,
			m.theme.MutedText.Render("No industry insights available."))
	}

	var blocks []string
	for i, in := range m.insights {
		header := fmt.Sprintf("%s  %s · %s growth",
			m.theme.PrimaryBold.Render(in.Specialization.Label()),
			m.theme.Base.Render(in.MarketSize),
			m.theme.SecondaryText.Render(in.GrowthRate),
		)

		body := []string{
			header,
			m.theme.MutedText.Render("salary  ") + in.AvgSalary,
			m.theme.MutedText.Render("trends  ") + truncate(joinOrNone(in.KeyTrends), maxDescWidth(m.width)+30),
			m.theme.MutedText.Render("players ") + truncate(joinOrNone(in.MajorCompanies), maxDescWidth(m.width)+30),
			m.theme.SecondaryText.Render(in.FutureOutlook),
		}

		style := PanelStyle
		if i == m.insightCursor {
			style = FocusedPanelStyle
		}
		blocks = append(blocks, style.Width(m.width-2).Padding(0, 1).Render(strings.Join(body, "\n")))
	}
	return strings.Join(blocks, "\n")
}

func (m Model) renderFooter() string {
	var hints string
	if m.detail != nil {
		hints = "esc close · ↑/↓ scroll · c copy"
	} else if m.activeTab == tabRoadmap {
		hints = "tab switch · ↑/↓ select · enter details · c copy · r refresh · q quit"
	} else {
		hints = "tab switch · ↑/↓ select · c copy · r refresh · q quit"
	}

	status := ""
	if m.detailLoading {
		status = m.theme.SecondaryText.Render(spinnerFrames[m.spinnerFrame] + " loading level...")
	} else if m.statusMsg != "" {
		if m.statusIsError {
			status = m.theme.ErrorText.Render(m.statusMsg)
		} else {
			status = m.theme.SuccessText.Render(m.statusMsg)
		}
	}

	line := m.theme.MutedText.Render(hints)
	if status != "" {
		line += "  " + status
	}
	return RenderDivider(m.width) + "\n" + line
}
