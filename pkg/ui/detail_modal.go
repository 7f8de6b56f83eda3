package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderDetailModal draws the level modal over the full screen. The body
// scrolls in a viewport; the frame and title stay fixed.
func (m Model) renderDetailModal() string {
	lv := m.detail.Level

	title := m.theme.Header.Render(fmt.Sprintf(" Level %d: %s ", lv.LevelNumber, lv.Title))
	badge := RenderDifficultyBadge(lv.DifficultyLevel)
	topLine := lipgloss.JoinHorizontal(lipgloss.Center, title, " ", badge)

	frame := FocusedPanelStyle.
		Width(m.detailView.Width).
		Render(topLine + "\n" + RenderDivider(m.detailView.Width-2) + "\n" + m.detailView.View())

	footer := m.theme.MutedText.Render("esc close · ↑/↓ scroll · c copy")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		frame+"\n"+footer)
}

// renderDetailContent builds the scrollable modal body.
func (m Model) renderDetailContent() string {
	d := m.detail
	if d == nil {
		return ""
	}
	lv := d.Level

	var sb strings.Builder
	section := m.theme.PrimaryBold.Render

	sb.WriteString(m.theme.Base.Render(lv.Description) + "\n")
	sb.WriteString(m.theme.MutedText.Render("estimated duration: "+formatMonths(lv.EstimatedDurationMonths)) + "\n\n")

	sb.WriteString(section("Skills to Develop") + "\n")
	if len(d.Skills) == 0 {
		sb.WriteString(m.theme.MutedText.Render("  none listed") + "\n")
	}
	for _, sk := range d.Skills {
		icon := m.theme.Renderer.NewStyle().
			Foreground(m.theme.DifficultyColor(sk.DifficultyLevel)).
			Render(DifficultyIcon(sk.DifficultyLevel))
		sb.WriteString(fmt.Sprintf("  %s %s %s %s\n",
			icon,
			padRight(sk.Name, 28),
			m.theme.MutedText.Render(padRight(sk.Category, 10)),
			m.theme.SecondaryText.Render(formatHours(sk.EstimatedTimeHours))))
	}
	sb.WriteString("\n")

	sb.WriteString(section("Recommended Courses") + "\n")
	if len(d.Courses) == 0 {
		sb.WriteString(m.theme.MutedText.Render("  none listed") + "\n")
	}
	for _, c := range d.Courses {
		cost := c.Cost
		if cost == "" {
			cost = "n/a"
		}
		sb.WriteString(fmt.Sprintf("  %s %s %s\n",
			RenderDifficultyBadge(c.DifficultyLevel),
			padRight(truncate(c.Title, 34), 35),
			m.theme.MutedText.Render(fmt.Sprintf("%s · %dw · %s", c.Provider, c.DurationWeeks, cost))))
	}
	sb.WriteString("\n")

	sb.WriteString(section("Projects to Complete") + "\n")
	if len(d.Projects) == 0 {
		sb.WriteString(m.theme.MutedText.Render("  none listed") + "\n")
	}
	for _, p := range d.Projects {
		sb.WriteString(fmt.Sprintf("  %s %s %s\n",
			RenderDifficultyBadge(p.DifficultyLevel),
			m.theme.Base.Bold(true).Render(p.Title),
			m.theme.MutedText.Render(fmt.Sprintf("~%d weeks", p.EstimatedTimeWeeks))))
		sb.WriteString("    " + m.theme.SecondaryText.Render(truncate(p.Description, m.detailView.Width-6)) + "\n")
		if len(p.TechnologiesUsed) > 0 {
			sb.WriteString("    " + m.theme.MutedText.Render("tech: "+joinOrNone(p.TechnologiesUsed)) + "\n")
		}
	}
	sb.WriteString("\n")

	sb.WriteString(section("Roles Available") + "\n")
	if len(d.Roles) == 0 {
		sb.WriteString(m.theme.MutedText.Render("  none listed") + "\n")
	}
	for _, r := range d.Roles {
		sb.WriteString(fmt.Sprintf("  %s  %s  demand: %s\n",
			m.theme.Base.Bold(true).Render(r.Title),
			m.theme.SuccessText.Render(r.SalaryRange),
			RenderDemandBadge(r.IndustryDemand)))
		sb.WriteString("    " + m.theme.SecondaryText.Render(truncate(r.Description, m.detailView.Width-6)) + "\n")
	}

	if len(lv.MilestoneAchievements) > 0 {
		sb.WriteString("\n" + section("Milestones") + "\n")
		for _, ms := range lv.MilestoneAchievements {
			sb.WriteString("  ✓ " + m.theme.Base.Render(ms) + "\n")
		}
	}

	return sb.String()
}
