// Package export produces shareable renditions of the roadmap: a
// markdown report and an SVG timeline.
package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/rvanmaanen/skillpath/pkg/model"
)

// GenerateMarkdown creates a markdown report of the full roadmap plus the
// industry insights.
func GenerateMarkdown(levels []model.RoadmapLevel, insights []model.IndustryInsight, title string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "*Generated: %s*\n\n", time.Now().Format(time.RFC1123))

	totalMonths := 0
	for _, lv := range levels {
		totalMonths += lv.EstimatedDurationMonths
	}
	fmt.Fprintf(&sb, "%d levels, estimated %d months end to end.\n\n", len(levels), totalMonths)

	for _, lv := range levels {
		fmt.Fprintf(&sb, "## Level %d: %s\n\n", lv.LevelNumber, lv.Title)
		fmt.Fprintf(&sb, "**Difficulty:** %s · **Duration:** ~%d months\n\n",
			lv.DifficultyLevel.Label(), lv.EstimatedDurationMonths)
		if lv.Description != "" {
			sb.WriteString(lv.Description + "\n\n")
		}

		if len(lv.SpecializationPaths) > 0 {
			labels := make([]string, len(lv.SpecializationPaths))
			for i, p := range lv.SpecializationPaths {
				labels[i] = p.Label()
			}
			fmt.Fprintf(&sb, "**Specialization paths:** %s\n\n", strings.Join(labels, ", "))
		}

		if len(lv.MilestoneAchievements) > 0 {
			sb.WriteString("**Milestones:**\n\n")
			for _, ms := range lv.MilestoneAchievements {
				fmt.Fprintf(&sb, "- %s\n", ms)
			}
			sb.WriteString("\n")
		}
	}

	if len(insights) > 0 {
		sb.WriteString("## Industry Insights\n\n")
		for _, in := range insights {
			fmt.Fprintf(&sb, "### %s\n\n", in.Specialization.Label())
			fmt.Fprintf(&sb, "| | |\n|---|---|\n")
			fmt.Fprintf(&sb, "| Market size | %s |\n", in.MarketSize)
			fmt.Fprintf(&sb, "| Growth rate | %s |\n", in.GrowthRate)
			fmt.Fprintf(&sb, "| Average salary | %s |\n", in.AvgSalary)
			sb.WriteString("\n")
			if len(in.KeyTrends) > 0 {
				fmt.Fprintf(&sb, "Key trends: %s\n\n", strings.Join(in.KeyTrends, ", "))
			}
			if in.FutureOutlook != "" {
				sb.WriteString(in.FutureOutlook + "\n\n")
			}
		}
	}

	return sb.String()
}

// RenderTerminal renders markdown for direct terminal display.
func RenderTerminal(markdown string, wrap int) (string, error) {
	if wrap <= 0 {
		wrap = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

// WriteMarkdownFile writes the report to path.
func WriteMarkdownFile(path string, levels []model.RoadmapLevel, insights []model.IndustryInsight, title string) error {
	md := GenerateMarkdown(levels, insights, title)
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
