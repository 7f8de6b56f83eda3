package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rvanmaanen/skillpath/pkg/model"
)

func sampleLevels() []model.RoadmapLevel {
	return []model.RoadmapLevel{
		{
			ID: "level_1", LevelNumber: 1, Title: "IoT Foundation",
			Description:     "Build fundamental knowledge and skills in IoT",
			DifficultyLevel: model.DifficultyBeginner, EstimatedDurationMonths: 3,
			SpecializationPaths:   []model.SpecializationArea{model.SpecConsumer},
			MilestoneAchievements: []string{"Completed first IoT project"},
		},
		{
			ID: "level_2", LevelNumber: 2, Title: "IoT Development",
			DifficultyLevel: model.DifficultyIntermediate, EstimatedDurationMonths: 6,
		},
	}
}

func sampleInsights() []model.IndustryInsight {
	return []model.IndustryInsight{
		{
			ID: "insight_1", Specialization: model.SpecIndustrial,
			MarketSize: "$263.4 billion by 2027", GrowthRate: "16.7% CAGR",
			AvgSalary: "$95,000 - $140,000", KeyTrends: []string{"Digital twins"},
			FutureOutlook: "Massive growth expected with Industry 4.0 adoption",
		},
	}
}

func TestGenerateMarkdownSections(t *testing.T) {
	md := GenerateMarkdown(sampleLevels(), sampleInsights(), "IoT Career Roadmap")

	for _, want := range []string{
		"# IoT Career Roadmap",
		"## Level 1: IoT Foundation",
		"## Level 2: IoT Development",
		"**Difficulty:** Beginner",
		"Consumer IoT",
		"- Completed first IoT project",
		"## Industry Insights",
		"### Industrial IoT",
		"$263.4 billion by 2027",
		"2 levels, estimated 9 months end to end.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestGenerateMarkdownEmpty(t *testing.T) {
	md := GenerateMarkdown(nil, nil, "Empty")
	if !strings.Contains(md, "0 levels") {
		t.Errorf("empty report should state 0 levels, got:\n%s", md)
	}
	if strings.Contains(md, "## Industry Insights") {
		t.Error("no insights section without insights")
	}
}

func TestWriteMarkdownFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roadmap.md")
	if err := WriteMarkdownFile(path, sampleLevels(), nil, "Report"); err != nil {
		t.Fatalf("WriteMarkdownFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "# Report") {
		t.Error("written file missing title")
	}
}

func TestRenderTerminal(t *testing.T) {
	out, err := RenderTerminal("# Title\n\nbody text\n", 80)
	if err != nil {
		t.Fatalf("RenderTerminal: %v", err)
	}
	if !strings.Contains(out, "Title") {
		t.Errorf("rendered output missing heading: %q", out)
	}
}
