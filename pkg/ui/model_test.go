package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rvanmaanen/skillpath/pkg/api"
	"github.com/rvanmaanen/skillpath/pkg/model"
)

func testLevels() []model.RoadmapLevel {
	return []model.RoadmapLevel{
		{ID: "level_1", LevelNumber: 1, Title: "IoT Foundation", DifficultyLevel: model.DifficultyBeginner, EstimatedDurationMonths: 3},
		{ID: "level_2", LevelNumber: 2, Title: "IoT Development", DifficultyLevel: model.DifficultyIntermediate, EstimatedDurationMonths: 6},
		{ID: "level_3", LevelNumber: 3, Title: "IoT Specialization", DifficultyLevel: model.DifficultyAdvanced, EstimatedDurationMonths: 9},
	}
}

func testInsights() []model.IndustryInsight {
	return []model.IndustryInsight{
		{ID: "insight_1", Specialization: model.SpecIndustrial, MarketSize: "$263.4 billion by 2027", GrowthRate: "16.7% CAGR"},
	}
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(api.New("http://unused"), TestTheme(), "roadmap")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)
	updated, _ = m.Update(OverviewLoadedMsg{Overview: &api.Overview{
		Levels:   testLevels(),
		Insights: testInsights(),
	}})
	return updated.(Model)
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitialStateIsLoading(t *testing.T) {
	m := NewModel(api.New("http://unused"), TestTheme(), "roadmap")
	if !m.loading {
		t.Error("model should start in loading state")
	}
	if m.activeTab != tabRoadmap {
		t.Errorf("default tab = %v, want roadmap", m.activeTab)
	}
}

func TestDefaultTabInsights(t *testing.T) {
	m := NewModel(api.New("http://unused"), TestTheme(), "insights")
	if m.activeTab != tabInsights {
		t.Errorf("activeTab = %v, want insights", m.activeTab)
	}
}

func TestLoadingClearsOnSuccess(t *testing.T) {
	m := loadedModel(t)
	if m.loading {
		t.Error("loading flag still set after successful fetch")
	}
	if len(m.levels) != 3 || len(m.insights) != 1 {
		t.Errorf("levels=%d insights=%d", len(m.levels), len(m.insights))
	}
}

func TestLoadingClearsOnFailure(t *testing.T) {
	m := NewModel(api.New("http://unused"), TestTheme(), "roadmap")
	updated, _ := m.Update(OverviewErrorMsg{Err: errors.New("connection refused")})
	m2 := updated.(Model)
	if m2.loading {
		t.Error("loading flag must clear on failure too")
	}
	if !m2.statusIsError || m2.statusMsg == "" {
		t.Errorf("expected error status, got %q", m2.statusMsg)
	}
}

func TestTabToggleShowsOnePanelAtATime(t *testing.T) {
	m := loadedModel(t)

	view := m.View()
	if !strings.Contains(view, "IoT Foundation") {
		t.Error("roadmap tab should list levels")
	}
	if strings.Contains(view, "$263.4 billion") {
		t.Error("insights content visible while roadmap tab active")
	}

	updated, _ := m.Update(key("tab"))
	m2 := updated.(Model)
	view = m2.View()
	if !strings.Contains(view, "$263.4 billion") {
		t.Error("insights tab should show insight data")
	}
	if strings.Contains(view, "Level 1: IoT Foundation") {
		t.Error("roadmap content visible while insights tab active")
	}

	updated, _ = m2.Update(key("tab"))
	m3 := updated.(Model)
	if m3.activeTab != tabRoadmap {
		t.Error("second toggle should return to roadmap")
	}
}

func TestNumberKeysSelectTabs(t *testing.T) {
	m := loadedModel(t)
	updated, _ := m.Update(key("2"))
	if updated.(Model).activeTab != tabInsights {
		t.Error("2 should select insights tab")
	}
	updated, _ = updated.(Model).Update(key("1"))
	if updated.(Model).activeTab != tabRoadmap {
		t.Error("1 should select roadmap tab")
	}
}

func TestCursorMovementClamps(t *testing.T) {
	m := loadedModel(t)
	updated, _ := m.Update(key("up"))
	if got := updated.(Model).cursor; got != 0 {
		t.Errorf("cursor above top = %d", got)
	}
	m2 := updated.(Model)
	for i := 0; i < 10; i++ {
		updated, _ = m2.Update(key("down"))
		m2 = updated.(Model)
	}
	if m2.cursor != 2 {
		t.Errorf("cursor past bottom = %d, want 2", m2.cursor)
	}
}

func TestEnterRequestsSelectedLevel(t *testing.T) {
	m := loadedModel(t)
	updated, _ := m.Update(key("down")) // level_2
	updated, cmd := updated.(Model).Update(key("enter"))
	m2 := updated.(Model)

	if !m2.detailLoading {
		t.Error("enter should set detailLoading")
	}
	if m2.pendingLevelID != "level_2" {
		t.Errorf("pendingLevelID = %q, want level_2", m2.pendingLevelID)
	}
	if cmd == nil {
		t.Error("enter should produce a fetch command")
	}
	if m2.detail != nil {
		t.Error("modal must not open before the detail arrives")
	}
}

func TestDetailLoadedOpensModal(t *testing.T) {
	m := loadedModel(t)
	updated, _ := m.Update(key("down"))
	updated, _ = updated.(Model).Update(key("enter"))

	detail := &model.LevelDetail{
		Level:  testLevels()[1],
		Skills: []model.Skill{{ID: "skill_3", Name: "Networking Protocols", DifficultyLevel: model.DifficultyIntermediate}},
	}
	updated, _ = updated.(Model).Update(LevelDetailLoadedMsg{Detail: detail})
	m2 := updated.(Model)

	if m2.detail == nil {
		t.Fatal("modal should be open")
	}
	if m2.detailLoading {
		t.Error("detailLoading should clear once the bundle arrives")
	}
	if m2.detail.Level.ID != "level_2" {
		t.Errorf("modal level = %q", m2.detail.Level.ID)
	}
	view := m2.View()
	if !strings.Contains(view, "IoT Development") || !strings.Contains(view, "Networking Protocols") {
		t.Error("modal view missing level detail content")
	}
}

func TestStaleDetailIgnored(t *testing.T) {
	m := loadedModel(t)
	updated, _ := m.Update(key("enter")) // requests level_1
	m2 := updated.(Model)

	stale := &model.LevelDetail{Level: testLevels()[2]} // level_3
	updated, _ = m2.Update(LevelDetailLoadedMsg{Detail: stale})
	m3 := updated.(Model)
	if m3.detail != nil {
		t.Error("detail for a different level than requested must be dropped")
	}
}

func TestEscClosesModal(t *testing.T) {
	m := loadedModel(t)
	updated, _ := m.Update(key("enter"))
	updated, _ = updated.(Model).Update(LevelDetailLoadedMsg{Detail: &model.LevelDetail{Level: testLevels()[0]}})
	m2 := updated.(Model)
	if m2.detail == nil {
		t.Fatal("modal should be open")
	}

	updated, _ = m2.Update(key("esc"))
	m3 := updated.(Model)
	if m3.detail != nil {
		t.Error("esc should close the modal")
	}
	if m3.pendingLevelID != "" {
		t.Errorf("pendingLevelID = %q after close", m3.pendingLevelID)
	}
}

func TestDetailErrorSurfacesInFooter(t *testing.T) {
	m := loadedModel(t)
	updated, _ := m.Update(key("enter"))
	updated, _ = updated.(Model).Update(LevelDetailErrorMsg{LevelID: "level_1", Err: errors.New("404")})
	m2 := updated.(Model)

	if m2.detailLoading {
		t.Error("detailLoading should clear on failure")
	}
	if m2.detail != nil {
		t.Error("no modal on failed detail fetch")
	}
	if !m2.statusIsError || !strings.Contains(m2.statusMsg, "level_1") {
		t.Errorf("status = %q", m2.statusMsg)
	}
}

func TestRefreshSetsLoading(t *testing.T) {
	m := loadedModel(t)
	updated, cmd := m.Update(key("r"))
	m2 := updated.(Model)
	if !m2.loading {
		t.Error("r should start a reload")
	}
	if cmd == nil {
		t.Error("r should produce a fetch command")
	}

	// A second r while loading is a no-op.
	updated, cmd = m2.Update(key("r"))
	if cmd != nil {
		t.Error("refresh while loading should not refetch")
	}
	_ = updated
}

func TestCopyWithEmptyListReportsError(t *testing.T) {
	m := NewModel(api.New("http://unused"), TestTheme(), "roadmap")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	updated, _ = updated.(Model).Update(OverviewLoadedMsg{Overview: &api.Overview{}})
	updated, _ = updated.(Model).Update(key("c"))
	m2 := updated.(Model)
	if !m2.statusIsError {
		t.Error("copy with nothing selected should report an error")
	}
}

func TestViewBeforeReady(t *testing.T) {
	m := NewModel(api.New("http://unused"), TestTheme(), "roadmap")
	if got := m.View(); !strings.Contains(got, "Initializing") {
		t.Errorf("pre-ready view = %q", got)
	}
}

func TestReadyTimeoutUnblocksRendering(t *testing.T) {
	m := NewModel(api.New("http://unused"), TestTheme(), "roadmap")
	updated, _ := m.Update(ReadyTimeoutMsg{})
	m2 := updated.(Model)
	if !m2.ready {
		t.Error("ReadyTimeoutMsg should mark the model ready")
	}
	if m2.width == 0 || m2.height == 0 {
		t.Error("fallback dimensions should be set")
	}
}

func TestStatusExpiry(t *testing.T) {
	m := loadedModel(t)
	updated, _ := m.Update(OverviewErrorMsg{Err: errors.New("boom")})
	m2 := updated.(Model)
	seq := m2.statusSeq

	// An expiry for an older status must not clear a newer one.
	updated, _ = m2.Update(statusExpiredMsg{id: seq - 1})
	if updated.(Model).statusMsg == "" {
		t.Error("stale expiry cleared a live status")
	}

	updated, _ = m2.Update(statusExpiredMsg{id: seq})
	if updated.(Model).statusMsg != "" {
		t.Error("matching expiry should clear the status")
	}
}

func TestSpinnerOnlyTicksWhileLoading(t *testing.T) {
	m := loadedModel(t)
	_, cmd := m.Update(spinnerTickMsg{})
	if cmd != nil {
		t.Error("spinner should stop when nothing is loading")
	}

	updated, _ := m.Update(key("r"))
	_, cmd = updated.(Model).Update(spinnerTickMsg{})
	if cmd == nil {
		t.Error("spinner should keep ticking while loading")
	}
}
