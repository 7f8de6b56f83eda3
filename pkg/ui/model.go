// Package ui is the terminal front-end for the roadmap viewer.
//
// It follows the usual bubbletea shape: a Model holding all view state,
// typed messages for everything asynchronous, and commands that run the
// API calls off the update loop.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rvanmaanen/skillpath/pkg/api"
	"github.com/rvanmaanen/skillpath/pkg/debug"
	"github.com/rvanmaanen/skillpath/pkg/model"
)

// tab identifies which of the two main panels is visible.
type tab int

const (
	tabRoadmap tab = iota
	tabInsights
)

// String returns the tab's display name.
func (t tab) String() string {
	if t == tabInsights {
		return "Industry Insights"
	}
	return "Career Roadmap"
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const (
	fetchTimeout   = 20 * time.Second
	statusLifetime = 4 * time.Second
)

// OverviewLoadedMsg delivers the startup fetch result.
type OverviewLoadedMsg struct {
	Overview *api.Overview
}

// OverviewErrorMsg is sent when the startup fetch fails.
type OverviewErrorMsg struct {
	Err error
}

// LevelDetailLoadedMsg delivers the detail bundle for a selected level.
type LevelDetailLoadedMsg struct {
	Detail *model.LevelDetail
}

// LevelDetailErrorMsg is sent when loading a level's detail fails.
type LevelDetailErrorMsg struct {
	LevelID string
	Err     error
}

// ReadyTimeoutMsg unblocks the UI if the terminal never reports its size.
type ReadyTimeoutMsg struct{}

type spinnerTickMsg struct{}

type statusExpiredMsg struct{ id int }

// FetchOverviewCmd loads the roadmap and insights concurrently.
func FetchOverviewCmd(c *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		ov, err := c.FetchOverview(ctx)
		if err != nil {
			return OverviewErrorMsg{Err: err}
		}
		return OverviewLoadedMsg{Overview: ov}
	}
}

// FetchLevelDetailCmd loads one level's detail bundle.
func FetchLevelDetailCmd(c *api.Client, levelID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		detail, err := c.LevelDetail(ctx, levelID)
		if err != nil {
			return LevelDetailErrorMsg{LevelID: levelID, Err: err}
		}
		return LevelDetailLoadedMsg{Detail: detail}
	}
}

func spinnerTickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// ReadyTimeoutCmd sends ReadyTimeoutMsg after 100ms so the TUI doesn't
// hang on "Initializing..." when the terminal is slow to report its size
// (common in tmux and over SSH).
func ReadyTimeoutCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return ReadyTimeoutMsg{}
	})
}

// Model is the complete state of the roadmap viewer.
type Model struct {
	client *api.Client
	theme  Theme

	width  int
	height int
	ready  bool

	loading      bool // overview fetch in flight
	spinnerFrame int

	activeTab     tab
	cursor        int // roadmap selection
	insightCursor int

	levels   []model.RoadmapLevel
	insights []model.IndustryInsight

	// Modal state. detail non-nil means the level modal is open;
	// detailLoading means a fetch is in flight for pendingLevelID.
	detail         *model.LevelDetail
	detailLoading  bool
	pendingLevelID string
	detailView     viewport.Model

	statusMsg     string
	statusIsError bool
	statusSeq     int
}

// NewModel creates the initial model. The first overview fetch starts
// from Init.
func NewModel(client *api.Client, theme Theme, defaultTab string) Model {
	m := Model{
		client:  client,
		theme:   theme,
		loading: true,
	}
	if defaultTab == "insights" {
		m.activeTab = tabInsights
	}
	return m
}

// Init kicks off the startup fetch, the spinner, and the ready fallback.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		FetchOverviewCmd(m.client),
		spinnerTickCmd(),
		ReadyTimeoutCmd(),
	)
}

// Update is the single state-transition function.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.sizeDetailView()
		return m, nil

	case ReadyTimeoutMsg:
		if !m.ready {
			// Assume a usable default so the first frame renders.
			m.width, m.height = 80, 24
			m.ready = true
			m.sizeDetailView()
		}
		return m, nil

	case spinnerTickMsg:
		if !m.loading && !m.detailLoading {
			return m, nil
		}
		m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerFrames)
		return m, spinnerTickCmd()

	case OverviewLoadedMsg:
		m.loading = false
		m.levels = msg.Overview.Levels
		m.insights = msg.Overview.Insights
		m.clampCursors()
		debug.Log("ui: overview loaded levels=%d insights=%d", len(m.levels), len(m.insights))
		return m, nil

	case OverviewErrorMsg:
		// The flag clears on failure too, otherwise the spinner runs forever.
		m.loading = false
		return m.withError(fmt.Sprintf("load failed: %v", msg.Err))

	case LevelDetailLoadedMsg:
		m.detailLoading = false
		if msg.Detail == nil || msg.Detail.Level.ID != m.pendingLevelID {
			// A stale response for a level we no longer want.
			return m, nil
		}
		m.detail = msg.Detail
		m.sizeDetailView()
		m.detailView.SetContent(m.renderDetailContent())
		m.detailView.GotoTop()
		return m, nil

	case LevelDetailErrorMsg:
		m.detailLoading = false
		m.pendingLevelID = ""
		return m.withError(fmt.Sprintf("level %s: %v", msg.LevelID, msg.Err))

	case statusExpiredMsg:
		if msg.id == m.statusSeq {
			m.statusMsg = ""
			m.statusIsError = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal captures all input while open.
	if m.detail != nil {
		switch msg.String() {
		case "esc", "q", "enter":
			m.detail = nil
			m.pendingLevelID = ""
			return m, nil
		case "c":
			return m.copyDetailToClipboard()
		case "ctrl+c":
			return m, tea.Quit
		default:
			var cmd tea.Cmd
			m.detailView, cmd = m.detailView.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab", "shift+tab":
		m.toggleTab()
		return m, nil
	case "1":
		m.activeTab = tabRoadmap
		return m, nil
	case "2":
		m.activeTab = tabInsights
		return m, nil

	case "up", "k":
		m.moveCursor(-1)
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		return m, nil
	case "home", "g":
		m.setCursor(0)
		return m, nil
	case "end", "G":
		m.setCursor(1 << 30)
		return m, nil

	case "enter", "l":
		return m.openSelectedLevel()

	case "c":
		return m.copySelectionToClipboard()

	case "r":
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(FetchOverviewCmd(m.client), spinnerTickCmd())
	}

	return m, nil
}

func (m *Model) toggleTab() {
	if m.activeTab == tabRoadmap {
		m.activeTab = tabInsights
	} else {
		m.activeTab = tabRoadmap
	}
}

func (m *Model) moveCursor(delta int) {
	if m.activeTab == tabRoadmap {
		m.setCursor(m.cursor + delta)
	} else {
		m.setCursor(m.insightCursor + delta)
	}
}

func (m *Model) setCursor(pos int) {
	if m.activeTab == tabRoadmap {
		m.cursor = clamp(pos, 0, len(m.levels)-1)
	} else {
		m.insightCursor = clamp(pos, 0, len(m.insights)-1)
	}
}

func (m *Model) clampCursors() {
	m.cursor = clamp(m.cursor, 0, len(m.levels)-1)
	m.insightCursor = clamp(m.insightCursor, 0, len(m.insights)-1)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// openSelectedLevel starts the detail fetch for the highlighted level.
// Only one detail request can be pending at a time.
func (m Model) openSelectedLevel() (tea.Model, tea.Cmd) {
	if m.activeTab != tabRoadmap || m.detailLoading {
		return m, nil
	}
	if m.cursor < 0 || m.cursor >= len(m.levels) {
		return m, nil
	}
	id := m.levels[m.cursor].ID
	m.detailLoading = true
	m.pendingLevelID = id
	return m, tea.Batch(FetchLevelDetailCmd(m.client, id), spinnerTickCmd())
}

// SelectedLevel returns the highlighted roadmap level, or nil.
func (m Model) SelectedLevel() *model.RoadmapLevel {
	if m.cursor < 0 || m.cursor >= len(m.levels) {
		return nil
	}
	return &m.levels[m.cursor]
}

func (m Model) copySelectionToClipboard() (tea.Model, tea.Cmd) {
	var text string
	if m.activeTab == tabRoadmap {
		lv := m.SelectedLevel()
		if lv == nil {
			return m.withError("nothing selected")
		}
		text = fmt.Sprintf("Level %d: %s (%s, ~%s)\n%s\n",
			lv.LevelNumber, lv.Title, lv.DifficultyLevel.Label(),
			formatMonths(lv.EstimatedDurationMonths), lv.Description)
	} else {
		if m.insightCursor < 0 || m.insightCursor >= len(m.insights) {
			return m.withError("nothing selected")
		}
		in := m.insights[m.insightCursor]
		text = fmt.Sprintf("%s: %s, %s growth\n%s\n",
			in.Specialization.Label(), in.MarketSize, in.GrowthRate, in.FutureOutlook)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return m.withError(fmt.Sprintf("clipboard: %v", err))
	}
	return m.withStatus("copied to clipboard")
}

func (m Model) copyDetailToClipboard() (tea.Model, tea.Cmd) {
	if m.detail == nil {
		return m, nil
	}
	var sb strings.Builder
	lv := m.detail.Level
	fmt.Fprintf(&sb, "Level %d: %s (%s)\n%s\n\nSkills:\n",
		lv.LevelNumber, lv.Title, lv.DifficultyLevel.Label(), lv.Description)
	for _, sk := range m.detail.Skills {
		fmt.Fprintf(&sb, "- %s (%s, %s)\n", sk.Name, sk.DifficultyLevel.Label(), formatHours(sk.EstimatedTimeHours))
	}
	if err := clipboard.WriteAll(sb.String()); err != nil {
		return m.withError(fmt.Sprintf("clipboard: %v", err))
	}
	return m.withStatus("copied to clipboard")
}

func (m Model) withStatus(msg string) (tea.Model, tea.Cmd) {
	m.statusMsg = msg
	m.statusIsError = false
	m.statusSeq++
	return m, expireStatusCmd(m.statusSeq)
}

func (m Model) withError(msg string) (tea.Model, tea.Cmd) {
	m.statusMsg = msg
	m.statusIsError = true
	m.statusSeq++
	return m, expireStatusCmd(m.statusSeq)
}

func expireStatusCmd(id int) tea.Cmd {
	return tea.Tick(statusLifetime, func(time.Time) tea.Msg {
		return statusExpiredMsg{id: id}
	})
}

func (m *Model) sizeDetailView() {
	w := m.width - 2*SpaceMD
	h := m.height - 2*SpaceSM
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}
	if m.detailView.Width == 0 {
		m.detailView = viewport.New(w, h)
	} else {
		m.detailView.Width = w
		m.detailView.Height = h
	}
}
