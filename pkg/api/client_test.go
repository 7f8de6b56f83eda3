package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rvanmaanen/skillpath/pkg/model"
)

const roadmapJSON = `[
	{"id":"level_1","level_number":1,"title":"IoT Foundation","difficulty_level":"beginner","estimated_duration_months":3},
	{"id":"level_2","level_number":2,"title":"IoT Development","difficulty_level":"intermediate","estimated_duration_months":6}
]`

const insightsJSON = `[
	{"id":"insight_1","specialization":"industrial_iot","market_size":"$263.4 billion by 2027","growth_rate":"16.7% CAGR"}
]`

func TestListRoadmap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/roadmap" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(roadmapJSON))
	}))
	defer srv.Close()

	levels, err := New(srv.URL).ListRoadmap(context.Background())
	if err != nil {
		t.Fatalf("ListRoadmap: %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(levels))
	}
	if levels[0].ID != "level_1" || levels[0].DifficultyLevel != model.DifficultyBeginner {
		t.Errorf("unexpected first level: %+v", levels[0])
	}
	if levels[1].LevelNumber != 2 {
		t.Errorf("level_number = %d", levels[1].LevelNumber)
	}
}

func TestLevelDetailUsesRequestedID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"level":{"id":"level_2","level_number":2,"title":"IoT Development"},"skills":[{"id":"skill_3","name":"Networking Protocols"}],"courses":[],"projects":[],"roles":[]}`))
	}))
	defer srv.Close()

	detail, err := New(srv.URL).LevelDetail(context.Background(), "level_2")
	if err != nil {
		t.Fatalf("LevelDetail: %v", err)
	}
	if gotPath != "/api/roadmap/level/level_2" {
		t.Errorf("request path = %q", gotPath)
	}
	// The bundle's level id must match what was asked for.
	if detail.Level.ID != "level_2" {
		t.Errorf("detail level id = %q", detail.Level.ID)
	}
	if len(detail.Skills) != 1 || detail.Skills[0].Name != "Networking Protocols" {
		t.Errorf("skills = %+v", detail.Skills)
	}
}

func TestLevelDetailEmptyID(t *testing.T) {
	if _, err := New("http://unused").LevelDetail(context.Background(), ""); err == nil {
		t.Error("expected error for empty level id")
	}
}

func TestListInsightsSpecializationFilter(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(insightsJSON))
	}))
	defer srv.Close()

	insights, err := New(srv.URL).ListInsights(context.Background(), model.SpecIndustrial)
	if err != nil {
		t.Fatalf("ListInsights: %v", err)
	}
	if gotQuery != "specialization=industrial_iot" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(insights) != 1 || insights[0].Specialization != model.SpecIndustrial {
		t.Errorf("insights = %+v", insights)
	}
}

func TestListSkillsDifficultyFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("difficulty"); got != "advanced" {
			t.Errorf("difficulty = %q", got)
		}
		w.Write([]byte(`[{"id":"skill_6","name":"Security & Privacy","difficulty_level":"advanced"}]`))
	}))
	defer srv.Close()

	skills, err := New(srv.URL).ListSkills(context.Background(), model.DifficultyAdvanced)
	if err != nil {
		t.Fatalf("ListSkills: %v", err)
	}
	if len(skills) != 1 {
		t.Fatalf("expected 1 skill, got %d", len(skills))
	}
}

func TestFetchOverviewConcurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/roadmap":
			w.Write([]byte(roadmapJSON))
		case "/api/industry-insights":
			w.Write([]byte(insightsJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ov, err := New(srv.URL).FetchOverview(context.Background())
	if err != nil {
		t.Fatalf("FetchOverview: %v", err)
	}
	if len(ov.Levels) != 2 {
		t.Errorf("levels = %d", len(ov.Levels))
	}
	if len(ov.Insights) != 1 {
		t.Errorf("insights = %d", len(ov.Insights))
	}
}

func TestFetchOverviewPartialFailureFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/roadmap" {
			w.Write([]byte(roadmapJSON))
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := New(srv.URL).FetchOverview(context.Background()); err == nil {
		t.Error("expected error when one of the two fetches fails")
	}
}

func TestHTTPErrorSurfacesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "level not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(srv.URL).LevelDetail(context.Background(), "level_99")
	if err == nil {
		t.Fatal("expected error")
	}
	var herr *HTTPError
	if !errors.As(err, &herr) {
		t.Fatalf("expected *HTTPError, got %T: %v", err, err)
	}
	if herr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", herr.StatusCode)
	}
}

func TestNoRetrySingleAttempt(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := New(srv.URL).ListRoadmap(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", got)
	}
}

func TestRetryRecoversFrom503(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(roadmapJSON))
	}))
	defer srv.Close()

	c := NewWithRetry(srv.URL, RetryConfig{
		MaxAttempts: 4,
		BaseDelay:   time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
		Retry5xx:    true,
	})
	levels, err := c.ListRoadmap(context.Background())
	if err != nil {
		t.Fatalf("ListRoadmap with retry: %v", err)
	}
	if len(levels) != 2 {
		t.Errorf("levels = %d", len(levels))
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestParseRetryAfterSeconds(t *testing.T) {
	resp := &http.Response{Header: http.Header{"Retry-After": []string{"2"}}}
	if got := parseRetryAfter(resp); got != 2*time.Second {
		t.Errorf("parseRetryAfter = %v", got)
	}
	resp = &http.Response{Header: http.Header{}}
	if got := parseRetryAfter(resp); got != 0 {
		t.Errorf("missing header should parse to 0, got %v", got)
	}
}
