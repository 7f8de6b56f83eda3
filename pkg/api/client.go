// Package api is the client for the IoT career roadmap REST API.
//
// The server exposes read-only collections under /api: the roadmap levels,
// the per-level detail bundle, and the industry insights, plus flat
// skill/course/project/role listings with optional difficulty filters.
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/rvanmaanen/skillpath/pkg/debug"
	"github.com/rvanmaanen/skillpath/pkg/model"
)

// Client talks to one roadmap API server.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Retry   RetryConfig
}

// New creates a client with single-attempt requests, the mode the TUI uses.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout: 15 * time.Second,
		},
		Retry: NoRetry(),
	}
}

// NewWithRetry creates a client that retries transient failures. Used by
// the export path where a slow answer beats a missing one.
func NewWithRetry(baseURL string, cfg RetryConfig) *Client {
	c := New(baseURL)
	c.Retry = cfg
	return c
}

// Overview is the pair of collections fetched together on startup.
type Overview struct {
	Levels   []model.RoadmapLevel
	Insights []model.IndustryInsight
}

// FetchOverview loads the roadmap and the industry insights concurrently.
// Either request failing fails the whole call.
func (c *Client) FetchOverview(ctx context.Context) (*Overview, error) {
	defer debug.LogEnterExit("api.FetchOverview")()

	var ov Overview
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		levels, err := c.ListRoadmap(ctx)
		if err != nil {
			return err
		}
		ov.Levels = levels
		return nil
	})
	g.Go(func() error {
		insights, err := c.ListInsights(ctx, "")
		if err != nil {
			return err
		}
		ov.Insights = insights
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ov, nil
}

// ListRoadmap returns all roadmap levels, ordered by level number.
func (c *Client) ListRoadmap(ctx context.Context) ([]model.RoadmapLevel, error) {
	var levels []model.RoadmapLevel
	if err := c.getJSON(ctx, "/api/roadmap", nil, &levels); err != nil {
		return nil, fmt.Errorf("listing roadmap: %w", err)
	}
	return levels, nil
}

// LevelDetail returns the detail bundle for one level id.
func (c *Client) LevelDetail(ctx context.Context, levelID string) (*model.LevelDetail, error) {
	if levelID == "" {
		return nil, fmt.Errorf("level id is empty")
	}
	var detail model.LevelDetail
	path := "/api/roadmap/level/" + url.PathEscape(levelID)
	if err := c.getJSON(ctx, path, nil, &detail); err != nil {
		return nil, fmt.Errorf("fetching level %s: %w", levelID, err)
	}
	return &detail, nil
}

// ListInsights returns industry insights, optionally filtered by
// specialization area.
func (c *Client) ListInsights(ctx context.Context, spec model.SpecializationArea) ([]model.IndustryInsight, error) {
	q := url.Values{}
	if spec != "" {
		q.Set("specialization", string(spec))
	}
	var insights []model.IndustryInsight
	if err := c.getJSON(ctx, "/api/industry-insights", q, &insights); err != nil {
		return nil, fmt.Errorf("listing insights: %w", err)
	}
	return insights, nil
}

// ListSkills returns all skills, optionally filtered by difficulty.
func (c *Client) ListSkills(ctx context.Context, difficulty model.DifficultyLevel) ([]model.Skill, error) {
	var skills []model.Skill
	if err := c.getJSON(ctx, "/api/skills", difficultyQuery(difficulty), &skills); err != nil {
		return nil, fmt.Errorf("listing skills: %w", err)
	}
	return skills, nil
}

// ListCourses returns all courses, optionally filtered by difficulty.
func (c *Client) ListCourses(ctx context.Context, difficulty model.DifficultyLevel) ([]model.Course, error) {
	var courses []model.Course
	if err := c.getJSON(ctx, "/api/courses", difficultyQuery(difficulty), &courses); err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	return courses, nil
}

// ListProjects returns all projects, optionally filtered by difficulty.
func (c *Client) ListProjects(ctx context.Context, difficulty model.DifficultyLevel) ([]model.Project, error) {
	var projects []model.Project
	if err := c.getJSON(ctx, "/api/projects", difficultyQuery(difficulty), &projects); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// ListRoles returns all roles, optionally filtered by level.
func (c *Client) ListRoles(ctx context.Context, level model.DifficultyLevel) ([]model.Role, error) {
	q := url.Values{}
	if level != "" {
		q.Set("level", string(level))
	}
	var roles []model.Role
	if err := c.getJSON(ctx, "/api/roles", q, &roles); err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}
	return roles, nil
}

func difficultyQuery(d model.DifficultyLevel) url.Values {
	if d == "" {
		return nil
	}
	q := url.Values{}
	q.Set("difficulty", string(d))
	return q
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return fmt.Errorf("invalid base url %q: %w", c.BaseURL, err)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	body, err := doWithRetry(ctx, c.HTTP, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}, c.Retry)
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("json parse error: %w body=%s", err, snippet(body, 900))
	}
	return nil
}
