// Package store persists the roadmap catalog in SQLite.
//
// The catalog is read-mostly: it is seeded from a YAML dataset and then
// served verbatim. List fields are stored as JSON text columns.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/rvanmaanen/skillpath/pkg/model"
)

// Store provides access to the roadmap catalog database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS roadmap_levels (
	id TEXT PRIMARY KEY,
	level_number INTEGER NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	difficulty_level TEXT NOT NULL,
	estimated_duration_months INTEGER NOT NULL DEFAULT 0,
	skills_to_develop TEXT NOT NULL DEFAULT '[]',
	recommended_courses TEXT NOT NULL DEFAULT '[]',
	projects_to_complete TEXT NOT NULL DEFAULT '[]',
	roles_available TEXT NOT NULL DEFAULT '[]',
	specialization_paths TEXT NOT NULL DEFAULT '[]',
	milestone_achievements TEXT NOT NULL DEFAULT '[]'
);
CREATE TABLE IF NOT EXISTS skills (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	difficulty_level TEXT NOT NULL,
	estimated_time_hours INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS courses (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	provider TEXT NOT NULL DEFAULT '',
	duration_weeks INTEGER NOT NULL DEFAULT 0,
	difficulty_level TEXT NOT NULL,
	cost TEXT NOT NULL DEFAULT '',
	url TEXT NOT NULL DEFAULT '',
	skills_covered TEXT NOT NULL DEFAULT '[]',
	prerequisites TEXT NOT NULL DEFAULT '[]'
);
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	difficulty_level TEXT NOT NULL,
	estimated_time_weeks INTEGER NOT NULL DEFAULT 0,
	technologies_used TEXT NOT NULL DEFAULT '[]',
	skills_practiced TEXT NOT NULL DEFAULT '[]',
	industry_relevance TEXT NOT NULL DEFAULT '[]',
	detailed_steps TEXT NOT NULL DEFAULT '[]',
	expected_outcomes TEXT NOT NULL DEFAULT '[]'
);
CREATE TABLE IF NOT EXISTS roles (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	level TEXT NOT NULL,
	salary_range TEXT NOT NULL DEFAULT '',
	responsibilities TEXT NOT NULL DEFAULT '[]',
	required_skills TEXT NOT NULL DEFAULT '[]',
	industry_demand TEXT NOT NULL DEFAULT '',
	growth_potential TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS industry_insights (
	id TEXT PRIMARY KEY,
	specialization TEXT NOT NULL,
	market_size TEXT NOT NULL DEFAULT '',
	growth_rate TEXT NOT NULL DEFAULT '',
	key_trends TEXT NOT NULL DEFAULT '[]',
	major_companies TEXT NOT NULL DEFAULT '[]',
	future_outlook TEXT NOT NULL DEFAULT '',
	entry_barriers TEXT NOT NULL DEFAULT '',
	avg_salary TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_levels_number ON roadmap_levels(level_number);
`

// Open opens (creating if necessary) the catalog database at path.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	if path == ":memory:" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsEmpty reports whether the catalog has no roadmap levels yet.
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM roadmap_levels").Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

// Levels returns all roadmap levels ordered by level number.
func (s *Store) Levels(ctx context.Context) ([]model.RoadmapLevel, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, level_number, title, description, difficulty_level,
			estimated_duration_months, skills_to_develop, recommended_courses,
			projects_to_complete, roles_available, specialization_paths,
			milestone_achievements
		FROM roadmap_levels
		ORDER BY level_number ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying levels: %w", err)
	}
	defer rows.Close()

	var levels []model.RoadmapLevel
	for rows.Next() {
		var lv model.RoadmapLevel
		var skills, courses, projects, roles, specs, milestones string
		if err := rows.Scan(&lv.ID, &lv.LevelNumber, &lv.Title, &lv.Description,
			&lv.DifficultyLevel, &lv.EstimatedDurationMonths,
			&skills, &courses, &projects, &roles, &specs, &milestones); err != nil {
			return nil, fmt.Errorf("scanning level: %w", err)
		}
		lv.SkillsToDevelop = decodeStrings(skills)
		lv.RecommendedCourses = decodeStrings(courses)
		lv.ProjectsToComplete = decodeStrings(projects)
		lv.RolesAvailable = decodeStrings(roles)
		lv.SpecializationPaths = decodeSpecs(specs)
		lv.MilestoneAchievements = decodeStrings(milestones)
		levels = append(levels, lv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating levels: %w", err)
	}
	return levels, nil
}

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = sql.ErrNoRows

// LevelByID returns a single level, or ErrNotFound.
func (s *Store) LevelByID(ctx context.Context, id string) (*model.RoadmapLevel, error) {
	levels, err := s.Levels(ctx)
	if err != nil {
		return nil, err
	}
	for i := range levels {
		if levels[i].ID == id {
			return &levels[i], nil
		}
	}
	return nil, ErrNotFound
}

// LevelDetail resolves a level's associated skills, courses, projects and
// roles into the detail bundle.
func (s *Store) LevelDetail(ctx context.Context, id string) (*model.LevelDetail, error) {
	level, err := s.LevelByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := model.LevelDetail{Level: *level}

	skills, err := s.Skills(ctx, "")
	if err != nil {
		return nil, err
	}
	detail.Skills = filterByID(skills, level.SkillsToDevelop, func(v model.Skill) string { return v.ID })

	courses, err := s.Courses(ctx, "")
	if err != nil {
		return nil, err
	}
	detail.Courses = filterByID(courses, level.RecommendedCourses, func(v model.Course) string { return v.ID })

	projects, err := s.Projects(ctx, "")
	if err != nil {
		return nil, err
	}
	detail.Projects = filterByID(projects, level.ProjectsToComplete, func(v model.Project) string { return v.ID })

	roles, err := s.Roles(ctx, "")
	if err != nil {
		return nil, err
	}
	detail.Roles = filterByID(roles, level.RolesAvailable, func(v model.Role) string { return v.ID })

	return &detail, nil
}

// filterByID keeps the records whose id appears in wanted, preserving the
// order of wanted.
func filterByID[T any](records []T, wanted []string, id func(T) string) []T {
	byID := make(map[string]T, len(records))
	for _, r := range records {
		byID[id(r)] = r
	}
	out := make([]T, 0, len(wanted))
	for _, w := range wanted {
		if r, ok := byID[w]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Skills returns all skills, optionally filtered by difficulty.
func (s *Store) Skills(ctx context.Context, difficulty model.DifficultyLevel) ([]model.Skill, error) {
	query := `SELECT id, name, description, category, difficulty_level, estimated_time_hours FROM skills`
	args := []any{}
	if difficulty != "" {
		query += ` WHERE difficulty_level = ?`
		args = append(args, string(difficulty))
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying skills: %w", err)
	}
	defer rows.Close()

	var skills []model.Skill
	for rows.Next() {
		var sk model.Skill
		if err := rows.Scan(&sk.ID, &sk.Name, &sk.Description, &sk.Category,
			&sk.DifficultyLevel, &sk.EstimatedTimeHours); err != nil {
			return nil, fmt.Errorf("scanning skill: %w", err)
		}
		skills = append(skills, sk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating skills: %w", err)
	}
	sortByID(skills, func(v model.Skill) string { return v.ID })
	return skills, nil
}

// Courses returns all courses, optionally filtered by difficulty.
func (s *Store) Courses(ctx context.Context, difficulty model.DifficultyLevel) ([]model.Course, error) {
	query := `SELECT id, title, description, provider, duration_weeks, difficulty_level,
		cost, url, skills_covered, prerequisites FROM courses`
	args := []any{}
	if difficulty != "" {
		query += ` WHERE difficulty_level = ?`
		args = append(args, string(difficulty))
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying courses: %w", err)
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		var covered, prereqs string
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Provider,
			&c.DurationWeeks, &c.DifficultyLevel, &c.Cost, &c.URL,
			&covered, &prereqs); err != nil {
			return nil, fmt.Errorf("scanning course: %w", err)
		}
		c.SkillsCovered = decodeStrings(covered)
		c.Prerequisites = decodeStrings(prereqs)
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating courses: %w", err)
	}
	sortByID(courses, func(v model.Course) string { return v.ID })
	return courses, nil
}

// Projects returns all projects, optionally filtered by difficulty.
func (s *Store) Projects(ctx context.Context, difficulty model.DifficultyLevel) ([]model.Project, error) {
	query := `SELECT id, title, description, difficulty_level, estimated_time_weeks,
		technologies_used, skills_practiced, industry_relevance, detailed_steps,
		expected_outcomes FROM projects`
	args := []any{}
	if difficulty != "" {
		query += ` WHERE difficulty_level = ?`
		args = append(args, string(difficulty))
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		var tech, practiced, relevance, steps, outcomes string
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.DifficultyLevel,
			&p.EstimatedTimeWeeks, &tech, &practiced, &relevance, &steps, &outcomes); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		p.TechnologiesUsed = decodeStrings(tech)
		p.SkillsPracticed = decodeStrings(practiced)
		p.IndustryRelevance = decodeSpecs(relevance)
		p.DetailedSteps = decodeStrings(steps)
		p.ExpectedOutcomes = decodeStrings(outcomes)
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	sortByID(projects, func(v model.Project) string { return v.ID })
	return projects, nil
}

// Roles returns all roles, optionally filtered by level.
func (s *Store) Roles(ctx context.Context, level model.DifficultyLevel) ([]model.Role, error) {
	query := `SELECT id, title, description, level, salary_range, responsibilities,
		required_skills, industry_demand, growth_potential FROM roles`
	args := []any{}
	if level != "" {
		query += ` WHERE level = ?`
		args = append(args, string(level))
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying roles: %w", err)
	}
	defer rows.Close()

	var roles []model.Role
	for rows.Next() {
		var r model.Role
		var resp, required string
		if err := rows.Scan(&r.ID, &r.Title, &r.Description, &r.Level, &r.SalaryRange,
			&resp, &required, &r.IndustryDemand, &r.GrowthPotential); err != nil {
			return nil, fmt.Errorf("scanning role: %w", err)
		}
		r.Responsibilities = decodeStrings(resp)
		r.RequiredSkills = decodeStrings(required)
		roles = append(roles, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating roles: %w", err)
	}
	sortByID(roles, func(v model.Role) string { return v.ID })
	return roles, nil
}

// Insights returns industry insights, optionally filtered by specialization.
func (s *Store) Insights(ctx context.Context, spec model.SpecializationArea) ([]model.IndustryInsight, error) {
	query := `SELECT id, specialization, market_size, growth_rate, key_trends,
		major_companies, future_outlook, entry_barriers, avg_salary FROM industry_insights`
	args := []any{}
	if spec != "" {
		query += ` WHERE specialization = ?`
		args = append(args, string(spec))
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying insights: %w", err)
	}
	defer rows.Close()

	var insights []model.IndustryInsight
	for rows.Next() {
		var in model.IndustryInsight
		var trends, companies string
		if err := rows.Scan(&in.ID, &in.Specialization, &in.MarketSize, &in.GrowthRate,
			&trends, &companies, &in.FutureOutlook, &in.EntryBarriers, &in.AvgSalary); err != nil {
			return nil, fmt.Errorf("scanning insight: %w", err)
		}
		in.KeyTrends = decodeStrings(trends)
		in.MajorCompanies = decodeStrings(companies)
		insights = append(insights, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating insights: %w", err)
	}
	sortByID(insights, func(v model.IndustryInsight) string { return v.ID })
	return insights, nil
}

// Seed replaces the whole catalog with the given dataset atomically.
// Records without an id get a generated UUID.
func (s *Store) Seed(ctx context.Context, ds *Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed tx: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"roadmap_levels", "skills", "courses", "projects", "roles", "industry_insights"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for i := range ds.Skills {
		sk := &ds.Skills[i]
		ensureID(&sk.ID)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO skills (id, name, description, category, difficulty_level, estimated_time_hours)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			sk.ID, sk.Name, sk.Description, sk.Category, string(sk.DifficultyLevel), sk.EstimatedTimeHours); err != nil {
			return fmt.Errorf("inserting skill %s: %w", sk.ID, err)
		}
	}

	for i := range ds.Courses {
		c := &ds.Courses[i]
		ensureID(&c.ID)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO courses (id, title, description, provider, duration_weeks,
				difficulty_level, cost, url, skills_covered, prerequisites)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.Title, c.Description, c.Provider, c.DurationWeeks,
			string(c.DifficultyLevel), c.Cost, c.URL,
			encodeStrings(c.SkillsCovered), encodeStrings(c.Prerequisites)); err != nil {
			return fmt.Errorf("inserting course %s: %w", c.ID, err)
		}
	}

	for i := range ds.Projects {
		p := &ds.Projects[i]
		ensureID(&p.ID)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO projects (id, title, description, difficulty_level,
				estimated_time_weeks, technologies_used, skills_practiced,
				industry_relevance, detailed_steps, expected_outcomes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Title, p.Description, string(p.DifficultyLevel),
			p.EstimatedTimeWeeks, encodeStrings(p.TechnologiesUsed),
			encodeStrings(p.SkillsPracticed), encodeSpecs(p.IndustryRelevance),
			encodeStrings(p.DetailedSteps), encodeStrings(p.ExpectedOutcomes)); err != nil {
			return fmt.Errorf("inserting project %s: %w", p.ID, err)
		}
	}

	for i := range ds.Roles {
		r := &ds.Roles[i]
		ensureID(&r.ID)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO roles (id, title, description, level, salary_range,
				responsibilities, required_skills, industry_demand, growth_potential)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Title, r.Description, string(r.Level), r.SalaryRange,
			encodeStrings(r.Responsibilities), encodeStrings(r.RequiredSkills),
			r.IndustryDemand, r.GrowthPotential); err != nil {
			return fmt.Errorf("inserting role %s: %w", r.ID, err)
		}
	}

	for i := range ds.Levels {
		lv := &ds.Levels[i]
		ensureID(&lv.ID)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO roadmap_levels (id, level_number, title, description,
				difficulty_level, estimated_duration_months, skills_to_develop,
				recommended_courses, projects_to_complete, roles_available,
				specialization_paths, milestone_achievements)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			lv.ID, lv.LevelNumber, lv.Title, lv.Description,
			string(lv.DifficultyLevel), lv.EstimatedDurationMonths,
			encodeStrings(lv.SkillsToDevelop), encodeStrings(lv.RecommendedCourses),
			encodeStrings(lv.ProjectsToComplete), encodeStrings(lv.RolesAvailable),
			encodeSpecs(lv.SpecializationPaths), encodeStrings(lv.MilestoneAchievements)); err != nil {
			return fmt.Errorf("inserting level %s: %w", lv.ID, err)
		}
	}

	for i := range ds.Insights {
		in := &ds.Insights[i]
		ensureID(&in.ID)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO industry_insights (id, specialization, market_size,
				growth_rate, key_trends, major_companies, future_outlook,
				entry_barriers, avg_salary)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			in.ID, string(in.Specialization), in.MarketSize, in.GrowthRate,
			encodeStrings(in.KeyTrends), encodeStrings(in.MajorCompanies),
			in.FutureOutlook, in.EntryBarriers, in.AvgSalary); err != nil {
			return fmt.Errorf("inserting insight %s: %w", in.ID, err)
		}
	}

	return tx.Commit()
}

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.New().String()
	}
}

func sortByID[T any](records []T, id func(T) string) {
	sort.Slice(records, func(i, j int) bool { return id(records[i]) < id(records[j]) })
}

func encodeStrings(v []string) string {
	if len(v) == 0 {
		return "[]"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func encodeSpecs(v []model.SpecializationArea) string {
	out := make([]string, len(v))
	for i, s := range v {
		out[i] = string(s)
	}
	return encodeStrings(out)
}

func decodeStrings(s string) []string {
	if s == "" || s == "null" || s == "[]" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil
	}
	return out
}

func decodeSpecs(s string) []model.SpecializationArea {
	raw := decodeStrings(s)
	if raw == nil {
		return nil
	}
	out := make([]model.SpecializationArea, len(raw))
	for i, v := range raw {
		out[i] = model.SpecializationArea(v)
	}
	return out
}
