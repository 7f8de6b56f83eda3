// Package model defines the roadmap records as delivered by the API.
//
// These are plain read-only records: the client never derives or mutates
// them, it just holds them in view state until the next fetch.
package model

// DifficultyLevel is the four-step progression scale used across levels,
// skills, courses, projects and roles.
type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
	DifficultyExpert       DifficultyLevel = "expert"
)

// Valid reports whether d is one of the four known difficulty levels.
func (d DifficultyLevel) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyExpert:
		return true
	}
	return false
}

// Rank returns the ordinal position of the difficulty (beginner=0 .. expert=3),
// or -1 for unknown values. Used for sorting and progress math only.
func (d DifficultyLevel) Rank() int {
	switch d {
	case DifficultyBeginner:
		return 0
	case DifficultyIntermediate:
		return 1
	case DifficultyAdvanced:
		return 2
	case DifficultyExpert:
		return 3
	default:
		return -1
	}
}

// Label returns a human-readable title-cased label.
func (d DifficultyLevel) Label() string {
	switch d {
	case DifficultyBeginner:
		return "Beginner"
	case DifficultyIntermediate:
		return "Intermediate"
	case DifficultyAdvanced:
		return "Advanced"
	case DifficultyExpert:
		return "Expert"
	default:
		return string(d)
	}
}

// Difficulties lists all difficulty levels in progression order.
func Difficulties() []DifficultyLevel {
	return []DifficultyLevel{
		DifficultyBeginner,
		DifficultyIntermediate,
		DifficultyAdvanced,
		DifficultyExpert,
	}
}

// SpecializationArea tags a roadmap path or insight with an IoT market sector.
type SpecializationArea string

const (
	SpecIndustrial  SpecializationArea = "industrial_iot"
	SpecSmartCity   SpecializationArea = "smart_cities"
	SpecHealthcare  SpecializationArea = "healthcare_iot"
	SpecAutomotive  SpecializationArea = "automotive_iot"
	SpecConsumer    SpecializationArea = "consumer_iot"
	SpecAgriculture SpecializationArea = "agriculture_iot"
)

// Valid reports whether s is one of the known specialization areas.
func (s SpecializationArea) Valid() bool {
	switch s {
	case SpecIndustrial, SpecSmartCity, SpecHealthcare, SpecAutomotive, SpecConsumer, SpecAgriculture:
		return true
	}
	return false
}

// Label returns a display name for the specialization area.
func (s SpecializationArea) Label() string {
	switch s {
	case SpecIndustrial:
		return "Industrial IoT"
	case SpecSmartCity:
		return "Smart Cities"
	case SpecHealthcare:
		return "Healthcare IoT"
	case SpecAutomotive:
		return "Automotive IoT"
	case SpecConsumer:
		return "Consumer IoT"
	case SpecAgriculture:
		return "Agriculture IoT"
	default:
		return string(s)
	}
}

// RoadmapLevel is one stage in the learning progression.
type RoadmapLevel struct {
	ID                      string               `json:"id" yaml:"id"`
	LevelNumber             int                  `json:"level_number" yaml:"level_number"`
	Title                   string               `json:"title" yaml:"title"`
	Description             string               `json:"description" yaml:"description"`
	DifficultyLevel         DifficultyLevel      `json:"difficulty_level" yaml:"difficulty_level"`
	EstimatedDurationMonths int                  `json:"estimated_duration_months" yaml:"estimated_duration_months"`
	SkillsToDevelop         []string             `json:"skills_to_develop" yaml:"skills_to_develop"`
	RecommendedCourses      []string             `json:"recommended_courses" yaml:"recommended_courses"`
	ProjectsToComplete      []string             `json:"projects_to_complete" yaml:"projects_to_complete"`
	RolesAvailable          []string             `json:"roles_available" yaml:"roles_available"`
	SpecializationPaths     []SpecializationArea `json:"specialization_paths" yaml:"specialization_paths"`
	MilestoneAchievements   []string             `json:"milestone_achievements" yaml:"milestone_achievements"`
}

// Skill is a single competency with a learning-time estimate.
type Skill struct {
	ID                 string          `json:"id" yaml:"id"`
	Name               string          `json:"name" yaml:"name"`
	Description        string          `json:"description" yaml:"description"`
	Category           string          `json:"category" yaml:"category"` // technical, soft, business
	DifficultyLevel    DifficultyLevel `json:"difficulty_level" yaml:"difficulty_level"`
	EstimatedTimeHours int             `json:"estimated_time_hours" yaml:"estimated_time_hours"`
}

// Course is a recommended training course from an external provider.
type Course struct {
	ID              string          `json:"id" yaml:"id"`
	Title           string          `json:"title" yaml:"title"`
	Description     string          `json:"description" yaml:"description"`
	Provider        string          `json:"provider" yaml:"provider"`
	DurationWeeks   int             `json:"duration_weeks" yaml:"duration_weeks"`
	DifficultyLevel DifficultyLevel `json:"difficulty_level" yaml:"difficulty_level"`
	Cost            string          `json:"cost,omitempty" yaml:"cost,omitempty"`
	URL             string          `json:"url,omitempty" yaml:"url,omitempty"`
	SkillsCovered   []string        `json:"skills_covered" yaml:"skills_covered"`
	Prerequisites   []string        `json:"prerequisites" yaml:"prerequisites"`
}

// Project is a hands-on build recommended for a level.
type Project struct {
	ID                 string               `json:"id" yaml:"id"`
	Title              string               `json:"title" yaml:"title"`
	Description        string               `json:"description" yaml:"description"`
	DifficultyLevel    DifficultyLevel      `json:"difficulty_level" yaml:"difficulty_level"`
	EstimatedTimeWeeks int                  `json:"estimated_time_weeks" yaml:"estimated_time_weeks"`
	TechnologiesUsed   []string             `json:"technologies_used" yaml:"technologies_used"`
	SkillsPracticed    []string             `json:"skills_practiced" yaml:"skills_practiced"`
	IndustryRelevance  []SpecializationArea `json:"industry_relevance" yaml:"industry_relevance"`
	DetailedSteps      []string             `json:"detailed_steps" yaml:"detailed_steps"`
	ExpectedOutcomes   []string             `json:"expected_outcomes" yaml:"expected_outcomes"`
}

// Role is a career position reachable at a level.
type Role struct {
	ID               string          `json:"id" yaml:"id"`
	Title            string          `json:"title" yaml:"title"`
	Description      string          `json:"description" yaml:"description"`
	Level            DifficultyLevel `json:"level" yaml:"level"`
	SalaryRange      string          `json:"salary_range" yaml:"salary_range"`
	Responsibilities []string        `json:"responsibilities" yaml:"responsibilities"`
	RequiredSkills   []string        `json:"required_skills" yaml:"required_skills"`
	IndustryDemand   string          `json:"industry_demand" yaml:"industry_demand"` // high, medium, low
	GrowthPotential  string          `json:"growth_potential" yaml:"growth_potential"`
}

// IndustryInsight is a descriptive market-sector summary, unrelated to the
// level progression.
type IndustryInsight struct {
	ID             string             `json:"id" yaml:"id"`
	Specialization SpecializationArea `json:"specialization" yaml:"specialization"`
	MarketSize     string             `json:"market_size" yaml:"market_size"`
	GrowthRate     string             `json:"growth_rate" yaml:"growth_rate"`
	KeyTrends      []string           `json:"key_trends" yaml:"key_trends"`
	MajorCompanies []string           `json:"major_companies" yaml:"major_companies"`
	FutureOutlook  string             `json:"future_outlook" yaml:"future_outlook"`
	EntryBarriers  string             `json:"entry_barriers" yaml:"entry_barriers"`
	AvgSalary      string             `json:"avg_salary" yaml:"avg_salary"`
}

// LevelDetail is the bundle returned for a single level: the level record
// plus its associated skills, courses, projects and roles resolved by id.
type LevelDetail struct {
	Level    RoadmapLevel `json:"level"`
	Skills   []Skill      `json:"skills"`
	Courses  []Course     `json:"courses"`
	Projects []Project    `json:"projects"`
	Roles    []Role       `json:"roles"`
}
