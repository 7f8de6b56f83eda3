package store

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rvanmaanen/skillpath/pkg/model"
)

// Dataset is the YAML shape of a catalog seed file.
type Dataset struct {
	Levels   []model.RoadmapLevel    `yaml:"levels"`
	Skills   []model.Skill           `yaml:"skills"`
	Courses  []model.Course          `yaml:"courses"`
	Projects []model.Project         `yaml:"projects"`
	Roles    []model.Role            `yaml:"roles"`
	Insights []model.IndustryInsight `yaml:"insights"`
}

//go:embed seed.yaml
var defaultSeed []byte

// DefaultDataset returns the built-in IoT career roadmap catalog.
func DefaultDataset() (*Dataset, error) {
	return parseDataset(defaultSeed)
}

// LoadDataset reads a seed file from disk.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	ds, err := parseDataset(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return ds, nil
}

func parseDataset(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("invalid seed yaml: %w", err)
	}
	if err := validateDataset(&ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// validateDataset rejects records whose enum fields are outside the known
// vocabulary and levels with non-positive numbers.
func validateDataset(ds *Dataset) error {
	for _, lv := range ds.Levels {
		if lv.LevelNumber <= 0 {
			return fmt.Errorf("level %q has invalid level_number %d", lv.Title, lv.LevelNumber)
		}
		if !lv.DifficultyLevel.Valid() {
			return fmt.Errorf("level %q has unknown difficulty %q", lv.Title, lv.DifficultyLevel)
		}
	}
	for _, sk := range ds.Skills {
		if !sk.DifficultyLevel.Valid() {
			return fmt.Errorf("skill %q has unknown difficulty %q", sk.Name, sk.DifficultyLevel)
		}
	}
	for _, c := range ds.Courses {
		if !c.DifficultyLevel.Valid() {
			return fmt.Errorf("course %q has unknown difficulty %q", c.Title, c.DifficultyLevel)
		}
	}
	for _, p := range ds.Projects {
		if !p.DifficultyLevel.Valid() {
			return fmt.Errorf("project %q has unknown difficulty %q", p.Title, p.DifficultyLevel)
		}
	}
	for _, r := range ds.Roles {
		if !r.Level.Valid() {
			return fmt.Errorf("role %q has unknown level %q", r.Title, r.Level)
		}
	}
	return nil
}

// SeedIfEmpty loads the default dataset when no roadmap levels exist yet.
// The first read on a fresh database goes through this.
func (s *Store) SeedIfEmpty(ctx context.Context) (bool, error) {
	empty, err := s.IsEmpty(ctx)
	if err != nil || !empty {
		return false, err
	}
	ds, err := DefaultDataset()
	if err != nil {
		return false, err
	}
	if err := s.Seed(ctx, ds); err != nil {
		return false, err
	}
	return true, nil
}
