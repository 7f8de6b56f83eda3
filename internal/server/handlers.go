package server

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rvanmaanen/skillpath/internal/store"
	"github.com/rvanmaanen/skillpath/pkg/model"
	"github.com/rvanmaanen/skillpath/pkg/version"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"message": "IoT Career Roadmap API",
		"version": version.Version,
	})
}

// handleRoadmap returns all levels ordered by level number. A fresh
// database gets the built-in catalog on first read.
func (s *Server) handleRoadmap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	seeded, err := s.store.SeedIfEmpty(ctx)
	if err != nil {
		s.internalError(w, "seeding catalog", err)
		return
	}
	if seeded {
		s.logger.Info("seeded empty catalog with built-in dataset")
	}
	levels, err := s.store.Levels(ctx)
	if err != nil {
		s.internalError(w, "listing levels", err)
		return
	}
	if levels == nil {
		levels = []model.RoadmapLevel{}
	}
	s.writeJSON(w, http.StatusOK, levels)
}

func (s *Server) handleLevelDetail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	detail, err := s.store.LevelDetail(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Level not found"})
		return
	}
	if err != nil {
		s.internalError(w, "loading level detail", err)
		return
	}
	s.writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleSkills(w http.ResponseWriter, r *http.Request) {
	difficulty, ok := s.difficultyParam(w, r, "difficulty")
	if !ok {
		return
	}
	skills, err := s.store.Skills(r.Context(), difficulty)
	if err != nil {
		s.internalError(w, "listing skills", err)
		return
	}
	if skills == nil {
		skills = []model.Skill{}
	}
	s.writeJSON(w, http.StatusOK, skills)
}

func (s *Server) handleCourses(w http.ResponseWriter, r *http.Request) {
	difficulty, ok := s.difficultyParam(w, r, "difficulty")
	if !ok {
		return
	}
	courses, err := s.store.Courses(r.Context(), difficulty)
	if err != nil {
		s.internalError(w, "listing courses", err)
		return
	}
	if courses == nil {
		courses = []model.Course{}
	}
	s.writeJSON(w, http.StatusOK, courses)
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	difficulty, ok := s.difficultyParam(w, r, "difficulty")
	if !ok {
		return
	}
	projects, err := s.store.Projects(r.Context(), difficulty)
	if err != nil {
		s.internalError(w, "listing projects", err)
		return
	}
	if projects == nil {
		projects = []model.Project{}
	}
	s.writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleRoles(w http.ResponseWriter, r *http.Request) {
	level, ok := s.difficultyParam(w, r, "level")
	if !ok {
		return
	}
	roles, err := s.store.Roles(r.Context(), level)
	if err != nil {
		s.internalError(w, "listing roles", err)
		return
	}
	if roles == nil {
		roles = []model.Role{}
	}
	s.writeJSON(w, http.StatusOK, roles)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("specialization")
	spec := model.SpecializationArea(raw)
	if raw != "" && !spec.Valid() {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "unknown specialization: " + raw})
		return
	}
	insights, err := s.store.Insights(r.Context(), spec)
	if err != nil {
		s.internalError(w, "listing insights", err)
		return
	}
	if insights == nil {
		insights = []model.IndustryInsight{}
	}
	s.writeJSON(w, http.StatusOK, insights)
}

// difficultyParam parses an optional difficulty query parameter. A bad
// value writes a 400 and returns ok=false.
func (s *Server) difficultyParam(w http.ResponseWriter, r *http.Request, name string) (model.DifficultyLevel, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return "", true
	}
	d := model.DifficultyLevel(raw)
	if !d.Valid() {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "unknown " + name + ": " + raw})
		return "", false
	}
	return d, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", zap.Error(err))
	}
}

func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, zap.Error(err))
	s.writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
}
