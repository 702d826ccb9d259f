package usecase

import (
	"context"
	"errors"
	"log/slog"

	"cv-builder/pkg/ai/formatters"
)

// Enhancer runs AI rewrites of single session fields.
type Enhancer struct {
	summary    formatters.Formatter
	experience formatters.Formatter
}

func NewEnhancer(summary, experience formatters.Formatter) *Enhancer {
	return &Enhancer{summary: summary, experience: experience}
}

// EnhanceSummary rewrites the session summary. The response overwrites
// whatever the field holds when it arrives.
func (e *Enhancer) EnhanceSummary(ctx context.Context, s *Session) (string, error) {
	if err := s.BeginEnhance(FieldSummary); err != nil {
		return "", err
	}
	defer s.EndEnhance(FieldSummary)

	out := e.summary.Format(ctx, s.Snapshot().CV.Summary)
	if out != "" {
		s.SetSummary(out)
	}
	return out, nil
}

// EnhanceExperience rewrites one experience description. If the entry is
// removed while the request is outstanding the result is dropped.
func (e *Enhancer) EnhanceExperience(ctx context.Context, s *Session, id string) (string, error) {
	current, ok := findExperience(s, id)
	if !ok {
		return "", ErrEntryNotFound
	}

	field := ExperienceDescriptionField(id)
	if err := s.BeginEnhance(field); err != nil {
		return "", err
	}
	defer s.EndEnhance(field)

	out := e.experience.Format(ctx, current)
	if out == "" {
		return "", nil
	}
	if _, err := s.UpdateExperience(id, ExperiencePatch{Description: &out}); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			slog.Warn("experience removed during enhancement", "session", s.ID, "entry", id)
			return out, nil
		}
		return "", err
	}
	return out, nil
}

func findExperience(s *Session, id string) (string, bool) {
	for _, e := range s.Snapshot().CV.Experience {
		if e.ID == id {
			return e.Description, true
		}
	}
	return "", false
}
