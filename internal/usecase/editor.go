package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"cv-builder/internal/model"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEntryNotFound   = errors.New("entry not found")
	ErrEnhanceInFlight = errors.New("enhancement already in progress for this field")
	ErrExportInFlight  = errors.New("export already in progress")
)

// FieldSummary names the summary field in the editing state.
const FieldSummary = "summary"

// ExperienceDescriptionField names an experience entry's description field.
func ExperienceDescriptionField(id string) string {
	return "experience/" + id + "/description"
}

// editingState is transient: it never leaves the process and is not part of
// the CV record.
type editingState struct {
	enhancing map[string]bool
	exporting bool
}

// Session is one in-memory editing session.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu        sync.Mutex
	cv        model.CV
	opts      model.Options
	editing   editingState
	updatedAt time.Time
	lastSeen  time.Time
}

// Snapshot is a consistent copy of a session for readers.
type Snapshot struct {
	ID        uuid.UUID     `json:"id"`
	CV        model.CV      `json:"cv"`
	Options   model.Options `json:"options"`
	Enhancing []string      `json:"enhancing"`
	Exporting bool          `json:"exporting"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func newSession(cv model.CV) *Session {
	now := time.Now().UTC()
	cv.EnsureIDs()
	return &Session{
		ID:        uuid.New(),
		CreatedAt: now,
		cv:        cv,
		opts:      model.DefaultOptions(),
		editing:   editingState{enhancing: map[string]bool{}},
		updatedAt: now,
		lastSeen:  now,
	}
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	fields := make([]string, 0, len(s.editing.enhancing))
	for f := range s.editing.enhancing {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return Snapshot{
		ID:        s.ID,
		CV:        s.cv.Clone(),
		Options:   s.opts,
		Enhancing: fields,
		Exporting: s.editing.exporting,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.updatedAt,
	}
}

// edit runs fn under the session lock and bumps the update time.
func (s *Session) edit(fn func(cv *model.CV) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(&s.cv); err != nil {
		return err
	}
	s.updatedAt = time.Now().UTC()
	return nil
}

func (s *Session) SetPersonalDetails(p PersonalPatch) {
	_ = s.edit(func(cv *model.CV) error {
		p.apply(&cv.PersonalDetails)
		return nil
	})
}

// SetPhoto stores the profile picture as a data URL or http(s) URL.
func (s *Session) SetPhoto(url string) {
	_ = s.edit(func(cv *model.CV) error {
		cv.PersonalDetails.ProfilePicture = url
		return nil
	})
}

func (s *Session) RemovePhoto() { s.SetPhoto("") }

func (s *Session) SetSummary(text string) {
	_ = s.edit(func(cv *model.CV) error {
		cv.Summary = text
		return nil
	})
}

func (s *Session) SetSkills(skills string) {
	_ = s.edit(func(cv *model.CV) error {
		cv.Skills = skills
		return nil
	})
}

func (s *Session) SetOptions(o model.Options) error {
	if err := model.ValidateOptions(o); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = o
	s.updatedAt = time.Now().UTC()
	return nil
}

// AddExperience appends an empty entry with a fresh id.
func (s *Session) AddExperience() model.Experience {
	e := model.Experience{ID: model.NewID()}
	_ = s.edit(func(cv *model.CV) error {
		cv.Experience = append(cv.Experience, e)
		return nil
	})
	return e
}

func (s *Session) UpdateExperience(id string, p ExperiencePatch) (model.Experience, error) {
	var out model.Experience
	err := s.edit(func(cv *model.CV) error {
		for i := range cv.Experience {
			if cv.Experience[i].ID == id {
				p.apply(&cv.Experience[i])
				out = cv.Experience[i]
				return nil
			}
		}
		return ErrEntryNotFound
	})
	return out, err
}

func (s *Session) RemoveExperience(id string) error {
	return s.edit(func(cv *model.CV) error {
		for i := range cv.Experience {
			if cv.Experience[i].ID == id {
				cv.Experience = append(cv.Experience[:i:i], cv.Experience[i+1:]...)
				return nil
			}
		}
		return ErrEntryNotFound
	})
}

func (s *Session) AddEducation() model.Education {
	e := model.Education{ID: model.NewID()}
	_ = s.edit(func(cv *model.CV) error {
		cv.Education = append(cv.Education, e)
		return nil
	})
	return e
}

func (s *Session) UpdateEducation(id string, p EducationPatch) (model.Education, error) {
	var out model.Education
	err := s.edit(func(cv *model.CV) error {
		for i := range cv.Education {
			if cv.Education[i].ID == id {
				p.apply(&cv.Education[i])
				out = cv.Education[i]
				return nil
			}
		}
		return ErrEntryNotFound
	})
	return out, err
}

func (s *Session) RemoveEducation(id string) error {
	return s.edit(func(cv *model.CV) error {
		for i := range cv.Education {
			if cv.Education[i].ID == id {
				cv.Education = append(cv.Education[:i:i], cv.Education[i+1:]...)
				return nil
			}
		}
		return ErrEntryNotFound
	})
}

// BeginEnhance marks field as having a request in flight. It fails if one
// is already outstanding for the same field; other fields are independent.
func (s *Session) BeginEnhance(field string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing.enhancing[field] {
		return ErrEnhanceInFlight
	}
	s.editing.enhancing[field] = true
	return nil
}

func (s *Session) EndEnhance(field string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.editing.enhancing, field)
}

func (s *Session) beginExport() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing.exporting {
		return ErrExportInFlight
	}
	s.editing.exporting = true
	return nil
}

func (s *Session) endExport() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing.exporting = false
}

// idle reports whether the session has not been looked up since cutoff and
// has nothing in flight.
func (s *Session) idle(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(cutoff) && !s.editing.exporting && len(s.editing.enhancing) == 0
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// Store keeps sessions in memory. Sessions live until deleted or until
// PruneIdle drops them; nothing survives a restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewStore() *Store {
	return &Store{sessions: map[uuid.UUID]*Session{}}
}

// Create starts a session from cv, or from the sample CV when cv is nil.
func (st *Store) Create(cv *model.CV) *Session {
	var s *Session
	if cv == nil {
		s = newSession(model.SampleCV())
	} else {
		s = newSession(cv.Clone())
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session and marks it as seen.
func (st *Store) Get(id uuid.UUID) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(time.Now().UTC())
	return s, nil
}

func (st *Store) Delete(id uuid.UUID) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(st.sessions, id)
	return nil
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// PruneIdle deletes sessions not looked up for maxIdle before now, skipping
// sessions with an export or enhancement in flight. It returns the number
// of sessions removed.
func (st *Store) PruneIdle(now time.Time, maxIdle time.Duration) int {
	cutoff := now.Add(-maxIdle)
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, s := range st.sessions {
		if s.idle(cutoff) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// RunJanitor prunes idle sessions every interval until ctx is done.
func (st *Store) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	if interval <= 0 || maxIdle <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := st.PruneIdle(now.UTC(), maxIdle); n > 0 {
				slog.Info("pruned idle sessions", "count", n, "remaining", st.Len())
			}
		}
	}
}
