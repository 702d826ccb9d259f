package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"cv-builder/internal/model"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func singleEntryCV() *model.CV {
	return &model.CV{
		PersonalDetails: model.PersonalDetails{FullName: "Jane Q. Public"},
		Experience: []model.Experience{{
			ID: "exp-1", JobTitle: "Engineer", Company: "Acme", StartDate: "2020-01", EndDate: "Present", Description: "• Built things",
		}},
		Education: []model.Education{{
			ID: "edu-1", Degree: "BSc", School: "State U", StartDate: "2015-09", EndDate: "2019-06",
		}},
	}
}

func TestAddRemoveExperienceRoundTrip(t *testing.T) {
	s := NewStore().Create(singleEntryCV())
	before := s.Snapshot().CV.Experience

	added := s.AddExperience()
	if added.ID == "" {
		t.Fatalf("AddExperience() returned empty id")
	}
	exp := s.Snapshot().CV.Experience
	if len(exp) != 2 || exp[1].ID != added.ID {
		t.Fatalf("new entry not appended: %+v", exp)
	}

	if err := s.RemoveExperience(added.ID); err != nil {
		t.Fatalf("RemoveExperience() error = %v", err)
	}
	if diff := cmp.Diff(before, s.Snapshot().CV.Experience); diff != "" {
		t.Fatalf("experience not restored (-want +got):\n%s", diff)
	}
}

func TestAddRemoveEducationRoundTrip(t *testing.T) {
	s := NewStore().Create(singleEntryCV())
	before := s.Snapshot().CV.Education

	added := s.AddEducation()
	if err := s.RemoveEducation(added.ID); err != nil {
		t.Fatalf("RemoveEducation() error = %v", err)
	}
	if diff := cmp.Diff(before, s.Snapshot().CV.Education); diff != "" {
		t.Fatalf("education not restored (-want +got):\n%s", diff)
	}
}

func TestEditsPreserveOrder(t *testing.T) {
	s := NewStore().Create(&model.CV{})
	a := s.AddExperience()
	b := s.AddExperience()
	c := s.AddExperience()

	if _, err := s.UpdateExperience(b.ID, ExperiencePatch{Company: StringPtr("Beta")}); err != nil {
		t.Fatalf("UpdateExperience() error = %v", err)
	}
	if err := s.RemoveExperience(a.ID); err != nil {
		t.Fatalf("RemoveExperience() error = %v", err)
	}
	d := s.AddExperience()

	var ids []string
	for _, e := range s.Snapshot().CV.Experience {
		ids = append(ids, e.ID)
	}
	if diff := cmp.Diff([]string{b.ID, c.ID, d.ID}, ids); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if got := s.Snapshot().CV.Experience[0].Company; got != "Beta" {
		t.Fatalf("company = %q, want Beta", got)
	}
}

func TestUnknownEntry(t *testing.T) {
	s := NewStore().Create(singleEntryCV())
	before := s.Snapshot().CV

	if err := s.RemoveExperience("missing"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("RemoveExperience() error = %v", err)
	}
	if _, err := s.UpdateEducation("missing", EducationPatch{}); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("UpdateEducation() error = %v", err)
	}
	if err := s.RemoveEducation("missing"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("RemoveEducation() error = %v", err)
	}
	if diff := cmp.Diff(before, s.Snapshot().CV); diff != "" {
		t.Fatalf("record changed (-want +got):\n%s", diff)
	}
}

func TestPatchesLeaveNilFields(t *testing.T) {
	s := NewStore().Create(singleEntryCV())
	s.SetPersonalDetails(PersonalPatch{Email: StringPtr("jane@example.com")})
	got, err := s.UpdateEducation("edu-1", EducationPatch{School: StringPtr("Tech U")})
	if err != nil {
		t.Fatalf("UpdateEducation() error = %v", err)
	}
	if got.Degree != "BSc" || got.School != "Tech U" {
		t.Fatalf("education = %+v", got)
	}
	pd := s.Snapshot().CV.PersonalDetails
	if pd.FullName != "Jane Q. Public" || pd.Email != "jane@example.com" {
		t.Fatalf("personal details = %+v", pd)
	}
}

func TestPhotoAndScalars(t *testing.T) {
	s := NewStore().Create(singleEntryCV())
	s.SetPhoto("data:image/png;base64,AAAA")
	s.SetSummary("summary")
	s.SetSkills("Go, SQL")
	snap := s.Snapshot()
	if snap.CV.PersonalDetails.ProfilePicture == "" || snap.CV.Summary != "summary" || snap.CV.Skills != "Go, SQL" {
		t.Fatalf("snapshot = %+v", snap.CV)
	}
	s.RemovePhoto()
	if s.Snapshot().CV.PersonalDetails.ProfilePicture != "" {
		t.Fatalf("photo not removed")
	}
}

func TestSetOptions(t *testing.T) {
	s := NewStore().Create(nil)
	if s.Snapshot().Options != model.DefaultOptions() {
		t.Fatalf("new session options = %+v", s.Snapshot().Options)
	}
	o := model.Options{Template: model.TemplateModern, Font: model.FontRoboto, AccentColor: "#0d9488"}
	if err := s.SetOptions(o); err != nil {
		t.Fatalf("SetOptions() error = %v", err)
	}
	if err := s.SetOptions(model.Options{Template: "x"}); !errors.Is(err, model.ErrInvalidOptions) {
		t.Fatalf("SetOptions(invalid) error = %v", err)
	}
	if s.Snapshot().Options != o {
		t.Fatalf("options = %+v, want %+v", s.Snapshot().Options, o)
	}
}

func TestEnhanceFlagsArePerField(t *testing.T) {
	s := NewStore().Create(singleEntryCV())
	if err := s.BeginEnhance(FieldSummary); err != nil {
		t.Fatalf("BeginEnhance() error = %v", err)
	}
	if err := s.BeginEnhance(FieldSummary); !errors.Is(err, ErrEnhanceInFlight) {
		t.Fatalf("second BeginEnhance() error = %v", err)
	}
	if err := s.BeginEnhance(ExperienceDescriptionField("exp-1")); err != nil {
		t.Fatalf("other field BeginEnhance() error = %v", err)
	}
	if diff := cmp.Diff([]string{"experience/exp-1/description", "summary"}, s.Snapshot().Enhancing); diff != "" {
		t.Fatalf("enhancing mismatch (-want +got):\n%s", diff)
	}
	s.EndEnhance(FieldSummary)
	if err := s.BeginEnhance(FieldSummary); err != nil {
		t.Fatalf("BeginEnhance() after End error = %v", err)
	}
}

func TestStore(t *testing.T) {
	st := NewStore()
	s := st.Create(nil)
	if s.Snapshot().CV.PersonalDetails.FullName != "Samantha Williams" {
		t.Fatalf("nil CV should start from the sample")
	}
	got, err := st.Get(s.ID)
	if err != nil || got != s {
		t.Fatalf("Get() = %v, %v", got, err)
	}
	if err := st.Delete(s.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := st.Get(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Get() after delete error = %v", err)
	}
	if err := st.Delete(uuid.New()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Delete(unknown) error = %v", err)
	}
}

func TestCreateCopiesInput(t *testing.T) {
	cv := singleEntryCV()
	s := NewStore().Create(cv)
	cv.Experience[0].Company = "mutated"
	if s.Snapshot().CV.Experience[0].Company != "Acme" {
		t.Fatalf("session shares caller's slice")
	}
}

func TestPruneIdle(t *testing.T) {
	st := NewStore()
	idle := st.Create(nil)
	exporting := st.Create(nil)
	enhancing := st.Create(nil)
	if err := exporting.beginExport(); err != nil {
		t.Fatalf("beginExport() error = %v", err)
	}
	if err := enhancing.BeginEnhance(FieldSummary); err != nil {
		t.Fatalf("BeginEnhance() error = %v", err)
	}

	now := time.Now().UTC()
	if n := st.PruneIdle(now, time.Hour); n != 0 {
		t.Fatalf("PruneIdle() removed %d fresh sessions", n)
	}

	later := now.Add(2 * time.Hour)
	if n := st.PruneIdle(later, time.Hour); n != 1 {
		t.Fatalf("PruneIdle() removed %d, want 1", n)
	}
	if _, err := st.Get(idle.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("idle session still present: %v", err)
	}
	if st.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 busy sessions kept", st.Len())
	}

	exporting.endExport()
	enhancing.EndEnhance(FieldSummary)
	if n := st.PruneIdle(later, time.Hour); n != 2 {
		t.Fatalf("PruneIdle() removed %d, want 2", n)
	}
}

func TestGetKeepsSessionAlive(t *testing.T) {
	st := NewStore()
	s := st.Create(nil)
	s.touch(time.Now().UTC().Add(-3 * time.Hour))

	if _, err := st.Get(s.ID); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if n := st.PruneIdle(time.Now().UTC(), time.Hour); n != 0 {
		t.Fatalf("PruneIdle() removed a session seen just now")
	}
}

func TestRunJanitorStopsOnCancel(t *testing.T) {
	st := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		st.RunJanitor(ctx, time.Millisecond, time.Hour)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunJanitor did not return after cancel")
	}
}
