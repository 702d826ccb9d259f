package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSkillList(t *testing.T) {
	tests := []struct {
		name   string
		skills string
		want   []string
	}{
		{name: "empty", skills: "", want: nil},
		{name: "trims", skills: " Go ,  SQL,Excel ", want: []string{"Go", "SQL", "Excel"}},
		{name: "drops blanks", skills: "Go,, ,SQL,", want: []string{"Go", "SQL"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := CV{Skills: tt.skills}.SkillList()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("SkillList() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCloneDoesNotShareLists(t *testing.T) {
	cv := SampleCV()
	cp := cv.Clone()
	cp.Experience[0].Company = "changed"
	cp.Education = append(cp.Education, Education{ID: NewID()})

	if cv.Experience[0].Company == "changed" {
		t.Fatalf("clone shares experience backing array")
	}
	if len(cv.Education) != 1 {
		t.Fatalf("original education len = %d, want 1", len(cv.Education))
	}
}

func TestSampleCVIDsUnique(t *testing.T) {
	cv := SampleCV()
	seen := map[string]bool{}
	for _, e := range cv.Experience {
		if e.ID == "" || seen[e.ID] {
			t.Fatalf("experience id %q empty or duplicated", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestEnsureIDs(t *testing.T) {
	cv := CV{Experience: []Experience{{JobTitle: "a"}, {ID: "keep"}}, Education: []Education{{}}}
	cv.EnsureIDs()
	if cv.Experience[0].ID == "" || cv.Education[0].ID == "" {
		t.Fatalf("missing ids were not assigned: %+v", cv)
	}
	if cv.Experience[1].ID != "keep" {
		t.Fatalf("existing id overwritten: %q", cv.Experience[1].ID)
	}

	dup := CV{Education: []Education{{ID: "x", School: "a"}, {ID: "x", School: "b"}}}
	dup.EnsureIDs()
	if dup.Education[0].ID != "x" || dup.Education[1].ID == "x" {
		t.Fatalf("duplicate ids not resolved: %+v", dup.Education)
	}
}

func TestValidateJSON(t *testing.T) {
	sample, err := json.Marshal(SampleCV())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := ValidateJSON(sample); err != nil {
		t.Fatalf("sample CV should validate: %v", err)
	}

	bad := []string{
		`{"summary": "x"}`,
		`{"personalDetails": {"fullName": "A"}, "summary": "", "experience": [{"startDate": "July 2020"}], "education": [], "skills": ""}`,
		`{"personalDetails": {"fullName": "A", "profilePicture": "ftp://x"}, "summary": "", "experience": [], "education": [], "skills": ""}`,
	}
	for _, doc := range bad {
		if err := ValidateJSON([]byte(doc)); err == nil {
			t.Fatalf("expected validation error for %s", doc)
		}
	}
}

const partialCV = `{
	"personalDetails": {"fullName": "Jane Q. Public"},
	"summary": "",
	"experience": [{"jobTitle": "Dev"}],
	"education": [],
	"skills": "Go"
}`

func TestDecodeCVStartsFromEmptyRecord(t *testing.T) {
	cv, err := DecodeCV([]byte(partialCV))
	if err != nil {
		t.Fatalf("DecodeCV() error = %v", err)
	}
	want := PersonalDetails{FullName: "Jane Q. Public"}
	if diff := cmp.Diff(want, cv.PersonalDetails); diff != "" {
		t.Fatalf("personal details mismatch (-want +got):\n%s", diff)
	}
	if len(cv.Experience) != 1 {
		t.Fatalf("experience len = %d, want 1", len(cv.Experience))
	}
	e := cv.Experience[0]
	if e.ID == "" {
		t.Fatal("decoded entry has no id")
	}
	e.ID = ""
	if diff := cmp.Diff(Experience{JobTitle: "Dev"}, e); diff != "" {
		t.Fatalf("experience mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeCVRejectsInvalid(t *testing.T) {
	if _, err := DecodeCV([]byte(`{"summary": "x"}`)); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestValidateMapAcceptsPresent(t *testing.T) {
	m := map[string]interface{}{
		"personalDetails": map[string]interface{}{"fullName": "A"},
		"summary":         "",
		"experience":      []interface{}{map[string]interface{}{"startDate": "2020-01", "endDate": "present"}},
		"education":       []interface{}{},
		"skills":          "",
	}
	if err := ValidateMap(m); err != nil {
		t.Fatalf("ValidateMap() = %v", err)
	}
}

func TestValidateOptions(t *testing.T) {
	if err := ValidateOptions(DefaultOptions()); err != nil {
		t.Fatalf("default options invalid: %v", err)
	}
	cases := []Options{
		{Template: "fancy", Font: FontLato, AccentColor: "#000000"},
		{Template: TemplateModern, Font: "comic", AccentColor: "#000000"},
		{Template: TemplateModern, Font: FontLato, AccentColor: "red"},
	}
	for _, o := range cases {
		if err := ValidateOptions(o); !errors.Is(err, ErrInvalidOptions) {
			t.Fatalf("ValidateOptions(%+v) = %v, want ErrInvalidOptions", o, err)
		}
	}
}
