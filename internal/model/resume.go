package model

import (
	"strings"

	"github.com/google/uuid"
)

// Go models for the CV record edited in a session and rendered by the
// preview templates.

type PersonalDetails struct {
	FullName       string `json:"fullName"`
	JobTitle       string `json:"jobTitle"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	LinkedIn       string `json:"linkedin"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

type Experience struct {
	ID          string `json:"id"`
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type Education struct {
	ID        string `json:"id"`
	Degree    string `json:"degree"`
	School    string `json:"school"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type CV struct {
	PersonalDetails PersonalDetails `json:"personalDetails"`
	Summary         string          `json:"summary"`
	Experience      []Experience    `json:"experience"`
	Education       []Education     `json:"education"`
	Skills          string          `json:"skills"`
}

// NewID returns a list-editing identifier for an Experience or Education entry.
func NewID() string { return uuid.NewString() }

// Clone returns a deep copy so callers can read a record while it is edited.
func (cv CV) Clone() CV {
	out := cv
	out.Experience = append([]Experience(nil), cv.Experience...)
	out.Education = append([]Education(nil), cv.Education...)
	return out
}

// SkillList splits the comma-separated skills string, dropping empty items.
func (cv CV) SkillList() []string {
	var out []string
	for _, s := range strings.Split(cv.Skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// EnsureIDs assigns ids to entries that arrived without one, e.g. from an
// imported JSON document, and replaces duplicates so ids stay unique within
// each list.
func (cv *CV) EnsureIDs() {
	seen := map[string]bool{}
	for i := range cv.Experience {
		if id := cv.Experience[i].ID; id == "" || seen[id] {
			cv.Experience[i].ID = NewID()
		}
		seen[cv.Experience[i].ID] = true
	}
	seen = map[string]bool{}
	for i := range cv.Education {
		if id := cv.Education[i].ID; id == "" || seen[id] {
			cv.Education[i].ID = NewID()
		}
		seen[cv.Education[i].ID] = true
	}
}

type Template string

const (
	TemplateClassic      Template = "classic"
	TemplateModern       Template = "modern"
	TemplateProfessional Template = "professional"
)

func (t Template) Valid() bool {
	switch t {
	case TemplateClassic, TemplateModern, TemplateProfessional:
		return true
	}
	return false
}

type FontFamily string

const (
	FontRoboto       FontFamily = "roboto"
	FontLato         FontFamily = "lato"
	FontMontserrat   FontFamily = "montserrat"
	FontMerriweather FontFamily = "merriweather"
)

func (f FontFamily) Valid() bool {
	switch f {
	case FontRoboto, FontLato, FontMontserrat, FontMerriweather:
		return true
	}
	return false
}

// Palette holds the accent colours offered by the editor: taupe, teal,
// indigo, pink, stone.
var Palette = []string{"#a58a74", "#0d9488", "#4f46e5", "#be185d", "#57534e"}

// Options are the display choices that do not belong to the record itself.
type Options struct {
	Template    Template   `json:"template"`
	Font        FontFamily `json:"font"`
	AccentColor string     `json:"accentColor"`
}

func DefaultOptions() Options {
	return Options{Template: TemplateProfessional, Font: FontLato, AccentColor: Palette[0]}
}
