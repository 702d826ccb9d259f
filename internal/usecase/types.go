package usecase

import "cv-builder/internal/model"

// PersonalPatch carries the personal-detail fields a client wants to change.
// Nil fields are left untouched.
type PersonalPatch struct {
	FullName *string `json:"fullName"`
	JobTitle *string `json:"jobTitle"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	LinkedIn *string `json:"linkedin"`
}

func (p PersonalPatch) apply(d *model.PersonalDetails) {
	set(&d.FullName, p.FullName)
	set(&d.JobTitle, p.JobTitle)
	set(&d.Email, p.Email)
	set(&d.Phone, p.Phone)
	set(&d.Address, p.Address)
	set(&d.LinkedIn, p.LinkedIn)
}

type ExperiencePatch struct {
	JobTitle    *string `json:"jobTitle"`
	Company     *string `json:"company"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Description *string `json:"description"`
}

func (p ExperiencePatch) apply(e *model.Experience) {
	set(&e.JobTitle, p.JobTitle)
	set(&e.Company, p.Company)
	set(&e.StartDate, p.StartDate)
	set(&e.EndDate, p.EndDate)
	set(&e.Description, p.Description)
}

type EducationPatch struct {
	Degree    *string `json:"degree"`
	School    *string `json:"school"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

func (p EducationPatch) apply(e *model.Education) {
	set(&e.Degree, p.Degree)
	set(&e.School, p.School)
	set(&e.StartDate, p.StartDate)
	set(&e.EndDate, p.EndDate)
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// StringPtr is a convenience for building patches.
func StringPtr(s string) *string { return &s }
