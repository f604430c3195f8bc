package dto

import (
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/bootcamp"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/course"
)

// -------- Bootcamps --------

type CreateBootcampRequest struct {
	Name          string   `json:"name" validate:"required,notblank,max=50"`
	Description   string   `json:"description" validate:"required,notblank,max=500"`
	Website       string   `json:"website" validate:"omitempty,url"`
	Phone         string   `json:"phone" validate:"omitempty,max=20"`
	Email         string   `json:"email" validate:"omitempty,email"`
	Address       string   `json:"address" validate:"required,notblank"`
	Careers       []string `json:"careers" validate:"required,min=1,dive,career"`
	AverageRating *float64 `json:"averageRating" validate:"omitempty,min=1,max=5"`
	AverageCost   *float64 `json:"averageCost" validate:"omitempty,min=0"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"jobAssistance"`
	JobGuarantee  bool     `json:"jobGuarantee"`
	AcceptGi      bool     `json:"acceptGi"`
}

func (r *CreateBootcampRequest) Validate() error { return Validate(r) }

func (r *CreateBootcampRequest) Input() bootcamp.Input {
	return bootcamp.Input{
		Name:          r.Name,
		Description:   r.Description,
		Website:       r.Website,
		Phone:         r.Phone,
		Email:         r.Email,
		Address:       r.Address,
		Careers:       r.Careers,
		AverageRating: r.AverageRating,
		AverageCost:   r.AverageCost,
		Housing:       r.Housing,
		JobAssistance: r.JobAssistance,
		JobGuarantee:  r.JobGuarantee,
		AcceptGi:      r.AcceptGi,
	}
}

// UpdateBootcampRequest uses pointers so absent keys leave the stored value alone.
type UpdateBootcampRequest struct {
	Name          *string  `json:"name" validate:"omitempty,notblank,max=50"`
	Description   *string  `json:"description" validate:"omitempty,notblank,max=500"`
	Website       *string  `json:"website" validate:"omitempty,url"`
	Phone         *string  `json:"phone" validate:"omitempty,max=20"`
	Email         *string  `json:"email" validate:"omitempty,email"`
	Address       *string  `json:"address" validate:"omitempty,notblank"`
	Careers       []string `json:"careers" validate:"omitempty,min=1,dive,career"`
	AverageRating *float64 `json:"averageRating" validate:"omitempty,min=1,max=5"`
	AverageCost   *float64 `json:"averageCost" validate:"omitempty,min=0"`
	Housing       *bool    `json:"housing"`
	JobAssistance *bool    `json:"jobAssistance"`
	JobGuarantee  *bool    `json:"jobGuarantee"`
	AcceptGi      *bool    `json:"acceptGi"`
}

func (r *UpdateBootcampRequest) Validate() error { return Validate(r) }

func (r *UpdateBootcampRequest) Patch() bootcamp.Patch {
	return bootcamp.Patch{
		Name:          r.Name,
		Description:   r.Description,
		Website:       r.Website,
		Phone:         r.Phone,
		Email:         r.Email,
		Address:       r.Address,
		Careers:       r.Careers,
		AverageRating: r.AverageRating,
		AverageCost:   r.AverageCost,
		Housing:       r.Housing,
		JobAssistance: r.JobAssistance,
		JobGuarantee:  r.JobGuarantee,
		AcceptGi:      r.AcceptGi,
	}
}

// -------- Courses --------

type CreateCourseRequest struct {
	Title                string  `json:"title" validate:"required,notblank,max=100"`
	Description          string  `json:"description" validate:"required,notblank"`
	Weeks                int     `json:"weeks" validate:"required,min=1"`
	Tuition              float64 `json:"tuition" validate:"min=0"`
	MinimumSkill         string  `json:"minimumSkill" validate:"required,skill"`
	ScholarshipAvailable bool    `json:"scholarshipAvailable"`
}

func (r *CreateCourseRequest) Validate() error { return Validate(r) }

func (r *CreateCourseRequest) Input() course.Input {
	return course.Input{
		Title:                r.Title,
		Description:          r.Description,
		Weeks:                r.Weeks,
		Tuition:              r.Tuition,
		MinimumSkill:         r.MinimumSkill,
		ScholarshipAvailable: r.ScholarshipAvailable,
	}
}

type UpdateCourseRequest struct {
	Title                *string  `json:"title" validate:"omitempty,notblank,max=100"`
	Description          *string  `json:"description" validate:"omitempty,notblank"`
	Weeks                *int     `json:"weeks" validate:"omitempty,min=1"`
	Tuition              *float64 `json:"tuition" validate:"omitempty,min=0"`
	MinimumSkill         *string  `json:"minimumSkill" validate:"omitempty,skill"`
	ScholarshipAvailable *bool    `json:"scholarshipAvailable"`
}

func (r *UpdateCourseRequest) Validate() error { return Validate(r) }

func (r *UpdateCourseRequest) Patch() course.Patch {
	return course.Patch{
		Title:                r.Title,
		Description:          r.Description,
		Weeks:                r.Weeks,
		Tuition:              r.Tuition,
		MinimumSkill:         r.MinimumSkill,
		ScholarshipAvailable: r.ScholarshipAvailable,
	}
}
