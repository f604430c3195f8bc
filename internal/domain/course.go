package domain

import "time"

const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

func IsValidSkill(s string) bool {
	return s == SkillBeginner || s == SkillIntermediate || s == SkillAdvanced
}

type Course struct {
	ID                   string
	Title                string
	Description          string
	Weeks                int
	Tuition              float64
	MinimumSkill         string
	ScholarshipAvailable bool
	BootcampID           string
	UserID               string
	CreatedAt            time.Time
	Version              int64
}

func (c Course) OwnedBy(userID, role string) bool {
	return c.UserID == userID || IsElevated(role)
}

func (c Course) Document() map[string]any {
	return map[string]any{
		"id":                   c.ID,
		"title":                c.Title,
		"description":          c.Description,
		"weeks":                c.Weeks,
		"tuition":              c.Tuition,
		"minimumSkill":         c.MinimumSkill,
		"scholarshipAvailable": c.ScholarshipAvailable,
		"bootcamp":             c.BootcampID,
		"user":                 c.UserID,
		"createdAt":            c.CreatedAt,
		"version":              c.Version,
	}
}
