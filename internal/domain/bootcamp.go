package domain

import "time"

// Careers a bootcamp may advertise.
var Careers = []string{
	"Web Development",
	"Mobile Development",
	"UI/UX",
	"Data Science",
	"Business",
	"Other",
}

func IsValidCareer(c string) bool {
	for _, v := range Careers {
		if v == c {
			return true
		}
	}
	return false
}

type Bootcamp struct {
	ID            string
	Name          string
	Slug          string
	Description   string
	Website       string
	Phone         string
	Email         string
	Address       string
	Careers       []string
	AverageRating *float64
	AverageCost   *float64
	Image         string
	Housing       bool
	JobAssistance bool
	JobGuarantee  bool
	AcceptGi      bool
	UserID        string
	CreatedAt     time.Time
	Version       int64
}

// DefaultBootcampImage is used until a photo is uploaded.
const DefaultBootcampImage = "no-photo.jpg"

// OwnedBy reports whether the caller may modify the bootcamp.
func (b Bootcamp) OwnedBy(userID, role string) bool {
	return b.UserID == userID || IsElevated(role)
}

// Document returns the listing as a field map keyed by its public JSON names.
func (b Bootcamp) Document() map[string]any {
	careers := b.Careers
	if careers == nil {
		careers = []string{}
	}
	doc := map[string]any{
		"id":            b.ID,
		"name":          b.Name,
		"slug":          b.Slug,
		"description":   b.Description,
		"website":       b.Website,
		"phone":         b.Phone,
		"email":         b.Email,
		"address":       b.Address,
		"careers":       careers,
		"averageRating": nil,
		"averageCost":   nil,
		"image":         b.Image,
		"housing":       b.Housing,
		"jobAssistance": b.JobAssistance,
		"jobGuarantee":  b.JobGuarantee,
		"acceptGi":      b.AcceptGi,
		"user":          b.UserID,
		"createdAt":     b.CreatedAt,
		"version":       b.Version,
	}
	if b.AverageRating != nil {
		doc["averageRating"] = *b.AverageRating
	}
	if b.AverageCost != nil {
		doc["averageCost"] = *b.AverageCost
	}
	return doc
}
