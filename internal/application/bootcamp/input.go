package bootcamp

import (
	"strings"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

const (
	maxNameLen        = 50
	maxDescriptionLen = 500
)

type Input struct {
	Name          string
	Description   string
	Website       string
	Phone         string
	Email         string
	Address       string
	Careers       []string
	AverageRating *float64
	AverageCost   *float64
	Housing       bool
	JobAssistance bool
	JobGuarantee  bool
	AcceptGi      bool
}

// Patch carries optional changes; nil fields are left untouched.
type Patch struct {
	Name          *string
	Description   *string
	Website       *string
	Phone         *string
	Email         *string
	Address       *string
	Careers       []string
	AverageRating *float64
	AverageCost   *float64
	Housing       *bool
	JobAssistance *bool
	JobGuarantee  *bool
	AcceptGi      *bool
}

func (p Patch) apply(b *domain.Bootcamp) {
	setStr := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setBool := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	setStr(&b.Name, p.Name)
	setStr(&b.Description, p.Description)
	setStr(&b.Website, p.Website)
	setStr(&b.Phone, p.Phone)
	setStr(&b.Email, p.Email)
	setStr(&b.Address, p.Address)
	if p.Careers != nil {
		b.Careers = p.Careers
	}
	if p.AverageRating != nil {
		b.AverageRating = p.AverageRating
	}
	if p.AverageCost != nil {
		b.AverageCost = p.AverageCost
	}
	setBool(&b.Housing, p.Housing)
	setBool(&b.JobAssistance, p.JobAssistance)
	setBool(&b.JobGuarantee, p.JobGuarantee)
	setBool(&b.AcceptGi, p.AcceptGi)
}

// validate normalizes b in place and checks the listing invariants.
func validate(b *domain.Bootcamp) error {
	b.Name = strings.TrimSpace(b.Name)
	b.Description = strings.TrimSpace(b.Description)
	b.Email = strings.ToLower(strings.TrimSpace(b.Email))

	switch {
	case b.Name == "":
		return domain.ErrMissingField("name")
	case len([]rune(b.Name)) > maxNameLen:
		return domain.ErrInvalidField("name", "must be at most 50 characters")
	case b.Description == "":
		return domain.ErrMissingField("description")
	case len([]rune(b.Description)) > maxDescriptionLen:
		return domain.ErrInvalidField("description", "must be at most 500 characters")
	case len(b.Careers) == 0:
		return domain.ErrMissingField("careers")
	}
	for _, c := range b.Careers {
		if !domain.IsValidCareer(c) {
			return domain.ErrInvalidField("careers", "unknown career "+c)
		}
	}
	if r := b.AverageRating; r != nil && (*r < 1 || *r > 5) {
		return domain.ErrInvalidField("averageRating", "must be between 1 and 5")
	}
	if c := b.AverageCost; c != nil && *c < 0 {
		return domain.ErrInvalidField("averageCost", "must not be negative")
	}
	return nil
}
