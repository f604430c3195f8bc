package course

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/query"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

type Service struct {
	repo       Repo
	bootcamps  BootcampReader
	translator *query.Translator
	now        func() time.Time
}

func NewService(repo Repo, bootcamps BootcampReader, defaults query.Defaults) *Service {
	return &Service{
		repo:       repo,
		bootcamps:  bootcamps,
		translator: query.NewTranslator(Schema, defaults),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

type Input struct {
	Title                string
	Description          string
	Weeks                int
	Tuition              float64
	MinimumSkill         string
	ScholarshipAvailable bool
}

type Patch struct {
	Title                *string
	Description          *string
	Weeks                *int
	Tuition              *float64
	MinimumSkill         *string
	ScholarshipAvailable *bool
}

type ListResult struct {
	Items      []query.Document
	Total      int
	Pagination query.Pagination
}

func (s *Service) ListCourses(ctx context.Context, params url.Values) (ListResult, error) {
	spec, err := s.translator.BuildQuery(params)
	if err != nil {
		return ListResult{}, err
	}
	return s.list(ctx, spec)
}

// ListBootcampCourses lists courses of one bootcamp; the bootcamp condition
// cannot be overridden by params.
func (s *Service) ListBootcampCourses(ctx context.Context, bootcampID string, params url.Values) (ListResult, error) {
	clean := url.Values{}
	for k, v := range params {
		if k != "bootcamp" && !strings.HasPrefix(k, "bootcamp[") {
			clean[k] = v
		}
	}
	spec, err := s.translator.BuildQuery(clean)
	if err != nil {
		return ListResult{}, err
	}
	return s.list(ctx, spec.Where("bootcamp", bootcampID))
}

func (s *Service) list(ctx context.Context, spec query.Spec) (ListResult, error) {
	docs, err := s.repo.Find(ctx, spec)
	if err != nil {
		return ListResult{}, err
	}
	if len(docs) == 0 {
		return ListResult{}, domain.ErrCourseNotFound()
	}
	total, err := s.repo.Count(ctx, spec.Filter)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{Items: docs, Total: total, Pagination: spec.Paginate(total)}, nil
}

func (s *Service) GetCourse(ctx context.Context, id string) (domain.Course, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateCourse adds a course under an existing bootcamp, owned by actor.
func (s *Service) CreateCourse(ctx context.Context, actor domain.User, bootcampID string, in Input) (domain.Course, error) {
	if _, err := s.bootcamps.GetByID(ctx, bootcampID); err != nil {
		return domain.Course{}, err
	}

	c := domain.Course{
		ID:                   uuid.NewString(),
		Title:                in.Title,
		Description:          in.Description,
		Weeks:                in.Weeks,
		Tuition:              in.Tuition,
		MinimumSkill:         in.MinimumSkill,
		ScholarshipAvailable: in.ScholarshipAvailable,
		BootcampID:           bootcampID,
		UserID:               actor.ID,
		CreatedAt:            s.now(),
	}
	if err := validate(&c); err != nil {
		return domain.Course{}, err
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) UpdateCourse(ctx context.Context, actor domain.User, id string, p Patch) (domain.Course, error) {
	c, err := s.owned(ctx, actor, id)
	if err != nil {
		return domain.Course{}, err
	}

	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Weeks != nil {
		c.Weeks = *p.Weeks
	}
	if p.Tuition != nil {
		c.Tuition = *p.Tuition
	}
	if p.MinimumSkill != nil {
		c.MinimumSkill = *p.MinimumSkill
	}
	if p.ScholarshipAvailable != nil {
		c.ScholarshipAvailable = *p.ScholarshipAvailable
	}
	if err := validate(&c); err != nil {
		return domain.Course{}, err
	}
	return s.repo.Update(ctx, c)
}

func (s *Service) DeleteCourse(ctx context.Context, actor domain.User, id string) error {
	c, err := s.owned(ctx, actor, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, c.ID)
}

func (s *Service) owned(ctx context.Context, actor domain.User, id string) (domain.Course, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Course{}, err
	}
	if !c.OwnedBy(actor.ID, actor.Role) {
		return domain.Course{}, domain.ErrForbidden()
	}
	return c, nil
}

func validate(c *domain.Course) error {
	c.Title = strings.TrimSpace(c.Title)
	c.Description = strings.TrimSpace(c.Description)
	c.MinimumSkill = strings.ToLower(strings.TrimSpace(c.MinimumSkill))

	switch {
	case c.Title == "":
		return domain.ErrMissingField("title")
	case c.Description == "":
		return domain.ErrMissingField("description")
	case c.Weeks < 1:
		return domain.ErrInvalidField("weeks", "must be at least 1")
	case c.Tuition < 0:
		return domain.ErrInvalidField("tuition", "must not be negative")
	case !domain.IsValidSkill(c.MinimumSkill):
		return domain.ErrInvalidField("minimumSkill", "must be beginner, intermediate or advanced")
	}
	return nil
}
