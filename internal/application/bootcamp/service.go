package bootcamp

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/query"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

type Service struct {
	repo       Repo
	courses    CourseRemover
	owners     OwnerDirectory
	images     ImageStore
	translator *query.Translator

	maxUploadBytes int64
	now            func() time.Time
}

type Config struct {
	Defaults       query.Defaults
	MaxUploadBytes int64
}

func NewService(repo Repo, courses CourseRemover, owners OwnerDirectory, images ImageStore, cfg Config) *Service {
	maxBytes := cfg.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = 1000000
	}
	return &Service{
		repo:           repo,
		courses:        courses,
		owners:         owners,
		images:         images,
		translator:     query.NewTranslator(Schema, cfg.Defaults),
		maxUploadBytes: maxBytes,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// ListResult is one page of listing documents.
type ListResult struct {
	Items      []query.Document
	Total      int
	Pagination query.Pagination
}

func (s *Service) ListBootcamps(ctx context.Context, params url.Values) (ListResult, error) {
	spec, err := s.translator.BuildQuery(params)
	if err != nil {
		return ListResult{}, err
	}

	docs, err := s.repo.Find(ctx, spec)
	if err != nil {
		return ListResult{}, err
	}
	if len(docs) == 0 {
		return ListResult{}, domain.ErrBootcampNotFound()
	}

	total, err := s.repo.Count(ctx, spec.Filter)
	if err != nil {
		return ListResult{}, err
	}

	if err := s.populateOwners(ctx, docs); err != nil {
		return ListResult{}, err
	}

	return ListResult{Items: docs, Total: total, Pagination: spec.Paginate(total)}, nil
}

// GetBootcamp returns the default projection of one bootcamp with its owner.
func (s *Service) GetBootcamp(ctx context.Context, id string) (query.Document, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	doc := query.Project(b.Document(), Schema.DefaultProjection())
	if err := s.populateOwners(ctx, []query.Document{doc}); err != nil {
		return nil, err
	}
	return doc, nil
}

// CreateBootcamp publishes a new listing owned by actor. Non-admins may own
// at most one bootcamp.
func (s *Service) CreateBootcamp(ctx context.Context, actor domain.User, in Input) (domain.Bootcamp, error) {
	b := domain.Bootcamp{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Description:   in.Description,
		Website:       in.Website,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		Careers:       in.Careers,
		AverageRating: in.AverageRating,
		AverageCost:   in.AverageCost,
		Image:         domain.DefaultBootcampImage,
		Housing:       in.Housing,
		JobAssistance: in.JobAssistance,
		JobGuarantee:  in.JobGuarantee,
		AcceptGi:      in.AcceptGi,
		UserID:        actor.ID,
		CreatedAt:     s.now(),
	}
	if err := validate(&b); err != nil {
		return domain.Bootcamp{}, err
	}
	b.Slug = slug.Make(b.Name)

	if !domain.IsElevated(actor.Role) {
		n, err := s.repo.CountByOwner(ctx, actor.ID)
		if err != nil {
			return domain.Bootcamp{}, err
		}
		if n > 0 {
			return domain.Bootcamp{}, domain.ErrBootcampAlreadyPublished(actor.ID)
		}
	}

	return s.repo.Create(ctx, b)
}

func (s *Service) UpdateBootcamp(ctx context.Context, actor domain.User, id string, patch Patch) (domain.Bootcamp, error) {
	b, err := s.owned(ctx, actor, id)
	if err != nil {
		return domain.Bootcamp{}, err
	}

	patch.apply(&b)
	if err := validate(&b); err != nil {
		return domain.Bootcamp{}, err
	}
	b.Slug = slug.Make(b.Name)

	return s.repo.Update(ctx, b)
}

// DeleteBootcamp removes the bootcamp's courses first, then the bootcamp.
func (s *Service) DeleteBootcamp(ctx context.Context, actor domain.User, id string) error {
	b, err := s.owned(ctx, actor, id)
	if err != nil {
		return err
	}
	if _, err := s.courses.DeleteByBootcamp(ctx, b.ID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, b.ID)
}

func (s *Service) owned(ctx context.Context, actor domain.User, id string) (domain.Bootcamp, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Bootcamp{}, err
	}
	if !b.OwnedBy(actor.ID, actor.Role) {
		return domain.Bootcamp{}, domain.ErrForbidden()
	}
	return b, nil
}

// populateOwners replaces the owner id in each document's "user" field with
// the owner's public summary. Documents projected without "user" are skipped.
func (s *Service) populateOwners(ctx context.Context, docs []query.Document) error {
	if s.owners == nil {
		return nil
	}

	seen := map[string]bool{}
	var ids []string
	for _, d := range docs {
		id, ok := d["user"].(string)
		if ok && id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	owners, err := s.owners.GetSummaries(ctx, ids)
	if err != nil {
		return err
	}
	for _, d := range docs {
		id, _ := d["user"].(string)
		if o, ok := owners[id]; ok {
			d["user"] = o
		}
	}
	return nil
}
