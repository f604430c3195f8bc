package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/query"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

type BootcampRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.Bootcamp
}

func NewBootcampRepo() *BootcampRepo {
	return &BootcampRepo{byID: make(map[string]domain.Bootcamp)}
}

func (r *BootcampRepo) Find(ctx context.Context, spec query.Spec) ([]query.Document, error) {
	r.mu.RLock()
	docs := make([]query.Document, 0, len(r.byID))
	for _, b := range r.byID {
		docs = append(docs, b.Document())
	}
	r.mu.RUnlock()

	return evaluate(docs, spec), nil
}

func (r *BootcampRepo) Count(ctx context.Context, filter []query.Condition) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, b := range r.byID {
		if query.Matches(b.Document(), filter) {
			n++
		}
	}
	return n, nil
}

func (r *BootcampRepo) GetByID(ctx context.Context, id string) (domain.Bootcamp, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return domain.Bootcamp{}, domain.ErrBootcampNotFound()
	}
	return b, nil
}

func (r *BootcampRepo) CountByOwner(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, b := range r.byID {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *BootcampRepo) Create(ctx context.Context, b domain.Bootcamp) (domain.Bootcamp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTakenLocked(b.Name, "") {
		return domain.Bootcamp{}, domain.ErrBootcampAlreadyExists()
	}
	r.byID[b.ID] = b
	return b, nil
}

func (r *BootcampRepo) Update(ctx context.Context, b domain.Bootcamp) (domain.Bootcamp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[b.ID]
	if !ok {
		return domain.Bootcamp{}, domain.ErrBootcampNotFound()
	}
	if r.nameTakenLocked(b.Name, b.ID) {
		return domain.Bootcamp{}, domain.ErrBootcampAlreadyExists()
	}
	b.UserID = cur.UserID
	b.CreatedAt = cur.CreatedAt
	b.Version = cur.Version + 1
	r.byID[b.ID] = b
	return b, nil
}

func (r *BootcampRepo) SetImage(ctx context.Context, id, image string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok {
		return domain.ErrBootcampNotFound()
	}
	b.Image = image
	b.Version++
	r.byID[id] = b
	return nil
}

func (r *BootcampRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrBootcampNotFound()
	}
	delete(r.byID, id)
	return nil
}

func (r *BootcampRepo) nameTakenLocked(name, exceptID string) bool {
	for id, b := range r.byID {
		if id != exceptID && strings.EqualFold(b.Name, name) {
			return true
		}
	}
	return false
}

// evaluate applies filter, sort, window and projection of spec in process.
func evaluate(all []query.Document, spec query.Spec) []query.Document {
	matched := make([]query.Document, 0, len(all))
	for _, d := range all {
		if query.Matches(d, spec.Filter) {
			matched = append(matched, d)
		}
	}

	keys := append([]query.SortKey{}, spec.Sort...)
	keys = append(keys, query.SortKey{Field: "id"})
	query.SortDocuments(matched, keys)

	page := query.Page(matched, spec.Skip, spec.Limit)
	out := make([]query.Document, 0, len(page))
	for _, d := range page {
		if len(spec.Fields) == 0 {
			out = append(out, d)
			continue
		}
		out = append(out, query.Project(d, spec.Fields))
	}
	return out
}
