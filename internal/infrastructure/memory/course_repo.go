package memory

import (
	"context"
	"sync"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/query"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

type CourseRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.Course
}

func NewCourseRepo() *CourseRepo {
	return &CourseRepo{byID: make(map[string]domain.Course)}
}

func (r *CourseRepo) Find(ctx context.Context, spec query.Spec) ([]query.Document, error) {
	r.mu.RLock()
	docs := make([]query.Document, 0, len(r.byID))
	for _, c := range r.byID {
		docs = append(docs, c.Document())
	}
	r.mu.RUnlock()

	return evaluate(docs, spec), nil
}

func (r *CourseRepo) Count(ctx context.Context, filter []query.Condition) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, c := range r.byID {
		if query.Matches(c.Document(), filter) {
			n++
		}
	}
	return n, nil
}

func (r *CourseRepo) GetByID(ctx context.Context, id string) (domain.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return domain.Course{}, domain.ErrCourseNotFound()
	}
	return c, nil
}

func (r *CourseRepo) Create(ctx context.Context, c domain.Course) (domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[c.ID] = c
	return c, nil
}

func (r *CourseRepo) Update(ctx context.Context, c domain.Course) (domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[c.ID]
	if !ok {
		return domain.Course{}, domain.ErrCourseNotFound()
	}
	c.BootcampID = cur.BootcampID
	c.UserID = cur.UserID
	c.CreatedAt = cur.CreatedAt
	c.Version = cur.Version + 1
	r.byID[c.ID] = c
	return c, nil
}

func (r *CourseRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrCourseNotFound()
	}
	delete(r.byID, id)
	return nil
}

func (r *CourseRepo) DeleteByBootcamp(ctx context.Context, bootcampID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, c := range r.byID {
		if c.BootcampID == bootcampID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}
