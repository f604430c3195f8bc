package course

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/query"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

type Repo interface {
	Find(ctx context.Context, spec query.Spec) ([]query.Document, error)
	Count(ctx context.Context, filter []query.Condition) (int, error)

	GetByID(ctx context.Context, id string) (domain.Course, error)
	Create(ctx context.Context, c domain.Course) (domain.Course, error)
	Update(ctx context.Context, c domain.Course) (domain.Course, error)
	Delete(ctx context.Context, id string) error
}

// BootcampReader confirms a parent bootcamp exists.
type BootcampReader interface {
	GetByID(ctx context.Context, id string) (domain.Bootcamp, error)
}
