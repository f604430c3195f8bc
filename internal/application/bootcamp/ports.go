package bootcamp

import (
	"context"
	"io"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/query"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

// Repo persists bootcamps. Find and Count evaluate a query.Spec; conditions on
// fields outside Schema match nothing.
type Repo interface {
	Find(ctx context.Context, spec query.Spec) ([]query.Document, error)
	Count(ctx context.Context, filter []query.Condition) (int, error)

	GetByID(ctx context.Context, id string) (domain.Bootcamp, error)
	CountByOwner(ctx context.Context, userID string) (int, error)

	// Create and Update fail with ErrBootcampAlreadyExists on a name clash.
	Create(ctx context.Context, b domain.Bootcamp) (domain.Bootcamp, error)
	Update(ctx context.Context, b domain.Bootcamp) (domain.Bootcamp, error)
	SetImage(ctx context.Context, id, image string) error
	Delete(ctx context.Context, id string) error
}

// CourseRemover is the slice of the course store needed for the delete cascade.
type CourseRemover interface {
	DeleteByBootcamp(ctx context.Context, bootcampID string) (int64, error)
}

// OwnerDirectory resolves owner ids to their public summary.
type OwnerDirectory interface {
	GetSummaries(ctx context.Context, ids []string) (map[string]domain.UserSummary, error)
}

// ImageStore saves an uploaded image under key and returns the value to
// store in the bootcamp's image field.
type ImageStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}
