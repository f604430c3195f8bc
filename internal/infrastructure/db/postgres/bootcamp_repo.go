package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/bootcamp"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/query"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

type BootcampRepo struct {
	db *sql.DB
}

func NewBootcampRepo(db *sql.DB) *BootcampRepo {
	return &BootcampRepo{db: db}
}

func (r *BootcampRepo) Find(ctx context.Context, spec query.Spec) ([]query.Document, error) {
	q, args := selectSQL(bootcampColumns, "bootcamps b", bootcamp.Schema, spec)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := make([]query.Document, 0, spec.Limit)
	for rows.Next() {
		b, err := scanBootcamp(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, project(b.Document(), spec.Fields))
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *BootcampRepo) Count(ctx context.Context, filter []query.Condition) (int, error) {
	q, args := countSQL("bootcamps b", bootcamp.Schema, filter)

	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, domain.ErrDBUnavailable(err)
	}
	return n, nil
}

func (r *BootcampRepo) GetByID(ctx context.Context, id string) (domain.Bootcamp, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Bootcamp{}, domain.ErrBootcampNotFound()
	}

	const q = `
SELECT ` + bootcampColumns + `
FROM bootcamps b
WHERE b.id = $1
LIMIT 1;
`
	b, err := scanBootcamp(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return domain.Bootcamp{}, domain.ErrBootcampNotFound()
		}
		return domain.Bootcamp{}, domain.ErrDBUnavailable(err)
	}
	return b, nil
}

func (r *BootcampRepo) CountByOwner(ctx context.Context, userID string) (int, error) {
	const q = `SELECT COUNT(*) FROM bootcamps WHERE user_id = $1;`

	var n int
	if err := r.db.QueryRowContext(ctx, q, userID).Scan(&n); err != nil {
		return 0, domain.ErrDBUnavailable(err)
	}
	return n, nil
}

func (r *BootcampRepo) Create(ctx context.Context, b domain.Bootcamp) (domain.Bootcamp, error) {
	if b.ID == "" {
		return domain.Bootcamp{}, domain.ErrMissingField("id")
	}

	const q = `
INSERT INTO bootcamps AS b (id, name, slug, description, website, phone, email, address, careers,
    average_rating, average_cost, image, housing, job_assistance, job_guarantee, accept_gi, user_id, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9::jsonb,$10,$11,$12,$13,$14,$15,$16,$17,$18)
RETURNING ` + bootcampColumns + `;
`
	out, err := scanBootcamp(r.db.QueryRowContext(ctx, q,
		b.ID, b.Name, b.Slug, b.Description, b.Website, b.Phone, b.Email, b.Address, careersJSON(b.Careers),
		nullFloat(b.AverageRating), nullFloat(b.AverageCost), b.Image,
		b.Housing, b.JobAssistance, b.JobGuarantee, b.AcceptGi, b.UserID, b.CreatedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Bootcamp{}, domain.ErrBootcampAlreadyExists()
		}
		return domain.Bootcamp{}, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

// Update rewrites the editable columns; owner and creation time are kept.
func (r *BootcampRepo) Update(ctx context.Context, b domain.Bootcamp) (domain.Bootcamp, error) {
	const q = `
UPDATE bootcamps AS b
SET name = $2, slug = $3, description = $4, website = $5, phone = $6, email = $7, address = $8,
    careers = $9::jsonb, average_rating = $10, average_cost = $11,
    housing = $12, job_assistance = $13, job_guarantee = $14, accept_gi = $15,
    version = b.version + 1
WHERE b.id = $1
RETURNING ` + bootcampColumns + `;
`
	out, err := scanBootcamp(r.db.QueryRowContext(ctx, q,
		b.ID, b.Name, b.Slug, b.Description, b.Website, b.Phone, b.Email, b.Address, careersJSON(b.Careers),
		nullFloat(b.AverageRating), nullFloat(b.AverageCost),
		b.Housing, b.JobAssistance, b.JobGuarantee, b.AcceptGi,
	))
	if err != nil {
		switch {
		case isNoRows(err):
			return domain.Bootcamp{}, domain.ErrBootcampNotFound()
		case isUniqueViolation(err):
			return domain.Bootcamp{}, domain.ErrBootcampAlreadyExists()
		}
		return domain.Bootcamp{}, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *BootcampRepo) SetImage(ctx context.Context, id, image string) error {
	const q = `
UPDATE bootcamps
SET image = $2,
    version = version + 1
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, id, image)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrBootcampNotFound()
	}
	return nil
}

func (r *BootcampRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM bootcamps WHERE id = $1;`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrBootcampNotFound()
	}
	return nil
}
