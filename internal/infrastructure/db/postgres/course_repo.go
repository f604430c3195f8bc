package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/course"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/query"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

type CourseRepo struct {
	db *sql.DB
}

func NewCourseRepo(db *sql.DB) *CourseRepo {
	return &CourseRepo{db: db}
}

func (r *CourseRepo) Find(ctx context.Context, spec query.Spec) ([]query.Document, error) {
	q, args := selectSQL(courseColumns, "courses c", course.Schema, spec)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := make([]query.Document, 0, spec.Limit)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, project(c.Document(), spec.Fields))
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *CourseRepo) Count(ctx context.Context, filter []query.Condition) (int, error) {
	q, args := countSQL("courses c", course.Schema, filter)

	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, domain.ErrDBUnavailable(err)
	}
	return n, nil
}

func (r *CourseRepo) GetByID(ctx context.Context, id string) (domain.Course, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Course{}, domain.ErrCourseNotFound()
	}

	const q = `
SELECT ` + courseColumns + `
FROM courses c
WHERE c.id = $1
LIMIT 1;
`
	c, err := scanCourse(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return domain.Course{}, domain.ErrCourseNotFound()
		}
		return domain.Course{}, domain.ErrDBUnavailable(err)
	}
	return c, nil
}

func (r *CourseRepo) Create(ctx context.Context, c domain.Course) (domain.Course, error) {
	if c.ID == "" {
		return domain.Course{}, domain.ErrMissingField("id")
	}

	const q = `
INSERT INTO courses AS c (id, title, description, weeks, tuition, minimum_skill, scholarship_available,
    bootcamp_id, user_id, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING ` + courseColumns + `;
`
	out, err := scanCourse(r.db.QueryRowContext(ctx, q,
		c.ID, c.Title, c.Description, c.Weeks, c.Tuition, c.MinimumSkill, c.ScholarshipAvailable,
		c.BootcampID, c.UserID, c.CreatedAt,
	))
	if err != nil {
		// the parent bootcamp vanished between the existence check and the insert
		if isForeignKeyViolation(err) {
			return domain.Course{}, domain.ErrBootcampNotFound()
		}
		return domain.Course{}, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *CourseRepo) Update(ctx context.Context, c domain.Course) (domain.Course, error) {
	const q = `
UPDATE courses AS c
SET title = $2, description = $3, weeks = $4, tuition = $5, minimum_skill = $6,
    scholarship_available = $7,
    version = c.version + 1
WHERE c.id = $1
RETURNING ` + courseColumns + `;
`
	out, err := scanCourse(r.db.QueryRowContext(ctx, q,
		c.ID, c.Title, c.Description, c.Weeks, c.Tuition, c.MinimumSkill, c.ScholarshipAvailable,
	))
	if err != nil {
		if isNoRows(err) {
			return domain.Course{}, domain.ErrCourseNotFound()
		}
		return domain.Course{}, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *CourseRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM courses WHERE id = $1;`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrCourseNotFound()
	}
	return nil
}

// DeleteByBootcamp removes every course of a bootcamp and reports how many.
func (r *CourseRepo) DeleteByBootcamp(ctx context.Context, bootcampID string) (int64, error) {
	const q = `DELETE FROM courses WHERE bootcamp_id = $1;`

	res, err := r.db.ExecContext(ctx, q, bootcampID)
	if err != nil {
		return 0, domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
