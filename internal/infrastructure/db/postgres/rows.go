package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

const userColumns = `id, email, name, role, password_hash, reset_password_token, reset_password_expire, created_at`

type userRow struct {
	ID                  string
	Email               string
	Name                string
	Role                string
	PasswordHash        string
	ResetPasswordToken  sql.NullString
	ResetPasswordExpire sql.NullTime
	CreatedAt           time.Time
}

func (ur userRow) toDomain() domain.User {
	u := domain.User{
		ID:                 ur.ID,
		Email:              ur.Email,
		Name:               ur.Name,
		Role:               ur.Role,
		PasswordHash:       ur.PasswordHash,
		ResetPasswordToken: ur.ResetPasswordToken.String,
		CreatedAt:          ur.CreatedAt,
	}
	if ur.ResetPasswordExpire.Valid {
		t := ur.ResetPasswordExpire.Time
		u.ResetPasswordExpire = &t
	}
	return u
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (userRow, error) {
	var ur userRow
	err := s.Scan(
		&ur.ID,
		&ur.Email,
		&ur.Name,
		&ur.Role,
		&ur.PasswordHash,
		&ur.ResetPasswordToken,
		&ur.ResetPasswordExpire,
		&ur.CreatedAt,
	)
	return ur, err
}

const bootcampColumns = `b.id, b.name, b.slug, b.description, b.website, b.phone, b.email, b.address, b.careers,
b.average_rating, b.average_cost, b.image, b.housing, b.job_assistance, b.job_guarantee, b.accept_gi,
b.user_id, b.created_at, b.version`

type bootcampRow struct {
	domain.Bootcamp
	careers       []byte
	averageRating sql.NullFloat64
	averageCost   sql.NullFloat64
}

func scanBootcamp(s scanner) (domain.Bootcamp, error) {
	var br bootcampRow
	b := &br.Bootcamp
	err := s.Scan(
		&b.ID,
		&b.Name,
		&b.Slug,
		&b.Description,
		&b.Website,
		&b.Phone,
		&b.Email,
		&b.Address,
		&br.careers,
		&br.averageRating,
		&br.averageCost,
		&b.Image,
		&b.Housing,
		&b.JobAssistance,
		&b.JobGuarantee,
		&b.AcceptGi,
		&b.UserID,
		&b.CreatedAt,
		&b.Version,
	)
	if err != nil {
		return domain.Bootcamp{}, err
	}
	if len(br.careers) > 0 {
		if err := json.Unmarshal(br.careers, &b.Careers); err != nil {
			return domain.Bootcamp{}, err
		}
	}
	if br.averageRating.Valid {
		v := br.averageRating.Float64
		b.AverageRating = &v
	}
	if br.averageCost.Valid {
		v := br.averageCost.Float64
		b.AverageCost = &v
	}
	return br.Bootcamp, nil
}

func careersJSON(careers []string) string {
	if careers == nil {
		careers = []string{}
	}
	b, _ := json.Marshal(careers)
	return string(b)
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

const courseColumns = `c.id, c.title, c.description, c.weeks, c.tuition, c.minimum_skill, c.scholarship_available,
c.bootcamp_id, c.user_id, c.created_at, c.version`

func scanCourse(s scanner) (domain.Course, error) {
	var c domain.Course
	err := s.Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.Weeks,
		&c.Tuition,
		&c.MinimumSkill,
		&c.ScholarshipAvailable,
		&c.BootcampID,
		&c.UserID,
		&c.CreatedAt,
		&c.Version,
	)
	return c, err
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isUniqueViolation recognises 23505 from pgx and the driver-agnostic message.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate")
}

// isForeignKeyViolation reports a 23503 from pgx.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
