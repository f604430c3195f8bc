//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/bootcamp"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/course"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/query"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:17",
		tcpostgres.WithDatabase("bootcamps"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(ctx, db))
	return db
}

func seedOwner(t *testing.T, users *UserRepo) domain.User {
	t.Helper()
	u, err := users.Create(context.Background(), domain.User{
		ID:           uuid.NewString(),
		Email:        uuid.NewString() + "@example.com",
		Name:         "Owner",
		Role:         string(domain.RolePublisher),
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	return u
}

func TestIntegration_ResetTokenConsumedOnce(t *testing.T) {
	db := startPostgres(t)
	users := NewUserRepo(db)
	ctx := context.Background()
	u := seedOwner(t, users)

	now := time.Now().UTC()
	require.NoError(t, users.SetResetToken(ctx, u.ID, "tokhash", now.Add(time.Hour)))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := users.ConsumeResetToken(ctx, "tokhash", now, "newhash"); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)

	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "newhash", got.PasswordHash)
	assert.False(t, got.HasPendingReset())
}

func TestIntegration_BootcampListing(t *testing.T) {
	db := startPostgres(t)
	users := NewUserRepo(db)
	bootcamps := NewBootcampRepo(db)
	courses := NewCourseRepo(db)
	ctx := context.Background()

	cost := func(v float64) *float64 { return &v }
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range []struct {
		name    string
		cost    float64
		careers []string
	}{
		{"Devworks", 10000, []string{"Web Development", "UI/UX"}},
		{"ModernTech", 8000, []string{"Business"}},
		{"Codemasters", 12000, []string{"Data Science", "Web Development"}},
	} {
		owner := seedOwner(t, users)
		_, err := bootcamps.Create(ctx, domain.Bootcamp{
			ID: uuid.NewString(), Name: c.name, Slug: c.name, Description: "d",
			Careers: c.careers, AverageCost: cost(c.cost), Image: domain.DefaultBootcampImage,
			UserID: owner.ID, CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	_, err := bootcamps.Create(ctx, domain.Bootcamp{
		ID: uuid.NewString(), Name: "devworks", Description: "d", UserID: seedOwner(t, users).ID, CreatedAt: base,
	})
	assert.True(t, domain.Is(err, "bootcamp_already_exists"))

	tr := query.NewTranslator(bootcamp.Schema, query.Defaults{Sort: "-createdAt", Limit: 10, MaxLimit: 100})
	spec, err := tr.BuildQuery(url.Values{
		"averageCost[gte]": {"9000"},
		"careers":          {"Web Development"},
	})
	require.NoError(t, err)

	docs, err := bootcamps.Find(ctx, spec)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Codemasters", docs[0]["name"])
	assert.Equal(t, "Devworks", docs[1]["name"])

	n, err := bootcamps.Count(ctx, spec.Filter)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// unknown field filter matches nothing
	none, err := bootcamps.Find(ctx, spec.Where("nonexistent", "x"))
	require.NoError(t, err)
	assert.Empty(t, none)

	first := docs[0]["id"].(string)
	b, err := bootcamps.GetByID(ctx, first)
	require.NoError(t, err)
	_, err = courses.Create(ctx, domain.Course{
		ID: uuid.NewString(), Title: "t", Description: "d", Weeks: 4, Tuition: 100,
		MinimumSkill: domain.SkillBeginner, BootcampID: b.ID, UserID: b.UserID, CreatedAt: base,
	})
	require.NoError(t, err)

	ct := query.NewTranslator(course.Schema, query.Defaults{Sort: "-createdAt", Limit: 10, MaxLimit: 100})
	for raw, want := range map[string]int{"4.5": 1, "4": 0, "3.9": 0} {
		cs, err := ct.BuildQuery(url.Values{"weeks[lt]": {raw}})
		require.NoError(t, err)
		got, err := courses.Find(ctx, cs)
		require.NoError(t, err, "weeks[lt]=%s", raw)
		assert.Len(t, got, want, "weeks[lt]=%s", raw)
	}

	removed, err := courses.DeleteByBootcamp(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	require.NoError(t, bootcamps.Delete(ctx, b.ID))
}
