package bootcamp

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/query"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/infrastructure/memory"
)

type fakeImages struct {
	err  error
	keys []string
	data []byte
}

func (f *fakeImages) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.keys = append(f.keys, key)
	f.data = b
	return "/uploads/" + key, nil
}

type fixture struct {
	svc       *Service
	bootcamps *memory.BootcampRepo
	courses   *memory.CourseRepo
	users     *memory.UserRepo
	images    *fakeImages
}

var (
	publisher = domain.User{ID: "pub-1", Role: "publisher", Name: "Pub", Email: "pub@x.io"}
	other     = domain.User{ID: "pub-2", Role: "publisher", Name: "Other", Email: "other@x.io"}
	admin     = domain.User{ID: "adm-1", Role: "admin", Name: "Admin", Email: "admin@x.io"}
)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		bootcamps: memory.NewBootcampRepo(),
		courses:   memory.NewCourseRepo(),
		users:     memory.NewUserRepo(),
		images:    &fakeImages{},
	}
	for _, u := range []domain.User{publisher, other, admin} {
		_, err := f.users.Create(context.Background(), u)
		require.NoError(t, err)
	}
	f.svc = NewService(f.bootcamps, f.courses, f.users, f.images, Config{
		Defaults:       query.Defaults{Sort: "-createdAt", Limit: 10, MaxLimit: 100},
		MaxUploadBytes: 16,
	})
	return f
}

func validInput(name string) Input {
	return Input{
		Name:        name,
		Description: "Full stack web development",
		Website:     "https://devworks.example",
		Email:       "Hello@Devworks.example",
		Careers:     []string{"Web Development", "UI/UX"},
		Housing:     true,
	}
}

func TestCreateBootcamp(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	b, err := f.svc.CreateBootcamp(context.Background(), publisher, validInput("  Devworks Bootcamp "))
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "Devworks Bootcamp", b.Name)
	assert.Equal(t, "devworks-bootcamp", b.Slug)
	assert.Equal(t, "hello@devworks.example", b.Email)
	assert.Equal(t, publisher.ID, b.UserID)
	assert.Equal(t, domain.DefaultBootcampImage, b.Image)
	assert.False(t, b.CreatedAt.IsZero())
}

func TestCreateBootcamp_NameConflict(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.CreateBootcamp(context.Background(), publisher, validInput("Devworks"))
	require.NoError(t, err)

	_, err = f.svc.CreateBootcamp(context.Background(), admin, validInput("devworks"))
	require.Error(t, err)
	assert.True(t, domain.Is(err, "bootcamp_already_exists"))
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestCreateBootcamp_OnePerPublisherButAdminUnlimited(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateBootcamp(ctx, publisher, validInput("First"))
	require.NoError(t, err)
	_, err = f.svc.CreateBootcamp(ctx, publisher, validInput("Second"))
	assert.True(t, domain.Is(err, "bootcamp_already_published"))

	_, err = f.svc.CreateBootcamp(ctx, admin, validInput("Admin One"))
	require.NoError(t, err)
	_, err = f.svc.CreateBootcamp(ctx, admin, validInput("Admin Two"))
	require.NoError(t, err)
}

func TestCreateBootcamp_Validation(t *testing.T) {
	t.Parallel()

	rating := 7.0
	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	cases := map[string]func(*Input){
		"missing name":       func(in *Input) { in.Name = " " },
		"long name":          func(in *Input) { in.Name = string(long) },
		"missing desc":       func(in *Input) { in.Description = "" },
		"no careers":         func(in *Input) { in.Careers = nil },
		"unknown career":     func(in *Input) { in.Careers = []string{"Cooking"} },
		"rating out of band": func(in *Input) { in.AverageRating = &rating },
	}
	for name, mutate := range cases {
		mutate := mutate
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			in := validInput("Devworks")
			mutate(&in)
			_, err := f.svc.CreateBootcamp(context.Background(), publisher, in)
			require.Error(t, err)
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		})
	}
}

func TestListBootcamps(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateBootcamp(ctx, publisher, validInput("One"))
	require.NoError(t, err)
	_, err = f.svc.CreateBootcamp(ctx, other, validInput("Two"))
	require.NoError(t, err)
	_, err = f.svc.CreateBootcamp(ctx, admin, validInput("Three"))
	require.NoError(t, err)

	res, err := f.svc.ListBootcamps(ctx, url.Values{"limit": {"2"}, "sort": {"name"}})
	require.NoError(t, err)

	require.Len(t, res.Items, 2)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, "One", res.Items[0]["name"])
	assert.Equal(t, "Three", res.Items[1]["name"])
	assert.NotContains(t, res.Items[0], "version")
	require.NotNil(t, res.Pagination.Next)
	assert.Equal(t, 2, res.Pagination.Next.Page)
	assert.Nil(t, res.Pagination.Prev)

	owner, ok := res.Items[0]["user"].(domain.UserSummary)
	require.True(t, ok, "owner should be populated, got %T", res.Items[0]["user"])
	assert.Equal(t, domain.UserSummary{ID: publisher.ID, Name: "Pub", Email: "pub@x.io"}, owner)
}

func TestListBootcamps_ProjectionWithoutOwner(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	_, err := f.svc.CreateBootcamp(context.Background(), publisher, validInput("One"))
	require.NoError(t, err)

	res, err := f.svc.ListBootcamps(context.Background(), url.Values{"fields": {"name,version"}})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.ElementsMatch(t, []string{"id", "name", "version"}, keys(res.Items[0]))
}

func TestListBootcamps_EmptyIsNotFound(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	_, err := f.svc.CreateBootcamp(context.Background(), publisher, validInput("One"))
	require.NoError(t, err)

	_, err = f.svc.ListBootcamps(context.Background(), url.Values{"housing": {"false"}})
	assert.True(t, domain.Is(err, "bootcamp_not_found"))

	_, err = f.svc.ListBootcamps(context.Background(), url.Values{"averageCost[ne]": {"1"}})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestGetBootcamp(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	b, err := f.svc.CreateBootcamp(context.Background(), publisher, validInput("One"))
	require.NoError(t, err)

	doc, err := f.svc.GetBootcamp(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "One", doc["name"])
	assert.NotContains(t, doc, "version")
	assert.IsType(t, domain.UserSummary{}, doc["user"])

	_, err = f.svc.GetBootcamp(context.Background(), "missing")
	assert.True(t, domain.Is(err, "bootcamp_not_found"))
}

func TestUpdateBootcamp_OwnershipAndSlug(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	b, err := f.svc.CreateBootcamp(ctx, publisher, validInput("One"))
	require.NoError(t, err)

	name := "Renamed Camp"
	_, err = f.svc.UpdateBootcamp(ctx, other, b.ID, Patch{Name: &name})
	assert.True(t, domain.Is(err, "forbidden"))
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

	got, err := f.svc.UpdateBootcamp(ctx, publisher, b.ID, Patch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "renamed-camp", got.Slug)
	assert.Equal(t, int64(1), got.Version)

	housing := false
	got, err = f.svc.UpdateBootcamp(ctx, admin, b.ID, Patch{Housing: &housing})
	require.NoError(t, err)
	assert.False(t, got.Housing)
	assert.Equal(t, "Renamed Camp", got.Name)

	empty := ""
	_, err = f.svc.UpdateBootcamp(ctx, publisher, b.ID, Patch{Description: &empty})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestDeleteBootcamp_CascadesCourses(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	b, err := f.svc.CreateBootcamp(ctx, publisher, validInput("One"))
	require.NoError(t, err)
	_, err = f.courses.Create(ctx, domain.Course{ID: "c1", BootcampID: b.ID, UserID: publisher.ID})
	require.NoError(t, err)
	_, err = f.courses.Create(ctx, domain.Course{ID: "c2", BootcampID: "elsewhere", UserID: publisher.ID})
	require.NoError(t, err)

	assert.True(t, domain.Is(f.svc.DeleteBootcamp(ctx, other, b.ID), "forbidden"))

	require.NoError(t, f.svc.DeleteBootcamp(ctx, publisher, b.ID))

	_, err = f.bootcamps.GetByID(ctx, b.ID)
	assert.True(t, domain.Is(err, "bootcamp_not_found"))
	_, err = f.courses.GetByID(ctx, "c1")
	assert.True(t, domain.Is(err, "course_not_found"))
	_, err = f.courses.GetByID(ctx, "c2")
	assert.NoError(t, err)
}

func TestUploadBootcampPhoto(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	b, err := f.svc.CreateBootcamp(ctx, publisher, validInput("One"))
	require.NoError(t, err)

	img, err := f.svc.UploadBootcampPhoto(ctx, publisher, b.ID, Photo{
		ContentType: "image/png",
		Size:        4,
		Body:        bytes.NewReader([]byte("\x89PNG")),
	})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/bootcamp_"+b.ID+".png", img)
	assert.Equal(t, []byte("\x89PNG"), f.images.data)

	stored, _ := f.bootcamps.GetByID(ctx, b.ID)
	assert.Equal(t, img, stored.Image)
}

func TestUploadBootcampPhoto_Rejects(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	b, err := f.svc.CreateBootcamp(ctx, publisher, validInput("One"))
	require.NoError(t, err)

	_, err = f.svc.UploadBootcampPhoto(ctx, publisher, b.ID, Photo{ContentType: "text/plain", Size: 3, Body: bytes.NewReader([]byte("abc"))})
	assert.True(t, domain.Is(err, "invalid_upload"))

	_, err = f.svc.UploadBootcampPhoto(ctx, publisher, b.ID, Photo{ContentType: "image/jpeg", Size: 17, Body: bytes.NewReader(make([]byte, 17))})
	assert.True(t, domain.Is(err, "invalid_upload"))

	_, err = f.svc.UploadBootcampPhoto(ctx, other, b.ID, Photo{ContentType: "image/jpeg", Size: 3, Body: bytes.NewReader([]byte("abc"))})
	assert.True(t, domain.Is(err, "forbidden"))

	f.images.err = domain.ErrStorageUnavailable(errors.New("s3 down"))
	_, err = f.svc.UploadBootcampPhoto(ctx, publisher, b.ID, Photo{ContentType: "image/jpeg", Size: 3, Body: bytes.NewReader([]byte("abc"))})
	assert.True(t, domain.Is(err, "storage_unavailable"))

	stored, _ := f.bootcamps.GetByID(ctx, b.ID)
	assert.Equal(t, domain.DefaultBootcampImage, stored.Image)
}

func keys(d query.Document) []string {
	out := make([]string, 0, len(d))
	for k := range d {
		out = append(out, k)
	}
	return out
}
