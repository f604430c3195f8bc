package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/bootcamp"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/course"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/query"
)

func TestSelectSQL_FilterSortWindow(t *testing.T) {
	spec := query.Spec{
		Filter: []query.Condition{
			{Field: "averageCost", Op: query.OpGte, Value: 100.0},
			{Field: "housing", Op: query.OpEq, Value: true},
		},
		Sort:  []query.SortKey{{Field: "createdAt", Desc: true}},
		Page:  2,
		Limit: 5,
		Skip:  5,
	}

	q, args := selectSQL("b.id", "bootcamps b", bootcamp.Schema, spec)

	assert.Equal(t,
		"SELECT b.id FROM bootcamps b WHERE b.average_cost >= $1::double precision AND b.housing = $2"+
			" ORDER BY b.created_at DESC NULLS LAST, b.id ASC LIMIT $3 OFFSET $4",
		q)
	assert.Equal(t, []any{100.0, true, 5, 5}, args)
}

func TestSelectSQL_FractionalBoundOnIntegerColumn(t *testing.T) {
	spec := query.Spec{
		Filter: []query.Condition{
			{Field: "weeks", Op: query.OpLt, Value: 4.5},
			{Field: "version", Op: query.OpGte, Value: 1.0},
		},
	}

	q, args := countSQL("courses c", course.Schema, spec.Filter)

	assert.Equal(t,
		"SELECT COUNT(*) FROM courses c WHERE c.weeks < $1::double precision AND c.version >= $2::double precision",
		q)
	assert.Equal(t, []any{4.5, 1.0}, args)
}

func TestSelectSQL_UnknownFieldMatchesNothing(t *testing.T) {
	spec := query.Spec{
		Filter: []query.Condition{{Field: "nope", Op: query.OpEq, Value: "x"}},
		Limit:  10,
	}

	q, args := selectSQL("b.id", "bootcamps b", bootcamp.Schema, spec)

	assert.Contains(t, q, "WHERE FALSE")
	assert.Equal(t, []any{10}, args)
}

func TestSelectSQL_CareersContains(t *testing.T) {
	spec := query.Spec{
		Filter: []query.Condition{{Field: "careers", Op: query.OpEq, Value: "Business"}},
	}

	q, args := selectSQL("b.id", "bootcamps b", bootcamp.Schema, spec)

	assert.Contains(t, q, "b.careers @> $1::jsonb")
	require.Len(t, args, 1)
	assert.Equal(t, `["Business"]`, args[0])
}

func TestSelectSQL_RangeOnArrayRendersFalse(t *testing.T) {
	spec := query.Spec{
		Filter: []query.Condition{{Field: "careers", Op: query.OpGt, Value: "B"}},
	}

	q, args := selectSQL("b.id", "bootcamps b", bootcamp.Schema, spec)

	assert.Contains(t, q, "WHERE FALSE")
	assert.Empty(t, args)
}

func TestSelectSQL_SortSkipsUnknownAndDuplicates(t *testing.T) {
	spec := query.Spec{
		Sort: []query.SortKey{
			{Field: "bogus"},
			{Field: "name"},
			{Field: "name", Desc: true},
			{Field: "id", Desc: true},
		},
	}

	q, _ := selectSQL("b.id", "bootcamps b", bootcamp.Schema, spec)

	assert.Equal(t, "SELECT b.id FROM bootcamps b ORDER BY b.name ASC NULLS FIRST, b.id DESC NULLS LAST", q)
}

func TestCountSQL_DateCondition(t *testing.T) {
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	q, args := countSQL("bootcamps b", bootcamp.Schema, []query.Condition{
		{Field: "createdAt", Op: query.OpLt, Value: since},
	})

	assert.Equal(t, "SELECT COUNT(*) FROM bootcamps b WHERE b.created_at < $1", q)
	assert.Equal(t, []any{since}, args)
}

func TestProject(t *testing.T) {
	doc := query.Document{"id": "1", "name": "n", "version": int64(2)}

	assert.Equal(t, doc, project(doc, nil))
	assert.Equal(t, query.Document{"id": "1"}, project(doc, []string{"id", "missing"}))
}
