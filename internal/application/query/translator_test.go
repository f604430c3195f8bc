package query

import (
	"math"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

func testSchema() Schema {
	return NewSchema(
		Field{Name: "id", Column: "t.id", Type: TypeString},
		Field{Name: "name", Column: "t.name", Type: TypeString},
		Field{Name: "price", Column: "t.price", Type: TypeNumber},
		Field{Name: "housing", Column: "t.housing", Type: TypeBool},
		Field{Name: "careers", Column: "t.careers", Type: TypeStringArray},
		Field{Name: "createdAt", Column: "t.created_at", Type: TypeDate},
		Field{Name: "version", Column: "t.version", Type: TypeNumber, Hidden: true},
	)
}

func newTestTranslator() *Translator {
	return NewTranslator(testSchema(), Defaults{Sort: "-createdAt", Limit: 10, MaxLimit: 100})
}

func TestBuildQuery_RangePageAndSort(t *testing.T) {
	t.Parallel()

	params := url.Values{
		"price[gte]": {"100"},
		"sort":       {"-createdAt"},
		"limit":      {"5"},
		"page":       {"2"},
	}

	spec, err := newTestTranslator().BuildQuery(params)
	require.NoError(t, err)

	require.Len(t, spec.Filter, 1)
	assert.Equal(t, Condition{Field: "price", Op: OpGte, Value: 100.0}, spec.Filter[0])
	assert.Equal(t, []SortKey{{Field: "createdAt", Desc: true}}, spec.Sort)
	assert.Equal(t, 2, spec.Page)
	assert.Equal(t, 5, spec.Limit)
	assert.Equal(t, 5, spec.Skip)
}

func TestBuildQuery_Defaults(t *testing.T) {
	t.Parallel()

	spec, err := newTestTranslator().BuildQuery(url.Values{})
	require.NoError(t, err)

	assert.Empty(t, spec.Filter)
	assert.Equal(t, []SortKey{{Field: "createdAt", Desc: true}}, spec.Sort)
	assert.Equal(t, 1, spec.Page)
	assert.Equal(t, 10, spec.Limit)
	assert.Equal(t, 0, spec.Skip)
	assert.Equal(t, []string{"id", "name", "price", "housing", "careers", "createdAt"}, spec.Fields)
	assert.NotContains(t, spec.Fields, "version")
}

func TestBuildQuery_FieldsAlwaysIncludeID(t *testing.T) {
	t.Parallel()

	spec, err := newTestTranslator().BuildQuery(url.Values{"fields": {"name, version,name"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "version"}, spec.Fields)
}

func TestBuildQuery_SortMultipleKeys(t *testing.T) {
	t.Parallel()

	spec, err := newTestTranslator().BuildQuery(url.Values{"sort": {"name,-price"}})
	require.NoError(t, err)
	assert.Equal(t, []SortKey{{Field: "name"}, {Field: "price", Desc: true}}, spec.Sort)
}

func TestBuildQuery_LimitCappedAndBadPagingFallsBack(t *testing.T) {
	t.Parallel()

	spec, err := newTestTranslator().BuildQuery(url.Values{"limit": {"1000"}, "page": {"abc"}})
	require.NoError(t, err)
	assert.Equal(t, 100, spec.Limit)
	assert.Equal(t, 1, spec.Page)

	spec, err = newTestTranslator().BuildQuery(url.Values{"limit": {"0"}, "page": {"-3"}})
	require.NoError(t, err)
	assert.Equal(t, 10, spec.Limit)
	assert.Equal(t, 1, spec.Page)
}

func TestBuildQuery_HugePage(t *testing.T) {
	t.Parallel()

	spec, err := newTestTranslator().BuildQuery(url.Values{"page": {"9223372036854775807"}})
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt/10, spec.Page)
	assert.GreaterOrEqual(t, spec.Skip, 0)
	assert.Equal(t, (spec.Page-1)*10, spec.Skip)

	p := spec.Paginate(3)
	assert.Nil(t, p.Next)
	require.NotNil(t, p.Prev)
	assert.Equal(t, spec.Page-1, p.Prev.Page)

	assert.Empty(t, Page([]Document{{"id": "a"}, {"id": "b"}, {"id": "c"}}, spec.Skip, spec.Limit))

	// beyond int range falls back to the first page
	spec, err = newTestTranslator().BuildQuery(url.Values{"page": {"99999999999999999999"}})
	require.NoError(t, err)
	assert.Equal(t, 1, spec.Page)
	assert.Equal(t, 0, spec.Skip)
}

func TestBuildQuery_TypedCoercion(t *testing.T) {
	t.Parallel()

	params := url.Values{
		"housing":        {"true"},
		"careers":        {"UI/UX"},
		"createdAt[lt]":  {"2024-01-02"},
		"createdAt[gte]": {"2023-06-01T10:00:00Z"},
		"name":           {"Devworks"},
		"unknownField":   {"x"},
		"unknown[gt]":    {"7"},
	}
	spec, err := newTestTranslator().BuildQuery(params)
	require.NoError(t, err)

	byKey := map[string]Condition{}
	for _, c := range spec.Filter {
		byKey[c.Field+"/"+string(c.Op)] = c
	}

	assert.Equal(t, true, byKey["housing/eq"].Value)
	assert.Equal(t, "UI/UX", byKey["careers/eq"].Value)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), byKey["createdAt/lt"].Value)
	assert.Equal(t, time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC), byKey["createdAt/gte"].Value)
	assert.Equal(t, "Devworks", byKey["name/eq"].Value)
	assert.Equal(t, "x", byKey["unknownField/eq"].Value)
	assert.Equal(t, "7", byKey["unknown/gt"].Value)
}

func TestBuildQuery_RepeatedKeyYieldsMultipleConditions(t *testing.T) {
	t.Parallel()

	spec, err := newTestTranslator().BuildQuery(url.Values{"careers": {"UI/UX", "Business"}})
	require.NoError(t, err)
	require.Len(t, spec.Filter, 2)
	assert.Equal(t, "UI/UX", spec.Filter[0].Value)
	assert.Equal(t, "Business", spec.Filter[1].Value)
}

func TestBuildQuery_Rejects(t *testing.T) {
	t.Parallel()

	cases := map[string]url.Values{
		"unsupported operator": {"price[ne]": {"1"}},
		"in operator":          {"price[in]": {"1"}},
		"malformed operator":   {"price[gte": {"1"}},
		"non-numeric":          {"price[gte]": {"cheap"}},
		"bad date":             {"createdAt": {"yesterday"}},
		"bad bool":             {"housing": {"sometimes"}},
		"range on bool":        {"housing[gt]": {"true"}},
		"range on list":        {"careers[lt]": {"Other"}},
	}

	for name, params := range cases {
		params := params
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := newTestTranslator().BuildQuery(params)
			require.Error(t, err)
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		})
	}
}

func TestSpec_Paginate(t *testing.T) {
	t.Parallel()

	s := Spec{Page: 2, Limit: 5}

	p := s.Paginate(20)
	require.NotNil(t, p.Next)
	require.NotNil(t, p.Prev)
	assert.Equal(t, PageRef{Page: 3, Limit: 5}, *p.Next)
	assert.Equal(t, PageRef{Page: 1, Limit: 5}, *p.Prev)

	p = s.Paginate(10)
	assert.Nil(t, p.Next)
	assert.NotNil(t, p.Prev)

	p = Spec{Page: 1, Limit: 10}.Paginate(3)
	assert.Nil(t, p.Next)
	assert.Nil(t, p.Prev)
}

func TestSpec_WhereDoesNotAlias(t *testing.T) {
	t.Parallel()

	base := Spec{Filter: make([]Condition, 0, 4)}
	a := base.Where("bootcamp", "b1")
	b := base.Where("bootcamp", "b2")

	assert.Empty(t, base.Filter)
	assert.Equal(t, "b1", a.Filter[0].Value)
	assert.Equal(t, "b2", b.Filter[0].Value)
}
