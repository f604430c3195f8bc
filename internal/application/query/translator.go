package query

import (
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

const (
	paramPage   = "page"
	paramSort   = "sort"
	paramLimit  = "limit"
	paramFields = "fields"
)

var reserved = map[string]bool{
	paramPage:   true,
	paramSort:   true,
	paramLimit:  true,
	paramFields: true,
}

type Defaults struct {
	Sort     string // e.g. "-createdAt"
	Limit    int
	MaxLimit int
}

// Translator turns untrusted query parameters into a Spec for one resource.
// It holds no mutable state and is safe for concurrent use.
type Translator struct {
	schema   Schema
	defaults Defaults
}

func NewTranslator(schema Schema, defaults Defaults) *Translator {
	if defaults.Limit < 1 {
		defaults.Limit = 10
	}
	if defaults.MaxLimit < defaults.Limit {
		defaults.MaxLimit = defaults.Limit
	}
	if defaults.Sort == "" {
		defaults.Sort = "-createdAt"
	}
	return &Translator{schema: schema, defaults: defaults}
}

func (t *Translator) Schema() Schema { return t.schema }

// BuildQuery never fails on an empty result; it only rejects parameters it
// cannot interpret (unknown operators, values that do not fit the field type).
func (t *Translator) BuildQuery(params url.Values) (Spec, error) {
	spec := Spec{}

	keys := make([]string, 0, len(params))
	for k := range params {
		if !reserved[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		field, op, err := parseKey(key)
		if err != nil {
			return Spec{}, err
		}
		for _, raw := range params[key] {
			value, err := t.coerce(key, field, op, raw)
			if err != nil {
				return Spec{}, err
			}
			spec.Filter = append(spec.Filter, Condition{Field: field, Op: op, Value: value})
		}
	}

	sortParam := params.Get(paramSort)
	if sortParam == "" {
		sortParam = t.defaults.Sort
	}
	spec.Sort = parseSort(sortParam)

	if fields := params.Get(paramFields); fields != "" {
		spec.Fields = withID(splitList(fields))
	} else {
		spec.Fields = withID(t.schema.DefaultProjection())
	}

	spec.Page = positiveInt(params.Get(paramPage), 1)
	spec.Limit = positiveInt(params.Get(paramLimit), t.defaults.Limit)
	if spec.Limit > t.defaults.MaxLimit {
		spec.Limit = t.defaults.MaxLimit
	}
	// page*limit must stay representable
	if spec.Limit > 0 && spec.Page > math.MaxInt/spec.Limit {
		spec.Page = math.MaxInt / spec.Limit
	}
	spec.Skip = (spec.Page - 1) * spec.Limit

	return spec, nil
}

// parseKey splits "price[gte]" into ("price", OpGte).
func parseKey(key string) (string, Op, error) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return key, OpEq, nil
	}
	if !strings.HasSuffix(key, "]") || open == 0 {
		return "", "", domain.ErrInvalidQuery(key, "malformed operator")
	}
	field := key[:open]
	switch op := Op(key[open+1 : len(key)-1]); op {
	case OpGt, OpGte, OpLt, OpLte:
		return field, op, nil
	default:
		return "", "", domain.ErrInvalidQuery(key, "unsupported operator "+string(op))
	}
}

func (t *Translator) coerce(param, field string, op Op, raw string) (any, error) {
	f, ok := t.schema.Lookup(field)
	if !ok {
		return raw, nil
	}

	switch f.Type {
	case TypeNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, domain.ErrInvalidQuery(param, "expected a number")
		}
		return n, nil
	case TypeDate:
		d, err := ParseDate(raw)
		if err != nil {
			return nil, domain.ErrInvalidQuery(param, "expected a date")
		}
		return d, nil
	case TypeBool:
		if op.IsRange() {
			return nil, domain.ErrInvalidQuery(param, "range operators are not supported on bool fields")
		}
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, domain.ErrInvalidQuery(param, "expected true or false")
		}
		return b, nil
	case TypeStringArray:
		if op.IsRange() {
			return nil, domain.ErrInvalidQuery(param, "range operators are not supported on list fields")
		}
		return raw, nil
	default:
		return raw, nil
	}
}

// ParseDate accepts RFC3339 timestamps and plain YYYY-MM-DD dates (UTC midnight).
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if d, err := time.Parse(time.RFC3339, raw); err == nil {
		return d.UTC(), nil
	}
	d, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, err
	}
	return d.UTC(), nil
}

func parseSort(s string) []SortKey {
	var keys []SortKey
	for _, part := range splitList(s) {
		desc := strings.HasPrefix(part, "-")
		name := strings.TrimLeft(part, "-+")
		if name == "" {
			continue
		}
		keys = append(keys, SortKey{Field: name, Desc: desc})
	}
	return keys
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func withID(fields []string) []string {
	out := []string{"id"}
	seen := map[string]bool{"id": true}
	for _, f := range fields {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

func positiveInt(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return def
	}
	return n
}
