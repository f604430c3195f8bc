package query

// Document is a resource rendered as a field map keyed by public field names.
type Document = map[string]any

type Op string

const (
	OpEq  Op = "eq"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
)

func (o Op) IsRange() bool {
	return o == OpGt || o == OpGte || o == OpLt || o == OpLte
}

// Condition is one conjunct of a filter. Value is already coerced to the
// field's declared type, or is the raw string for fields outside the schema.
type Condition struct {
	Field string
	Op    Op
	Value any
}

type SortKey struct {
	Field string
	Desc  bool
}

// Spec is a store-agnostic description of a listing query.
type Spec struct {
	Filter []Condition
	Sort   []SortKey
	Fields []string
	Page   int
	Limit  int
	Skip   int
}

// Where returns a copy of s with an extra equality condition.
func (s Spec) Where(field string, value any) Spec {
	filter := make([]Condition, 0, len(s.Filter)+1)
	filter = append(filter, s.Filter...)
	s.Filter = append(filter, Condition{Field: field, Op: OpEq, Value: value})
	return s
}

type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// Paginate computes neighbour pages given the total number of matches.
func (s Spec) Paginate(total int) Pagination {
	var p Pagination
	if s.Page*s.Limit < total {
		p.Next = &PageRef{Page: s.Page + 1, Limit: s.Limit}
	}
	if s.Page > 1 {
		p.Prev = &PageRef{Page: s.Page - 1, Limit: s.Limit}
	}
	return p
}
