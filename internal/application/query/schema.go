package query

// FieldType drives value coercion and comparison.
type FieldType int

const (
	TypeString FieldType = iota
	TypeNumber
	TypeBool
	TypeDate
	// TypeStringArray fields match equality as "contains".
	TypeStringArray
)

func (t FieldType) String() string {
	switch t {
	case TypeNumber:
		return "number"
	case TypeBool:
		return "bool"
	case TypeDate:
		return "date"
	case TypeStringArray:
		return "string array"
	default:
		return "string"
	}
}

// Field describes one filterable/sortable/projectable attribute of a resource.
// Column is the qualified SQL expression backing the field.
type Field struct {
	Name   string
	Column string
	Type   FieldType
	// Hidden fields are only returned when explicitly projected.
	Hidden bool
}

type Schema struct {
	fields map[string]Field
	order  []string
}

func NewSchema(fields ...Field) Schema {
	s := Schema{fields: make(map[string]Field, len(fields))}
	for _, f := range fields {
		if _, dup := s.fields[f.Name]; !dup {
			s.order = append(s.order, f.Name)
		}
		s.fields[f.Name] = f
	}
	return s
}

func (s Schema) Lookup(name string) (Field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Fields returns all fields in declaration order.
func (s Schema) Fields() []Field {
	out := make([]Field, 0, len(s.order))
	for _, n := range s.order {
		out = append(out, s.fields[n])
	}
	return out
}

// DefaultProjection lists every non-hidden field name.
func (s Schema) DefaultProjection() []string {
	out := make([]string, 0, len(s.order))
	for _, n := range s.order {
		if !s.fields[n].Hidden {
			out = append(out, n)
		}
	}
	return out
}
