package query

import (
	"sort"
	"strings"
	"time"
)

// Matches reports whether doc satisfies every condition. A condition on a key
// the document does not carry matches nothing.
func Matches(doc Document, filter []Condition) bool {
	for _, c := range filter {
		if !matchOne(doc, c) {
			return false
		}
	}
	return true
}

func matchOne(doc Document, c Condition) bool {
	v, ok := doc[c.Field]
	if !ok || v == nil {
		return false
	}

	if list, isList := v.([]string); isList {
		if c.Op != OpEq {
			return false
		}
		want, _ := c.Value.(string)
		for _, item := range list {
			if item == want {
				return true
			}
		}
		return false
	}

	cmp, ok := compare(v, c.Value)
	if !ok {
		return false
	}
	switch c.Op {
	case OpEq:
		return cmp == 0
	case OpGt:
		return cmp > 0
	case OpGte:
		return cmp >= 0
	case OpLt:
		return cmp < 0
	case OpLte:
		return cmp <= 0
	}
	return false
}

// compare orders two scalar values of compatible kinds.
func compare(a, b any) (int, bool) {
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		}
		return 0, true
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(av, bv), true
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case av == bv:
			return 0, true
		case !av:
			return -1, true
		}
		return 1, true
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return av.Compare(bv), true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// SortDocuments orders docs in place by keys, left to right. Nil values sort
// first ascending and last descending; keys absent from docs are ignored.
func SortDocuments(docs []Document, keys []SortKey) {
	sort.SliceStable(docs, func(i, j int) bool {
		for _, k := range keys {
			a, b := docs[i][k.Field], docs[j][k.Field]
			c := compareNullable(a, b)
			if c == 0 {
				continue
			}
			if k.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func compareNullable(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	c, _ := compare(a, b)
	return c
}

// Project keeps only the listed keys of doc.
func Project(doc Document, fields []string) Document {
	out := make(Document, len(fields))
	for _, f := range fields {
		if v, ok := doc[f]; ok {
			out[f] = v
		}
	}
	return out
}

// Page returns the window [skip, skip+limit) of docs.
func Page(docs []Document, skip, limit int) []Document {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(docs) {
		return []Document{}
	}
	end := len(docs)
	if limit > 0 && limit < end-skip {
		end = skip + limit
	}
	return docs[skip:end]
}
