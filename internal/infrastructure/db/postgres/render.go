package postgres

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/query"
)

var sqlOps = map[query.Op]string{
	query.OpEq:  "=",
	query.OpGt:  ">",
	query.OpGte: ">=",
	query.OpLt:  "<",
	query.OpLte: "<=",
}

// clause accumulates SQL fragments and their positional arguments.
type clause struct {
	where []string
	order []string
	args  []any
}

func (c *clause) arg(v any) string {
	c.args = append(c.args, v)
	return fmt.Sprintf("$%d", len(c.args))
}

// renderFilter turns conditions into WHERE conjuncts. A condition on a field
// outside the schema, or with a value of the wrong type, renders as FALSE.
func (c *clause) renderFilter(schema query.Schema, filter []query.Condition) {
	for _, cond := range filter {
		f, ok := schema.Lookup(cond.Field)
		if !ok {
			c.where = append(c.where, "FALSE")
			continue
		}

		if f.Type == query.TypeStringArray {
			s, isStr := cond.Value.(string)
			if cond.Op != query.OpEq || !isStr {
				c.where = append(c.where, "FALSE")
				continue
			}
			b, _ := json.Marshal([]string{s})
			c.where = append(c.where, fmt.Sprintf("%s @> %s::jsonb", f.Column, c.arg(string(b))))
			continue
		}

		op, ok := sqlOps[cond.Op]
		if !ok {
			c.where = append(c.where, "FALSE")
			continue
		}
		ph := c.arg(cond.Value)
		if f.Type == query.TypeNumber {
			// integer columns would otherwise infer an integer placeholder
			ph += "::double precision"
		}
		c.where = append(c.where, fmt.Sprintf("%s %s %s", f.Column, op, ph))
	}
}

// renderSort maps sort keys to ORDER BY terms, skipping unknown fields, and
// appends the id column so paging is stable.
func (c *clause) renderSort(schema query.Schema, keys []query.SortKey) {
	seen := map[string]bool{}
	for _, k := range keys {
		f, ok := schema.Lookup(k.Field)
		if !ok || seen[f.Name] || f.Type == query.TypeStringArray {
			continue
		}
		seen[f.Name] = true
		if k.Desc {
			c.order = append(c.order, f.Column+" DESC NULLS LAST")
		} else {
			c.order = append(c.order, f.Column+" ASC NULLS FIRST")
		}
	}
	if id, ok := schema.Lookup("id"); ok && !seen["id"] {
		c.order = append(c.order, id.Column+" ASC")
	}
}

func (c *clause) whereSQL() string {
	if len(c.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.where, " AND ")
}

func (c *clause) orderSQL() string {
	if len(c.order) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(c.order, ", ")
}

func (c *clause) windowSQL(skip, limit int) string {
	var b strings.Builder
	if limit > 0 {
		b.WriteString(" LIMIT " + c.arg(limit))
	}
	if skip > 0 {
		b.WriteString(" OFFSET " + c.arg(skip))
	}
	return b.String()
}

// selectSQL renders a full listing query over table (aliased) for spec.
func selectSQL(columns, table string, schema query.Schema, spec query.Spec) (string, []any) {
	var c clause
	c.renderFilter(schema, spec.Filter)
	c.renderSort(schema, spec.Sort)
	q := "SELECT " + columns + " FROM " + table + c.whereSQL() + c.orderSQL() + c.windowSQL(spec.Skip, spec.Limit)
	return q, c.args
}

func countSQL(table string, schema query.Schema, filter []query.Condition) (string, []any) {
	var c clause
	c.renderFilter(schema, filter)
	return "SELECT COUNT(*) FROM " + table + c.whereSQL(), c.args
}

// project keeps only the requested fields of a scanned document.
func project(doc query.Document, fields []string) query.Document {
	if len(fields) == 0 {
		return doc
	}
	return query.Project(doc, fields)
}
