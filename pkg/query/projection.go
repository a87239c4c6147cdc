// Package query builds parameterized SELECT statements over a projection of
// view field names onto table columns.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps view field names to qualified columns of one table.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	columns []string
	fields  map[string]string
}

// NewProjectionMap creates an empty projection over schema.table aliased as alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		fields: make(map[string]string),
	}
}

// Project adds column under the view name field. Columns keep insertion order.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := fmt.Sprintf("%s.%s", p.alias, column)
	p.columns = append(p.columns, qualified)
	p.fields[field] = qualified
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the aliased table reference for a FROM clause.
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column resolves a view field name. Unknown names are returned unchanged.
func (p *ProjectionMap) Column(field string) string {
	if col, ok := p.fields[field]; ok {
		return col
	}
	return field
}

// Known reports whether field has been projected.
func (p *ProjectionMap) Known(field string) bool {
	_, ok := p.fields[field]
	return ok
}

// Columns returns the select list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columns, ", ")
}

// ColumnList returns a copy of the qualified columns in projection order.
func (p *ProjectionMap) ColumnList() []string {
	return append([]string(nil), p.columns...)
}
