// Package querybuilder assembles the positional-placeholder SQL the
// repositories run through sqlx. It covers the two statement shapes the
// storage layer needs, selects with AND-combined predicates and plain
// multi-row inserts, and nothing more.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition renders one WHERE predicate. Conditions are always joined
// with AND.
type Condition interface {
	render(sql *strings.Builder, binder *argBinder)
}

// argBinder hands out $N placeholders and collects the bound values in
// placeholder order.
type argBinder struct {
	args []any
	next int
}

func newArgBinder() *argBinder {
	return &argBinder{next: 1}
}

func (b *argBinder) bind(value any) string {
	b.args = append(b.args, value)
	p := "$" + strconv.Itoa(b.next)
	b.next++
	return p
}

type eqCondition struct {
	column string
	value  any
}

// Eq matches column = value.
func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) render(sql *strings.Builder, binder *argBinder) {
	sql.WriteString(c.column)
	sql.WriteString(" = ")
	sql.WriteString(binder.bind(c.value))
}

type isNullCondition string

// IsNull matches column IS NULL. Soft-deleted rows are filtered with
// IsNull("deleted_at").
func IsNull(column string) Condition {
	return isNullCondition(column)
}

func (c isNullCondition) render(sql *strings.Builder, _ *argBinder) {
	sql.WriteString(string(c))
	sql.WriteString(" IS NULL")
}

type exprCondition struct {
	raw  string
	args []any
}

// Expr injects a raw predicate; each ? becomes the next positional
// placeholder bound to the matching argument.
func Expr(raw string, args ...any) Condition {
	return exprCondition{raw: raw, args: args}
}

func (c exprCondition) render(sql *strings.Builder, binder *argBinder) {
	if len(c.args) == 0 {
		sql.WriteString(c.raw)
		return
	}

	used := 0
	for i := 0; i < len(c.raw); i++ {
		if c.raw[i] == '?' && used < len(c.args) {
			sql.WriteString(binder.bind(c.args[used]))
			used++
			continue
		}
		sql.WriteByte(c.raw[i])
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var sql strings.Builder
	sql.WriteString("SELECT ")
	sql.WriteString(strings.Join(b.columns, ", "))
	sql.WriteString(" FROM ")
	sql.WriteString(b.table)

	binder := newArgBinder()
	writeWhere(&sql, b.where, binder)
	if len(b.orderBy) > 0 {
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		sql.WriteString(" LIMIT ")
		sql.WriteString(strconv.Itoa(b.limit))
	}

	return sql.String(), binder.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

// Values appends one row. Call repeatedly for a multi-row insert.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	var sql strings.Builder
	sql.WriteString("INSERT INTO ")
	sql.WriteString(b.table)
	sql.WriteString(" (")
	sql.WriteString(strings.Join(b.columns, ", "))
	sql.WriteString(") VALUES ")

	binder := newArgBinder()
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			sql.WriteString(", ")
		}
		sql.WriteString("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				sql.WriteString(", ")
			}
			sql.WriteString(binder.bind(value))
		}
		sql.WriteString(")")
	}

	return sql.String(), binder.args, nil
}

func writeWhere(sql *strings.Builder, conditions []Condition, binder *argBinder) {
	if len(conditions) == 0 {
		return
	}
	sql.WriteString(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			sql.WriteString(" AND ")
		}
		c.render(sql, binder)
	}
}
