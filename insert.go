package stmt

import (
	"fmt"
	"strings"
)

// Insert starts an INSERT INTO statement for the given columns.
func (b *Builder) Insert(table string, columns ...string) *Builder {
	if !b.start("insert") {
		return b
	}
	if err := checkIdentifiers("insert", table); err != nil {
		return b.fail(err)
	}
	if err := checkIdentifiers("insert", columns...); err != nil {
		return b.fail(err)
	}
	b.write(fmt.Sprintf("INSERT INTO %s (%s)", table, strings.Join(columns, ",")))
	b.grammar = grammarInsert
	b.columns = append([]string(nil), columns...)
	b.phase = phaseHead
	return b
}

// Values supplies one row, one value per insert column. Values are always
// written as quoted strings.
func (b *Builder) Values(values ...string) *Builder {
	if !b.usable("values") {
		return b
	}
	if b.grammar != grammarInsert || b.phase != phaseHead {
		return b.sequence("values", "insert function must be called before values, and values only once")
	}
	if len(values) != len(b.columns) {
		return b.fail(&ArgumentError{Op: "values", Reason: fmt.Sprintf("%d values for %d columns", len(values), len(b.columns))})
	}
	b.write(" VALUES (")
	b.writeValues(values)
	b.write(")")
	b.phase = phaseTarget
	return b
}
