package stmt

import "strings"

// Select starts a SELECT statement.
func (b *Builder) Select(columns ...string) *Builder {
	if !b.start("select") {
		return b
	}
	if err := checkIdentifiers("select", columns...); err != nil {
		return b.fail(err)
	}
	for _, c := range columns {
		if isWildcard(c) {
			b.wildcard = true
		}
	}
	b.write("SELECT " + strings.Join(columns, ", "))
	b.grammar = grammarSelect
	b.columns = append([]string(nil), columns...)
	b.phase = phaseHead
	return b
}

func (b *Builder) From(table string) *Builder {
	if !b.usable("from") {
		return b
	}
	if b.grammar != grammarSelect || b.phase != phaseHead {
		return b.sequence("from", "from should be called once, right after select")
	}
	if err := checkIdentifiers("from", table); err != nil {
		return b.fail(err)
	}
	b.write(" FROM " + table)
	b.phase = phaseTarget
	return b
}

// Paginate bounds a SELECT. The clause order follows the dialect.
func (b *Builder) Paginate(limit, offset int) *Builder {
	if !b.usable("paginate") {
		return b
	}
	if b.grammar != grammarSelect {
		return b.sequence("paginate", "paginate is only available for select")
	}
	if b.phase != phaseTarget && b.phase != phaseFiltered {
		return b.sequence("paginate", "select and from should be called before paginate, and only once")
	}
	if b.pending != connNone {
		return b.sequence("paginate", b.pending.String()+" awaits a condition")
	}
	if limit < 0 || offset < 0 {
		return b.fail(&ArgumentError{Op: "paginate", Reason: "limit and offset must not be negative"})
	}
	b.write(b.dialect.pagination(limit, offset))
	b.phase = phasePaginated
	return b
}

// Page is Paginate(DefaultLimit, DefaultOffset).
func (b *Builder) Page() *Builder {
	return b.Paginate(DefaultLimit, DefaultOffset)
}
