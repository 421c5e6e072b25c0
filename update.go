package stmt

// Update starts an UPDATE statement.
func (b *Builder) Update(table string) *Builder {
	if !b.start("update") {
		return b
	}
	if err := checkIdentifiers("update", table); err != nil {
		return b.fail(err)
	}
	b.write("UPDATE " + table)
	b.grammar = grammarUpdate
	b.phase = phaseHead
	return b
}

// Set adds an assignment. Repeated calls build a comma separated list.
func (b *Builder) Set(column, value string) *Builder {
	if !b.usable("set") {
		return b
	}
	if b.grammar != grammarUpdate {
		return b.sequence("set", "update must be called before set")
	}
	if b.phase != phaseHead && b.phase != phaseTarget {
		return b.sequence("set", "assignments must precede conditions and returning")
	}
	if err := checkIdentifiers("set", column); err != nil {
		return b.fail(err)
	}
	if b.phase == phaseHead {
		b.write(" SET ")
	} else {
		b.write(", ")
	}
	b.write(column + " = ")
	b.writeValue(value, dataContext)
	b.columns = append(b.columns, column)
	b.phase = phaseTarget
	return b
}
