package stmt

// Delete starts a DELETE FROM statement.
func (b *Builder) Delete(table string) *Builder {
	if !b.start("delete") {
		return b
	}
	if err := checkIdentifiers("delete", table); err != nil {
		return b.fail(err)
	}
	b.write("DELETE FROM " + table)
	b.grammar = grammarDelete
	b.phase = phaseTarget
	return b
}
