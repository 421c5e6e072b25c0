package stmt

import (
	"fmt"
	"strings"
)

func postgresPlaceholders(n int) []string {
	output := []string{}
	for i := 1; i < n+1; i++ {
		output = append(output, fmt.Sprintf("$%d", i))
	}
	return output
}

func questionMarks(n int) []string {
	output := []string{}
	for i := 0; i < n; i++ {
		output = append(output, "?")
	}

	return output
}

// placeholders returns n placeholders for d, numbered from start.
func (d *Dialect) placeholders(start, n int) []string {
	if !d.IncludeIndexInPlaceholder {
		return questionMarks(n)
	}
	return postgresPlaceholders(start + n - 1)[start-1:]
}

// checkIdentifiers rejects empty lists and blank identifiers. Identifiers are
// otherwise passed through verbatim.
func checkIdentifiers(op string, names ...string) error {
	if len(names) == 0 {
		return &ArgumentError{Op: op, Reason: "empty column list"}
	}
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			return &ArgumentError{Op: op, Reason: "blank identifier"}
		}
	}
	return nil
}

func isWildcard(column string) bool {
	return column == "*" || strings.HasSuffix(column, ".*")
}
