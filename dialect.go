package stmt

import (
	"fmt"
	"strconv"
)

// Dialect describes how a backend spells placeholders and the clauses whose
// syntax differs between databases.
type Dialect struct {
	DriverName                string
	PlaceholderChar           string
	IncludeIndexInPlaceholder bool
	SupportsReturning         bool
	// OffsetBeforeLimit renders `OFFSET n LIMIT m` instead of `LIMIT m OFFSET n`.
	OffsetBeforeLimit bool
}

var Dialects = &struct {
	MySQL      *Dialect
	PostgreSQL *Dialect
	SQLite3    *Dialect
}{
	MySQL: &Dialect{
		DriverName:                "mysql",
		PlaceholderChar:           "?",
		IncludeIndexInPlaceholder: false,
		SupportsReturning:         false,
		OffsetBeforeLimit:         false,
	},
	PostgreSQL: &Dialect{
		DriverName:                "postgres",
		PlaceholderChar:           "$",
		IncludeIndexInPlaceholder: true,
		SupportsReturning:         true,
		OffsetBeforeLimit:         true,
	},
	SQLite3: &Dialect{
		DriverName:                "sqlite3",
		PlaceholderChar:           "?",
		IncludeIndexInPlaceholder: false,
		SupportsReturning:         true,
		OffsetBeforeLimit:         false,
	},
}

// Placeholder returns the placeholder for the n-th (1 based) argument.
func (d *Dialect) Placeholder(n int) string {
	if d.IncludeIndexInPlaceholder {
		return d.PlaceholderChar + strconv.Itoa(n)
	}
	return d.PlaceholderChar
}

func (d *Dialect) pagination(limit, offset int) string {
	if d.OffsetBeforeLimit {
		return fmt.Sprintf(" OFFSET %d LIMIT %d", offset, limit)
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
}

// DialectFor returns the dialect registered for a driver name.
func DialectFor(driver string) (*Dialect, error) {
	switch driver {
	case "mysql":
		return Dialects.MySQL, nil
	case "sqlite", "sqlite3":
		return Dialects.SQLite3, nil
	case "postgres", "postgresql", "pq":
		return Dialects.PostgreSQL, nil
	default:
		return nil, fmt.Errorf("no dialect matched with driver %q", driver)
	}
}
