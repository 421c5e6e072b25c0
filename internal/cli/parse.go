package cli

import (
	"fmt"
	"strings"

	"github.com/golobby/stmt"
)

type condition struct {
	column string
	op     stmt.Op
	value  string
}

// Longer symbols first so that at equal positions ">=" wins over ">".
var opSymbols = []string{"<>", "!=", ">=", "<=", "=", ">", "<"}

func parseCondition(raw string) (condition, error) {
	upper := strings.ToUpper(raw)
	for _, suffix := range []string{" IS NOT NULL", " IS NULL"} {
		if strings.HasSuffix(upper, suffix) {
			op, _ := stmt.ParseOp(strings.TrimSpace(suffix))
			column := strings.TrimSpace(raw[:len(raw)-len(suffix)])
			if column == "" {
				break
			}
			return condition{column: column, op: op}, nil
		}
	}

	at, sym := -1, ""
	for _, s := range opSymbols {
		if i := strings.Index(raw, s); i > 0 && (at < 0 || i < at) {
			at, sym = i, s
		}
	}
	if at > 0 {
		op, err := stmt.ParseOp(sym)
		if err != nil {
			return condition{}, err
		}
		return condition{
			column: strings.TrimSpace(raw[:at]),
			op:     op,
			value:  strings.TrimSpace(raw[at+len(sym):]),
		}, nil
	}
	return condition{}, fmt.Errorf("cannot parse condition %q", raw)
}

func parseAssignment(raw string) (string, string, error) {
	column, value, ok := strings.Cut(raw, "=")
	column = strings.TrimSpace(column)
	if !ok || column == "" {
		return "", "", fmt.Errorf("cannot parse assignment %q, want column=value", raw)
	}
	return column, value, nil
}
