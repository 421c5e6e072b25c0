package stmt

import (
	"fmt"
	"strings"
)

// Op is a comparison operator usable in a WHERE condition.
type Op string

const (
	EQ        Op = "="
	NE        Op = "<>"
	GT        Op = ">"
	GE        Op = ">="
	LT        Op = "<"
	LE        Op = "<="
	IsNull    Op = "NULL"
	IsNotNull Op = "NOT NULL"
)

func (o Op) valid() bool {
	switch o {
	case EQ, NE, GT, GE, LT, LE, IsNull, IsNotNull:
		return true
	}
	return false
}

// unary operators take no value.
func (o Op) unary() bool {
	return o == IsNull || o == IsNotNull
}

var opNames = map[string]Op{
	"=": EQ, "EQ": EQ,
	"<>": NE, "!=": NE, "NE": NE,
	">": GT, "GT": GT,
	">=": GE, "GE": GE,
	"<": LT, "LT": LT,
	"<=": LE, "LE": LE,
	"NULL": IsNull, "IS NULL": IsNull,
	"NOT NULL": IsNotNull, "IS NOT NULL": IsNotNull,
}

// ParseOp resolves a symbol (">=") or name ("GE") to an Op.
func ParseOp(s string) (Op, error) {
	op, ok := opNames[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown operator %q", s)
	}
	return op, nil
}

type connective int

const (
	connNone connective = iota
	connAnd
	connOr
)

func (c connective) String() string {
	switch c {
	case connAnd:
		return "AND"
	case connOr:
		return "OR"
	}
	return ""
}

// WhereOp appends a condition. The first condition opens the WHERE clause;
// later ones must follow And or Or.
func (b *Builder) WhereOp(column string, op Op, value string) *Builder {
	if !b.usable("where") {
		return b
	}
	switch b.grammar {
	case grammarSelect, grammarUpdate, grammarDelete:
	case grammarInsert:
		return b.sequence("where", "where cannot be used with insert")
	default:
		return b.sequence("where", "select, update or delete must be called before any conditional")
	}
	if err := checkIdentifiers("where", column); err != nil {
		return b.fail(err)
	}
	if !op.valid() {
		return b.fail(&ArgumentError{Op: "where", Reason: fmt.Sprintf("unknown operator %q", op)})
	}

	switch {
	case b.phase == phaseTarget:
		b.write(" WHERE ")
		b.filtered = true
		b.phase = phaseFiltered
	case b.phase == phaseFiltered && b.pending != connNone:
		b.write(" ")
		b.pending = connNone
	case b.phase == phaseFiltered:
		return b.sequence("where", "dangling condition without connective")
	case b.phase == phaseHead:
		return b.sequence("where", "target table or assignment missing")
	default:
		return b.sequence("where", "conditions must precede pagination and returning")
	}
	b.writeCondition(column, op, value)
	return b
}

// Where appends an equality condition.
func (b *Builder) Where(column, value string) *Builder {
	return b.WhereOp(column, EQ, value)
}

// And joins the previous condition to the next one with AND.
func (b *Builder) And() *Builder {
	return b.connect("and", connAnd)
}

// Or joins the previous condition to the next one with OR.
func (b *Builder) Or() *Builder {
	return b.connect("or", connOr)
}

func (b *Builder) connect(name string, c connective) *Builder {
	if !b.usable(name) {
		return b
	}
	switch {
	case b.phase == phaseFiltered && b.pending == connNone:
		b.write(" " + c.String())
		b.pending = c
		return b
	case b.phase == phaseFiltered:
		return b.sequence(name, fmt.Sprintf("%s already pending", b.pending))
	case b.phase == phaseEmpty || b.phase == phaseHead || b.phase == phaseTarget:
		return b.sequence(name, fmt.Sprintf("%s needs where to be present", c))
	default:
		return b.sequence(name, "connectives must precede pagination and returning")
	}
}

func (b *Builder) writeCondition(column string, op Op, value string) {
	if op.unary() {
		b.write(fmt.Sprintf("%s IS %s", column, op))
		return
	}
	b.write(fmt.Sprintf("%s %s ", column, op))
	b.writeValue(value, conditionContext)
}
