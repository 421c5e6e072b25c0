package stmt

import (
	"context"
	"fmt"
	"strings"
)

const (
	DefaultLimit  = 10
	DefaultOffset = 0
)

type grammar int

const (
	grammarNone grammar = iota
	grammarSelect
	grammarInsert
	grammarUpdate
	grammarDelete
)

func (g grammar) String() string {
	switch g {
	case grammarSelect:
		return "select"
	case grammarInsert:
		return "insert"
	case grammarUpdate:
		return "update"
	case grammarDelete:
		return "delete"
	}
	return "empty"
}

type phase int

const (
	phaseEmpty phase = iota
	// phaseHead: select columns, insert columns or update table written.
	phaseHead
	// phaseTarget: statement is complete enough to run (FROM, VALUES, SET, DELETE FROM).
	phaseTarget
	phaseFiltered
	phasePaginated
	phaseReturning
	phaseFinalized
)

var phaseNames = [...]string{"empty", "head", "target", "filtered", "paginated", "returning", "finalized"}

func (p phase) String() string {
	return phaseNames[p]
}

// Builder assembles a single SELECT, INSERT, UPDATE or DELETE statement.
//
// A Builder is single use and not safe for concurrent use. The first illegal
// call is recorded and returned by Err; every later call is a no-op and
// Execute reports the recorded error without touching the Executor.
type Builder struct {
	exec        Executor
	dialect     *Dialect
	policy      Policy
	interpolate bool

	grammar  grammar
	phase    phase
	pending  connective
	wildcard bool
	filtered bool
	columns  []string

	text strings.Builder
	tmpl strings.Builder
	args []any
	err  error
}

type Option func(*Builder)

// WithDialect selects placeholder and clause syntax. PostgreSQL is the default.
func WithDialect(d *Dialect) Option {
	return func(b *Builder) {
		if d != nil {
			b.dialect = d
		}
	}
}

func WithPolicy(p Policy) Option {
	return func(b *Builder) {
		b.policy = p
	}
}

// WithInterpolation makes Execute send the literal SQL() text instead of the
// placeholder template and its arguments.
func WithInterpolation(on bool) Option {
	return func(b *Builder) {
		b.interpolate = on
	}
}

// New returns an empty Builder that runs its statement on exec.
func New(exec Executor, opts ...Option) *Builder {
	b := &Builder{exec: exec, dialect: Dialects.PostgreSQL}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Err returns the first error recorded by the builder.
func (b *Builder) Err() error {
	return b.err
}

// SQL returns the statement with every value inlined as a literal.
func (b *Builder) SQL() string {
	return b.text.String()
}

// Template returns the statement with dialect placeholders and the arguments
// bound to them, in order.
func (b *Builder) Template() (string, []any) {
	args := make([]any, len(b.args))
	copy(args, b.args)
	return b.tmpl.String(), args
}

func (b *Builder) state() string {
	if b.grammar == grammarNone {
		return b.phase.String()
	}
	return fmt.Sprintf("%s/%s", b.grammar, b.phase)
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

func (b *Builder) sequence(op, reason string) *Builder {
	return b.fail(&SequenceError{Op: op, State: b.state(), Reason: reason})
}

// usable reports whether op may run at all; it records the finalized error.
func (b *Builder) usable(op string) bool {
	if b.err != nil {
		return false
	}
	if b.phase == phaseFinalized {
		b.sequence(op, "builder already finalized")
		return false
	}
	return true
}

func (b *Builder) start(op string) bool {
	if !b.usable(op) {
		return false
	}
	if b.phase != phaseEmpty {
		b.sequence(op, op+" must be called before any other function")
		return false
	}
	return true
}

func (b *Builder) write(s string) {
	b.text.WriteString(s)
	b.tmpl.WriteString(s)
}

func (b *Builder) writeValue(value string, ctx valueContext) {
	lit := serialize(value, ctx)
	b.args = append(b.args, lit.arg)
	b.text.WriteString(lit.text)
	b.tmpl.WriteString(b.dialect.Placeholder(len(b.args)))
}

// writeValues writes a comma separated list of data values.
func (b *Builder) writeValues(values []string) {
	phs := b.dialect.placeholders(len(b.args)+1, len(values))
	for i, v := range values {
		if i > 0 {
			b.write(",")
		}
		lit := serialize(v, dataContext)
		b.args = append(b.args, lit.arg)
		b.text.WriteString(lit.text)
		b.tmpl.WriteString(phs[i])
	}
}

// Returns appends a RETURNING clause to an INSERT, UPDATE or DELETE. A "*"
// anywhere in columns renders RETURNING *.
func (b *Builder) Returns(columns ...string) *Builder {
	if !b.usable("returns") {
		return b
	}
	switch b.grammar {
	case grammarSelect:
		return b.sequence("returns", "return cannot be used with select")
	case grammarNone:
		return b.sequence("returns", "insert, update or delete must be called before returns")
	}
	if b.phase != phaseTarget && b.phase != phaseFiltered {
		return b.sequence("returns", "statement target is incomplete or returning already set")
	}
	if b.pending != connNone {
		return b.sequence("returns", fmt.Sprintf("%s awaits a condition", b.pending))
	}
	if !b.dialect.SupportsReturning {
		return b.fail(&ArgumentError{Op: "returns", Reason: fmt.Sprintf("dialect %s has no RETURNING clause", b.dialect.DriverName)})
	}
	if err := checkIdentifiers("returns", columns...); err != nil {
		return b.fail(err)
	}
	for _, c := range columns {
		if c == "*" {
			b.write(" RETURNING *")
			b.phase = phaseReturning
			return b
		}
	}
	b.write(" RETURNING " + strings.Join(columns, ","))
	b.phase = phaseReturning
	return b
}

// Finalize terminates the statement and runs the Policy over it. The builder
// accepts no further calls afterwards, whether or not the policy passed.
func (b *Builder) Finalize() error {
	if !b.usable("finalize") {
		return b.err
	}
	if b.pending != connNone {
		b.sequence("finalize", fmt.Sprintf("dangling %s without condition", b.pending))
		return b.err
	}
	if b.phase < phaseTarget {
		b.sequence("finalize", "incomplete statement")
		return b.err
	}
	b.write(";")
	b.phase = phaseFinalized
	if err := b.policy.check(b); err != nil {
		b.fail(err)
		return err
	}
	return nil
}

// Execute finalizes the statement and runs it on the builder's Executor.
func (b *Builder) Execute(ctx context.Context) ([]Record, error) {
	if err := b.Finalize(); err != nil {
		return nil, err
	}
	if b.exec == nil {
		return nil, &ArgumentError{Op: "execute", Reason: "no executor configured"}
	}
	statement, args := b.Template()
	if b.interpolate {
		statement, args = b.SQL(), nil
	}
	records, err := b.exec.Query(ctx, statement, args...)
	if err != nil {
		if IsBackend(err) {
			return nil, err
		}
		return nil, &BackendError{Statement: statement, Err: err}
	}
	return records, nil
}
