package stmt

import "context"

// Executor runs one finished statement and returns its rows. Statements that
// produce no rows return an empty slice.
type Executor interface {
	Query(ctx context.Context, statement string, args ...any) ([]Record, error)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, statement string, args ...any) ([]Record, error)

func (f ExecutorFunc) Query(ctx context.Context, statement string, args ...any) ([]Record, error) {
	return f(ctx, statement, args...)
}
