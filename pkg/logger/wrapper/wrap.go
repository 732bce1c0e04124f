package wrap

import (
	"context"
	"errors"
)

// contextError carries the LogCtx of the operation that produced err, so the
// caller that finally logs it sees the session and action it failed under.
type contextError struct {
	err    error
	logCtx LogCtx
}

func (e *contextError) Error() string { return e.err.Error() }

func (e *contextError) Unwrap() error { return e.err }

// Error attaches the LogCtx of ctx to err. An error that already carries one
// gets it replaced by the fresher ctx value.
func Error(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var ce *contextError
	if errors.As(err, &ce) {
		if lc, ok := ctx.Value(LogCtxKey).(LogCtx); ok {
			ce.logCtx = lc
		}
		return err
	}

	return &contextError{err: err, logCtx: fromContext(ctx)}
}

// ErrorCtx returns ctx enriched with the LogCtx carried by err, if any.
func ErrorCtx(ctx context.Context, err error) context.Context {
	var ce *contextError
	if !errors.As(err, &ce) || ce == nil {
		return ctx
	}
	return context.WithValue(ctx, LogCtxKey, ce.logCtx)
}
