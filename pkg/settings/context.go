package settings

import "context"

type runKey string

const settingsContextKey runKey = "colorder.run"

// IntoContext attaches the run options to ctx.
func IntoContext(ctx context.Context, s *Run) context.Context {
	return context.WithValue(ctx, settingsContextKey, s)
}

// FromContext returns the run options stored by IntoContext.
func FromContext(ctx context.Context) (*Run, bool) {
	s, ok := ctx.Value(settingsContextKey).(*Run)
	return s, ok
}
