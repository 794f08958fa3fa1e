package obs

import "context"

type ctxKey int

const routePatternKey ctxKey = iota

// WithRoutePattern records the matched router template on the context so the
// logging and metrics layers label by pattern instead of raw URL path.
func WithRoutePattern(ctx context.Context, pattern string) context.Context {
	return context.WithValue(ctx, routePatternKey, pattern)
}

// RoutePatternFromContext returns the recorded pattern, or "" when the
// request never matched a route.
func RoutePatternFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	pattern, _ := ctx.Value(routePatternKey).(string)
	return pattern
}
