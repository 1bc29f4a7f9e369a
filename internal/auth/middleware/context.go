package auth

import "context"

type ctxKey int

const subjectKey ctxKey = iota

// WithSubject attaches the authenticated user id (token subject) to ctx.
func WithSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, subjectKey, sub)
}

// SubjectFromContext returns the authenticated user id, or "" when the
// request did not pass the JWT middleware.
func SubjectFromContext(ctx context.Context) string {
	s, _ := ctx.Value(subjectKey).(string)
	return s
}
