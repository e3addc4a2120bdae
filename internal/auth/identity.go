// Package auth carries the authenticated caller through request contexts.
package auth

import "context"

type Kind string

const (
	KindRecruiter Kind = "recruiter"
	KindCandidate Kind = "candidate"
)

// Identity is the caller attached to a request by the session middleware.
// QuizToken is set only for candidates.
type Identity struct {
	Kind      Kind
	Email     string
	Role      string
	QuizToken string
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity attached to ctx, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// Recruiter returns the identity when the caller is a logged-in recruiter.
func Recruiter(ctx context.Context) (Identity, bool) {
	id, ok := FromContext(ctx)
	if !ok || id.Kind != KindRecruiter {
		return Identity{}, false
	}
	return id, true
}

// Candidate returns the identity when the caller is a logged-in candidate.
func Candidate(ctx context.Context) (Identity, bool) {
	id, ok := FromContext(ctx)
	if !ok || id.Kind != KindCandidate || id.QuizToken == "" {
		return Identity{}, false
	}
	return id, true
}
