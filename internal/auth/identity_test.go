package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fadilmartias/ai-recruiter/internal/auth"
)

func TestFromContext_Empty(t *testing.T) {
	_, ok := auth.FromContext(context.Background())
	assert.False(t, ok)
}

func TestRecruiterAndCandidate(t *testing.T) {
	recruiter := auth.Identity{Kind: auth.KindRecruiter, Email: "hr@acme.io", Role: "admin"}
	candidate := auth.Identity{Kind: auth.KindCandidate, Email: "a@x.com", QuizToken: "tok"}

	rctx := auth.WithIdentity(context.Background(), recruiter)
	got, ok := auth.Recruiter(rctx)
	assert.True(t, ok)
	assert.Equal(t, recruiter, got)
	_, ok = auth.Candidate(rctx)
	assert.False(t, ok)

	cctx := auth.WithIdentity(context.Background(), candidate)
	got, ok = auth.Candidate(cctx)
	assert.True(t, ok)
	assert.Equal(t, candidate, got)
	_, ok = auth.Recruiter(cctx)
	assert.False(t, ok)
}

func TestCandidate_RequiresToken(t *testing.T) {
	ctx := auth.WithIdentity(context.Background(), auth.Identity{Kind: auth.KindCandidate, Email: "a@x.com"})
	_, ok := auth.Candidate(ctx)
	assert.False(t, ok)
}
