package usecase

import (
	"context"
	"fmt"

	"github.com/fadilmartias/ai-recruiter/internal/auth"
	"github.com/fadilmartias/ai-recruiter/internal/model"
	"github.com/pgvector/pgvector-go"
)

const (
	defaultJobLimit     = 20
	defaultSimilarLimit = 5
	maxJobLimit         = 100
)

type JobUsecase struct {
	jobs     JobStore
	embedder Embedder
}

// NewJobUsecase accepts a nil embedder; similarity search then reports
// ErrEmbedderUnavailable.
func NewJobUsecase(jobs JobStore, embedder Embedder) *JobUsecase {
	return &JobUsecase{jobs: jobs, embedder: embedder}
}

func (uc *JobUsecase) List(ctx context.Context, limit int) ([]model.Job, error) {
	recruiter, ok := auth.Recruiter(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return uc.jobs.ListByRecruiter(ctx, recruiter.Email, clampLimit(limit, defaultJobLimit))
}

// Similar returns the recruiter's past postings closest to query.
func (uc *JobUsecase) Similar(ctx context.Context, query string, limit int) ([]model.Job, error) {
	recruiter, ok := auth.Recruiter(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	if uc.embedder == nil {
		return nil, ErrEmbedderUnavailable
	}
	values, err := uc.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return uc.jobs.SearchJobs(ctx, recruiter.Email, pgvector.NewVector(values), clampLimit(limit, defaultSimilarLimit))
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > maxJobLimit {
		return maxJobLimit
	}
	return limit
}
