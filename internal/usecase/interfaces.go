package usecase

import (
	"context"
	"time"

	"github.com/fadilmartias/ai-recruiter/internal/lifecycle"
	"github.com/fadilmartias/ai-recruiter/internal/model"
	"github.com/fadilmartias/ai-recruiter/internal/service"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Provider() string
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type Notifier interface {
	SendCredentials(mail service.CredentialsMail) service.Dispatch
	SendOffer(mail service.OfferMail) service.Dispatch
}

type EventPublisher interface {
	Publish(ctx context.Context, event service.CandidateEvent)
}

type CandidateStore interface {
	Create(ctx context.Context, c *model.Candidate) error
	FindByToken(ctx context.Context, token string) (*model.Candidate, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Candidate, error)
	FindByEmail(ctx context.Context, email string) (*model.Candidate, error)
	TransitionStatus(ctx context.Context, token string, from, to lifecycle.Status, quizScore float64) (bool, error)
	MarkOfferSent(ctx context.Context, token string, at time.Time) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) (bool, error)
	ListByRecruiter(ctx context.Context, recruiterEmail string, status lifecycle.Status, offset, limit int) ([]model.Candidate, int64, error)
}

type RecruiterStore interface {
	Create(ctx context.Context, r *model.Recruiter) error
	FindByEmail(ctx context.Context, email string) (*model.Recruiter, error)
}

type JobStore interface {
	CreateJob(ctx context.Context, job *model.Job) error
	ListByRecruiter(ctx context.Context, recruiterEmail string, limit int) ([]model.Job, error)
	SearchJobs(ctx context.Context, recruiterEmail string, embedding pgvector.Vector, topK int) ([]model.Job, error)
}

type AssetStore interface {
	Upsert(ctx context.Context, a *model.Asset) error
	FindByName(ctx context.Context, name string) (*model.Asset, error)
	ListNames(ctx context.Context) ([]string, error)
}
