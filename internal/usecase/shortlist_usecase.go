package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fadilmartias/ai-recruiter/internal/auth"
	"github.com/fadilmartias/ai-recruiter/internal/credential"
	"github.com/fadilmartias/ai-recruiter/internal/lifecycle"
	"github.com/fadilmartias/ai-recruiter/internal/metrics"
	"github.com/fadilmartias/ai-recruiter/internal/model"
	"github.com/fadilmartias/ai-recruiter/internal/ranking"
	"github.com/fadilmartias/ai-recruiter/internal/repository"
	"github.com/fadilmartias/ai-recruiter/internal/service"
	"github.com/fadilmartias/ai-recruiter/internal/util"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

type ShortlistInput struct {
	JobDescription string
	Resumes        []string
	TopN           int
	SendEmails     bool
}

type IssuedCandidate struct {
	Candidate model.Candidate
	Warnings  []string
	Dispatch  *service.Dispatch
}

type ShortlistResult struct {
	JobID    uuid.UUID
	Ranked   int
	Issued   []IssuedCandidate
	Rejected []ranking.RejectedRecord
}

type ShortlistUsecase struct {
	candidates  CandidateStore
	jobs        JobStore
	completer   Completer
	embedder    Embedder
	notifier    Notifier
	events      EventPublisher
	quizBaseURL string
	metrics     *metrics.Metrics
	log         *zap.Logger
}

// NewShortlistUsecase wires the ranking pipeline. embedder may be nil, in
// which case job postings are stored without an embedding.
func NewShortlistUsecase(
	candidates CandidateStore,
	jobs JobStore,
	completer Completer,
	embedder Embedder,
	notifier Notifier,
	events EventPublisher,
	quizBaseURL string,
	m *metrics.Metrics,
	log *zap.Logger,
) *ShortlistUsecase {
	return &ShortlistUsecase{
		candidates:  candidates,
		jobs:        jobs,
		completer:   completer,
		embedder:    embedder,
		notifier:    notifier,
		events:      events,
		quizBaseURL: quizBaseURL,
		metrics:     m,
		log:         log.Named("shortlist"),
	}
}

// Run ranks the résumés against the job description, keeps the top N and
// issues credentials to each of them. On a store failure midway the result
// holds the candidates already persisted and the error is a
// *credential.PartialIssueError.
func (uc *ShortlistUsecase) Run(ctx context.Context, in ShortlistInput) (*ShortlistResult, error) {
	recruiter, ok := auth.Recruiter(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	if in.TopN <= 0 {
		return nil, ranking.ErrInvalidCount
	}

	resumes := util.PrepareResumes(in.Resumes)
	prompt, err := ranking.BuildPrompt(in.JobDescription, resumes)
	if err != nil {
		return nil, err
	}

	ranked, rejected, err := uc.rank(ctx, prompt)
	if err != nil {
		return nil, err
	}
	for _, r := range rejected {
		uc.log.Warn("ranked record rejected",
			zap.Int("index", r.Index),
			zap.String("reason", r.Reason))
	}

	shortlisted, err := ranking.Select(ranked, in.TopN)
	if err != nil {
		return nil, err
	}

	job, err := uc.saveJob(ctx, recruiter.Email, in.JobDescription, in.TopN)
	if err != nil {
		return nil, err
	}

	issued, issueErr := uc.issue(ctx, shortlisted, job.ID, recruiter.Email)
	if in.SendEmails {
		uc.sendCredentials(issued)
	}
	for i := range issued {
		issued[i].password = ""
	}

	result := &ShortlistResult{
		JobID:    job.ID,
		Ranked:   len(ranked),
		Issued:   make([]IssuedCandidate, len(issued)),
		Rejected: rejected,
	}
	for i, is := range issued {
		result.Issued[i] = is.IssuedCandidate
	}

	uc.log.Info("shortlist issued",
		zap.String("recruiter", recruiter.Email),
		zap.String("job_id", job.ID.String()),
		zap.Int("resumes", len(resumes)),
		zap.Int("ranked", len(ranked)),
		zap.Int("issued", len(issued)))
	return result, issueErr
}

func (uc *ShortlistUsecase) rank(ctx context.Context, prompt string) ([]ranking.Candidate, []ranking.RejectedRecord, error) {
	provider := uc.completer.Provider()
	start := time.Now()
	text, err := uc.completer.Complete(ctx, prompt)
	uc.metrics.RankingDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	if err != nil {
		uc.metrics.RankingRequestsTotal.WithLabelValues(provider, "upstream_error").Inc()
		if !errors.Is(err, ranking.ErrUpstream) {
			err = fmt.Errorf("%w: %v", ranking.ErrUpstream, err)
		}
		uc.log.Error("ranking call failed", zap.String("provider", provider), zap.Error(err))
		return nil, nil, err
	}

	ranked, rejected, err := ranking.Parse(text)
	if err != nil {
		uc.metrics.RankingRequestsTotal.WithLabelValues(provider, "malformed").Inc()
		uc.log.Error("ranking output unparsable", zap.String("provider", provider), zap.Error(err))
		return nil, nil, err
	}
	uc.metrics.RankingRequestsTotal.WithLabelValues(provider, "ok").Inc()
	return ranked, rejected, nil
}

// saveJob records the posting. Embedding is best-effort.
func (uc *ShortlistUsecase) saveJob(ctx context.Context, recruiterEmail, description string, topN int) (*model.Job, error) {
	job := &model.Job{
		Title:          model.JobTitleFrom(description),
		Content:        description,
		RecruiterEmail: recruiterEmail,
		ShortlistSize:  topN,
	}
	if uc.embedder != nil {
		values, err := uc.embedder.Embed(ctx, description)
		if err != nil {
			uc.log.Warn("job embedding skipped", zap.Error(err))
		} else {
			vec := pgvector.NewVector(values)
			job.Embedding = &vec
		}
	}
	if err := uc.jobs.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("save job posting: %w", err)
	}
	return job, nil
}

type issuedWithPassword struct {
	IssuedCandidate
	password string
}

func (uc *ShortlistUsecase) issue(ctx context.Context, shortlisted []ranking.Candidate, jobID uuid.UUID, recruiterEmail string) ([]issuedWithPassword, error) {
	issued := make([]issuedWithPassword, 0, len(shortlisted))
	for _, sc := range shortlisted {
		cred, err := credential.Issue()
		if err == nil {
			c := model.Candidate{
				CandidateName:  sc.Candidate,
				Email:          util.NormalizeEmail(sc.Email),
				Score:          sc.Score,
				Reason:         sc.Reason,
				PasswordHash:   cred.PasswordHash,
				QuizToken:      cred.Token,
				QuizLink:       uc.quizBaseURL + cred.Token,
				Status:         lifecycle.StatusShortlisted,
				RecruiterEmail: recruiterEmail,
				JobID:          &jobID,
			}
			warnings := append(append([]string(nil), sc.Warnings...), uc.priorApplication(ctx, c.Email)...)
			if err = uc.candidates.Create(ctx, &c); err == nil {
				uc.metrics.CandidatesIssued.Inc()
				uc.events.Publish(ctx, service.CandidateEvent{
					Type:           service.EventCandidateShortlisted,
					CandidateID:    c.ID,
					Email:          c.Email,
					RecruiterEmail: recruiterEmail,
					To:             lifecycle.StatusShortlisted,
				})
				issued = append(issued, issuedWithPassword{
					IssuedCandidate: IssuedCandidate{Candidate: c, Warnings: warnings},
					password:        cred.Password,
				})
				continue
			}
		}

		persisted := make([]string, len(issued))
		for i, is := range issued {
			persisted[i] = is.Candidate.ID.String()
		}
		uc.log.Error("credential issuance stopped",
			zap.String("email", sc.Email),
			zap.Int("persisted", len(persisted)),
			zap.Error(err))
		return issued, &credential.PartialIssueError{Persisted: persisted, Failed: sc.Email, Err: err}
	}
	return issued, nil
}

// priorApplication notes an earlier candidate record with the same email.
// Lookup failures other than not-found are logged and ignored.
func (uc *ShortlistUsecase) priorApplication(ctx context.Context, email string) []string {
	prev, err := uc.candidates.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.log.Warn("prior application lookup failed", zap.String("email", email), zap.Error(err))
		}
		return nil
	}
	return []string{fmt.Sprintf("previously shortlisted on %s, status %s", prev.CreatedAt.Format("2006-01-02"), prev.Status)}
}

func (uc *ShortlistUsecase) sendCredentials(issued []issuedWithPassword) {
	for i := range issued {
		c := issued[i].Candidate
		d := uc.notifier.SendCredentials(service.CredentialsMail{
			Name:     c.CandidateName,
			Email:    c.Email,
			Password: issued[i].password,
			QuizLink: c.QuizLink,
		})
		uc.metrics.EmailResult(service.MailKindCredentials, d.Success)
		issued[i].Dispatch = &d
	}
}
