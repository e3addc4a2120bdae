package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fadilmartias/ai-recruiter/internal/auth"
	"github.com/fadilmartias/ai-recruiter/internal/credential"
	"github.com/fadilmartias/ai-recruiter/internal/lifecycle"
	"github.com/fadilmartias/ai-recruiter/internal/metrics"
	"github.com/fadilmartias/ai-recruiter/internal/model"
	"github.com/fadilmartias/ai-recruiter/internal/quiz"
	"github.com/fadilmartias/ai-recruiter/internal/repository"
	"github.com/fadilmartias/ai-recruiter/internal/service"
	"github.com/fadilmartias/ai-recruiter/internal/util"
	"go.uber.org/zap"
)

type SubmitResult struct {
	quiz.Result
	Status           lifecycle.Status
	AlreadyProcessed bool
	Offer            *service.Dispatch
}

type QuizUsecase struct {
	candidates CandidateStore
	notifier   Notifier
	events     EventPublisher
	metrics    *metrics.Metrics
	log        *zap.Logger
	now        func() time.Time
}

func NewQuizUsecase(candidates CandidateStore, notifier Notifier, events EventPublisher, m *metrics.Metrics, log *zap.Logger) *QuizUsecase {
	return &QuizUsecase{
		candidates: candidates,
		notifier:   notifier,
		events:     events,
		metrics:    m,
		log:        log.Named("quiz"),
		now:        time.Now,
	}
}

// Login validates a candidate's token, email and password. Only candidates
// still SHORTLISTED may start the quiz.
func (uc *QuizUsecase) Login(ctx context.Context, token, email, password string) (*model.Candidate, error) {
	c, err := uc.candidates.FindByToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrAuthFailed
	}
	if err != nil {
		return nil, err
	}
	if c.Email != util.NormalizeEmail(email) || !credential.ComparePassword(c.PasswordHash, password) {
		return nil, ErrAuthFailed
	}
	if c.Status != lifecycle.StatusShortlisted {
		return nil, &StaleSessionError{Status: c.Status}
	}
	uc.log.Info("candidate logged in", zap.String("email", c.Email))
	return c, nil
}

// Questions returns the assessment to a logged-in candidate who has not
// finished it yet.
func (uc *QuizUsecase) Questions(ctx context.Context) ([]quiz.Question, error) {
	id, ok := auth.Candidate(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	c, err := uc.candidates.FindByToken(ctx, id.QuizToken)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrAuthFailed
	}
	if err != nil {
		return nil, err
	}
	if c.Status != lifecycle.StatusShortlisted {
		return nil, &StaleSessionError{Status: c.Status}
	}
	return quiz.Questions(), nil
}

// Submit grades the answers and moves the candidate out of SHORTLISTED in a
// single conditional update. When that update matches nothing the
// submission was already processed: nothing changes and no email is sent.
func (uc *QuizUsecase) Submit(ctx context.Context, answers map[string]string) (*SubmitResult, error) {
	id, ok := auth.Candidate(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	c, err := uc.candidates.FindByToken(ctx, id.QuizToken)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrAuthFailed
	}
	if err != nil {
		return nil, err
	}

	if c.Status != lifecycle.StatusShortlisted {
		return uc.alreadyProcessed(c), nil
	}

	graded := quiz.Grade(answers)
	target := lifecycle.Outcome(graded.Passed)

	changed, err := uc.candidates.TransitionStatus(ctx, c.QuizToken, lifecycle.StatusShortlisted, target, graded.Score)
	if err != nil {
		return nil, err
	}
	if !changed {
		// another submission won the update; report what it stored
		latest, err := uc.candidates.FindByToken(ctx, c.QuizToken)
		if err != nil {
			return nil, err
		}
		return uc.alreadyProcessed(latest), nil
	}

	score := graded.Score
	uc.metrics.QuizSubmissionsTotal.WithLabelValues(strings.ToLower(string(target))).Inc()
	uc.events.Publish(ctx, service.CandidateEvent{
		Type:           service.EventTypeFor(target),
		CandidateID:    c.ID,
		Email:          c.Email,
		RecruiterEmail: c.RecruiterEmail,
		From:           lifecycle.StatusShortlisted,
		To:             target,
		QuizScore:      &score,
	})
	uc.log.Info("quiz graded",
		zap.String("email", c.Email),
		zap.Float64("score", graded.Score),
		zap.String("status", string(target)))

	result := &SubmitResult{Result: graded, Status: target}
	if graded.Passed {
		d := uc.notifier.SendOffer(service.OfferMail{Name: c.CandidateName, Email: c.Email, QuizScore: graded.Score})
		uc.metrics.EmailResult(service.MailKindOffer, d.Success)
		result.Offer = &d
		if d.Success {
			if err := uc.candidates.MarkOfferSent(ctx, c.QuizToken, uc.now()); err != nil {
				uc.log.Warn("offer timestamp not recorded", zap.String("email", c.Email), zap.Error(err))
			}
		}
	}
	return result, nil
}

// alreadyProcessed reports the stored outcome. The new answers are not
// graded so the result cannot contradict the recorded status.
func (uc *QuizUsecase) alreadyProcessed(c *model.Candidate) *SubmitResult {
	uc.metrics.QuizSubmissionsTotal.WithLabelValues("already_processed").Inc()
	uc.log.Info("quiz submission already processed",
		zap.String("email", c.Email),
		zap.String("status", string(c.Status)))

	var stored quiz.Result
	if c.QuizScore != nil {
		stored = quiz.ResultFromScore(*c.QuizScore)
	} else {
		stored = quiz.Result{Total: len(quiz.Questions())}
	}
	return &SubmitResult{Result: stored, Status: c.Status, AlreadyProcessed: true}
}
