package usecase

import (
	"context"
	"fmt"

	"github.com/fadilmartias/ai-recruiter/internal/auth"
	"github.com/fadilmartias/ai-recruiter/internal/credential"
	"github.com/fadilmartias/ai-recruiter/internal/export"
	"github.com/fadilmartias/ai-recruiter/internal/lifecycle"
	"github.com/fadilmartias/ai-recruiter/internal/metrics"
	"github.com/fadilmartias/ai-recruiter/internal/model"
	"github.com/fadilmartias/ai-recruiter/internal/response"
	"github.com/fadilmartias/ai-recruiter/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CandidateUsecase serves a recruiter's view of their candidates.
type CandidateUsecase struct {
	candidates CandidateStore
	notifier   Notifier
	metrics    *metrics.Metrics
	log        *zap.Logger
}

func NewCandidateUsecase(candidates CandidateStore, notifier Notifier, m *metrics.Metrics, log *zap.Logger) *CandidateUsecase {
	return &CandidateUsecase{candidates: candidates, notifier: notifier, metrics: m, log: log.Named("candidates")}
}

// Gallery pages through the recruiter's hired candidates.
func (uc *CandidateUsecase) Gallery(ctx context.Context, page, pageSize int) ([]model.Candidate, *response.Pagination, error) {
	recruiter, ok := auth.Recruiter(ctx)
	if !ok {
		return nil, nil, ErrUnauthenticated
	}
	page, pageSize, offset := response.NormalizePage(page, pageSize)
	candidates, total, err := uc.candidates.ListByRecruiter(ctx, recruiter.Email, lifecycle.StatusSelected, offset, pageSize)
	if err != nil {
		return nil, nil, err
	}
	return candidates, response.NewPagination(page, pageSize, total), nil
}

// Export renders every candidate of the recruiter as an .xlsx workbook.
func (uc *CandidateUsecase) Export(ctx context.Context) ([]byte, error) {
	recruiter, ok := auth.Recruiter(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	candidates, _, err := uc.candidates.ListByRecruiter(ctx, recruiter.Email, "", 0, 0)
	if err != nil {
		return nil, err
	}
	return export.ShortlistWorkbook(candidates)
}

// ReissueCredentials replaces a shortlisted candidate's password and mails
// the new one. The quiz token is left untouched.
func (uc *CandidateUsecase) ReissueCredentials(ctx context.Context, id uuid.UUID) (service.Dispatch, error) {
	recruiter, ok := auth.Recruiter(ctx)
	if !ok {
		return service.Dispatch{}, ErrUnauthenticated
	}
	c, err := uc.candidates.FindByID(ctx, id)
	if err != nil {
		return service.Dispatch{}, err
	}
	if c.RecruiterEmail != recruiter.Email {
		return service.Dispatch{}, ErrForbidden
	}
	if c.Status != lifecycle.StatusShortlisted {
		return service.Dispatch{}, &StaleSessionError{Status: c.Status}
	}

	password, err := credential.GeneratePassword()
	if err != nil {
		return service.Dispatch{}, err
	}
	hash, err := credential.HashPassword(password)
	if err != nil {
		return service.Dispatch{}, err
	}
	updated, err := uc.candidates.UpdatePasswordHash(ctx, c.ID, hash)
	if err != nil {
		return service.Dispatch{}, fmt.Errorf("store password: %w", err)
	}
	if !updated {
		// status moved on between the read and the update
		status := c.Status
		if latest, err := uc.candidates.FindByID(ctx, c.ID); err == nil {
			status = latest.Status
		}
		return service.Dispatch{}, &StaleSessionError{Status: status}
	}

	d := uc.notifier.SendCredentials(service.CredentialsMail{
		Name:     c.CandidateName,
		Email:    c.Email,
		Password: password,
		QuizLink: c.QuizLink,
	})
	uc.metrics.EmailResult(service.MailKindCredentials, d.Success)
	uc.log.Info("credentials reissued", zap.String("email", c.Email), zap.Bool("sent", d.Success))
	return d, nil
}
