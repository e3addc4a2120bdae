package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/ai-recruiter/internal/lifecycle"
	"github.com/fadilmartias/ai-recruiter/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CandidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db}
}

func (r *CandidateRepository) Create(ctx context.Context, c *model.Candidate) error {
	c.Email = strings.ToLower(c.Email)
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *CandidateRepository) FindByToken(ctx context.Context, token string) (*model.Candidate, error) {
	var c model.Candidate
	if err := r.db.WithContext(ctx).First(&c, "quiz_token = ?", token).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *CandidateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	var c model.Candidate
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// FindByEmail returns the most recent candidate record for an email.
func (r *CandidateRepository) FindByEmail(ctx context.Context, email string) (*model.Candidate, error) {
	var c model.Candidate
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		Order("created_at DESC").
		First(&c).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// TransitionStatus moves the candidate holding token from one status to
// another in a single conditional UPDATE, recording the quiz score. It
// reports false when no row was in the expected status.
func (r *CandidateRepository) TransitionStatus(ctx context.Context, token string, from, to lifecycle.Status, quizScore float64) (bool, error) {
	if !lifecycle.IsTransitionAllowed(from, to) {
		return false, fmt.Errorf("transition %s -> %s is not allowed", from, to)
	}
	res := r.db.WithContext(ctx).
		Model(&model.Candidate{}).
		Where("quiz_token = ? AND status = ?", token, from).
		Updates(map[string]any{
			"status":     to,
			"quiz_score": quizScore,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *CandidateRepository) MarkOfferSent(ctx context.Context, token string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Candidate{}).
		Where("quiz_token = ?", token).
		Update("offer_sent_at", at).Error
}

// UpdatePasswordHash replaces the hash only while the candidate is still
// shortlisted.
func (r *CandidateRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Candidate{}).
		Where("id = ? AND status = ?", id, lifecycle.StatusShortlisted).
		Update("password_hash", hash)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ListByRecruiter pages through a recruiter's candidates, newest first. An
// empty status matches every status.
func (r *CandidateRepository) ListByRecruiter(ctx context.Context, recruiterEmail string, status lifecycle.Status, offset, limit int) ([]model.Candidate, int64, error) {
	scope := func() *gorm.DB {
		q := r.db.WithContext(ctx).
			Model(&model.Candidate{}).
			Where("recruiter_email = ?", strings.ToLower(recruiterEmail))
		if status != "" {
			q = q.Where("status = ?", status)
		}
		return q
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var candidates []model.Candidate
	q := scope().Order("created_at DESC")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	if err := q.Find(&candidates).Error; err != nil {
		return nil, 0, err
	}
	return candidates, total, nil
}
