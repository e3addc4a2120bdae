package repository

import (
	"context"
	"strings"

	"github.com/fadilmartias/ai-recruiter/internal/model"
	"gorm.io/gorm"
)

type RecruiterRepository struct {
	db *gorm.DB
}

func NewRecruiterRepository(db *gorm.DB) *RecruiterRepository {
	return &RecruiterRepository{db}
}

// Create inserts a recruiter; a taken email yields ErrDuplicate.
func (r *RecruiterRepository) Create(ctx context.Context, rec *model.Recruiter) error {
	rec.Email = strings.ToLower(rec.Email)
	return translate(r.db.WithContext(ctx).Create(rec).Error)
}

func (r *RecruiterRepository) FindByEmail(ctx context.Context, email string) (*model.Recruiter, error) {
	var rec model.Recruiter
	if err := r.db.WithContext(ctx).First(&rec, "email = ?", strings.ToLower(email)).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}
