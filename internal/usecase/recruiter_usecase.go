package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/fadilmartias/ai-recruiter/internal/credential"
	"github.com/fadilmartias/ai-recruiter/internal/model"
	"github.com/fadilmartias/ai-recruiter/internal/repository"
	"github.com/fadilmartias/ai-recruiter/internal/util"
	"go.uber.org/zap"
)

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type RecruiterUsecase struct {
	recruiters RecruiterStore
	log        *zap.Logger
}

func NewRecruiterUsecase(recruiters RecruiterStore, log *zap.Logger) *RecruiterUsecase {
	return &RecruiterUsecase{recruiters: recruiters, log: log.Named("recruiter")}
}

func (uc *RecruiterUsecase) Signup(ctx context.Context, in SignupInput) (*model.Recruiter, error) {
	hash, err := credential.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = model.RoleRecruiter
	}
	r := &model.Recruiter{
		Name:         strings.TrimSpace(in.Name),
		Email:        util.NormalizeEmail(in.Email),
		PasswordHash: hash,
		Role:         role,
	}
	if err := uc.recruiters.Create(ctx, r); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	uc.log.Info("recruiter registered", zap.String("email", r.Email), zap.String("role", r.Role))
	return r, nil
}

// Login never reveals whether the email or the password was wrong.
func (uc *RecruiterUsecase) Login(ctx context.Context, email, password string) (*model.Recruiter, error) {
	r, err := uc.recruiters.FindByEmail(ctx, util.NormalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrAuthFailed
	}
	if err != nil {
		return nil, err
	}
	if !credential.ComparePassword(r.PasswordHash, password) {
		return nil, ErrAuthFailed
	}
	return r, nil
}
