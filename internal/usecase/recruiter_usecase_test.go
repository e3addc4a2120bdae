package usecase

import (
	"context"
	"testing"

	"github.com/fadilmartias/ai-recruiter/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecruiter_SignupAndLogin(t *testing.T) {
	uc := NewRecruiterUsecase(&memRecruiters{}, zap.NewNop())
	ctx := context.Background()

	r, err := uc.Signup(ctx, SignupInput{Name: " Dana ", Email: "Dana@Acme.io", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "Dana", r.Name)
	assert.Equal(t, "dana@acme.io", r.Email)
	assert.Equal(t, model.RoleRecruiter, r.Role)
	assert.NotEqual(t, "s3cret-pass", r.PasswordHash)

	got, err := uc.Login(ctx, "DANA@acme.io", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
}

func TestRecruiter_DuplicateEmail(t *testing.T) {
	uc := NewRecruiterUsecase(&memRecruiters{}, zap.NewNop())
	ctx := context.Background()

	_, err := uc.Signup(ctx, SignupInput{Name: "A", Email: "a@acme.io", Password: "password1", Role: model.RoleAdmin})
	require.NoError(t, err)
	_, err = uc.Signup(ctx, SignupInput{Name: "B", Email: "A@ACME.IO", Password: "password2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRecruiter_LoginDoesNotDiscloseField(t *testing.T) {
	uc := NewRecruiterUsecase(&memRecruiters{}, zap.NewNop())
	ctx := context.Background()
	_, err := uc.Signup(ctx, SignupInput{Name: "A", Email: "a@acme.io", Password: "password1"})
	require.NoError(t, err)

	_, unknown := uc.Login(ctx, "nobody@acme.io", "password1")
	_, wrong := uc.Login(ctx, "a@acme.io", "password2")
	assert.ErrorIs(t, unknown, ErrAuthFailed)
	assert.ErrorIs(t, wrong, ErrAuthFailed)
	assert.Equal(t, unknown.Error(), wrong.Error())
}
