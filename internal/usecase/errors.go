package usecase

import (
	"errors"
	"fmt"

	"github.com/fadilmartias/ai-recruiter/internal/lifecycle"
)

var (
	// ErrAuthFailed covers unknown token, email mismatch and wrong password
	// alike so callers cannot tell which field was wrong.
	ErrAuthFailed          = errors.New("invalid credentials")
	ErrUnauthenticated     = errors.New("login required")
	ErrForbidden           = errors.New("not allowed")
	ErrEmailTaken          = errors.New("email already registered")
	ErrEmbedderUnavailable = errors.New("similarity search requires an embedding provider")
)

// StaleSessionError is returned when a candidate's status moved on from
// SHORTLISTED, for instance after the quiz was already submitted.
type StaleSessionError struct {
	Status lifecycle.Status
}

func (e *StaleSessionError) Error() string {
	return fmt.Sprintf("quiz already completed: candidate status is %s", e.Status)
}
