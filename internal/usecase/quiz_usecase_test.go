package usecase

import (
	"context"
	"testing"

	"github.com/fadilmartias/ai-recruiter/internal/credential"
	"github.com/fadilmartias/ai-recruiter/internal/lifecycle"
	"github.com/fadilmartias/ai-recruiter/internal/model"
	"github.com/fadilmartias/ai-recruiter/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	passingAnswers = map[string]string{"q1": "8", "q2": "def", "q3": "List", "q4": ".py", "q5": "5"}
	failingAnswers = map[string]string{"q1": "8", "q2": "def", "q3": "List"}
)

type quizFixture struct {
	uc         *QuizUsecase
	candidates *memCandidates
	notifier   *recordingNotifier
	events     *recordingEvents
	candidate  model.Candidate
	password   string
}

func newQuizFixture(t *testing.T) *quizFixture {
	t.Helper()
	issued, err := credential.Issue()
	require.NoError(t, err)

	f := &quizFixture{
		candidates: newMemCandidates(),
		notifier:   &recordingNotifier{},
		events:     &recordingEvents{},
		password:   issued.Password,
	}
	f.candidate = model.Candidate{
		CandidateName:  "John Doe",
		Email:          "john.doe@gmail.com",
		PasswordHash:   issued.PasswordHash,
		QuizToken:      issued.Token,
		Status:         lifecycle.StatusShortlisted,
		RecruiterEmail: recruiterEmail,
	}
	require.NoError(t, f.candidates.Create(context.Background(), &f.candidate))
	f.uc = NewQuizUsecase(f.candidates, f.notifier, f.events, testMetrics(), zap.NewNop())
	return f
}

func (f *quizFixture) ctx() context.Context {
	return candidateCtx(f.candidate.QuizToken, f.candidate.Email)
}

// ── Login ──────────────────────────────────────────────────────────────────

func TestQuizLogin_Success(t *testing.T) {
	f := newQuizFixture(t)

	c, err := f.uc.Login(context.Background(), f.candidate.QuizToken, "  John.Doe@Gmail.com ", f.password)
	require.NoError(t, err)
	assert.Equal(t, f.candidate.ID, c.ID)
}

func TestQuizLogin_FailuresDoNotDiscloseField(t *testing.T) {
	f := newQuizFixture(t)

	cases := []struct {
		name, token, email, password string
	}{
		{"unknown token", "no-such-token", f.candidate.Email, f.password},
		{"wrong email", f.candidate.QuizToken, "other@gmail.com", f.password},
		{"wrong password", f.candidate.QuizToken, f.candidate.Email, f.password + "x"},
		{"empty everything", "", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Login(context.Background(), tc.token, tc.email, tc.password)
			assert.ErrorIs(t, err, ErrAuthFailed)
		})
	}
}

func TestQuizLogin_StaleSessionNamesStatus(t *testing.T) {
	f := newQuizFixture(t)
	_, err := f.uc.Submit(f.ctx(), failingAnswers)
	require.NoError(t, err)

	_, err = f.uc.Login(context.Background(), f.candidate.QuizToken, f.candidate.Email, f.password)
	var stale *StaleSessionError
	require.ErrorAs(t, err, &stale)
	assert.Equal(t, lifecycle.StatusRejected, stale.Status)
	assert.Contains(t, err.Error(), "REJECTED")
}

// ── Questions ──────────────────────────────────────────────────────────────

func TestQuizQuestions(t *testing.T) {
	f := newQuizFixture(t)

	qs, err := f.uc.Questions(f.ctx())
	require.NoError(t, err)
	assert.Len(t, qs, 5)

	_, err = f.uc.Questions(recruiterCtx())
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.uc.Questions(candidateCtx("gone", "x@x.com"))
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestQuizQuestions_ClosedAfterSubmission(t *testing.T) {
	f := newQuizFixture(t)
	_, err := f.uc.Submit(f.ctx(), passingAnswers)
	require.NoError(t, err)

	_, err = f.uc.Questions(f.ctx())
	var stale *StaleSessionError
	require.ErrorAs(t, err, &stale)
	assert.Equal(t, lifecycle.StatusSelected, stale.Status)
}

// ── Submit ─────────────────────────────────────────────────────────────────

func TestQuizSubmit_PassSelectsAndSendsOffer(t *testing.T) {
	f := newQuizFixture(t)

	res, err := f.uc.Submit(f.ctx(), passingAnswers)
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.Score)
	assert.True(t, res.Passed)
	assert.Equal(t, lifecycle.StatusSelected, res.Status)
	assert.False(t, res.AlreadyProcessed)
	require.NotNil(t, res.Offer)
	assert.True(t, res.Offer.Success)

	require.Len(t, f.notifier.offers, 1)
	assert.Equal(t, service.OfferMail{Name: "John Doe", Email: "john.doe@gmail.com", QuizScore: 100}, f.notifier.offers[0])

	stored, _ := f.candidates.FindByToken(context.Background(), f.candidate.QuizToken)
	assert.Equal(t, lifecycle.StatusSelected, stored.Status)
	require.NotNil(t, stored.QuizScore)
	assert.Equal(t, 100.0, *stored.QuizScore)
	assert.NotNil(t, stored.OfferSentAt)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, service.EventCandidateSelected, f.events.events[0].Type)
}

func TestQuizSubmit_FailRejectsWithoutOffer(t *testing.T) {
	f := newQuizFixture(t)

	res, err := f.uc.Submit(f.ctx(), failingAnswers)
	require.NoError(t, err)
	assert.Equal(t, 60.0, res.Score)
	assert.Equal(t, lifecycle.StatusRejected, res.Status)
	assert.Nil(t, res.Offer)
	assert.Empty(t, f.notifier.offers)

	stored, _ := f.candidates.FindByToken(context.Background(), f.candidate.QuizToken)
	assert.Equal(t, lifecycle.StatusRejected, stored.Status)
	assert.Nil(t, stored.OfferSentAt)
}

func TestQuizSubmit_ResubmissionIsNoop(t *testing.T) {
	f := newQuizFixture(t)

	_, err := f.uc.Submit(f.ctx(), passingAnswers)
	require.NoError(t, err)

	for _, answers := range []map[string]string{passingAnswers, failingAnswers} {
		res, err := f.uc.Submit(f.ctx(), answers)
		require.NoError(t, err)
		assert.True(t, res.AlreadyProcessed)
		assert.Equal(t, lifecycle.StatusSelected, res.Status)
		assert.Equal(t, 100.0, res.Score)
		assert.True(t, res.Passed)
		assert.Nil(t, res.Offer)
	}

	assert.Len(t, f.notifier.offers, 1)
	assert.Equal(t, 1, f.candidates.offerMarks)
	assert.Len(t, f.events.events, 1)
	stored, _ := f.candidates.FindByToken(context.Background(), f.candidate.QuizToken)
	assert.Equal(t, 100.0, *stored.QuizScore)
}

func TestQuizSubmit_ResubmissionReportsStoredOutcome(t *testing.T) {
	f := newQuizFixture(t)

	_, err := f.uc.Submit(f.ctx(), failingAnswers)
	require.NoError(t, err)

	res, err := f.uc.Submit(f.ctx(), passingAnswers)
	require.NoError(t, err)
	assert.True(t, res.AlreadyProcessed)
	assert.Equal(t, lifecycle.StatusRejected, res.Status)
	assert.Equal(t, 60.0, res.Score)
	assert.Equal(t, 3, res.Correct)
	assert.False(t, res.Passed)
	assert.Nil(t, res.Offer)
	assert.Empty(t, f.notifier.offers)

	stored, _ := f.candidates.FindByToken(context.Background(), f.candidate.QuizToken)
	assert.Equal(t, lifecycle.StatusRejected, stored.Status)
	assert.Equal(t, 60.0, *stored.QuizScore)
}

// racingCandidates lets a competing submission land between the read and
// the conditional update.
type racingCandidates struct {
	*memCandidates
	raced bool
}

func (r *racingCandidates) TransitionStatus(ctx context.Context, token string, from, to lifecycle.Status, quizScore float64) (bool, error) {
	if !r.raced {
		r.raced = true
		if _, err := r.memCandidates.TransitionStatus(ctx, token, from, lifecycle.StatusRejected, 20); err != nil {
			return false, err
		}
	}
	return r.memCandidates.TransitionStatus(ctx, token, from, to, quizScore)
}

func TestQuizSubmit_LosingConcurrentSubmissionIsNoop(t *testing.T) {
	f := newQuizFixture(t)
	racing := &racingCandidates{memCandidates: f.candidates}
	f.uc = NewQuizUsecase(racing, f.notifier, f.events, testMetrics(), zap.NewNop())

	res, err := f.uc.Submit(f.ctx(), passingAnswers)
	require.NoError(t, err)
	assert.True(t, res.AlreadyProcessed)
	assert.Equal(t, lifecycle.StatusRejected, res.Status)
	assert.Equal(t, 20.0, res.Score)
	assert.False(t, res.Passed)
	assert.Empty(t, f.notifier.offers)
	assert.Empty(t, f.events.events)
}

func TestQuizSubmit_FailedOfferIsNotMarked(t *testing.T) {
	f := newQuizFixture(t)
	f.notifier.fail = true

	res, err := f.uc.Submit(f.ctx(), passingAnswers)
	require.NoError(t, err)
	require.NotNil(t, res.Offer)
	assert.False(t, res.Offer.Success)
	assert.Equal(t, "smtp down", res.Offer.Message)
	assert.Zero(t, f.candidates.offerMarks)
}

func TestQuizSubmit_UnknownTokenInSession(t *testing.T) {
	f := newQuizFixture(t)

	_, err := f.uc.Submit(candidateCtx("gone", "x@x.com"), passingAnswers)
	assert.ErrorIs(t, err, ErrAuthFailed)

	_, err = f.uc.Submit(context.Background(), passingAnswers)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
