package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/fadilmartias/ai-recruiter/internal/auth"
	"github.com/fadilmartias/ai-recruiter/internal/lifecycle"
	"github.com/fadilmartias/ai-recruiter/internal/metrics"
	"github.com/fadilmartias/ai-recruiter/internal/model"
	"github.com/fadilmartias/ai-recruiter/internal/repository"
	"github.com/fadilmartias/ai-recruiter/internal/service"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

const recruiterEmail = "hr@acme.io"

func recruiterCtx() context.Context {
	return auth.WithIdentity(context.Background(), auth.Identity{Kind: auth.KindRecruiter, Email: recruiterEmail, Role: model.RoleRecruiter})
}

func candidateCtx(token, email string) context.Context {
	return auth.WithIdentity(context.Background(), auth.Identity{Kind: auth.KindCandidate, Email: email, QuizToken: token})
}

func testMetrics() *metrics.Metrics { return metrics.New() }

// ── candidate store ────────────────────────────────────────────────────────

type memCandidates struct {
	mu           sync.Mutex
	byToken      map[string]*model.Candidate
	failOnCreate int // 1-based Create call that fails; 0 never
	creates      int
	offerMarks   int
}

func newMemCandidates() *memCandidates {
	return &memCandidates{byToken: map[string]*model.Candidate{}}
}

func (m *memCandidates) Create(_ context.Context, c *model.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if m.failOnCreate == m.creates {
		return errors.New("insert failed")
	}
	if _, dup := m.byToken[c.QuizToken]; dup {
		return repository.ErrDuplicate
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	cp := *c
	m.byToken[c.QuizToken] = &cp
	return nil
}

func (m *memCandidates) FindByToken(_ context.Context, token string) (*model.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byToken[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCandidates) FindByID(_ context.Context, id uuid.UUID) (*model.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.byToken {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memCandidates) FindByEmail(_ context.Context, email string) (*model.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *model.Candidate
	for _, c := range m.byToken {
		if c.Email == email && (latest == nil || c.CreatedAt.After(latest.CreatedAt)) {
			latest = c
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (m *memCandidates) TransitionStatus(_ context.Context, token string, from, to lifecycle.Status, quizScore float64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byToken[token]
	if !ok || c.Status != from {
		return false, nil
	}
	c.Status = to
	c.QuizScore = &quizScore
	return true, nil
}

func (m *memCandidates) MarkOfferSent(_ context.Context, token string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offerMarks++
	m.byToken[token].OfferSentAt = &at
	return nil
}

func (m *memCandidates) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.byToken {
		if c.ID == id && c.Status == lifecycle.StatusShortlisted {
			c.PasswordHash = hash
			return true, nil
		}
	}
	return false, nil
}

func (m *memCandidates) ListByRecruiter(_ context.Context, email string, status lifecycle.Status, offset, limit int) ([]model.Candidate, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Candidate
	for _, c := range m.byToken {
		if c.RecruiterEmail == email && (status == "" || c.Status == status) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	total := int64(len(out))
	if limit > 0 {
		if offset > len(out) {
			offset = len(out)
		}
		end := offset + limit
		if end > len(out) {
			end = len(out)
		}
		out = out[offset:end]
	}
	return out, total, nil
}

func (m *memCandidates) all() []model.Candidate {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Candidate, 0, len(m.byToken))
	for _, c := range m.byToken {
		out = append(out, *c)
	}
	return out
}

// ── job store ──────────────────────────────────────────────────────────────

type memJobs struct {
	jobs []model.Job
}

func (m *memJobs) CreateJob(_ context.Context, job *model.Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	m.jobs = append(m.jobs, *job)
	return nil
}

func (m *memJobs) ListByRecruiter(_ context.Context, email string, limit int) ([]model.Job, error) {
	var out []model.Job
	for _, j := range m.jobs {
		if j.RecruiterEmail == email && len(out) < limit {
			out = append(out, j)
		}
	}
	return out, nil
}

func (m *memJobs) SearchJobs(_ context.Context, email string, _ pgvector.Vector, topK int) ([]model.Job, error) {
	var out []model.Job
	for _, j := range m.jobs {
		if j.RecruiterEmail == email && j.Embedding != nil && len(out) < topK {
			out = append(out, j)
		}
	}
	return out, nil
}

// ── recruiter store ────────────────────────────────────────────────────────

type memRecruiters struct {
	byEmail map[string]*model.Recruiter
}

func (m *memRecruiters) Create(_ context.Context, r *model.Recruiter) error {
	if m.byEmail == nil {
		m.byEmail = map[string]*model.Recruiter{}
	}
	if _, ok := m.byEmail[r.Email]; ok {
		return repository.ErrDuplicate
	}
	r.ID = uuid.New()
	cp := *r
	m.byEmail[r.Email] = &cp
	return nil
}

func (m *memRecruiters) FindByEmail(_ context.Context, email string) (*model.Recruiter, error) {
	r, ok := m.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

// ── collaborators ──────────────────────────────────────────────────────────

type fakeCompleter struct {
	reply  string
	err    error
	calls  int
	prompt string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.reply, f.err
}

func (f *fakeCompleter) Provider() string { return "fake" }

type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) Embed(context.Context, string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

type recordingNotifier struct {
	mu          sync.Mutex
	credentials []service.CredentialsMail
	offers      []service.OfferMail
	fail        bool
}

func (n *recordingNotifier) result() service.Dispatch {
	if n.fail {
		return service.Dispatch{Success: false, Message: "smtp down"}
	}
	return service.Dispatch{Success: true, Message: "Email sent successfully"}
}

func (n *recordingNotifier) SendCredentials(mail service.CredentialsMail) service.Dispatch {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.credentials = append(n.credentials, mail)
	return n.result()
}

func (n *recordingNotifier) SendOffer(mail service.OfferMail) service.Dispatch {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.offers = append(n.offers, mail)
	return n.result()
}

type recordingEvents struct {
	mu     sync.Mutex
	events []service.CandidateEvent
}

func (r *recordingEvents) Publish(_ context.Context, e service.CandidateEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}
