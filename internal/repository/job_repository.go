package repository

import (
	"context"
	"strings"

	"github.com/fadilmartias/ai-recruiter/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db}
}

// SearchJobs returns a recruiter's postings nearest to embedding by L2
// distance. Postings stored without an embedding are skipped.
func (r *JobRepository) SearchJobs(ctx context.Context, recruiterEmail string, embedding pgvector.Vector, topK int) ([]model.Job, error) {
	var jobs []model.Job

	err := r.db.WithContext(ctx).Raw(`
        SELECT id, title, content, recruiter_email, shortlist_size, created_at, updated_at
        FROM jobs
        WHERE recruiter_email = ? AND embedding IS NOT NULL
        ORDER BY embedding <-> ?
        LIMIT ?
    `, strings.ToLower(recruiterEmail), embedding, topK).Scan(&jobs).Error

	return jobs, err
}

func (r *JobRepository) CreateJob(ctx context.Context, job *model.Job) error {
	job.RecruiterEmail = strings.ToLower(job.RecruiterEmail)
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *JobRepository) FindJobByID(ctx context.Context, id string) (*model.Job, error) {
	var j model.Job
	if err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &j, nil
}

func (r *JobRepository) ListByRecruiter(ctx context.Context, recruiterEmail string, limit int) ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.WithContext(ctx).
		Omit("embedding").
		Where("recruiter_email = ?", strings.ToLower(recruiterEmail)).
		Order("created_at DESC").
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}
