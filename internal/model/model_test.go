package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBeforeCreate_AssignsIDs(t *testing.T) {
	c := &Candidate{}
	assert.NoError(t, c.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, c.ID)

	fixed := uuid.New()
	c = &Candidate{ID: fixed}
	assert.NoError(t, c.BeforeCreate(nil))
	assert.Equal(t, fixed, c.ID)

	r := &Recruiter{}
	assert.NoError(t, r.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, RoleRecruiter, r.Role)

	j := &Job{}
	assert.NoError(t, j.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, j.ID)
}

func TestJobTitleFrom(t *testing.T) {
	assert.Equal(t, "Backend Developer", JobTitleFrom("\n\n  Backend Developer  \nPython, FastAPI"))
	assert.Equal(t, "", JobTitleFrom("   \n  "))
	long := make([]rune, 200)
	for i := range long {
		long[i] = 'é'
	}
	assert.Equal(t, 120, len([]rune(JobTitleFrom(string(long)))))
}
