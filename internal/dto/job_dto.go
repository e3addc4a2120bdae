package dto

import (
	"time"

	"github.com/google/uuid"
)

type JobDTO struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	ShortlistSize int       `json:"shortlist_size"`
	CreatedAt     time.Time `json:"created_at"`
}
