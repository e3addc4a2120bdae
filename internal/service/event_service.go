package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fadilmartias/ai-recruiter/internal/lifecycle"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	EventCandidateShortlisted = "CANDIDATE_SHORTLISTED"
	EventCandidateSelected    = "CANDIDATE_SELECTED"
	EventCandidateRejected    = "CANDIDATE_REJECTED"
)

// CandidateEvent is published on every lifecycle change.
type CandidateEvent struct {
	Type           string           `json:"type"`
	CandidateID    uuid.UUID        `json:"candidate_id"`
	Email          string           `json:"email"`
	RecruiterEmail string           `json:"recruiter_email"`
	From           lifecycle.Status `json:"from,omitempty"`
	To             lifecycle.Status `json:"to"`
	QuizScore      *float64         `json:"quiz_score,omitempty"`
	At             time.Time        `json:"at"`
}

// EventTypeFor names the event emitted on entering status.
func EventTypeFor(status lifecycle.Status) string {
	switch status {
	case lifecycle.StatusSelected:
		return EventCandidateSelected
	case lifecycle.StatusRejected:
		return EventCandidateRejected
	default:
		return EventCandidateShortlisted
	}
}

type publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// EventService publishes candidate events to Redis Pub/Sub. A nil client
// disables publishing.
type EventService struct {
	rdb     publisher
	channel string
	log     *zap.Logger
}

func NewEventService(rdb *redis.Client, channel string, log *zap.Logger) *EventService {
	s := &EventService{channel: channel, log: log.Named("events")}
	if rdb != nil {
		s.rdb = rdb
	}
	return s
}

// NewRedisClient parses REDIS_URL and checks connectivity.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// Publish is fire-and-forget: failures are logged and dropped.
func (s *EventService) Publish(ctx context.Context, event CandidateEvent) {
	if s.rdb == nil {
		return
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.log.Warn("marshal candidate event failed", zap.Error(err))
		return
	}
	if err := s.rdb.Publish(ctx, s.channel, payload).Err(); err != nil {
		s.log.Warn("publish candidate event failed",
			zap.String("type", event.Type),
			zap.String("candidate_id", event.CandidateID.String()),
			zap.Error(err))
	}
}
