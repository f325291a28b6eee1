package redisrepo

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"code-assistant-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "assistant:session:"

// SessionRepository backs dialogue state with Redis so sessions survive a
// process restart. Same read-modify-write contract as the in-memory
// repository; the TTL mirrors the idle timeout.
type SessionRepository struct {
	client      *redis.Client
	idleTimeout time.Duration
}

func NewSessionRepository(redisURL string, idleTimeout time.Duration) (*SessionRepository, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	if idleTimeout <= 0 {
		idleTimeout = 1 * time.Hour
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &SessionRepository{
		client:      client,
		idleTimeout: idleTimeout,
	}, nil
}

func (r *SessionRepository) Save(session *store.Session) {
	data, err := json.Marshal(session)
	if err != nil {
		log.Printf("[ERROR] Failed to marshal session %s: %v", session.ID, err)
		return
	}
	if err := r.client.Set(context.Background(), keyPrefix+session.ID, data, r.idleTimeout).Err(); err != nil {
		log.Printf("[ERROR] Failed to save session %s to redis: %v", session.ID, err)
	}
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	data, err := r.client.Get(context.Background(), keyPrefix+sessionID).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[ERROR] Failed to read session %s from redis: %v", sessionID, err)
		}
		return nil, false
	}

	var session store.Session
	if err := json.Unmarshal(data, &session); err != nil {
		log.Printf("[ERROR] Failed to unmarshal session %s: %v", sessionID, err)
		return nil, false
	}
	return &session, true
}

func (r *SessionRepository) Delete(sessionID string) {
	if err := r.client.Del(context.Background(), keyPrefix+sessionID).Err(); err != nil {
		log.Printf("[ERROR] Failed to delete session %s from redis: %v", sessionID, err)
	}
}
