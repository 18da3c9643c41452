package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// SessionDuration is 7 days
	SessionDuration = 7 * 24 * time.Hour
	// SessionKeyPrefix is the Redis key prefix for sessions
	SessionKeyPrefix = "session:"
	// UserSessionKeyPrefix is the Redis key prefix for user->session mapping
	UserSessionKeyPrefix = "user_session:"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side state carried by an authenticated session:
// the identity's surrogate key plus the decrypted display email.
type Session struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// RedisSessions stores opaque sessions in Redis.
type RedisSessions struct {
	rdb *redis.Client
}

func NewRedisSessions(rdb *redis.Client) *RedisSessions {
	return &RedisSessions{rdb: rdb}
}

// Create invalidates any existing session for the user (no session fixation
// across logins) and stores a new one under a fresh opaque token.
func (s *RedisSessions) Create(ctx context.Context, sess Session) (string, error) {
	s.InvalidateUser(ctx, sess.UserID)

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	payload, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}

	sessionKey := SessionKeyPrefix + token
	userSessionKey := UserSessionKeyPrefix + formatUserID(sess.UserID)

	if err := s.rdb.Set(ctx, sessionKey, payload, SessionDuration).Err(); err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, userSessionKey, token, SessionDuration).Err(); err != nil {
		return "", err
	}

	return token, nil
}

// Get resolves a session token. Missing or expired tokens yield
// ErrSessionNotFound.
func (s *RedisSessions) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	payload, err := s.rdb.Get(ctx, SessionKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	sess := &Session{}
	if err := json.Unmarshal([]byte(payload), sess); err != nil {
		return nil, err
	}

	return sess, nil
}

// Destroy removes a session and its user mapping.
func (s *RedisSessions) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	sessionKey := SessionKeyPrefix + token

	payload, err := s.rdb.Get(ctx, sessionKey).Result()
	if err == nil && payload != "" {
		sess := Session{}
		if json.Unmarshal([]byte(payload), &sess) == nil {
			s.rdb.Del(ctx, UserSessionKeyPrefix+formatUserID(sess.UserID))
		}
	}

	return s.rdb.Del(ctx, sessionKey).Err()
}

// InvalidateUser removes the user's current session, if any.
func (s *RedisSessions) InvalidateUser(ctx context.Context, userID int64) error {
	userSessionKey := UserSessionKeyPrefix + formatUserID(userID)

	token, err := s.rdb.Get(ctx, userSessionKey).Result()
	if err == nil && token != "" {
		s.rdb.Del(ctx, SessionKeyPrefix+token)
	}

	return s.rdb.Del(ctx, userSessionKey).Err()
}

func formatUserID(id int64) string {
	return strconv.FormatInt(id, 10)
}
