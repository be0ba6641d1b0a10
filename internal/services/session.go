package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gotweet/gotweet/internal/config"
	"github.com/gotweet/gotweet/internal/models"
	"github.com/gotweet/gotweet/pkg/cache"
	"github.com/gotweet/gotweet/pkg/logger"
)

const (
	sessionKeyPrefix = "session:"
	flashKeyPrefix   = "flash:"
)

// SessionService issues and validates browser sessions. The cookie value is a
// signed JWT carrying the user id and a session id; Redis holds the session
// id with a TTL so logout revokes immediately instead of waiting for token
// expiry. Flash messages live next to the session under their own key and are
// consumed on first read.
type SessionService struct {
	cache  *cache.RedisClient
	secret []byte
	ttl    time.Duration
	logger *logger.Logger
}

type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

const (
	FlashInfo    = "info"
	FlashSuccess = "success"
	FlashError   = "error"
)

func NewSessionService(cache *cache.RedisClient, cfg *config.SessionConfig, logger *logger.Logger) *SessionService {
	return &SessionService{
		cache:  cache,
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		logger: logger,
	}
}

// Create opens a session for the user and returns the cookie token.
func (s *SessionService) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	sessionID := uuid.NewString()

	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	if err := s.cache.Set(ctx, sessionKeyPrefix+sessionID, userID.String(), s.ttl); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.WithField("user_id", userID).Info("Session created")
	return token, nil
}

// Validate checks the token signature and that the session is still live in
// Redis, and returns the authenticated user id and session id.
func (s *SessionService) Validate(ctx context.Context, token string) (uuid.UUID, string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, "", models.ErrInvalidSession
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", models.ErrInvalidSession
	}

	exists, err := s.cache.Exists(ctx, sessionKeyPrefix+claims.ID)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("failed to check session: %w", err)
	}
	if exists == 0 {
		return uuid.Nil, "", models.ErrInvalidSession
	}

	return userID, claims.ID, nil
}

// Destroy revokes the session and any pending flash messages.
func (s *SessionService) Destroy(ctx context.Context, sessionID string) error {
	if err := s.cache.Delete(ctx, sessionKeyPrefix+sessionID, flashKeyPrefix+sessionID); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

func (s *SessionService) AddFlash(ctx context.Context, sessionID, level, message string) {
	data, err := json.Marshal(Flash{Level: level, Message: message})
	if err != nil {
		return
	}
	key := flashKeyPrefix + sessionID
	if err := s.cache.RPush(ctx, key, data); err != nil {
		s.logger.WithError(err).Error("Failed to store flash message")
		return
	}
	if err := s.cache.Expire(ctx, key, s.ttl); err != nil {
		s.logger.WithError(err).Error("Failed to expire flash key")
	}
}

// PopFlashes returns pending flash messages and clears them, so each message
// renders exactly once.
func (s *SessionService) PopFlashes(ctx context.Context, sessionID string) []Flash {
	key := flashKeyPrefix + sessionID
	entries, err := s.cache.LRange(ctx, key, 0, -1)
	if err != nil {
		if !errors.Is(err, cache.Nil) {
			s.logger.WithError(err).Error("Failed to read flash messages")
		}
		return nil
	}
	if len(entries) == 0 {
		return nil
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.WithError(err).Error("Failed to clear flash messages")
	}

	flashes := make([]Flash, 0, len(entries))
	for _, entry := range entries {
		var f Flash
		if err := json.Unmarshal([]byte(entry), &f); err != nil {
			continue
		}
		flashes = append(flashes, f)
	}
	return flashes
}
