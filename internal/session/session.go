package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/zhotheone/nailapp/internal/cache"
)

var ErrNoSession = errors.New("session not found")

type Session struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"userId"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	LastSeen  time.Time `json:"lastSeen"`
}

// Manager keeps session records in the cache and hands out signed cookie
// tokens that name them. The record is the source of truth: destroying it
// invalidates the token even before the token expires.
type Manager struct {
	store      cache.Cache
	secret     []byte
	ttl        time.Duration
	touchAfter time.Duration
	now        func() time.Time
}

func NewManager(store cache.Cache, secret string, ttl, touchAfter time.Duration) *Manager {
	return &Manager{
		store:      store,
		secret:     []byte(secret),
		ttl:        ttl,
		touchAfter: touchAfter,
		now:        time.Now,
	}
}

func (m *Manager) TTL() time.Duration { return m.ttl }

func key(id string) string { return "session:" + id }

func (m *Manager) Create(ctx context.Context, userID uint, role string) (string, *Session, error) {
	now := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		CreatedAt: now,
		LastSeen:  now,
	}

	if err := m.store.Set(ctx, key(s.ID), s, m.ttl); err != nil {
		return "", nil, err
	}

	token, err := m.sign(s.ID, now)
	if err != nil {
		return "", nil, err
	}
	return token, s, nil
}

// Resolve loads the session named by token. When the session has not been
// touched for touchAfter its TTL is extended and a fresh token is returned;
// otherwise refreshed is empty.
func (m *Manager) Resolve(ctx context.Context, token string) (s *Session, refreshed string, err error) {
	sid, err := m.parse(token)
	if err != nil {
		return nil, "", ErrNoSession
	}

	var stored Session
	found, err := m.store.Get(ctx, key(sid), &stored)
	if err != nil {
		return nil, "", err
	}
	if !found {
		return nil, "", ErrNoSession
	}

	now := m.now()
	if now.Sub(stored.LastSeen) < m.touchAfter {
		return &stored, "", nil
	}

	stored.LastSeen = now
	if err := m.store.Set(ctx, key(sid), stored, m.ttl); err != nil {
		return nil, "", err
	}
	refreshed, err = m.sign(sid, now)
	if err != nil {
		return nil, "", err
	}
	return &stored, refreshed, nil
}

// Destroy removes the session named by token and returns it, or nil when the
// token names no live session.
func (m *Manager) Destroy(ctx context.Context, token string) (*Session, error) {
	sid, err := m.parse(token)
	if err != nil {
		return nil, nil
	}

	var stored Session
	found, err := m.store.Get(ctx, key(sid), &stored)
	if err != nil {
		return nil, err
	}
	if err := m.store.Delete(ctx, key(sid)); err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &stored, nil
}

// --------- JWT ---------

func (m *Manager) sign(sid string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"iat": now.Unix(),
		"exp": now.Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) parse(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return "", ErrNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrNoSession
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", ErrNoSession
	}
	return sid, nil
}
