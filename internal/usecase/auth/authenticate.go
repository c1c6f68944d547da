package auth

import (
	"context"
	"errors"

	domain "github.com/zhotheone/nailapp/internal/domain/user"
	"github.com/zhotheone/nailapp/internal/httperr"
	"github.com/zhotheone/nailapp/internal/models"
	"github.com/zhotheone/nailapp/internal/session"
)

var ErrUnauthenticated = errors.New("unauthenticated")

type Principal struct {
	User    *models.User
	Session *session.Session
	// Refreshed is a new cookie token when the session was extended.
	Refreshed string
}

// Authenticate resolves a cookie token to an active user. Sessions of deleted
// or deactivated users are destroyed.
type Authenticate struct {
	users    domain.Repository
	sessions *session.Manager
}

func NewAuthenticate(users domain.Repository, sessions *session.Manager) *Authenticate {
	return &Authenticate{users: users, sessions: sessions}
}

func (uc *Authenticate) Execute(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	s, refreshed, err := uc.sessions.Resolve(ctx, token)
	if errors.Is(err, session.ErrNoSession) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}

	u, err := uc.users.FindByID(ctx, s.UserID)
	if err != nil && !httperr.Is(err, "user_not_found") {
		return nil, err
	}
	if u == nil || !u.Active {
		_, _ = uc.sessions.Destroy(ctx, token)
		return nil, ErrUnauthenticated
	}

	return &Principal{User: u, Session: s, Refreshed: refreshed}, nil
}
