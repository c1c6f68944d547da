package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/zhotheone/nailapp/internal/audit"
	domain "github.com/zhotheone/nailapp/internal/domain/user"
	"github.com/zhotheone/nailapp/internal/httperr"
	"github.com/zhotheone/nailapp/internal/metrics"
	"github.com/zhotheone/nailapp/internal/models"
	"github.com/zhotheone/nailapp/internal/session"
)

// PasswordCost is the bcrypt cost for stored passwords.
const PasswordCost = 12

func errInvalidCredentials() error {
	return httperr.ErrAuth("invalid_credentials", "Invalid credentials")
}

// ======================================================
// LOGIN
// ======================================================

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	User  *models.User
	Token string
}

type Login struct {
	users    domain.Repository
	sessions *session.Manager
	audit    audit.Recorder
	now      func() time.Time
}

func NewLogin(users domain.Repository, sessions *session.Manager, audit audit.Recorder) *Login {
	return &Login{
		users:    users,
		sessions: sessions,
		audit:    audit,
		now:      time.Now,
	}
}

func (uc *Login) Execute(ctx context.Context, in LoginInput) (*LoginResult, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, httperr.ErrValidation("credentials_required", "Username and password are required")
	}

	u, err := uc.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		metrics.RecordLogin("unknown_user")
		return nil, errInvalidCredentials()
	}

	now := uc.now()

	// --------------------------------------------------
	// Lockout
	// --------------------------------------------------
	if u.IsLocked(now) {
		metrics.RecordLogin("locked")
		return nil, httperr.ErrAuth(
			"account_locked",
			fmt.Sprintf("Account is temporarily locked. Try again in %d minutes.", domain.MinutesLeft(u, now)),
		)
	}

	// --------------------------------------------------
	// Password
	// --------------------------------------------------
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		domain.RegisterFailure(u, now)
		if err := uc.users.SaveLoginState(ctx, u); err != nil {
			return nil, err
		}

		metrics.RecordLogin("bad_password")
		uc.audit.Dispatch(audit.Event{
			UserID:   audit.Ptr(u.ID),
			Action:   "login_failed",
			Entity:   "user",
			EntityID: audit.Ptr(u.ID),
			Metadata: map[string]any{"attempts": u.LoginAttempts, "locked": u.LockUntil != nil},
		})
		return nil, errInvalidCredentials()
	}

	if !u.Active {
		metrics.RecordLogin("inactive")
		return nil, httperr.ErrAuth("account_inactive", "Account is disabled")
	}

	domain.RegisterSuccess(u, now)
	if err := uc.users.SaveLoginState(ctx, u); err != nil {
		return nil, err
	}

	token, _, err := uc.sessions.Create(ctx, u.ID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	metrics.RecordLogin("success")
	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(u.ID),
		Action:   "login",
		Entity:   "user",
		EntityID: audit.Ptr(u.ID),
	})

	return &LoginResult{User: u, Token: token}, nil
}

// ======================================================
// LOGOUT
// ======================================================

type Logout struct {
	sessions *session.Manager
	audit    audit.Recorder
}

func NewLogout(sessions *session.Manager, audit audit.Recorder) *Logout {
	return &Logout{sessions: sessions, audit: audit}
}

func (uc *Logout) Execute(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	s, err := uc.sessions.Destroy(ctx, token)
	if err != nil {
		return err
	}
	if s == nil {
		return nil
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(s.UserID),
		Action:   "logout",
		Entity:   "user",
		EntityID: audit.Ptr(s.UserID),
	})
	return nil
}
