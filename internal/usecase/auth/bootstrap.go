package auth

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	domain "github.com/zhotheone/nailapp/internal/domain/user"
	"github.com/zhotheone/nailapp/internal/models"
)

// BootstrapAdmin creates the initial admin account when no admin exists yet.
// It reports whether an account was created.
func BootstrapAdmin(ctx context.Context, users domain.Repository, username, password string, cost int) (bool, error) {
	n, err := users.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if username == "" || password == "" {
		return false, fmt.Errorf("admin credentials are not configured")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	u := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		Active:       true,
	}
	if err := users.Create(ctx, u); err != nil {
		return false, err
	}

	log.Printf("admin_bootstrapped username=%s id=%d", u.Username, u.ID)
	return true, nil
}
