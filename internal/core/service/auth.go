package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/niksmo/qkart/internal/core/domain"
)

// Login authenticates against the backend and initializes the session
// entries.
func (s *Service) Login(
	ctx context.Context, sessionID string, c domain.Credentials,
) (domain.Session, error) {
	const op = "Service.Login"

	if err := c.Validate(); err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	login, err := s.backend.Login(ctx, c)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	err = s.kv.Set(ctx, sessionID, map[string]string{
		domain.SessionTokenKey:    login.Token,
		domain.SessionUsernameKey: login.Username,
		domain.SessionBalanceKey:  strconv.Itoa(login.Balance),
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	s.views.drop(sessionID)

	slog.Info("logged in", "op", op, "username", login.Username)
	return domain.Session{
		ID:       sessionID,
		Token:    login.Token,
		Username: login.Username,
		Balance:  login.Balance,
	}, nil
}

func (s *Service) Register(ctx context.Context, r domain.Registration) error {
	const op = "Service.Register"

	if err := r.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := s.backend.Register(ctx, domain.Credentials{
		Username: r.Username,
		Password: r.Password,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Logout clears every session entry and the session view.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	const op = "Service.Logout"

	if err := s.kv.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.views.drop(sessionID)
	return nil
}
