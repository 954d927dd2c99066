package services

import (
	"context"
	"errors"
	"fmt"

	"pfm/internal/core"
	"pfm/internal/ledger"
	"pfm/internal/log"
)

// ErrInvalidCredentials is returned when a username/password pair does not
// match a stored credential.
var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService struct {
	credentials *ledger.Credentials
	profiles    *ledger.Profiles
	logger      *log.Logger
}

func NewAuthService(credentials *ledger.Credentials, profiles *ledger.Profiles, logger *log.Logger) *AuthService {
	return &AuthService{
		credentials: credentials,
		profiles:    profiles,
		logger:      log.OrDiscard(logger, log.ComponentAuth),
	}
}

// UsernameTaken reports whether a credential already exists for username.
func (s *AuthService) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return s.credentials.Exists(ctx, username)
}

// Register validates the registration and password and stores both the
// credential and the profile.
func (s *AuthService) Register(ctx context.Context, reg core.Registration, password string) error {
	var errs core.ValidationErrors
	if err := reg.Validate(); err != nil {
		if !errors.As(err, &errs) {
			return err
		}
	}
	errs = append(errs, core.ValidatePassword(password)...)
	if len(errs) > 0 {
		return errs
	}

	if err := s.credentials.Register(ctx, reg.Username, ledger.HashPassword(password)); err != nil {
		return err
	}
	if err := s.profiles.Append(ctx, reg.Profile()); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Login checks the password and returns the user's profile. Users registered
// without a profile row get a profile carrying only the username.
func (s *AuthService) Login(ctx context.Context, username, password string) (core.Profile, error) {
	ok, err := s.credentials.Verify(ctx, username, password)
	if err != nil {
		return core.Profile{}, err
	}
	if !ok {
		s.logger.WarnContext(ctx, "Login failed", log.FieldUsername, username)
		return core.Profile{}, ErrInvalidCredentials
	}

	profile, err := s.profiles.Get(ctx, username)
	if errors.Is(err, core.ErrNotFound) {
		return core.Profile{Username: username}, nil
	}
	if err != nil {
		return core.Profile{}, err
	}
	s.logger.InfoContext(ctx, "Login succeeded", log.FieldUsername, username)
	return profile, nil
}

// CheckPassword returns ErrInvalidCredentials unless password matches the
// stored credential for username.
func (s *AuthService) CheckPassword(ctx context.Context, username, password string) error {
	ok, err := s.credentials.Verify(ctx, username, password)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCredentials
	}
	return nil
}

// ChangePassword replaces the password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, username, current, next string) error {
	if err := s.CheckPassword(ctx, username, current); err != nil {
		return err
	}
	if errs := core.ValidatePassword(next); len(errs) > 0 {
		return core.ValidationErrors(errs)
	}
	return s.credentials.SetPassword(ctx, username, ledger.HashPassword(next))
}
