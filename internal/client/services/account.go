// Package services contains application services for the vault CLI.
// This file implements the registration and login workflows.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/cyberdefense/internal/client/models"
	"github.com/dmitrijs2005/cyberdefense/internal/client/repositories/accounts"
	"github.com/dmitrijs2005/cyberdefense/internal/client/validation"
	"github.com/dmitrijs2005/cyberdefense/internal/common"
	"github.com/dmitrijs2005/cyberdefense/internal/cryptox"
	"github.com/dmitrijs2005/cyberdefense/internal/logging"
	"github.com/google/uuid"
)

// View is a screen of the CLI a workflow may ask to switch to.
type View string

const (
	ViewLanding   View = "landing"
	ViewLogin     View = "login"
	ViewRegister  View = "register"
	ViewDashboard View = "dashboard"
)

// Result is the user-facing outcome of a successful workflow: a message and
// the view to switch to once Delay has passed.
type Result struct {
	Message string
	Next    View
	Delay   time.Duration
}

// AccountService defines the account workflows for the CLI.
//
// Contract:
//   - Register: validate the draft, reject duplicate emails, append the account.
//   - Login: validate the draft, match credentials, persist the session.
//   - CurrentSession: read the persisted session.
//   - Logout: forget the persisted session.
//
// Validation failures wrap common.ErrValidation and carry validation.Errors
// (use errors.As). Store failures wrap common.ErrStoreAccess.
type AccountService interface {
	Register(ctx context.Context, d models.RegisterDraft) (*Result, error)
	Login(ctx context.Context, d models.LoginDraft) (*Result, *models.Session, error)
	CurrentSession(ctx context.Context) (*models.Session, error)
	Logout(ctx context.Context) error
}

// Repository is the persistence the workflows need; accounts.Repository
// implements it.
type Repository interface {
	List(ctx context.Context) ([]models.Account, error)
	Update(ctx context.Context, fn func([]models.Account) ([]models.Account, error)) error
	SaveSession(ctx context.Context, s models.Session) error
	GetSession(ctx context.Context) (*models.Session, error)
	DeleteSession(ctx context.Context) error
}

var _ Repository = (*accounts.Repository)(nil)

type accountService struct {
	repo   Repository
	hasher cryptox.Hasher
	log    logging.Logger
	delay  time.Duration
	now    func() time.Time
	newID  func() (string, error)
}

// Option customizes the service.
type Option func(*accountService)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *accountService) { s.now = now }
}

// WithIDGenerator replaces the UUIDv7 generator.
func WithIDGenerator(f func() (string, error)) Option {
	return func(s *accountService) { s.newID = f }
}

// NewAccountService constructs an AccountService. delay is the pause the
// caller should take before switching views after a success.
func NewAccountService(repo Repository, hasher cryptox.Hasher, log logging.Logger, delay time.Duration, opts ...Option) AccountService {
	s := &accountService{
		repo:   repo,
		hasher: hasher,
		log:    log.With("component", "accounts"),
		delay:  delay,
		now:    time.Now,
		newID:  newUUIDv7,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Register validates d and appends a new account. Duplicate emails (exact,
// case-sensitive) yield common.ErrAccountExists and leave the collection
// untouched.
func (s *accountService) Register(ctx context.Context, d models.RegisterDraft) (*Result, error) {
	if fe := validation.ValidateRegistration(d); len(fe) > 0 {
		return nil, fmt.Errorf("%w: %w", common.ErrValidation, fe)
	}

	credential, err := s.hasher.Encode(d.Password)
	if err != nil {
		return nil, fmt.Errorf("encode credential: %w", err)
	}
	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("generate account id: %w", err)
	}

	account := models.Account{
		ID:           id,
		FullName:     strings.TrimSpace(d.FullName),
		Email:        d.Email,
		Organization: strings.TrimSpace(d.Organization),
		Password:     credential,
		Role:         models.Role(d.Role),
		CreatedAt:    s.now().UTC(),
		IsActive:     true,
	}

	err = s.repo.Update(ctx, func(list []models.Account) ([]models.Account, error) {
		for _, a := range list {
			if a.Email == account.Email {
				return nil, common.ErrAccountExists
			}
		}
		return append(list, account), nil
	})
	switch {
	case errors.Is(err, common.ErrAccountExists):
		s.log.Warn(ctx, "registration rejected: duplicate email")
		return nil, err
	case err != nil:
		s.log.Error(ctx, "registration failed", "error", err)
		return nil, err
	}

	s.log.Info(ctx, "account registered", "account_id", account.ID, "role", account.Role)
	return &Result{
		Message: "Account created successfully! You can now sign in.",
		Next:    ViewLogin,
		Delay:   s.delay,
	}, nil
}

// Login looks up the first active account whose email matches exactly and
// whose credential verifies, then overwrites the current session. Unknown
// email and wrong password both yield common.ErrInvalidCredentials.
func (s *accountService) Login(ctx context.Context, d models.LoginDraft) (*Result, *models.Session, error) {
	if fe := validation.ValidateLogin(d); len(fe) > 0 {
		return nil, nil, fmt.Errorf("%w: %w", common.ErrValidation, fe)
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error(ctx, "login failed", "error", err)
		return nil, nil, err
	}

	var found *models.Account
	for i := range list {
		a := &list[i]
		if a.IsActive && a.Email == d.Email && s.hasher.Verify(d.Password, a.Password) {
			found = a
			break
		}
	}
	if found == nil {
		s.log.Warn(ctx, "login rejected: invalid credentials")
		return nil, nil, common.ErrInvalidCredentials
	}

	session := models.NewSession(*found, s.now().UTC())
	if err := s.repo.SaveSession(ctx, session); err != nil {
		s.log.Error(ctx, "session save failed", "error", err)
		return nil, nil, err
	}

	s.log.Info(ctx, "login succeeded", "account_id", found.ID)
	return &Result{
		Message: "Login successful! Redirecting to dashboard...",
		Next:    ViewDashboard,
		Delay:   s.delay,
	}, &session, nil
}

func (s *accountService) CurrentSession(ctx context.Context) (*models.Session, error) {
	return s.repo.GetSession(ctx)
}

func (s *accountService) Logout(ctx context.Context) error {
	if err := s.repo.DeleteSession(ctx); err != nil {
		s.log.Error(ctx, "logout failed", "error", err)
		return err
	}
	s.log.Info(ctx, "logged out")
	return nil
}
