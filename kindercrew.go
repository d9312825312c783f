// Package kindercrew wires the session store and credential validator
// behind the parental dashboard.
package kindercrew

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lborres/kindercrew/core"
	"github.com/lborres/kindercrew/pkg/crypto"
	"github.com/lborres/kindercrew/services"
)

// interfaces
type (
	RecordStorage     = core.RecordStorage
	CredentialStorage = core.CredentialStorage
	Authenticator     = core.Authenticator
	AuthMetrics       = core.AuthMetrics

	PasswordHandler = crypto.PasswordHandler
)

// structs
type (
	Config          = core.Config
	SessionConfig   = core.SessionConfig
	ValidatorConfig = core.ValidatorConfig
)

type (
	User         = core.User
	Role         = core.Role
	Account      = core.Account
	SessionState = core.SessionState
	Phase        = core.Phase
)

// Constructors & helpers (convenience re-exports)
var (
	NewArgon2              = crypto.NewArgon2
	DefaultSessionConfig   = core.DefaultSessionConfig
	DefaultValidatorConfig = core.DefaultValidatorConfig
)

var (
	ErrUserExists         = core.ErrUserExists
	ErrUserNotFound       = core.ErrUserNotFound
	ErrInvalidCredentials = core.ErrInvalidCredentials
)

var (
	ErrOperationInFlight = core.ErrOperationInFlight
	ErrSessionSuperseded = core.ErrSessionSuperseded
	ErrStoreClosed       = core.ErrStoreClosed
	ErrValidatorClosed   = core.ErrValidatorClosed
	ErrRecordNotFound    = core.ErrRecordNotFound
	ErrMalformedRecord   = core.ErrMalformedRecord
)

var (
	ErrEmailRequired    = core.ErrEmailRequired
	ErrPasswordRequired = core.ErrPasswordRequired
	ErrInvalidEmail     = core.ErrInvalidEmail
)

var (
	ErrStorageRequired     = core.ErrStorageRequired
	ErrCredentialsRequired = core.ErrCredentialsRequired
)

// Kindercrew owns a started validator and a restored session store.
type Kindercrew struct {
	Session   *services.SessionStore
	Validator *services.Validator
}

// New applies defaults, seeds the demo parent unless SkipSeed is set,
// starts the validator and restores the persisted session.
func New(ctx context.Context, config Config) (*Kindercrew, error) {
	if config.Records == nil {
		return nil, ErrStorageRequired
	}
	if config.Credentials == nil {
		return nil, ErrCredentialsRequired
	}

	// Set Defaults

	passwordHasher := config.PasswordHasher
	if passwordHasher == nil {
		passwordHasher = crypto.NewArgon2()
	}

	sessionConfig := config.SessionConfig
	if sessionConfig == nil {
		def := DefaultSessionConfig()
		sessionConfig = &def
	}

	validatorConfig := config.ValidatorConfig
	if validatorConfig == nil {
		def := DefaultValidatorConfig()
		validatorConfig = &def
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metrics := config.Metrics
	if metrics == nil {
		metrics = core.NopMetrics{}
	}

	if !config.SkipSeed {
		if err := services.SeedDefaults(ctx, config.Credentials, passwordHasher); err != nil {
			return nil, fmt.Errorf("failed to seed credentials: %w", err)
		}
	}

	validator := services.NewValidator(*validatorConfig, config.Credentials, passwordHasher, metrics, logger)
	validator.Start()

	session := services.NewSessionStore(*sessionConfig, config.Records, validator, metrics, logger)
	state := session.Init(ctx)
	logger.Info("session store ready", slog.String("phase", string(state.Phase())))

	return &Kindercrew{
		Session:   session,
		Validator: validator,
	}, nil
}

// Close disposes the session store and stops the validator.
func (k *Kindercrew) Close() error {
	return errors.Join(k.Session.Close(), k.Validator.Close())
}
