package core

import (
	"log/slog"
	"time"

	"github.com/lborres/kindercrew/pkg/crypto"
)

const (
	DefaultStorageKey     = "kindercrew-user"
	DefaultStorageTimeout = 5 * time.Second
)

type SessionConfig struct {
	// StorageKey is the single key the logged in user is persisted under.
	StorageKey string
	// StorageTimeout bounds each write or delete made while the session
	// lock is held, so State callers never wait longer than this.
	StorageTimeout time.Duration
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		StorageKey:     DefaultStorageKey,
		StorageTimeout: DefaultStorageTimeout,
	}
}

type ValidatorConfig struct {
	// Latency is added inside the worker before each reply.
	Latency time.Duration
	// QueueSize bounds pending requests. Zero means unbuffered.
	QueueSize int
	// Now is the clock used for CreatedAt stamps.
	Now func() time.Time
}

func DefaultValidatorConfig() ValidatorConfig {
	return ValidatorConfig{
		Latency:   0,
		QueueSize: 16,
		Now:       time.Now,
	}
}

type Config struct {
	Records     RecordStorage
	Credentials CredentialStorage

	// Optional config
	PasswordHasher  crypto.PasswordHandler
	SessionConfig   *SessionConfig
	ValidatorConfig *ValidatorConfig
	Logger          *slog.Logger
	Metrics         AuthMetrics
	// SkipSeed leaves the registry untouched instead of installing the demo parent.
	SkipSeed bool
}
