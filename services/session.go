package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lborres/kindercrew/core"
)

// SessionStore owns "who is logged in" for the process and mirrors it to
// a single persisted record so the login survives restarts.
//
// Transitions: idle -> loading -> {authenticated | idle}. Authenticated is
// left only through Logout. Login and Register report success as a bool;
// the reason for a failure is logged, never returned.
type SessionStore struct {
	config  core.SessionConfig
	storage core.RecordStorage
	auth    core.Authenticator
	metrics core.AuthMetrics
	logger  *slog.Logger

	mu       sync.Mutex
	state    core.SessionState
	inFlight bool
	// epoch moves on Logout and Close; results from older epochs are dropped
	epoch  uint64
	closed bool
}

func NewSessionStore(config core.SessionConfig, storage core.RecordStorage, auth core.Authenticator, metrics core.AuthMetrics, logger *slog.Logger) *SessionStore {
	if config.StorageKey == "" {
		config.StorageKey = core.DefaultStorageKey
	}
	if config.StorageTimeout <= 0 {
		config.StorageTimeout = core.DefaultStorageTimeout
	}
	if metrics == nil {
		metrics = core.NopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionStore{
		config:  config,
		storage: storage,
		auth:    auth,
		metrics: metrics,
		logger:  logger.With(slog.String("component", "session")),
		// loading until the first Restore resolves
		state: core.SessionState{IsLoading: true},
	}
}

// Init hydrates the store from persisted storage. It is Restore under the
// name the lifecycle uses.
func (s *SessionStore) Init(ctx context.Context) core.SessionState {
	return s.Restore(ctx)
}

// Restore reads the persisted user. A missing record or a storage error
// resolves to unauthenticated; a malformed record is deleted first.
func (s *SessionStore) Restore(ctx context.Context) core.SessionState {
	epoch, err := s.begin()
	if err != nil {
		s.logger.Debug("restore skipped", slog.String("reason", err.Error()))
		return s.State()
	}

	data, err := s.storage.Get(ctx, s.config.StorageKey)
	if err != nil {
		if errors.Is(err, core.ErrRecordNotFound) {
			s.metrics.RecordRestore(core.OutcomeAbsent)
		} else {
			s.metrics.RecordRestore(core.OutcomeError)
			s.logger.Warn("failed to read persisted session", slog.String("error", err.Error()))
		}
		s.settle(epoch, core.Unauthenticated())
		return s.State()
	}

	user, err := decodeUser(data)
	if err != nil {
		s.metrics.RecordRestore(core.OutcomeCorrupt)
		s.logger.Warn("discarding malformed persisted session", slog.String("error", err.Error()))
		if err := s.storage.Delete(ctx, s.config.StorageKey); err != nil {
			s.logger.Warn("failed to delete malformed session", slog.String("error", err.Error()))
		}
		s.settle(epoch, core.Unauthenticated())
		return s.State()
	}

	s.metrics.RecordRestore(core.OutcomeSuccess)
	s.settle(epoch, core.Authenticated(user))
	s.logger.Info("session restored", slog.String("user_id", user.ID))
	return s.State()
}

// Login verifies credentials and, on success, persists and publishes the user.
func (s *SessionStore) Login(ctx context.Context, email, password string) bool {
	return s.authenticate(ctx, "login", s.metrics.RecordLogin, func() (*core.User, error) {
		return s.auth.Authenticate(ctx, email, password)
	})
}

// Register mints a new parent account and logs it in.
func (s *SessionStore) Register(ctx context.Context, email, password, name string) bool {
	return s.authenticate(ctx, "register", s.metrics.RecordRegister, func() (*core.User, error) {
		return s.auth.RegisterNew(ctx, email, password, name)
	})
}

func (s *SessionStore) authenticate(ctx context.Context, op string, record func(string), call func() (*core.User, error)) bool {
	epoch, err := s.begin()
	if err != nil {
		record(core.OutcomeBusy)
		s.logger.Info(op+" rejected", slog.String("reason", err.Error()))
		return false
	}

	// the store is not locked while the validator works
	user, err := call()
	if err == nil && user == nil {
		err = core.ErrInvalidCredentials
	}
	if err != nil {
		record(core.OutcomeFailure)
		s.logger.Info(op+" failed", slog.String("reason", err.Error()))
		s.abort(epoch)
		return false
	}

	if err := s.commit(ctx, epoch, user); err != nil {
		record(core.OutcomeError)
		s.logger.Warn(op+" not committed", slog.String("reason", err.Error()))
		return false
	}

	record(core.OutcomeSuccess)
	s.logger.Info(op+" succeeded", slog.String("user_id", user.ID))
	return true
}

// Logout forgets the persisted user and returns to idle. It cannot fail;
// a storage error is logged and the in-memory state is reset regardless.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	ioCtx, cancel := s.storageContext(ctx)
	defer cancel()
	if err := s.storage.Delete(ioCtx, s.config.StorageKey); err != nil {
		s.logger.Warn("failed to delete persisted session", slog.String("error", err.Error()))
	}
	s.state = core.Unauthenticated()
	s.metrics.RecordLogout()
}

// Close disposes the store. The persisted record is kept so the next
// process can restore it.
func (s *SessionStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.epoch++
	s.state = core.Unauthenticated()
	return nil
}

// State returns a snapshot safe to keep and mutate.
func (s *SessionStore) State() core.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *SessionStore) Phase() core.Phase {
	return s.State().Phase()
}

// begin claims the single in-flight slot and flips to loading.
func (s *SessionStore) begin() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, core.ErrStoreClosed
	}
	if s.inFlight {
		return 0, core.ErrOperationInFlight
	}
	s.inFlight = true
	s.state.IsLoading = true
	return s.epoch, nil
}

// settle releases the slot and publishes next unless the epoch moved on.
func (s *SessionStore) settle(epoch uint64, next core.SessionState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inFlight = false
	if epoch != s.epoch {
		return false
	}
	s.state = next
	return true
}

// abort releases the slot and keeps whatever user was already there.
func (s *SessionStore) abort(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inFlight = false
	if epoch == s.epoch {
		s.state.IsLoading = false
	}
}

// storageContext bounds storage I/O done under s.mu. Holding the lock for
// the write keeps Logout ordered against commit; the timeout caps how long
// State can block behind a slow backend.
func (s *SessionStore) storageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.config.StorageTimeout)
}

// commit persists user and publishes the authenticated state in one
// critical section, so a concurrent Logout lands either before or after.
func (s *SessionStore) commit(ctx context.Context, epoch uint64, user *core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inFlight = false
	if epoch != s.epoch {
		return core.ErrSessionSuperseded
	}

	data, err := json.Marshal(user)
	if err != nil {
		s.state.IsLoading = false
		return fmt.Errorf("failed to encode user: %w", err)
	}
	ioCtx, cancel := s.storageContext(ctx)
	defer cancel()
	if err := s.storage.Set(ioCtx, s.config.StorageKey, data); err != nil {
		s.state.IsLoading = false
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.state = core.Authenticated(user.Clone())
	return nil
}

func decodeUser(data []byte) (*core.User, error) {
	var user core.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrMalformedRecord, err)
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return &user, nil
}
