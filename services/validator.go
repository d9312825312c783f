package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lborres/kindercrew/core"
	"github.com/lborres/kindercrew/pkg/crypto"
)

// Ensure Validator implements Authenticator
var _ core.Authenticator = (*Validator)(nil)

type requestKind int

const (
	kindAuthenticate requestKind = iota
	kindRegister
)

func (k requestKind) String() string {
	if k == kindRegister {
		return "register"
	}
	return "authenticate"
}

type validatorRequest struct {
	ctx      context.Context
	kind     requestKind
	email    string
	password string
	name     string
	reply    chan validatorResult // buffered, the worker never blocks on it
}

type validatorResult struct {
	user *core.User
	err  error
}

// Validator answers credential checks on a single worker goroutine.
// Callers suspend on a channel round-trip until the worker replies, and
// registry reads and writes are serialized, so two registrations of the
// same email cannot both pass the uniqueness check.
type Validator struct {
	config    core.ValidatorConfig
	storage   core.CredentialStorage
	passwords crypto.PasswordHandler
	ids       *crypto.IDGenerator
	metrics   core.AuthMetrics
	logger    *slog.Logger

	requests chan *validatorRequest
	quit     chan struct{}
	done     chan struct{}

	startOnce sync.Once
	closeOnce sync.Once

	// hash verified against when the email is unknown, so both paths cost the same
	dummyOnce sync.Once
	dummyHash string
}

func NewValidator(config core.ValidatorConfig, storage core.CredentialStorage, passwords crypto.PasswordHandler, metrics core.AuthMetrics, logger *slog.Logger) *Validator {
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.QueueSize < 0 {
		config.QueueSize = 0
	}
	if metrics == nil {
		metrics = core.NopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Validator{
		config:    config,
		storage:   storage,
		passwords: passwords,
		ids:       crypto.DefaultIDGenerator(),
		metrics:   metrics,
		logger:    logger.With(slog.String("component", "validator")),
		requests:  make(chan *validatorRequest, config.QueueSize),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start launches the worker. Calling it more than once is a no-op.
func (v *Validator) Start() {
	v.startOnce.Do(func() {
		go v.run()
	})
}

// Close stops the worker and fails queued requests with ErrValidatorClosed.
// It waits for an in-progress request to finish.
func (v *Validator) Close() error {
	v.closeOnce.Do(func() {
		close(v.quit)
		// a never-started worker has nothing to wait for
		v.startOnce.Do(func() { close(v.done) })
	})
	<-v.done
	return nil
}

func (v *Validator) Authenticate(ctx context.Context, email, password string) (*core.User, error) {
	return v.submit(ctx, &validatorRequest{
		kind:     kindAuthenticate,
		email:    email,
		password: password,
	})
}

func (v *Validator) RegisterNew(ctx context.Context, email, password, name string) (*core.User, error) {
	return v.submit(ctx, &validatorRequest{
		kind:     kindRegister,
		email:    email,
		password: password,
		name:     name,
	})
}

func (v *Validator) submit(ctx context.Context, req *validatorRequest) (*core.User, error) {
	select {
	case <-v.quit:
		return nil, core.ErrValidatorClosed
	default:
	}

	req.ctx = ctx
	req.reply = make(chan validatorResult, 1)

	select {
	case v.requests <- req:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-v.quit:
		return nil, core.ErrValidatorClosed
	}

	select {
	case res := <-req.reply:
		return res.user, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-v.done:
		// the worker may have answered right before exiting
		select {
		case res := <-req.reply:
			return res.user, res.err
		default:
			return nil, core.ErrValidatorClosed
		}
	}
}

func (v *Validator) run() {
	defer close(v.done)
	for {
		select {
		case <-v.quit:
			v.drain()
			return
		case req := <-v.requests:
			v.handle(req)
		}
	}
}

func (v *Validator) drain() {
	for {
		select {
		case req := <-v.requests:
			req.reply <- validatorResult{err: core.ErrValidatorClosed}
		default:
			return
		}
	}
}

func (v *Validator) handle(req *validatorRequest) {
	start := time.Now()
	defer func() {
		v.metrics.RecordValidatorLatency(req.kind.String(), time.Since(start))
	}()

	if err := req.ctx.Err(); err != nil {
		req.reply <- validatorResult{err: err}
		return
	}

	if v.config.Latency > 0 {
		timer := time.NewTimer(v.config.Latency)
		select {
		case <-timer.C:
		case <-req.ctx.Done():
			timer.Stop()
			req.reply <- validatorResult{err: req.ctx.Err()}
			return
		case <-v.quit:
			timer.Stop()
			req.reply <- validatorResult{err: core.ErrValidatorClosed}
			return
		}
	}

	var res validatorResult
	switch req.kind {
	case kindAuthenticate:
		res.user, res.err = v.authenticate(req.ctx, req.email, req.password)
	case kindRegister:
		res.user, res.err = v.register(req.ctx, req.email, req.password, req.name)
	}

	if res.err != nil {
		v.logger.Debug("credential request rejected",
			slog.String("op", req.kind.String()),
			slog.String("reason", res.err.Error()))
	}
	req.reply <- res
}

// authenticate checks email and password against the registry
func (v *Validator) authenticate(ctx context.Context, email, password string) (*core.User, error) {
	// Step 1: Find the user by email
	user, err := v.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			v.burnVerify(password)
			return nil, core.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// Step 2: Get the credential account for this user
	account, err := v.storage.GetAccountByUserAndProvider(ctx, user.ID, core.ProviderCredential)
	if err != nil {
		if errors.Is(err, core.ErrAccountNotFound) {
			v.burnVerify(password)
			return nil, core.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	// Step 3: Verify the password
	valid, err := v.passwords.Verify(password, account.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, core.ErrInvalidCredentials
	}

	return user, nil
}

// burnVerify spends one verification on a throwaway hash.
func (v *Validator) burnVerify(password string) {
	v.dummyOnce.Do(func() {
		v.dummyHash, _ = v.passwords.Hash("kindercrew-unknown-account")
	})
	if v.dummyHash != "" {
		_, _ = v.passwords.Verify(password, v.dummyHash)
	}
}

// register mints a parent account
func (v *Validator) register(ctx context.Context, email, password, name string) (*core.User, error) {
	// Step 1: Validate input
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, core.ErrPasswordRequired
	}

	// Step 2: Check if user already exists
	existing, err := v.storage.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, core.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, core.ErrUserExists
	}

	// Step 3: Hash the password
	hashed, err := v.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Step 4: Build the user and its credential account
	id, err := v.ids.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ID: %w", err)
	}
	now := v.config.Now()
	user := &core.User{
		ID:        id,
		Email:     email,
		Name:      strings.TrimSpace(name),
		Role:      core.RoleParent,
		CreatedAt: now,
	}
	account := &core.Account{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		ProviderID:   core.ProviderCredential,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Step 5: Store both or neither
	if err := v.storage.CreateUserWithAccount(ctx, user, account); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func validateEmail(email string) error {
	if email == "" {
		return core.ErrEmailRequired
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return core.ErrInvalidEmail
	}
	return nil
}
