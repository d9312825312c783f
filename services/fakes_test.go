package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lborres/kindercrew/core"
)

// fakeRecords is a RecordStorage with injectable errors and call counters.
type fakeRecords struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
	setErr error
	delErr error
	// block, when set, stalls Set and Delete until it closes or ctx ends
	block   chan struct{}
	sets    int
	deletes int
}

func newFakeRecords() *fakeRecords {
	return &fakeRecords{data: make(map[string][]byte)}
}

func (f *fakeRecords) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return nil, core.ErrRecordNotFound
	}
	return v, nil
}

func (f *fakeRecords) wait(ctx context.Context) error {
	if f.block == nil {
		return nil
	}
	select {
	case <-f.block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeRecords) Set(ctx context.Context, key string, value []byte) error {
	if err := f.wait(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = append([]byte(nil), value...)
	return nil
}

func (f *fakeRecords) Delete(ctx context.Context, key string) error {
	if err := f.wait(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.data, key)
	return nil
}

func (f *fakeRecords) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok
}

// fakeAuthenticator answers from fixed results. When gate is set, calls
// block until it is closed, after signalling on entered.
type fakeAuthenticator struct {
	user    *core.User
	err     error
	gate    chan struct{}
	entered chan struct{}

	mu    sync.Mutex
	calls int
}

func (f *fakeAuthenticator) answer(ctx context.Context) (*core.User, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.gate != nil {
		if f.entered != nil {
			f.entered <- struct{}{}
		}
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.user.Clone(), nil
}

func (f *fakeAuthenticator) Authenticate(ctx context.Context, email, password string) (*core.User, error) {
	return f.answer(ctx)
}

func (f *fakeAuthenticator) RegisterNew(ctx context.Context, email, password, name string) (*core.User, error) {
	return f.answer(ctx)
}

func (f *fakeAuthenticator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeMetrics counts outcomes per operation.
type fakeMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
	logouts  int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{outcomes: make(map[string]int)}
}

func (f *fakeMetrics) add(op, outcome string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomes[op+":"+outcome]++
}

func (f *fakeMetrics) RecordLogin(outcome string)    { f.add("login", outcome) }
func (f *fakeMetrics) RecordRegister(outcome string) { f.add("register", outcome) }
func (f *fakeMetrics) RecordRestore(outcome string)  { f.add("restore", outcome) }
func (f *fakeMetrics) RecordLogout() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
}
func (f *fakeMetrics) RecordValidatorLatency(op string, d time.Duration) {}

func (f *fakeMetrics) count(op, outcome string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.outcomes[op+":"+outcome]
}

// fakePasswords stores passwords in the clear so tests stay fast.
type fakePasswords struct {
	hashErr error
}

func (f fakePasswords) Hash(password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "plain$" + password, nil
}

func (f fakePasswords) Verify(password, hash string) (bool, error) {
	if len(hash) < 6 || hash[:6] != "plain$" {
		return false, errors.New("bad hash")
	}
	return hash[6:] == password, nil
}
