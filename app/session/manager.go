// Package session holds the single source of truth for "who is logged in".
// The Manager is the only writer of the shared identity; everything else
// reads snapshots or subscribes to changes.
package session

import (
	"context"
	"fmt"
	"sync"

	"blogclient/app/models"
	"blogclient/app/services"
)

// State describes the manager's position in its lifecycle.
type State int

const (
	// StateUninitialized is the state before Initialize has been called.
	StateUninitialized State = iota
	// StateLoading is active while an identity-affecting call is in flight.
	// Route gating must not render a decision in this state.
	StateLoading
	// StateAuthenticated means a current identity is installed.
	StateAuthenticated
	// StateAnonymous means no session exists.
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	}
	return "unknown"
}

// Result is the outcome of a session operation, handed to the view layer
// instead of a raw error.
type Result struct {
	Success bool
	Err     error
}

// Snapshot is an immutable view of the manager's state.
type Snapshot struct {
	State    State
	Identity *models.Identity
}

// IsAuthenticated is derived from identity presence; there is no separate
// boolean that could diverge.
func (s Snapshot) IsAuthenticated() bool {
	return s.Identity != nil
}

// Manager orchestrates login, registration, logout and the current-identity
// probe. Each identity-affecting call carries a generation number; a call
// that finishes after a newer one started is discarded, so concurrent calls
// cannot install a stale identity.
type Manager struct {
	auth services.AuthAPI

	mu       sync.Mutex
	state    State
	identity *models.Identity
	gen      uint64

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// NewManager creates a Manager in the uninitialized state.
func NewManager(auth services.AuthAPI) *Manager {
	return &Manager{
		auth:  auth,
		state: StateUninitialized,
		subs:  make(map[int]func(Snapshot)),
	}
}

// Snapshot returns the current state and identity.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{State: m.state, Identity: m.identity}
}

// Current returns the current identity, or nil when anonymous.
func (m *Manager) Current() *models.Identity {
	return m.Snapshot().Identity
}

// IsAuthenticated reports whether an identity is installed.
func (m *Manager) IsAuthenticated() bool {
	return m.Snapshot().IsAuthenticated()
}

// State returns the manager's lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers fn to be called after every state change. The returned
// function removes the subscription.
func (m *Manager) Subscribe(fn func(Snapshot)) func() {
	m.subMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.subMu.Unlock()

	return func() {
		m.subMu.Lock()
		delete(m.subs, id)
		m.subMu.Unlock()
	}
}

// Initialize probes the API for an existing session. Probe failures of any
// kind resolve to anonymous; a failed startup probe is not a fatal error.
func (m *Manager) Initialize(ctx context.Context) {
	gen := m.begin()
	identity, err := m.auth.CurrentUser(ctx)
	if err != nil {
		identity = nil
	}
	m.install(gen, identity)
}

// Login sends credentials and, on success, installs the server's canonical
// identity from a fresh probe rather than trusting the login response.
// On failure the identity is cleared.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	gen := m.begin()

	if err := m.auth.Login(ctx, email, password); err != nil {
		m.install(gen, nil)
		return Result{Success: false, Err: err}
	}

	identity, err := m.auth.CurrentUser(ctx)
	if err != nil {
		m.install(gen, nil)
		return Result{Success: false, Err: err}
	}
	if identity == nil {
		m.install(gen, nil)
		return Result{Success: false, Err: fmt.Errorf("login did not establish a session")}
	}

	m.install(gen, identity)
	return Result{Success: true}
}

// Register creates an account and then logs in with the same credentials;
// its result is the result of that login. A creation failure short-circuits
// and never attempts the login, leaving the identity untouched.
func (m *Manager) Register(ctx context.Context, reg models.Registration) Result {
	gen := m.begin()
	if _, err := m.auth.Register(ctx, reg); err != nil {
		m.restore(gen)
		return Result{Success: false, Err: err}
	}
	m.restore(gen)

	return m.Login(ctx, reg.Email, reg.Password)
}

// Logout requests server-side session termination. The local identity is
// cleared only after the server acknowledges; a failed logout leaves the
// session intact and surfaces the error.
func (m *Manager) Logout(ctx context.Context) Result {
	gen := m.begin()
	if err := m.auth.Logout(ctx); err != nil {
		m.restore(gen)
		return Result{Success: false, Err: err}
	}
	m.install(gen, nil)
	return Result{Success: true}
}

// Refresh re-runs the current-identity probe and installs the result. Unlike
// Initialize, a probe error keeps the existing identity and is returned.
func (m *Manager) Refresh(ctx context.Context) error {
	gen := m.begin()
	identity, err := m.auth.CurrentUser(ctx)
	if err != nil {
		m.restore(gen)
		return err
	}
	m.install(gen, identity)
	return nil
}

// begin transitions to loading and claims a new generation.
func (m *Manager) begin() uint64 {
	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.state = StateLoading
	snap := Snapshot{State: m.state, Identity: m.identity}
	m.mu.Unlock()

	m.notify(snap)
	return gen
}

// install sets the identity and the matching ready state, unless a newer
// generation has started in the meantime.
func (m *Manager) install(gen uint64, identity *models.Identity) {
	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		return
	}
	m.identity = identity
	if identity != nil {
		m.state = StateAuthenticated
	} else {
		m.state = StateAnonymous
	}
	snap := Snapshot{State: m.state, Identity: m.identity}
	m.mu.Unlock()

	m.notify(snap)
}

// restore leaves the identity as-is and returns to the ready state that
// matches it.
func (m *Manager) restore(gen uint64) {
	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		return
	}
	if m.identity != nil {
		m.state = StateAuthenticated
	} else {
		m.state = StateAnonymous
	}
	snap := Snapshot{State: m.state, Identity: m.identity}
	m.mu.Unlock()

	m.notify(snap)
}

func (m *Manager) notify(snap Snapshot) {
	m.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
