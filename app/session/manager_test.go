package session

import (
	"context"
	"sync"
	"testing"

	"blogclient/app/api"
	"blogclient/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAuth struct {
	mu sync.Mutex

	registerFn func(models.Registration) (*models.Identity, error)
	loginFn    func(email, password string) error
	logoutFn   func() error
	currentFn  func() (*models.Identity, error)

	loginCalls    int
	registerCalls int
}

func (m *mockAuth) Register(_ context.Context, reg models.Registration) (*models.Identity, error) {
	m.mu.Lock()
	m.registerCalls++
	m.mu.Unlock()
	if m.registerFn != nil {
		return m.registerFn(reg)
	}
	return &models.Identity{ID: 1, Name: reg.Name, Email: reg.Email}, nil
}

func (m *mockAuth) Login(_ context.Context, email, password string) error {
	m.mu.Lock()
	m.loginCalls++
	m.mu.Unlock()
	if m.loginFn != nil {
		return m.loginFn(email, password)
	}
	return nil
}

func (m *mockAuth) Logout(_ context.Context) error {
	if m.logoutFn != nil {
		return m.logoutFn()
	}
	return nil
}

func (m *mockAuth) CurrentUser(_ context.Context) (*models.Identity, error) {
	if m.currentFn != nil {
		return m.currentFn()
	}
	return nil, nil
}

func alice() *models.Identity {
	return &models.Identity{ID: 7, Name: "Alice", Email: "alice@example.com"}
}

func TestInitializeWithSession(t *testing.T) {
	auth := &mockAuth{currentFn: func() (*models.Identity, error) { return alice(), nil }}
	m := NewManager(auth)

	assert.Equal(t, StateUninitialized, m.State())
	m.Initialize(context.Background())

	assert.Equal(t, StateAuthenticated, m.State())
	assert.True(t, m.IsAuthenticated())
	require.NotNil(t, m.Current())
	assert.Equal(t, "Alice", m.Current().Name)
}

func TestInitializeWithoutSession(t *testing.T) {
	// The 401 special case: CurrentUser reports "no identity" without error.
	auth := &mockAuth{currentFn: func() (*models.Identity, error) { return nil, nil }}
	m := NewManager(auth)

	m.Initialize(context.Background())

	assert.Equal(t, StateAnonymous, m.State())
	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, m.Current())
}

func TestInitializeProbeFailureIsNotFatal(t *testing.T) {
	auth := &mockAuth{currentFn: func() (*models.Identity, error) {
		return nil, &api.Error{Kind: api.KindNetwork, Message: "could not reach server"}
	}}
	m := NewManager(auth)

	m.Initialize(context.Background())

	assert.Equal(t, StateAnonymous, m.State())
	assert.False(t, m.IsAuthenticated())
}

func TestLoginInstallsCanonicalIdentity(t *testing.T) {
	// The login response body is never trusted; the installed identity must
	// come from the follow-up probe.
	auth := &mockAuth{currentFn: func() (*models.Identity, error) { return alice(), nil }}
	m := NewManager(auth)
	m.Initialize(context.Background())

	res := m.Login(context.Background(), "alice@example.com", "secret")

	require.True(t, res.Success)
	assert.Equal(t, 1, auth.loginCalls)
	assert.Equal(t, StateAuthenticated, m.State())
	assert.Equal(t, 7, m.Current().ID)
}

func TestLoginFailureClearsIdentity(t *testing.T) {
	current := alice()
	auth := &mockAuth{currentFn: func() (*models.Identity, error) { return current, nil }}
	m := NewManager(auth)
	m.Initialize(context.Background())
	require.True(t, m.IsAuthenticated())

	auth.loginFn = func(string, string) error {
		return &api.Error{Kind: api.KindUnauthorized, StatusCode: 401, Message: "invalid credentials"}
	}
	res := m.Login(context.Background(), "a@x.com", "wrong")

	assert.False(t, res.Success)
	assert.EqualError(t, res.Err, "invalid credentials")
	assert.Nil(t, m.Current())
	assert.Equal(t, StateAnonymous, m.State())
}

func TestLoginSucceedsButProbeFails(t *testing.T) {
	auth := &mockAuth{currentFn: func() (*models.Identity, error) {
		return nil, &api.Error{Kind: api.KindServer, StatusCode: 500}
	}}
	m := NewManager(auth)

	res := m.Login(context.Background(), "alice@example.com", "secret")

	assert.False(t, res.Success)
	assert.Error(t, res.Err)
	assert.Nil(t, m.Current())
	assert.Equal(t, StateAnonymous, m.State())
}

func TestRegisterLogsInWithSameCredentials(t *testing.T) {
	var gotEmail, gotPassword string
	auth := &mockAuth{
		loginFn: func(email, password string) error {
			gotEmail, gotPassword = email, password
			return nil
		},
		currentFn: func() (*models.Identity, error) { return alice(), nil },
	}
	m := NewManager(auth)

	res := m.Register(context.Background(), models.Registration{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "secret1",
		PasswordConfirmation: "secret1",
	})

	require.True(t, res.Success)
	assert.Equal(t, "alice@example.com", gotEmail)
	assert.Equal(t, "secret1", gotPassword)
	assert.True(t, m.IsAuthenticated())
}

func TestRegisterCreationFailureShortCircuits(t *testing.T) {
	auth := &mockAuth{
		registerFn: func(models.Registration) (*models.Identity, error) {
			return nil, &api.Error{Kind: api.KindValidation, StatusCode: 422, Message: "email has already been taken"}
		},
	}
	m := NewManager(auth)
	m.Initialize(context.Background())

	res := m.Register(context.Background(), models.Registration{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "secret1",
		PasswordConfirmation: "secret1",
	})

	assert.False(t, res.Success)
	assert.EqualError(t, res.Err, "email has already been taken")
	assert.Equal(t, 0, auth.loginCalls, "login must never run after a failed creation")
	assert.Nil(t, m.Current())
	assert.Equal(t, StateAnonymous, m.State())
}

func TestRegisterLoginFailureLeavesIdentityUnset(t *testing.T) {
	auth := &mockAuth{
		loginFn: func(string, string) error {
			return &api.Error{Kind: api.KindUnauthorized, StatusCode: 401, Message: "invalid credentials"}
		},
	}
	m := NewManager(auth)

	res := m.Register(context.Background(), models.Registration{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "secret1",
		PasswordConfirmation: "secret1",
	})

	assert.False(t, res.Success)
	assert.Nil(t, m.Current(), "a partially-created account must not become the session")
}

func TestLogoutClearsIdentityOnSuccess(t *testing.T) {
	auth := &mockAuth{currentFn: func() (*models.Identity, error) { return alice(), nil }}
	m := NewManager(auth)
	m.Initialize(context.Background())
	require.True(t, m.IsAuthenticated())

	res := m.Logout(context.Background())

	assert.True(t, res.Success)
	assert.Nil(t, m.Current())
	assert.Equal(t, StateAnonymous, m.State())
}

func TestLogoutFailureKeepsIdentity(t *testing.T) {
	auth := &mockAuth{
		currentFn: func() (*models.Identity, error) { return alice(), nil },
		logoutFn: func() error {
			return &api.Error{Kind: api.KindServer, StatusCode: 500}
		},
	}
	m := NewManager(auth)
	m.Initialize(context.Background())

	res := m.Logout(context.Background())

	assert.False(t, res.Success)
	assert.Error(t, res.Err)
	assert.True(t, m.IsAuthenticated(), "a failed logout must leave the session intact")
	assert.Equal(t, StateAuthenticated, m.State())
}

func TestRefreshInstallsProbeResult(t *testing.T) {
	identity := alice()
	auth := &mockAuth{currentFn: func() (*models.Identity, error) { return identity, nil }}
	m := NewManager(auth)
	m.Initialize(context.Background())

	renamed := *identity
	renamed.Name = "Alice Cooper"
	auth.currentFn = func() (*models.Identity, error) { return &renamed, nil }

	require.NoError(t, m.Refresh(context.Background()))
	assert.Equal(t, "Alice Cooper", m.Current().Name)
}

func TestRefreshFailureKeepsIdentity(t *testing.T) {
	auth := &mockAuth{currentFn: func() (*models.Identity, error) { return alice(), nil }}
	m := NewManager(auth)
	m.Initialize(context.Background())

	auth.currentFn = func() (*models.Identity, error) {
		return nil, &api.Error{Kind: api.KindNetwork, Message: "could not reach server"}
	}

	err := m.Refresh(context.Background())
	assert.Error(t, err)
	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, StateAuthenticated, m.State())
}

func TestStaleLoginResponseIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	auth := &mockAuth{
		loginFn: func(string, string) error {
			close(started)
			<-release
			return nil
		},
		currentFn: func() (*models.Identity, error) { return alice(), nil },
	}
	m := NewManager(auth)

	done := make(chan Result, 1)
	go func() {
		done <- m.Login(context.Background(), "alice@example.com", "secret")
	}()
	<-started

	// A newer identity-affecting call claims the generation while the login
	// is still in flight.
	bob := &models.Identity{ID: 8, Name: "Bob", Email: "bob@example.com"}
	auth.currentFn = func() (*models.Identity, error) { return bob, nil }
	require.NoError(t, m.Refresh(context.Background()))
	require.Equal(t, "Bob", m.Current().Name)

	auth.currentFn = func() (*models.Identity, error) { return alice(), nil }
	close(release)
	<-done

	// The login resolved last but started first, so its install must have
	// been discarded.
	assert.Equal(t, "Bob", m.Current().Name)
	assert.Equal(t, StateAuthenticated, m.State())
}

func TestSnapshotsKeepDerivedStatusConsistent(t *testing.T) {
	auth := &mockAuth{currentFn: func() (*models.Identity, error) { return alice(), nil }}
	m := NewManager(auth)

	var snaps []Snapshot
	unsubscribe := m.Subscribe(func(s Snapshot) { snaps = append(snaps, s) })
	defer unsubscribe()

	ctx := context.Background()
	m.Initialize(ctx)
	m.Login(ctx, "alice@example.com", "secret")
	m.Logout(ctx)

	require.NotEmpty(t, snaps)
	for _, snap := range snaps {
		if snap.State == StateAuthenticated {
			assert.True(t, snap.IsAuthenticated())
		}
		if snap.State == StateAnonymous {
			assert.False(t, snap.IsAuthenticated())
		}
		// IsAuthenticated is a pure function of identity presence.
		assert.Equal(t, snap.Identity != nil, snap.IsAuthenticated())
	}

	// Every operation passed through loading before settling.
	assert.Equal(t, StateLoading, snaps[0].State)
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	auth := &mockAuth{}
	m := NewManager(auth)

	count := 0
	unsubscribe := m.Subscribe(func(Snapshot) { count++ })
	m.Initialize(context.Background())
	seen := count
	require.Greater(t, seen, 0)

	unsubscribe()
	m.Refresh(context.Background())
	assert.Equal(t, seen, count)
}
