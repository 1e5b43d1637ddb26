// Package session tracks the current user for a UI process. It replaces
// ambient global auth state with an explicit manager that is created, used
// and torn down by the caller; interested components subscribe to changes.
package session

import (
	"context"
	"sync"

	"artikel/client"
	"artikel/models"
)

// State is a snapshot of the session.
type State struct {
	User          *models.UserProfile
	Loading       bool
	Authenticated bool
}

// Result reports the outcome of an auth operation to the caller.
type Result struct {
	Success bool
	Message string
}

// Manager owns the process's auth state. All methods are safe for
// concurrent use.
type Manager struct {
	client *client.Client

	mu        sync.RWMutex
	user      *models.UserProfile
	loading   bool
	listeners map[int]func(State)
	nextID    int
}

// NewManager builds a manager over the facade. Call Init before reading
// state.
func NewManager(c *client.Client) *Manager {
	return &Manager{
		client:    c,
		loading:   true,
		listeners: make(map[int]func(State)),
	}
}

// Init resolves a persisted token into a user. A failed profile fetch
// clears the token, so a stale or invalid token heals into the
// unauthenticated state instead of wedging the session.
func (m *Manager) Init(ctx context.Context) {
	if m.client.IsAuthenticated() {
		resp := m.client.Profile(ctx)
		if resp.Success {
			m.setUser(&resp.Data, false)
			return
		}
		m.client.Logout(ctx)
	}
	m.setUser(nil, false)
}

// Current returns a snapshot of the session state.
func (m *Manager) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return State{User: m.user, Loading: m.loading, Authenticated: m.user != nil}
}

// Subscribe registers a listener called after every state change. The
// returned function unsubscribes it.
func (m *Manager) Subscribe(fn func(State)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

func (m *Manager) setUser(user *models.UserProfile, loading bool) {
	m.mu.Lock()
	m.user = user
	m.loading = loading
	state := State{User: user, Loading: loading, Authenticated: user != nil}
	listeners := make([]func(State), 0, len(m.listeners))
	for _, fn := range m.listeners {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()
	for _, fn := range listeners {
		fn(state)
	}
}

func (m *Manager) setLoading(loading bool) {
	m.mu.Lock()
	user := m.user
	m.mu.Unlock()
	m.setUser(user, loading)
}

// Login authenticates and adopts the user on success only.
func (m *Manager) Login(ctx context.Context, req models.LoginRequest) Result {
	m.setLoading(true)
	resp := m.client.Login(ctx, req)
	if !resp.Success {
		m.setLoading(false)
		return Result{Message: failMessage(resp.Message, "login failed")}
	}
	m.setUser(&resp.Data.User, false)
	return Result{Success: true}
}

// Register creates an account and adopts the user on success only.
func (m *Manager) Register(ctx context.Context, req models.RegisterRequest) Result {
	m.setLoading(true)
	resp := m.client.Register(ctx, req)
	if !resp.Success {
		m.setLoading(false)
		return Result{Message: failMessage(resp.Message, "registration failed")}
	}
	m.setUser(&resp.Data.User, false)
	return Result{Success: true}
}

// Logout destroys the token and resets the session.
func (m *Manager) Logout(ctx context.Context) {
	m.client.Logout(ctx)
	m.setUser(nil, false)
}

// UpdateProfile applies a partial profile update and refreshes the session
// user on success only.
func (m *Manager) UpdateProfile(ctx context.Context, patch models.ProfilePatch) Result {
	resp := m.client.UpdateProfile(ctx, patch)
	if !resp.Success {
		return Result{Message: failMessage(resp.Message, "profile update failed")}
	}
	m.setUser(&resp.Data, false)
	return Result{Success: true}
}

func failMessage(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}
