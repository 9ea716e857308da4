package feed

import (
	"sync"

	"github.com/rs/zerolog"

	"livefeed/internal/pkg/logx"
)

// Registry maps usernames to homepages for the lifetime of their sessions.
// A homepage is created on first login, shared by every later login of the same user,
// and dropped on logout or shutdown.
type Registry struct {
	// homepages stores every active Homepage, keyed by username.
	homepages map[string]*Homepage

	// mu protects homepages.
	mu sync.RWMutex

	// structured logger with registry context.
	logger zerolog.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		homepages: make(map[string]*Homepage),
		logger:    logx.Component("Registry"),
	}
}

// GetOrCreate returns the homepage for username, creating and registering an empty one
// if none exists. Lookup and insert happen under one lock, so concurrent calls for the
// same username always share a single instance.
func (m *Registry) GetOrCreate(username string) *Homepage {
	m.mu.RLock()
	hp, ok := m.homepages[username]
	m.mu.RUnlock()
	if ok {
		return hp
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if hp, ok := m.homepages[username]; ok {
		return hp
	}

	if m.homepages == nil {
		m.homepages = make(map[string]*Homepage)
	}

	hp = NewHomepage(username)
	m.homepages[username] = hp

	m.logger.Info().Str("username", username).Int("total_sessions", len(m.homepages)).Msg("Homepage created.")
	return hp
}

// Get returns the homepage for username without creating one.
func (m *Registry) Get(username string) (*Homepage, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hp, ok := m.homepages[username]
	return hp, ok
}

// Remove drops the homepage for username and closes its queue, which ends any stream
// consuming it. Unknown usernames are ignored.
func (m *Registry) Remove(username string) {
	m.mu.Lock()
	hp, ok := m.homepages[username]
	if ok {
		delete(m.homepages, username)
	}
	remaining := len(m.homepages)
	m.mu.Unlock()

	if !ok {
		return
	}

	hp.Queue().Close()
	m.logger.Info().Str("username", username).Int("total_sessions", remaining).Msg("Homepage removed.")
}

// Len returns the number of registered homepages.
func (m *Registry) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.homepages)
}

// Shutdown removes every homepage and closes all queues.
// The registry stays usable afterwards but starts empty.
func (m *Registry) Shutdown() {
	m.logger.Info().Msg("Shutting down registry...")

	m.mu.Lock()
	homepages := m.homepages
	m.homepages = make(map[string]*Homepage)
	m.mu.Unlock()

	for _, hp := range homepages {
		hp.Queue().Close()
	}

	m.logger.Info().Int("closed_sessions", len(homepages)).Msg("Registry shutdown complete.")
}
