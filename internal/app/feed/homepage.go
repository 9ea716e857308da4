package feed

import (
	"slices"
	"sync"
)

// Homepage is the in-memory state of one logged-in user: posts, the generate button
// flag, a write-once session id and the queue of pending UI updates.
//
// The mutable fields are guarded by mu. Operations spanning several calls (a generate
// burst, add-post followed by rendering) are not atomic as a whole, so overlapping
// requests for the same user may interleave their posts and updates.
type Homepage struct {
	// Username is the homepage owner and its registry key.
	Username string

	mu            sync.Mutex
	posts         []string
	buttonToggled bool
	sessionID     string

	queue *Queue
}

// NewHomepage returns an empty homepage for username with a fresh queue.
func NewHomepage(username string) *Homepage {
	return &Homepage{
		Username: username,
		queue:    NewQueue(),
	}
}

// AddPost appends content to the post list and returns a snapshot of the list after
// the append.
func (h *Homepage) AddPost(content string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.posts = append(h.posts, content)
	return slices.Clone(h.posts)
}

// Posts returns a copy of the posts in insertion order.
func (h *Homepage) Posts() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.posts)
}

// SetSessionIDOnce stores id if no session id has been set yet.
// It reports whether id was stored.
func (h *Homepage) SetSessionIDOnce(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sessionID != "" || id == "" {
		return false
	}
	h.sessionID = id
	return true
}

// SessionID returns the session id, or "" if none was set.
func (h *Homepage) SessionID() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessionID
}

// ToggleButton flips the button flag and returns the new value.
func (h *Homepage) ToggleButton() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buttonToggled = !h.buttonToggled
	return h.buttonToggled
}

// ButtonToggled returns the button flag.
func (h *Homepage) ButtonToggled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.buttonToggled
}

// Enqueue appends u to the update queue without waiting for a consumer.
// It fails only when the homepage was removed from the registry.
func (h *Homepage) Enqueue(u Update) error {
	return h.queue.Push(u)
}

// Queue returns the homepage's update queue.
func (h *Homepage) Queue() *Queue {
	return h.queue
}
