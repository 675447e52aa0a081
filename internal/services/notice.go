package services

import (
	"sync"
	"time"
)

const maxNotices = 20

// Notice is a transient message for the learner
type Notice struct {
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notices collects messages until a client drains them. Old notices are
// dropped once maxNotices are pending.
type Notices struct {
	mu    sync.Mutex
	items []Notice
	once  map[string]bool
	now   func() time.Time
}

// NewNotices creates an empty notice queue
func NewNotices() *Notices {
	return &Notices{once: make(map[string]bool), now: time.Now}
}

// Post queues a message
func (n *Notices) Post(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, Notice{Message: msg, At: n.now()})
	if len(n.items) > maxNotices {
		n.items = n.items[len(n.items)-maxNotices:]
	}
}

// PostOnce queues a message the first time id is seen
func (n *Notices) PostOnce(id, msg string) {
	n.mu.Lock()
	if n.once[id] {
		n.mu.Unlock()
		return
	}
	n.once[id] = true
	n.mu.Unlock()
	n.Post(msg)
}

// Drain returns and clears the pending notices
func (n *Notices) Drain() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	items := n.items
	n.items = nil
	if items == nil {
		return []Notice{}
	}
	return items
}
