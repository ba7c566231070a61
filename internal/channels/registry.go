// Package channels holds the two in-memory channel lists: channels a user must
// join before receiving content, and channels that announcements are posted to.
// The lists are not persisted and start empty on every process start.
package channels

import (
	"sync"

	"github.com/lueurxax/content-gate-bot/internal/core/domain"
)

// Registry is the single owner of both lists. All access goes through its lock.
type Registry struct {
	mu    sync.RWMutex
	lists map[domain.ChannelKind][]domain.Channel
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		lists: map[domain.ChannelKind][]domain.Channel{
			domain.ChannelRequired:     nil,
			domain.ChannelAnnouncement: nil,
		},
	}
}

// Add appends a channel to the list. It returns false if the id is already present.
func (r *Registry) Add(kind domain.ChannelKind, ch domain.Channel) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.lists[kind] {
		if existing.ID == ch.ID {
			return false
		}
	}

	r.lists[kind] = append(r.lists[kind], ch)

	return true
}

// Remove deletes the channel with id from the list, keeping the order of the rest.
func (r *Registry) Remove(kind domain.ChannelKind, id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.lists[kind]

	for i, ch := range list {
		if ch.ID != id {
			continue
		}

		out := make([]domain.Channel, 0, len(list)-1)
		out = append(out, list[:i]...)
		out = append(out, list[i+1:]...)
		r.lists[kind] = out

		return true
	}

	return false
}

// List returns a snapshot of the list in insertion order.
func (r *Registry) List(kind domain.ChannelKind) []domain.Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src := r.lists[kind]
	out := make([]domain.Channel, len(src))
	copy(out, src)

	return out
}

// Required is shorthand for List(domain.ChannelRequired).
func (r *Registry) Required() []domain.Channel {
	return r.List(domain.ChannelRequired)
}

// Announcement is shorthand for List(domain.ChannelAnnouncement).
func (r *Registry) Announcement() []domain.Channel {
	return r.List(domain.ChannelAnnouncement)
}
