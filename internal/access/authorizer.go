// Package access answers the single question "is this actor an administrator"
// for every privileged path in the bot.
package access

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const logFieldUserID = "user_id"

// AdminLister is the authoritative source of the administrator set.
type AdminLister interface {
	ListAdmins(ctx context.Context) ([]int64, error)
}

// Authorizer caches the administrator set for a short TTL. Writers to the set
// call Invalidate so the next check reloads it.
type Authorizer struct {
	source AdminLister
	ttl    time.Duration
	logger *zerolog.Logger
	now    func() time.Time

	mu       sync.RWMutex
	admins   map[int64]struct{}
	loadedAt time.Time
}

// NewAuthorizer creates an authorizer. A ttl of zero disables caching.
func NewAuthorizer(source AdminLister, ttl time.Duration, logger *zerolog.Logger) *Authorizer {
	return &Authorizer{
		source: source,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// IsAdministrator reports whether id is in the administrator set.
// A failure to load the set counts as "not an administrator".
func (a *Authorizer) IsAdministrator(ctx context.Context, id int64) bool {
	if admins, ok := a.cached(); ok {
		_, found := admins[id]

		return found
	}

	admins, err := a.reload(ctx)
	if err != nil {
		a.logger.Error().Err(err).Int64(logFieldUserID, id).Msg("failed to load administrators")

		return false
	}

	_, found := admins[id]

	return found
}

// Invalidate drops the cached set.
func (a *Authorizer) Invalidate() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.admins = nil
}

func (a *Authorizer) cached() (map[int64]struct{}, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.admins == nil || a.ttl <= 0 || a.now().Sub(a.loadedAt) >= a.ttl {
		return nil, false
	}

	return a.admins, true
}

func (a *Authorizer) reload(ctx context.Context) (map[int64]struct{}, error) {
	ids, err := a.source.ListAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}

	admins := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		admins[id] = struct{}{}
	}

	a.mu.Lock()
	a.admins = admins
	a.loadedAt = a.now()
	a.mu.Unlock()

	return admins, nil
}
