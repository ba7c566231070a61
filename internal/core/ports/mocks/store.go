package mocks

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/lueurxax/content-gate-bot/internal/core/domain"
	apperrors "github.com/lueurxax/content-gate-bot/internal/core/errors"
)

// Store is a thread-safe in-memory implementation of ports.Repository.
type Store struct {
	mu      sync.RWMutex
	users   map[int64]time.Time
	content map[string]domain.Content
	stats   map[string]domain.Stats
	admins  map[int64]struct{}

	// Now supplies user creation timestamps.
	Now func() time.Time

	// PutContentFn allows overriding PutContent behavior.
	PutContentFn func(ctx context.Context, c *domain.Content) error

	// IncrementStatFn allows overriding IncrementStat behavior.
	IncrementStatFn func(ctx context.Context, code string, field domain.StatField) error

	// ListAdminsFn allows overriding ListAdmins behavior.
	ListAdminsFn func(ctx context.Context) ([]int64, error)

	// ListUserIDsFn allows overriding ListUserIDs behavior.
	ListUserIDsFn func(ctx context.Context) ([]int64, error)
}

// NewStore creates a new empty store.
func NewStore() *Store {
	return &Store{
		users:   make(map[int64]time.Time),
		content: make(map[string]domain.Content),
		stats:   make(map[string]domain.Stats),
		admins:  make(map[int64]struct{}),
		Now:     time.Now,
	}
}

// PutUser records a user once.
func (s *Store) PutUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		s.users[id] = s.Now()
	}

	return nil
}

// CountUsers returns the number of users.
func (s *Store) CountUsers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.users), nil
}

// CountUsersCreatedOn counts users whose creation date matches day.
func (s *Store) CountUsersCreatedOn(_ context.Context, day time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	y, m, d := day.Date()
	n := 0

	for _, created := range s.users {
		cy, cm, cd := created.Date()
		if cy == y && cm == m && cd == d {
			n++
		}
	}

	return n, nil
}

// ListUserIDs returns all user ids in ascending order.
func (s *Store) ListUserIDs(ctx context.Context) ([]int64, error) {
	if s.ListUserIDsFn != nil {
		return s.ListUserIDsFn(ctx)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids, nil
}

// PutContent upserts a record by code.
func (s *Store) PutContent(ctx context.Context, c *domain.Content) error {
	if s.PutContentFn != nil {
		return s.PutContentFn(ctx, c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.content[c.Code] = cloneContent(*c)

	return nil
}

// GetContent returns a copy of the record.
func (s *Store) GetContent(_ context.Context, code string) (*domain.Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.content[code]
	if !ok {
		return nil, fmt.Errorf("get content %s: %w", code, apperrors.ErrContentNotFound)
	}

	out := cloneContent(c)

	return &out, nil
}

// ListContent returns every record ordered by numeric code.
func (s *Store) ListContent(_ context.Context) ([]domain.Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Content, 0, len(s.content))
	for _, c := range s.content {
		out = append(out, cloneContent(c))
	}

	sort.Slice(out, func(i, j int) bool { return codeLess(out[i].Code, out[j].Code) })

	return out, nil
}

// DeleteContent removes the record and its counters.
func (s *Store) DeleteContent(_ context.Context, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.stats, code)

	if _, ok := s.content[code]; !ok {
		return false, nil
	}

	delete(s.content, code)

	return true, nil
}

// UpdateTitle changes the title only.
func (s *Store) UpdateTitle(_ context.Context, code, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.content[code]
	if !ok {
		return fmt.Errorf("update title %s: %w", code, apperrors.ErrContentNotFound)
	}

	c.Title = title
	s.content[code] = c

	return nil
}

// AppendPart grows the parts sequence by one.
func (s *Store) AppendPart(_ context.Context, code, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.content[code]
	if !ok {
		return fmt.Errorf("append part %s: %w", code, apperrors.ErrContentNotFound)
	}

	c.Parts = append(append([]string(nil), c.Parts...), ref)
	s.content[code] = c

	return nil
}

// RemovePart removes the part at the 1-based index.
func (s *Store) RemovePart(_ context.Context, code string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.content[code]
	if !ok {
		return fmt.Errorf("remove part %s: %w", code, apperrors.ErrContentNotFound)
	}

	if index < 1 || index > len(c.Parts) {
		return fmt.Errorf("remove part %d of %s: %w", index, code, apperrors.ErrPartIndexOutOfRange)
	}

	parts := make([]string, 0, len(c.Parts)-1)
	parts = append(parts, c.Parts[:index-1]...)
	parts = append(parts, c.Parts[index:]...)
	c.Parts = parts
	s.content[code] = c

	return nil
}

// EnsureStatRow creates a zero counter row if absent.
func (s *Store) EnsureStatRow(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.stats[code]; !ok {
		s.stats[code] = domain.Stats{Code: code}
	}

	return nil
}

// IncrementStat bumps an existing counter row. Unknown fields and missing rows are ignored.
func (s *Store) IncrementStat(ctx context.Context, code string, field domain.StatField) error {
	if s.IncrementStatFn != nil {
		return s.IncrementStatFn(ctx, code, field)
	}

	if !field.Valid() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stats[code]
	if !ok {
		return nil
	}

	if field == domain.StatSearched {
		st.Searched++
	} else {
		st.Viewed++
	}

	s.stats[code] = st

	return nil
}

// GetStat returns the counters for code.
func (s *Store) GetStat(_ context.Context, code string) (*domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.stats[code]
	if !ok {
		return nil, fmt.Errorf("get stat %s: %w", code, apperrors.ErrStatsNotFound)
	}

	return &st, nil
}

// ListAdmins returns the administrator ids in ascending order.
func (s *Store) ListAdmins(ctx context.Context) ([]int64, error) {
	if s.ListAdminsFn != nil {
		return s.ListAdminsFn(ctx)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.admins))
	for id := range s.admins {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids, nil
}

// AddAdmin inserts the id if absent.
func (s *Store) AddAdmin(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.admins[id] = struct{}{}

	return nil
}

// RemoveAdmin deletes the id.
func (s *Store) RemoveAdmin(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.admins, id)

	return nil
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) (time.Duration, error) {
	return time.Millisecond, nil
}

// HasStats reports whether a counter row exists for code.
func (s *Store) HasStats(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.stats[code]

	return ok
}

func cloneContent(c domain.Content) domain.Content {
	c.Parts = append([]string(nil), c.Parts...)

	return c
}

func codeLess(a, b string) bool {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)

	switch {
	case aErr == nil && bErr == nil:
		return ai < bi
	case aErr == nil:
		return true
	case bErr == nil:
		return false
	default:
		return a < b
	}
}
