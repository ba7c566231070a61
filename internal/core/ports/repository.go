// Package ports provides domain-centric interfaces for external dependencies.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern,
// allowing business logic to remain independent of infrastructure concerns.
package ports

import (
	"context"
	"time"

	"github.com/lueurxax/content-gate-bot/internal/core/domain"
)

// UserStore records observed actors.
type UserStore interface {
	PutUser(ctx context.Context, id int64) error
	CountUsers(ctx context.Context) (int, error)
	CountUsersCreatedOn(ctx context.Context, day time.Time) (int, error)
	ListUserIDs(ctx context.Context) ([]int64, error)
}

// ContentStore handles catalog records keyed by code.
type ContentStore interface {
	// PutContent inserts the record or fully replaces the one with the same code.
	PutContent(ctx context.Context, c *domain.Content) error
	GetContent(ctx context.Context, code string) (*domain.Content, error)
	ListContent(ctx context.Context) ([]domain.Content, error)
	// DeleteContent removes the record and its counters. It reports whether a record existed.
	DeleteContent(ctx context.Context, code string) (bool, error)
	UpdateTitle(ctx context.Context, code, title string) error
	AppendPart(ctx context.Context, code, ref string) error
	// RemovePart removes the part at the 1-based index.
	RemovePart(ctx context.Context, code string, index int) error
}

// StatsStore handles per-code counters.
type StatsStore interface {
	EnsureStatRow(ctx context.Context, code string) error
	IncrementStat(ctx context.Context, code string, field domain.StatField) error
	GetStat(ctx context.Context, code string) (*domain.Stats, error)
}

// AdminStore handles the administrator set.
type AdminStore interface {
	ListAdmins(ctx context.Context) ([]int64, error)
	AddAdmin(ctx context.Context, id int64) error
	RemoveAdmin(ctx context.Context, id int64) error
}

// HealthChecker probes the store.
type HealthChecker interface {
	Ping(ctx context.Context) (time.Duration, error)
}

// Repository is the full persistence gateway.
type Repository interface {
	UserStore
	ContentStore
	StatsStore
	AdminStore
	HealthChecker
}
