// Package gate decides whether a user has joined every required channel.
package gate

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/lueurxax/content-gate-bot/internal/core/domain"
	"github.com/lueurxax/content-gate-bot/internal/core/ports"
	"github.com/lueurxax/content-gate-bot/internal/platform/observability"
)

const (
	logFieldUserID    = "user_id"
	logFieldChannelID = "channel_id"
)

// ChannelSource returns the current required channel list.
type ChannelSource interface {
	Required() []domain.Channel
}

// Gate evaluates membership against the required channels on every call.
type Gate struct {
	channels ChannelSource
	members  ports.MembershipChecker
	logger   *zerolog.Logger
}

// New creates a gate.
func New(channels ChannelSource, members ports.MembershipChecker, logger *zerolog.Logger) *Gate {
	return &Gate{
		channels: channels,
		members:  members,
		logger:   logger,
	}
}

// Evaluate returns the required channels userID has not joined, in configured
// order. A failed membership query counts as not joined. An empty result means
// the gate passes.
func (g *Gate) Evaluate(ctx context.Context, userID int64) []domain.Channel {
	var unresolved []domain.Channel

	for _, ch := range g.channels.Required() {
		status, err := g.members.MemberStatus(ctx, ch.ID, userID)
		if err != nil {
			g.logger.Warn().Err(err).
				Int64(logFieldUserID, userID).
				Int64(logFieldChannelID, ch.ID).
				Msg("membership check failed")
			observability.GateChecks.WithLabelValues(observability.ResultError).Inc()

			unresolved = append(unresolved, ch)

			continue
		}

		if !status.Joined() {
			observability.GateChecks.WithLabelValues(observability.ResultMissing).Inc()

			unresolved = append(unresolved, ch)

			continue
		}

		observability.GateChecks.WithLabelValues(observability.ResultJoined).Inc()
	}

	return unresolved
}

// Labeled is a channel with a display name for the join prompt.
type Labeled struct {
	domain.Channel
	Name string
}

// Label resolves display names for channels. A channel whose title cannot be
// fetched is labeled with its id.
func (g *Gate) Label(ctx context.Context, channels []domain.Channel) []Labeled {
	out := make([]Labeled, 0, len(channels))

	for _, ch := range channels {
		name, err := g.members.ChatTitle(ctx, ch.ID)
		if err != nil || name == "" {
			name = strconv.FormatInt(ch.ID, 10)
		}

		out = append(out, Labeled{Channel: ch, Name: name})
	}

	return out
}
