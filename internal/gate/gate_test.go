package gate

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/lueurxax/content-gate-bot/internal/channels"
	"github.com/lueurxax/content-gate-bot/internal/core/domain"
	"github.com/lueurxax/content-gate-bot/internal/core/ports/mocks"
)

const user int64 = 42

var (
	chanA = domain.Channel{ID: -1001, Link: "https://t.me/a"}
	chanB = domain.Channel{ID: -1002, Link: "https://t.me/b"}
	chanC = domain.Channel{ID: -1003, Link: "https://t.me/c"}
)

func newGate(t *testing.T, members *mocks.Membership, chans ...domain.Channel) *Gate {
	t.Helper()

	reg := channels.NewRegistry()
	for _, ch := range chans {
		reg.Add(domain.ChannelRequired, ch)
	}

	logger := zerolog.Nop()

	return New(reg, members, &logger)
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		statuses map[int64]domain.MemberStatus
		failing  []int64
		want     []domain.Channel
	}{
		{
			name: "member of all",
			statuses: map[int64]domain.MemberStatus{
				chanA.ID: domain.MemberMember,
				chanB.ID: domain.MemberAdministrator,
				chanC.ID: domain.MemberCreator,
			},
			want: nil,
		},
		{
			name: "missing one",
			statuses: map[int64]domain.MemberStatus{
				chanA.ID: domain.MemberMember,
				chanC.ID: domain.MemberMember,
			},
			want: []domain.Channel{chanB},
		},
		{
			name: "restricted and kicked do not count",
			statuses: map[int64]domain.MemberStatus{
				chanA.ID: domain.MemberRestricted,
				chanB.ID: domain.MemberKicked,
				chanC.ID: domain.MemberMember,
			},
			want: []domain.Channel{chanA, chanB},
		},
		{
			name: "query error fails closed",
			statuses: map[int64]domain.MemberStatus{
				chanA.ID: domain.MemberMember,
				chanB.ID: domain.MemberMember,
				chanC.ID: domain.MemberMember,
			},
			failing: []int64{chanB.ID},
			want:    []domain.Channel{chanB},
		},
		{
			name: "none joined keeps order",
			want: []domain.Channel{chanA, chanB, chanC},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members := mocks.NewMembership()
			for id, st := range tt.statuses {
				members.SetStatus(id, user, st)
			}

			for _, id := range tt.failing {
				members.FailChannel(id, mocks.ErrInjected)
			}

			g := newGate(t, members, chanA, chanB, chanC)

			assert.Equal(t, tt.want, g.Evaluate(context.Background(), user))
		})
	}
}

func TestEvaluateNoRequiredChannels(t *testing.T) {
	g := newGate(t, mocks.NewMembership())

	assert.Empty(t, g.Evaluate(context.Background(), user))
}

func TestEvaluateIsNotCached(t *testing.T) {
	members := mocks.NewMembership()
	g := newGate(t, members, chanA)

	assert.Equal(t, []domain.Channel{chanA}, g.Evaluate(context.Background(), user))

	members.SetStatus(chanA.ID, user, domain.MemberMember)

	assert.Empty(t, g.Evaluate(context.Background(), user))
}

func TestLabel(t *testing.T) {
	members := mocks.NewMembership()
	members.SetTitle(chanA.ID, "Anime News")

	g := newGate(t, members)

	got := g.Label(context.Background(), []domain.Channel{chanA, chanB})

	assert.Equal(t, []Labeled{
		{Channel: chanA, Name: "Anime News"},
		{Channel: chanB, Name: "-1002"},
	}, got)
}
