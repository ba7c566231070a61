package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/content-gate-bot/internal/core/domain"
	apperrors "github.com/lueurxax/content-gate-bot/internal/core/errors"
)

func TestStore_PutContentReplaces(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.PutContent(ctx, &domain.Content{Code: "91", Title: "Naruto", PosterRef: "P", Parts: []string{"A", "B"}}))
	require.NoError(t, s.PutContent(ctx, &domain.Content{Code: "91", Title: "Bleach", Parts: []string{"C"}}))

	all, err := s.ListContent(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.Content{Code: "91", Title: "Bleach", Parts: []string{"C"}}, all[0])
}

func TestStore_StatsSemantics(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.EnsureStatRow(ctx, "5"))
	}

	require.NoError(t, s.IncrementStat(ctx, "5", domain.StatSearched))
	require.NoError(t, s.IncrementStat(ctx, "5", "bogus"))
	require.NoError(t, s.EnsureStatRow(ctx, "5"))

	st, err := s.GetStat(ctx, "5")
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.Searched)
	assert.Equal(t, int64(0), st.Viewed)

	_, err = s.GetStat(ctx, "6")
	assert.ErrorIs(t, err, apperrors.ErrStatsNotFound)
}

func TestStore_ListContentNumericOrder(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	for _, code := range []string{"100", "9", "abc", "10"} {
		require.NoError(t, s.PutContent(ctx, &domain.Content{Code: code}))
	}

	all, err := s.ListContent(ctx)
	require.NoError(t, err)

	codes := make([]string, 0, len(all))
	for _, c := range all {
		codes = append(codes, c.Code)
	}

	assert.Equal(t, []string{"9", "10", "100", "abc"}, codes)
}
