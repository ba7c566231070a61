package broadcast

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lueurxax/content-gate-bot/internal/core/errors"
	"github.com/lueurxax/content-gate-bot/internal/core/ports/mocks"
)

type recordingSleeper struct {
	pauses []time.Duration
}

func (r *recordingSleeper) Sleep(_ context.Context, d time.Duration) error {
	r.pauses = append(r.pauses, d)

	return nil
}

func seedUsers(t *testing.T, store *mocks.Store, n int) {
	t.Helper()

	for i := 1; i <= n; i++ {
		require.NoError(t, store.PutUser(context.Background(), int64(i)))
	}
}

func TestRunAccounting(t *testing.T) {
	tests := []struct {
		name       string
		recipients int
		failAt     map[int64]error
		wantPauses int
	}{
		{name: "no recipients", recipients: 0, wantPauses: 0},
		{name: "single", recipients: 1, wantPauses: 0},
		{name: "exactly one batch", recipients: 20, wantPauses: 0},
		{name: "one over batch", recipients: 21, wantPauses: 1},
		{name: "two full batches", recipients: 40, wantPauses: 1},
		{
			name:       "failures do not abort",
			recipients: 45,
			failAt: map[int64]error{
				3:  apperrors.ErrRecipientUnreachable,
				20: apperrors.ErrMalformedRequest,
				41: mocks.ErrInjected,
			},
			wantPauses: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewStore()
			seedUsers(t, store, tt.recipients)

			messenger := mocks.NewMessenger()
			messenger.ForwardFn = func(_ context.Context, chatID int64, _ string, _ int) error {
				if err, ok := tt.failAt[chatID]; ok {
					return fmt.Errorf("forward to %d: %w", chatID, err)
				}

				return nil
			}

			sleeper := &recordingSleeper{}
			logger := zerolog.Nop()
			engine := New(store, messenger, sleeper, Config{BatchSize: 20, Pause: 1500 * time.Millisecond}, &logger)

			res, err := engine.Run(context.Background(), "@source", 7)
			require.NoError(t, err)

			assert.Equal(t, tt.recipients, res.Success+res.Failure)
			assert.Equal(t, len(tt.failAt), res.Failure)
			assert.Equal(t, tt.wantPauses, res.Pauses)
			assert.Equal(t, (max(tt.recipients, 1)-1)/20, res.Pauses)
			assert.Len(t, sleeper.pauses, tt.wantPauses)
			assert.NotEmpty(t, res.RunID)
			assert.Len(t, messenger.Forwarded(), res.Success)
		})
	}
}

func TestRunForwardsInRecipientOrder(t *testing.T) {
	store := mocks.NewStore()
	seedUsers(t, store, 3)

	messenger := mocks.NewMessenger()
	logger := zerolog.Nop()
	engine := New(store, messenger, &recordingSleeper{}, Config{}, &logger)

	_, err := engine.Run(context.Background(), "-100777", 12)
	require.NoError(t, err)

	assert.Equal(t, []mocks.Forwarded{
		{ChatID: 1, Source: "-100777", MessageID: 12},
		{ChatID: 2, Source: "-100777", MessageID: 12},
		{ChatID: 3, Source: "-100777", MessageID: 12},
	}, messenger.Forwarded())
}

func TestRunSnapshotsRecipients(t *testing.T) {
	store := mocks.NewStore()
	seedUsers(t, store, 2)

	messenger := mocks.NewMessenger()
	messenger.ForwardFn = func(ctx context.Context, _ int64, _ string, _ int) error {
		return store.PutUser(ctx, 99)
	}

	logger := zerolog.Nop()
	engine := New(store, messenger, &recordingSleeper{}, Config{}, &logger)

	res, err := engine.Run(context.Background(), "@source", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total())
}

func TestRunListError(t *testing.T) {
	store := mocks.NewStore()
	store.ListUserIDsFn = func(context.Context) ([]int64, error) {
		return nil, mocks.ErrInjected
	}

	logger := zerolog.Nop()
	engine := New(store, mocks.NewMessenger(), &recordingSleeper{}, Config{}, &logger)

	_, err := engine.Run(context.Background(), "@source", 1)
	require.ErrorIs(t, err, mocks.ErrInjected)
}
