package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

const dayLayout = "2006-01-02"

func (e *Engine) showStats(ctx context.Context, actor int64) error {
	latency, err := e.store.Ping(ctx)
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	users, err := e.store.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}

	items, err := e.store.ListContent(ctx)
	if err != nil {
		return fmt.Errorf("list content: %w", err)
	}

	today, err := e.store.CountUsersCreatedOn(ctx, e.now())
	if err != nil {
		return fmt.Errorf("count users today: %w", err)
	}

	ms := float64(latency) / float64(time.Millisecond)

	return e.reply(ctx, actor, e.printer.Sprintf(MsgStatsOverviewFmt, ms, users, len(items), today), RootKeyboard())
}

func (e *Engine) usersOn(ctx context.Context, actor int64, arg string) error {
	if arg == "" {
		return e.say(ctx, actor, MsgUsersUsage)
	}

	day, err := dateparse.ParseLocal(arg)
	if err != nil {
		return e.say(ctx, actor, MsgUsersUsage)
	}

	n, err := e.store.CountUsersCreatedOn(ctx, day)
	if err != nil {
		return fmt.Errorf("count users on %s: %w", day.Format(dayLayout), err)
	}

	return e.say(ctx, actor, e.printer.Sprintf(MsgUsersOnFmt, day.Format(dayLayout), n))
}
