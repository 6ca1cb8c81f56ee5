package internal

import (
	"context"
	"time"
)

// premiumSweeper revokes lapsed premium subscriptions.
type premiumSweeper struct {
	store interface {
		ExpirePremium(ctx context.Context, now time.Time) (int, error)
	}
	now func() time.Time
}

func newPremiumSweeper(store mirror) *premiumSweeper {
	return &premiumSweeper{store: store, now: time.Now}
}

// sweep expires premium for everyone whose subscription lapsed and returns
// how many users were affected.
func (s *premiumSweeper) sweep(ctx context.Context) (int, error) {
	n, err := s.store.ExpirePremium(ctx, s.now().UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		Log(ctx).Info("expired premium", "users", n)
	}
	return n, nil
}
