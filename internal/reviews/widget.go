package reviews

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"storefront/internal/state"
)

// Widget is the helpful-vote controller. Votes are deduplicated server-side
// by the persisted voter token; the widget mirrors that by disabling a
// control once the server reports already_voted. Vote failures are swallowed
// by policy.
type Widget struct {
	store   Store
	profile *state.Store
	logger  *zap.SugaredLogger

	mu       sync.Mutex
	disabled map[int]bool
}

func NewWidget(store Store, profile *state.Store, logger *zap.SugaredLogger) *Widget {
	return &Widget{store: store, profile: profile, logger: logger, disabled: make(map[int]bool)}
}

func (w *Widget) Disabled(reviewID int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.disabled[reviewID]
}

// VoteHelpful casts a vote and returns the refreshed count. A nil result
// means the vote was silently ignored (control disabled, or the call
// failed); the displayed count is left alone in that case.
func (w *Widget) VoteHelpful(ctx context.Context, reviewID int) *VoteResult {
	if w.Disabled(reviewID) {
		return nil
	}

	token, err := w.profile.VoterToken()
	if err != nil {
		return nil
	}

	result, err := w.store.Vote(ctx, reviewID, token)
	if err != nil {
		if w.logger != nil {
			w.logger.Debugw("helpful vote ignored", "review_id", reviewID, "error", err)
		}
		return nil
	}

	if result.AlreadyVoted {
		w.mu.Lock()
		w.disabled[reviewID] = true
		w.mu.Unlock()
	}
	return result
}
