package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/duosplit/receipt-split-service/internal/domain"
	"github.com/duosplit/receipt-split-service/internal/metrics"
	"github.com/duosplit/receipt-split-service/internal/money"
	"github.com/duosplit/receipt-split-service/internal/repository"
	"github.com/duosplit/receipt-split-service/internal/split"
)

// SplitServiceError represents an error in the split service.
type SplitServiceError struct {
	Op  string
	Err error
}

func (e *SplitServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// Unwrap returns the underlying error.
func (e *SplitServiceError) Unwrap() error {
	return e.Err
}

// SplitService wraps the pure split engine with the preference store
// side effects: attribution recall on initialization and best-effort
// persistence on reassignment. The engine itself stays side-effect
// free; the browser owns the current state and posts it whole.
type SplitService struct {
	preferences repository.PreferenceRepository
}

// NewSplitService creates a new split service.
func NewSplitService(preferences repository.PreferenceRepository) *SplitService {
	return &SplitService{preferences: preferences}
}

// InitializeSplit builds the initial split state for an extracted
// receipt, recalling remembered attributions per canonical label.
// Preference store failures are logged and treated as absence.
func (s *SplitService) InitializeSplit(ctx context.Context, receipt domain.Receipt) (split.State, error) {
	lookup := func(canonicalLabel string) (split.Attribution, bool) {
		if s.preferences == nil {
			return "", false
		}
		attribution, ok, err := s.preferences.Get(ctx, canonicalLabel)
		if err != nil {
			slog.Warn("preference lookup failed", "key", canonicalLabel, "error", err)
			return "", false
		}
		return attribution, ok
	}

	state, err := split.New(receipt, lookup)
	if err != nil {
		return split.State{}, &SplitServiceError{Op: "initialize_split", Err: err}
	}
	return state, nil
}

// UpdatePrice applies a user-typed price edit to one item. Unparseable
// input is a silent no-op: the prior state is returned unchanged. An
// out-of-range index is an error.
func (s *SplitService) UpdatePrice(state split.State, index int, input string) (split.State, error) {
	price, err := money.Parse(input)
	if err != nil {
		return state, nil
	}

	next, err := state.WithPrice(index, price)
	if err != nil {
		return split.State{}, &SplitServiceError{Op: "update_price", Err: err}
	}
	return next, nil
}

// UpdateAttribution reassigns one item and persists the preference
// best-effort so similarly-labeled items default correctly next time.
func (s *SplitService) UpdateAttribution(ctx context.Context, state split.State, index int, attribution split.Attribution) (split.State, error) {
	next, err := state.WithAttribution(index, attribution)
	if err != nil {
		return split.State{}, &SplitServiceError{Op: "update_attribution", Err: err}
	}

	if s.preferences != nil {
		key := split.CanonicalLabel(next.Items[index].Label)
		if err := s.preferences.Set(ctx, key, attribution); err != nil {
			slog.Warn("failed to persist attribution preference", "key", key, "error", err)
		}
	}
	return next, nil
}

// UpdateWhoPaid replaces the payer selection.
func (s *SplitService) UpdateWhoPaid(state split.State, payer split.Attribution) split.State {
	return state.WithWhoPaid(payer)
}

// Settlement computes the current total and who owes whom.
func (s *SplitService) Settlement(state split.State) (split.Settlement, money.Amount) {
	metrics.SettlementsTotal.Inc()
	return state.Settle(), state.Total()
}

// IsIndexError reports whether err stems from an out-of-range item
// index.
func IsIndexError(err error) bool {
	return errors.Is(err, split.ErrIndexOutOfRange)
}
