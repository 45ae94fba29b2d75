package usage

import "context"

// CallStore is the persistence surface the Service needs: an atomic
// check-and-deduct plus lazy row creation.
type CallStore interface {
	UseCall(ctx context.Context, userID string, allowance int) error
	EnsureUser(ctx context.Context, userID string, allowance int) error
}

// Service meters model calls per user and month. A nil *Service disables
// metering entirely, which is how the API runs without a database.
type Service struct {
	store     CallStore
	allowance int
}

// NewService creates a Service backed by the given store. A non-positive
// allowance falls back to DefaultMonthlyCalls.
func NewService(store CallStore, allowance int) *Service {
	if allowance <= 0 {
		allowance = DefaultMonthlyCalls
	}
	return &Service{store: store, allowance: allowance}
}

// UseCall deducts one model call from the user's monthly allowance.
// If the user row does not exist yet it is initialised and the call is
// immediately consumed. Returns ErrQuotaExhausted when the quota for the
// current month is exhausted.
func (s *Service) UseCall(ctx context.Context, userID string) error {
	if s == nil || s.store == nil {
		return nil
	}

	err := s.store.UseCall(ctx, userID, s.allowance)
	if err != ErrQuotaExhausted {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureUser(ctx, userID, s.allowance); initErr != nil {
		return initErr
	}
	return s.store.UseCall(ctx, userID, s.allowance)
}
