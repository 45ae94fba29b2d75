package session

import "context"

// Service wraps a Store with the session lifecycle rules.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Ensure bootstraps the session for userID if it does not exist yet and
// returns it. Repeated calls for an existing id are no-ops returning the
// stored session unchanged.
func (s *Service) Ensure(ctx context.Context, userID string) (*Session, error) {
	if userID == "" {
		return nil, ErrBadRequest
	}
	sess, err := s.store.Get(ctx, userID)
	if err == nil {
		return sess, nil
	}
	if err != ErrNotFound {
		return nil, err
	}
	sess = New(userID)
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get returns the session for userID; ErrNotFound if never initialized.
func (s *Service) Get(ctx context.Context, userID string) (*Session, error) {
	if userID == "" {
		return nil, ErrBadRequest
	}
	return s.store.Get(ctx, userID)
}

// Save writes the session back as a full replacement, last-writer-wins.
func (s *Service) Save(ctx context.Context, sess *Session) error {
	return s.store.Save(ctx, sess)
}
