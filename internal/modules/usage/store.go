package usage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles chat_usage persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// UseCall atomically checks the monthly quota and deducts one call.
// When last_reset_month is behind the current month the counter restarts
// from allowance before the deduction. Returns ErrQuotaExhausted when 0
// rows are updated (quota exhausted or user absent).
func (s *Store) UseCall(ctx context.Context, userID string, allowance int) error {
	month := currentMonth()

	tag, err := s.db.Exec(ctx, `
		UPDATE chat_usage SET
			calls_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE calls_remaining - 1 END,
			last_reset_month = $1
		WHERE user_id = $3 AND (last_reset_month < $1 OR calls_remaining > 0)
	`, month, allowance, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrQuotaExhausted
	}
	return nil
}

// EnsureUser inserts a new chat_usage row for userID with the given call
// allowance. If the row already exists the insert is silently skipped.
func (s *Store) EnsureUser(ctx context.Context, userID string, allowance int) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO chat_usage (user_id, calls_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO NOTHING
	`, userID, allowance, currentMonth())
	return err
}

func currentMonth() string {
	return time.Now().Format("2006-01")
}
