package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// DB is the subset of pgxpool.Pool used by PGStore.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGStore reads profiles from the profiles table.
type PGStore struct {
	db DB
}

// NewPGStore wraps a pool or any other DB. A missing row reads as
// ErrProfileNotFound, any other failure as ErrStoreFailure.
func NewPGStore(db DB) *PGStore {
	return &PGStore{db: db}
}

const getProfileSQL = `
SELECT user_id::text,
       COALESCE(subscription_status, ''),
       subscription_expires_at,
       COALESCE(stripe_customer_id, ''),
       COALESCE(stripe_subscription_id, '')
  FROM profiles
 WHERE user_id = $1`

func (s *PGStore) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	var (
		p         Profile
		expiresAt *time.Time
	)
	err := s.db.QueryRow(ctx, getProfileSQL, userID).Scan(
		&p.UserID, &p.Status, &expiresAt, &p.StripeCustomerID, &p.StripeSubscriptionID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}
	p.ExpiresAt = expiresAt
	return &p, nil
}
