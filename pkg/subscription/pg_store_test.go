package subscription_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formsaas/pkg/subscription"
)

type mockDB struct {
	mock.Mock
}

func (m *mockDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	called := m.Called(ctx, sql, args)
	return called.Get(0).(pgx.Row)
}

// row scans fixed column values, or fails with err.
type row struct {
	values []any
	err    error
}

func (r row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case **time.Time:
			*p, _ = r.values[i].(*time.Time)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

func TestPGStore_GetProfile(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		db := &mockDB{}
		db.On("QueryRow", mock.Anything, mock.Anything, []any{"u1"}).
			Return(row{values: []any{"u1", "active", &expires, "cus_1", "sub_1"}}).Once()

		p, err := subscription.NewPGStore(db).GetProfile(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1", p.UserID)
		assert.Equal(t, "active", p.Status)
		require.NotNil(t, p.ExpiresAt)
		assert.True(t, expires.Equal(*p.ExpiresAt))
		assert.Equal(t, "cus_1", p.StripeCustomerID)
		assert.Equal(t, "sub_1", p.StripeSubscriptionID)
		db.AssertExpectations(t)
	})

	t.Run("null expiry", func(t *testing.T) {
		t.Parallel()
		db := &mockDB{}
		db.On("QueryRow", mock.Anything, mock.Anything, []any{"u2"}).
			Return(row{values: []any{"u2", "active", (*time.Time)(nil), "", ""}}).Once()

		p, err := subscription.NewPGStore(db).GetProfile(context.Background(), "u2")
		require.NoError(t, err)
		assert.Nil(t, p.ExpiresAt)

		st := subscription.Derive(p, time.Now())
		assert.Equal(t, subscription.StatusActive, st.Status)
		assert.True(t, st.IsActive)
	})

	t.Run("no rows", func(t *testing.T) {
		t.Parallel()
		db := &mockDB{}
		db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).Return(row{err: pgx.ErrNoRows})

		_, err := subscription.NewPGStore(db).GetProfile(context.Background(), "ghost")
		assert.ErrorIs(t, err, subscription.ErrProfileNotFound)
		assert.NotErrorIs(t, err, subscription.ErrStoreFailure)
	})

	t.Run("scan error", func(t *testing.T) {
		t.Parallel()
		db := &mockDB{}
		db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).
			Return(row{err: errors.New("conn closed")})

		_, err := subscription.NewPGStore(db).GetProfile(context.Background(), "u3")
		assert.ErrorIs(t, err, subscription.ErrStoreFailure)
		assert.NotErrorIs(t, err, subscription.ErrProfileNotFound)
	})
}
