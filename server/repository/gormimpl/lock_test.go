package gormimpl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	interfaces "lockstats/server/repository/interface"
	models "lockstats/server/repository/model/lockstats"
)

func TestLockRepo(t *testing.T) {
	db := newTestDB(t)
	repo := NewLockRepo(db)
	ctx := context.Background()

	locks := []models.Lock{
		{ID: 42, Resource: "core\\task\\send_emails", Gained: 1700000600, Released: 1700000300, LockCount: 3, Duration: 18.5, Host: "web01", PID: 103},
		{ID: 7, Resource: "core\\task\\cleanup", Gained: 1600000000, Released: 1600000010, LockCount: 1, Duration: 10, Host: "web03", PID: 200},
	}
	require.NoError(t, db.Create(&locks).Error)

	t.Run("get", func(t *testing.T) {
		lock, err := repo.GetLockByID(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, "core\\task\\send_emails", lock.Resource)
		assert.Equal(t, int64(3), lock.LockCount)
	})

	t.Run("get missing", func(t *testing.T) {
		lock, err := repo.GetLockByID(ctx, 1)
		assert.Nil(t, lock)
		assert.ErrorIs(t, err, interfaces.ErrNotFound)
	})

	t.Run("count", func(t *testing.T) {
		total, err := repo.CountLocks(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("list sorted", func(t *testing.T) {
		list, err := repo.ListLocks(ctx, interfaces.ListOptions{Sort: "gained", Desc: true})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, uint(42), list[0].ID)
		assert.Equal(t, uint(7), list[1].ID)
	})

	t.Run("list limited", func(t *testing.T) {
		list, err := repo.ListLocks(ctx, interfaces.ListOptions{Sort: "resource", Limit: 1})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "core\\task\\cleanup", list[0].Resource)
	})
}
