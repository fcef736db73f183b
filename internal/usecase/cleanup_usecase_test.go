package usecase

import (
	"context"
	"testing"
	"time"

	"jobboard/internal/domain/jobpost"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanup_DeletesExpiredAndReleasesLock(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &mockPostRepo{items: []jobpost.JobPosting{
		{ID: uuid.New(), Title: "old", ExpirationDays: 30, CreatedAt: now.AddDate(0, 0, -31)},
		{ID: uuid.New(), Title: "short", ExpirationDays: 1, CreatedAt: now.Add(-25 * time.Hour)},
		{ID: uuid.New(), Title: "fresh", ExpirationDays: 30, CreatedAt: now.AddDate(0, 0, -2)},
	}}
	locker := &mockLocker{}
	c := NewExpiredPostingsCleanup(repo, locker, time.Minute, nil)
	c.now = func() time.Time { return now }

	res, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Ran)
	assert.Equal(t, int64(2), res.Deleted)
	require.Len(t, repo.items, 1)
	assert.Equal(t, "fresh", repo.items[0].Title)
	assert.Equal(t, []string{CleanupLockKey}, locker.unlocked)
	assert.Empty(t, locker.held)
}

func TestCleanup_NoopWhenLockHeldElsewhere(t *testing.T) {
	repo := &mockPostRepo{items: []jobpost.JobPosting{
		{ID: uuid.New(), ExpirationDays: 1, CreatedAt: time.Now().AddDate(0, 0, -10)},
	}}
	locker := &mockLocker{held: map[string]bool{CleanupLockKey: true}}
	c := NewExpiredPostingsCleanup(repo, locker, time.Minute, nil)

	res, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Ran)
	assert.Len(t, repo.items, 1)
	assert.Empty(t, locker.unlocked)
}

func TestCleanup_NoopWhenLockErrors(t *testing.T) {
	repo := &mockPostRepo{}
	c := NewExpiredPostingsCleanup(repo, &mockLocker{err: errors.New("connection refused")}, 0, nil)

	res, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Ran)
}
