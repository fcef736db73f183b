package usecase

import (
	"context"
	"time"

	"jobboard/internal/pkg/logger"
	"jobboard/internal/repository"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

const (
	CleanupLockKey        = "lock:job-posts:expired-cleanup"
	DefaultCleanupLockTTL = 10 * time.Minute
)

type CleanupResult struct {
	Ran     bool
	Deleted int64
}

// ExpiredPostingsCleanup deletes postings past created_at + expiration_days.
// Only the instance holding the lock does any work.
type ExpiredPostingsCleanup struct {
	posts   repository.JobPostingRepository
	locker  Locker
	lockTTL time.Duration
	now     func() time.Time
	log     *zap.SugaredLogger
}

func NewExpiredPostingsCleanup(posts repository.JobPostingRepository, locker Locker, lockTTL time.Duration, log *zap.SugaredLogger) *ExpiredPostingsCleanup {
	if lockTTL <= 0 {
		lockTTL = DefaultCleanupLockTTL
	}
	return &ExpiredPostingsCleanup{
		posts:   posts,
		locker:  locker,
		lockTTL: lockTTL,
		now:     time.Now,
		log:     logger.Component(log, "cleanup"),
	}
}

func (c *ExpiredPostingsCleanup) Run(ctx context.Context) (CleanupResult, error) {
	ok, err := c.locker.Lock(ctx, CleanupLockKey, c.lockTTL)
	if err != nil || !ok {
		c.log.Infow("cleanup lock not acquired, skipping", logger.FieldKey, CleanupLockKey, logger.FieldError, err)
		return CleanupResult{}, nil
	}
	defer func() {
		unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := c.locker.Unlock(unlockCtx, CleanupLockKey); err != nil {
			c.log.Warnw("release cleanup lock", logger.FieldError, err)
		}
	}()

	n, err := c.posts.DeleteExpired(ctx, c.now())
	if err != nil {
		return CleanupResult{Ran: true}, errors.Wrap(err, "delete expired postings")
	}
	c.log.Infow("expired postings deleted", logger.FieldCount, n)
	return CleanupResult{Ran: true, Deleted: n}, nil
}
