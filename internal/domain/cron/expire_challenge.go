package cron

import (
	"context"
	"time"

	"github.com/docthru/backend/pkg/xcontext"
	"github.com/docthru/backend/pkg/xredis"
)

const expireChallengeLockKey = "cron:expire_challenge:lock"

type ChallengeExpirer interface {
	ExpireSweep(ctx context.Context, now time.Time) (int, error)
}

// ExpireChallengeCronJob closes challenges whose deadline has passed. When a
// redis client is given, only the replica holding the lock sweeps.
type ExpireChallengeCronJob struct {
	expirer     ChallengeExpirer
	redisClient xredis.Client
	interval    time.Duration
	lockTTL     time.Duration
	now         func() time.Time
}

func NewExpireChallengeCronJob(
	ctx context.Context,
	expirer ChallengeExpirer,
	redisClient xredis.Client,
) *ExpireChallengeCronJob {
	cfg := xcontext.Configs(ctx).Cron
	return &ExpireChallengeCronJob{
		expirer:     expirer,
		redisClient: redisClient,
		interval:    cfg.ExpireChallengeInterval,
		lockTTL:     cfg.LockTTL,
		now:         time.Now,
	}
}

func (job *ExpireChallengeCronJob) Do(ctx context.Context) {
	if job.redisClient != nil {
		ok, err := job.redisClient.SetNX(ctx, expireChallengeLockKey, "1", job.lockTTL)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot acquire expire challenge lock: %v", err)
			return
		}

		if !ok {
			xcontext.Logger(ctx).Debugf("Another instance is expiring challenges")
			return
		}

		defer func() {
			if err := job.redisClient.Del(ctx, expireChallengeLockKey); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot release expire challenge lock: %v", err)
			}
		}()
	}

	closed, err := job.expirer.ExpireSweep(ctx, job.now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot expire challenges: %v", err)
		return
	}

	if closed > 0 {
		xcontext.Logger(ctx).Infof("Closed %d expired challenges", closed)
	}
}

func (job *ExpireChallengeCronJob) RunNow() bool {
	return true
}

func (job *ExpireChallengeCronJob) Next() time.Time {
	return job.now().Add(job.interval)
}
