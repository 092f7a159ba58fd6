package job

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/postly/postly/internal/pkg/otp"
	"github.com/postly/postly/internal/repo"
)

// CodeCleanupJob nulls pending code pairs whose window has passed. Verify
// operations reject expired codes on their own; this only keeps stale hashes
// from sitting in the store.
type CodeCleanupJob struct {
	users *repo.UserRepo
}

func NewCodeCleanupJob(users *repo.UserRepo) *CodeCleanupJob {
	return &CodeCleanupJob{users: users}
}

func (j *CodeCleanupJob) Name() string {
	return "code_cleanup"
}

func (j *CodeCleanupJob) Run(ctx context.Context) error {
	if j.users == nil {
		return nil
	}
	cutoff := time.Now().Add(-otp.TTL).Unix()
	var total int64
	for _, kind := range []string{repo.CodeKindVerification, repo.CodeKindReset} {
		cleared, err := j.users.ClearExpiredCodes(ctx, kind, cutoff)
		if err != nil {
			return err
		}
		total += cleared
	}
	if total > 0 {
		logutil.GetLogger(ctx).Info("expired codes cleared", zap.Int64("count", total))
	}
	return nil
}
