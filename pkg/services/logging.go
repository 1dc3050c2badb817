package services

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/mediaconnect/doctor-invites/pkg/models"
	"github.com/mediaconnect/doctor-invites/pkg/utils"
)

// LoggingMiddleware logs every SendInvite call. Emails are logged as
// fingerprints only.
func LoggingMiddleware(logger log.Logger) Middleware {
	return func(next InvitationService) InvitationService {
		return loggingMiddleware{
			logger: logger,
			next:   next,
		}
	}
}

type loggingMiddleware struct {
	logger log.Logger
	next   InvitationService
}

func (mw loggingMiddleware) SendInvite(ctx context.Context, req models.InviteRequest) (result models.InviteResult, err error) {
	defer func(begin time.Time) {
		logger := level.Info(mw.logger)
		if err != nil {
			logger = level.Error(mw.logger)
		}
		logger.Log(
			"method", "SendInvite",
			"email", utils.EmailFingerprint(req.Email),
			"outcome", outcomeLabel(result, err),
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return mw.next.SendInvite(ctx, req)
}

func outcomeLabel(result models.InviteResult, err error) string {
	switch {
	case err != nil:
		return "error"
	case result.IsSuccess():
		return "sent"
	default:
		return "failed"
	}
}
