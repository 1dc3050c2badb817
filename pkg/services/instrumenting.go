package services

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"

	"github.com/mediaconnect/doctor-invites/pkg/models"
)

// InstrumentingMiddleware counts SendInvite calls by outcome and records their
// duration in seconds.
func InstrumentingMiddleware(requests metrics.Counter, duration metrics.Histogram) Middleware {
	return func(next InvitationService) InvitationService {
		return instrumentingMiddleware{
			requests: requests,
			duration: duration,
			next:     next,
		}
	}
}

type instrumentingMiddleware struct {
	requests metrics.Counter
	duration metrics.Histogram
	next     InvitationService
}

func (mw instrumentingMiddleware) SendInvite(ctx context.Context, req models.InviteRequest) (result models.InviteResult, err error) {
	defer func(begin time.Time) {
		outcome := outcomeLabel(result, err)
		mw.requests.With("outcome", outcome).Add(1)
		mw.duration.With("outcome", outcome).Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mw.next.SendInvite(ctx, req)
}
