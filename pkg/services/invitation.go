package services

import (
	"context"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/mediaconnect/doctor-invites/pkg/clients/inviteapi"
	"github.com/mediaconnect/doctor-invites/pkg/events"
	"github.com/mediaconnect/doctor-invites/pkg/models"
	"github.com/mediaconnect/doctor-invites/pkg/utils"
)

// InvitationService sends doctor invitations
type InvitationService interface {
	SendInvite(ctx context.Context, req models.InviteRequest) (models.InviteResult, error)
}

// Middleware decorates an InvitationService.
type Middleware func(InvitationService) InvitationService

type invitationServiceImpl struct {
	client    inviteapi.Client
	publisher events.Publisher
	logger    log.Logger
}

// NewInvitationService creates a new invitation service and applies the
// middlewares in order, the first one being the outermost.
func NewInvitationService(
	client inviteapi.Client,
	publisher events.Publisher,
	logger log.Logger,
	mws ...Middleware,
) InvitationService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	var svc InvitationService = &invitationServiceImpl{
		client:    client,
		publisher: publisher,
		logger:    logger,
	}
	for i := len(mws) - 1; i >= 0; i-- {
		svc = mws[i](svc)
	}
	return svc
}

// SendInvite normalizes the request, calls the invitation endpoint and
// publishes what happened.
func (s *invitationServiceImpl) SendInvite(ctx context.Context, req models.InviteRequest) (models.InviteResult, error) {
	req = req.Normalize()
	outcome := events.Outcome{EmailFingerprint: utils.EmailFingerprint(req.Email)}

	result, err := s.client.SendInvite(ctx, req)
	if err != nil {
		outcome.Kind = events.KindError
		s.publish(ctx, outcome)
		return models.InviteResult{}, err
	}

	result.Match(
		func(ok models.InviteSuccess) {
			outcome.Kind = events.KindSent
			outcome.Message = ok.Message
		},
		func(f models.InviteFailure) {
			outcome.Kind = events.KindFailed
			outcome.Status = f.Status
			outcome.Message = f.Message
		},
	)
	s.publish(ctx, outcome)
	return result, nil
}

// Publishing is best effort; a broken event sink never fails an invitation.
func (s *invitationServiceImpl) publish(ctx context.Context, outcome events.Outcome) {
	if err := s.publisher.Publish(context.WithoutCancel(ctx), outcome); err != nil {
		level.Warn(s.logger).Log("msg", "publish invite outcome", "kind", outcome.Kind, "err", err)
	}
}
