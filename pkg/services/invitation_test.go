package services

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mediaconnect/doctor-invites/pkg/events"
	"github.com/mediaconnect/doctor-invites/pkg/models"
	"github.com/mediaconnect/doctor-invites/pkg/utils"
)

type fakeClient struct {
	calls  []models.InviteRequest
	result models.InviteResult
	err    error
}

func (f *fakeClient) SendInvite(_ context.Context, req models.InviteRequest) (models.InviteResult, error) {
	f.calls = append(f.calls, req)
	return f.result, f.err
}

type fakePublisher struct {
	outcomes []events.Outcome
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, o events.Outcome) error {
	f.outcomes = append(f.outcomes, o)
	return f.err
}

func (f *fakePublisher) Close() error { return nil }

type fakeCounter struct {
	mu     *sync.Mutex
	counts map[string]float64
	label  string
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{mu: &sync.Mutex{}, counts: map[string]float64{}}
}

func (c *fakeCounter) With(lvs ...string) metrics.Counter {
	return &fakeCounter{mu: c.mu, counts: c.counts, label: lvs[len(lvs)-1]}
}

func (c *fakeCounter) Add(delta float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[c.label] += delta
}

type fakeHistogram struct {
	observed *int
}

func (h fakeHistogram) With(...string) metrics.Histogram { return h }
func (h fakeHistogram) Observe(float64)                  { *h.observed++ }

type InvitationServiceSuite struct {
	suite.Suite

	client    *fakeClient
	publisher *fakePublisher
	logs      *bytes.Buffer
	svc       InvitationService
}

func (suite *InvitationServiceSuite) SetupTest() {
	suite.client = &fakeClient{result: models.Succeeded("Invitation sent")}
	suite.publisher = &fakePublisher{}
	suite.logs = &bytes.Buffer{}
	logger := log.NewLogfmtLogger(suite.logs)
	suite.svc = NewInvitationService(suite.client, suite.publisher, logger, LoggingMiddleware(logger))
}

func (suite *InvitationServiceSuite) TestNormalizesBeforeSending() {
	_, err := suite.svc.SendInvite(context.Background(), models.InviteRequest{Name: " Ana ", Email: " ANA@Clinic.com"})
	suite.Require().NoError(err)

	suite.Require().Len(suite.client.calls, 1)
	suite.Equal(models.InviteRequest{Name: "Ana", Email: "ana@clinic.com"}, suite.client.calls[0])
}

func (suite *InvitationServiceSuite) TestPublishesSent() {
	result, err := suite.svc.SendInvite(context.Background(), models.InviteRequest{Name: "Ana", Email: "ana@clinic.com"})
	suite.Require().NoError(err)
	suite.True(result.IsSuccess())

	suite.Require().Len(suite.publisher.outcomes, 1)
	outcome := suite.publisher.outcomes[0]
	suite.Equal(events.KindSent, outcome.Kind)
	suite.Equal(utils.EmailFingerprint("ana@clinic.com"), outcome.EmailFingerprint)
	suite.Equal("Invitation sent", outcome.Message)
}

func (suite *InvitationServiceSuite) TestPublishesFailed() {
	suite.client.result = models.Failed(409, "Doctor already invited")

	result, err := suite.svc.SendInvite(context.Background(), models.InviteRequest{Name: "Ana", Email: "ana@clinic.com"})
	suite.Require().NoError(err)
	suite.False(result.IsSuccess())

	suite.Require().Len(suite.publisher.outcomes, 1)
	suite.Equal(events.KindFailed, suite.publisher.outcomes[0].Kind)
	suite.Equal(409, suite.publisher.outcomes[0].Status)
}

func (suite *InvitationServiceSuite) TestTransportErrorPassesThrough() {
	suite.client.err = errors.New("connection refused")

	_, err := suite.svc.SendInvite(context.Background(), models.InviteRequest{Name: "Ana", Email: "ana@clinic.com"})
	suite.EqualError(err, "connection refused")

	suite.Require().Len(suite.publisher.outcomes, 1)
	suite.Equal(events.KindError, suite.publisher.outcomes[0].Kind)
}

func (suite *InvitationServiceSuite) TestPublisherErrorDoesNotFailInvite() {
	suite.publisher.err = errors.New("nats down")

	result, err := suite.svc.SendInvite(context.Background(), models.InviteRequest{Name: "Ana", Email: "ana@clinic.com"})
	suite.NoError(err)
	suite.True(result.IsSuccess())
	suite.Contains(suite.logs.String(), "nats down")
}

func (suite *InvitationServiceSuite) TestLogsFingerprintNotEmail() {
	_, _ = suite.svc.SendInvite(context.Background(), models.InviteRequest{Name: "Ana", Email: "ana@clinic.com"})

	suite.Contains(suite.logs.String(), "method=SendInvite")
	suite.Contains(suite.logs.String(), "outcome=sent")
	suite.Contains(suite.logs.String(), utils.EmailFingerprint("ana@clinic.com"))
	suite.NotContains(suite.logs.String(), "ana@clinic.com")
}

func TestInvitationServiceSuite(t *testing.T) {
	suite.Run(t, new(InvitationServiceSuite))
}

func TestInstrumentingMiddlewareCountsOutcomes(t *testing.T) {
	client := &fakeClient{result: models.Succeeded("ok")}
	counter := newFakeCounter()
	var observed int
	svc := NewInvitationService(client, nil, log.NewNopLogger(),
		InstrumentingMiddleware(counter, fakeHistogram{observed: &observed}))

	_, err := svc.SendInvite(context.Background(), models.InviteRequest{Name: "Ana", Email: "ana@clinic.com"})
	require.NoError(t, err)

	client.result = models.Failed(400, "nope")
	_, err = svc.SendInvite(context.Background(), models.InviteRequest{Name: "Ana", Email: "ana@clinic.com"})
	require.NoError(t, err)

	client.err = errors.New("timeout")
	_, err = svc.SendInvite(context.Background(), models.InviteRequest{Name: "Ana", Email: "ana@clinic.com"})
	require.Error(t, err)

	assert.Equal(t, map[string]float64{"sent": 1, "failed": 1, "error": 1}, counter.counts)
	assert.Equal(t, 3, observed)
}
