package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	subject string
	data    []byte
	err     error
	drained bool
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	f.subject = subject
	f.data = data
	return f.err
}

func (f *fakeConn) Drain() error {
	f.drained = true
	return nil
}

func TestNATSPublisherPublish(t *testing.T) {
	fc := &fakeConn{}
	p := &NATSPublisher{nc: fc, subject: "invites.doctors.outcome"}

	err := p.Publish(context.Background(), Outcome{Kind: KindSent, EmailFingerprint: "abc", Message: "sent"})
	require.NoError(t, err)

	assert.Equal(t, "invites.doctors.outcome", fc.subject)
	var got Outcome
	require.NoError(t, json.Unmarshal(fc.data, &got))
	assert.Equal(t, KindSent, got.Kind)
	assert.Equal(t, "abc", got.EmailFingerprint)
	assert.False(t, got.At.IsZero())

	require.NoError(t, p.Close())
	assert.True(t, fc.drained)
}

func TestNATSPublisherWrapsError(t *testing.T) {
	p := &NATSPublisher{nc: &fakeConn{err: errors.New("closed")}, subject: "s"}

	err := p.Publish(context.Background(), Outcome{Kind: KindError})
	assert.ErrorContains(t, err, "publish s")
}

func TestNATSPublisherHonoursCanceledContext(t *testing.T) {
	fc := &fakeConn{}
	p := &NATSPublisher{nc: fc, subject: "s"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, p.Publish(ctx, Outcome{}), context.Canceled)
	assert.Nil(t, fc.data)
}
