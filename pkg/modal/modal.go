// Package modal holds the state machine behind the doctor invitation dialog:
// visibility, form values, inline field errors and the in-flight flag of the
// single send operation an instance may run at a time.
package modal

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/mediaconnect/doctor-invites/pkg/models"
	"github.com/mediaconnect/doctor-invites/pkg/utils"
	"github.com/mediaconnect/doctor-invites/pkg/validation"
)

var (
	// ErrInFlight is returned when a submission arrives while another one is
	// still waiting for the invitation endpoint.
	ErrInFlight = errors.New("invitation already in flight")
	// ErrNotFound is returned by the store for unknown or expired sessions.
	ErrNotFound = errors.New("modal session not found")

	// ErrTooManySessions is returned by the store when it is at capacity.
	ErrTooManySessions = errors.New("too many modal sessions")
)

// Outcome is what a Submit call ended with.
type Outcome string

const (
	OutcomeInvalid Outcome = "invalid"
	OutcomeSent    Outcome = "sent"
	OutcomeFailed  Outcome = "failed"
	// OutcomeError means the send operation itself failed.
	OutcomeError Outcome = "error"
)

// TransportErrorPolicy decides what the dialog does when the send operation
// returns an error instead of a result.
type TransportErrorPolicy int

const (
	// NotifyOnTransportError shows a destructive toast, resets and closes,
	// exactly like a failure payload.
	NotifyOnTransportError TransportErrorPolicy = iota
	// IgnoreTransportError only logs; the dialog stays open with its values.
	IgnoreTransportError
)

// Sender is the send-invitation operation.
type Sender interface {
	SendInvite(ctx context.Context, req models.InviteRequest) (models.InviteResult, error)
}

// Notifier shows a toast to the user that submitted the form.
type Notifier interface {
	Notify(toast models.Toast)
}

// Validator checks form values.
type Validator interface {
	Validate(req models.InviteRequest) validation.FieldErrors
}

// State is a snapshot of one modal.
type State struct {
	Open    bool
	Loading bool
	Values  models.InviteRequest
	Errors  validation.FieldErrors
}

// Deps are shared by every modal created from the same Store.
type Deps struct {
	Sender    Sender
	Validator Validator
	Logger    log.Logger
	Policy    TransportErrorPolicy
	// FallbackTitle titles toasts that have no server message, transport
	// errors included. It receives the submit context so request-scoped copy
	// can be used.
	FallbackTitle func(ctx context.Context, variant models.ToastVariant) string
}

// Modal is one invitation dialog instance.
type Modal struct {
	id   string
	deps *Deps

	mu    sync.Mutex
	state State
}

func newModal(id string, deps *Deps) *Modal {
	return &Modal{id: id, deps: deps}
}

// ID returns the session id the modal is bound to.
func (m *Modal) ID() string { return m.id }

// State returns a copy of the current state.
func (m *Modal) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.state
	s.Errors = copyErrors(m.state.Errors)
	return s
}

// Toggle flips the dialog open or closed and returns the new visibility.
func (m *Modal) Toggle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Open = !m.state.Open
	return m.state.Open
}

// SetOpen sets the dialog visibility.
func (m *Modal) SetOpen(open bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Open = open
}

// Submit validates values and, when they are valid, sends the invitation and
// routes the result to n. A pending send is not canceled when the dialog is
// closed; it keeps running until the sender returns.
func (m *Modal) Submit(ctx context.Context, n Notifier, values models.InviteRequest) (Outcome, error) {
	values = values.Normalize()

	m.mu.Lock()
	if m.state.Loading {
		m.mu.Unlock()
		return "", ErrInFlight
	}
	if errs := m.deps.Validator.Validate(values); len(errs) > 0 {
		m.state.Open = true
		m.state.Values = values
		m.state.Errors = errs
		m.mu.Unlock()
		return OutcomeInvalid, nil
	}
	m.state.Open = true
	m.state.Loading = true
	m.state.Values = values
	m.state.Errors = nil
	m.mu.Unlock()

	result, err := m.deps.Sender.SendInvite(ctx, values)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Loading = false

	if err != nil {
		level.Error(m.deps.Logger).Log(
			"msg", "send invitation",
			"session", m.id,
			"email", utils.EmailFingerprint(values.Email),
			"err", err,
		)
		if m.deps.Policy == IgnoreTransportError {
			return OutcomeError, err
		}
		n.Notify(models.Toast{
			Variant: models.ToastDestructive,
			Title:   m.fallbackTitle(ctx, models.ToastDestructive),
		})
		m.resetLocked()
		return OutcomeError, err
	}

	outcome := OutcomeFailed
	if result.IsSuccess() {
		outcome = OutcomeSent
	}
	toast := models.ToastFor(result)
	if strings.TrimSpace(toast.Title) == "" {
		toast.Title = m.fallbackTitle(ctx, toast.Variant)
	}
	n.Notify(toast)
	m.resetLocked()
	return outcome, nil
}

// resetLocked clears the form and closes the dialog. m.mu must be held.
func (m *Modal) resetLocked() {
	m.state.Values = models.InviteRequest{}
	m.state.Errors = nil
	m.state.Open = false
}

func (m *Modal) fallbackTitle(ctx context.Context, variant models.ToastVariant) string {
	if m.deps.FallbackTitle != nil {
		return m.deps.FallbackTitle(ctx, variant)
	}
	if variant == models.ToastSuccess {
		return "Invitation sent."
	}
	return "Something went wrong. Please try again."
}

func copyErrors(in validation.FieldErrors) validation.FieldErrors {
	if len(in) == 0 {
		return nil
	}
	out := make(validation.FieldErrors, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
