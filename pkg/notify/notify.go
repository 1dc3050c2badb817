// Package notify delivers toasts to the user that triggered them.
package notify

import (
	"sync"

	"github.com/mediaconnect/doctor-invites/pkg/models"
)

// Notifier shows a toast.
type Notifier interface {
	Notify(toast models.Toast)
}

// Recorder keeps toasts in memory. JSON responses use it to return the toast
// in the body; tests use it to assert on notifications.
type Recorder struct {
	mu     sync.Mutex
	toasts []models.Toast
}

func (r *Recorder) Notify(toast models.Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, toast)
}

// Toasts returns every recorded toast in order.
func (r *Recorder) Toasts() []models.Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Toast(nil), r.toasts...)
}

// Last returns the most recent toast.
func (r *Recorder) Last() (models.Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return models.Toast{}, false
	}
	return r.toasts[len(r.toasts)-1], true
}
