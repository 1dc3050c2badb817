package notify

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/mediaconnect/doctor-invites/pkg/models"
)

// FlashCookieName holds the one-shot toast between a redirect and the next
// page render.
const FlashCookieName = "mc_toast"

const maxTitleRunes = 512

// maxValueBytes keeps the whole Set-Cookie header well under the 4096 bytes
// browsers accept.
const maxValueBytes = 3072

// Flash writes toasts as a one-shot cookie. Only the last toast written before
// the response is sent survives.
type Flash struct {
	w      http.ResponseWriter
	secure bool
}

// NewFlash creates a Flash notifier for one response.
func NewFlash(w http.ResponseWriter, secure bool) *Flash {
	return &Flash{w: w, secure: secure}
}

func (f *Flash) Notify(toast models.Toast) {
	if f == nil || f.w == nil {
		return
	}
	toast, ok := normalize(toast)
	if !ok {
		return
	}
	value, ok := encode(toast)
	if !ok {
		return
	}
	http.SetCookie(f.w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// encode serializes toast for the cookie, shortening the title until the
// encoded value fits in maxValueBytes.
func encode(toast models.Toast) (string, bool) {
	runes := []rune(toast.Title)
	for len(runes) > 0 {
		toast.Title = string(runes)
		payload, err := json.Marshal(toast)
		if err != nil {
			return "", false
		}
		value := base64.RawURLEncoding.EncodeToString(payload)
		if len(value) <= maxValueBytes {
			return value, true
		}
		keep := len(runes) * maxValueBytes / len(value)
		if keep >= len(runes) {
			keep = len(runes) - 1
		}
		runes = runes[:keep]
	}
	return "", false
}

// ReadFlash reads the pending toast and expires the cookie.
func ReadFlash(w http.ResponseWriter, r *http.Request, secure bool) (models.Toast, bool) {
	cookie, err := r.Cookie(FlashCookieName)
	if err != nil {
		return models.Toast{}, false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(cookie.Value))
	if err != nil {
		return models.Toast{}, false
	}
	var toast models.Toast
	if err := json.Unmarshal(decoded, &toast); err != nil {
		return models.Toast{}, false
	}
	return normalize(toast)
}

func normalize(toast models.Toast) (models.Toast, bool) {
	toast.Title = strings.TrimSpace(toast.Title)
	if toast.Title == "" || !toast.Valid() {
		return models.Toast{}, false
	}
	if utf8.RuneCountInString(toast.Title) > maxTitleRunes {
		toast.Title = string([]rune(toast.Title)[:maxTitleRunes])
	}
	return toast, true
}
