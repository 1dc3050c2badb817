package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/mediaconnect/doctor-invites/pkg/i18n"
	"github.com/mediaconnect/doctor-invites/pkg/modal"
	"github.com/mediaconnect/doctor-invites/pkg/models"
	"github.com/mediaconnect/doctor-invites/pkg/notify"
)

const (
	// BasePath is where the invite modal routes are mounted.
	BasePath = "/invites/doctors"
	// SessionCookieName binds a browser to its modal instance.
	SessionCookieName = "mc_invite_session"
	// HideTriggerParam hides the built-in trigger when set to a true value.
	HideTriggerParam = "hide_trigger"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	store         *modal.Store
	logger        log.Logger
	secureCookies bool
	opts          ModalOptions
}

// NewHandlers creates a new Handlers instance. opts apply to every render;
// the hide_trigger query parameter can still hide the built-in trigger.
func NewHandlers(store *modal.Store, logger log.Logger, secureCookies bool, opts ModalOptions) *Handlers {
	return &Handlers{
		store:         store,
		logger:        logger,
		secureCookies: secureCookies,
		opts:          opts,
	}
}

// Register mounts the modal routes on r.
func (h *Handlers) Register(r gin.IRouter) {
	g := r.Group(BasePath)
	g.GET("", h.ShowModal)
	g.POST("", h.SubmitInvite)
	g.POST("/open", h.OpenModal)
	g.POST("/close", h.CloseModal)
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ShowModal renders the trigger and, when open, the dialog. A pending toast
// is shown once and cleared. Visitors without a session see the closed
// modal; no session is started until they open it.
func (h *Handlers) ShowModal(c *gin.Context) {
	var state modal.State
	if m, ok := h.existingSession(c); ok {
		state = m.State()
	}

	var toast *models.Toast
	if t, ok := notify.ReadFlash(c.Writer, c.Request, h.secureCookies); ok {
		toast = &t
	}
	h.render(c, http.StatusOK, state, toast)
}

// OpenModal activates the trigger.
func (h *Handlers) OpenModal(c *gin.Context) {
	m, err := h.session(c)
	if err != nil {
		h.sessionUnavailable(c, err)
		return
	}
	m.SetOpen(true)
	h.afterStateChange(c, m.State())
}

// CloseModal dismisses the dialog. A pending send keeps running.
func (h *Handlers) CloseModal(c *gin.Context) {
	var state modal.State
	if m, ok := h.existingSession(c); ok {
		m.SetOpen(false)
		state = m.State()
	}
	h.afterStateChange(c, state)
}

// SubmitInvite validates and sends the invitation form.
func (h *Handlers) SubmitInvite(c *gin.Context) {
	if c.ContentType() == binding.MIMEJSON {
		h.submitJSON(c)
		return
	}
	h.submitForm(c)
}

func (h *Handlers) submitForm(c *gin.Context) {
	m, err := h.session(c)
	if err != nil {
		h.sessionUnavailable(c, err)
		return
	}

	var req models.InviteRequest
	if err := c.ShouldBindWith(&req, binding.FormPost); err != nil {
		level.Warn(h.logger).Log("msg", "bind invite form", "err", err)
		c.String(http.StatusBadRequest, "Error reading request")
		return
	}

	outcome, err := m.Submit(h.sendContext(c), notify.NewFlash(c.Writer, h.secureCookies), req)
	switch {
	case errors.Is(err, modal.ErrInFlight):
		toast := models.Toast{Variant: models.ToastDefault, Title: i18n.T(c.Request.Context(), i18n.KeyToastInFlight)}
		h.render(c, http.StatusConflict, m.State(), &toast)
	case outcome == modal.OutcomeInvalid:
		h.render(c, http.StatusUnprocessableEntity, m.State(), nil)
	case outcome == modal.OutcomeError && m.State().Open:
		// The transport error policy kept the dialog open.
		h.render(c, http.StatusBadGateway, m.State(), nil)
	default:
		c.Redirect(http.StatusSeeOther, h.pageURL(c))
	}
}

type submitResponse struct {
	Open    bool              `json:"open"`
	Loading bool              `json:"loading"`
	Outcome modal.Outcome     `json:"outcome,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Toast   *models.Toast     `json:"toast,omitempty"`
}

// submitJSON needs the session started by OpenModal; without it every request
// would get its own modal and bypass the one-send-in-flight rule.
func (h *Handlers) submitJSON(c *gin.Context) {
	m, ok := h.existingSession(c)
	if !ok {
		c.JSON(http.StatusPreconditionRequired, gin.H{"error": "Open the invitation dialog first"})
		return
	}

	var req models.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		level.Warn(h.logger).Log("msg", "bind invite json", "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}

	var rec notify.Recorder
	outcome, err := m.Submit(h.sendContext(c), &rec, req)

	state := m.State()
	resp := submitResponse{
		Open:    state.Open,
		Loading: state.Loading,
		Outcome: outcome,
		Errors:  translateErrors(c.Request.Context(), state.Errors),
	}
	if toast, ok := rec.Last(); ok {
		resp.Toast = &toast
	}

	status := http.StatusOK
	switch {
	case errors.Is(err, modal.ErrInFlight):
		status = http.StatusConflict
		resp.Toast = &models.Toast{Variant: models.ToastDefault, Title: i18n.T(c.Request.Context(), i18n.KeyToastInFlight)}
	case outcome == modal.OutcomeInvalid:
		status = http.StatusUnprocessableEntity
	case outcome == modal.OutcomeError:
		status = http.StatusBadGateway
	}
	c.JSON(status, resp)
}

// sendContext keeps request values, the language included, but drops
// cancellation so a send outlives a closed dialog or a dropped connection.
func (h *Handlers) sendContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

func (h *Handlers) afterStateChange(c *gin.Context, state modal.State) {
	if wantsJSON(c) {
		c.JSON(http.StatusOK, submitResponse{Open: state.Open, Loading: state.Loading})
		return
	}
	c.Redirect(http.StatusSeeOther, h.pageURL(c))
}

func wantsJSON(c *gin.Context) bool {
	return c.ContentType() == binding.MIMEJSON || c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

// existingSession returns the modal bound to the session cookie, if any.
func (h *Handlers) existingSession(c *gin.Context) (*modal.Modal, bool) {
	id, err := c.Cookie(SessionCookieName)
	if err != nil {
		return nil, false
	}
	m, err := h.store.Get(id)
	if err != nil {
		return nil, false
	}
	return m, true
}

// session returns the modal bound to the request, starting a new session
// when the cookie is missing or stale.
func (h *Handlers) session(c *gin.Context) (*modal.Modal, error) {
	id, _ := c.Cookie(SessionCookieName)
	m, created, err := h.store.GetOrCreate(id)
	if err != nil {
		return nil, err
	}
	if created {
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     SessionCookieName,
			Value:    m.ID(),
			Path:     "/",
			HttpOnly: true,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return m, nil
}

func (h *Handlers) sessionUnavailable(c *gin.Context, err error) {
	level.Warn(h.logger).Log("msg", "start modal session", "err", err, "sessions", h.store.Len())

	toast := models.Toast{Variant: models.ToastDestructive, Title: i18n.T(c.Request.Context(), i18n.KeyToastBusy)}
	if wantsJSON(c) {
		c.JSON(http.StatusServiceUnavailable, submitResponse{Toast: &toast})
		return
	}
	h.render(c, http.StatusServiceUnavailable, modal.State{}, &toast)
}

func (h *Handlers) render(c *gin.Context, status int, state modal.State, toast *models.Toast) {
	opts := h.opts
	if hide, err := strconv.ParseBool(c.Query(HideTriggerParam)); err == nil && hide {
		opts.HideTrigger = true
	}
	view := newModalView(c.Request.Context(), BasePath, preservedQuery(c), opts, state, toast)
	c.HTML(status, modalTemplate, view)
}

func (h *Handlers) pageURL(c *gin.Context) string {
	if encoded := preservedQuery(c).Encode(); encoded != "" {
		return BasePath + "?" + encoded
	}
	return BasePath
}

// preservedQuery keeps the parameters that shape the page across redirects.
func preservedQuery(c *gin.Context) url.Values {
	out := url.Values{}
	for _, key := range []string{HideTriggerParam, i18n.LangParam} {
		if v := c.Query(key); v != "" {
			out.Set(key, v)
		}
	}
	return out
}
