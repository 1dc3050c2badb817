package api

import (
	"context"
	"embed"
	"html/template"
	"net/url"

	"github.com/mediaconnect/doctor-invites/pkg/i18n"
	"github.com/mediaconnect/doctor-invites/pkg/modal"
	"github.com/mediaconnect/doctor-invites/pkg/models"
	"github.com/mediaconnect/doctor-invites/pkg/validation"
)

// modalTemplate is the name of the page template.
const modalTemplate = "invite_modal"

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates parses the embedded page templates for gin's HTML renderer.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.tmpl")
}

// ModalOptions configure how the modal page is rendered.
type ModalOptions struct {
	// HideTrigger suppresses the built-in "Invite Doctors" button.
	HideTrigger bool
	// Trigger replaces the built-in button when HideTrigger is set. It is
	// wrapped so activating it opens the dialog. Leave it empty when the
	// activation element lives elsewhere on the page and posts to the open
	// route itself.
	Trigger template.HTML
}

type modalView struct {
	ctx context.Context

	Lang        string
	HideTrigger bool
	Trigger     template.HTML
	Open        bool
	Loading     bool
	Values      models.InviteRequest
	Errors      map[string]string
	Toast       *models.Toast

	OpenURL   string
	CloseURL  string
	SubmitURL string
}

// T translates key into the request language.
func (v modalView) T(key string) string {
	return i18n.T(v.ctx, key)
}

func newModalView(ctx context.Context, basePath string, query url.Values, opts ModalOptions, state modal.State, toast *models.Toast) modalView {
	suffix := ""
	if encoded := query.Encode(); encoded != "" {
		suffix = "?" + encoded
	}
	return modalView{
		ctx:         ctx,
		Lang:        i18n.TagFrom(ctx).String(),
		HideTrigger: opts.HideTrigger,
		Trigger:     opts.Trigger,
		Open:        state.Open,
		Loading:     state.Loading,
		Values:      state.Values,
		Errors:      translateErrors(ctx, state.Errors),
		Toast:       toast,
		OpenURL:     basePath + "/open" + suffix,
		CloseURL:    basePath + "/close" + suffix,
		SubmitURL:   basePath + suffix,
	}
}

func translateErrors(ctx context.Context, errs validation.FieldErrors) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string]string, len(errs))
	for field, key := range errs {
		out[field] = i18n.T(ctx, key)
	}
	return out
}
