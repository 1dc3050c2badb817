// Package i18n holds the modal copy and resolves the language of a request.
package i18n

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mediaconnect/doctor-invites/pkg/models"
)

// LangParam is the query parameter used to select a language.
const LangParam = "lang"

var (
	supported = []language.Tag{language.English, language.BrazilianPortuguese}
	matcher   = language.NewMatcher(supported)
)

// Default returns the fallback language.
func Default() language.Tag {
	return supported[0]
}

// ResolveTag picks the language for r: the lang query parameter first, then
// Accept-Language, then the default.
func ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return Default()
	}
	if lang := strings.TrimSpace(r.URL.Query().Get(LangParam)); lang != "" {
		if tag, err := language.Parse(lang); err == nil {
			return match(tag)
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			return match(tags...)
		}
	}
	return Default()
}

func match(tags ...language.Tag) language.Tag {
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default()
	}
	return supported[idx]
}

type ctxKey struct{}

// WithTag stores the request language on ctx.
func WithTag(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, ctxKey{}, tag)
}

// TagFrom returns the language stored on ctx, or the default.
func TagFrom(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(ctxKey{}).(language.Tag); ok {
		return tag
	}
	return Default()
}

// Printer returns a message printer for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// T translates key for the language stored on ctx.
func T(ctx context.Context, key string) string {
	return Printer(TagFrom(ctx)).Sprintf(key)
}

// FallbackTitle titles a toast whose server message is missing.
func FallbackTitle(ctx context.Context, variant models.ToastVariant) string {
	if variant == models.ToastSuccess {
		return T(ctx, KeyToastSentFallback)
	}
	return T(ctx, KeyToastGenericError)
}
