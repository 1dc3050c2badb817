package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mediaconnect/doctor-invites/pkg/models"
)

func TestValidate(t *testing.T) {
	v := New()

	tests := []struct {
		name string
		req  models.InviteRequest
		want FieldErrors
	}{
		{
			name: "valid",
			req:  models.InviteRequest{Name: "Ana Souza", Email: "ana@clinic.com"},
			want: FieldErrors{},
		},
		{
			name: "both missing",
			req:  models.InviteRequest{},
			want: FieldErrors{
				"name":  "validation.name.required",
				"email": "validation.email.required",
			},
		},
		{
			name: "bad email",
			req:  models.InviteRequest{Name: "Ana Souza", Email: "ana-at-clinic"},
			want: FieldErrors{"email": "validation.email.email"},
		},
		{
			name: "short name",
			req:  models.InviteRequest{Name: "A", Email: "ana@clinic.com"},
			want: FieldErrors{"name": "validation.name.too_short"},
		},
		{
			name: "long name",
			req:  models.InviteRequest{Name: strings.Repeat("a", 101), Email: "ana@clinic.com"},
			want: FieldErrors{"name": "validation.name.too_long"},
		},
		{
			name: "two rune name counts runes",
			req:  models.InviteRequest{Name: "Zé", Email: "ze@clinic.com"},
			want: FieldErrors{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Validate(tt.req))
		})
	}
}

func TestFieldErrorsHas(t *testing.T) {
	errs := FieldErrors{"email": "validation.email.email"}

	assert.True(t, errs.Has("email"))
	assert.False(t, errs.Has("name"))
}
