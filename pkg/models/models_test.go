package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInviteRequestNormalize(t *testing.T) {
	req := InviteRequest{Name: "  Dr. Ana Souza ", Email: " Ana.Souza@Clinic.COM "}.Normalize()

	assert.Equal(t, "Dr. Ana Souza", req.Name)
	assert.Equal(t, "ana.souza@clinic.com", req.Email)
}

func TestInviteResultMatchIsExclusive(t *testing.T) {
	var successes, failures int
	count := func(r InviteResult) {
		r.Match(
			func(InviteSuccess) { successes++ },
			func(InviteFailure) { failures++ },
		)
	}

	count(Succeeded("sent"))
	count(Failed(409, "already invited"))
	count(InviteResult{})

	assert.Equal(t, 1, successes)
	assert.Equal(t, 2, failures)
}

func TestInviteResultMessage(t *testing.T) {
	assert.Equal(t, "sent", Succeeded("sent").Message())
	assert.Equal(t, "already invited", Failed(409, "already invited").Message())
	assert.True(t, Succeeded("sent").IsSuccess())
	assert.False(t, Failed(500, "boom").IsSuccess())
}

func TestToastFor(t *testing.T) {
	assert.Equal(t, Toast{Variant: ToastSuccess, Title: "Invitation sent"}, ToastFor(Succeeded("Invitation sent")))
	assert.Equal(t, Toast{Variant: ToastDestructive, Title: "Doctor already exists"}, ToastFor(Failed(400, "Doctor already exists")))
}

func TestToastValid(t *testing.T) {
	assert.True(t, Toast{Variant: ToastDestructive}.Valid())
	assert.False(t, Toast{Variant: "warning"}.Valid())
}
