package models

import "strings"

// InviteRequest is the data collected by the invite modal form
type InviteRequest struct {
	Name  string `form:"name" json:"name" validate:"required,min=2,max=100"`
	Email string `form:"email" json:"email" validate:"required,email,max=254"`
}

// Normalize trims both fields and lower-cases the email address
func (r InviteRequest) Normalize() InviteRequest {
	return InviteRequest{
		Name:  strings.TrimSpace(r.Name),
		Email: strings.ToLower(strings.TrimSpace(r.Email)),
	}
}
