package models

// InviteSuccess is the payload of an accepted invitation.
type InviteSuccess struct {
	Message string `json:"message"`
}

// InviteFailure is the payload of a rejected invitation. Status is the HTTP
// status returned by the invitation endpoint.
type InviteFailure struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// InviteResult holds exactly one of InviteSuccess or InviteFailure.
type InviteResult struct {
	success *InviteSuccess
	failure *InviteFailure
}

// Succeeded builds a successful result.
func Succeeded(message string) InviteResult {
	return InviteResult{success: &InviteSuccess{Message: message}}
}

// Failed builds a failed result.
func Failed(status int, message string) InviteResult {
	return InviteResult{failure: &InviteFailure{Status: status, Message: message}}
}

// IsSuccess reports whether the result carries a success payload.
func (r InviteResult) IsSuccess() bool {
	return r.success != nil
}

// Message returns the message of whichever variant is set.
func (r InviteResult) Message() string {
	var message string
	r.Match(
		func(s InviteSuccess) { message = s.Message },
		func(f InviteFailure) { message = f.Message },
	)
	return message
}

// Match calls exactly one of the callbacks. A zero InviteResult is treated as
// a failure with no status and no message.
func (r InviteResult) Match(onSuccess func(InviteSuccess), onFailure func(InviteFailure)) {
	switch {
	case r.success != nil:
		onSuccess(*r.success)
	case r.failure != nil:
		onFailure(*r.failure)
	default:
		onFailure(InviteFailure{})
	}
}
