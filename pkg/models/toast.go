package models

// ToastVariant selects how a toast is presented
type ToastVariant string

const (
	ToastDefault     ToastVariant = "default"
	ToastSuccess     ToastVariant = "success"
	ToastDestructive ToastVariant = "destructive"
)

// Toast is a single notification shown to the user
type Toast struct {
	Variant ToastVariant `json:"variant"`
	Title   string       `json:"title"`
}

// Valid reports whether the toast has a known variant.
func (t Toast) Valid() bool {
	switch t.Variant {
	case ToastDefault, ToastSuccess, ToastDestructive:
		return true
	default:
		return false
	}
}

// ToastFor maps an invitation result to the toast the user should see.
func ToastFor(result InviteResult) Toast {
	var toast Toast
	result.Match(
		func(s InviteSuccess) {
			toast = Toast{Variant: ToastSuccess, Title: s.Message}
		},
		func(f InviteFailure) {
			toast = Toast{Variant: ToastDestructive, Title: f.Message}
		},
	)
	return toast
}
