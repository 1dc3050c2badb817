package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys.
const (
	KeyTrigger           = "modal.trigger"
	KeyTitle             = "modal.title"
	KeyDescription       = "modal.description"
	KeyClose             = "modal.close"
	KeyNameLabel         = "form.name.label"
	KeyNamePlaceholder   = "form.name.placeholder"
	KeyEmailLabel        = "form.email.label"
	KeyEmailPlaceholder  = "form.email.placeholder"
	KeySubmit            = "form.submit"
	KeySending           = "form.sending"
	KeyToastSentFallback = "toast.sent_fallback"
	KeyToastGenericError = "toast.generic_error"
	KeyToastInFlight     = "toast.in_flight"
	KeyToastBusy         = "toast.busy"
)

var catalog = map[language.Tag]map[string]string{
	language.English: {
		KeyTrigger:           "Invite Doctors",
		KeyTitle:             "Invite a Doctor",
		KeyDescription:       "Expand our medical network. Enter the email address of the doctor you'd like to invite to MediaConnect.",
		KeyClose:             "Close",
		KeyNameLabel:         "Name",
		KeyNamePlaceholder:   "Enter full name",
		KeyEmailLabel:        "Email",
		KeyEmailPlaceholder:  "Doctor@gmail.com",
		KeySubmit:            "Send Invitation",
		KeySending:           "Sending...",
		KeyToastSentFallback: "Invitation sent.",
		KeyToastGenericError: "Something went wrong. Please try again.",
		KeyToastInFlight:     "An invitation is already being sent.",
		KeyToastBusy:         "Invitations are busy right now. Please try again in a few minutes.",

		"validation.name.required":  "Name is required.",
		"validation.name.too_short": "Name must be at least 2 characters.",
		"validation.name.too_long":  "Name must be at most 100 characters.",
		"validation.name.invalid":   "Name is invalid.",
		"validation.email.required": "Email is required.",
		"validation.email.email":    "Enter a valid email address.",
		"validation.email.too_long": "Email must be at most 254 characters.",
		"validation.email.invalid":  "Email is invalid.",
		"validation.form.invalid":   "The form could not be read.",
	},
	language.BrazilianPortuguese: {
		KeyTrigger:           "Convidar médicos",
		KeyTitle:             "Convidar um médico",
		KeyDescription:       "Amplie nossa rede médica. Informe o e-mail do médico que você gostaria de convidar para o MediaConnect.",
		KeyClose:             "Fechar",
		KeyNameLabel:         "Nome",
		KeyNamePlaceholder:   "Informe o nome completo",
		KeyEmailLabel:        "E-mail",
		KeyEmailPlaceholder:  "medico@gmail.com",
		KeySubmit:            "Enviar convite",
		KeySending:           "Enviando...",
		KeyToastSentFallback: "Convite enviado.",
		KeyToastGenericError: "Algo deu errado. Tente novamente.",
		KeyToastInFlight:     "Um convite já está sendo enviado.",
		KeyToastBusy:         "Os convites estão ocupados agora. Tente novamente em alguns minutos.",

		"validation.name.required":  "O nome é obrigatório.",
		"validation.name.too_short": "O nome deve ter pelo menos 2 caracteres.",
		"validation.name.too_long":  "O nome deve ter no máximo 100 caracteres.",
		"validation.name.invalid":   "Nome inválido.",
		"validation.email.required": "O e-mail é obrigatório.",
		"validation.email.email":    "Informe um e-mail válido.",
		"validation.email.too_long": "O e-mail deve ter no máximo 254 caracteres.",
		"validation.email.invalid":  "E-mail inválido.",
		"validation.form.invalid":   "Não foi possível ler o formulário.",
	},
}

func init() {
	for tag, messages := range catalog {
		for key, msg := range messages {
			if err := message.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
}
