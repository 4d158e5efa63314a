package view

type FlashKind string

const (
	FlashInfo    FlashKind = "info"
	FlashSuccess FlashKind = "success"
	FlashWarning FlashKind = "warning"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot message carried across a redirect.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

func SuccessFlash(msg string) Flash { return Flash{Kind: FlashSuccess, Message: msg} }

func ErrorFlash(msg string) Flash { return Flash{Kind: FlashError, Message: msg} }
