// Package apperr defines the error taxonomy shared by every service.  A
// handler only needs the Kind of an error to pick the HTTP status; the
// Message is what ends up in the response body.
package apperr

import "errors"

// Kind classifies an application error.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNotFound: the entity addressed by id does not exist.
	KindNotFound
	// KindInvalidInput: the request is well-formed but rejected (bad id
	// format, downstream 4xx, business rule).
	KindInvalidInput
	// KindInvalidTransactionStatus: a transaction request carries no status.
	KindInvalidTransactionStatus
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidInput:
		return "invalid_input"
	case KindInvalidTransactionStatus:
		return "invalid_transaction_status"
	}
	return "unknown"
}

// Error is a classified error carrying the message shown to clients.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// NotFound builds a KindNotFound error.
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

// InvalidInput builds a KindInvalidInput error.
func InvalidInput(msg string) *Error { return &Error{Kind: KindInvalidInput, Message: msg} }

// InvalidTransactionStatus builds a KindInvalidTransactionStatus error.
func InvalidTransactionStatus(msg string) *Error {
	return &Error{Kind: KindInvalidTransactionStatus, Message: msg}
}

// KindOf returns the Kind of the first *Error in err's chain, or
// KindUnknown when there is none.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is classified as KindNotFound.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsInvalidInput reports whether err is classified as KindInvalidInput.
func IsInvalidInput(err error) bool { return KindOf(err) == KindInvalidInput }
