package payment_types

import "fmt"

type ErrorKind string

const (
	AuthErrorKind            ErrorKind = "auth"
	ValidationErrorKind      ErrorKind = "validation"
	UnavailableErrorKind     ErrorKind = "unavailable"
	InitiationFailedKind     ErrorKind = "initiation_failed"
	IPNRegistrationErrorKind ErrorKind = "ipn_registration_failed"
)

// ProviderError wraps a failure reported by, or while talking to, a payment
// provider. Message carries the provider's own text when there is one.
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Provider, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Provider, e.Kind, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is matches on Kind so callers can test against the sentinels below.
func (e *ProviderError) Is(target error) bool {
	t, ok := target.(*ProviderError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Provider == "" || t.Provider == e.Provider)
}

// Retryable reports whether the same call may succeed later.
func (e *ProviderError) Retryable() bool {
	return e.Kind == UnavailableErrorKind || e.Kind == AuthErrorKind
}

var (
	ErrProviderAuth          = &ProviderError{Kind: AuthErrorKind}
	ErrProviderValidation    = &ProviderError{Kind: ValidationErrorKind}
	ErrProviderUnavailable   = &ProviderError{Kind: UnavailableErrorKind}
	ErrPaymentInitiation     = &ProviderError{Kind: InitiationFailedKind}
	ErrIPNRegistrationFailed = &ProviderError{Kind: IPNRegistrationErrorKind}
)

func AuthError(provider string, message string, err error) error {
	return &ProviderError{Provider: provider, Kind: AuthErrorKind, Message: message, Err: err}
}

func ValidationError(provider string, message string) error {
	return &ProviderError{Provider: provider, Kind: ValidationErrorKind, Message: message}
}

func UnavailableError(provider string, message string, err error) error {
	return &ProviderError{Provider: provider, Kind: UnavailableErrorKind, Message: message, Err: err}
}

func InitiationFailed(provider string, message string) error {
	return &ProviderError{Provider: provider, Kind: InitiationFailedKind, Message: message}
}

func IPNRegistrationFailed(provider string, message string, err error) error {
	return &ProviderError{Provider: provider, Kind: IPNRegistrationErrorKind, Message: message, Err: err}
}

// IsRetryable reports whether err, or anything it wraps, is a retryable
// provider error.
func IsRetryable(err error) bool {
	type retryable interface{ Retryable() bool }
	for err != nil {
		if r, ok := err.(retryable); ok {
			return r.Retryable()
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
