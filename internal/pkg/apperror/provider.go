package apperror

import "fmt"

var ErrMalformedProviderResponse = &ProviderError{Malformed: true}

// ProviderError is a failure of the external generation provider. It is
// retryable by the caller; nothing in the core retries it.
type ProviderError struct {
	Op        string
	Malformed bool
	Raw       string
	Err       error
}

func (e *ProviderError) Error() string {
	if e.Malformed {
		return fmt.Sprintf("%s: malformed provider response: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: provider unavailable: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Is(target error) bool {
	switch t := target.(type) {
	case *ProviderError:
		return !t.Malformed || e.Malformed
	case *Error:
		return t.Kind == KindProvider && t.Message == "" && t.Err == nil
	}
	return false
}

func ProviderUnavailable(op string, err error) *ProviderError {
	return &ProviderError{Op: op, Err: err}
}

func MalformedResponse(op, raw string, err error) *ProviderError {
	return &ProviderError{Op: op, Malformed: true, Raw: raw, Err: err}
}
