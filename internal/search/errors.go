// Package search queries news search providers for articles about a subject.
package search

import (
	"errors"
	"fmt"
)

// InputError is a caller mistake detected before any network call.
// Its message is meant to be shown to the user as is.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// ProviderError is a failure reported by, or while talking to, a search provider.
type ProviderError struct {
	Provider string
	Message  string
	Cause    error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// IsInputError reports whether err is an InputError.
func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}

// IsProviderError reports whether err is a ProviderError.
func IsProviderError(err error) bool {
	var providerErr *ProviderError
	return errors.As(err, &providerErr)
}

// missingKeyError is returned by constructors when a credential is absent.
func missingKeyError(provider, envName string) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Message:  fmt.Sprintf("Missing %s environment variable.", envName),
	}
}
