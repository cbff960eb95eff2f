package common

import (
	"errors"
	"fmt"
)

// Stage-local failure kinds. Every layer surfaces its own sentinel unchanged;
// the HTTP boundary translates them, nothing in between re-wraps across kinds.
var (
	// ErrDecode: a non-spreadsheet upload was not valid UTF-8.
	ErrDecode = errors.New("decode failure")
	// ErrParse: a spreadsheet upload could not be opened or rendered.
	ErrParse = errors.New("spreadsheet parse failure")
	// ErrExtractionService: transport/auth/quota failure talking to the
	// extraction service. Never retried here.
	ErrExtractionService = errors.New("extraction service failure")
	// ErrSchemaValidation: JSON text (from the extraction service or from a
	// submitted report) violates the metrics contract.
	ErrSchemaValidation = errors.New("schema validation failure")
	// ErrCorruptStore: the durable report file is unreadable or malformed.
	ErrCorruptStore = errors.New("corrupt report store")
)

// WrapError attaches context while preserving the sentinel chain.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
