// Package errors provides centralized error definitions for the application.
// Errors are organized by domain to avoid duplication and provide consistent naming.
//
// Naming conventions:
//   - Exported errors (Err*): Use for errors that callers need to check with errors.Is
//   - All sentinel errors should be defined as variables, not inline errors.New calls
//   - Use fmt.Errorf with %w to wrap sentinel errors with context
package errors

import "errors"

// Lookup errors.
var (
	// ErrContentNotFound indicates no catalog record exists for a code.
	ErrContentNotFound = errors.New("content not found")

	// ErrStatsNotFound indicates no counter row exists for a code.
	ErrStatsNotFound = errors.New("stats not found")
)

// Validation errors.
var (
	// ErrInvalidID indicates an invalid identifier.
	ErrInvalidID = errors.New("invalid id")

	// ErrInvalidBroadcastInput indicates the broadcast source/message pair could not be parsed.
	ErrInvalidBroadcastInput = errors.New("invalid broadcast input")

	// ErrPartIndexOutOfRange indicates a 1-based part index outside the parts sequence.
	ErrPartIndexOutOfRange = errors.New("part index out of range")
)

// Persistence errors.
var (
	// ErrPersistenceUnavailable indicates the database could not be reached after retries.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
)

// Transport errors.
var (
	// ErrRecipientUnreachable indicates the recipient blocked the bot, left, or does not exist.
	// Batch senders count it and move on.
	ErrRecipientUnreachable = errors.New("recipient unreachable")

	// ErrMalformedRequest indicates the transport rejected the request itself.
	ErrMalformedRequest = errors.New("malformed request")

	// ErrMessageNotModified indicates an edit that would leave the message unchanged.
	ErrMessageNotModified = errors.New("message not modified")
)

// Is is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
