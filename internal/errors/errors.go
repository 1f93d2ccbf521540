// Package errors provides sentinel errors and error types for the rules and
// notation engine. It defines the failure kinds callers can branch on and
// structured error types that preserve context while allowing inspection
// with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrCoordinateOutOfRange indicates a file/rank pair that is not on the board.
	ErrCoordinateOutOfRange = errors.New("coordinate out of range")

	// ErrSquareCodeNotFound indicates an algebraic square code that matches no square.
	ErrSquareCodeNotFound = errors.New("square code not found")

	// ErrMoveNotFound indicates notation or an engine code that does not
	// resolve against the current position.
	ErrMoveNotFound = errors.New("move not found")

	// ErrMalformedPosition indicates a FEN-ranks string that cannot be loaded.
	ErrMalformedPosition = errors.New("malformed position")

	// ErrIllegitimatePromotion indicates a promotion target outside
	// Knight, Bishop, Rook and Queen.
	ErrIllegitimatePromotion = errors.New("illegitimate promotion choice")

	// ErrPromotionPending indicates a move was attempted while a promotion
	// choice is still outstanding.
	ErrPromotionPending = errors.New("promotion choice pending")

	// ErrNoPromotionPending indicates a promotion choice was supplied when
	// none was requested.
	ErrNoPromotionPending = errors.New("no promotion pending")

	// ErrPlyOutOfRange indicates a rewind target outside the recorded history.
	ErrPlyOutOfRange = errors.New("ply out of range")

	// ErrEngineMove indicates the external engine's reply could not be
	// obtained or applied.
	ErrEngineMove = errors.New("engine move failed")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MoveError wraps errors with movetext context, including the ply the
// session was at, the move number from the text and the offending token.
// It implements the error interface and supports unwrapping via errors.Is()
// and errors.As().
type MoveError struct {
	Err        error  // The underlying error
	Ply        int    // Ply the session was at when the token was tried (0-based)
	MoveNumber int    // Move number from the movetext (0 if not applicable)
	MoveText   string // The token that failed (if applicable)
	Source     string // Source name, e.g. a file (if known)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Source != "" {
		parts = append(parts, e.Source)
	}

	if e.MoveNumber > 0 {
		parts = append(parts, fmt.Sprintf("move %d", e.MoveNumber))
	}

	parts = append(parts, fmt.Sprintf("ply %d", e.Ply))

	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("token %q", e.MoveText))
	}

	context := strings.Join(parts, ", ")

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// ParseError represents a position or notation parsing error with
// location context.
type ParseError struct {
	Err      error  // The underlying error
	Input    string // The text being parsed
	Column   int    // Column number (1-based)
	Expected string // What was expected (for syntax errors)
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Input != "" {
		loc := fmt.Sprintf("%q", e.Input)
		if e.Column > 0 {
			loc += fmt.Sprintf(" at column %d", e.Column)
		}
		parts = append(parts, loc)
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
