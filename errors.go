package huffpack

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSymbol is returned when an input Symbol has no code.  It
	// means the code table was not derived from the same input.
	ErrUnknownSymbol = errors.New("huffpack: symbol has no code")

	// ErrTruncatedStream is returned when the packed bits end in the
	// middle of a code, or are shorter than the bit count claims.
	ErrTruncatedStream = errors.New("huffpack: truncated bitstream")

	// ErrCorruptTree is returned when decoding steps to a child that does
	// not exist.
	ErrCorruptTree = errors.New("huffpack: corrupt tree")

	// ErrMalformedTree is returned when a tree descriptor cannot be parsed.
	ErrMalformedTree = errors.New("huffpack: malformed tree descriptor")

	// ErrNotPrefixFree is returned when a code table is not prefix-free or
	// its bit lengths cannot form a prefix code.
	ErrNotPrefixFree = errors.New("huffpack: code table is not prefix-free")

	// ErrMalformedPayload is returned when a serialized Payload cannot be
	// parsed.
	ErrMalformedPayload = errors.New("huffpack: malformed payload")

	// ErrLengthMismatch is returned when decoding yields a different number
	// of bytes than the Payload records.
	ErrLengthMismatch = errors.New("huffpack: decoded length mismatch")

	// ErrChecksumMismatch is returned when the decoded bytes do not match
	// the Payload's checksum.
	ErrChecksumMismatch = errors.New("huffpack: checksum mismatch")
)

// UnknownSymbolError reports which Symbol, at which input offset, had no code.
type UnknownSymbolError struct {
	Symbol Symbol
	Offset int
}

// Error returns the error message.
func (err *UnknownSymbolError) Error() string {
	return fmt.Sprintf("%v: %s at offset %d", ErrUnknownSymbol, err.Symbol, err.Offset)
}

// Is allows errors.Is(err, ErrUnknownSymbol) to match.
func (err *UnknownSymbolError) Is(target error) bool {
	return target == ErrUnknownSymbol
}

var _ error = (*UnknownSymbolError)(nil)
