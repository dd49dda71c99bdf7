package leb128

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a negative (or nil) integer is
	// passed to one of the encoders.
	ErrInvalidInput = errors.New("leb128: invalid input")

	// ErrTruncatedInput is returned when the input ends before a byte
	// with the high order bit clear is found. This includes empty input.
	ErrTruncatedInput = errors.New("leb128: truncated input")

	// ErrTrailingData is returned by Decode and DecodeBig when bytes
	// follow the terminator of the first value. Use Parse to read a
	// value that is followed by other data.
	ErrTrailingData = errors.New("leb128: trailing data")

	// ErrOverflow is returned when a value does not fit in 64 bits.
	// DecodeBig and ParseBig never return it.
	ErrOverflow = errors.New("leb128: value overflows uint64")
)

func truncatedError(buf []byte) error {
	if len(buf) == 0 {
		return fmt.Errorf("%w: empty input", ErrTruncatedInput)
	}
	return fmt.Errorf("%w: no terminating byte in %d bytes", ErrTruncatedInput, len(buf))
}

func trailingError(consumed, extra int) error {
	return fmt.Errorf("%w: %d bytes after value ending at offset %d", ErrTrailingData, extra, consumed)
}
