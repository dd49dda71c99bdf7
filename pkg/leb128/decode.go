package leb128

import (
	"errors"
	"fmt"
	"io"
)

// Reader is a io.ByteReader with a Len method. This interface is
// satisfied by both bytes.Buffer and bytes.Reader.
type Reader interface {
	io.ByteReader
	io.Reader
	Len() int
}

// Decode decodes buf, which must hold exactly one encoded value.
//
// It returns ErrTruncatedInput if buf is empty or has no terminating
// byte, ErrTrailingData if bytes follow the terminator and ErrOverflow if
// the value does not fit in 64 bits.
func Decode(buf []byte) (uint64, error) {
	if len(buf) == 1 && buf[0] < continuationBit {
		return uint64(buf[0]), nil
	}
	x, rest, err := Parse(buf)
	if err != nil {
		return 0, err
	}
	if len(rest) != 0 {
		return 0, trailingError(len(buf)-len(rest), len(rest))
	}
	return x, nil
}

// Parse decodes the first value in buf and returns it together with the
// bytes that follow it. The remainder shares buf's backing array.
//
// Calling Parse again on the remainder reads the next value of a stream
// of concatenated encodings.
func Parse(buf []byte) (uint64, []byte, error) {
	if len(buf) > 0 && buf[0] < continuationBit {
		return uint64(buf[0]), buf[1:], nil
	}

	var (
		result uint64
		shift  uint
	)
	for i, b := range buf {
		// The tenth byte may only contribute the 64th bit.
		if i == maxLen64-1 && b > 1 {
			return 0, nil, fmt.Errorf("%w: at offset %d", ErrOverflow, i)
		}
		result |= uint64(b&payloadMask) << shift
		if b&continuationBit == 0 {
			return result, buf[i+1:], nil
		}
		shift += 7
	}
	return 0, nil, truncatedError(buf)
}

// ParseAll decodes every value of a concatenation of encodings. The whole
// of buf must be consumed, an unterminated tail is ErrTruncatedInput.
func ParseAll(buf []byte) ([]uint64, error) {
	var out []uint64
	for off := 0; len(buf) > 0; {
		x, rest, err := Parse(buf)
		if err != nil {
			return out, fmt.Errorf("value %d at offset %d: %w", len(out), off, err)
		}
		out = append(out, x)
		off += len(buf) - len(rest)
		buf = rest
	}
	return out, nil
}

// Scan returns the length of the first encoded value in buf without
// decoding it.
func Scan(buf []byte) (int, error) {
	for i, b := range buf {
		if b&continuationBit == 0 {
			return i + 1, nil
		}
	}
	return 0, truncatedError(buf)
}

// DecodeUnsigned decodes an unsigned Little Endian Base 128
// represented number from buf and returns it with the number of bytes
// that were consumed.
func DecodeUnsigned(buf Reader) (uint64, uint32, error) {
	var (
		result uint64
		shift  uint64
		length uint32
	)

	if buf.Len() == 0 {
		return 0, 0, fmt.Errorf("%w: empty input", ErrTruncatedInput)
	}

	for {
		b, err := buf.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, length, fmt.Errorf("%w: no terminating byte in %d bytes", ErrTruncatedInput, length)
			}
			return 0, length, err
		}
		length++

		if length == maxLen64 && b > 1 {
			return 0, length, fmt.Errorf("%w: at offset %d", ErrOverflow, length-1)
		}
		result |= uint64(b&payloadMask) << shift

		// High order bit clear marks the last byte.
		if b&continuationBit == 0 {
			break
		}

		shift += 7
	}

	return result, length, nil
}
