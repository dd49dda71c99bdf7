package leb128

import (
	"fmt"
	"io"
	"math/bits"
)

const (
	continuationBit = 0x80
	payloadMask     = 0x7f

	// maxLen64 is the length of the longest encoding of a uint64.
	maxLen64 = 10
)

// EncodedLen returns the number of bytes Encode(x) produces.
func EncodedLen(x uint64) int {
	if x == 0 {
		return 1
	}
	return (bits.Len64(x) + 6) / 7
}

// Encode returns the minimal unsigned Little Endian Base 128 encoding
// of x. Encode(0) is a single zero byte.
func Encode(x uint64) []byte {
	if x < continuationBit {
		return []byte{byte(x)}
	}
	return AppendUnsigned(make([]byte, 0, EncodedLen(x)), x)
}

// AppendUnsigned appends the encoding of x to dst and returns the
// extended slice.
func AppendUnsigned(dst []byte, x uint64) []byte {
	for x >= continuationBit {
		dst = append(dst, byte(x&payloadMask)|continuationBit)
		x >>= 7
	}
	return append(dst, byte(x))
}

// EncodeUnsigned encodes x to the unsigned Little Endian Base 128 format
// into out.
func EncodeUnsigned(out io.ByteWriter, x uint64) error {
	for {
		b := byte(x & payloadMask)
		x = x >> 7
		if x != 0 {
			b = b | continuationBit
		}
		if err := out.WriteByte(b); err != nil {
			return err
		}
		if x == 0 {
			return nil
		}
	}
}

// EncodeInt encodes a signed integer that is known to be non-negative.
// Negative values are rejected with ErrInvalidInput, this package does not
// implement the signed format.
func EncodeInt(x int64) ([]byte, error) {
	if x < 0 {
		return nil, fmt.Errorf("%w: %d is negative", ErrInvalidInput, x)
	}
	return Encode(uint64(x)), nil
}
