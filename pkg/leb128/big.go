package leb128

import (
	"fmt"
	"math/big"
)

var bigPayloadMask = big.NewInt(payloadMask)

// EncodedLenBig returns the number of bytes EncodeBig(x) produces for a
// non-negative x.
func EncodedLenBig(x *big.Int) int {
	n := x.BitLen()
	if n == 0 {
		return 1
	}
	return (n + 6) / 7
}

// EncodeBig returns the encoding of an integer of arbitrary magnitude.
// A nil or negative x is rejected with ErrInvalidInput.
func EncodeBig(x *big.Int) ([]byte, error) {
	switch {
	case x == nil:
		return nil, fmt.Errorf("%w: nil integer", ErrInvalidInput)
	case x.Sign() < 0:
		return nil, fmt.Errorf("%w: %s is negative", ErrInvalidInput, x)
	case x.IsUint64():
		return Encode(x.Uint64()), nil
	}

	n := EncodedLenBig(x)
	out := make([]byte, n)
	v := new(big.Int).Set(x)
	group := new(big.Int)
	for i := range out {
		out[i] = byte(group.And(v, bigPayloadMask).Uint64())
		if i < n-1 {
			out[i] |= continuationBit
		}
		v.Rsh(v, 7)
	}
	return out, nil
}

// DecodeBig is like Decode but returns an integer of arbitrary magnitude.
func DecodeBig(buf []byte) (*big.Int, error) {
	x, rest, err := ParseBig(buf)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, trailingError(len(buf)-len(rest), len(rest))
	}
	return x, nil
}

// ParseBig is like Parse but returns an integer of arbitrary magnitude.
func ParseBig(buf []byte) (*big.Int, []byte, error) {
	n, err := Scan(buf)
	if err != nil {
		return nil, nil, err
	}
	if n < maxLen64 {
		x, rest, err := Parse(buf)
		if err != nil {
			return nil, nil, err
		}
		return new(big.Int).SetUint64(x), rest, nil
	}

	// Most significant group is last, accumulate from the end.
	result := new(big.Int)
	group := new(big.Int)
	for i := n - 1; i >= 0; i-- {
		result.Lsh(result, 7)
		result.Or(result, group.SetUint64(uint64(buf[i]&payloadMask)))
	}
	return result, buf[n:], nil
}
