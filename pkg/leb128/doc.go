// Package leb128 provides encoders and decoders for the unsigned Little
// Endian Base 128 format.
//
// The Little Endian Base 128 format is defined in the DWARF v4 standard,
// section 7.6, page 161 and following. It is the same layout used by
// WebAssembly and by protocol buffer varints: each byte carries seven bits
// of the value, least significant group first, and the high order bit of
// a byte is set when more bytes follow.
//
// Values up to 64 bits are handled by Encode, Decode and Parse. Values of
// arbitrary magnitude are handled by EncodeBig, DecodeBig and ParseBig.
// All functions are pure and safe for concurrent use.
package leb128
