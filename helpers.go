// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package gocrypt

import (
	"crypto/rand"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Scrub overwrites buf in place with zeros. Use it to wipe key material,
// IVs, and other sensitive buffers once they are no longer needed.
func Scrub(buf []byte) {
	zeroize(buf)
}

// zeroize clears every element of buf. It backs Scrub and the Zero methods
// on the stateful cipher and HMAC types, which hold their sensitive state
// in typed arrays (for example XTEA's [4]uint32 key schedule) rather than
// raw byte slices.
func zeroize[T constraints.Integer | byte](buf []T) {
	for i := range buf {
		buf[i] = 0
	}
}

// StripTrailingZeros returns the prefix of buf with any trailing zero
// bytes removed. An all-zero input, or an empty input, yields an empty
// slice. The returned slice aliases buf.
func StripTrailingZeros(buf []byte) []byte {
	end := len(buf)
	for end > 0 && buf[end-1] == 0 {
		end--
	}
	return buf[:end]
}

// PopCount64 returns the number of set bits in value.
func PopCount64(value uint64) int {
	return bits.OnesCount64(value)
}

// MSBLocation32 returns the zero-based bit position of the most
// significant set bit in value, or -1 if value is zero.
func MSBLocation32(value uint32) int {
	if value == 0 {
		return -1
	}
	return bits.Len32(value) - 1
}

// MSBLocation64 returns the zero-based bit position of the most
// significant set bit in value, or -1 if value is zero.
func MSBLocation64(value uint64) int {
	if value == 0 {
		return -1
	}
	return bits.Len64(value) - 1
}

// GenerateRandomBytes returns n cryptographically random bytes drawn from
// the platform CSPRNG.
func GenerateRandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
