// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package trng

import (
	"encoding/binary"
	"io"
)

// TRNG draws fixed-width words and byte slices from a cryptographic
// entropy source.
type TRNG struct {
	reader io.Reader
}

// New builds a TRNG from the supplied options, starting from
// DefaultConfig.
func New(opts ...Option) *TRNG {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &TRNG{reader: cfg.Reader}
}

// Default is the package-level TRNG backed by the platform CSPRNG, used
// by the package-level Random32/Random64/Bytes functions.
var Default = New()

// Random32 returns a 32-bit word read little-endian from the entropy
// source.
func (t *TRNG) Random32() (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(t.reader, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// Random64 returns a 64-bit word read little-endian from the entropy
// source.
func (t *TRNG) Random64() (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(t.reader, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// Bytes returns n cryptographically random bytes.
func (t *TRNG) Bytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	if _, err := io.ReadFull(t.reader, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Random32 draws a word from the package-level default TRNG.
func Random32() (uint32, error) { return Default.Random32() }

// Random64 draws a word from the package-level default TRNG.
func Random64() (uint64, error) { return Default.Random64() }

// Bytes draws n random bytes from the package-level default TRNG.
func Bytes(n int) ([]byte, error) { return Default.Bytes(n) }
