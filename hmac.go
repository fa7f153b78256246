// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package gocrypt

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/md4"
	"golang.org/x/crypto/sha3"
)

// Algorithm identifies the hash family an Hmac runs RFC-2104 HMAC over.
type Algorithm int

const (
	MD4 Algorithm = iota
	MD5
	SHA1
	SHA224
	SHA256
	SHA384
	SHA512
	SHA3224
	SHA3256
	SHA3384
	SHA3512
)

func newHashFunc(algorithm Algorithm) (func() hash.Hash, error) {
	switch algorithm {
	case MD4:
		return md4.New, nil
	case MD5:
		return md5.New, nil
	case SHA1:
		return sha1.New, nil
	case SHA224:
		return sha256.New224, nil
	case SHA256:
		return sha256.New, nil
	case SHA384:
		return sha512.New384, nil
	case SHA512:
		return sha512.New, nil
	case SHA3224:
		return sha3.New224, nil
	case SHA3256:
		return sha3.New256, nil
	case SHA3384:
		return sha3.New384, nil
	case SHA3512:
		return sha3.New512, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, algorithm)
	}
}

// BlockSize returns algorithm's underlying hash block size in bytes, the
// length HMAC pads (or hashes down) the key to.
func (a Algorithm) BlockSize() (int, error) {
	switch a {
	case MD4, MD5, SHA1, SHA224, SHA256:
		return 64, nil
	case SHA384, SHA512:
		return 128, nil
	case SHA3224:
		return 144, nil
	case SHA3256:
		return 136, nil
	case SHA3384:
		return 104, nil
	case SHA3512:
		return 72, nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, a)
	}
}

// DigestSize returns algorithm's output length in bytes.
func (a Algorithm) DigestSize() (int, error) {
	switch a {
	case MD4, MD5:
		return 16, nil
	case SHA1:
		return 20, nil
	case SHA224, SHA3224:
		return 28, nil
	case SHA256, SHA3256:
		return 32, nil
	case SHA384, SHA3384:
		return 48, nil
	case SHA512, SHA3512:
		return 64, nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, a)
	}
}

// Hmac computes an RFC-2104 HMAC over a pluggable hash family. A single
// Hmac instance produces exactly one digest: call Digest once, then
// Reset (with or without a new key) before reusing the instance for the
// next message.
type Hmac struct {
	algorithm Algorithm
	blockSize int
	newHash   func() hash.Hash

	paddedKey []byte
	inner     hash.Hash
	outer     hash.Hash

	spent bool
}

// NewHmac builds an Hmac keyed with key, running HMAC over algorithm.
func NewHmac(key []byte, algorithm Algorithm) (*Hmac, error) {
	newHash, err := newHashFunc(algorithm)
	if err != nil {
		return nil, err
	}
	blockSize, err := algorithm.BlockSize()
	if err != nil {
		return nil, err
	}

	h := &Hmac{
		algorithm: algorithm,
		blockSize: blockSize,
		newHash:   newHash,
	}
	if err := h.Reset(key); err != nil {
		return nil, err
	}
	return h, nil
}

// NewHmacWithData builds an Hmac keyed with key and immediately adds
// data to it.
func NewHmacWithData(key, data []byte, algorithm Algorithm) (*Hmac, error) {
	h, err := NewHmac(key, algorithm)
	if err != nil {
		return nil, err
	}
	h.AddData(data)
	return h, nil
}

// generatePaddedKey derives the block-size-length key HMAC's inner/outer
// pads are built from. Per RFC 2104: keys shorter than the block size
// are zero-padded on the right; keys equal to the block size pass
// through unchanged; keys longer than the block size are first hashed
// down to the algorithm's digest size, then zero-padded on the right out
// to the block size.
//
// The original implementation's oversized-key branch stops after the
// hash step and never zero-pads the result back out to the block size,
// which its own header comments document as a known bug (an assertion
// trap was left in place of a fix). This implementation performs the
// zero-pad, producing a correct RFC-2104 key regardless of input length.
func (h *Hmac) generatePaddedKey(key []byte) []byte {
	padded := make([]byte, h.blockSize)
	switch {
	case len(key) <= h.blockSize:
		copy(padded, key)
	default:
		digester := h.newHash()
		digester.Write(key)
		copy(padded, digester.Sum(nil))
	}
	return padded
}

// Reset rewinds the Hmac, ready to accumulate a new message under
// either the same key (no argument) or a newly supplied one.
func (h *Hmac) Reset(key ...[]byte) error {
	if len(key) > 1 {
		return fmt.Errorf("gocrypt: Reset takes at most one key argument")
	}
	if len(key) == 1 {
		h.paddedKey = h.generatePaddedKey(key[0])
	}

	h.inner = h.newHash()
	h.outer = h.newHash()

	ipad := xorBytes(h.paddedKey, 0x36)
	opad := xorBytes(h.paddedKey, 0x5C)
	h.inner.Write(ipad)
	h.outer.Write(opad)

	h.spent = false
	return nil
}

// AddData feeds additional message bytes into the HMAC computation.
func (h *Hmac) AddData(data []byte) {
	h.inner.Write(data)
}

// Digest finalizes and returns the HMAC. It can only be called once per
// Reset; a second call returns ErrHmacSpent.
func (h *Hmac) Digest() ([]byte, error) {
	if h.spent {
		return nil, ErrHmacSpent
	}
	h.spent = true

	h.outer.Write(h.inner.Sum(nil))
	return h.outer.Sum(nil), nil
}

// Zero wipes the derived key. The underlying hash.Hash state is opaque
// to this package and is left to the garbage collector.
func (h *Hmac) Zero() {
	Scrub(h.paddedKey)
}

func xorBytes(data []byte, value byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ value
	}
	return out
}
