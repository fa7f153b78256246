// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package gocrypt

import "encoding/binary"

// XTEA variant fixed sizes, in bytes.
const (
	XTEABlockSize = 8
	XTEAKeySize   = 16
)

const (
	xteaDelta             uint32 = 0x9E3779B9
	xteaFeistelRounds            = 64
	xteaKeyRollPolynomial uint32 = 0x100D4E63
)

// XTEACipher is a BlockCipher implementing a stateful variant of XTEA:
// the classic 64-round Feistel round function, but with a four-word
// round-key schedule that rolls (an LFSR-style left shift with
// conditional polynomial XOR) after every block, keyed additionally off
// that block's plaintext word. Two streams built from the same initial
// key diverge in their round keys block by block, so this is not
// interoperable with standard XTEA and is not intended to be.
type XTEACipher struct {
	initialKeys [4]uint32
	activeKeys  [4]uint32
}

// NewXTEACipher builds an XTEACipher with a zero key. Call SetKey before
// using it.
func NewXTEACipher() *XTEACipher {
	return &XTEACipher{}
}

// BlockSize returns 8, the cipher's fixed block length.
func (c *XTEACipher) BlockSize() int { return XTEABlockSize }

// SetKey installs a 16-byte key, parsed as four little-endian 32-bit
// words.
func (c *XTEACipher) SetKey(key []byte) error {
	if len(key) != XTEAKeySize {
		return &ConfigurationError{Detail: "XTEA key must be 16 bytes"}
	}
	for i := 0; i < 4; i++ {
		c.initialKeys[i] = binary.LittleEndian.Uint32(key[i*4:])
	}
	return nil
}

// SetIV is a no-op: this cipher has no IV. It returns nil so that
// Encryptor/Decryptor's generic SetIV passthrough works uniformly across
// ciphers regardless of whether the concrete cipher uses one.
func (c *XTEACipher) SetIV(iv []byte) error { return nil }

// ResetEngine restores the active round-key schedule to the initial key,
// ready to process the first block of a new stream.
func (c *XTEACipher) ResetEngine() error {
	c.activeKeys = c.initialKeys
	return nil
}

// EncryptBlock encrypts one 8-byte block and rolls the round-key
// schedule, keying the roll of activeKeys[0] off the block's plaintext
// v0 word.
func (c *XTEACipher) EncryptBlock(in, out []byte) {
	v0 := binary.LittleEndian.Uint32(in[0:4])
	v1 := binary.LittleEndian.Uint32(in[4:8])
	inputV0 := v0

	var sum uint32
	for j := 0; j < xteaFeistelRounds; j++ {
		v0 += (((v1 << 4) ^ (v1 >> 5)) + v1) ^ (sum + c.activeKeys[sum&3])
		sum += xteaDelta
		v1 += (((v0 << 4) ^ (v0 >> 5)) + v0) ^ (sum + c.activeKeys[(sum>>11)&3])
	}

	binary.LittleEndian.PutUint32(out[0:4], v0)
	binary.LittleEndian.PutUint32(out[4:8], v1)

	c.activeKeys[0] = rollKey(c.activeKeys[0]) ^ inputV0
	c.activeKeys[1] = rollKey(c.activeKeys[1])
	c.activeKeys[2] = rollKey(c.activeKeys[2])
	c.activeKeys[3] = rollKey(c.activeKeys[3])
}

// DecryptBlock decrypts one 8-byte block and rolls the round-key
// schedule the same way EncryptBlock does: against the block's
// plaintext v0 word. On the decrypt side that word only becomes known
// once the inverse Feistel loop finishes, so the roll happens after
// decryption rather than before — but it is keyed off the same value
// (the plaintext word) that the encryptor used for this block, which is
// what keeps the two directions' active-key sequences in lockstep.
func (c *XTEACipher) DecryptBlock(in, out []byte) {
	v0 := binary.LittleEndian.Uint32(in[0:4])
	v1 := binary.LittleEndian.Uint32(in[4:8])

	sum := xteaDelta * xteaFeistelRounds
	for j := 0; j < xteaFeistelRounds; j++ {
		v1 -= (((v0 << 4) ^ (v0 >> 5)) + v0) ^ (sum + c.activeKeys[(sum>>11)&3])
		sum -= xteaDelta
		v0 -= (((v1 << 4) ^ (v1 >> 5)) + v1) ^ (sum + c.activeKeys[sum&3])
	}

	binary.LittleEndian.PutUint32(out[0:4], v0)
	binary.LittleEndian.PutUint32(out[4:8], v1)

	c.activeKeys[0] = rollKey(c.activeKeys[0]) ^ v0
	c.activeKeys[1] = rollKey(c.activeKeys[1])
	c.activeKeys[2] = rollKey(c.activeKeys[2])
	c.activeKeys[3] = rollKey(c.activeKeys[3])
}

// Zero wipes the initial and active key schedules.
func (c *XTEACipher) Zero() {
	zeroize(c.initialKeys[:])
	zeroize(c.activeKeys[:])
}

// rollKey advances a single round-key word by one step of a
// self-synchronizing LFSR: a plain left shift, or — when the
// about-to-be-discarded top bit is set — a left shift of the word XORed
// with the roll polynomial, with the new bottom bit forced to 1.
func rollKey(currentKey uint32) uint32 {
	if currentKey&0x80000000 != 0 {
		return ((currentKey ^ xteaKeyRollPolynomial) << 1) | 1
	}
	return currentKey << 1
}
