// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package gocrypt

import (
	"crypto/aes"
	"crypto/cipher"
)

// AES-256-CBC fixed sizes, in bytes.
const (
	AESBlockSize = 16
	AESKeySize   = 32
	AESIVSize    = 16
)

// AESCipher is a BlockCipher implementation backed by the standard
// library's AES and CBC cipher.BlockMode. Chaining state (the rolling
// CBC IV) lives inside the cipher.BlockMode values produced by
// ResetEngine and advances automatically with each EncryptBlock/
// DecryptBlock call, the same way the embedded AES context in the
// original carries its CBC state across calls to encryptChunk.
type AESCipher struct {
	key [AESKeySize]byte
	iv  [AESIVSize]byte

	block   cipher.Block
	encMode cipher.BlockMode
	decMode cipher.BlockMode
}

// NewAESCipher builds an AESCipher with a zero key and the package's
// default (non-cryptographic) IV. Call SetKey and, optionally, SetIV
// before using it.
func NewAESCipher() *AESCipher {
	c := &AESCipher{}
	c.iv = DefaultAESIV()
	return c
}

// BlockSize returns 16, the AES block length.
func (c *AESCipher) BlockSize() int { return AESBlockSize }

// SetKey installs a 32-byte AES-256 key.
func (c *AESCipher) SetKey(key []byte) error {
	if len(key) != AESKeySize {
		return &ConfigurationError{Detail: "AES key must be 32 bytes"}
	}
	copy(c.key[:], key)
	return nil
}

// SetIV installs a 16-byte initialization vector.
func (c *AESCipher) SetIV(iv []byte) error {
	if len(iv) != AESIVSize {
		return &ConfigurationError{Detail: "AES IV must be 16 bytes"}
	}
	copy(c.iv[:], iv)
	return nil
}

// ResetEngine rebuilds the AES key schedule and resets the CBC chaining
// state to the configured IV, ready to process the first block of a new
// stream.
func (c *AESCipher) ResetEngine() error {
	block, err := aes.NewCipher(c.key[:])
	if err != nil {
		return err
	}
	c.block = block
	c.encMode = cipher.NewCBCEncrypter(block, c.iv[:])
	c.decMode = cipher.NewCBCDecrypter(block, c.iv[:])
	return nil
}

// EncryptBlock CBC-encrypts one 16-byte block. The CBC chaining IV
// advances inside encMode with each call.
func (c *AESCipher) EncryptBlock(in, out []byte) {
	c.encMode.CryptBlocks(out, in)
}

// DecryptBlock CBC-decrypts one 16-byte block. The CBC chaining IV
// advances inside decMode with each call.
func (c *AESCipher) DecryptBlock(in, out []byte) {
	c.decMode.CryptBlocks(out, in)
}

// Zero wipes the key and IV. The underlying cipher.Block's internal key
// schedule is opaque to this package and is left to the garbage
// collector.
func (c *AESCipher) Zero() {
	Scrub(c.key[:])
	Scrub(c.iv[:])
	c.block = nil
	c.encMode = nil
	c.decMode = nil
}

// DefaultAESIV computes the package's default, explicitly
// non-cryptographic initialization vector: a tiny additive shift
// register seeded with {251, 241, 239, 233}. It exists purely to give a
// caller who hasn't set an explicit IV something other than all-zeros;
// it provides no security margin and should never be relied on when IVs
// must be unpredictable.
func DefaultAESIV() [AESIVSize]byte {
	var iv [AESIVSize]byte
	seeds := [4]byte{251, 241, 239, 233}
	for i := 0; i < AESIVSize; i++ {
		newSeed := seeds[0] + seeds[1] + seeds[2] + seeds[3] + 1
		seeds[3] = seeds[2]
		seeds[2] = seeds[1]
		seeds[1] = seeds[0]
		seeds[0] = newSeed
		iv[i] = newSeed
	}
	return iv
}
