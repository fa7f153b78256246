// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package gocrypt

// BlockCipher is the capability set Encryptor and Decryptor need from a
// block cipher engine. Rather than a common base class with virtual
// encrypt/decrypt methods, gocrypt monomorphises: Encryptor[C] and
// Decryptor[C] are instantiated with a concrete cipher type (*AESCipher,
// *XTEACipher) that satisfies this interface, so there is no dynamic
// dispatch on the per-block hot path.
type BlockCipher interface {
	// BlockSize returns the cipher's fixed block length in bytes.
	BlockSize() int

	// SetKey installs the cipher's key material. Ciphers that don't use
	// an IV ignore calls to SetIV.
	SetKey(key []byte) error

	// SetIV installs the cipher's initialization vector, if it has one.
	SetIV(iv []byte) error

	// ResetEngine restores the cipher to its initial keyed state, ready
	// to process the first block of a new stream.
	ResetEngine() error

	// EncryptBlock encrypts exactly one BlockSize()-length block from in
	// into out. Implementations may keep chaining state (CBC IV, rolling
	// round keys) that advances with each call.
	EncryptBlock(in, out []byte)

	// DecryptBlock decrypts exactly one BlockSize()-length block from in
	// into out.
	DecryptBlock(in, out []byte)

	// Zero wipes the cipher's key material and any other sensitive
	// state.
	Zero()
}
