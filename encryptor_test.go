// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package gocrypt

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncryptorOpenRejectsReadable(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	enc := NewEncryptor[*AESCipher](NewAESCipher())
	require.ErrorIs(enc.Open(Readable), ErrWrongOpenMode)
}

func TestEncryptorWriteWithoutSink(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	key := bytes.Repeat([]byte{0x01}, AESKeySize)
	enc := NewEncryptor[*AESCipher](NewAESCipher(), WithEncryptorKey[*AESCipher](key))
	_, err := enc.Write([]byte("data"))
	require.ErrorIs(err, ErrNoSink)
}

func TestEncryptorChunkSizesMatchCipherBlockSize(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	enc := NewEncryptor[*AESCipher](NewAESCipher())
	require.Equal(AESBlockSize, enc.InputChunkSize())
	require.Equal(AESBlockSize, enc.OutputChunkSize())

	xtea := NewEncryptor[*XTEACipher](NewXTEACipher())
	require.Equal(XTEABlockSize, xtea.InputChunkSize())
	require.Equal(XTEABlockSize, xtea.OutputChunkSize())
}

func TestEncryptorBytesProcessedTracksWrites(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	key := bytes.Repeat([]byte{0x02}, AESKeySize)
	sink := NewBufferSink()
	enc := NewEncryptor[*AESCipher](
		NewAESCipher(),
		WithEncryptorKey[*AESCipher](key),
		WithSink[*AESCipher](sink),
	)
	require.NoError(enc.Open(Writable))

	plaintext := bytes.Repeat([]byte{0xAA}, AESBlockSize*2)
	_, err := enc.Write(plaintext)
	require.NoError(err)

	require.EqualValues(AESBlockSize*2, enc.BytesProcessedIn())
	require.EqualValues(AESBlockSize*2, enc.BytesProcessedOut())
}

func TestEncryptorFlushAndPadAddsResidueAfterFinalBlock(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	key := bytes.Repeat([]byte{0x03}, AESKeySize)
	sink := NewBufferSink()
	enc := NewEncryptor[*AESCipher](
		NewAESCipher(),
		WithEncryptorKey[*AESCipher](key),
		WithSink[*AESCipher](sink),
	)
	require.NoError(enc.Open(Writable))

	_, err := enc.Write([]byte("seventeen bytes!!"))
	require.NoError(err)
	require.NoError(enc.FlushAndPad())

	// The ciphertext must cover at least the padded plaintext blocks;
	// FlushAndPad may append 0..blockSize-1 extra bytes of random
	// residue beyond that.
	minLen := ((len("seventeen bytes!!") + AESBlockSize - 1) / AESBlockSize) * AESBlockSize
	require.GreaterOrEqual(len(sink.Bytes()), minLen)
	require.Less(len(sink.Bytes()), minLen+AESBlockSize)
}

func TestEncryptorCloseScrubsBuffers(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	key := bytes.Repeat([]byte{0x04}, AESKeySize)
	sink := NewBufferSink()
	enc := NewEncryptor[*AESCipher](
		NewAESCipher(),
		WithEncryptorKey[*AESCipher](key),
		WithSink[*AESCipher](sink),
	)
	require.NoError(enc.Open(Writable))
	_, err := enc.Write([]byte("short"))
	require.NoError(err)

	enc.Close()
	require.Equal(make([]byte, AESBlockSize), enc.inputBuf)
	require.NotPanics(func() { enc.Close() })
}
