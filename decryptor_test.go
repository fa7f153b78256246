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

func TestDecryptorOpenRejectsWritable(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	dec := NewDecryptor[*AESCipher](NewAESCipher())
	require.ErrorIs(dec.Open(Writable), ErrWrongOpenMode)
}

func TestDecryptorChunkSizesMatchCipherBlockSize(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	dec := NewDecryptor[*XTEACipher](NewXTEACipher())
	require.Equal(XTEABlockSize, dec.InputChunkSize())
	require.Equal(XTEABlockSize, dec.OutputChunkSize())
}

func TestDecryptorProcessDataManualPush(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	key := bytes.Repeat([]byte{0x05}, AESKeySize)
	encCipher := NewAESCipher()
	require.NoError(encCipher.SetKey(key))
	enc := NewEncryptor[*AESCipher](encCipher)
	plaintext := bytes.Repeat([]byte{0x10}, AESBlockSize*2)
	ciphertext, err := enc.Encrypt(plaintext)
	require.NoError(err)

	dec := NewDecryptor[*AESCipher](NewAESCipher(), WithDecryptorKey[*AESCipher](key))
	require.NoError(dec.Open(Readable))
	dec.ProcessData(ciphertext)

	out := make([]byte, len(ciphertext))
	n, err := dec.Read(out)
	require.NoError(err)
	require.Equal(plaintext, out[:n])
}

func TestDecryptorReadLatchesSourceError(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	key := bytes.Repeat([]byte{0x06}, AESKeySize)
	dec := NewDecryptor[*AESCipher](NewAESCipher(), WithDecryptorKey[*AESCipher](key))
	require.NoError(dec.Open(Readable))

	src := &shortReadSource{}
	dec.SetSource(src)

	out := make([]byte, 16)
	_, err := dec.Read(out)
	require.ErrorIs(err, ErrSourceLatched)
	var srcErr *SourceError
	require.ErrorAs(err, &srcErr)
	require.Contains(srcErr.Detail, "wanted 16 bytes, got 0")

	_, err = dec.Read(out)
	require.ErrorIs(err, ErrSourceLatched)
	require.ErrorAs(err, &srcErr)
	require.Contains(srcErr.Detail, "wanted 16 bytes, got 0")
}

func TestDecryptorBytesAvailableCountsPendingSourceData(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	key := bytes.Repeat([]byte{0x07}, AESKeySize)
	encCipher := NewAESCipher()
	require.NoError(encCipher.SetKey(key))
	enc := NewEncryptor[*AESCipher](encCipher)
	ciphertext, err := enc.Encrypt(bytes.Repeat([]byte{0x20}, AESBlockSize*3))
	require.NoError(err)

	source := NewBufferSource()
	dec := NewDecryptor[*AESCipher](NewAESCipher(), WithDecryptorKey[*AESCipher](key))
	require.NoError(dec.Open(Readable))
	dec.SetSource(source)
	source.Feed(ciphertext)

	require.EqualValues(len(ciphertext), dec.BytesAvailable())
}

func TestDecryptorCanReadLine(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	key := bytes.Repeat([]byte{0x08}, AESKeySize)
	encCipher := NewAESCipher()
	require.NoError(encCipher.SetKey(key))
	enc := NewEncryptor[*AESCipher](encCipher)
	plaintext := []byte("line one\nline two")
	ciphertext, err := enc.Encrypt(plaintext)
	require.NoError(err)

	dec := NewDecryptor[*AESCipher](NewAESCipher(), WithDecryptorKey[*AESCipher](key))
	require.NoError(dec.Open(Readable))
	require.False(dec.CanReadLine())
	dec.ProcessData(ciphertext)
	require.NoError(dec.decryptReady())
	require.True(dec.CanReadLine())
}

// shortReadSource always reports data available but returns fewer bytes
// than requested, simulating a misbehaving upstream connection.
type shortReadSource struct{}

func (s *shortReadSource) BytesAvailable() uint64 { return 16 }
func (s *shortReadSource) Read(buf []byte, n uint64) (uint64, error) {
	return 0, nil
}
func (s *shortReadSource) Notify(cb func()) {
	cb()
}
