// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package gocrypt

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHmacSHA256SmallKey exercises S3: a key shorter than SHA-256's
// 64-byte block size.
func TestHmacSHA256SmallKey(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	h, err := NewHmacWithData([]byte{0x6B, 0x65, 0x79}, []byte{0x64, 0x61, 0x74, 0x61}, SHA256)
	require.NoError(err)
	digest, err := h.Digest()
	require.NoError(err)
	require.Equal("5031FE3D989C6D1537A013FA6E739DA23463FDAEC3B70137D828E36ACE221BD0", strings.ToUpper(hex.EncodeToString(digest)))
}

// TestHmacSHA256BlockSizedKey exercises S4: a key exactly 64 bytes, the
// SHA-256 block size, requiring no padding or hashing-down.
func TestHmacSHA256BlockSizedKey(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	// "30 31 ... 46" is the hex encoding of the ASCII digits
	// "0123456789ABCDEF", repeated four times to fill the 64-byte
	// block size.
	key := bytes.Repeat([]byte("0123456789ABCDEF"), 4)

	h, err := NewHmacWithData(key, []byte{0x64, 0x61, 0x74, 0x61}, SHA256)
	require.NoError(err)
	digest, err := h.Digest()
	require.NoError(err)
	require.Equal("A5218D988FD61090F48EDD4432333355B0D11465FBDE58F558869EC0037AC907", strings.ToUpper(hex.EncodeToString(digest)))
}

func TestHmacDigestIsSingleShot(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	h, err := NewHmac([]byte("key"), SHA256)
	require.NoError(err)
	h.AddData([]byte("data"))

	_, err = h.Digest()
	require.NoError(err)

	_, err = h.Digest()
	require.ErrorIs(err, ErrHmacSpent)
}

func TestHmacResetAllowsReuse(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	h, err := NewHmac([]byte("key"), SHA256)
	require.NoError(err)
	h.AddData([]byte("first"))
	first, err := h.Digest()
	require.NoError(err)

	require.NoError(h.Reset())
	h.AddData([]byte("first"))
	second, err := h.Digest()
	require.NoError(err)

	require.Equal(first, second)
}

func TestHmacOversizedKeyIsRFC2104Correct(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	blockSize, err := SHA256.BlockSize()
	require.NoError(err)

	longKey := bytes.Repeat([]byte{0x42}, blockSize+16)

	h, err := NewHmacWithData(longKey, []byte("message"), SHA256)
	require.NoError(err)
	got, err := h.Digest()
	require.NoError(err)

	// An RFC-2104-correct implementation hashes an oversized key down
	// and then zero-pads the digest back out to the block size before
	// XOR-ing with the inner/outer pad constants. Reproduce that
	// derivation independently (rather than re-deriving via Hmac
	// itself) and confirm the two agree.
	digester, err := newHashFunc(SHA256)
	require.NoError(err)
	hashed := digester()
	hashed.Write(longKey)
	paddedKey := make([]byte, blockSize)
	copy(paddedKey, hashed.Sum(nil))

	ipad := xorBytes(paddedKey, 0x36)
	opad := xorBytes(paddedKey, 0x5C)

	inner := digester()
	inner.Write(ipad)
	inner.Write([]byte("message"))

	outer := digester()
	outer.Write(opad)
	outer.Write(inner.Sum(nil))
	want := outer.Sum(nil)

	require.Equal(want, got)
}

func TestHmacAllAlgorithmsProduceTheRightLength(t *testing.T) {
	t.Parallel()

	algorithms := []struct {
		name string
		alg  Algorithm
	}{
		{"MD4", MD4},
		{"MD5", MD5},
		{"SHA1", SHA1},
		{"SHA224", SHA224},
		{"SHA256", SHA256},
		{"SHA384", SHA384},
		{"SHA512", SHA512},
		{"SHA3224", SHA3224},
		{"SHA3256", SHA3256},
		{"SHA3384", SHA3384},
		{"SHA3512", SHA3512},
	}

	for _, c := range algorithms {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			require := require.New(t)

			wantSize, err := c.alg.DigestSize()
			require.NoError(err)

			h, err := NewHmacWithData([]byte("key"), []byte("data"), c.alg)
			require.NoError(err)
			digest, err := h.Digest()
			require.NoError(err)
			require.Len(digest, wantSize)
		})
	}
}

func TestHmacUnsupportedAlgorithm(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	_, err := NewHmac([]byte("key"), Algorithm(999))
	require.ErrorIs(err, ErrUnsupportedAlgorithm)
}
