// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package gocrypt

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSystematicCRCKnownAnswer exercises S5.
func TestSystematicCRCKnownAnswer(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	crc, err := SystematicCRC(16, 0x1D44F, []byte{0x01, 0x02, 0x03, 0x04})
	require.NoError(err)
	require.Equal(uint64(0x939E), crc)
}

func TestSystematicCRCInvalidWidth(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	_, err := SystematicCRC(24, 0x1D44F, []byte{0x01})
	require.ErrorIs(err, ErrInvalidCRCWidth)
}

func TestSystematicCRCEmptyInput(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	crc, err := SystematicCRC(16, 0x1D44F, nil)
	require.NoError(err)
	require.Equal(uint64(0), crc)
}

func TestSystematicCRCWidths(t *testing.T) {
	t.Parallel()

	widths := []int{8, 16, 32, 64}
	for _, w := range widths {
		w := w
		t.Run(strconv.Itoa(w), func(t *testing.T) {
			t.Parallel()
			require := require.New(t)

			crc, err := SystematicCRC(w, 0x1021, []byte("the quick brown fox"))
			require.NoError(err)
			if w < 64 {
				require.Less(crc, uint64(1)<<uint(w))
			}
		})
	}
}
