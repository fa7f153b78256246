// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package gocrypt

// NonSystematicCRCDecode recovers the message from a non-systematic CRC
// encoding by polynomial long division: it divides ensemble by
// polynomial and returns the quotient (the recovered message) along with
// the division's residue. A zero-length residue means ensemble decoded
// cleanly; a non-empty residue indicates the CRC check failed.
//
// polynomial's degree (its highest set bit) must be no greater than 55,
// matching the original's long-division implementation, which packs the
// shifted polynomial mask into a 64-bit word and requires headroom above
// the degree for the shift.
func NonSystematicCRCDecode(ensemble []byte, polynomial uint64) (quotient []byte, residue []byte) {
	remainder := StripTrailingZeros(append([]byte(nil), ensemble...))
	if len(remainder) == 0 {
		return []byte{}, []byte{}
	}

	lastIndex := len(remainder) - 1
	dividendOrder := 8*lastIndex + MSBLocation32(uint32(remainder[lastIndex]))
	remainderOrder := dividendOrder
	divisorOrder := MSBLocation64(polynomial)

	quotient = make([]byte, len(ensemble))

	if dividendOrder >= divisorOrder {
		for remainderOrder >= divisorOrder {
			shiftAmount := remainderOrder - divisorOrder
			shiftByte := shiftAmount / 8
			shiftBit := uint(shiftAmount % 8)

			quotient[shiftByte] |= 1 << shiftBit

			remainderByte := remainderOrder / 8
			mask := polynomial << shiftBit
			maskMsb := (divisorOrder + int(shiftBit)) / 8
			maskShift := 8 * maskMsb

			for {
				if remainderByte < len(remainder) {
					remainder[remainderByte] ^= byte(mask >> uint(maskShift))
				}
				maskShift -= 8
				remainderByte--
				if maskShift < 0 {
					break
				}
			}

			remainder = StripTrailingZeros(remainder)
			if len(remainder) == 0 {
				remainderOrder = 0
			} else {
				lastIndex = len(remainder) - 1
				remainderOrder = 8*lastIndex + MSBLocation32(uint32(remainder[lastIndex]))
			}
		}
	}

	quotient = StripTrailingZeros(quotient)
	return quotient, remainder
}
