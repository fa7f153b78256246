// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package gocrypt

// GenerateKey folds an arbitrary-length input into a fixed-length key by
// round-robin byte-wise addition with 8-bit wraparound. This is a
// deliberately weak, non-cryptographic derivation: it exists to turn a
// user-supplied passphrase or token into a key of the exact length a
// block cipher needs, not to provide any resistance against a
// brute-force or dictionary attack on the input. Callers who need a real
// password-based key derivation should use a dedicated KDF upstream of
// this function.
//
// out determines the derived key length; in is folded into it byte by
// byte, wrapping around out as many times as needed.
func GenerateKey(out []byte, in []byte) {
	for i := range out {
		out[i] = 0
	}
	if len(out) == 0 || len(in) == 0 {
		return
	}
	for i, b := range in {
		out[i%len(out)] += b
	}
}

// GenerateKeyFromString is the string-input overload of GenerateKey.
func GenerateKeyFromString(out []byte, s string) {
	GenerateKey(out, []byte(s))
}
