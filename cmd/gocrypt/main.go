// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Command gocrypt is a small CLI exercising the gocrypt library against
// real files: streaming AES-256-CBC/XTEA encryption, RFC-2104 HMAC, and
// bit-serial CRC encode/decode.
package main

import "github.com/inesonic/gocrypt/cmd/gocrypt/cmd"

func main() {
	cmd.Execute()
}
