// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package trng wraps a cryptographically secure entropy source behind the
// small word-oriented interface the rest of gocrypt needs: fixed-width
// random words and arbitrary-length random byte slices.
package trng

import (
	"crypto/rand"
	"io"
)

// Config holds the TRNG's entropy source. The zero value is not usable;
// build one with DefaultConfig and apply Options.
type Config struct {
	Reader io.Reader
}

// Option configures a Config.
type Option func(*Config)

// DefaultConfig returns a Config backed by crypto/rand.Reader, the
// platform CSPRNG.
func DefaultConfig() Config {
	return Config{Reader: rand.Reader}
}

// WithReader overrides the entropy source. It exists so tests can
// substitute a deterministic reader; production callers should not need
// it.
func WithReader(r io.Reader) Option {
	return func(c *Config) {
		c.Reader = r
	}
}
