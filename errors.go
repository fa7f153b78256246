// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package gocrypt

import (
	"errors"
	"fmt"
)

// Sentinel errors for misuse conditions: calling an API against its own
// documented contract rather than a runtime I/O failure. Correct callers
// should never trigger these; they exist so a caller that does can
// recover with errors.Is instead of a panic.
var (
	// ErrHmacSpent is returned by Hmac.Digest when called a second time
	// without an intervening Reset.
	ErrHmacSpent = errors.New("gocrypt: hmac instance already produced a digest; call Reset before reuse")

	// ErrUnsupportedAlgorithm is returned when an Algorithm tag has no
	// registered hash constructor.
	ErrUnsupportedAlgorithm = errors.New("gocrypt: unsupported hmac algorithm")

	// ErrWrongOpenMode is returned when Open is called with a mode the
	// stream doesn't support (an Encryptor only opens writable, a
	// Decryptor only opens readable).
	ErrWrongOpenMode = errors.New("gocrypt: stream opened in the wrong mode")

	// ErrInvalidCRCWidth is returned when a CRC width other than 8, 16,
	// 32, or 64 is requested.
	ErrInvalidCRCWidth = errors.New("gocrypt: crc result width must be 8, 16, 32, or 64 bits")

	// ErrNoSink is returned by Encryptor operations when no ByteSink has
	// been configured.
	ErrNoSink = errors.New("gocrypt: No output device.")

	// ErrSourceLatched is returned by Decryptor.Read once a prior
	// SourceError has left the stream in a failed state. A latched Read
	// actually returns a *SourceError carrying the short-read detail;
	// errors.Is against ErrSourceLatched still matches it.
	ErrSourceLatched = errors.New("gocrypt: source previously reported an error; stream is latched")
)

// SinkError reports a short write to a ByteSink: the sink accepted fewer
// bytes than the Encryptor asked it to write.
type SinkError struct {
	Wrote  int64
	Wanted int64
	Detail string
}

func (e *SinkError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("gocrypt: sink wrote %d of %d bytes: %s", e.Wrote, e.Wanted, e.Detail)
	}
	return fmt.Sprintf("gocrypt: sink wrote %d of %d bytes", e.Wrote, e.Wanted)
}

// SourceError reports a ByteSource read that returned fewer bytes than it
// had advertised as available. Once raised, a Decryptor latches the
// error and surfaces it on every subsequent Read until the source is
// replaced.
type SourceError struct {
	Detail string
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("gocrypt: source read fewer bytes than advertised: %s", e.Detail)
}

// Unwrap lets errors.Is(err, ErrSourceLatched) match a latched SourceError
// without callers having to know the concrete type.
func (e *SourceError) Unwrap() error { return ErrSourceLatched }

// ConfigurationError reports invalid cipher configuration: a key or IV
// of the wrong length passed to SetKey or SetIV. A missing sink is
// reported with ErrNoSink instead.
type ConfigurationError struct {
	Detail string
}

func (e *ConfigurationError) Error() string {
	return "gocrypt: " + e.Detail
}
