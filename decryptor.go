// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package gocrypt

import (
	"bytes"
	"fmt"
)

// DecryptorOption configures a Decryptor at construction time.
type DecryptorOption[C BlockCipher] func(*Decryptor[C])

// WithDecryptorKey sets the cipher's key.
func WithDecryptorKey[C BlockCipher](key []byte) DecryptorOption[C] {
	return func(d *Decryptor[C]) { d.pendingKey = append([]byte(nil), key...) }
}

// WithDecryptorIV sets the cipher's initialization vector, for ciphers
// that use one.
func WithDecryptorIV[C BlockCipher](iv []byte) DecryptorOption[C] {
	return func(d *Decryptor[C]) { d.pendingIV = append([]byte(nil), iv...) }
}

// WithSource sets the ByteSource the Decryptor pulls ciphertext from.
func WithSource[C BlockCipher](src ByteSource) DecryptorOption[C] {
	return func(d *Decryptor[C]) { d.SetSource(src) }
}

// Decryptor is the pull-model counterpart to Encryptor: it reads
// ciphertext from a ByteSource as it becomes available, decrypts
// whatever whole blocks have accumulated, and buffers the decrypted
// plaintext for the caller to Read out. A source-reported short read
// latches a SourceError that every subsequent Read surfaces, mirroring
// the original's sourceReportedError flag.
type Decryptor[C BlockCipher] struct {
	cipher C
	source ByteSource

	pendingKey []byte
	pendingIV  []byte

	mode   OpenMode
	inBuf  []byte
	outBuf []byte

	inBytes  uint64
	outBytes uint64

	sourceErr       bool
	sourceErrDetail *SourceError
	onReady         func()
}

// NewDecryptor builds a Decryptor around cipher, applying opts.
func NewDecryptor[C BlockCipher](cipher C, opts ...DecryptorOption[C]) *Decryptor[C] {
	d := &Decryptor[C]{
		cipher:   cipher,
		inBytes:  ^uint64(0),
		outBytes: ^uint64(0),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.pendingKey != nil {
		_ = d.cipher.SetKey(d.pendingKey)
	}
	if d.pendingIV != nil {
		_ = d.cipher.SetIV(d.pendingIV)
	}
	return d
}

// SetKey installs the cipher's key.
func (d *Decryptor[C]) SetKey(key []byte) error { return d.cipher.SetKey(key) }

// SetIV installs the cipher's initialization vector.
func (d *Decryptor[C]) SetIV(iv []byte) error { return d.cipher.SetIV(iv) }

// SetSource installs the ByteSource ciphertext is pulled from,
// registering the pump as its readable callback and immediately pumping
// any bytes the source already has buffered.
func (d *Decryptor[C]) SetSource(src ByteSource) {
	d.source = src
	d.sourceErr = false
	d.sourceErrDetail = nil
	src.Notify(d.pump)
	if src.BytesAvailable() > 0 {
		d.pump()
	}
}

// SetReadyCallback registers a callback invoked whenever a source pump
// leaves the ciphertext input buffer holding at least one full input
// chunk, and on every non-empty ProcessData call.
func (d *Decryptor[C]) SetReadyCallback(cb func()) { d.onReady = cb }

// Open opens the Decryptor for reading. Only Readable is a valid mode.
func (d *Decryptor[C]) Open(mode OpenMode) error {
	if mode != Readable {
		return ErrWrongOpenMode
	}
	if err := d.cipher.ResetEngine(); err != nil {
		return err
	}
	d.mode = mode
	d.inBytes = 0
	d.outBytes = 0
	return nil
}

// InputChunkSize returns the cipher's block size.
func (d *Decryptor[C]) InputChunkSize() int { return d.cipher.BlockSize() }

// OutputChunkSize returns the cipher's block size.
func (d *Decryptor[C]) OutputChunkSize() int { return d.cipher.BlockSize() }

// BytesProcessedIn returns the number of ciphertext bytes consumed since
// Open.
func (d *Decryptor[C]) BytesProcessedIn() uint64 { return d.inBytes }

// BytesProcessedOut returns the number of plaintext bytes produced since
// Open.
func (d *Decryptor[C]) BytesProcessedOut() uint64 { return d.outBytes }

// pump drains whatever the source currently has available into the
// input buffer. It is the callback registered with the source's Notify,
// and is also called defensively at the top of Read so that polling
// works even without ever registering a source-driven callback.
func (d *Decryptor[C]) pump() {
	if d.sourceErr || d.source == nil {
		return
	}
	avail := d.source.BytesAvailable()
	if avail == 0 {
		return
	}

	start := len(d.inBuf)
	d.inBuf = append(d.inBuf, make([]byte, avail)...)
	n, err := d.source.Read(d.inBuf[start:], avail)
	if err != nil || n != avail {
		d.inBuf = d.inBuf[:start]
		d.sourceErr = true
		detail := fmt.Sprintf("wanted %d bytes, got %d", avail, n)
		if err != nil {
			detail = fmt.Sprintf("%s: %s", detail, err)
		}
		d.sourceErrDetail = &SourceError{Detail: detail}
		return
	}

	if d.onReady != nil && uint64(len(d.inBuf)) >= uint64(d.cipher.BlockSize()) {
		d.onReady()
	}
}

// ProcessData is the manual-push counterpart to a registered
// ByteSource: it appends data directly to the input buffer and raises
// the ready callback, for callers feeding the Decryptor without going
// through SetSource/Notify at all.
func (d *Decryptor[C]) ProcessData(data []byte) {
	if len(data) == 0 {
		return
	}
	d.inBuf = append(d.inBuf, data...)
	if d.onReady != nil {
		d.onReady()
	}
}

// InputBytesPending returns the number of ciphertext bytes buffered but
// not yet decrypted.
func (d *Decryptor[C]) InputBytesPending() uint64 { return uint64(len(d.inBuf)) }

// BytesAvailable returns the number of plaintext bytes that Read could
// return right now, including whole chunks the source has ready but
// hasn't yet been pulled into the input buffer.
func (d *Decryptor[C]) BytesAvailable() uint64 {
	avail := uint64(len(d.inBuf))
	if d.source != nil {
		avail += d.source.BytesAvailable()
	}
	chunk := uint64(d.cipher.BlockSize())
	numberChunks := avail / chunk
	return uint64(len(d.outBuf)) + numberChunks*chunk
}

// CanReadLine reports whether the buffered plaintext contains a newline.
func (d *Decryptor[C]) CanReadLine() bool {
	return bytes.IndexByte(d.outBuf, '\n') >= 0
}

func (d *Decryptor[C]) decryptReady() error {
	chunk := d.cipher.BlockSize()
	numberChunks := len(d.inBuf) / chunk
	if numberChunks == 0 {
		return nil
	}

	newBytes := numberChunks * chunk
	start := len(d.outBuf)
	d.outBuf = append(d.outBuf, make([]byte, newBytes)...)

	in := d.inBuf
	out := d.outBuf[start:]
	for i := 0; i < numberChunks; i++ {
		d.cipher.DecryptBlock(in[:chunk], out[:chunk])
		in = in[chunk:]
		out = out[chunk:]
		d.inBytes += uint64(chunk)
		d.outBytes += uint64(chunk)
	}

	d.inBuf = append(d.inBuf[:0], d.inBuf[numberChunks*chunk:]...)
	return nil
}

// Read pumps any ciphertext the source has ready, decrypts every whole
// block that accumulates, and copies up to len(buf) bytes of decrypted
// plaintext into buf. Once a source read has failed, Read keeps
// returning the latched *SourceError (matching ErrSourceLatched via
// errors.Is) until the Decryptor is given a new source.
func (d *Decryptor[C]) Read(buf []byte) (int, error) {
	d.pump()
	if d.sourceErr {
		return 0, d.sourceErrDetail
	}
	if err := d.decryptReady(); err != nil {
		return 0, err
	}

	n := len(buf)
	if n > len(d.outBuf) {
		n = len(d.outBuf)
	}
	copy(buf, d.outBuf[:n])
	d.outBuf = append(d.outBuf[:0], d.outBuf[n:]...)
	return n, nil
}

// Decrypt is the one-shot counterpart to the streaming Read: it
// decrypts as many whole blocks as fit in p and silently discards any
// trailing partial block, the same floor-division behavior as the
// original's decrypt().
func (d *Decryptor[C]) Decrypt(p []byte) ([]byte, error) {
	chunk := d.cipher.BlockSize()
	numberChunks := len(p) / chunk
	out := make([]byte, numberChunks*chunk)

	if err := d.cipher.ResetEngine(); err != nil {
		return nil, err
	}

	in := p
	o := out
	for i := 0; i < numberChunks; i++ {
		d.cipher.DecryptBlock(in[:chunk], o[:chunk])
		in = in[chunk:]
		o = o[chunk:]
	}
	return out, nil
}

// Close zeroes the Decryptor's buffers and the underlying cipher's key
// material.
func (d *Decryptor[C]) Close() {
	Scrub(d.inBuf)
	Scrub(d.outBuf)
	d.cipher.Zero()
}
