// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package gocrypt

import "github.com/inesonic/gocrypt/internal/trng"

// OpenMode selects the direction a stream is opened in.
type OpenMode int

const (
	// Closed is the zero value: the stream has not been opened.
	Closed OpenMode = iota
	// Writable opens an Encryptor for writing.
	Writable
	// Readable opens a Decryptor for reading.
	Readable
)

// EncryptorOption configures an Encryptor at construction time.
type EncryptorOption[C BlockCipher] func(*Encryptor[C])

// WithEncryptorKey sets the cipher's key.
func WithEncryptorKey[C BlockCipher](key []byte) EncryptorOption[C] {
	return func(e *Encryptor[C]) { e.pendingKey = append([]byte(nil), key...) }
}

// WithEncryptorIV sets the cipher's initialization vector, for ciphers
// that use one.
func WithEncryptorIV[C BlockCipher](iv []byte) EncryptorOption[C] {
	return func(e *Encryptor[C]) { e.pendingIV = append([]byte(nil), iv...) }
}

// WithSink sets the ByteSink the Encryptor writes ciphertext to.
func WithSink[C BlockCipher](sink ByteSink) EncryptorOption[C] {
	return func(e *Encryptor[C]) { e.sink = sink }
}

// Encryptor is a generic streaming encryption front end over any
// BlockCipher: it accepts plaintext through Write in arbitrary-sized
// pieces, buffers the residue that doesn't fill a whole cipher block,
// and emits ciphertext a block at a time to a ByteSink. It mirrors the
// original's push-model Encryptor/QIODevice pairing: every full block
// that arrives gets encrypted directly from the caller's own memory
// without an extra buffer copy, and only the trailing partial block is
// staged.
//
// C is instantiated with a concrete cipher type (*AESCipher,
// *XTEACipher) so block processing has no dynamic dispatch.
type Encryptor[C BlockCipher] struct {
	cipher C
	sink   ByteSink

	pendingKey []byte
	pendingIV  []byte

	mode      OpenMode
	started   bool
	inputBuf  []byte
	inputLen  int
	outputBuf []byte

	inBytes  uint64
	outBytes uint64

	rng *trng.TRNG
}

// NewEncryptor builds an Encryptor around cipher, applying opts.
func NewEncryptor[C BlockCipher](cipher C, opts ...EncryptorOption[C]) *Encryptor[C] {
	e := &Encryptor[C]{
		cipher:   cipher,
		inBytes:  ^uint64(0),
		outBytes: ^uint64(0),
		rng:      trng.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.pendingKey != nil {
		_ = e.cipher.SetKey(e.pendingKey)
	}
	if e.pendingIV != nil {
		_ = e.cipher.SetIV(e.pendingIV)
	}
	return e
}

// SetKey installs the cipher's key.
func (e *Encryptor[C]) SetKey(key []byte) error { return e.cipher.SetKey(key) }

// SetIV installs the cipher's initialization vector.
func (e *Encryptor[C]) SetIV(iv []byte) error { return e.cipher.SetIV(iv) }

// SetSink installs the ByteSink ciphertext is written to.
func (e *Encryptor[C]) SetSink(sink ByteSink) { e.sink = sink }

// Open opens the Encryptor for writing. Only Writable is a valid mode.
func (e *Encryptor[C]) Open(mode OpenMode) error {
	if mode != Writable {
		return ErrWrongOpenMode
	}
	e.mode = mode
	e.inBytes = 0
	e.outBytes = 0
	return nil
}

// InputChunkSize returns the cipher's block size, the granularity at
// which Write stages plaintext.
func (e *Encryptor[C]) InputChunkSize() int { return e.cipher.BlockSize() }

// OutputChunkSize returns the cipher's block size, the granularity at
// which ciphertext is emitted. Equal to InputChunkSize for every cipher
// this package implements.
func (e *Encryptor[C]) OutputChunkSize() int { return e.cipher.BlockSize() }

// BytesProcessedIn returns the number of plaintext bytes consumed since
// Open.
func (e *Encryptor[C]) BytesProcessedIn() uint64 { return e.inBytes }

// BytesProcessedOut returns the number of ciphertext bytes emitted since
// Open.
func (e *Encryptor[C]) BytesProcessedOut() uint64 { return e.outBytes }

func (e *Encryptor[C]) ensureStarted() error {
	if e.started {
		return nil
	}
	chunk := e.cipher.BlockSize()
	e.inputBuf = make([]byte, chunk)
	e.outputBuf = make([]byte, chunk)
	e.inputLen = 0
	e.started = true
	return e.cipher.ResetEngine()
}

// Write stages and encrypts p, writing whole ciphertext blocks to the
// sink as they become available. Any plaintext that doesn't fill a
// whole block is held until the next Write, Flush, or FlushAndPad.
func (e *Encryptor[C]) Write(p []byte) (int, error) {
	if e.sink == nil {
		return 0, ErrNoSink
	}
	if err := e.ensureStarted(); err != nil {
		return 0, err
	}

	chunk := e.cipher.BlockSize()
	total := 0
	remaining := p

	if e.inputLen > 0 {
		room := chunk - e.inputLen
		n := room
		if n > len(remaining) {
			n = len(remaining)
		}
		copy(e.inputBuf[e.inputLen:], remaining[:n])
		e.inputLen += n
		remaining = remaining[n:]
		total += n

		if e.inputLen == chunk {
			if err := e.emitBlock(e.inputBuf); err != nil {
				return -1, err
			}
			e.inputLen = 0
		}
	}

	for len(remaining) >= chunk {
		if err := e.emitBlock(remaining[:chunk]); err != nil {
			return -1, err
		}
		remaining = remaining[chunk:]
		total += chunk
	}

	if len(remaining) > 0 {
		copy(e.inputBuf[e.inputLen:], remaining)
		e.inputLen += len(remaining)
		total += len(remaining)
	}

	return total, nil
}

func (e *Encryptor[C]) emitBlock(block []byte) error {
	e.cipher.EncryptBlock(block, e.outputBuf)
	written, err := e.sink.Write(e.outputBuf)
	chunk := int64(e.cipher.BlockSize())
	if err != nil || written != chunk {
		return &SinkError{Wrote: written, Wanted: chunk, Detail: e.sink.ErrorString()}
	}
	e.inBytes += uint64(len(block))
	e.outBytes += uint64(chunk)
	return nil
}

// Flush pads any residual buffered plaintext with PKCS#7 bytes and
// emits it. If the buffered plaintext is already empty — meaning the
// input seen so far was exactly chunk-aligned — Flush does nothing and
// omits the all-padding block that a naive implementation would emit.
func (e *Encryptor[C]) Flush() error {
	if e.sink == nil {
		return ErrNoSink
	}
	if !e.started || e.inputLen == 0 {
		return nil
	}

	chunk := e.cipher.BlockSize()
	padByte := byte(chunk - e.inputLen)
	padded := e.inputLen
	for i := e.inputLen; i < chunk; i++ {
		e.inputBuf[i] = padByte
	}
	e.inputLen = 0

	e.cipher.EncryptBlock(e.inputBuf, e.outputBuf)
	written, err := e.sink.Write(e.outputBuf)
	if err != nil || written != int64(chunk) {
		return &SinkError{Wrote: written, Wanted: int64(chunk), Detail: e.sink.ErrorString()}
	}
	e.inBytes += uint64(padded)
	e.outBytes += uint64(chunk)
	return nil
}

// FlushAndPad flushes any residual plaintext, then appends a random
// number of additional random bytes (0..chunk-1) after the final block.
// Because these trailing bytes sit outside of any cipher block they are
// never decrypted; their only purpose is to obscure the exact plaintext
// length from an observer who can see ciphertext length but not the
// PKCS#7 padding inside it.
func (e *Encryptor[C]) FlushAndPad() error {
	if err := e.Flush(); err != nil {
		return err
	}

	chunk := e.cipher.BlockSize()
	r, err := e.rng.Random32()
	if err != nil {
		return err
	}
	padBytes := int((r & 0xFF) % uint32(chunk))
	r >>= 8
	residue := 3

	buf := make([]byte, padBytes)
	for i := 0; i < padBytes; i++ {
		if residue == 0 {
			r, err = e.rng.Random32()
			if err != nil {
				return err
			}
			residue = 4
		}
		buf[i] = byte(r & 0xFF)
		r >>= 8
		residue--
	}

	written, err := e.sink.Write(buf)
	if err != nil || written != int64(padBytes) {
		return &SinkError{Wrote: written, Wanted: int64(padBytes), Detail: e.sink.ErrorString()}
	}
	e.outBytes += uint64(padBytes)
	return nil
}

// Encrypt is the one-shot counterpart to the streaming Write/Flush pair:
// it encrypts p in its entirety and returns the ciphertext, applying
// PKCS#7 padding to the trailing partial block if p's length isn't a
// multiple of the cipher's block size. If p's length is already
// block-aligned, no additional all-padding block is appended.
func (e *Encryptor[C]) Encrypt(p []byte) ([]byte, error) {
	chunk := e.cipher.BlockSize()
	numberChunks := (len(p) + chunk - 1) / chunk
	out := make([]byte, numberChunks*chunk)

	if err := e.cipher.ResetEngine(); err != nil {
		return nil, err
	}

	remaining := len(p)
	in := p
	o := out
	for remaining >= chunk {
		e.cipher.EncryptBlock(in[:chunk], o[:chunk])
		in = in[chunk:]
		o = o[chunk:]
		remaining -= chunk
	}

	if remaining > 0 {
		tail := make([]byte, chunk)
		copy(tail, in[:remaining])
		padByte := byte(chunk - remaining)
		for i := remaining; i < chunk; i++ {
			tail[i] = padByte
		}
		e.cipher.EncryptBlock(tail, o[:chunk])
	}

	return out, nil
}

// Close zeroes the Encryptor's staging buffers and the underlying
// cipher's key material.
func (e *Encryptor[C]) Close() {
	Scrub(e.inputBuf)
	Scrub(e.outputBuf)
	e.cipher.Zero()
}
