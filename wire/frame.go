// Copyright 2026 The Roswire Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Value is implemented by types that know their own wire shape. The
// codec calls back into the implementation at each recursion point;
// the implementation drives the Decoder and Encoder primitives for
// whatever scalars, strings, sequences, tuples, and maps its shape
// contains. Hand-written and generated ROS message types implement
// Value; arbitrary Go values go through the reflection driver in the
// parent rosmsg package, which implements Value on their behalf.
type Value interface {
	// EncodeTo writes the value's wire encoding, without the outer
	// length prefix.
	EncodeTo(e *Encoder) error

	// DecodeFrom reads the value from d, consuming exactly the bytes
	// the value's shape occupies.
	DecodeFrom(d *Decoder) error
}

// ReadMessage reads one framed message from r: a 4-byte little-endian
// length followed by exactly that many payload bytes, decoded into v.
// The declared length must be fully consumed; leftover bytes fail
// with ErrUnderflow, and a source that runs dry mid-payload fails
// with ErrEndOfBuffer.
func ReadMessage(r io.Reader, v Value) error {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return fmt.Errorf("reading message length: %w", err)
	}
	length := binary.LittleEndian.Uint32(header[:])
	decoder := NewDecoder(r, length)
	if err := v.DecodeFrom(decoder); err != nil {
		return err
	}
	if !decoder.Exhausted() {
		return fmt.Errorf("%w: %d of %d declared bytes unread", ErrUnderflow, decoder.Remaining(), length)
	}
	return nil
}

// WriteMessage writes v to w as one framed message. The value is
// serialized into a buffer first so the length prefix is always
// exact.
func WriteMessage(w io.Writer, v Value) error {
	var body bytes.Buffer
	if err := v.EncodeTo(NewEncoder(&body)); err != nil {
		return err
	}
	var header [4]byte
	binary.LittleEndian.PutUint32(header[:], uint32(body.Len()))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("writing message length: %w", err)
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return fmt.Errorf("writing message body: %w", err)
	}
	return nil
}
