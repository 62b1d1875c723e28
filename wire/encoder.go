// Copyright 2026 The Roswire Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sort"
)

// Encoder writes ROSMSG-encoded values to a byte sink. It is the
// exact mirror of Decoder: fixed-width little-endian scalars,
// length-prefixed strings and buffers, count-prefixed sequences,
// unframed tuples, and packed "key=value" map entries.
//
// An Encoder does not write the outer length prefix itself; use
// WriteMessage for whole framed messages.
type Encoder struct {
	writer  io.Writer
	scratch [8]byte
}

// NewEncoder returns an Encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{writer: w}
}

func (e *Encoder) write(buffer []byte) error {
	if _, err := e.writer.Write(buffer); err != nil {
		return fmt.Errorf("writing to sink: %w", err)
	}
	return nil
}

// Bool writes a one-byte boolean, canonically 0 or 1.
func (e *Encoder) Bool(value bool) error {
	e.scratch[0] = 0
	if value {
		e.scratch[0] = 1
	}
	return e.write(e.scratch[:1])
}

// Uint8 writes an unsigned 8-bit integer.
func (e *Encoder) Uint8(value uint8) error {
	e.scratch[0] = value
	return e.write(e.scratch[:1])
}

// Int8 writes a signed 8-bit integer.
func (e *Encoder) Int8(value int8) error {
	return e.Uint8(uint8(value))
}

// Uint16 writes a little-endian unsigned 16-bit integer.
func (e *Encoder) Uint16(value uint16) error {
	binary.LittleEndian.PutUint16(e.scratch[:2], value)
	return e.write(e.scratch[:2])
}

// Int16 writes a little-endian signed 16-bit integer.
func (e *Encoder) Int16(value int16) error {
	return e.Uint16(uint16(value))
}

// Uint32 writes a little-endian unsigned 32-bit integer.
func (e *Encoder) Uint32(value uint32) error {
	binary.LittleEndian.PutUint32(e.scratch[:4], value)
	return e.write(e.scratch[:4])
}

// Int32 writes a little-endian signed 32-bit integer.
func (e *Encoder) Int32(value int32) error {
	return e.Uint32(uint32(value))
}

// Uint64 writes a little-endian unsigned 64-bit integer.
func (e *Encoder) Uint64(value uint64) error {
	binary.LittleEndian.PutUint64(e.scratch[:8], value)
	return e.write(e.scratch[:8])
}

// Int64 writes a little-endian signed 64-bit integer.
func (e *Encoder) Int64(value int64) error {
	return e.Uint64(uint64(value))
}

// Float32 writes a little-endian IEEE-754 single-precision float.
func (e *Encoder) Float32(value float32) error {
	return e.Uint32(math.Float32bits(value))
}

// Float64 writes a little-endian IEEE-754 double-precision float.
func (e *Encoder) Float64(value float64) error {
	return e.Uint64(math.Float64bits(value))
}

// Bytes writes a length-prefixed byte buffer: the u32 byte count
// followed by the raw bytes, no padding or alignment.
func (e *Encoder) Bytes(buffer []byte) error {
	if err := e.Uint32(uint32(len(buffer))); err != nil {
		return err
	}
	return e.write(buffer)
}

// String writes a length-prefixed string.
func (e *Encoder) String(value string) error {
	if err := e.Uint32(uint32(len(value))); err != nil {
		return err
	}
	return e.write([]byte(value))
}

// Sequence writes a variable-length sequence: the u32 element count,
// then element once per element in order.
func (e *Encoder) Sequence(count int, element func(index int) error) error {
	if err := e.Uint32(uint32(count)); err != nil {
		return err
	}
	for index := 0; index < count; index++ {
		if err := element(index); err != nil {
			return err
		}
	}
	return nil
}

// Tuple writes a fixed-arity value: arity elements back-to-back with
// no count prefix.
func (e *Encoder) Tuple(arity int, element func(index int) error) error {
	for index := 0; index < arity; index++ {
		if err := element(index); err != nil {
			return err
		}
	}
	return nil
}

// StringMap writes a string map as packed "key=value" text entries.
// Keys are written in sorted order so the same map always produces
// identical bytes; the wire meaning is unchanged since the region is
// order-insensitive. The enclosing framing supplies the region
// length — no entry count is written.
func (e *Encoder) StringMap(entries map[string]string) error {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := e.String(key + "=" + entries[key]); err != nil {
			return err
		}
	}
	return nil
}

// Map writes count map entries through the string-map convention. For
// each entry the callback writes the key and the value through the
// two sub-encoders; each side must produce exactly one text value,
// whose body becomes the corresponding half of the "key=value" line.
// This is the generic form of StringMap for schema-directed drivers.
func (e *Encoder) Map(count int, entry func(index int, key, value *Encoder) error) error {
	for index := 0; index < count; index++ {
		var keyBuffer, valueBuffer bytes.Buffer
		if err := entry(index, NewEncoder(&keyBuffer), NewEncoder(&valueBuffer)); err != nil {
			return err
		}
		keyText, err := textBody(keyBuffer.Bytes())
		if err != nil {
			return err
		}
		valueText, err := textBody(valueBuffer.Bytes())
		if err != nil {
			return err
		}
		if err := e.String(keyText + "=" + valueText); err != nil {
			return err
		}
	}
	return nil
}

// textBody unwraps a single encoded text value, returning its body.
func textBody(encoded []byte) (string, error) {
	if len(encoded) < 4 || binary.LittleEndian.Uint32(encoded) != uint32(len(encoded)-4) {
		return "", fmt.Errorf("%w: map side did not encode as a single text value", ErrBadMapEntry)
	}
	return string(encoded[4:]), nil
}

// Char always fails: the wire format has no single-codepoint scalar.
// Callers needing a character write a one-character string instead.
func (e *Encoder) Char(value rune) error {
	return fmt.Errorf("%w: encode a one-character string instead", ErrUnsupportedCharType)
}

// Variant always fails: the wire carries no discriminant tag, so
// tagged unions and optional values cannot be represented.
func (e *Encoder) Variant() error {
	return fmt.Errorf("%w: no discriminant tag on the wire", ErrUnsupportedEnumType)
}
