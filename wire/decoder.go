// Copyright 2026 The Roswire Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"
)

// Decoder reads ROSMSG-encoded values from a byte source within a
// fixed byte budget. The budget is established by the enclosing
// framing (the message's 4-byte length prefix) and every primitive
// read reserves its bytes before touching the reader, so a corrupt
// length prefix is caught before any over-read.
//
// A Decoder does not read the outer length prefix itself; use
// ReadMessage for whole framed messages.
type Decoder struct {
	reader    io.Reader
	remaining uint32
	scratch   [8]byte
}

// NewDecoder returns a Decoder that reads one value of exactly length
// bytes from r.
func NewDecoder(r io.Reader, length uint32) *Decoder {
	return &Decoder{reader: r, remaining: length}
}

// Remaining reports how many bytes of the declared budget are still
// unconsumed.
func (d *Decoder) Remaining() uint32 {
	return d.remaining
}

// Exhausted reports whether the declared budget has been fully
// consumed. Once true, no further reads can succeed.
func (d *Decoder) Exhausted() bool {
	return d.remaining == 0
}

// reserve charges size bytes to the budget, failing with ErrOverflow
// before anything is read from the source.
func (d *Decoder) reserve(size uint32) error {
	if size > d.remaining {
		return fmt.Errorf("%w: need %d bytes, %d remain", ErrOverflow, size, d.remaining)
	}
	d.remaining -= size
	return nil
}

// readFull fills buffer from the underlying reader. The bytes must
// already be reserved; a short read means the source itself is
// truncated.
func (d *Decoder) readFull(buffer []byte) error {
	if _, err := io.ReadFull(d.reader, buffer); err != nil {
		return fmt.Errorf("%w: %v", ErrEndOfBuffer, err)
	}
	return nil
}

// fixed reserves and reads a fixed-width scalar into the scratch
// buffer.
func (d *Decoder) fixed(width uint32) ([]byte, error) {
	if err := d.reserve(width); err != nil {
		return nil, err
	}
	buffer := d.scratch[:width]
	if err := d.readFull(buffer); err != nil {
		return nil, err
	}
	return buffer, nil
}

// Bool reads a one-byte boolean. Any nonzero byte decodes as true.
func (d *Decoder) Bool() (bool, error) {
	buffer, err := d.fixed(1)
	if err != nil {
		return false, err
	}
	return buffer[0] != 0, nil
}

// Uint8 reads an unsigned 8-bit integer.
func (d *Decoder) Uint8() (uint8, error) {
	buffer, err := d.fixed(1)
	if err != nil {
		return 0, err
	}
	return buffer[0], nil
}

// Int8 reads a signed 8-bit integer.
func (d *Decoder) Int8() (int8, error) {
	value, err := d.Uint8()
	return int8(value), err
}

// Uint16 reads a little-endian unsigned 16-bit integer.
func (d *Decoder) Uint16() (uint16, error) {
	buffer, err := d.fixed(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buffer), nil
}

// Int16 reads a little-endian signed 16-bit integer.
func (d *Decoder) Int16() (int16, error) {
	value, err := d.Uint16()
	return int16(value), err
}

// Uint32 reads a little-endian unsigned 32-bit integer.
func (d *Decoder) Uint32() (uint32, error) {
	buffer, err := d.fixed(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buffer), nil
}

// Int32 reads a little-endian signed 32-bit integer.
func (d *Decoder) Int32() (int32, error) {
	value, err := d.Uint32()
	return int32(value), err
}

// Uint64 reads a little-endian unsigned 64-bit integer.
func (d *Decoder) Uint64() (uint64, error) {
	buffer, err := d.fixed(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buffer), nil
}

// Int64 reads a little-endian signed 64-bit integer.
func (d *Decoder) Int64() (int64, error) {
	value, err := d.Uint64()
	return int64(value), err
}

// Float32 reads a little-endian IEEE-754 single-precision float.
func (d *Decoder) Float32() (float32, error) {
	value, err := d.Uint32()
	return math.Float32frombits(value), err
}

// Float64 reads a little-endian IEEE-754 double-precision float.
func (d *Decoder) Float64() (float64, error) {
	value, err := d.Uint64()
	return math.Float64frombits(value), err
}

// length reads a u32 length prefix, charging its four bytes to the
// current budget.
func (d *Decoder) length() (uint32, error) {
	return d.Uint32()
}

// Bytes reads a length-prefixed byte buffer: a u32 byte count followed
// by the raw bytes, with no validation of the contents.
func (d *Decoder) Bytes() ([]byte, error) {
	size, err := d.length()
	if err != nil {
		return nil, err
	}
	if err := d.reserve(size); err != nil {
		return nil, err
	}
	buffer := make([]byte, size)
	if err := d.readFull(buffer); err != nil {
		return nil, err
	}
	return buffer, nil
}

// String reads a length-prefixed UTF-8 string. Invalid UTF-8 fails
// with ErrBadStringData; the body bytes are consumed either way.
func (d *Decoder) String() (string, error) {
	buffer, err := d.Bytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(buffer) {
		return "", fmt.Errorf("%w: %d-byte body", ErrBadStringData, len(buffer))
	}
	return string(buffer), nil
}

// Sequence reads a variable-length sequence: a u32 element count
// followed by the elements back-to-back. setup, if non-nil, receives
// the count before any element is read so the caller can allocate;
// element is then invoked once per element in wire order, recursing
// into the codec through whatever reads it performs.
func (d *Decoder) Sequence(setup func(count int) error, element func(index int) error) error {
	count, err := d.length()
	if err != nil {
		return err
	}
	if setup != nil {
		if err := setup(int(count)); err != nil {
			return err
		}
	}
	for index := 0; index < int(count); index++ {
		if err := element(index); err != nil {
			return err
		}
	}
	return nil
}

// Tuple reads a fixed-arity value (a struct or fixed-size array):
// arity elements back-to-back with no count prefix. The arity comes
// from the schema, never from the wire.
func (d *Decoder) Tuple(arity int, element func(index int) error) error {
	for index := 0; index < arity; index++ {
		if err := element(index); err != nil {
			return err
		}
	}
	return nil
}

// Map reads string-map entries until the current budget is exhausted.
// Each entry is a text value of the form "key=value", split on the
// first '='; an entry without '=' fails with ErrBadMapEntry. The key
// and value halves are re-framed as standalone text values and handed
// to entry as independently budgeted sub-decoders, so both sides
// decode through the same schema-directed path as any other value.
//
// The exhaustion check runs before each entry read. Trailing bytes
// that cannot form a complete entry therefore fail inside the entry's
// own reads: a remainder shorter than a length prefix fails the
// prefix reservation with ErrOverflow, a prefix claiming more than
// the remainder fails the body reservation the same way.
func (d *Decoder) Map(entry func(key, value *Decoder) error) error {
	for !d.Exhausted() {
		line, err := d.String()
		if err != nil {
			return err
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			return fmt.Errorf("%w: no '=' separator in %q", ErrBadMapEntry, line)
		}
		if err := entry(textDecoder(key), textDecoder(value)); err != nil {
			return err
		}
	}
	return nil
}

// StringMap reads a string map with plain text keys and values, the
// shape of a TCPROS connection header. This is the only key/value
// pair the wire format can actually express.
func (d *Decoder) StringMap() (map[string]string, error) {
	result := make(map[string]string)
	err := d.Map(func(key, value *Decoder) error {
		keyText, err := key.String()
		if err != nil {
			return err
		}
		valueText, err := value.String()
		if err != nil {
			return err
		}
		result[keyText] = valueText
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// textDecoder frames text as a standalone length-prefixed text value
// with its own byte budget.
func textDecoder(text string) *Decoder {
	buffer := make([]byte, 4+len(text))
	binary.LittleEndian.PutUint32(buffer, uint32(len(text)))
	copy(buffer[4:], text)
	return NewDecoder(bytes.NewReader(buffer), uint32(len(buffer)))
}

// Char always fails: the wire format has no single-codepoint scalar.
// Callers needing a character use a one-character string instead.
func (d *Decoder) Char() (rune, error) {
	return 0, fmt.Errorf("%w: decode a one-character string instead", ErrUnsupportedCharType)
}

// Variant always fails: the wire carries no discriminant tag, so
// tagged unions and optional values have no sound decoding.
func (d *Decoder) Variant() error {
	return fmt.Errorf("%w: no discriminant tag on the wire", ErrUnsupportedEnumType)
}

// Any always fails: the wire carries no type information, so
// self-describing decoding is impossible.
func (d *Decoder) Any() error {
	return fmt.Errorf("%w: wire data is not self-describing", ErrUnsupportedMethod)
}
