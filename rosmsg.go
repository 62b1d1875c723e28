// Copyright 2026 The Roswire Authors
// SPDX-License-Identifier: Apache-2.0

package rosmsg

import (
	"bytes"
	"fmt"
	"io"
	"reflect"

	"github.com/roswire/rosmsg/wire"
)

// Marshal encodes v as one framed ROSMSG message: a 4-byte
// little-endian length followed by the payload.
func Marshal(v any) ([]byte, error) {
	var buffer bytes.Buffer
	if err := NewEncoder(&buffer).Encode(v); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Unmarshal decodes one framed ROSMSG message from data into v, which
// must be a non-nil pointer. The message's declared length must be
// fully consumed by v's shape.
func Unmarshal(data []byte, v any) error {
	return NewDecoder(bytes.NewReader(data)).Decode(v)
}

// Encoder writes a stream of framed ROSMSG messages.
type Encoder struct {
	writer io.Writer
}

// NewEncoder returns an Encoder writing framed messages to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{writer: w}
}

// Encode writes v as one framed message.
func (enc *Encoder) Encode(v any) error {
	return wire.WriteMessage(enc.writer, reflected{reflect.ValueOf(v)})
}

// Decoder reads a stream of framed ROSMSG messages.
type Decoder struct {
	reader io.Reader
}

// NewDecoder returns a Decoder reading framed messages from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{reader: r}
}

// Decode reads one framed message into v, which must be a non-nil
// pointer.
func (dec *Decoder) Decode(v any) error {
	target := reflect.ValueOf(v)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return fmt.Errorf("rosmsg: decode target must be a non-nil pointer, got %T", v)
	}
	return wire.ReadMessage(dec.reader, reflected{target.Elem()})
}

// reflected adapts an arbitrary Go value to the wire.Value seam,
// letting the framing layer drive the reflection walk.
type reflected struct {
	value reflect.Value
}

func (m reflected) EncodeTo(e *wire.Encoder) error {
	return encodeValue(e, m.value)
}

func (m reflected) DecodeFrom(d *wire.Decoder) error {
	return decodeValue(d, m.value)
}
