// Copyright 2026 The Roswire Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

// uint8Message is a minimal hand-written Value used by framing tests.
type uint8Message uint8

func (m uint8Message) EncodeTo(e *Encoder) error {
	return e.Uint8(uint8(m))
}

func (m *uint8Message) DecodeFrom(d *Decoder) error {
	value, err := d.Uint8()
	*m = uint8Message(value)
	return err
}

type uint32Message uint32

func (m uint32Message) EncodeTo(e *Encoder) error {
	return e.Uint32(uint32(m))
}

func (m *uint32Message) DecodeFrom(d *Decoder) error {
	value, err := d.Uint32()
	*m = uint32Message(value)
	return err
}

// uint16Pair is a fixed-arity tuple message.
type uint16Pair [2]uint16

func (m uint16Pair) EncodeTo(e *Encoder) error {
	return e.Tuple(2, func(index int) error {
		return e.Uint16(m[index])
	})
}

func (m *uint16Pair) DecodeFrom(d *Decoder) error {
	return d.Tuple(2, func(index int) error {
		value, err := d.Uint16()
		m[index] = value
		return err
	})
}

// int16Vector is a variable-length sequence message.
type int16Vector []int16

func (m int16Vector) EncodeTo(e *Encoder) error {
	return e.Sequence(len(m), func(index int) error {
		return e.Int16(m[index])
	})
}

func (m *int16Vector) DecodeFrom(d *Decoder) error {
	return d.Sequence(
		func(count int) error {
			*m = make(int16Vector, 0, count)
			return nil
		},
		func(index int) error {
			value, err := d.Int16()
			if err != nil {
				return err
			}
			*m = append(*m, value)
			return nil
		},
	)
}

// laserScan is a hand-written composite message in the style of a
// generated ROS message type: string frame, fixed-width timestamp,
// and a variable-length reading array.
type laserScan struct {
	Frame    string
	Stamp    uint32
	Readings []int16
}

func (m laserScan) EncodeTo(e *Encoder) error {
	if err := e.String(m.Frame); err != nil {
		return err
	}
	if err := e.Uint32(m.Stamp); err != nil {
		return err
	}
	return int16Vector(m.Readings).EncodeTo(e)
}

func (m *laserScan) DecodeFrom(d *Decoder) error {
	var err error
	if m.Frame, err = d.String(); err != nil {
		return err
	}
	if m.Stamp, err = d.Uint32(); err != nil {
		return err
	}
	return (*int16Vector)(&m.Readings).DecodeFrom(d)
}

func TestMessageFraming(t *testing.T) {
	t.Parallel()
	scalar := uint8Message(150)
	pair := uint16Pair{1026, 4104}
	vector := int16Vector{7, 1025, 33, 57}
	tests := []struct {
		name  string
		value Value
		want  []byte
	}{
		{
			name:  "uint8",
			value: &scalar,
			want:  []byte{1, 0, 0, 0, 150},
		},
		{
			name:  "uint16 pair",
			value: &pair,
			want:  []byte{4, 0, 0, 0, 2, 4, 8, 16},
		},
		{
			name:  "int16 vector",
			value: &vector,
			want:  []byte{12, 0, 0, 0, 4, 0, 0, 0, 7, 0, 1, 4, 33, 0, 57, 0},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			var buffer bytes.Buffer
			if err := WriteMessage(&buffer, test.value); err != nil {
				t.Fatalf("WriteMessage: %v", err)
			}
			if !bytes.Equal(buffer.Bytes(), test.want) {
				t.Errorf("got %x, want %x", buffer.Bytes(), test.want)
			}
		})
	}
}

func TestMessageRoundTrip(t *testing.T) {
	t.Parallel()
	original := laserScan{
		Frame:    "base_laser",
		Stamp:    1316912741,
		Readings: []int16{120, -3, 0, 5512},
	}

	var buffer bytes.Buffer
	if err := WriteMessage(&buffer, &original); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	var decoded laserScan
	if err := ReadMessage(&buffer, &decoded); err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("got %+v, want %+v", decoded, original)
	}
	if buffer.Len() != 0 {
		t.Errorf("%d bytes left after reading one message", buffer.Len())
	}
}

func TestReadMessageSequential(t *testing.T) {
	t.Parallel()
	var buffer bytes.Buffer
	messages := []uint16Pair{{1026, 4104}, {7, 65535}}
	for _, message := range messages {
		if err := WriteMessage(&buffer, &message); err != nil {
			t.Fatalf("WriteMessage: %v", err)
		}
	}
	for index, want := range messages {
		var got uint16Pair
		if err := ReadMessage(&buffer, &got); err != nil {
			t.Fatalf("ReadMessage[%d]: %v", index, err)
		}
		if got != want {
			t.Errorf("message[%d]: got %v, want %v", index, got, want)
		}
	}
}

func TestReadMessageOverflow(t *testing.T) {
	t.Parallel()
	// The frame declares two bytes but the schema asks for a u32.
	data := []byte{2, 0, 0, 0, 0x45, 0x23, 0x01, 0xCD}
	var value uint32Message
	err := ReadMessage(bytes.NewReader(data), &value)
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("got %v, want ErrOverflow", err)
	}
}

func TestReadMessageUnderflow(t *testing.T) {
	t.Parallel()
	// The frame declares five bytes but a u32 only consumes four.
	data := []byte{5, 0, 0, 0, 0x45, 0x23, 0x01, 0xCD}
	var value uint32Message
	err := ReadMessage(bytes.NewReader(data), &value)
	if !errors.Is(err, ErrUnderflow) {
		t.Fatalf("got %v, want ErrUnderflow", err)
	}
}

func TestReadMessageTruncated(t *testing.T) {
	t.Parallel()
	// The frame declares four bytes but the source holds three.
	data := []byte{4, 0, 0, 0, 0x45, 0x23, 0x01}
	var value uint32Message
	err := ReadMessage(bytes.NewReader(data), &value)
	if !errors.Is(err, ErrEndOfBuffer) {
		t.Fatalf("got %v, want ErrEndOfBuffer", err)
	}
}

func TestReadMessageSequenceRegionMismatch(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{
			// The region holds four elements but the count claims
			// three: two bytes of the region go unconsumed.
			name: "count below region",
			data: []byte{12, 0, 0, 0, 3, 0, 0, 0, 7, 0, 1, 4, 33, 0, 57, 0},
			want: ErrUnderflow,
		},
		{
			// The count claims five elements but the region only
			// holds four: the fifth reservation exceeds the budget.
			name: "count beyond region",
			data: []byte{12, 0, 0, 0, 5, 0, 0, 0, 7, 0, 1, 4, 33, 0, 57, 0},
			want: ErrOverflow,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			var value int16Vector
			err := ReadMessage(bytes.NewReader(test.data), &value)
			if !errors.Is(err, test.want) {
				t.Fatalf("got %v, want %v", err, test.want)
			}
		})
	}
}

func TestReadMessageEmptyFrame(t *testing.T) {
	t.Parallel()
	// A zero-length frame is a complete message for a shape that
	// consumes nothing, such as an empty map region.
	var header mapMessage
	if err := ReadMessage(bytes.NewReader([]byte{0, 0, 0, 0}), &header); err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if len(header) != 0 {
		t.Errorf("got %v, want empty map", header)
	}
}

// mapMessage decodes the remainder of its frame as a string map, the
// shape of a TCPROS connection header.
type mapMessage map[string]string

func (m mapMessage) EncodeTo(e *Encoder) error {
	return e.StringMap(m)
}

func (m *mapMessage) DecodeFrom(d *Decoder) error {
	decoded, err := d.StringMap()
	*m = decoded
	return err
}

func TestMapMessageRoundTrip(t *testing.T) {
	t.Parallel()
	original := mapMessage{
		"callerid": "/rostopic_4767_1316912741557",
		"topic":    "/chatter",
		"type":     "std_msgs/String",
	}

	var buffer bytes.Buffer
	if err := WriteMessage(&buffer, &original); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	var decoded mapMessage
	if err := ReadMessage(&buffer, &decoded); err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("got %v, want %v", decoded, original)
	}
}

func TestWriteMessageSingleEntryMap(t *testing.T) {
	t.Parallel()
	var buffer bytes.Buffer
	message := mapMessage{"abc": "123"}
	if err := WriteMessage(&buffer, &message); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	want := []byte{11, 0, 0, 0, 7, 0, 0, 0, 'a', 'b', 'c', '=', '1', '2', '3'}
	if !bytes.Equal(buffer.Bytes(), want) {
		t.Errorf("got %x, want %x", buffer.Bytes(), want)
	}
}
