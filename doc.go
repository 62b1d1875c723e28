// Copyright 2026 The Roswire Authors
// SPDX-License-Identifier: Apache-2.0

// Package rosmsg encodes and decodes Go values in the ROSMSG binary
// format, the length-prefixed little-endian encoding the ROS
// middleware uses for messages and TCPROS connection headers.
//
// For buffer-oriented operations:
//
//	data, err := rosmsg.Marshal(value)
//	err = rosmsg.Unmarshal(data, &value)
//
// For stream-oriented operations (a TCPROS socket, a bag of framed
// messages):
//
//	encoder := rosmsg.NewEncoder(conn)
//	decoder := rosmsg.NewDecoder(conn)
//
// Each call handles one framed message: a 4-byte little-endian length
// followed by exactly that many payload bytes.
//
// # Type Mapping
//
// The wire format carries no type information, so the Go type drives
// every decision:
//
//   - bool, int8/16/32/64, uint8/16/32/64, float32/64 map to the
//     fixed-width little-endian scalars.
//   - string maps to a length-prefixed UTF-8 text value.
//   - []byte maps to a length-prefixed byte buffer; other slices map
//     to count-prefixed sequences.
//   - Arrays and structs map to their elements back-to-back with no
//     prefix: the arity is known from the type. Struct fields encode
//     in declaration order; unexported fields and fields tagged
//     `rosmsg:"-"` are skipped.
//   - Maps with string keys and values map to the packed "key=value"
//     text convention used by connection headers. No other key or
//     value type has a wire representation.
//   - Pointers are followed (and allocated on decode). A nil pointer
//     cannot be encoded: the wire has no representation for an
//     absent value.
//
// Types that implement wire.Value bypass reflection and drive the
// codec primitives directly.
//
// Plain int and uint have platform-dependent width and are rejected;
// use a sized type. Interface values are rejected on both sides: the
// bytes say nothing about what type to decode into.
package rosmsg
