// Copyright 2026 The Roswire Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire implements the ROSMSG binary wire format: the
// length-prefixed, little-endian encoding used by the ROS middleware
// for messages, service calls, and TCPROS connection headers.
//
// Every message on the wire is a 4-byte little-endian length followed
// by exactly that many payload bytes. Within the payload:
//
//   - Scalars are fixed-width little-endian: bool and u8/i8 are one
//     byte, u16/i16 two, u32/i32 and f32 four, u64/i64 and f64 eight.
//   - Strings and byte buffers are a u32 byte length followed by the
//     raw bytes. Strings must be valid UTF-8.
//   - Sequences are a u32 element count followed by the elements
//     back-to-back, with no per-element framing.
//   - Structs and fixed-size arrays are their elements back-to-back
//     with no count prefix; the arity comes from the schema, not the
//     wire.
//   - String maps are packed "key=value" text entries filling the
//     enclosing declared region, the convention ROS uses for
//     connection headers.
//
// The format carries no type tags. What shape to read next is always
// supplied by the caller: either a hand-written Value implementation
// driving the Decoder and Encoder primitives directly, or the
// reflection driver in the parent rosmsg package.
//
// Decoding is budget-tracked. The outer length prefix establishes a
// byte budget for the message, every primitive read reserves its bytes
// against that budget before touching the underlying reader, and the
// framing layer requires the budget to be exactly consumed. A length
// prefix that claims more than the enclosing budget fails with
// ErrOverflow before any over-read is attempted; a reader that runs
// dry while the budget still had room fails with ErrEndOfBuffer; a
// message whose declared length was not fully consumed fails with
// ErrUnderflow. The three conditions are distinct so that callers can
// tell a corrupt length prefix from a truncated stream.
package wire
