// Copyright 2026 The Roswire Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import "errors"

// Errors returned by the codec. Malformed wire data surfaces as
// ErrOverflow, ErrUnderflow, ErrEndOfBuffer, ErrBadStringData, or
// ErrBadMapEntry; a schema asking for a shape the wire format cannot
// express surfaces as one of the Unsupported errors. All are terminal
// for the current encode or decode call and carry case-specific
// context in the wrapping message; match them with errors.Is.
var (
	// ErrOverflow reports a length prefix that claims more bytes
	// than remain in the enclosing budget. The prefix itself has
	// been consumed; nothing past it has been read.
	ErrOverflow = errors.New("rosmsg: length prefix exceeds enclosing byte budget")

	// ErrUnderflow reports a message whose declared length was not
	// fully consumed by the decoded value.
	ErrUnderflow = errors.New("rosmsg: value did not consume its declared length")

	// ErrEndOfBuffer reports a byte source that ran dry while the
	// declared budget still had room, i.e. actual truncation rather
	// than a lying length prefix.
	ErrEndOfBuffer = errors.New("rosmsg: byte source exhausted")

	// ErrBadStringData reports a string body that is not valid
	// UTF-8. The body bytes have already been consumed.
	ErrBadStringData = errors.New("rosmsg: string body is not valid UTF-8")

	// ErrBadMapEntry reports a map entry that cannot be split into a
	// key and a value, or a map whose keys or values are not text.
	ErrBadMapEntry = errors.New("rosmsg: malformed map entry")

	// ErrUnsupportedEnumType reports an attempt to encode or decode
	// a tagged variant or optional value. The wire format carries no
	// discriminant, so no such shape can be represented.
	ErrUnsupportedEnumType = errors.New("rosmsg: wire format cannot represent tagged variants")

	// ErrUnsupportedCharType reports an attempt to encode or decode
	// a single character as a scalar. The wire format has no
	// one-codepoint representation distinct from a length-1 string.
	ErrUnsupportedCharType = errors.New("rosmsg: wire format cannot represent single characters")

	// ErrUnsupportedMethod reports a decoding or encoding mode the
	// wire format can never satisfy, such as self-describing "any"
	// decoding: the bytes carry no type information.
	ErrUnsupportedMethod = errors.New("rosmsg: operation not supported by the wire format")
)
