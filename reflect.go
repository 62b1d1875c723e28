// Copyright 2026 The Roswire Authors
// SPDX-License-Identifier: Apache-2.0

package rosmsg

import (
	"fmt"
	"reflect"

	"github.com/roswire/rosmsg/wire"
)

// wireEncoder and wireDecoder are the two halves of wire.Value,
// checked separately so a value-receiver EncodeTo is honored even
// when the value is not addressable (a struct passed to Marshal by
// value, a map element).
type wireEncoder interface {
	EncodeTo(e *wire.Encoder) error
}

type wireDecoder interface {
	DecodeFrom(d *wire.Decoder) error
}

var (
	wireEncoderType = reflect.TypeOf((*wireEncoder)(nil)).Elem()
	wireDecoderType = reflect.TypeOf((*wireDecoder)(nil)).Elem()
)

// customEncoder returns v's hand-written encoder when it has one. Nil
// pointers fall through to the reflection walk so they get the
// nil-pointer diagnostics instead of a method call on a nil receiver.
func customEncoder(v reflect.Value) (wireEncoder, bool) {
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return nil, false
	}
	if v.Type().Implements(wireEncoderType) {
		return v.Interface().(wireEncoder), true
	}
	if v.CanAddr() && reflect.PointerTo(v.Type()).Implements(wireEncoderType) {
		return v.Addr().Interface().(wireEncoder), true
	}
	return nil, false
}

// customDecoder returns v's hand-written decoder when it has one.
func customDecoder(v reflect.Value) (wireDecoder, bool) {
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return nil, false
	}
	if v.CanAddr() && reflect.PointerTo(v.Type()).Implements(wireDecoderType) {
		return v.Addr().Interface().(wireDecoder), true
	}
	if v.Type().Implements(wireDecoderType) {
		return v.Interface().(wireDecoder), true
	}
	return nil, false
}

// structFields returns the indices of the fields that participate in
// the wire encoding: exported fields, in declaration order, minus
// those tagged `rosmsg:"-"`.
func structFields(t reflect.Type) []int {
	fields := make([]int, 0, t.NumField())
	for index := 0; index < t.NumField(); index++ {
		field := t.Field(index)
		if !field.IsExported() || field.Tag.Get("rosmsg") == "-" {
			continue
		}
		fields = append(fields, index)
	}
	return fields
}

func encodeValue(e *wire.Encoder, v reflect.Value) error {
	if !v.IsValid() {
		return fmt.Errorf("%w: cannot encode untyped nil", wire.ErrUnsupportedMethod)
	}
	if impl, ok := customEncoder(v); ok {
		return impl.EncodeTo(e)
	}
	switch v.Kind() {
	case reflect.Bool:
		return e.Bool(v.Bool())
	case reflect.Int8:
		return e.Int8(int8(v.Int()))
	case reflect.Int16:
		return e.Int16(int16(v.Int()))
	case reflect.Int32:
		return e.Int32(int32(v.Int()))
	case reflect.Int64:
		return e.Int64(v.Int())
	case reflect.Uint8:
		return e.Uint8(uint8(v.Uint()))
	case reflect.Uint16:
		return e.Uint16(uint16(v.Uint()))
	case reflect.Uint32:
		return e.Uint32(uint32(v.Uint()))
	case reflect.Uint64:
		return e.Uint64(v.Uint())
	case reflect.Float32:
		return e.Float32(float32(v.Float()))
	case reflect.Float64:
		return e.Float64(v.Float())
	case reflect.Int, reflect.Uint, reflect.Uintptr:
		return fmt.Errorf("%w: %s has platform-dependent width, use a sized integer type", wire.ErrUnsupportedMethod, v.Type())
	case reflect.String:
		return e.String(v.String())
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return e.Bytes(v.Bytes())
		}
		return e.Sequence(v.Len(), func(index int) error {
			return encodeValue(e, v.Index(index))
		})
	case reflect.Array:
		return e.Tuple(v.Len(), func(index int) error {
			return encodeValue(e, v.Index(index))
		})
	case reflect.Struct:
		fields := structFields(v.Type())
		return e.Tuple(len(fields), func(index int) error {
			return encodeValue(e, v.Field(fields[index]))
		})
	case reflect.Map:
		return encodeMap(e, v)
	case reflect.Pointer:
		if v.IsNil() {
			return fmt.Errorf("%w: nil %s has no wire representation", wire.ErrUnsupportedEnumType, v.Type())
		}
		return encodeValue(e, v.Elem())
	case reflect.Interface:
		return fmt.Errorf("%w: cannot encode interface value of type %s", wire.ErrUnsupportedMethod, v.Type())
	default:
		return fmt.Errorf("%w: cannot encode %s", wire.ErrUnsupportedMethod, v.Type())
	}
}

func encodeMap(e *wire.Encoder, v reflect.Value) error {
	t := v.Type()
	if t.Key().Kind() != reflect.String || t.Elem().Kind() != reflect.String {
		return fmt.Errorf("%w: %s: only string keys and values have a wire representation", wire.ErrBadMapEntry, t)
	}
	entries := make(map[string]string, v.Len())
	iterator := v.MapRange()
	for iterator.Next() {
		entries[iterator.Key().String()] = iterator.Value().String()
	}
	return e.StringMap(entries)
}

func decodeValue(d *wire.Decoder, v reflect.Value) error {
	if impl, ok := customDecoder(v); ok {
		return impl.DecodeFrom(d)
	}
	switch v.Kind() {
	case reflect.Bool:
		value, err := d.Bool()
		if err != nil {
			return err
		}
		v.SetBool(value)
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		value, err := decodeInt(d, v.Kind())
		if err != nil {
			return err
		}
		v.SetInt(value)
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		value, err := decodeUint(d, v.Kind())
		if err != nil {
			return err
		}
		v.SetUint(value)
	case reflect.Float32:
		value, err := d.Float32()
		if err != nil {
			return err
		}
		v.SetFloat(float64(value))
	case reflect.Float64:
		value, err := d.Float64()
		if err != nil {
			return err
		}
		v.SetFloat(value)
	case reflect.Int, reflect.Uint, reflect.Uintptr:
		return fmt.Errorf("%w: %s has platform-dependent width, use a sized integer type", wire.ErrUnsupportedMethod, v.Type())
	case reflect.String:
		value, err := d.String()
		if err != nil {
			return err
		}
		v.SetString(value)
	case reflect.Slice:
		return decodeSlice(d, v)
	case reflect.Array:
		return d.Tuple(v.Len(), func(index int) error {
			return decodeValue(d, v.Index(index))
		})
	case reflect.Struct:
		fields := structFields(v.Type())
		return d.Tuple(len(fields), func(index int) error {
			return decodeValue(d, v.Field(fields[index]))
		})
	case reflect.Map:
		return decodeMap(d, v)
	case reflect.Pointer:
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return decodeValue(d, v.Elem())
	case reflect.Interface:
		return fmt.Errorf("%w: cannot decode into interface value of type %s", wire.ErrUnsupportedMethod, v.Type())
	default:
		return fmt.Errorf("%w: cannot decode into %s", wire.ErrUnsupportedMethod, v.Type())
	}
	return nil
}

func decodeInt(d *wire.Decoder, kind reflect.Kind) (int64, error) {
	switch kind {
	case reflect.Int8:
		value, err := d.Int8()
		return int64(value), err
	case reflect.Int16:
		value, err := d.Int16()
		return int64(value), err
	case reflect.Int32:
		value, err := d.Int32()
		return int64(value), err
	default:
		return d.Int64()
	}
}

func decodeUint(d *wire.Decoder, kind reflect.Kind) (uint64, error) {
	switch kind {
	case reflect.Uint8:
		value, err := d.Uint8()
		return uint64(value), err
	case reflect.Uint16:
		value, err := d.Uint16()
		return uint64(value), err
	case reflect.Uint32:
		value, err := d.Uint32()
		return uint64(value), err
	default:
		return d.Uint64()
	}
}

func decodeSlice(d *wire.Decoder, v reflect.Value) error {
	elemType := v.Type().Elem()
	if elemType.Kind() == reflect.Uint8 {
		buffer, err := d.Bytes()
		if err != nil {
			return err
		}
		v.SetBytes(buffer)
		return nil
	}
	var slice reflect.Value
	err := d.Sequence(
		func(count int) error {
			// Cap the initial allocation at the remaining budget: a
			// corrupt count cannot force a huge allocation, because
			// every element consumes at least one wire byte (and
			// zero-width elements cost nothing to append).
			capacity := count
			if remaining := int(d.Remaining()); capacity > remaining {
				capacity = remaining
			}
			slice = reflect.MakeSlice(v.Type(), 0, capacity)
			return nil
		},
		func(index int) error {
			element := reflect.New(elemType).Elem()
			if err := decodeValue(d, element); err != nil {
				return err
			}
			slice = reflect.Append(slice, element)
			return nil
		},
	)
	if err != nil {
		return err
	}
	v.Set(slice)
	return nil
}

func decodeMap(d *wire.Decoder, v reflect.Value) error {
	t := v.Type()
	if t.Key().Kind() != reflect.String || t.Elem().Kind() != reflect.String {
		return fmt.Errorf("%w: %s: only string keys and values have a wire representation", wire.ErrBadMapEntry, t)
	}
	if v.IsNil() {
		v.Set(reflect.MakeMap(t))
	}
	return d.Map(func(key, value *wire.Decoder) error {
		keyValue := reflect.New(t.Key()).Elem()
		if err := decodeValue(key, keyValue); err != nil {
			return err
		}
		elemValue := reflect.New(t.Elem()).Elem()
		if err := decodeValue(value, elemValue); err != nil {
			return err
		}
		v.SetMapIndex(keyValue, elemValue)
		return nil
	})
}
