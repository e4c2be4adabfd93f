// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package sanitize normalizes free-text and optional fields on every write path.
//
// Request bodies are decoded into map[string]any so that an absent key, an
// explicit null and a value can be told apart. Field carries that distinction
// through to the content layer: an omitted field leaves the stored value alone,
// a null field clears it.
package sanitize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type state uint8

const (
	stateOmitted state = iota
	stateNull
	stateValue
)

// Field is a tri-state optional value: omitted, null, or set.
// The zero value is omitted.
type Field[T any] struct {
	st  state
	val T
}

// Omit returns a field that leaves the stored value unchanged.
func Omit[T any]() Field[T] { return Field[T]{} }

// Null returns a field that clears the stored value.
func Null[T any]() Field[T] { return Field[T]{st: stateNull} }

// Value returns a field set to v.
func Value[T any](v T) Field[T] { return Field[T]{st: stateValue, val: v} }

// IsOmitted reports whether the caller did not mention the field.
func (f Field[T]) IsOmitted() bool { return f.st == stateOmitted }

// IsNull reports whether the caller explicitly cleared the field.
func (f Field[T]) IsNull() bool { return f.st == stateNull }

// IsSet reports whether the field is null or has a value.
func (f Field[T]) IsSet() bool { return f.st != stateOmitted }

// Get returns the value and whether one is present.
func (f Field[T]) Get() (T, bool) { return f.val, f.st == stateValue }

// Or returns the value, or def when the field is omitted or null.
func (f Field[T]) Or(def T) T {
	if f.st == stateValue {
		return f.val
	}
	return def
}

// Ptr returns a pointer to the value, or nil when omitted or null.
func (f Field[T]) Ptr() *T {
	if f.st != stateValue {
		return nil
	}
	v := f.val
	return &v
}

// Any returns the value for a store payload: nil for null, the value otherwise.
// Callers must check IsSet first; an omitted field also yields nil.
func (f Field[T]) Any() any {
	if f.st != stateValue {
		return nil
	}
	return f.val
}

// Text sanitizes a free-text value.
// Strings are trimmed and become null when empty, nil becomes null, and any
// other type is treated as omitted.
func Text(v any) Field[string] {
	switch s := v.(type) {
	case nil:
		return Null[string]()
	case string:
		s = strings.TrimSpace(s)
		if s == "" {
			return Null[string]()
		}
		return Value(s)
	default:
		return Omit[string]()
	}
}

// TextField reads key from m and sanitizes it with Text.
// An absent key is omitted.
func TextField(m map[string]any, key string) Field[string] {
	v, ok := m[key]
	if !ok {
		return Omit[string]()
	}
	return Text(v)
}

// BoolField reads a boolean from m.
// Booleans are matched by exact type; null or any other type is rejected.
func BoolField(m map[string]any, key string) (Field[bool], error) {
	v, ok := m[key]
	if !ok {
		return Omit[bool](), nil
	}
	b, ok := v.(bool)
	if !ok {
		return Omit[bool](), &FieldError{Field: key, Reason: "must be a boolean"}
	}
	return Value(b), nil
}

// IntField reads an ordering integer from m.
// Integral JSON numbers and numeric strings are accepted; anything else that
// is present falls back to def.
func IntField(m map[string]any, key string, def int) Field[int] {
	v, ok := m[key]
	if !ok {
		return Omit[int]()
	}
	if n, ok := parseInt(v); ok {
		return Value(n)
	}
	return Value(def)
}

func parseInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case json.Number:
		i, err := strconv.Atoi(n.String())
		return i, err == nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}
