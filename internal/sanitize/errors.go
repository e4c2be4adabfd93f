// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package sanitize

import (
	"errors"
	"sort"
	"strings"
)

// FieldError describes a single rejected field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Reason
}

// Errors collects field errors for one request.
type Errors struct {
	fields map[string]string
}

// Add records err if it is a *FieldError; other errors are recorded under "_".
func (e *Errors) Add(err error) {
	if err == nil {
		return
	}
	if e.fields == nil {
		e.fields = make(map[string]string)
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		e.fields[fe.Field] = fe.Reason
		return
	}
	e.fields["_"] = err.Error()
}

// Require records a "is required" error when f holds no value.
func (e *Errors) Require(key string, f Field[string]) {
	if _, ok := f.Get(); !ok {
		e.Add(&FieldError{Field: key, Reason: "is required"})
	}
}

// Len returns the number of recorded errors.
func (e *Errors) Len() int { return len(e.fields) }

// Fields returns a copy of the recorded errors keyed by field name.
func (e *Errors) Fields() map[string]string {
	out := make(map[string]string, len(e.fields))
	for k, v := range e.fields {
		out[k] = v
	}
	return out
}

// Err returns e when any error was recorded, or nil.
func (e *Errors) Err() error {
	if e.Len() == 0 {
		return nil
	}
	return e
}

func (e *Errors) Error() string {
	keys := make([]string, 0, len(e.fields))
	for k := range e.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
