// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package sanitize

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	tests := []struct {
		name      string
		input     any
		wantState string
		wantValue string
	}{
		{name: "blank string", input: "  ", wantState: "null"},
		{name: "empty string", input: "", wantState: "null"},
		{name: "nil", input: nil, wantState: "null"},
		{name: "trailing space", input: "hi ", wantState: "value", wantValue: "hi"},
		{name: "inner spaces kept", input: "  a  b ", wantState: "value", wantValue: "a  b"},
		{name: "number", input: 42.0, wantState: "omitted"},
		{name: "bool", input: true, wantState: "omitted"},
		{name: "object", input: map[string]any{"a": 1}, wantState: "omitted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Text(tt.input)
			switch tt.wantState {
			case "null":
				assert.True(t, got.IsNull())
			case "omitted":
				assert.True(t, got.IsOmitted())
			case "value":
				v, ok := got.Get()
				require.True(t, ok)
				assert.Equal(t, tt.wantValue, v)
			}
		})
	}
}

func TestTextField_AbsentKeyIsNoChange(t *testing.T) {
	m := map[string]any{"title": "x"}

	got := TextField(m, "subtitle")
	assert.True(t, got.IsOmitted())
	assert.False(t, got.IsNull())
	assert.False(t, got.IsSet())

	// explicit null differs from absence
	m["subtitle"] = nil
	got = TextField(m, "subtitle")
	assert.True(t, got.IsNull())
	assert.True(t, got.IsSet())
}

func TestBoolField(t *testing.T) {
	m := map[string]any{"yes": true, "no": false, "str": "true", "num": 1.0, "null": nil}

	f, err := BoolField(m, "yes")
	require.NoError(t, err)
	assert.Equal(t, true, f.Or(false))

	f, err = BoolField(m, "no")
	require.NoError(t, err)
	v, ok := f.Get()
	assert.True(t, ok)
	assert.False(t, v)

	f, err = BoolField(m, "missing")
	require.NoError(t, err)
	assert.True(t, f.IsOmitted())

	for _, key := range []string{"str", "num", "null"} {
		_, err := BoolField(m, key)
		var fe *FieldError
		require.True(t, errors.As(err, &fe), "key %s", key)
		assert.Equal(t, key, fe.Field)
	}
}

func TestIntField(t *testing.T) {
	m := map[string]any{
		"float":    3.0,
		"fraction": 2.5,
		"string":   " 7 ",
		"garbage":  "abc",
		"number":   json.Number("12"),
		"null":     nil,
	}

	assert.Equal(t, 3, IntField(m, "float", 0).Or(-1))
	assert.Equal(t, 0, IntField(m, "fraction", 0).Or(-1))
	assert.Equal(t, 7, IntField(m, "string", 0).Or(-1))
	assert.Equal(t, 0, IntField(m, "garbage", 0).Or(-1))
	assert.Equal(t, 12, IntField(m, "number", 0).Or(-1))
	assert.Equal(t, 0, IntField(m, "null", 0).Or(-1))
	assert.True(t, IntField(m, "missing", 0).IsOmitted())
}

func TestFieldPtrAndAny(t *testing.T) {
	assert.Nil(t, Omit[string]().Ptr())
	assert.Nil(t, Null[string]().Ptr())
	p := Value("x").Ptr()
	require.NotNil(t, p)
	assert.Equal(t, "x", *p)

	assert.Nil(t, Null[string]().Any())
	assert.Equal(t, "x", Value("x").Any())
}

func TestErrors(t *testing.T) {
	var errs Errors
	assert.NoError(t, errs.Err())

	errs.Require("title", Null[string]())
	errs.Require("name", Value("ok"))
	errs.Add(&FieldError{Field: "is_active", Reason: "must be a boolean"})
	errs.Add(nil)

	require.Error(t, errs.Err())
	assert.Equal(t, 2, errs.Len())
	assert.Equal(t, map[string]string{
		"title":     "is required",
		"is_active": "must be a boolean",
	}, errs.Fields())
	assert.Equal(t, "validation failed: is_active must be a boolean; title is required", errs.Error())
}
