// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"math"
	"strconv"
	"strings"
)

// StringPtr returns the trimmed string in column, or nil when the column is
// absent, null, blank or not a string.
func (r Row) StringPtr(column string) *string {
	s, ok := r[column].(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// String is StringPtr with "" for missing values.
func (r Row) String(column string) string {
	if p := r.StringPtr(column); p != nil {
		return *p
	}
	return ""
}

// Bool returns the boolean in column, or def when it is absent or not a bool.
func (r Row) Bool(column string, def bool) bool {
	if b, ok := r[column].(bool); ok {
		return b
	}
	return def
}

// Int returns the integer in column, or 0 when it cannot be read as one.
func (r Row) Int(column string) int {
	switch n := r[column].(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		if n == math.Trunc(n) {
			return int(n)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return 0
}
