// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package fallback holds the built-in content served when the store is not
// configured, fails, or has no rows, and the policy that chooses between the
// two.
package fallback

import "context"

// Source tells where a read's records came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// Resolve applies the selection policy to one read:
// an unconfigured store, a failed fetch or an empty result yield the
// fallback records; anything else yields the live records. The two are never
// mixed. onError is called with fetch failures and may be nil.
func Resolve[T any](
	ctx context.Context,
	configured bool,
	fetch func(context.Context) ([]T, error),
	fallback func() []T,
	onError func(error),
) ([]T, Source) {
	if !configured {
		return fallback(), SourceFallback
	}

	items, err := fetch(ctx)
	if err != nil {
		if onError != nil {
			onError(err)
		}
		return fallback(), SourceFallback
	}
	if len(items) == 0 {
		return fallback(), SourceFallback
	}
	return items, SourceLive
}
