// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"sort"

	"github.com/olegiv/assoc-site/internal/store"
)

// DefaultMaxAttempts bounds a single Mutate call.
const DefaultMaxAttempts = 8

// Action is what a drift rule does to the offending column.
type Action uint8

const (
	// Drop removes the column from the payload.
	Drop Action = iota + 1
	// Rename moves the value to RenameTo. If the payload already carries
	// RenameTo, the column is dropped instead.
	Rename
)

// DriftRule rewrites a payload when the store rejects Column as unknown.
type DriftRule struct {
	Column   string
	Action   Action
	RenameTo string
}

// EventRules are the rewrites applied to event payloads.
var EventRules = []DriftRule{
	{Column: ColRegistrationURL, Action: Drop},
	{Column: ColUpdatedAt, Action: Drop},
	{Column: ColContactEmail, Action: Drop},
	{Column: ColIsActive, Action: Drop},
	{Column: ColEventDate, Action: Rename, RenameTo: ColLegacyDate},
	{Column: ColLegacyDate, Action: Rename, RenameTo: ColEventDate},
}

// unknownColumn matches the "unknown column" wording of SQLite, MySQL,
// Postgres and PostgREST.
var unknownColumn = regexp.MustCompile(`(?i)(no such column|has no column named|unknown column|could not find the .* column|column .* does not exist)`)

// Report describes how a payload was persisted.
type Report struct {
	Attempts  int               `json:"attempts"`
	Persisted []string          `json:"persisted_fields"`
	Dropped   []string          `json:"dropped_fields"`
	Renamed   map[string]string `json:"renamed_fields,omitempty"`
}

// Op performs one write with the given payload.
type Op func(ctx context.Context, payload store.Row) (store.Row, error)

// Reconciler retries writes the store rejects for unknown columns.
type Reconciler struct {
	rules       []compiledRule
	maxAttempts int
	logger      *slog.Logger
}

type compiledRule struct {
	DriftRule
	pattern *regexp.Regexp
}

// New creates a Reconciler for rules. A nil logger uses slog.Default.
func New(rules []DriftRule, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		compiled = append(compiled, compiledRule{
			DriftRule: r,
			pattern:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(r.Column) + `\b`),
		})
	}
	return &Reconciler{rules: compiled, maxAttempts: DefaultMaxAttempts, logger: logger}
}

// WithMaxAttempts returns a copy of r with a different attempt cap.
func (r *Reconciler) WithMaxAttempts(n int) *Reconciler {
	c := *r
	c.maxAttempts = n
	return &c
}

// Mutate runs op, rewriting payload and retrying while the store reports an
// unknown column covered by a rule. It stops on success, on any other error,
// when no rule applies, or when a payload would be attempted a second time;
// in the failing cases the last store error is returned.
func (r *Reconciler) Mutate(ctx context.Context, payload store.Row, op Op) (store.Row, Report, error) {
	current := payload.Clone()
	report := Report{Dropped: []string{}, Renamed: map[string]string{}}
	seen := map[string]bool{}

	for {
		seen[fingerprint(current)] = true
		report.Attempts++

		row, err := op(ctx, current)
		if err == nil {
			report.Persisted = current.Keys()
			sort.Strings(report.Dropped)
			return row, report, nil
		}

		if report.Attempts >= r.maxAttempts {
			return nil, report, err
		}

		rule, ok := r.match(err, current)
		if !ok {
			return nil, report, err
		}

		next := current.Clone()
		renamed := rule.Action == Rename && !next.Has(rule.RenameTo)
		if renamed {
			next[rule.RenameTo] = next[rule.Column]
		}
		delete(next, rule.Column)

		if seen[fingerprint(next)] {
			return nil, report, err
		}
		if renamed {
			report.Renamed[rule.Column] = rule.RenameTo
		} else {
			report.Dropped = append(report.Dropped, rule.Column)
		}

		r.logger.Info("store rejected column, retrying",
			"column", rule.Column,
			"attempt", report.Attempts,
			"error", err,
		)
		current = next
	}
}

// IsUnknownColumn reports whether err reads like an unknown-column failure.
func IsUnknownColumn(err error) bool {
	return err != nil && unknownColumn.MatchString(err.Error())
}

// match returns the first rule whose column the error names and the payload
// still carries.
func (r *Reconciler) match(err error, payload store.Row) (compiledRule, bool) {
	if !IsUnknownColumn(err) {
		return compiledRule{}, false
	}
	msg := err.Error()
	for _, rule := range r.rules {
		if payload.Has(rule.Column) && rule.pattern.MatchString(msg) {
			return rule, true
		}
	}
	return compiledRule{}, false
}

// fingerprint is a structural key for a payload. encoding/json sorts map keys.
func fingerprint(payload store.Row) string {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%v", payload)
	}
	return string(b)
}
