// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package reconcile

import (
	"github.com/olegiv/assoc-site/internal/model"
	"github.com/olegiv/assoc-site/internal/sanitize"
	"github.com/olegiv/assoc-site/internal/store"
)

// EventPatch builds the minimal write payload for in: only fields the caller
// mentioned are included. A registration value is split so that exactly one
// of contact_email and registration_url is set and the other is null.
func EventPatch(in model.EventInput) store.Row {
	patch := store.Row{}
	putText(patch, "title", in.Title)
	putText(patch, "description", in.Description)
	putText(patch, "location", in.Location)
	putText(patch, "image_url", in.ImageURL)
	putText(patch, ColEventDate, in.EventDate)

	if in.RegistrationURL.IsSet() {
		var reg Registration
		if v, ok := in.RegistrationURL.Get(); ok {
			reg = ParseRegistration(v)
		}
		patch[ColContactEmail], patch[ColRegistrationURL] = reg.columns()
	}

	if in.IsActive.IsSet() {
		patch[ColIsActive] = in.IsActive.Any()
	}
	return patch
}

func putText(patch store.Row, column string, f sanitize.Field[string]) {
	if f.IsSet() {
		patch[column] = f.Any()
	}
}
