// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// serialization tags since adding more tags does not complicate the
// definition of a struct, but can prevent unnecessary structs
// duplication in the adapters layer.
package model

import (
	"strings"
	"unicode"
)

// Car models a registered vehicle. Cars are keyed by their normalized
// CarNumber and at most one Car per normalized number may exist in the
// record store. A Car is never mutated after its creation and there is
// no deletion operation, so the RegistrationDate is effectively
// immutable too.
type Car struct {
	OwnerName        string `json:"owner_name"`        // name of the registering operator
	RegistrationDate Date   `json:"registration_date"` // date of the registration operation
	CarNumber        string `json:"car_number"`        // normalized unique plate number
	ModelNumber      string `json:"model_number"`      // vehicle model
	Make             string `json:"make,omitempty"`    // optional manufacturer name
	Year             int    `json:"year,omitempty"`    // optional 4-digit year, zero if absent
	Color            string `json:"color,omitempty"`   // optional color
}

// NormalizeCarNumber maps a user-provided car number to its canonical
// form, trimming the surrounding whitespaces and folding the letters
// case to upper-case. Uniqueness of cars and all lookup operations are
// defined over this normalized form, hence, lookups are effectively
// case-insensitive.
func NormalizeCarNumber(number string) string {
	return strings.ToUpper(strings.TrimSpace(number))
}

// ValidCarNumber reports whether number has an acceptable car number
// format, that is, it contains at least three characters and consists
// of letters and digits solely, ignoring any dash or space separators.
// A number which is all separators is not acceptable.
func ValidCarNumber(number string) bool {
	if len(number) < 3 {
		return false
	}
	stripped := strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, number)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
