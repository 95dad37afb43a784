// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package garageuc

import (
	"errors"
	"fmt"
	"time"
)

// Option is a functional option for the garage use case.
type Option func(uc *UseCase) error

// WithClock option configures a garage UseCase instance in order to
// take the current time from the given function instead of time.Now,
// so tests may control the dates of registrations and bookings.
// This option may be passed to the New() function.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("clock is nil")
		}
		if uc.now != nil {
			return errors.New("clock is already configured")
		}
		uc.now = now
		return nil
	}
}

// WithDuplicateWindowDays option configures how many days after a
// booking a repeated same-type booking for the same car raises the
// duplicate advisory. The window upper boundary is exclusive, so the
// default 30 days window covers the record ages 0 through 29.
// This option may be passed to the New() function.
func WithDuplicateWindowDays(days int) Option {
	return func(uc *UseCase) error {
		if days <= 0 {
			return fmt.Errorf("duplicate window (%d days) is not positive", days)
		}
		if uc.duplicateWindowDays != 0 {
			return errors.New("duplicate window is already configured")
		}
		uc.duplicateWindowDays = days
		return nil
	}
}

// WithRecentWindowDays option configures how many days old a service
// record may be while still being counted as a recent service by the
// Statistics use case. This boundary is inclusive, so the default 7
// days window covers the record ages 0 through 7.
// This option may be passed to the New() function.
func WithRecentWindowDays(days int) Option {
	return func(uc *UseCase) error {
		if days <= 0 {
			return fmt.Errorf("recent window (%d days) is not positive", days)
		}
		if uc.recentWindowDays != 0 {
			return errors.New("recent window is already configured")
		}
		uc.recentWindowDays = days
		return nil
	}
}
