// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/smartcar-care/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := model.ParseDate("2025-08-29")
	require.NoError(t, err)
	assert.Equal(t, "2025-08-29", d.String())

	for _, malformed := range []string{
		"", "2025-8-29", "29-08-2025", "2025-08-29T10:00:00Z", "today",
	} {
		_, err := model.ParseDate(malformed)
		assert.Error(t, err, "value %q", malformed)
	}
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	late := time.Date(2025, 8, 29, 23, 59, 59, 0, loc)
	early := time.Date(2025, 8, 29, 0, 0, 1, 0, loc)
	assert.True(t, model.DateOf(late).Equal(model.DateOf(early)))
	assert.Equal(t, 0, model.DateOf(late).DaysSince(model.DateOf(early)))
}

func TestDaysSince(t *testing.T) {
	day := func(value string) model.Date {
		d, err := model.ParseDate(value)
		require.NoError(t, err)
		return d
	}
	today := day("2025-08-29")
	for _, tc := range []struct {
		other string
		days  int
	}{
		{"2025-08-29", 0},
		{"2025-08-28", 1},
		{"2025-08-22", 7},
		{"2025-07-30", 30},
		{"2024-08-29", 365},
		{"2025-08-30", -1},
	} {
		assert.Equal(t, tc.days, today.DaysSince(day(tc.other)), "other %s", tc.other)
	}
}

func TestDateOrdering(t *testing.T) {
	older, err := model.ParseDate("2025-01-02")
	require.NoError(t, err)
	newer, err := model.ParseDate("2025-01-03")
	require.NoError(t, err)
	assert.True(t, older.Before(newer))
	assert.True(t, newer.After(older))
	assert.False(t, older.Equal(newer))
	assert.True(t, older.IsZero() == false)
	assert.True(t, model.Date{}.IsZero())
}

func TestDateJSONRoundTrip(t *testing.T) {
	d, err := model.ParseDate("2025-08-29")
	require.NoError(t, err)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2025-08-29"`, string(data))
	var back model.Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, d.Equal(back))

	var bad model.Date
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`"29/08/2025"`), &bad))
}

func ExampleDate() {
	d, _ := model.ParseDate("2025-08-29")
	b, _ := json.Marshal(struct {
		ServiceDate model.Date `json:"service_date"`
	}{ServiceDate: d})
	fmt.Println(string(b))
	// Output:
	// {"service_date":"2025-08-29"}
}
