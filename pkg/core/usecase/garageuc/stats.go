// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package garageuc

import (
	"sort"

	"github.com/momeni/smartcar-care/pkg/core/model"
	"github.com/shopspring/decimal"
)

// Statistics is the aggregate snapshot over all stored records.
type Statistics struct {
	TotalCars     int
	TotalServices int
	// TotalRevenue is the exact sum of all stored record prices.
	TotalRevenue decimal.Decimal
	// MostPopularService names the service type with the highest
	// record count, or is empty when no services are stored. When two
	// types tie, the first one in the catalog iteration order wins;
	// types which are absent from the catalog (possible with manually
	// edited data files) are considered after all catalog entries, in
	// lexical order.
	MostPopularService string
	// MostPopularCount is the record count of MostPopularService.
	MostPopularCount int
	// RecentServices counts the records whose service date age is
	// within the recent window (7 days by default), inclusive.
	RecentServices int
}

// Statistics use case computes the aggregate snapshot over the whole
// record store. It never fails as it queries the in-memory containers
// solely.
func (g *UseCase) Statistics() Statistics {
	st := Statistics{
		TotalCars:     len(g.cars),
		TotalServices: len(g.services),
		TotalRevenue:  decimal.Zero,
	}
	counts := make(map[string]int, model.CatalogSize())
	today := g.today()
	for i := range g.services {
		s := &g.services[i]
		st.TotalRevenue = st.TotalRevenue.Add(s.Price)
		counts[s.ServiceType]++
		if age := today.DaysSince(s.ServiceDate); age >= 0 && age <= g.recentWindowDays {
			st.RecentServices++
		}
	}
	for _, t := range model.Catalog() {
		if c := counts[t.Name]; c > st.MostPopularCount {
			st.MostPopularService, st.MostPopularCount = t.Name, c
		}
		delete(counts, t.Name)
	}
	extra := make([]string, 0, len(counts))
	for name := range counts {
		extra = append(extra, name)
	}
	sort.Strings(extra)
	for _, name := range extra {
		if c := counts[name]; c > st.MostPopularCount {
			st.MostPopularService, st.MostPopularCount = name, c
		}
	}
	return st
}
