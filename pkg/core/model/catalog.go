// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"github.com/shopspring/decimal"
)

// ServiceType is one entry of the fixed service catalog, carrying the
// offered service name and its fixed price. Prices are exact decimal
// values with two-decimal cents precision, so repeatedly summing them
// (e.g., for the total revenue statistic) cannot drift the way binary
// floating point arithmetic would.
type ServiceType struct {
	Name  string
	Price decimal.Decimal
}

// catalog is the fixed ordered list of offered services. The catalog
// iteration order is observable: services are presented to end-users
// with their 1-based position in this list and statistics tie-breaks
// follow this order too, so entries must not be reordered.
var catalog = []ServiceType{
	{Name: "Car Wash", Price: decimal.New(2500, -2)},
	{Name: "Car Paint", Price: decimal.New(15000, -2)},
	{Name: "Oil Change", Price: decimal.New(4500, -2)},
	{Name: "Tire Rotation", Price: decimal.New(3000, -2)},
	{Name: "Brake Inspection", Price: decimal.New(6000, -2)},
	{Name: "Engine Tune-Up", Price: decimal.New(12000, -2)},
}

// Catalog returns the fixed ordered service catalog. A fresh slice is
// returned on each call, so callers may not mutate the catalog which
// is read-only at runtime.
func Catalog() []ServiceType {
	c := make([]ServiceType, len(catalog))
	copy(c, catalog)
	return c
}

// CatalogSize returns the number of the offered service types.
func CatalogSize() int {
	return len(catalog)
}
