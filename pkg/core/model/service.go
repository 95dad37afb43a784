// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatusCompleted is the default status of a newly booked service.
// No other status is produced by the current booking operation, but
// the field is persisted so externally edited data files may carry
// other values without being rejected.
const StatusCompleted = "Completed"

// ServiceRecord models one service event which was booked for a
// registered car. The ModelNumber and Price fields are denormalized
// copies, taken from the referenced Car and from the service catalog
// respectively at the creation time, and they are not recomputed
// later. A ServiceRecord is never mutated or deleted after creation.
// The CarNumber field references an existing Car which is checked at
// the creation time only, as there is no car deletion operation which
// could orphan a record afterwards.
type ServiceRecord struct {
	ID          uuid.UUID       `json:"id"`              // unique record identifier
	ServiceType string          `json:"service_type"`    // catalog entry name
	ServiceDate Date            `json:"service_date"`    // date of the booking operation
	CarNumber   string          `json:"car_number"`      // normalized number of the serviced car
	ModelNumber string          `json:"model_number"`    // copied from the referenced Car
	Price       decimal.Decimal `json:"price"`           // copied from the catalog entry
	Status      string          `json:"status"`          // see StatusCompleted
	Notes       string          `json:"notes,omitempty"` // optional free text
}
