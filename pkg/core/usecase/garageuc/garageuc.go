// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package garageuc contains the garage UseCase which owns the in-memory
// car and service record containers and supports all record store use
// cases:
//  1. Registering a car,
//  2. Looking up a car with its service summary,
//  3. Booking a catalog service (planned and committed in two phases,
//     so a recent duplicate booking may be confirmed by the end-user),
//  4. Listing the service history of a car,
//  5. Computing the aggregate statistics snapshot.
//
// Every mutation triggers a full rewrite through the repo.Records port
// and is rolled back from memory if that rewrite fails, keeping the
// in-memory state consistent with the persisted files.
package garageuc

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/momeni/smartcar-care/pkg/core/cerr"
	"github.com/momeni/smartcar-care/pkg/core/log"
	"github.com/momeni/smartcar-care/pkg/core/model"
	"github.com/momeni/smartcar-care/pkg/core/repo"
	"github.com/shopspring/decimal"
)

// UseCase represents the garage record store. It holds the two record
// containers, the persistence port instance, and the use case specific
// settings. A UseCase instance expects a single caller and performs no
// synchronization, matching the single-operator nature of the tool.
type UseCase struct {
	records repo.Records

	cars     []model.Car
	services []model.ServiceRecord

	validate *validator.Validate
	now      func() time.Time

	duplicateWindowDays int
	recentWindowDays    int
}

// New instantiates a garage use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(r repo.Records, opts ...Option) (*UseCase, error) {
	uc := &UseCase{records: r, validate: validator.New()}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.duplicateWindowDays == 0 {
		uc.duplicateWindowDays = 30
	}
	if uc.recentWindowDays == 0 {
		uc.recentWindowDays = 7
	}
	return uc, nil
}

// Load replaces both in-memory containers with the persisted records.
// It is supposed to be called once before the first operation. Errors
// of the storage adapter, such as a malformed data file, are reported
// (with their cerr kind preserved) instead of starting silently with
// an inconsistent state.
func (g *UseCase) Load(ctx context.Context) error {
	cars, services, err := g.records.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading persisted records: %w", err)
	}
	g.cars, g.services = cars, services
	log.Info(
		ctx, "records loaded",
		slog.Int("cars", len(cars)),
		slog.Int("services", len(services)),
	)
	return nil
}

// RegistrationParams carries the end-user provided parameters of one
// car registration operation. The CarNumber will be normalized before
// the format check, so a lower-case number is acceptable.
type RegistrationParams struct {
	OwnerName   string `validate:"required"`
	CarNumber   string `validate:"required"`
	ModelNumber string `validate:"required"`
	Make        string
	Year        int `validate:"omitempty,min=1000,max=9999"`
	Color       string
}

// RegisterCar use case validates the params format, ensures that no
// car with the same normalized number is registered yet, stores a new
// Car with the current date as its registration date, and persists
// both containers. The stored Car is returned.
// Reported errors carry the cerr.KindInvalidFormat kind for malformed
// parameters, the cerr.KindDuplicateCar kind for an already registered
// number, and the cerr.KindStorageWrite kind if persisting fails (in
// which case the registration is rolled back from memory too).
func (g *UseCase) RegisterCar(
	ctx context.Context, params RegistrationParams,
) (*model.Car, error) {
	if err := g.validate.Struct(params); err != nil {
		return nil, cerr.InvalidFormat(
			fmt.Errorf("registration params: %w", err),
		)
	}
	number := model.NormalizeCarNumber(params.CarNumber)
	if !model.ValidCarNumber(number) {
		return nil, cerr.InvalidFormat(
			fmt.Errorf("car number %q has an invalid format", params.CarNumber),
		)
	}
	if g.findCar(number) != nil {
		return nil, cerr.DuplicateCar(
			fmt.Errorf("car %s is already registered", number),
		)
	}
	car := model.Car{
		OwnerName:        params.OwnerName,
		RegistrationDate: g.today(),
		CarNumber:        number,
		ModelNumber:      params.ModelNumber,
		Make:             params.Make,
		Year:             params.Year,
		Color:            params.Color,
	}
	g.cars = append(g.cars, car)
	if err := g.saveAll(ctx); err != nil {
		g.cars = g.cars[:len(g.cars)-1]
		return nil, err
	}
	log.Info(
		ctx, "car registered",
		slog.String("car_number", car.CarNumber),
		log.Date("registration_date", car.RegistrationDate),
	)
	return &car, nil
}

// CarSummary couples a looked up car with the aggregate view of its
// service history.
type CarSummary struct {
	Car          model.Car
	ServiceCount int
	TotalSpend   decimal.Decimal
}

// LookupCar use case finds a car by its number, matching
// case-insensitively, and summarizes its service history. An error
// with the cerr.KindCarNotRegistered kind is reported if no car with
// the given number exists.
func (g *UseCase) LookupCar(number string) (*CarSummary, error) {
	normalized := model.NormalizeCarNumber(number)
	car := g.findCar(normalized)
	if car == nil {
		return nil, cerr.CarNotRegistered(
			fmt.Errorf("car %s is not registered", normalized),
		)
	}
	summary := &CarSummary{Car: *car, TotalSpend: decimal.Zero}
	for i := range g.services {
		if model.NormalizeCarNumber(g.services[i].CarNumber) != normalized {
			continue
		}
		summary.ServiceCount++
		summary.TotalSpend = summary.TotalSpend.Add(g.services[i].Price)
	}
	return summary, nil
}

// BookingPlan is a prepared, not yet committed, service booking. The
// plan carries the recent duplicate advisory information, so the
// caller can ask the end-user for a confirmation before committing.
// A plan is a pure value and preparing one does not mutate the store.
type BookingPlan struct {
	Car         model.Car
	ServiceType model.ServiceType

	// RecentCount counts the same-type services which were recorded
	// for the same car within the duplicate advisory window.
	RecentCount int
	// LastServiced is the most recent date among those counted
	// services, or the zero Date if RecentCount is zero.
	LastServiced model.Date
}

// DuplicateAdvisory reports whether committing the plan would repeat
// a service which was already recorded within the advisory window.
// This is a confirmation gate, not a blocking rule; the caller decides
// whether to proceed.
func (p *BookingPlan) DuplicateAdvisory() bool {
	return p.RecentCount > 0
}

// PlanService use case prepares a booking of the index-th catalog
// entry (0-based) for the given car. An error is reported with the
// cerr.KindCarNotRegistered kind if the car number is unknown and with
// the cerr.KindInvalidServiceSelection kind if index falls out of the
// catalog bounds. Otherwise, the returned plan carries the duplicate
// advisory computed over the configured window (a same-day record has
// age zero and the window upper boundary is exclusive).
func (g *UseCase) PlanService(number string, index int) (*BookingPlan, error) {
	normalized := model.NormalizeCarNumber(number)
	car := g.findCar(normalized)
	if car == nil {
		return nil, cerr.CarNotRegistered(
			fmt.Errorf("car %s is not registered", normalized),
		)
	}
	catalog := model.Catalog()
	if index < 0 || index >= len(catalog) {
		return nil, cerr.InvalidServiceSelection(
			fmt.Errorf(
				"service selection %d is out of the 1..%d range",
				index+1, len(catalog),
			),
		)
	}
	plan := &BookingPlan{Car: *car, ServiceType: catalog[index]}
	today := g.today()
	for i := range g.services {
		s := &g.services[i]
		if model.NormalizeCarNumber(s.CarNumber) != normalized ||
			s.ServiceType != plan.ServiceType.Name {
			continue
		}
		age := today.DaysSince(s.ServiceDate)
		if age < 0 || age >= g.duplicateWindowDays {
			continue
		}
		plan.RecentCount++
		if plan.LastServiced.IsZero() || s.ServiceDate.After(plan.LastServiced) {
			plan.LastServiced = s.ServiceDate
		}
	}
	return plan, nil
}

// CommitService use case stores the planned booking as a new service
// record, dated today, with the catalog price and the default
// completed status, and persists both containers. The stored record
// is returned. If persisting fails, the record is rolled back from
// memory and an error with the cerr.KindStorageWrite kind is reported.
func (g *UseCase) CommitService(
	ctx context.Context, plan *BookingPlan, notes string,
) (*model.ServiceRecord, error) {
	record := model.ServiceRecord{
		ID:          uuid.New(),
		ServiceType: plan.ServiceType.Name,
		ServiceDate: g.today(),
		CarNumber:   plan.Car.CarNumber,
		ModelNumber: plan.Car.ModelNumber,
		Price:       plan.ServiceType.Price,
		Status:      model.StatusCompleted,
		Notes:       notes,
	}
	g.services = append(g.services, record)
	if err := g.saveAll(ctx); err != nil {
		g.services = g.services[:len(g.services)-1]
		return nil, err
	}
	log.Info(
		ctx, "service booked",
		slog.String("car_number", record.CarNumber),
		slog.String("service_type", record.ServiceType),
		log.Money("price", record.Price),
	)
	return &record, nil
}

// History is the service history view of one car.
type History struct {
	// Records are sorted by their service date, most recent first.
	// Records with equal dates keep their original insertion order.
	Records []model.ServiceRecord
	// TotalSpend is the exact sum of the listed record prices.
	TotalSpend decimal.Decimal
}

// ServiceHistory use case filters the service records of the given
// car, matching the number case-insensitively. An unknown car number
// simply yields an empty history since history records, not cars, are
// being queried here.
func (g *UseCase) ServiceHistory(number string) *History {
	normalized := model.NormalizeCarNumber(number)
	history := &History{TotalSpend: decimal.Zero}
	for i := range g.services {
		if model.NormalizeCarNumber(g.services[i].CarNumber) != normalized {
			continue
		}
		history.Records = append(history.Records, g.services[i])
		history.TotalSpend = history.TotalSpend.Add(g.services[i].Price)
	}
	sort.SliceStable(history.Records, func(i, j int) bool {
		return history.Records[i].ServiceDate.After(history.Records[j].ServiceDate)
	})
	return history
}

// today converts the current clock instant to a calendar date.
func (g *UseCase) today() model.Date {
	return model.DateOf(g.now())
}

// findCar performs a linear scan for the car with the given normalized
// number. At most one such car can exist by the uniqueness invariant
// which is enforced by RegisterCar.
func (g *UseCase) findCar(normalized string) *model.Car {
	for i := range g.cars {
		if model.NormalizeCarNumber(g.cars[i].CarNumber) == normalized {
			return &g.cars[i]
		}
	}
	return nil
}

// saveAll rewrites both containers through the persistence port. The
// two containers are saved independently, so a crash in between can
// leave them mutually inconsistent; an accepted limitation for this
// single-operator tool.
func (g *UseCase) saveAll(ctx context.Context) error {
	if err := g.records.SaveAll(ctx, g.cars, g.services); err != nil {
		log.Error(ctx, "persisting records failed", log.Err("error", err))
		return fmt.Errorf("persisting records: %w", err)
	}
	return nil
}
