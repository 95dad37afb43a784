// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package garageuc_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/momeni/smartcar-care/pkg/core/cerr"
	"github.com/momeni/smartcar-care/pkg/core/model"
	"github.com/momeni/smartcar-care/pkg/core/usecase/garageuc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// fakeRecords implements repo.Records in memory, recording the number
// of SaveAll calls and the last saved snapshot, with injectable
// failures.
type fakeRecords struct {
	cars     []model.Car
	services []model.ServiceRecord
	saves    int
	loadErr  error
	saveErr  error
}

func (f *fakeRecords) Load(context.Context) (
	[]model.Car, []model.ServiceRecord, error,
) {
	if f.loadErr != nil {
		return nil, nil, f.loadErr
	}
	cars := append([]model.Car(nil), f.cars...)
	services := append([]model.ServiceRecord(nil), f.services...)
	return cars, services, nil
}

func (f *fakeRecords) SaveAll(
	_ context.Context, cars []model.Car, services []model.ServiceRecord,
) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.cars = append([]model.Car(nil), cars...)
	f.services = append([]model.ServiceRecord(nil), services...)
	f.saves++
	return nil
}

type GarageTestSuite struct {
	suite.Suite

	Ctx     context.Context
	Records *fakeRecords
	Garage  *garageuc.UseCase
	Now     time.Time
}

func TestGarageTestSuite(t *testing.T) {
	suite.Run(t, &GarageTestSuite{})
}

func (gts *GarageTestSuite) SetupTest() {
	gts.Ctx = context.Background()
	gts.Records = &fakeRecords{}
	gts.Now = time.Date(2025, 8, 29, 15, 4, 5, 0, time.UTC)
	garage, err := garageuc.New(
		gts.Records,
		garageuc.WithClock(func() time.Time { return gts.Now }),
	)
	gts.Require().NoError(err, "cannot instantiate garage use case")
	gts.Require().NoError(garage.Load(gts.Ctx))
	gts.Garage = garage
}

// register is a helper registering a car with the given number and
// reasonable defaults for the rest of the parameters.
func (gts *GarageTestSuite) register(number string) *model.Car {
	car, err := gts.Garage.RegisterCar(gts.Ctx, garageuc.RegistrationParams{
		OwnerName:   "Sam",
		CarNumber:   number,
		ModelNumber: "Corolla",
	})
	gts.Require().NoError(err)
	return car
}

// book is a helper booking the index-th catalog service without
// caring about the duplicate advisory.
func (gts *GarageTestSuite) book(number string, index int) *model.ServiceRecord {
	plan, err := gts.Garage.PlanService(number, index)
	gts.Require().NoError(err)
	record, err := gts.Garage.CommitService(gts.Ctx, plan, "")
	gts.Require().NoError(err)
	return record
}

func (gts *GarageTestSuite) TestRegisterAndLookupCaseInsensitive() {
	car, err := gts.Garage.RegisterCar(gts.Ctx, garageuc.RegistrationParams{
		OwnerName:   "Sam",
		CarNumber:   "abc-1234",
		ModelNumber: "Corolla",
		Make:        "Toyota",
		Year:        2020,
		Color:       "Blue",
	})
	gts.Require().NoError(err)
	gts.Equal("ABC-1234", car.CarNumber, "number must be stored normalized")
	gts.Equal("2025-08-29", car.RegistrationDate.String())

	for _, number := range []string{"ABC-1234", "abc-1234", "  aBc-1234 "} {
		summary, err := gts.Garage.LookupCar(number)
		gts.Require().NoError(err, "lookup %q", number)
		gts.Equal(*car, summary.Car)
		gts.Zero(summary.ServiceCount)
	}
	gts.Equal(1, gts.Records.saves, "registration must persist records")
}

func (gts *GarageTestSuite) TestDuplicateRegistrationFails() {
	gts.register("ABC-1234")
	for _, number := range []string{"ABC-1234", "abc-1234", " abc-1234 "} {
		_, err := gts.Garage.RegisterCar(gts.Ctx, garageuc.RegistrationParams{
			OwnerName:   "Sam",
			CarNumber:   number,
			ModelNumber: "Corolla",
		})
		gts.Require().Error(err, "number %q", number)
		gts.Equal(cerr.KindDuplicateCar, cerr.KindOf(err))
	}
	gts.Len(gts.Records.cars, 1, "no duplicate may be stored")
	gts.Equal(1, gts.Records.saves, "failed registrations may not save")
}

func (gts *GarageTestSuite) TestInvalidRegistrationParams() {
	for _, params := range []garageuc.RegistrationParams{
		{OwnerName: "Sam", CarNumber: "AB", ModelNumber: "Corolla"},
		{OwnerName: "Sam", CarNumber: "A!C-12", ModelNumber: "Corolla"},
		{OwnerName: "Sam", CarNumber: "---", ModelNumber: "Corolla"},
		{OwnerName: "Sam", CarNumber: "", ModelNumber: "Corolla"},
		{OwnerName: "Sam", CarNumber: "ABC-1234", ModelNumber: ""},
		{OwnerName: "", CarNumber: "ABC-1234", ModelNumber: "Corolla"},
		{OwnerName: "Sam", CarNumber: "ABC-1234", ModelNumber: "Corolla", Year: 99},
	} {
		_, err := gts.Garage.RegisterCar(gts.Ctx, params)
		gts.Require().Error(err, "params %+v", params)
		gts.Equal(cerr.KindInvalidFormat, cerr.KindOf(err))
	}
	gts.Empty(gts.Records.cars)
	gts.Zero(gts.Records.saves)
}

func (gts *GarageTestSuite) TestLookupUnknownCar() {
	_, err := gts.Garage.LookupCar("XYZ-0000")
	gts.Require().Error(err)
	gts.Equal(cerr.KindCarNotRegistered, cerr.KindOf(err))
}

func (gts *GarageTestSuite) TestBookServiceForUnregisteredCar() {
	_, err := gts.Garage.PlanService("XYZ-0000", 0)
	gts.Require().Error(err)
	gts.Equal(cerr.KindCarNotRegistered, cerr.KindOf(err))
	gts.Empty(gts.Records.services, "service container must stay unchanged")
	gts.Zero(gts.Records.saves)
}

func (gts *GarageTestSuite) TestInvalidServiceSelection() {
	gts.register("ABC-1234")
	for _, index := range []int{-1, model.CatalogSize(), 100} {
		_, err := gts.Garage.PlanService("ABC-1234", index)
		gts.Require().Error(err, "index %d", index)
		gts.Equal(cerr.KindInvalidServiceSelection, cerr.KindOf(err))
	}
}

func (gts *GarageTestSuite) TestBookServiceRecordFields() {
	gts.register("ABC-1234")
	record := gts.book("abc-1234", 2) // Oil Change
	gts.Equal("Oil Change", record.ServiceType)
	gts.Equal("ABC-1234", record.CarNumber)
	gts.Equal("Corolla", record.ModelNumber, "model must be denormalized")
	gts.Equal("45.00", record.Price.StringFixed(2))
	gts.Equal(model.StatusCompleted, record.Status)
	gts.Equal("2025-08-29", record.ServiceDate.String())
	gts.NotZero(record.ID)
	gts.Equal(2, gts.Records.saves, "booking must persist records")
}

func (gts *GarageTestSuite) TestDuplicateAdvisoryWindow() {
	gts.register("ABC-1234")
	gts.book("ABC-1234", 2)

	// same day: advisory (age 0)
	plan, err := gts.Garage.PlanService("ABC-1234", 2)
	gts.Require().NoError(err)
	gts.True(plan.DuplicateAdvisory())
	gts.Equal(1, plan.RecentCount)
	gts.Equal("2025-08-29", plan.LastServiced.String())

	// another type: no advisory
	plan, err = gts.Garage.PlanService("ABC-1234", 0)
	gts.Require().NoError(err)
	gts.False(plan.DuplicateAdvisory())

	// confirming the advisory proceeds to store a second record
	plan, err = gts.Garage.PlanService("ABC-1234", 2)
	gts.Require().NoError(err)
	_, err = gts.Garage.CommitService(gts.Ctx, plan, "customer insisted")
	gts.Require().NoError(err)
	gts.Len(gts.Records.services, 2)

	// 29 days later the advisory still holds, 30 days later it expires
	gts.Now = gts.Now.AddDate(0, 0, 29)
	plan, err = gts.Garage.PlanService("ABC-1234", 2)
	gts.Require().NoError(err)
	gts.True(plan.DuplicateAdvisory(), "age 29 falls inside the window")

	gts.Now = gts.Now.AddDate(0, 0, 1)
	plan, err = gts.Garage.PlanService("ABC-1234", 2)
	gts.Require().NoError(err)
	gts.False(plan.DuplicateAdvisory(), "age 30 falls outside the window")
}

func (gts *GarageTestSuite) TestDecliningAdvisoryLeavesOneRecord() {
	gts.register("ABC-1234")
	gts.book("ABC-1234", 2)
	plan, err := gts.Garage.PlanService("ABC-1234", 2)
	gts.Require().NoError(err)
	gts.True(plan.DuplicateAdvisory())
	// the caller declines, so no commit happens
	gts.Len(gts.Records.services, 1)
	history := gts.Garage.ServiceHistory("ABC-1234")
	gts.Len(history.Records, 1)
}

func (gts *GarageTestSuite) TestServiceHistoryOrdering() {
	base := gts.Now
	gts.register("ABC-1234")

	gts.Now = base.AddDate(0, 0, -40)
	gts.book("ABC-1234", 0)
	gts.Now = base.AddDate(0, 0, -10)
	gts.book("ABC-1234", 1)
	gts.Now = base.AddDate(0, 0, -5)
	gts.book("ABC-1234", 2)
	gts.Now = base

	history := gts.Garage.ServiceHistory("abc-1234")
	gts.Require().Len(history.Records, 3)
	gts.Equal("Oil Change", history.Records[0].ServiceType, "5 days ago first")
	gts.Equal("Car Paint", history.Records[1].ServiceType, "10 days ago second")
	gts.Equal("Car Wash", history.Records[2].ServiceType, "40 days ago last")
}

func (gts *GarageTestSuite) TestServiceHistoryStableOnEqualDates() {
	gts.register("ABC-1234")
	first := gts.book("ABC-1234", 0)
	second := gts.book("ABC-1234", 1)
	third := gts.book("ABC-1234", 2)
	history := gts.Garage.ServiceHistory("ABC-1234")
	gts.Require().Len(history.Records, 3)
	gts.Equal(first.ID, history.Records[0].ID)
	gts.Equal(second.ID, history.Records[1].ID)
	gts.Equal(third.ID, history.Records[2].ID)
}

func (gts *GarageTestSuite) TestServiceHistoryOfUnknownCarIsEmpty() {
	history := gts.Garage.ServiceHistory("XYZ-0000")
	gts.Empty(history.Records)
	gts.True(history.TotalSpend.IsZero())
}

func (gts *GarageTestSuite) TestLookupSummarizesSpending() {
	gts.register("ABC-1234")
	gts.register("DEF-5678")
	gts.book("ABC-1234", 2) // 45.00
	gts.book("ABC-1234", 0) // 25.00
	gts.book("DEF-5678", 1) // 150.00

	summary, err := gts.Garage.LookupCar("ABC-1234")
	gts.Require().NoError(err)
	gts.Equal(2, summary.ServiceCount)
	gts.Equal("70.00", summary.TotalSpend.StringFixed(2))
}

func (gts *GarageTestSuite) TestRevenueIsExact() {
	gts.register("ABC-1234")
	for i := 0; i < 3; i++ {
		gts.book("ABC-1234", 2) // Oil Change, 45.00 each
	}
	st := gts.Garage.Statistics()
	gts.True(
		st.TotalRevenue.Equal(decimal.RequireFromString("135")),
		"3 x 45.00 must sum to exactly 135, got %s", st.TotalRevenue,
	)
	gts.Equal("135.00", st.TotalRevenue.StringFixed(2))
}

func (gts *GarageTestSuite) TestStatisticsSnapshot() {
	gts.register("ABC-1234")
	gts.register("DEF-5678")
	base := gts.Now

	gts.Now = base.AddDate(0, 0, -8) // outside the 7 days window
	gts.book("ABC-1234", 1)          // Car Paint
	gts.Now = base.AddDate(0, 0, -7) // still inside, boundary inclusive
	gts.book("ABC-1234", 2)          // Oil Change
	gts.Now = base
	gts.book("DEF-5678", 2) // Oil Change

	st := gts.Garage.Statistics()
	gts.Equal(2, st.TotalCars)
	gts.Equal(3, st.TotalServices)
	gts.Equal("240.00", st.TotalRevenue.StringFixed(2))
	gts.Equal("Oil Change", st.MostPopularService)
	gts.Equal(2, st.MostPopularCount)
	gts.Equal(2, st.RecentServices)
}

func (gts *GarageTestSuite) TestMostPopularTieBreaksInCatalogOrder() {
	gts.register("ABC-1234")
	gts.book("ABC-1234", 1) // Car Paint booked first
	gts.book("ABC-1234", 0) // Car Wash ties with one booking each
	st := gts.Garage.Statistics()
	gts.Equal("Car Wash", st.MostPopularService, "catalog order wins the tie")
	gts.Equal(1, st.MostPopularCount)
}

func (gts *GarageTestSuite) TestEmptyStatistics() {
	st := gts.Garage.Statistics()
	gts.Zero(st.TotalCars)
	gts.Zero(st.TotalServices)
	gts.True(st.TotalRevenue.IsZero())
	gts.Empty(st.MostPopularService)
	gts.Zero(st.RecentServices)
}

func (gts *GarageTestSuite) TestFailedSaveRollsBackRegistration() {
	gts.Records.saveErr = cerr.StorageWrite(errors.New("disk full"))
	_, err := gts.Garage.RegisterCar(gts.Ctx, garageuc.RegistrationParams{
		OwnerName:   "Sam",
		CarNumber:   "ABC-1234",
		ModelNumber: "Corolla",
	})
	gts.Require().Error(err)
	gts.Equal(cerr.KindStorageWrite, cerr.KindOf(err))

	// memory was rolled back, so the same number registers cleanly
	// once the storage recovers
	gts.Records.saveErr = nil
	gts.register("ABC-1234")
	gts.Len(gts.Records.cars, 1)
}

func (gts *GarageTestSuite) TestFailedSaveRollsBackBooking() {
	gts.register("ABC-1234")
	plan, err := gts.Garage.PlanService("ABC-1234", 2)
	gts.Require().NoError(err)
	gts.Records.saveErr = cerr.StorageWrite(errors.New("disk full"))
	_, err = gts.Garage.CommitService(gts.Ctx, plan, "")
	gts.Require().Error(err)
	gts.Equal(cerr.KindStorageWrite, cerr.KindOf(err))

	gts.Empty(gts.Garage.ServiceHistory("ABC-1234").Records)
	st := gts.Garage.Statistics()
	gts.Zero(st.TotalServices)
}

func (gts *GarageTestSuite) TestLoadPullsPersistedRecords() {
	gts.register("ABC-1234")
	gts.book("ABC-1234", 2)

	garage, err := garageuc.New(
		gts.Records,
		garageuc.WithClock(func() time.Time { return gts.Now }),
	)
	gts.Require().NoError(err)
	gts.Require().NoError(garage.Load(gts.Ctx))
	summary, err := garage.LookupCar("abc-1234")
	gts.Require().NoError(err)
	gts.Equal(1, summary.ServiceCount)
	gts.Equal("45.00", summary.TotalSpend.StringFixed(2))
}

func (gts *GarageTestSuite) TestLoadReportsStorageErrors() {
	gts.Records.loadErr = cerr.StorageRead(errors.New("corrupt file"))
	garage, err := garageuc.New(gts.Records)
	gts.Require().NoError(err)
	err = garage.Load(gts.Ctx)
	gts.Require().Error(err)
	gts.Equal(cerr.KindStorageRead, cerr.KindOf(err))
}

func TestInvalidOptions(t *testing.T) {
	records := &fakeRecords{}
	for name, opts := range map[string][]garageuc.Option{
		"nil clock":       {garageuc.WithClock(nil)},
		"repeated clock":  {garageuc.WithClock(time.Now), garageuc.WithClock(time.Now)},
		"zero window":     {garageuc.WithDuplicateWindowDays(0)},
		"negative window": {garageuc.WithRecentWindowDays(-7)},
		"repeated window": {garageuc.WithDuplicateWindowDays(10), garageuc.WithDuplicateWindowDays(20)},
	} {
		if _, err := garageuc.New(records, opts...); err == nil {
			t.Errorf("%s: an error was expected", name)
		}
	}
}
