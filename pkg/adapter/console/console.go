// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package console adapts the garage use cases to an interactive
// terminal session with a numbered menu. The session owns no record
// state beyond the parameters of one in-flight operation; every menu
// action maps to a single use case call plus rendering. Recoverable
// validation errors are rendered and the menu is shown again, while
// storage errors are reported distinctly (the use case layer keeps
// memory and disk consistent by rolling failed mutations back, so the
// session may continue afterwards).
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/momeni/smartcar-care/pkg/core/cerr"
	"github.com/momeni/smartcar-care/pkg/core/model"
	"github.com/momeni/smartcar-care/pkg/core/usecase/garageuc"
)

// Session is one interactive terminal session. The input and output
// streams are injected, so tests can drive a session with scripted
// input and inspect its rendered output.
type Session struct {
	garage   *garageuc.UseCase
	in       *bufio.Scanner
	out      io.Writer
	operator string
}

// New instantiates a Session over the given use case and streams.
func New(garage *garageuc.UseCase, in io.Reader, out io.Writer) *Session {
	return &Session{
		garage: garage,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run executes the welcome prompt and then the menu loop until the
// exit entry is selected or the input stream ends. The only returned
// errors are input stream failures; all operation failures are
// rendered and the loop continues.
func (s *Session) Run(ctx context.Context) error {
	s.welcome()
	for {
		s.printMenu()
		choice, ok := s.prompt("Choose option (1-6): ")
		if !ok {
			return s.in.Err()
		}
		switch choice {
		case "1":
			s.registerCar(ctx)
		case "2":
			s.carDetails()
		case "3":
			s.bookService(ctx)
		case "4":
			s.serviceHistory()
		case "5":
			s.statistics()
		case "6":
			fmt.Fprintln(s.out, "Thank you for using SmartCar-Care!")
			fmt.Fprintln(s.out, "Drive safe and see you next time!")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice! Please select 1-6.")
		}
		if _, ok := s.prompt("\nPress Enter to continue..."); !ok {
			return s.in.Err()
		}
	}
}

func (s *Session) welcome() {
	fmt.Fprintln(s.out, "Welcome to SmartCar-Care")
	fmt.Fprintln(s.out, strings.Repeat("=", 50))
	fmt.Fprintln(s.out, "Your Complete Car Service Management System")
	fmt.Fprintln(s.out, strings.Repeat("=", 50))
	name, _ := s.prompt("Enter your name: ")
	if name == "" {
		name = "Guest"
	}
	s.operator = name
	fmt.Fprintf(s.out, "\nHello, %s! Let's take care of your car.\n", name)
}

func (s *Session) printMenu() {
	fmt.Fprintf(s.out, "\nMAIN MENU - Welcome back, %s!\n", s.operator)
	fmt.Fprintln(s.out, strings.Repeat("=", 50))
	fmt.Fprintln(s.out, "1. Register New Car")
	fmt.Fprintln(s.out, "2. Check Car Details")
	fmt.Fprintln(s.out, "3. Book Service")
	fmt.Fprintln(s.out, "4. View Service History")
	fmt.Fprintln(s.out, "5. Show Statistics")
	fmt.Fprintln(s.out, "6. Exit")
	fmt.Fprintln(s.out, strings.Repeat("-", 50))
}

// prompt writes the label and reads one trimmed input line. The ok
// result is false when the input stream has ended.
func (s *Session) prompt(label string) (line string, ok bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Session) registerCar(ctx context.Context) {
	fmt.Fprintln(s.out, "\nCAR REGISTRATION")
	fmt.Fprintln(s.out, strings.Repeat("-", 30))
	number, ok := s.prompt("Enter car number (e.g., ABC-1234): ")
	if !ok {
		return
	}
	modelNumber, ok := s.prompt("Enter model: ")
	if !ok {
		return
	}
	carMake, ok := s.prompt("Enter make (e.g., Toyota, Honda): ")
	if !ok {
		return
	}
	yearStr, ok := s.prompt("Enter year (optional): ")
	if !ok {
		return
	}
	year := 0
	if y, err := strconv.Atoi(yearStr); err == nil && len(yearStr) == 4 {
		year = y
	}
	color, ok := s.prompt("Enter color (optional): ")
	if !ok {
		return
	}
	car, err := s.garage.RegisterCar(ctx, garageuc.RegistrationParams{
		OwnerName:   s.operator,
		CarNumber:   number,
		ModelNumber: modelNumber,
		Make:        carMake,
		Year:        year,
		Color:       color,
	})
	if err != nil {
		s.renderError(err)
		return
	}
	fmt.Fprintln(s.out, "Car registered successfully!")
	fmt.Fprintln(s.out, "Registration Details:")
	fmt.Fprintf(s.out, "   - Car Number: %s\n", car.CarNumber)
	fmt.Fprintf(s.out, "   - Model: %s\n", car.ModelNumber)
	if car.Make != "" {
		fmt.Fprintf(s.out, "   - Make: %s\n", car.Make)
	}
	if car.Year > 0 {
		fmt.Fprintf(s.out, "   - Year: %d\n", car.Year)
	}
	if car.Color != "" {
		fmt.Fprintf(s.out, "   - Color: %s\n", car.Color)
	}
}

func (s *Session) carDetails() {
	fmt.Fprintln(s.out, "\nCAR DETAILS LOOKUP")
	fmt.Fprintln(s.out, strings.Repeat("-", 30))
	number, ok := s.prompt("Enter car number: ")
	if !ok {
		return
	}
	summary, err := s.garage.LookupCar(number)
	if err != nil {
		s.renderError(err)
		return
	}
	car := summary.Car
	fmt.Fprintln(s.out, "\nCar Information")
	fmt.Fprintln(s.out, strings.Repeat("=", 40))
	fmt.Fprintf(s.out, "Owner: %s\n", car.OwnerName)
	fmt.Fprintf(s.out, "Registered: %s\n", car.RegistrationDate)
	fmt.Fprintf(s.out, "Car Number: %s\n", car.CarNumber)
	fmt.Fprintf(s.out, "Model: %s\n", car.ModelNumber)
	if car.Make != "" {
		fmt.Fprintf(s.out, "Make: %s\n", car.Make)
	}
	if car.Year > 0 {
		fmt.Fprintf(s.out, "Year: %d\n", car.Year)
	}
	if car.Color != "" {
		fmt.Fprintf(s.out, "Color: %s\n", car.Color)
	}
	fmt.Fprintf(s.out, "Total Services: %d\n", summary.ServiceCount)
	if summary.ServiceCount > 0 {
		fmt.Fprintf(s.out, "Total Spent: $%s\n", summary.TotalSpend.StringFixed(2))
	}
}

func (s *Session) bookService(ctx context.Context) {
	fmt.Fprintln(s.out, "\nSERVICE BOOKING")
	fmt.Fprintln(s.out, strings.Repeat("-", 30))
	number, ok := s.prompt("Enter car number: ")
	if !ok {
		return
	}
	if _, err := s.garage.LookupCar(number); err != nil {
		s.renderError(err)
		return
	}
	fmt.Fprintln(s.out, "\nAvailable Services:")
	fmt.Fprintln(s.out, strings.Repeat("-", 25))
	for i, t := range model.Catalog() {
		fmt.Fprintf(s.out, "%d. %s - $%s\n", i+1, t.Name, t.Price.StringFixed(2))
	}
	choiceStr, ok := s.prompt("\nChoose service (number): ")
	if !ok {
		return
	}
	choice, err := strconv.Atoi(choiceStr)
	if err != nil {
		fmt.Fprintln(s.out, "Please enter a valid number!")
		return
	}
	plan, err := s.garage.PlanService(number, choice-1)
	if err != nil {
		s.renderError(err)
		return
	}
	if plan.DuplicateAdvisory() {
		fmt.Fprintf(
			s.out,
			"You already have %s recorded on %s, within the last 30 days!\n",
			plan.ServiceType.Name, plan.LastServiced,
		)
		answer, ok := s.prompt("Continue anyway? (y/n): ")
		if !ok || strings.ToLower(answer) != "y" {
			return
		}
	}
	notes, ok := s.prompt("Any special notes (optional): ")
	if !ok {
		return
	}
	record, err := s.garage.CommitService(ctx, plan, notes)
	if err != nil {
		s.renderError(err)
		return
	}
	fmt.Fprintln(s.out, "Service booked successfully!")
	fmt.Fprintln(s.out, "Booking Details:")
	fmt.Fprintf(s.out, "   - Service: %s\n", record.ServiceType)
	fmt.Fprintf(s.out, "   - Price: $%s\n", record.Price.StringFixed(2))
	fmt.Fprintf(s.out, "   - Date: %s\n", record.ServiceDate)
	if record.Notes != "" {
		fmt.Fprintf(s.out, "   - Notes: %s\n", record.Notes)
	}
}

func (s *Session) serviceHistory() {
	fmt.Fprintln(s.out, "\nSERVICE HISTORY")
	fmt.Fprintln(s.out, strings.Repeat("-", 30))
	number, ok := s.prompt("Enter car number: ")
	if !ok {
		return
	}
	history := s.garage.ServiceHistory(number)
	if len(history.Records) == 0 {
		fmt.Fprintln(s.out, "No service history found for this car.")
		return
	}
	fmt.Fprintf(
		s.out, "\nService History for %s\n",
		model.NormalizeCarNumber(number),
	)
	fmt.Fprintln(s.out, strings.Repeat("=", 50))
	for i, record := range history.Records {
		fmt.Fprintf(s.out, "\n%d. %s\n", i+1, record.ServiceType)
		fmt.Fprintf(s.out, "   Date: %s\n", record.ServiceDate)
		fmt.Fprintf(s.out, "   Cost: $%s\n", record.Price.StringFixed(2))
		fmt.Fprintf(s.out, "   Status: %s\n", record.Status)
		if record.Notes != "" {
			fmt.Fprintf(s.out, "   Notes: %s\n", record.Notes)
		}
	}
	fmt.Fprintf(s.out, "\nTotal Spent: $%s\n", history.TotalSpend.StringFixed(2))
	fmt.Fprintf(s.out, "Total Services: %d\n", len(history.Records))
}

func (s *Session) statistics() {
	fmt.Fprintln(s.out, "\nSYSTEM STATISTICS")
	fmt.Fprintln(s.out, strings.Repeat("-", 30))
	st := s.garage.Statistics()
	fmt.Fprintf(s.out, "Total Cars Registered: %d\n", st.TotalCars)
	fmt.Fprintf(s.out, "Total Services Completed: %d\n", st.TotalServices)
	if st.TotalServices > 0 {
		fmt.Fprintf(s.out, "Total Revenue: $%s\n", st.TotalRevenue.StringFixed(2))
		fmt.Fprintf(
			s.out, "Most Popular Service: %s (%d times)\n",
			st.MostPopularService, st.MostPopularCount,
		)
	}
	fmt.Fprintf(s.out, "Services This Week: %d\n", st.RecentServices)
}

// renderError maps the error kinds to end-user facing messages. The
// storage kinds are rendered with the underlying error details since
// the end-user must learn that their data was not persisted.
func (s *Session) renderError(err error) {
	switch cerr.KindOf(err) {
	case cerr.KindInvalidFormat:
		fmt.Fprintln(s.out, "Invalid input! Please check your entries.")
	case cerr.KindDuplicateCar:
		fmt.Fprintln(s.out, "Car is already registered!")
	case cerr.KindCarNotRegistered:
		fmt.Fprintln(s.out, "Car not found! Please check the car number or register first.")
	case cerr.KindInvalidServiceSelection:
		fmt.Fprintln(s.out, "Invalid service selection!")
	case cerr.KindStorageWrite:
		fmt.Fprintf(s.out, "Saving your data FAILED and the change was discarded: %v\n", err)
	case cerr.KindStorageRead:
		fmt.Fprintf(s.out, "Reading the stored data failed: %v\n", err)
	default:
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}
