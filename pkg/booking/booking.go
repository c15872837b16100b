// Package booking orchestrates the rental workflow across the car store and
// the rental ledger: enumerate available cars, validate dates, compute cost,
// record the rental, and mark the car unavailable.
package booking

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openfleet/carrent/pkg/fleet"
	"github.com/openfleet/carrent/pkg/ledger"
)

// Errors
var (
	ErrNoneAvailable    = errors.New("no cars available")
	ErrCancelled        = errors.New("booking cancelled")
	ErrInvalidSelection = errors.New("selection out of range")

	// ErrBookingIncomplete means the rental was recorded in the ledger but
	// the car could not be marked unavailable. The two stores disagree until
	// a reconcile pass or a retried flip.
	ErrBookingIncomplete = errors.New("rental recorded but car still marked available")
)

// Service runs the booking workflow. The two store mutations it performs
// have no joint atomicity; the ledger append comes first so that a failure
// window leaves an auditable record rather than a silently blocked car, and
// Reconcile surfaces whichever divergence remains.
type Service struct {
	cars   *fleet.Store
	rent   *ledger.Ledger
	ids    *IDGenerator
	logger *slog.Logger
	now    func() time.Time // test seam
}

// NewService creates a booking service over the car store and rental ledger.
func NewService(cars *fleet.Store, rent *ledger.Ledger) *Service {
	return &Service{
		cars:   cars,
		rent:   rent,
		ids:    NewIDGenerator("CRS-"),
		logger: slog.Default(),
		now:    time.Now,
	}
}

// SetLogger replaces the service's logger.
func (s *Service) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// AvailableCars enumerates the cars open for booking, in inventory order.
// ErrNoneAvailable when the enumeration is empty.
func (s *Service) AvailableCars() ([]fleet.Car, error) {
	cars, err := s.cars.Available()
	if err != nil {
		return nil, err
	}
	if len(cars) == 0 {
		return nil, ErrNoneAvailable
	}
	return cars, nil
}

// Select resolves a 1-based choice against the enumeration it was taken
// from. Zero is ErrCancelled (a clean no-op); anything else out of range is
// ErrInvalidSelection. No state changes either way.
func Select(cars []fleet.Car, choice int) (fleet.Car, error) {
	if choice == 0 {
		return fleet.Car{}, ErrCancelled
	}
	if choice < 1 || choice > len(cars) {
		return fleet.Car{}, fmt.Errorf("%w: %d of %d", ErrInvalidSelection, choice, len(cars))
	}
	return cars[choice-1], nil
}

// Book completes a rental of car for username. Dates are validated before
// any mutation; total cost is whole days times the car's daily rate. The
// ledger record embeds the car snapshot as of now, then the car is flipped
// unavailable. A flip failure returns the recorded rental together with
// ErrBookingIncomplete wrapping the cause.
func (s *Service) Book(username string, car fleet.Car, pickupDate, returnDate string) (ledger.Rental, error) {
	pickup, err := ParseDate(pickupDate)
	if err != nil {
		return ledger.Rental{}, err
	}
	ret, err := ParseDate(returnDate)
	if err != nil {
		return ledger.Rental{}, err
	}
	days, err := RentalDays(pickup, ret)
	if err != nil {
		return ledger.Rental{}, err
	}

	id, err := s.ids.Next(s.rent.HasID)
	if err != nil {
		return ledger.Rental{}, err
	}

	rental := ledger.Rental{
		ID:         id,
		Username:   username,
		Car:        car,
		PickupDate: pickupDate,
		ReturnDate: returnDate,
		TotalCents: uint64(days) * car.RateCents,
		CreatedAt:  s.now().Format(ledger.CreatedAtLayout),
	}

	if err := s.rent.Append(rental); err != nil {
		return ledger.Rental{}, err
	}

	if err := s.cars.SetAvailabilityByID(car.ID, false); err != nil {
		s.logger.Error("car not marked unavailable after ledger append",
			"rental_id", rental.ID, "car_id", car.ID, "error", err)
		return rental, fmt.Errorf("%w: %w", ErrBookingIncomplete, err)
	}

	s.logger.Info("booking completed",
		"rental_id", rental.ID, "username", username, "car_id", car.ID,
		"days", days, "total_cents", rental.TotalCents)
	return rental, nil
}

// Divergence is one inventory/ledger disagreement found by Reconcile.
type Divergence struct {
	CarID  string
	Model  string
	Reason string
}

// Reconcile cross-checks the car store against the ledger and reports both
// failure shapes of the two-store booking: a car held unavailable with no
// rental on record, and a recorded rental whose car is still available.
// Reconcile only reports; resolving a divergence is an operator decision.
func (s *Service) Reconcile() ([]Divergence, error) {
	cars, err := s.cars.ListAll()
	if err != nil {
		return nil, err
	}
	rentals, err := s.rent.List("")
	if err != nil {
		return nil, err
	}

	rented := make(map[string]bool, len(rentals))
	for _, r := range rentals {
		rented[r.Car.ID] = true
	}

	var out []Divergence
	for _, ic := range cars {
		c := ic.Car
		switch {
		case !c.Available && !rented[c.ID]:
			out = append(out, Divergence{
				CarID:  c.ID,
				Model:  c.Model,
				Reason: "unavailable with no rental on record",
			})
		case c.Available && rented[c.ID]:
			out = append(out, Divergence{
				CarID:  c.ID,
				Model:  c.Model,
				Reason: "still available despite a recorded rental",
			})
		}
	}
	return out, nil
}
