package booking

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfleet/carrent/pkg/fleet"
	"github.com/openfleet/carrent/pkg/ledger"
)

func newTestService(t *testing.T) (*Service, *fleet.Store, *ledger.Ledger) {
	t.Helper()
	dir := t.TempDir()
	cars, err := fleet.NewStore(filepath.Join(dir, "cars.bin"))
	require.NoError(t, err)
	rent, err := ledger.NewLedger(filepath.Join(dir, "rentals.bin"))
	require.NoError(t, err)
	svc := NewService(cars, rent)
	svc.now = func() time.Time {
		return time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	}
	return svc, cars, rent
}

func addCar(t *testing.T, cars *fleet.Store, model string, rateCents uint64) fleet.Car {
	t.Helper()
	car, err := cars.Add(fleet.Car{
		Model:     model,
		Company:   "Toyota",
		Year:      2022,
		RateCents: rateCents,
		Capacity:  5,
		Color:     "white",
	})
	require.NoError(t, err)
	return car
}

func TestParseDate(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		ok    bool
	}{
		{name: "valid", input: "2024-01-05", ok: true},
		{name: "leap day", input: "2024-02-29", ok: true},
		{name: "too short", input: "2024-1-5", ok: false},
		{name: "too long", input: "2024-01-050", ok: false},
		{name: "wrong separators", input: "2024/01/05", ok: false},
		{name: "hyphen misplaced", input: "20240-1-05", ok: false},
		{name: "not a calendar date", input: "2023-02-29", ok: false},
		{name: "garbage", input: "yyyy-mm-dd", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDate(tc.input)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrBadDate)
			}
		})
	}
}

func TestRentalDays(t *testing.T) {
	pickup, err := ParseDate("2024-01-01")
	require.NoError(t, err)
	ret, err := ParseDate("2024-01-05")
	require.NoError(t, err)

	days, err := RentalDays(pickup, ret)
	require.NoError(t, err)
	assert.Equal(t, 4, days)

	// Same-day rental is zero days, permitted.
	days, err = RentalDays(pickup, pickup)
	require.NoError(t, err)
	assert.Zero(t, days)

	_, err = RentalDays(ret, pickup)
	assert.ErrorIs(t, err, ErrDateOrder)
}

func TestSelect(t *testing.T) {
	cars := []fleet.Car{{Model: "Corolla"}, {Model: "Civic"}}

	car, err := Select(cars, 2)
	require.NoError(t, err)
	assert.Equal(t, "Civic", car.Model)

	_, err = Select(cars, 0)
	assert.ErrorIs(t, err, ErrCancelled)

	_, err = Select(cars, 3)
	assert.ErrorIs(t, err, ErrInvalidSelection)

	_, err = Select(cars, -1)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestService_AvailableCars(t *testing.T) {
	svc, cars, _ := newTestService(t)

	_, err := svc.AvailableCars()
	assert.ErrorIs(t, err, ErrNoneAvailable)

	car := addCar(t, cars, "Corolla", 4550)
	require.NoError(t, cars.SetAvailabilityByID(car.ID, false))

	_, err = svc.AvailableCars()
	assert.ErrorIs(t, err, ErrNoneAvailable)

	addCar(t, cars, "Civic", 5000)
	available, err := svc.AvailableCars()
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Civic", available[0].Model)
}

func TestService_BookComputesCost(t *testing.T) {
	svc, cars, _ := newTestService(t)
	car := addCar(t, cars, "Corolla", 1000)

	rental, err := svc.Book("furba", car, "2024-01-01", "2024-01-05")
	require.NoError(t, err)

	// 4 whole days at rate 1000.
	assert.Equal(t, uint64(4000), rental.TotalCents)
	assert.Equal(t, "2024-01-01 09:30:00", rental.CreatedAt)
	assert.Regexp(t, `^CRS-\d{5}$`, rental.ID)
}

func TestService_BookZeroDayRentalIsFree(t *testing.T) {
	svc, cars, _ := newTestService(t)
	car := addCar(t, cars, "Corolla", 1000)

	rental, err := svc.Book("furba", car, "2024-01-01", "2024-01-01")
	require.NoError(t, err)
	assert.Zero(t, rental.TotalCents)
}

func TestService_BookRejectsBeforeAnyMutation(t *testing.T) {
	svc, cars, rent := newTestService(t)
	car := addCar(t, cars, "Corolla", 1000)

	testCases := []struct {
		name     string
		pickup   string
		ret      string
		expected error
	}{
		{name: "return precedes pickup", pickup: "2024-01-05", ret: "2024-01-01", expected: ErrDateOrder},
		{name: "malformed pickup", pickup: "05-01-2024", ret: "2024-01-06", expected: ErrBadDate},
		{name: "malformed return", pickup: "2024-01-05", ret: "tomorrow-ok", expected: ErrBadDate},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Book("furba", car, tc.pickup, tc.ret)
			assert.ErrorIs(t, err, tc.expected)
		})
	}

	// No mutation happened anywhere.
	empty, err := rent.IsEmpty()
	require.NoError(t, err)
	assert.True(t, empty)

	c, err := cars.FindByID(car.ID)
	require.NoError(t, err)
	assert.True(t, c.Available)
}

func TestService_BookTogglesCarAndAppendsSnapshot(t *testing.T) {
	svc, cars, rent := newTestService(t)
	car := addCar(t, cars, "Corolla", 4550)

	rental, err := svc.Book("furba", car, "2024-01-01", "2024-01-05")
	require.NoError(t, err)

	// The only available car is now unavailable.
	c, err := cars.FindByID(car.ID)
	require.NoError(t, err)
	assert.False(t, c.Available)

	// Exactly one ledger record, snapshotting the pre-booking state.
	all, err := rent.List("")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, rental.ID, all[0].ID)
	assert.Equal(t, car, all[0].Car)
	assert.True(t, all[0].Car.Available, "snapshot keeps the state as of booking")

	// Later inventory edits do not touch the ledger snapshot.
	require.NoError(t, cars.UpdateField("Corolla", fleet.FieldColor, "black"))
	all, err = rent.List("")
	require.NoError(t, err)
	assert.Equal(t, "white", all[0].Car.Color)
}

func TestService_BookReportsIncompleteWhenFlipFails(t *testing.T) {
	svc, cars, rent := newTestService(t)
	car := addCar(t, cars, "Corolla", 1000)

	// The car disappears between enumeration and booking, so the ledger
	// append lands but the availability flip has nothing to update.
	require.NoError(t, cars.RemoveByID(car.ID))

	rental, err := svc.Book("furba", car, "2024-01-01", "2024-01-05")
	require.ErrorIs(t, err, ErrBookingIncomplete)
	assert.Regexp(t, `^CRS-\d{5}$`, rental.ID)
	assert.Equal(t, "furba", rental.Username)
	assert.Equal(t, uint64(4000), rental.TotalCents)

	// The half-applied booking is on the ledger exactly once.
	all, err := rent.List("")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, rental.ID, all[0].ID)
	assert.Equal(t, car.ID, all[0].Car.ID)
}

func TestService_ReconcileAgreesAfterCleanBooking(t *testing.T) {
	svc, cars, _ := newTestService(t)
	car := addCar(t, cars, "Corolla", 4550)

	_, err := svc.Book("furba", car, "2024-01-01", "2024-01-05")
	require.NoError(t, err)

	divergences, err := svc.Reconcile()
	require.NoError(t, err)
	assert.Empty(t, divergences)
}

func TestService_ReconcileFlagsBlockedCarWithoutRental(t *testing.T) {
	svc, cars, _ := newTestService(t)
	car := addCar(t, cars, "Corolla", 4550)

	// A car flipped unavailable with no ledger record, as if the process
	// died between the ledger append and the availability flip.
	require.NoError(t, cars.SetAvailabilityByID(car.ID, false))

	divergences, err := svc.Reconcile()
	require.NoError(t, err)
	require.Len(t, divergences, 1)
	assert.Equal(t, car.ID, divergences[0].CarID)
	assert.Contains(t, divergences[0].Reason, "no rental on record")
}

func TestService_ReconcileFlagsAvailableCarWithRental(t *testing.T) {
	svc, cars, _ := newTestService(t)
	car := addCar(t, cars, "Corolla", 4550)

	_, err := svc.Book("furba", car, "2024-01-01", "2024-01-05")
	require.NoError(t, err)

	// Undo the flip, as if the second store write had been lost.
	require.NoError(t, cars.SetAvailabilityByID(car.ID, true))

	divergences, err := svc.Reconcile()
	require.NoError(t, err)
	require.Len(t, divergences, 1)
	assert.Contains(t, divergences[0].Reason, "still available")
}
