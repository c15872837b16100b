package fleet

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/segmentio/ksuid"

	"github.com/openfleet/carrent/pkg/store"
)

// Field selects one mutable car attribute for UpdateField.
type Field int

// Mutable car fields.
const (
	FieldModel Field = iota + 1
	FieldCompany
	FieldYear
	FieldRate
	FieldCapacity
	FieldMileage
	FieldColor
	FieldAvailability
)

// Errors
var (
	ErrNotFound      = errors.New("car not found")
	ErrUnknownField  = errors.New("unknown car field")
	ErrBadFieldValue = errors.New("bad field value")
)

// IndexedCar pairs a car with its physical position in the store file. The
// index is only valid against the listing it came from; removal by index
// must follow its listing immediately.
type IndexedCar struct {
	Index int
	Car   Car
}

// Store is the car specialization of the record store.
type Store struct {
	records *store.FixedStore[Car]
	logger  *slog.Logger
}

// NewStore creates a car store over the given record file.
func NewStore(filePath string) (*Store, error) {
	records, err := store.NewFixedStore[Car](store.Config{FilePath: filePath, Name: "cars"}, NewCarCodec())
	if err != nil {
		return nil, err
	}
	return &Store{records: records, logger: slog.Default()}, nil
}

// SetLogger replaces the store's logger.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
		s.records.SetLogger(logger)
	}
}

// SetObserver attaches a metrics observer to the underlying record store.
func (s *Store) SetObserver(o store.Observer) {
	s.records.SetObserver(o)
}

// Add appends a car to the inventory. A fresh surrogate ID is assigned and
// the car always enters available.
func (s *Store) Add(c Car) (Car, error) {
	c.ID = ksuid.New().String()
	c.Available = true
	if err := s.records.Append(c); err != nil {
		return Car{}, err
	}
	s.logger.Info("car added", "id", c.ID, "model", c.Model)
	return c, nil
}

// ListAll returns every car with its physical index, in append order.
func (s *Store) ListAll() ([]IndexedCar, error) {
	cur, err := s.records.Scan()
	if err != nil {
		return nil, err
	}
	defer cur.Close()

	var out []IndexedCar
	for cur.Next() {
		out = append(out, IndexedCar{Index: cur.Index(), Car: cur.Record()})
	}
	return out, cur.Err()
}

// Available returns only the cars currently marked available, in append
// order.
func (s *Store) Available() ([]Car, error) {
	all, err := s.records.All()
	if err != nil {
		return nil, err
	}
	var out []Car
	for _, c := range all {
		if c.Available {
			out = append(out, c)
		}
	}
	return out, nil
}

// FindByModel returns the first car with the given model name.
func (s *Store) FindByModel(model string) (Car, error) {
	c, _, err := s.records.FindFirst(func(car Car) bool {
		return car.Model == model
	})
	if errors.Is(err, store.ErrNotFound) {
		return Car{}, ErrNotFound
	}
	return c, err
}

// FindByID returns the car with the given surrogate ID.
func (s *Store) FindByID(id string) (Car, error) {
	c, _, err := s.records.FindFirst(func(car Car) bool {
		return car.ID == id
	})
	if errors.Is(err, store.ErrNotFound) {
		return Car{}, ErrNotFound
	}
	return c, err
}

// UpdateField locates the first car with the given model name, mutates one
// field, and rewrites the record. Through this path availability can only be
// set back to available; only the booking workflow marks a car unavailable.
func (s *Store) UpdateField(model string, field Field, value string) error {
	c, index, err := s.records.FindFirst(func(car Car) bool {
		return car.Model == model
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	switch field {
	case FieldModel:
		c.Model = value
	case FieldCompany:
		c.Company = value
	case FieldYear:
		year, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return fmt.Errorf("%w: year %q", ErrBadFieldValue, value)
		}
		c.Year = uint32(year)
	case FieldRate:
		cents, err := ParseRate(value)
		if err != nil {
			return err
		}
		c.RateCents = cents
	case FieldCapacity:
		capacity, err := strconv.ParseUint(value, 10, 32)
		if err != nil || capacity == 0 {
			return fmt.Errorf("%w: capacity %q", ErrBadFieldValue, value)
		}
		c.Capacity = uint32(capacity)
	case FieldMileage:
		kmpl, err := strconv.ParseFloat(value, 64)
		if err != nil || kmpl < 0 {
			return fmt.Errorf("%w: mileage %q", ErrBadFieldValue, value)
		}
		c.MileageTenths = uint32(kmpl*10 + 0.5)
	case FieldColor:
		c.Color = value
	case FieldAvailability:
		c.Available = true
	default:
		return ErrUnknownField
	}

	return s.records.UpdateAt(index, c)
}

// SetAvailability locates the first car with the given model name and
// rewrites just the availability flag.
func (s *Store) SetAvailability(model string, available bool) error {
	c, index, err := s.records.FindFirst(func(car Car) bool {
		return car.Model == model
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	c.Available = available
	return s.records.UpdateAt(index, c)
}

// SetAvailabilityByID flips the availability flag of the car with the given
// surrogate ID.
func (s *Store) SetAvailabilityByID(id string, available bool) error {
	c, index, err := s.records.FindFirst(func(car Car) bool {
		return car.ID == id
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	c.Available = available
	return s.records.UpdateAt(index, c)
}

// RemoveByIndex deletes the car at the given physical position, as seen in a
// listing taken immediately before. Out-of-range indices are ErrNotFound
// with no file mutation.
func (s *Store) RemoveByIndex(index int) error {
	removed, err := s.records.DeleteWhere(func(i int, _ Car) bool {
		return i == index
	})
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveByID deletes the car with the given surrogate ID. Unlike positional
// removal, the ID stays valid regardless of intervening mutations.
func (s *Store) RemoveByID(id string) error {
	removed, err := s.records.DeleteWhere(func(_ int, c Car) bool {
		return c.ID == id
	})
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

// IsEmpty reports whether the inventory holds any cars.
func (s *Store) IsEmpty() (bool, error) {
	return s.records.IsEmpty()
}

// ParseRate converts a decimal currency string such as "1000" or "59.90"
// into cents.
func ParseRate(value string) (uint64, error) {
	rate, err := strconv.ParseFloat(value, 64)
	if err != nil || rate < 0 {
		return 0, fmt.Errorf("%w: rate %q", ErrBadFieldValue, value)
	}
	return uint64(rate*100 + 0.5), nil
}
