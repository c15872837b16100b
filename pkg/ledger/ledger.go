package ledger

import (
	"errors"
	"log/slog"

	"github.com/openfleet/carrent/pkg/store"
)

// Ledger is the append-only rental transaction store. No update or delete
// operation exists; the record store's rebuild path is never reached.
type Ledger struct {
	records *store.FixedStore[Rental]
	logger  *slog.Logger
}

// NewLedger creates a ledger over the given record file.
func NewLedger(filePath string) (*Ledger, error) {
	records, err := store.NewFixedStore[Rental](store.Config{FilePath: filePath, Name: "rentals"}, NewRentalCodec())
	if err != nil {
		return nil, err
	}
	return &Ledger{records: records, logger: slog.Default()}, nil
}

// SetLogger replaces the ledger's logger.
func (l *Ledger) SetLogger(logger *slog.Logger) {
	if logger != nil {
		l.logger = logger
		l.records.SetLogger(logger)
	}
}

// SetObserver attaches a metrics observer to the underlying record store.
func (l *Ledger) SetObserver(o store.Observer) {
	l.records.SetObserver(o)
}

// Append writes one completed rental at end-of-file.
func (l *Ledger) Append(r Rental) error {
	if err := l.records.Append(r); err != nil {
		return err
	}
	l.logger.Info("rental recorded", "id", r.ID, "username", r.Username, "car_id", r.Car.ID)
	return nil
}

// List returns rentals in append order. A non-empty username yields only
// that renter's bookings.
func (l *Ledger) List(username string) ([]Rental, error) {
	all, err := l.records.All()
	if err != nil {
		return nil, err
	}
	if username == "" {
		return all, nil
	}
	var out []Rental
	for _, r := range all {
		if r.Username == username {
			out = append(out, r)
		}
	}
	return out, nil
}

// HasID reports whether a rental with the given identifier exists.
func (l *Ledger) HasID(id string) (bool, error) {
	_, _, err := l.records.FindFirst(func(r Rental) bool {
		return r.ID == id
	})
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// HasCarID reports whether any rental snapshot references the given car.
func (l *Ledger) HasCarID(carID string) (bool, error) {
	_, _, err := l.records.FindFirst(func(r Rental) bool {
		return r.Car.ID == carID
	})
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// IsEmpty reports whether any rental has been recorded.
func (l *Ledger) IsEmpty() (bool, error) {
	return l.records.IsEmpty()
}
