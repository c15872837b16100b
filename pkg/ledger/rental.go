// Package ledger persists completed rental transactions as fixed-width
// records in an append-only file. Ledger entries are never mutated or
// deleted.
package ledger

import (
	"github.com/openfleet/carrent/pkg/codec"
	"github.com/openfleet/carrent/pkg/fleet"
)

// Field widths on disk. Dates are exactly YYYY-MM-DD; CreatedAt is exactly
// "2006-01-02 15:04:05".
const (
	idWidth       = 16
	usernameWidth = 20
	dateWidth     = 10
	createdWidth  = 19
)

// CreatedAtLayout is the time layout of Rental.CreatedAt.
const CreatedAtLayout = "2006-01-02 15:04:05"

// Rental is one booking. Car is a by-value snapshot of the inventory entry
// at booking time; later inventory edits never affect it.
type Rental struct {
	ID         string
	Username   string
	Car        fleet.Car
	PickupDate string
	ReturnDate string
	TotalCents uint64
	CreatedAt  string
}

// RentalCodec serializes rentals, nesting the car codec for the embedded
// snapshot.
type RentalCodec struct {
	car *fleet.CarCodec
}

// NewRentalCodec creates a rental codec.
func NewRentalCodec() *RentalCodec {
	return &RentalCodec{car: fleet.NewCarCodec()}
}

// Size returns the constant record size.
func (c *RentalCodec) Size() int {
	return idWidth + usernameWidth + c.car.Size() + dateWidth + dateWidth + 8 + createdWidth
}

// Encode serializes r. Over-long fields are rejected with *codec.FieldError.
func (c *RentalCodec) Encode(r Rental) ([]byte, error) {
	buf := make([]byte, c.Size())

	off := 0
	if err := codec.PutString(buf, off, idWidth, "rental_id", r.ID); err != nil {
		return nil, err
	}
	off += idWidth
	if err := codec.PutString(buf, off, usernameWidth, "username", r.Username); err != nil {
		return nil, err
	}
	off += usernameWidth

	carBuf, err := c.car.Encode(r.Car)
	if err != nil {
		return nil, err
	}
	copy(buf[off:], carBuf)
	off += c.car.Size()

	if err := codec.PutString(buf, off, dateWidth, "pickup_date", r.PickupDate); err != nil {
		return nil, err
	}
	off += dateWidth
	if err := codec.PutString(buf, off, dateWidth, "return_date", r.ReturnDate); err != nil {
		return nil, err
	}
	off += dateWidth
	codec.PutUint64(buf, off, r.TotalCents)
	off += 8
	if err := codec.PutString(buf, off, createdWidth, "created_at", r.CreatedAt); err != nil {
		return nil, err
	}

	return buf, nil
}

// Decode deserializes one record.
func (c *RentalCodec) Decode(buf []byte) (Rental, error) {
	if len(buf) != c.Size() {
		return Rental{}, &codec.FieldError{Field: "rental record", Width: c.Size(), Len: len(buf)}
	}

	var r Rental
	off := 0
	r.ID = codec.GetString(buf, off, idWidth)
	off += idWidth
	r.Username = codec.GetString(buf, off, usernameWidth)
	off += usernameWidth

	car, err := c.car.Decode(buf[off : off+c.car.Size()])
	if err != nil {
		return Rental{}, err
	}
	r.Car = car
	off += c.car.Size()

	r.PickupDate = codec.GetString(buf, off, dateWidth)
	off += dateWidth
	r.ReturnDate = codec.GetString(buf, off, dateWidth)
	off += dateWidth
	r.TotalCents = codec.GetUint64(buf, off)
	off += 8
	r.CreatedAt = codec.GetString(buf, off, createdWidth)

	return r, nil
}
