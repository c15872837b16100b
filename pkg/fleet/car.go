// Package fleet persists the car inventory as fixed-width records and
// provides listing, per-field updates, removal, and availability flips.
package fleet

import "github.com/openfleet/carrent/pkg/codec"

// Field widths on disk. ID is exactly a ksuid string.
const (
	idWidth      = 27
	modelWidth   = 30
	companyWidth = 30
	colorWidth   = 20

	recordSize = idWidth + modelWidth + companyWidth +
		4 + // Year
		8 + // RateCents
		4 + // Capacity
		4 + // MileageTenths
		colorWidth +
		1 // Available
)

// Car is one inventory entry. ID is a surrogate identifier assigned at
// creation; Model remains the operator-facing lookup key even though the
// store does not enforce it unique.
type Car struct {
	ID            string
	Model         string
	Company       string
	Year          uint32
	RateCents     uint64 // Daily rental rate in cents
	Capacity      uint32 // Passenger capacity
	MileageTenths uint32 // Fuel efficiency in tenths of km/l
	Color         string
	Available     bool
}

// MileageKmpl returns the fuel efficiency in km/l.
func (c Car) MileageKmpl() float64 {
	return float64(c.MileageTenths) / 10
}

// CarCodec serializes cars into their fixed 128-byte record.
type CarCodec struct{}

// NewCarCodec creates a car codec.
func NewCarCodec() *CarCodec {
	return &CarCodec{}
}

// Size returns the constant record size.
func (*CarCodec) Size() int {
	return recordSize
}

// Encode serializes c. Over-long fields are rejected with *codec.FieldError.
func (*CarCodec) Encode(c Car) ([]byte, error) {
	buf := make([]byte, recordSize)

	off := 0
	if err := codec.PutString(buf, off, idWidth, "id", c.ID); err != nil {
		return nil, err
	}
	off += idWidth
	if err := codec.PutString(buf, off, modelWidth, "model", c.Model); err != nil {
		return nil, err
	}
	off += modelWidth
	if err := codec.PutString(buf, off, companyWidth, "company", c.Company); err != nil {
		return nil, err
	}
	off += companyWidth
	codec.PutUint32(buf, off, c.Year)
	off += 4
	codec.PutUint64(buf, off, c.RateCents)
	off += 8
	codec.PutUint32(buf, off, c.Capacity)
	off += 4
	codec.PutUint32(buf, off, c.MileageTenths)
	off += 4
	if err := codec.PutString(buf, off, colorWidth, "color", c.Color); err != nil {
		return nil, err
	}
	off += colorWidth
	codec.PutBool(buf, off, c.Available)

	return buf, nil
}

// Decode deserializes one record.
func (*CarCodec) Decode(buf []byte) (Car, error) {
	if len(buf) != recordSize {
		return Car{}, &codec.FieldError{Field: "car record", Width: recordSize, Len: len(buf)}
	}

	var c Car
	off := 0
	c.ID = codec.GetString(buf, off, idWidth)
	off += idWidth
	c.Model = codec.GetString(buf, off, modelWidth)
	off += modelWidth
	c.Company = codec.GetString(buf, off, companyWidth)
	off += companyWidth
	c.Year = codec.GetUint32(buf, off)
	off += 4
	c.RateCents = codec.GetUint64(buf, off)
	off += 8
	c.Capacity = codec.GetUint32(buf, off)
	off += 4
	c.MileageTenths = codec.GetUint32(buf, off)
	off += 4
	c.Color = codec.GetString(buf, off, colorWidth)
	off += colorWidth
	c.Available = codec.GetBool(buf, off)

	return c, nil
}
