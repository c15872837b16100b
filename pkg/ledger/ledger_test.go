package ledger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfleet/carrent/pkg/fleet"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := NewLedger(filepath.Join(t.TempDir(), "rentals.bin"))
	require.NoError(t, err)
	return l
}

func sampleRental(id, username string) Rental {
	return Rental{
		ID:       id,
		Username: username,
		Car: fleet.Car{
			ID:            "2QKxGH4pDmqPzXsVbN1c8YtRfW3",
			Model:         "Corolla",
			Company:       "Toyota",
			Year:          2022,
			RateCents:     4550,
			Capacity:      5,
			MileageTenths: 182,
			Color:         "white",
			Available:     true,
		},
		PickupDate: "2024-01-01",
		ReturnDate: "2024-01-05",
		TotalCents: 18200,
		CreatedAt:  "2024-01-01 09:30:00",
	}
}

func TestLedger_AppendAndList(t *testing.T) {
	l := newTestLedger(t)

	require.NoError(t, l.Append(sampleRental("CRS-10001", "furba")))
	require.NoError(t, l.Append(sampleRental("CRS-10002", "rohan")))
	require.NoError(t, l.Append(sampleRental("CRS-10003", "furba")))

	all, err := l.List("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "CRS-10001", all[0].ID)
	assert.Equal(t, "CRS-10003", all[2].ID)
}

func TestLedger_ListFiltersByUsernameInOrder(t *testing.T) {
	l := newTestLedger(t)
	require.NoError(t, l.Append(sampleRental("CRS-10001", "furba")))
	require.NoError(t, l.Append(sampleRental("CRS-10002", "rohan")))
	require.NoError(t, l.Append(sampleRental("CRS-10003", "furba")))

	mine, err := l.List("furba")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "CRS-10001", mine[0].ID)
	assert.Equal(t, "CRS-10003", mine[1].ID)

	none, err := l.List("nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLedger_HasID(t *testing.T) {
	l := newTestLedger(t)
	require.NoError(t, l.Append(sampleRental("CRS-10001", "furba")))

	taken, err := l.HasID("CRS-10001")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = l.HasID("CRS-99999")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestLedger_HasCarID(t *testing.T) {
	l := newTestLedger(t)
	require.NoError(t, l.Append(sampleRental("CRS-10001", "furba")))

	has, err := l.HasCarID("2QKxGH4pDmqPzXsVbN1c8YtRfW3")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = l.HasCarID("other-car")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestRentalCodec_RoundTrip(t *testing.T) {
	c := NewRentalCodec()
	r := sampleRental("CRS-10001", "furba")

	buf, err := c.Encode(r)
	require.NoError(t, err)
	require.Len(t, buf, c.Size())

	got, err := c.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, r, got)
}

func TestRentalCodec_RejectsBadDateWidth(t *testing.T) {
	c := NewRentalCodec()
	r := sampleRental("CRS-10001", "furba")
	r.PickupDate = "2024-01-01T00:00:00Z"

	_, err := c.Encode(r)
	assert.Error(t, err)
}
