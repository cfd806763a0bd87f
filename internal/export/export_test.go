package export

import (
	"bytes"
	"testing"
	"time"

	"hotel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReservation() *models.Reservation {
	return &models.Reservation{
		ID:         "res-1",
		UserID:     "user-1",
		RoomID:     "room-1",
		CheckIn:    models.NewDate(2026, time.April, 1),
		CheckOut:   models.NewDate(2026, time.April, 4),
		Guests:     2,
		Status:     models.StatusConfirmed,
		GuestName:  "Jane Doe",
		GuestEmail: "jane@example.com",
		TotalPrice: 300,
		CreatedAt:  time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestWriteReservationsXLSX(t *testing.T) {
	rooms := map[string]*models.Room{"room-1": {ID: "room-1", Number: "101", Name: "Standard Single"}}
	orphan := sampleReservation()
	orphan.ID = "res-2"
	orphan.RoomID = "deleted-room"
	ov := &models.Overview{TotalRooms: 1, TotalReservations: 2, TotalRevenue: 600}

	var buf bytes.Buffer
	require.NoError(t, WriteReservationsXLSX(&buf, []*models.Reservation{sampleReservation(), orphan}, rooms, ov))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{reservationsSheet, summarySheet}, f.GetSheetList())

	rows, err := f.GetRows(reservationsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "101 Standard Single", rows[1][1])
	assert.Equal(t, "3", rows[1][7])
	assert.Equal(t, "deleted-room", rows[2][1])

	revenue, err := f.GetCellValue(summarySheet, "B9")
	require.NoError(t, err)
	assert.Equal(t, "600", revenue)
}

func TestWriteReservationsXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReservationsXLSX(&buf, nil, nil, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{reservationsSheet}, f.GetSheetList())
}

func TestWriteConfirmationPDF(t *testing.T) {
	room := &models.Room{ID: "room-1", Number: "101", Name: "Standard Single", Type: models.RoomSingle, PricePerNight: 100}

	var buf bytes.Buffer
	require.NoError(t, WriteConfirmationPDF(&buf, "Hotel", sampleReservation(), room))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	buf.Reset()
	require.NoError(t, WriteConfirmationPDF(&buf, "Hotel", sampleReservation(), nil))
	assert.NotZero(t, buf.Len())
}
