package export

import (
	"fmt"
	"io"

	"hotel/internal/models"
	"hotel/internal/service"

	"github.com/xuri/excelize/v2"
)

const (
	reservationsSheet = "Reservations"
	summarySheet      = "Summary"
)

var reservationHeaders = []string{
	"ID", "Room", "Guest", "Email", "Phone", "Check-in", "Check-out", "Nights", "Guests", "Status", "Total", "Created",
}

// WriteReservationsXLSX renders reservations and the overview figures as a workbook.
// Rooms are looked up by id; reservations whose room was deleted show the raw id.
func WriteReservationsXLSX(w io.Writer, reservations []*models.Reservation, rooms map[string]*models.Room, ov *models.Overview) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(reservationsSheet)
	if err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	moneyStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 4})

	for i, h := range reservationHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(reservationsSheet, cell, h)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(reservationHeaders), 1)
	_ = f.SetCellStyle(reservationsSheet, "A1", lastHeader, headerStyle)

	for i, res := range reservations {
		row := i + 2
		room := res.RoomID
		if r, ok := rooms[res.RoomID]; ok {
			room = fmt.Sprintf("%s %s", r.Number, r.Name)
		}
		values := []interface{}{
			res.ID,
			room,
			res.GuestName,
			res.GuestEmail,
			res.GuestPhone,
			res.CheckIn.String(),
			res.CheckOut.String(),
			service.Nights(res.CheckIn, res.CheckOut),
			res.Guests,
			string(res.Status),
			res.TotalPrice,
			res.CreatedAt.Format("2006-01-02 15:04"),
		}
		start, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(reservationsSheet, start, &values); err != nil {
			return fmt.Errorf("error writing row %d: %w", row, err)
		}
		totalCell, _ := excelize.CoordinatesToCellName(11, row)
		_ = f.SetCellStyle(reservationsSheet, totalCell, totalCell, moneyStyle)
	}

	_ = f.SetColWidth(reservationsSheet, "A", "A", 38)
	_ = f.SetColWidth(reservationsSheet, "B", "E", 24)
	_ = f.SetColWidth(reservationsSheet, "F", "L", 14)
	_ = f.SetPanes(reservationsSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	if ov != nil {
		if err := writeSummary(f, ov, headerStyle); err != nil {
			return err
		}
	}

	_ = f.DeleteSheet("Sheet1")

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, ov *models.Overview, headerStyle int) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total rooms", ov.TotalRooms},
		{"Available rooms", ov.AvailableRooms},
		{"Total reservations", ov.TotalReservations},
		{"Pending reservations", ov.PendingReservations},
		{"Confirmed reservations", ov.ConfirmedReservations},
		{"Total staff", ov.TotalStaff},
		{"Active staff", ov.ActiveStaff},
		{"Revenue", ov.TotalRevenue},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("error writing summary: %w", err)
		}
	}
	_ = f.SetCellStyle(summarySheet, "A1", "B1", headerStyle)
	_ = f.SetColWidth(summarySheet, "A", "A", 26)
	return nil
}
