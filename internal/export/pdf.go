package export

import (
	"bytes"
	"fmt"
	"io"

	"hotel/internal/models"
	"hotel/internal/service"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// WriteConfirmationPDF renders a one-page booking confirmation. The QR code
// encodes the reservation id for check-in at the front desk.
func WriteConfirmationPDF(w io.Writer, hotelName string, res *models.Reservation, room *models.Room) error {
	qrPNG, err := qrcode.Encode(res.ID, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Reservation %s", res.ID), true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, hotelName)
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 13)
	pdf.Cell(0, 8, "Reservation confirmation")
	pdf.Ln(14)

	line := func(label, value string) {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(45, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}

	line("Reservation", res.ID)
	line("Status", string(res.Status))
	line("Guest", res.GuestName)
	line("Email", res.GuestEmail)
	if res.GuestPhone != "" {
		line("Phone", res.GuestPhone)
	}
	if room != nil {
		line("Room", fmt.Sprintf("%s - %s (%s)", room.Number, room.Name, room.Type))
		line("Rate", fmt.Sprintf("$%.2f / night", room.PricePerNight))
	}
	line("Check-in", res.CheckIn.String())
	line("Check-out", res.CheckOut.String())
	line("Nights", fmt.Sprintf("%d", service.Nights(res.CheckIn, res.CheckOut)))
	line("Guests", fmt.Sprintf("%d", res.Guests))
	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 10, fmt.Sprintf("Total: $%.2f", res.TotalPrice), "T", 1, "L", false, 0, "")

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return pdf.Output(w)
}
