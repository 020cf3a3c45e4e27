package tickets

import (
	"bytes"
	"fmt"
	"strings"

	"busly/internal/upstream"

	"github.com/phpdave11/gofpdf"
)

// RenderTicketPDF renders one persisted reservation record as a
// printable A4 ticket. Returns the PDF bytes and a download filename.
func RenderTicketPDF(rec upstream.SeatRecord) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Bus Ticket", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUS TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Ticket Number : %s", rec.TicketNumber),
		fmt.Sprintf("Bus Number    : %s", string(rec.SlNo)),
		fmt.Sprintf("Route         : %s -> %s", rec.FromLocation, rec.ToLocation),
		fmt.Sprintf("Date / Time   : %s %s", rec.Date, rec.DepartureTimings),
		fmt.Sprintf("Seat          : %s", rec.SelectedSeat),
		fmt.Sprintf("Passenger     : %s", rec.PassengerName),
		fmt.Sprintf("Age / Gender  : %s / %s", string(rec.PassengerAge), rec.PassengerGender),
		fmt.Sprintf("Mobile        : %s", string(rec.PassengerMobileNumber)),
		fmt.Sprintf("Price (INR)   : %.2f", float64(rec.TicketPrice)),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This ticket is valid for one passenger (one seat). Please present it at departure.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render ticket pdf: %w", err)
	}

	filename := fmt.Sprintf("ticket-%s.pdf", safeFilenamePart(rec.TicketNumber))
	return buf.Bytes(), filename, nil
}

func safeFilenamePart(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
