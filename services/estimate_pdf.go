package services

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/yeremiapane/catering-boq/models"
	"github.com/yeremiapane/catering-boq/utils"
)

// RenderEstimatePDF writes the bill of quantities of an event as an A4 PDF. customer may
// be nil when the event has no known customer.
func RenderEstimatePDF(w io.Writer, ev models.Event, customer *models.Customer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Bill of Quantities "+ev.Name, false)
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Bill of Quantities", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	details := [][2]string{
		{"Event", ev.Name},
		{"Event type", ev.EventType},
		{"Date", ev.EventDate},
		{"Time", ev.StartTime + " - " + ev.EndTime},
		{"Guests", strconv.Itoa(ev.GuestCount)},
		{"Service", ev.CateringServiceType},
		{"Reference", ev.EventID},
	}
	if customer != nil {
		details = append(details,
			[2]string{"Customer", customer.CompanyName},
			[2]string{"Contact", customer.ContactPerson + " " + customer.Mobile})
	}
	for _, row := range details {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(35, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	widths := []float64{80, 25, 35, 40}
	header := []string{"Item", "Qty", "Unit price", "Total"}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range header {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 7, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	for _, sel := range ev.Selections {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(widths[0], 6, sel.MenuName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, strconv.Itoa(sel.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, utils.FormatAmount(sel.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, utils.FormatAmount(sel.TotalPrice), "1", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 8)
		for _, line := range sel.Ingredients {
			pdf.CellFormat(widths[0], 5, "    "+line.Name, "LR", 0, "L", false, 0, "")
			pdf.CellFormat(widths[1], 5, line.Quantity, "LR", 0, "R", false, 0, "")
			pdf.CellFormat(widths[2], 5, utils.FormatAmount(line.UnitPrice), "LR", 0, "R", false, 0, "")
			pdf.CellFormat(widths[3], 5, utils.FormatAmount(line.LineTotal), "LR", 1, "R", false, 0, "")
		}
	}
	pdf.Ln(4)

	totals := [][2]string{
		{"Menu subtotal", utils.FormatNaira(ev.MenuSubtotal)},
		{"Service surcharge", utils.FormatNaira(ev.ServiceSurcharge)},
		{fmt.Sprintf("Duration surcharge (%d h)", ev.DurationHours), utils.FormatNaira(ev.DurationSurcharge)},
		{"Grand total", utils.FormatNaira(ev.GrandTotal)},
	}
	for i, row := range totals {
		style := ""
		if i == len(totals)-1 {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(widths[0]+widths[1]+widths[2], 6, row[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, row[1], "", 1, "R", false, 0, "")
	}

	if servings := ev.Servings(); ev.GuestCount > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 5, fmt.Sprintf("%d portions for %d guests (%s per guest)",
			servings.TotalPortions, ev.GuestCount, servings.PortionsPerGuest.StringFixed(2)), "", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render estimate pdf: %w", err)
	}
	return nil
}
