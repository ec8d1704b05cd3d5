package report

import (
	"io"

	"github.com/jung-kurt/gofpdf"
)

// =============================================================================
// EXPORT - Team report rows rendered to PDF
// =============================================================================

// ExportPDF renders the three team-report row sets (total time, project
// level, task level) as one PDF document. The engine owns only the row
// shapes; this is the export collaborator consuming them.
func ExportPDF(w io.Writer, rep *TeamReport) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 10)

	pdf.AddPage()
	writeTitle(pdf, rep.Selector.Title())
	writeConsolidated(pdf, rep.Consolidated)

	pdf.AddPage()
	writeTitle(pdf, "Project Level Report")
	writeGroups(pdf, "Project", rep.ByProject)

	pdf.AddPage()
	writeTitle(pdf, "Task Level Report")
	writeGroups(pdf, "Task", rep.ByTask)

	return pdf.Output(w)
}

func writeTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, title)
	pdf.Ln(14)
}

func writeConsolidated(pdf *gofpdf.Fpdf, rows []ConsolidatedRow) {
	widths := []float64{70, 35, 30, 30, 30, 30, 30}
	header := []string{"Member", "Role", "Assigned", "Leave", "Expected", "Logged", "Remaining"}
	writeHeader(pdf, widths, header)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		cells := []string{
			row.Member.Name,
			string(row.Member.Role),
			row.Assigned.String(),
			row.Leave.String(),
			row.Expected.String(),
			row.Logged.String(),
			row.Remaining.String(),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 8, cell, "1", 0, "", false, 0, "")
		}
		pdf.Ln(8)
	}
}

func writeGroups(pdf *gofpdf.Fpdf, label string, rows []GroupRow) {
	widths := []float64{70, 35, 110, 40}
	writeHeader(pdf, widths, []string{"Member", "Role", label, "Logged"})

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		cells := []string{
			row.Member.Name,
			string(row.Member.Role),
			row.Group,
			row.Logged.String(),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 8, cell, "1", 0, "", false, 0, "")
		}
		pdf.Ln(8)
	}
}

func writeHeader(pdf *gofpdf.Fpdf, widths []float64, cells []string) {
	pdf.SetFont("Helvetica", "B", 10)
	for i, cell := range cells {
		pdf.CellFormat(widths[i], 8, cell, "1", 0, "", false, 0, "")
	}
	pdf.Ln(8)
}
