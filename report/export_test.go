package report_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/warp/timesheet-engine/calendar"
	"github.com/warp/timesheet-engine/report"
)

func TestExportPDF_RendersDocument(t *testing.T) {
	snap, admin := teamSnapshot()
	rep, err := report.Team(snap, admin, weekOfJune9(), calendar.NewDate(2026, time.January, 15))
	if err != nil {
		t.Fatalf("Team failed: %v", err)
	}

	var buf bytes.Buffer
	if err := report.ExportPDF(&buf, rep); err != nil {
		t.Fatalf("ExportPDF failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output must be a PDF document")
	}
	if buf.Len() < 1000 {
		t.Errorf("PDF suspiciously small: %d bytes", buf.Len())
	}
}
