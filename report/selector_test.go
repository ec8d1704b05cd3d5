package report_test

import (
	"errors"
	"testing"
	"time"

	"github.com/warp/timesheet-engine/report"
	"github.com/warp/timesheet-engine/workforce"
)

func TestSelector_WeekPeriod(t *testing.T) {
	// June 2025 starts on a Sunday: week 0 is just [Jun 1, Jun 1].
	sel := report.Selector{Kind: report.KindWeek, Year: 2025, Month: time.June, WeekIndex: 0}
	p, err := sel.Period()
	if err != nil {
		t.Fatalf("Period failed: %v", err)
	}
	if p.Start.String() != "2025-06-01" || p.End.String() != "2025-06-01" {
		t.Errorf("week 0 = %s, want [2025-06-01, 2025-06-01]", p)
	}

	sel.WeekIndex = 2
	p, err = sel.Period()
	if err != nil {
		t.Fatalf("Period failed: %v", err)
	}
	if p.Start.String() != "2025-06-09" || p.End.String() != "2025-06-15" {
		t.Errorf("week 2 = %s, want [2025-06-09, 2025-06-15]", p)
	}
}

func TestSelector_InvalidInputs(t *testing.T) {
	cases := []report.Selector{
		{Kind: report.KindYear, Year: 0},
		{Kind: report.KindMonth, Year: 2025, Month: 13},
		{Kind: report.KindWeek, Year: 2025, Month: time.June, WeekIndex: 99},
		{Kind: report.KindWeek, Year: 2025, Month: time.June, WeekIndex: -1},
		{Kind: "quarter", Year: 2025},
	}
	for _, sel := range cases {
		if _, err := sel.Period(); !errors.Is(err, workforce.ErrInvalidPeriod) {
			t.Errorf("selector %+v: got %v, want ErrInvalidPeriod", sel, err)
		}
	}
}

func TestSelector_Title(t *testing.T) {
	year := report.Selector{Kind: report.KindYear, Year: 2025}
	if got := year.Title(); got != "Report for 2025" {
		t.Errorf("year title = %q", got)
	}

	month := report.Selector{Kind: report.KindMonth, Year: 2025, Month: time.June}
	if got := month.Title(); got != "Report for June 2025" {
		t.Errorf("month title = %q", got)
	}

	week := report.Selector{Kind: report.KindWeek, Year: 2025, Month: time.June, WeekIndex: 2}
	if got := week.Title(); got != "Report for W3 (9-15) June 2025" {
		t.Errorf("week title = %q", got)
	}
}
