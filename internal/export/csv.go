// Package export renders report data into exchange formats.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/guttosm/clinic-client/internal/domain/model"
)

// ErrNoData is returned when a report without bills is exported.
var ErrNoData = errors.New("no data to export")

// dailyReportHeader matches the columns of the daily report table.
var dailyReportHeader = []string{"Bill #", "Time", "Patient", "Amount", "Status"}

// DailyReportCSV writes the report's bills as CSV, one row per bill.
func DailyReportCSV(w io.Writer, report *model.DailyReport) error {
	if report == nil || len(report.Bills) == 0 {
		return ErrNoData
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(dailyReportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, bill := range report.Bills {
		row := []string{
			bill.BillNumber,
			billTime(bill.Date),
			bill.PatientName,
			strconv.FormatFloat(bill.GrandTotal, 'f', -1, 64),
			string(bill.Status),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// DailyReportFilename returns the download name for a report date.
func DailyReportFilename(date string) string {
	return "daily_report_" + date + ".csv"
}

// billTime renders the bill timestamp as HH:MM, leaving unparseable values
// as they came from the server.
func billTime(date string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format("15:04")
		}
	}
	return date
}
