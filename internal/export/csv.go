package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"paytrack/internal/core"
)

// csvHeader matches the column order spreadsheet users expect.
var csvHeader = []string{
	"date", "workplace", "hours", "start_time", "end_time", "shift_type", "total_pay",
}

// WriteShiftsCSV streams shifts as CSV, header first.
func WriteShiftsCSV(w io.Writer, shifts []core.Shift) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, s := range shifts {
		record := []string{
			s.Date.String(),
			s.WorkplaceName,
			strconv.FormatFloat(s.Hours, 'f', 2, 64),
			s.Start.String(),
			s.End.String(),
			s.ShiftType,
			strconv.FormatFloat(s.TotalPay.Dollars(), 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
