package exchange

import (
	"encoding/csv"
	"fmt"
	"io"

	"listcmp/internal/workspace"
)

// CommonColumn heads the column of values shared by every list.
const CommonColumn = "Common"

// WriteResultsCSV writes one column per comparison result: the unique values
// of each list under its name, then the common values. Shorter columns are
// padded with empty cells.
func WriteResultsCSV(w io.Writer, report workspace.Report, names map[int]string) error {
	writer := csv.NewWriter(w)

	columns := make([][]string, 0, len(report.Results))
	header := make([]string, 0, len(report.Results))
	rows := 0
	for _, res := range report.Results {
		if res.Common {
			header = append(header, CommonColumn)
		} else if name, ok := names[res.ListID]; ok && name != "" {
			header = append(header, name)
		} else {
			header = append(header, fmt.Sprintf("List %d", res.ListID))
		}
		column := make([]string, 0, len(res.UniqueValues))
		for _, value := range res.UniqueValues {
			column = append(column, value.Text())
		}
		columns = append(columns, column)
		rows = max(rows, len(column))
	}

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(columns))
	for row := 0; row < rows; row++ {
		for i, column := range columns {
			record[i] = ""
			if row < len(column) {
				record[i] = column[row]
			}
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", row+1, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
