package sheets

import (
	"encoding/csv"
	"fmt"
	"strings"

	"pincheck/domain/core"
	"pincheck/domain/schema"
)

// DecodeCSV parses a tabular body into a table: first record is the header
// row, normalized for resolution; every later record becomes a row keyed by
// those headers. Sheet exports are ragged in practice, so quoting is lax,
// short rows read as empty cells, and cells are trimmed.
func DecodeCSV(body string) (*core.Table, error) {
	reader := csv.NewReader(strings.NewReader(body))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv payload: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv payload has no header row")
	}

	headers := schema.NormalizeAll(records[0])

	rows := make([]core.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(core.Row, len(headers))
		for j, header := range headers {
			if j < len(record) {
				row[header] = strings.TrimSpace(record[j])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	return core.NewTable(headers, rows), nil
}
