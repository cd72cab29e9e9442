package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVExporter renders a payment statement into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the statement.
func (e *CSVExporter) Render(statement Statement) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(statementHeaders); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, record := range statement.records() {
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
