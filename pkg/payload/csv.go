package payload

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
)

// DecodeCSV parses comma-delimited text into row records. The first row is
// the header, lowercased to become field names. Every value stays a string.
// Rows whose column count does not match the header are skipped with a
// warning rather than aborting the decode.
func DecodeCSV(text string) []map[string]string {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return []map[string]string{}
	}
	for i, h := range header {
		header[i] = strings.ToLower(h)
	}

	rows := []map[string]string{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Msg("Skipping unreadable CSV row")
			continue
		}

		if len(record) != len(header) {
			log.Warn().
				Int("columns", len(record)).
				Int("header_columns", len(header)).
				Msg("Skipping CSV row with mismatched column count")
			continue
		}

		row := make(map[string]string, len(header))
		for i, field := range header {
			row[field] = record[i]
		}
		rows = append(rows, row)
	}

	return rows
}
