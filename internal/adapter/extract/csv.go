package extract

import (
	"encoding/csv"
	"os"
	"strings"
)

// extractCSV flattens the table into one line per row with comma-separated
// fields, header row included.
func extractCSV(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return "", err
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, ", ")
	}
	return strings.Join(lines, "\n"), nil
}
