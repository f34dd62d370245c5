// Package output serializes the current result set for files and the
// terminal.
package output

import (
	"bufio"
	"os"
	"sort"
	"strings"

	"github.com/partscout/partscout/pkg/models"
)

// SaveCSV writes the result set to a CSV file. The header row is the
// response's ordered column set; every value is double-quoted, and missing
// values are written as empty strings, not a display placeholder.
func SaveCSV(resp *models.ScrapeResponse, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	columns := columnsOf(resp)
	writeRow(w, columns)
	for _, rec := range resp.Data {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = rec[col]
		}
		writeRow(w, row)
	}
	return w.Flush()
}

// writeRow emits one record with every field quoted, inner quotes doubled.
func writeRow(w *bufio.Writer, row []string) {
	for i, v := range row {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(v, `"`, `""`))
		w.WriteByte('"')
	}
	w.WriteByte('\n')
}

// columnsOf returns the response's declared column order, falling back to
// nothing when the response carries none (empty result sets export a bare
// file).
func columnsOf(resp *models.ScrapeResponse) []string {
	if len(resp.Columns) > 0 {
		return resp.Columns
	}
	if len(resp.Data) == 0 {
		return nil
	}
	cols := make([]string, 0, len(resp.Data[0]))
	for k := range resp.Data[0] {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}
