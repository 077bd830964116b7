package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"
)

// CSVFormatter formats the entry listing as comma-separated values with
// proper quoting. It uses encoding/csv for RFC 4180 compliant output.
type CSVFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *CSVFormatter) Format(w *bytes.Buffer, r *Result) error {
	writer := csv.NewWriter(w)

	header := []string{"name", "path", "dir", "depth", "size", "modified", "sha256", "md5", "format", "error"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i := range r.Rows {
		row := r.At(i)

		modified := ""
		if !row.ModTime.IsZero() {
			modified = row.ModTime.Format(time.RFC3339)
		}
		errMsg := ""
		if row.Error != nil {
			errMsg = row.Error.Error()
		}

		record := []string{
			row.Name,
			row.Path,
			strconv.FormatBool(row.IsDir),
			strconv.Itoa(row.Depth),
			strconv.FormatInt(row.Size, 10),
			modified,
			row.SHA256,
			row.MD5,
			row.FormatHint,
			errMsg,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func init() {
	Register("csv", func() Formatter {
		return &CSVFormatter{}
	})
}

// Ensure CSVFormatter implements Formatter.
var _ Formatter = (*CSVFormatter)(nil)
