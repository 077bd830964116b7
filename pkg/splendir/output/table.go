package output

import (
	"bytes"
	"fmt"
	"strings"
)

// TableFormatter renders the flat entry listing as an aligned text table,
// one row per scanned entry in display order.
type TableFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *TableFormatter) Format(w *bytes.Buffer, r *Result) error {
	sizeWidth := 8
	for i := range r.Rows {
		if n := len(r.At(i).HumanSize()); n > sizeWidth {
			sizeWidth = n
		}
	}

	header := fmt.Sprintf("%s  %-19s  %-16s  %s",
		padLeft("SIZE", sizeWidth), "MODIFIED", "SHA256", "PATH")
	if r.Color {
		header = LabelStyle.Render(header)
	}
	w.WriteString(header)
	w.WriteByte('\n')

	for i := range r.Rows {
		row := r.At(i)

		size := padLeft(row.HumanSize(), sizeWidth)
		if row.IsDir {
			size = padLeft("-", sizeWidth)
		}
		if r.Color {
			size = SizeStyle.Render(size)
		}

		digest := shortDigest(row.SHA256)
		modified := "-"
		if !row.ModTime.IsZero() {
			modified = row.ModTime.Format("2006-01-02 15:04:05")
		}

		fmt.Fprintf(w, "%s  %-19s  %-16s  %s", size, modified, digest, row.Path)
		if row.Error != nil {
			note := fmt.Sprintf("  [%s: %s]", row.Error.Kind, row.Error.Message)
			if r.Color {
				note = ErrorStyle.Render(note)
			}
			w.WriteString(note)
		}
		w.WriteByte('\n')
	}

	summary := fmt.Sprintf("\n%d files, %d directories, %s total",
		r.Stats.Files, r.Stats.Dirs, humanBytes(r.Stats.TotalSize))
	if r.Stats.Errors > 0 {
		summary += fmt.Sprintf(", %d errors", r.Stats.Errors)
	}
	if r.Cancelled {
		summary += " (cancelled)"
	}
	if r.Color {
		summary = MutedStyle.Render(summary)
	}
	w.WriteString(summary)
	w.WriteByte('\n')

	return nil
}

// shortDigest truncates a hex digest for column display.
func shortDigest(digest string) string {
	if digest == "" {
		return "-"
	}
	if len(digest) > 16 {
		return digest[:16]
	}
	return digest
}

// padLeft pads a string with spaces on the left to achieve the desired width.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func init() {
	Register("table", func() Formatter {
		return &TableFormatter{}
	})
}

// Ensure TableFormatter implements Formatter.
var _ Formatter = (*TableFormatter)(nil)
