package output

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jamesainslie/splendir/pkg/splendir/tree"
)

// topExtensions limits the extension breakdown to the largest contributors.
const topExtensions = 10

// AnalysisFormatter renders a summary of the scan: aggregate totals, the
// extension histogram ordered by size, a file type breakdown, and any
// per-entry errors.
type AnalysisFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *AnalysisFormatter) Format(w *bytes.Buffer, r *Result) error {
	f.writeHeader(w, r)
	f.writeExtensions(w, r)
	f.writeTypes(w, r)
	f.writeErrors(w, r)
	return nil
}

func (f *AnalysisFormatter) writeHeader(w *bytes.Buffer, r *Result) {
	var lines []string

	lines = append(lines, f.field(r, "Root:", r.Root))
	lines = append(lines, fmt.Sprintf("%s  %s  %s",
		f.field(r, "Files:", fmt.Sprintf("%d", r.Stats.Files)),
		f.field(r, "Dirs:", fmt.Sprintf("%d", r.Stats.Dirs)),
		f.field(r, "Total:", humanBytes(r.Stats.TotalSize))))
	lines = append(lines, f.field(r, "Elapsed:", r.Duration.Round(time.Millisecond).String()))

	if r.Cancelled {
		notice := "Scan cancelled before completion"
		if r.Color {
			notice = WarningStyle.Bold(true).Render(notice)
		}
		lines = append(lines, notice)
	}

	content := strings.Join(lines, "\n")
	if r.Color {
		content = HeaderBox.Render(content)
	}
	w.WriteString(content)
	w.WriteString("\n\n")
}

func (f *AnalysisFormatter) writeExtensions(w *bytes.Buffer, r *Result) {
	if len(r.Stats.Extensions) == 0 {
		return
	}

	type extRow struct {
		ext   string
		count int64
		size  int64
	}
	rows := make([]extRow, 0, len(r.Stats.Extensions))
	for ext, stat := range r.Stats.Extensions {
		rows = append(rows, extRow{ext: ext, count: stat.Count, size: stat.Size})
	}
	sort.Slice(rows, func(a, b int) bool {
		if rows[a].size != rows[b].size {
			return rows[a].size > rows[b].size
		}
		return rows[a].ext < rows[b].ext
	})
	if len(rows) > topExtensions {
		rows = rows[:topExtensions]
	}

	f.title(w, r, "Largest extensions")
	for _, row := range rows {
		ext := row.ext
		if ext == "" {
			ext = "(none)"
		}
		size := padLeft(humanBytes(row.size), 10)
		if r.Color {
			size = SizeStyle.Render(size)
		}
		fmt.Fprintf(w, "  %s  %-12s %d files\n", size, ext, row.count)
	}
	w.WriteByte('\n')
}

func (f *AnalysisFormatter) writeTypes(w *bytes.Buffer, r *Result) {
	root := tree.Build(r.Root, r.Rows)
	counts := root.CountByType()
	if len(counts) == 0 {
		return
	}

	types := make([]tree.FileType, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(a, b int) bool {
		if counts[types[a]] != counts[types[b]] {
			return counts[types[a]] > counts[types[b]]
		}
		return types[a].String() < types[b].String()
	})

	f.title(w, r, "By type")
	for _, t := range types {
		name := t.String()
		if r.Color {
			name = t.Style().Render(name)
		}
		fmt.Fprintf(w, "  %6d  %s\n", counts[t], name)
	}
	w.WriteByte('\n')
}

func (f *AnalysisFormatter) writeErrors(w *bytes.Buffer, r *Result) {
	if len(r.Stats.ErrorPaths) == 0 {
		return
	}

	f.title(w, r, fmt.Sprintf("Errors (%d)", r.Stats.Errors))
	for _, path := range r.Stats.ErrorPaths {
		line := "  " + path
		if r.Color {
			line = ErrorStyle.Render(line)
		}
		w.WriteString(line)
		w.WriteByte('\n')
	}
}

func (f *AnalysisFormatter) field(r *Result, label, value string) string {
	if r.Color {
		return LabelStyle.Render(label) + " " + ValueStyle.Render(value)
	}
	return label + " " + value
}

func (f *AnalysisFormatter) title(w *bytes.Buffer, r *Result, s string) {
	if r.Color {
		s = TitleStyle.Render(s)
	}
	w.WriteString(s)
	w.WriteByte('\n')
}

// humanBytes renders a byte count in binary units.
func humanBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

func init() {
	Register("analysis", func() Formatter {
		return &AnalysisFormatter{}
	})
}

// Ensure AnalysisFormatter implements Formatter.
var _ Formatter = (*AnalysisFormatter)(nil)
