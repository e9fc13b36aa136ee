// Package output renders report results and load summaries.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/chetanu/foodlink/pkg/application/dto"
	"github.com/chetanu/foodlink/pkg/application/services"
)

// Render writes a single result in the requested format
func Render(w io.Writer, result *dto.Result, format string) error {
	switch format {
	case "text":
		return renderText(w, result)
	case "json":
		return renderJSON(w, result)
	case "csv":
		return renderCSV(w, result)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// RenderAll writes every outcome of a full run in catalog order.
// Failed entries are reported inline and do not abort rendering.
func RenderAll(w io.Writer, names []string, outcomes map[string]services.Outcome, format string) error {
	for _, name := range names {
		outcome, ok := outcomes[name]
		if !ok {
			continue
		}
		if outcome.Err != nil {
			fmt.Fprintf(w, "✗ %s: %v\n\n", name, outcome.Err)
			continue
		}
		if err := Render(w, outcome.Result, format); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}

// RenderSummary prints the outcome of one CSV load
func RenderSummary(w io.Writer, summary *dto.LoadSummary) {
	fmt.Fprintf(w, "%s: %d accepted, %d rejected\n", summary.Kind, summary.Accepted, summary.Rejected)
	for _, re := range summary.Errors {
		fmt.Fprintf(w, "  row %d: %v\n", re.Row, re.Err)
	}
}

func renderText(w io.Writer, result *dto.Result) error {
	fmt.Fprintf(w, "📊 %s (%d rows, %v)\n", result.Query, result.RowCount, result.Elapsed)

	widths := make([]int, len(result.Columns))
	for i, col := range result.Columns {
		widths[i] = len(col)
	}
	cells := make([][]string, len(result.Rows))
	for r, row := range result.Rows {
		cells[r] = make([]string, len(row))
		for c, v := range row {
			cells[r][c] = formatValue(v)
			if c < len(widths) && len(cells[r][c]) > widths[c] {
				widths[c] = len(cells[r][c])
			}
		}
	}

	for i, col := range result.Columns {
		fmt.Fprintf(w, "%-*s  ", widths[i], col)
	}
	fmt.Fprintln(w)
	for i := range result.Columns {
		fmt.Fprintf(w, "%-*s  ", widths[i], dashes(widths[i]))
	}
	fmt.Fprintln(w)

	for _, row := range cells {
		for c, cell := range row {
			fmt.Fprintf(w, "%-*s  ", widths[c], cell)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func renderJSON(w io.Writer, result *dto.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func renderCSV(w io.Writer, result *dto.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(result.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range result.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = formatValue(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ListQueries prints the catalog names with descriptions, sorted
func ListQueries(w io.Writer, runner *services.Runner) {
	names := runner.Names()
	sort.Strings(names)
	for _, name := range names {
		entry, ok := runner.Describe(name)
		if !ok {
			continue
		}
		if entry.ParamHint != "" {
			fmt.Fprintf(w, "  %-36s %s (params: %s)\n", name, entry.Description, entry.ParamHint)
			continue
		}
		fmt.Fprintf(w, "  %-36s %s\n", name, entry.Description)
	}
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func dashes(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '-'
	}
	return string(b)
}
