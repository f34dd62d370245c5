package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/partscout/partscout/internal/normalize"
	"github.com/partscout/partscout/internal/ui"
	"github.com/partscout/partscout/pkg/models"
)

// maxCellWidth keeps long extracted values from wrecking the table layout.
const maxCellWidth = 40

// PrintTable renders the result set as an aligned terminal table. The
// confidence column is shown as a colored badge; other empty cells render
// as "N/A" (display only, exports keep them empty).
func PrintTable(w io.Writer, resp *models.ScrapeResponse) {
	columns := columnsOf(resp)
	if len(columns) == 0 || len(resp.Data) == 0 {
		fmt.Fprintln(w, "No results.")
		return
	}

	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col)
	}
	cells := make([][]string, len(resp.Data))
	for r, rec := range resp.Data {
		cells[r] = make([]string, len(columns))
		for i, col := range columns {
			cells[r][i] = displayValue(col, rec[col])
			if n := visibleLen(cells[r][i]); n > widths[i] {
				widths[i] = n
			}
		}
	}

	for i, col := range columns {
		fmt.Fprintf(w, "%s%s  ", ui.Bold(col), pad(col, widths[i]))
	}
	fmt.Fprintln(w)
	for _, row := range cells {
		for i, cell := range row {
			fmt.Fprintf(w, "%s%s  ", cell, pad(cell, widths[i]))
		}
		fmt.Fprintln(w)
	}
}

// PrintUsage renders the metering line shown after an API-backed scrape.
func PrintUsage(w io.Writer, usage *models.UsageInfo) {
	if usage == nil {
		return
	}
	fmt.Fprintf(w, "%s\n", ui.Dim(fmt.Sprintf(
		"credits used: %d, remaining: %d", usage.CreditsUsed, usage.CreditsRemaining)))
}

func displayValue(column, value string) string {
	if column == models.ConfidenceKey {
		return badge(value)
	}
	if value == "" {
		return "N/A"
	}
	// Truncate on rune boundaries so multi-byte values stay valid UTF-8.
	if runes := []rune(value); len(runes) > maxCellWidth {
		return string(runes[:maxCellWidth-3]) + "..."
	}
	return value
}

func badge(confidence string) string {
	label := fmt.Sprintf("%s (%s)", normalize.BadgeFor(confidence), confidence)
	switch normalize.BadgeFor(confidence) {
	case normalize.BadgeHigh:
		return ui.Success(label)
	case normalize.BadgeMedium:
		return ui.Warn(label)
	default:
		return ui.Error(label)
	}
}

// visibleLen measures a cell without its ANSI escapes.
func visibleLen(s string) int {
	n := 0
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\033':
			inEscape = true
		default:
			n++
		}
	}
	return n
}

func pad(cell string, width int) string {
	n := width - visibleLen(cell)
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
