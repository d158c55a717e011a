package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/espalier/internal/presentation/tui"
	"github.com/aretw0/espalier/pkg/matcher"
)

// Format selects how matches are written.
type Format string

const (
	FormatText  Format = "text"
	FormatCSV   Format = "csv"
	FormatTable Format = "table"
)

// ParseFormat maps a flag value to a Format. An empty value means text.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "", string(FormatText):
		return FormatText, nil
	case string(FormatCSV):
		return FormatCSV, nil
	case string(FormatTable):
		return FormatTable, nil
	}
	return "", fmt.Errorf("unknown output format %q (expected text, csv or table)", name)
}

// WriteMatches renders the collected matches in the given format.
// The styled flag enables ANSI rendering for the table format; the other
// formats ignore it.
func WriteMatches(w io.Writer, matches []matcher.Match, format Format, styled bool) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, matches)
	case FormatTable:
		return writeTable(w, matches, styled)
	default:
		return writeText(w, matches)
	}
}

func writeText(w io.Writer, matches []matcher.Match) error {
	for _, m := range matches {
		if _, err := fmt.Fprintf(w, "Pattern '%s' found at position %d\n", m.Pattern, m.Position); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nTotal matches found: %d\n", len(matches))
	return err
}

func writeCSV(w io.Writer, matches []matcher.Match) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"position", "pattern"}); err != nil {
		return err
	}
	for _, m := range matches {
		if err := cw.Write([]string{strconv.Itoa(m.Position), m.Pattern}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeTable(w io.Writer, matches []matcher.Match, styled bool) error {
	var sb strings.Builder
	sb.WriteString("| Position | Pattern |\n")
	sb.WriteString("|---------:|---------|\n")
	for _, m := range matches {
		sb.WriteString(fmt.Sprintf("| %d | %s |\n", m.Position, m.Pattern))
	}
	sb.WriteString(fmt.Sprintf("\nTotal matches found: %d\n", len(matches)))
	markdown := sb.String()

	if styled {
		render := tui.NewRenderer()
		if rendered, err := render(markdown); err == nil {
			_, werr := fmt.Fprint(w, rendered)
			return werr
		}
		// Rendering failed; fall back to plain markdown.
	}
	_, err := fmt.Fprint(w, markdown)
	return err
}
