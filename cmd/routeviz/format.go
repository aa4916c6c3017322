package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// stdout is swapped in tests.
var stdout io.Writer = os.Stdout

func validateFormat(f string) error {
	switch f {
	case "json", "table", "quiet":
		return nil
	default:
		return fmt.Errorf("unknown --format %q (want json, table or quiet)", f)
	}
}

func formatJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func formatTable(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			w := 0
			if i < len(widths) {
				w = widths[i]
			}
			parts[i] = fmt.Sprintf("%-*s", w, cell)
		}
		fmt.Fprintln(stdout, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	printRow(headers)
	seps := make([]string, len(headers))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}
	printRow(seps)
	for _, row := range rows {
		printRow(row)
	}
}

// output renders v according to --format. table is called for table output
// and quiet is the single value printed for quiet output.
func output(v any, table func(), quiet string) error {
	switch flagFmt {
	case "quiet":
		fmt.Fprintln(stdout, quiet)
		return nil
	case "table":
		if table != nil {
			table()
			return nil
		}
		return formatJSON(v)
	default:
		return formatJSON(v)
	}
}

func ftoa(f float64, prec int) string {
	return strconv.FormatFloat(f, 'f', prec, 64)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
