package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"househunters/listing"
)

func formatJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			width := 0
			if i < len(widths) {
				width = widths[i]
			}
			parts[i] = cell + strings.Repeat(" ", max(0, width-len([]rune(cell))))
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	printRow(headers)
	seps := make([]string, len(headers))
	for i, width := range widths {
		seps[i] = strings.Repeat("-", width)
	}
	printRow(seps)
	for _, row := range rows {
		printRow(row)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// propertyRows renders listings through the same card view the web grid uses.
func propertyRows(props []listing.Property) [][]string {
	rows := make([][]string, 0, len(props))
	for _, c := range listing.List(props) {
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10),
			truncate(c.Title, 40),
			truncate(c.Location, 28),
			c.PriceLabel + c.PricePeriod,
			strconv.Itoa(c.Bedrooms),
			strconv.Itoa(c.Bathrooms),
			strings.Join(c.Badges, ", "),
		})
	}
	return rows
}

var propertyHeaders = []string{"ID", "TITLE", "LOCATION", "PRICE", "BEDS", "BATHS", "TAGS"}

func printProperties(w io.Writer, props []listing.Property) error {
	if flagFmt == "json" {
		return formatJSON(w, props)
	}
	formatTable(w, propertyHeaders, propertyRows(props))
	return nil
}
