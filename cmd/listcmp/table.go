package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment, colorize bool) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if colorize {
		tw.Style().Color.Header = text.Colors{text.Bold, text.FgCyan}
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// columnsToRows turns per-column values into table rows, padding short
// columns with empty cells.
func columnsToRows(columns [][]string) [][]string {
	height := 0
	for _, column := range columns {
		height = max(height, len(column))
	}
	rows := make([][]string, height)
	for r := range rows {
		row := make([]string, len(columns))
		for c, column := range columns {
			if r < len(column) {
				row[c] = column[r]
			}
		}
		rows[r] = row
	}
	return rows
}

func uniformAlignment(n int, align columnAlignment) []columnAlignment {
	aligns := make([]columnAlignment, n)
	for i := range aligns {
		aligns[i] = align
	}
	return aligns
}

// emphasize wraps s in color codes when colorize is set.
func emphasize(s string, colorize bool, colors ...text.Color) string {
	if !colorize || len(colors) == 0 {
		return s
	}
	return text.Colors(colors).Sprint(s)
}
