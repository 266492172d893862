package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column describes one table column. Headers are always left aligned.
type column struct {
	title string
	align text.Align
}

var (
	entryColumns = []column{
		{"Pack", text.AlignRight},
		{"Bot", text.AlignLeft},
		{"Name", text.AlignLeft},
		{"Size", text.AlignRight},
	}
	checkColumns = []column{
		{"Finder", text.AlignLeft},
		{"Status", text.AlignLeft},
		{"Time", text.AlignRight},
		{"Error", text.AlignLeft},
	}
)

// renderTable renders rows under the given columns. Every row must have
// one cell per column.
func renderTable(columns []column, rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, 0, len(columns))
	configs := make([]table.ColumnConfig, 0, len(columns))
	for i, c := range columns {
		header = append(header, c.title)
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       c.align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, 0, len(row))
		for _, cell := range row {
			r = append(r, cell)
		}
		tw.AppendRow(r)
	}

	return tw.Render()
}
