package controllers

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/rios0rios0/diffaudit/internal/domain/entities"
)

// RenderStats prints the summary as a table: one row per named category,
// totals in the footer.
func RenderStats(w io.Writer, stats entities.Stats) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle("FINAL DATASET STATISTICS")
	tbl.AppendHeader(table.Row{"File Type", "Mismatches"})

	for _, bucket := range stats.Categories {
		tbl.AppendRow(table.Row{string(bucket.Category), bucket.Discrepancies})
	}
	if stats.Other > 0 {
		tbl.AppendRow(table.Row{string(entities.CategoryOther), stats.Other})
	}

	tbl.AppendSeparator()
	tbl.AppendRow(table.Row{"Total Files Analyzed", stats.TotalFiles})
	tbl.AppendRow(table.Row{"Total Discrepancies Found", stats.TotalDiscrepancies})
	if stats.Incomplete > 0 {
		tbl.AppendFooter(table.Row{"Incomplete (diff failed)", stats.Incomplete})
	}
	tbl.Render()
}
