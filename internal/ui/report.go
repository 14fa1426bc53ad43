// Package ui renders batch results and room listings for the terminal.
package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"roomtrooper/internal/domain"
)

// RenderReport writes the batch summary, then the per-row failure list,
// warnings, and advisories when there are any.
func RenderReport(w io.Writer, report domain.Report) {
	summary := table.NewWriter()
	summary.SetStyle(table.StyleRounded)
	summary.AppendHeader(table.Row{"run", "rows", "succeeded", "failed", "warnings"})
	summary.AppendRow(table.Row{
		report.RunID,
		report.Total(),
		colorCount(report.Succeeded, text.FgGreen),
		colorCount(report.Failed, text.FgRed),
		len(report.Warnings),
	})
	fmt.Fprintln(w, summary.Render())

	if len(report.Errors) > 0 {
		failures := table.NewWriter()
		failures.SetStyle(table.StyleRounded)
		failures.AppendHeader(table.Row{"row", "outcome", "reason"})
		for _, failure := range report.Errors {
			failures.AppendRow(table.Row{failure.Row, string(failure.Outcome.Kind), failure.Outcome.Reason})
		}
		failures.SetColumnConfigs([]table.ColumnConfig{
			{Number: 3, WidthMax: 80},
		})
		fmt.Fprintln(w, failures.Render())
	}

	for _, warning := range report.Warnings {
		fmt.Fprintln(w, text.FgYellow.Sprintf("warning: %s", warning.Message))
	}
	for _, advisory := range report.Advisories {
		fmt.Fprintln(w, text.FgYellow.Sprintf(
			"advisory: row %d asked to rename site %s to %q, but that name already belongs to site %s; the room was attached to %s instead",
			advisory.Row, advisory.FromSiteID, advisory.RequestedName, advisory.ToSiteID, advisory.ToSiteID,
		))
	}
}

// RenderRooms writes the exported room inventory as a table.
func RenderRooms(w io.Writer, rooms []domain.RoomRecord) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"name", "id", "capacity", "size", "floor", "site"})
	for _, room := range rooms {
		capacity := ""
		if room.Capacity != nil {
			capacity = strconv.Itoa(*room.Capacity)
		}
		floor := ""
		if room.Floor != nil {
			floor = *room.Floor
		}
		site := ""
		if room.Site != nil {
			site = room.Site.Name
		}
		tw.AppendRow(table.Row{room.Name, room.ID, capacity, string(room.Size), floor, site})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
	})
	fmt.Fprintln(w, tw.Render())
	fmt.Fprintf(w, "total rooms: %d\n", len(rooms))
}

// RenderIdentity writes the credential banner shown at startup.
func RenderIdentity(w io.Writer, name, role string) {
	if role != "" {
		fmt.Fprintf(w, "authenticated as %s (%s)\n", name, role)
		return
	}
	fmt.Fprintf(w, "authenticated as %s\n", name)
}

func colorCount(n int, color text.Color) string {
	if n == 0 {
		return strconv.Itoa(n)
	}
	return color.Sprint(n)
}
