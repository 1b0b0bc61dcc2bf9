package main

import (
	"chat-rooms/projection"
	"chat-rooms/repositories"
	"chat-rooms/runtime/workers"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
)

func newTable(out io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func renderRooms(out io.Writer, rows []projection.RoomRow) {
	table := newTable(out, "Room", "Connected", "Bound", "Auto join")
	for _, row := range rows {
		table.Append([]string{
			row.Name,
			strconv.FormatBool(row.Connected),
			strconv.FormatBool(row.Bound),
			strconv.FormatBool(row.AutoJoin),
		})
	}
	table.Render()
}

// renderDiskRooms prints the persisted list, used when no dispatcher runs.
func renderDiskRooms(out io.Writer, rooms []repositories.DiskRoom) {
	table := newTable(out, "Room", "Connected", "Auto join", "Updated at")
	for _, room := range rooms {
		table.Append([]string{
			room.Name,
			strconv.FormatBool(room.Connected),
			strconv.FormatBool(room.AutoJoin),
			room.UpdatedAt.Format(time.RFC3339),
		})
	}
	table.Render()
}

func renderOutcomes(out io.Writer, outcomes []repositories.DiskOutcome) {
	table := newTable(out, "At", "Action", "Room", "Reason", "Reported", "Error")
	for _, o := range outcomes {
		table.Append([]string{
			o.At.Format(time.RFC3339),
			o.Action,
			o.Name,
			o.Reason,
			strconv.FormatBool(o.Reported),
			o.Error,
		})
	}
	table.Render()
}

func renderQueues(out io.Writer, stats []workers.ChannelCapacity) {
	table := newTable(out, "Queue", "Length", "Capacity", "Saturated")
	for _, s := range stats {
		table.Append([]string{
			s.Name,
			strconv.Itoa(s.Length),
			strconv.Itoa(s.Capacity),
			strconv.FormatBool(s.Saturated()),
		})
	}
	table.Render()
}

func renderRecords(out io.Writer, records []repositories.RawRecord) {
	table := newTable(out, "Key", "Value")
	for _, r := range records {
		table.Append([]string{r.Key, r.Value})
	}
	table.Render()
}
