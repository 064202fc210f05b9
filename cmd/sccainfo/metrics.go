package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Velocidex/ordereddict"
	"github.com/olekukonko/tablewriter"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/dfir-go/goscca"
	"github.com/dfir-go/goscca/parser"
)

var (
	metrics_command = app.Command(
		"metrics", "List the per-file load metrics recorded in a Prefetch file.")

	metrics_command_file_arg = metrics_command.Arg(
		"file", "The .pf file to inspect.",
	).Required().String()
)

func doMetrics() {
	model := parseFile(*metrics_command_file_arg)

	if *json_flag {
		rows := []*ordereddict.Dict{}
		for i := 0; i < model.MetricsCount(); i++ {
			m, err := model.Metric(i)
			kingpin.FatalIfError(err, "Metric")

			row := ordereddict.NewDict().
				Set("start_time_ms", m.StartTimeMS).
				Set("duration_ms", m.DurationMS).
				Set("average_duration_ms", m.AverageDurationMS).
				Set("flags", m.Flags)

			if m.HasFileReference {
				ref := parser.FileReference(m.FileReference)
				row.Set("mft_entry", goscca.MFTEntry(ref))
				row.Set("mft_sequence", goscca.MFTSequence(ref))
			}

			rows = append(rows, row)
		}

		serialized, err := json.MarshalIndent(rows, " ", " ")
		kingpin.FatalIfError(err, "Marshal")
		fmt.Println(string(serialized))
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Start MS", "Duration MS", "Avg Duration MS", "Flags", "MFT Ref"})

	for i := 0; i < model.MetricsCount(); i++ {
		m, err := model.Metric(i)
		kingpin.FatalIfError(err, "Metric")

		refStr := ""
		if m.HasFileReference {
			ref := parser.FileReference(m.FileReference)
			refStr = fmt.Sprintf("%d-%d", goscca.MFTEntry(ref), goscca.MFTSequence(ref))
		}

		table.Append([]string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d", m.StartTimeMS),
			fmt.Sprintf("%d", m.DurationMS),
			fmt.Sprintf("%d", m.AverageDurationMS),
			fmt.Sprintf("%#x", m.Flags),
			refStr,
		})
	}

	table.Render()
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case "metrics":
			doMetrics()
		default:
			return false
		}
		return true
	})
}
