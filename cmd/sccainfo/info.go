package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Velocidex/ordereddict"
	"github.com/olekukonko/tablewriter"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

var (
	info_command = app.Command(
		"info", "Show the header and file-information summary of a Prefetch file.")

	info_command_file_arg = info_command.Arg(
		"file", "The .pf file to inspect.",
	).Required().String()
)

func doInfo() {
	model := parseFile(*info_command_file_arg)

	if *json_flag {
		dict := ordereddict.NewDict().
			Set("format_version", model.FormatVersion()).
			Set("prefetch_hash", model.PrefetchHash()).
			Set("executable_filename", model.ExecutableFilename()).
			Set("run_count", model.RunCount()).
			Set("size_mismatch", model.SizeMismatch()).
			Set("filenames_count", model.FilenamesCount()).
			Set("volumes_count", model.VolumesCount())

		serialized, err := json.MarshalIndent(dict, " ", " ")
		kingpin.FatalIfError(err, "Marshal")
		fmt.Println(string(serialized))
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Field", "Value"})

	lastRun, _ := model.LastRunTime(0)

	table.Append([]string{"format_version", fmt.Sprintf("%d", model.FormatVersion())})
	table.Append([]string{"executable_filename", model.ExecutableFilename()})
	table.Append([]string{"prefetch_hash", fmt.Sprintf("%#08x", model.PrefetchHash())})
	table.Append([]string{"run_count", fmt.Sprintf("%d", model.RunCount())})
	table.Append([]string{"last_run_time", lastRun.String()})
	table.Append([]string{"size_mismatch", fmt.Sprintf("%v", model.SizeMismatch())})
	table.Append([]string{"filenames_count", fmt.Sprintf("%d", model.FilenamesCount())})
	table.Append([]string{"volumes_count", fmt.Sprintf("%d", model.VolumesCount())})

	table.Render()

	for _, w := range model.Warnings() {
		fmt.Fprintf(os.Stderr, "warning: %s: %s: %s\n", w.Op, w.Kind, w.Message)
	}
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case "info":
			doInfo()
		default:
			return false
		}
		return true
	})
}
