package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

var (
	filenames_command = app.Command(
		"filenames", "List the filename strings referenced by a Prefetch file.")

	filenames_command_file_arg = filenames_command.Arg(
		"file", "The .pf file to inspect.",
	).Required().String()
)

func doFilenames() {
	model := parseFile(*filenames_command_file_arg)

	names := make([]string, 0, model.FilenamesCount())
	for i := 0; i < model.FilenamesCount(); i++ {
		name, err := model.Filename(i)
		kingpin.FatalIfError(err, "Filename")
		names = append(names, name)
	}

	if *json_flag {
		serialized, err := json.MarshalIndent(names, " ", " ")
		kingpin.FatalIfError(err, "Marshal")
		fmt.Println(string(serialized))
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Filename"})
	for i, name := range names {
		table.Append([]string{fmt.Sprintf("%d", i), name})
	}
	table.Render()
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case "filenames":
			doFilenames()
		default:
			return false
		}
		return true
	})
}
