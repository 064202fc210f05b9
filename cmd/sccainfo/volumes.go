package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Velocidex/ordereddict"
	"github.com/olekukonko/tablewriter"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/dfir-go/goscca"
)

var (
	volumes_command = app.Command(
		"volumes", "List the volumes referenced by a Prefetch file.")

	volumes_command_file_arg = volumes_command.Arg(
		"file", "The .pf file to inspect.",
	).Required().String()
)

func doVolumes() {
	model := parseFile(*volumes_command_file_arg)

	if *json_flag {
		rows := []*ordereddict.Dict{}
		for i := 0; i < model.VolumesCount(); i++ {
			vol, err := model.Volume(i)
			kingpin.FatalIfError(err, "Volume")

			row := ordereddict.NewDict().
				Set("device_path", vol.DevicePath()).
				Set("serial_number", fmt.Sprintf("%#08x", vol.SerialNumber())).
				Set("creation_time", vol.CreationTime()).
				Set("file_reference_count", vol.FileReferenceCount()).
				Set("directory_string_count", vol.DirectoryStringCount())

			if *verbose_flag {
				refs := []string{}
				for j := 0; j < vol.FileReferenceCount(); j++ {
					ref, err := vol.FileReference(j)
					kingpin.FatalIfError(err, "FileReference")
					refs = append(refs, fmt.Sprintf("%d-%d",
						goscca.MFTEntry(ref), goscca.MFTSequence(ref)))
				}
				row.Set("file_references", refs)

				dirs := []string{}
				for j := 0; j < vol.DirectoryStringCount(); j++ {
					dir, err := vol.DirectoryString(j)
					kingpin.FatalIfError(err, "DirectoryString")
					dirs = append(dirs, dir)
				}
				row.Set("directory_strings", dirs)
			}

			rows = append(rows, row)
		}

		serialized, err := json.MarshalIndent(rows, " ", " ")
		kingpin.FatalIfError(err, "Marshal")
		fmt.Println(string(serialized))
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Device Path", "Serial", "Created", "File Refs", "Dir Strings"})

	for i := 0; i < model.VolumesCount(); i++ {
		vol, err := model.Volume(i)
		kingpin.FatalIfError(err, "Volume")

		table.Append([]string{
			vol.DevicePath(),
			fmt.Sprintf("%#08x", vol.SerialNumber()),
			vol.CreationTime().String(),
			fmt.Sprintf("%d", vol.FileReferenceCount()),
			fmt.Sprintf("%d", vol.DirectoryStringCount()),
		})
	}

	table.Render()

	if *verbose_flag {
		for i := 0; i < model.VolumesCount(); i++ {
			vol, err := model.Volume(i)
			kingpin.FatalIfError(err, "Volume")

			fmt.Printf("\n%s\n", vol.DevicePath())

			for j := 0; j < vol.FileReferenceCount(); j++ {
				ref, err := vol.FileReference(j)
				kingpin.FatalIfError(err, "FileReference")
				fmt.Printf("  file_reference: mft_entry=%d sequence=%d\n",
					goscca.MFTEntry(ref), goscca.MFTSequence(ref))
			}

			for j := 0; j < vol.DirectoryStringCount(); j++ {
				dir, err := vol.DirectoryString(j)
				kingpin.FatalIfError(err, "DirectoryString")
				fmt.Printf("  directory: %s\n", dir)
			}
		}
	}
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case "volumes":
			doVolumes()
		default:
			return false
		}
		return true
	})
}
