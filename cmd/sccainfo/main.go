package main

import (
	"os"

	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

type CommandHandler func(command string) bool

var (
	app = kingpin.New("sccainfo",
		"A tool for inspecting Windows Prefetch (SCCA) files.")

	verbose_flag = app.Flag(
		"verbose", "Show extra detail (file references, directory strings).").Short('v').Bool()

	json_flag = app.Flag(
		"json", "Emit JSON instead of a table.").Bool()

	command_handlers []CommandHandler
)

func main() {
	app.HelpFlag.Short('h')
	app.UsageTemplate(kingpin.CompactUsageTemplate)
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	for _, command_handler := range command_handlers {
		if command_handler(command) {
			break
		}
	}
}
