package main

import (
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/dfir-go/goscca"
)

// parseFile opens path through a PagedReader, matching the teacher's
// own bin/stat.go pattern of wrapping a raw file handle for
// page-aligned, cached reads before handing it to the parser.
func parseFile(path string) *goscca.FileModel {
	raw, err := goscca.OpenFile(path)
	kingpin.FatalIfError(err, "Can not open %s", path)
	defer raw.Close()

	size, err := raw.Size()
	kingpin.FatalIfError(err, "Can not stat %s", path)

	paged, err := goscca.NewPagedReader(raw, 4096, 64)
	kingpin.FatalIfError(err, "Can not wrap %s", path)

	model, err := goscca.Parse(goscca.NewByteReader(paged, size))
	kingpin.FatalIfError(err, "Can not parse %s", path)

	return model
}
