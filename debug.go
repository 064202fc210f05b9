package goscca

import (
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

var debug = false

func init() {
	for _, x := range os.Environ() {
		if strings.HasPrefix(x, "SCCA_DEBUG=") {
			debug = true
		}
	}
}

// Debug dumps arg to stdout using spew, regardless of SCCA_DEBUG. It is
// meant for ad-hoc use from a debugger or a throwaway print statement,
// not for library code.
func Debug(arg interface{}) {
	spew.Dump(arg)
}

// Printf writes to stdout only when SCCA_DEBUG is set in the
// environment.
func Printf(format string, args ...interface{}) {
	if debug {
		fmt.Printf(format, args...)
	}
}
