/*
Package pasc/main provides a command line tool for running Pascal programs
through the interpreter pipeline, and an interactive calculator REPL for
Pascal expressions. The tool loads a source file, reports the first error of
any pipeline stage, and prints the final global variable bindings after a
successful run.


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pasc.cli'
func tracer() tracing.Trace {
	return tracing.Select("pasc.cli")
}
