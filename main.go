package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/shepheb/hex8asm/hex8"
)

var output = flag.String("o", "a.hex", "file name for the output hex")
var bytesPerLine = flag.Int("b", 8, "number of bytes per output line")

func main() {
	flag.Parse()

	// Grab the first argument and assemble it.
	file := flag.Arg(0)
	if file == "" {
		fmt.Fprintf(os.Stderr, "usage: hex8asm [-o a.hex] [-b 8] <file>\n")
		os.Exit(1)
	}

	prog, err := (&hex8.Driver{}).ParseFile(file)
	if err != nil {
		fail(err)
	}
	if err := prog.Resolve(); err != nil {
		fail(err)
	}

	out, err := os.Create(*output)
	if err != nil {
		fail(err)
	}
	if err := prog.WriteHex(out, *bytesPerLine); err != nil {
		out.Close()
		fail(err)
	}
	if err := out.Close(); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "hex8asm: %v\n", err)
	os.Exit(1)
}
