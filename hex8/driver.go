package hex8

import (
	"io/ioutil"

	"github.com/shepheb/hex8asm/core"
)

// Driver is the host for some methods.
type Driver struct{}

var pr = buildHex8Parser()

// ParseFile parses a file by name, returning the program image ready for
// resolution.
func (d *Driver) ParseFile(filename string) (*core.Program, error) {
	text, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return d.ParseString(filename, string(text))
}

// ParseString parses assembly text, returning the program image.
func (d *Driver) ParseString(filename, text string) (*core.Program, error) {
	r, err := pr.ParseString(filename, text)
	if err != nil {
		return nil, &core.MalformedLineError{Err: err}
	}
	return core.NewProgram(r.([]*core.Instruction))
}
