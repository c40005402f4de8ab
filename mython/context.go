package mython

import (
	"bytes"
	"io"
)

// Context is the single point through which the interpreter touches the
// outside world. Program output produced by print and by value printing
// goes to its output stream.
type Context interface {
	OutputStream() io.Writer
}

type streamContext struct {
	w io.Writer
}

// NewContext wraps a writer as an execution context.
func NewContext(w io.Writer) Context {
	return &streamContext{w: w}
}

func (c *streamContext) OutputStream() io.Writer { return c.w }

// scratchContext collects output in memory. str(...) renders values through
// it, and the REPL session captures program output with it.
type scratchContext struct {
	buf bytes.Buffer
}

func (c *scratchContext) OutputStream() io.Writer { return &c.buf }

func (c *scratchContext) String() string { return c.buf.String() }
