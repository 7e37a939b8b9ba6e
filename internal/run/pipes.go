package run

import (
	"fmt"
	"os"
)

// pipePair holds both ends of one pipe created for a launch request.
type pipePair struct {
	r *os.File
	w *os.File
}

func (p *pipePair) close() {
	if p == nil {
		return
	}
	closeQuiet(p.r)
	closeQuiet(p.w)
}

func closeQuiet(f *os.File) {
	if f != nil {
		_ = f.Close()
	}
}

// planPipes allocates the pipes requested via IOPipe, stdin before stdout
// before stderr. StdoutToStderr suppresses the stdout pipe: the child's
// stdout will share whatever its stderr is connected to.
//
// On failure everything already opened for this request is closed again,
// pipes in reverse planning order and caller-supplied IOFile descriptors
// included, and the returned error names the offending stream.
func (c *Command) planPipes() (pin, pout, perr *pipePair, err error) {
	fail := func(stream string, cause error) (*pipePair, *pipePair, *pipePair, error) {
		perr.close()
		pout.close()
		pin.close()
		c.closeGiven()
		return nil, nil, nil, fmt.Errorf("cannot create %s pipe for %s: %w", stream, c.name(), cause)
	}

	if c.Stdin == IOPipe {
		r, w, e := os.Pipe()
		if e != nil {
			return fail("standard input", e)
		}
		pin = &pipePair{r: r, w: w}
	}
	if c.Stdout == IOPipe && !c.StdoutToStderr {
		r, w, e := os.Pipe()
		if e != nil {
			return fail("standard output", e)
		}
		pout = &pipePair{r: r, w: w}
	}
	if c.Stderr == IOPipe {
		r, w, e := os.Pipe()
		if e != nil {
			return fail("standard error", e)
		}
		perr = &pipePair{r: r, w: w}
	}
	return pin, pout, perr, nil
}

// closeGiven closes the caller-supplied IOFile descriptors exactly once,
// tolerating the same file being supplied for more than one stream.
func (c *Command) closeGiven() {
	seen := map[*os.File]bool{}
	for _, f := range []*os.File{c.GivenIn, c.GivenOut, c.GivenErr} {
		if f != nil && !seen[f] {
			seen[f] = true
			_ = f.Close()
		}
	}
	c.GivenIn, c.GivenOut, c.GivenErr = nil, nil, nil
}
