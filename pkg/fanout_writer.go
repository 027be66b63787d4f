package pkg

import (
	"fmt"
	"io"

	"go.uber.org/multierr"
)

// FanoutWriter copies every write to all of its writers. Unlike io.MultiWriter
// it does not stop at the first failing writer: the write counts as done when
// at least one writer took the whole buffer, and the failures are reported
// together.
type FanoutWriter struct {
	writers []io.Writer
}

func NewFanoutWriter(writers ...io.Writer) *FanoutWriter {
	fw := &FanoutWriter{}
	for _, w := range writers {
		if w != nil {
			fw.writers = append(fw.writers, w)
		}
	}
	return fw
}

func (fw *FanoutWriter) Write(p []byte) (int, error) {
	var err error
	delivered := false
	for i, w := range fw.writers {
		n, werr := w.Write(p)
		if werr == nil && n < len(p) {
			werr = io.ErrShortWrite
		}
		if werr != nil {
			err = multierr.Append(err, fmt.Errorf("writer %d: %w", i, werr))
			continue
		}
		delivered = true
	}
	if delivered {
		return len(p), err
	}
	return 0, err
}
