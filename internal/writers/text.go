// internal/writers/text.go
package writers

import (
	"bufio"
	"io"
)

// startText streams line-oriented output to one or more destinations.
// render returns one line per destination; nil destinations are skipped.
// headers, when non-nil, holds one header row per destination ("" for none).
func startText[T any](outs []io.Writer, headers []string, bufSize int, render func(T) []string) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	errCh := make(chan error, 1)

	go func() {
		bws := make([]*bufio.Writer, len(outs))
		for i, w := range outs {
			if w != nil {
				bws[i] = bufio.NewWriterSize(w, 64<<10)
			}
		}
		emit := func(lines []string) error {
			for i, bw := range bws {
				if bw == nil || i >= len(lines) || lines[i] == "" {
					continue
				}
				if _, err := bw.WriteString(lines[i]); err != nil {
					return err
				}
				if err := bw.WriteByte('\n'); err != nil {
					return err
				}
			}
			return nil
		}

		err := emit(headers)
		for v := range in {
			if err != nil {
				continue // drain so the producer never blocks
			}
			err = emit(render(v))
		}
		for _, bw := range bws {
			if bw == nil || err != nil {
				continue
			}
			err = bw.Flush()
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()

	return in, errCh
}
