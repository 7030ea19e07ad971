// internal/app/outputs.go
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// outputs opens result files and closes them once. "" and "-" mean stdout.
type outputs struct {
	stdout io.Writer
	files  []*os.File
}

func (o *outputs) open(path string) (io.Writer, error) {
	if path == "" || path == "-" {
		return o.stdout, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	o.files = append(o.files, f)
	return f, nil
}

// close closes every file and reports the first failure.
func (o *outputs) close() error {
	var errs []error
	for _, f := range o.files {
		if err := f.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", f.Name(), err))
		}
	}
	o.files = nil
	return errors.Join(errs...)
}

// abort closes whatever is still open after a failed run.
func (o *outputs) abort() { _ = o.close() }
