// Package writers handles output file creation for rendered documents.
package writers

import (
	"io"
	"os"
	"path/filepath"
)

// Delays file creation until the writer is written to, so a failed
// generation run leaves no empty output files behind.
type LazyFileWriteCloser struct {
	init   func() (io.WriteCloser, error)
	writer io.WriteCloser
}

// Creates a new `LazyFileWriteCloser`. The initialization function is
// called once, on the first write.
func NewLazyWriteCloser(init func() (io.WriteCloser, error)) *LazyFileWriteCloser {
	return &LazyFileWriteCloser{init: init, writer: nil}
}

// NewOutputFile returns a lazy writer that creates name under dir on
// first write, creating dir as needed.
func NewOutputFile(dir, name string) *LazyFileWriteCloser {
	return NewLazyWriteCloser(func() (io.WriteCloser, error) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		return os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	})
}

func (f *LazyFileWriteCloser) Write(p []byte) (int, error) {
	if f.writer == nil {
		var err error
		f.writer, err = f.init()
		if err != nil {
			return 0, err
		}
	}

	return f.writer.Write(p)
}

func (f *LazyFileWriteCloser) Close() error {
	if f.writer != nil {
		return f.writer.Close()
	}
	return nil
}
