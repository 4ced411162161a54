package main

import (
	"io"
	"os"
)

// osFileOpener opens the noise-profile file against the real filesystem.
type osFileOpener struct{}

func (osFileOpener) OpenRead(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (osFileOpener) OpenWrite(path string) (io.WriteCloser, error) {
	return os.Create(path)
}
