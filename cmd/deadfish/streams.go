package main

import "io"

// inputStream wraps an input so Close is a no-op when it is stdin rather
// than a file we opened ourselves.
type inputStream struct {
	io.ReadCloser
	owned bool
}

func (s *inputStream) Close() error {
	if !s.owned {
		return nil
	}
	return s.ReadCloser.Close()
}

// outputStream mirrors inputStream for the output sink.
type outputStream struct {
	io.WriteCloser
	owned bool
}

func (s *outputStream) Close() error {
	if !s.owned {
		return nil
	}
	return s.WriteCloser.Close()
}
