// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partio_test

import (
	"bytes"
)

// trackReader records every requested read length and serves bytes from a
// fixed payload, so tests can assert exactly what reached the stream.
type trackReader struct {
	data  []byte
	calls []int
}

func (r *trackReader) Read(p []byte) (int, error) {
	r.calls = append(r.calls, len(p))
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

// trackWriter records every forwarded chunk into a sink, so tests can
// assert both content and call-by-call truncation.
type trackWriter struct {
	sink    bytes.Buffer
	chunks  []int
	flushes int
}

func (w *trackWriter) Write(p []byte) (int, error) {
	w.chunks = append(w.chunks, len(p))
	return w.sink.Write(p)
}

func (w *trackWriter) Flush() error {
	w.flushes++
	return nil
}

// errStream fails every direction with its own genuine error, for
// verifying unmodified propagation and untouched-stream invariants.
type errStream struct {
	err   error
	reads int
}

func (s *errStream) Read(p []byte) (int, error)  { s.reads++; return 0, s.err }
func (s *errStream) Write(p []byte) (int, error) { return 0, s.err }
func (s *errStream) Flush() error                { return s.err }

// duplexBuffer is an in-memory read/write/flush/close stream for duplex
// forwarding tests.
type duplexBuffer struct {
	in      bytes.Buffer
	out     bytes.Buffer
	flushes int
	closes  int
}

func (d *duplexBuffer) Read(p []byte) (int, error)  { return d.in.Read(p) }
func (d *duplexBuffer) Write(p []byte) (int, error) { return d.out.Write(p) }
func (d *duplexBuffer) Flush() error                { d.flushes++; return nil }
func (d *duplexBuffer) Close() error                { d.closes++; return nil }
