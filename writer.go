// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partio

import (
	"code.hybscloud.com/iox"
)

// Flusher is the optional flush capability of a buffered stream.
type Flusher interface {
	Flush() error
}

// Writer applies a script of partial operations to the writes and flushes
// of a wrapped stream. Write and Flush each consume exactly one scripted
// Op from the same supply, in call order; read-side calls are forwarded
// unchanged for duplex use and never consume script fuel.
type Writer[S iox.Writer] struct {
	inner S
	ops   Ops
}

// NewWriter wraps inner with the given script.
func NewWriter[S iox.Writer](inner S, ops Ops) *Writer[S] {
	return &Writer[S]{inner: inner, ops: ops}
}

// SetOps replaces the remaining script wholesale. Unconsumed operations of
// the prior script are discarded. Returns w for chaining.
func (w *Writer[S]) SetOps(ops Ops) *Writer[S] {
	w.ops = ops
	return w
}

// Inner returns the wrapped stream for inspection, e.g. asserting on
// partially written but unflushed buffers.
func (w *Writer[S]) Inner() S {
	return w.inner
}

// Unwrap releases the wrapped stream back to the caller and drops the
// remaining script. The wrapper must not be used afterwards.
func (w *Writer[S]) Unwrap() S {
	w.ops = nil
	return w.inner
}

// Write consumes one scripted Op and applies it: Unlimited (or an
// exhausted script) delegates the full write; Limited(n) forwards only
// p[:min(n, len(p))] and returns the wrapped stream's count for that
// prefix; Fail returns the fabricated error without touching the wrapped
// stream.
//
// A Limited write deliberately reports a short count with a nil error to
// exercise the caller's short-write handling.
func (w *Writer[S]) Write(p []byte) (int, error) {
	op := pop(w.ops)
	if op.kind == opFail {
		return 0, injected(callWrite, op.err)
	}
	return w.inner.Write(p[:op.clamp(len(p))])
}

// Flush consumes one scripted Op. Fail returns the fabricated error
// without flushing; Limited is treated as Unlimited since flush has no
// byte-length concept. Flushing a wrapped stream with no Flush method is
// a successful no-op.
func (w *Writer[S]) Flush() error {
	op := pop(w.ops)
	if op.kind == opFail {
		return injected(callFlush, op.err)
	}
	return forwardFlush(any(w.inner))
}

// Read forwards to the wrapped stream unchanged for duplex use.
func (w *Writer[S]) Read(p []byte) (int, error) {
	return forwardRead(any(w.inner), p)
}

// Close forwards to the wrapped stream's Close, if it has one.
func (w *Writer[S]) Close() error {
	return forwardClose(any(w.inner))
}

// Duplex forwarding helpers shared by all wrapper kinds. A forwarded call
// never consults the script; a missing capability reports ErrNotReadable
// or ErrNotWritable, except Flush and Close which degrade to no-ops.

func forwardRead(s any, p []byte) (int, error) {
	r, ok := s.(iox.Reader)
	if !ok {
		return 0, ErrNotReadable
	}
	return r.Read(p)
}

func forwardWrite(s any, p []byte) (int, error) {
	w, ok := s.(iox.Writer)
	if !ok {
		return 0, ErrNotWritable
	}
	return w.Write(p)
}

func forwardFlush(s any) error {
	f, ok := s.(Flusher)
	if !ok {
		return nil
	}
	return f.Flush()
}

func forwardClose(s any) error {
	c, ok := s.(iox.Closer)
	if !ok {
		return nil
	}
	return c.Close()
}
