// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partio

import (
	"code.hybscloud.com/iox"
)

// Reader applies a script of partial operations to the reads of a wrapped
// stream. Each Read consumes exactly one scripted Op; write-side calls are
// forwarded unchanged for duplex use and never consume script fuel.
type Reader[S iox.Reader] struct {
	inner S
	ops   Ops
}

// NewReader wraps inner with the given script.
func NewReader[S iox.Reader](inner S, ops Ops) *Reader[S] {
	return &Reader[S]{inner: inner, ops: ops}
}

// SetOps replaces the remaining script wholesale. Unconsumed operations of
// the prior script are discarded. Returns r for chaining.
func (r *Reader[S]) SetOps(ops Ops) *Reader[S] {
	r.ops = ops
	return r
}

// Inner returns the wrapped stream for inspection.
func (r *Reader[S]) Inner() S {
	return r.inner
}

// Unwrap releases the wrapped stream back to the caller and drops the
// remaining script. The wrapper must not be used afterwards.
func (r *Reader[S]) Unwrap() S {
	r.ops = nil
	return r.inner
}

// Read consumes one scripted Op and applies it: Unlimited (or an exhausted
// script) delegates the full read; Limited(n) reads into p[:min(n, len(p))]
// and leaves the rest of p untouched; Fail returns the fabricated error
// without touching the wrapped stream.
func (r *Reader[S]) Read(p []byte) (int, error) {
	op := pop(r.ops)
	if op.kind == opFail {
		return 0, injected(callRead, op.err)
	}
	return r.inner.Read(p[:op.clamp(len(p))])
}

// Write forwards to the wrapped stream unchanged for duplex use.
func (r *Reader[S]) Write(p []byte) (int, error) {
	return forwardWrite(any(r.inner), p)
}

// Flush forwards to the wrapped stream unchanged for duplex use.
func (r *Reader[S]) Flush() error {
	return forwardFlush(any(r.inner))
}

// Close forwards to the wrapped stream's Close, if it has one.
func (r *Reader[S]) Close() error {
	return forwardClose(any(r.inner))
}
