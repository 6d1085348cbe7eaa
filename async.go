// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partio

import (
	"code.hybscloud.com/iox"
)

// AsyncReader is a Reader for non-blocking streams driven by a cooperative
// executor. A scripted failure whose kind matches iox.ErrWouldBlock signals
// the Waker before the error is returned, so the executor re-polls the call
// rather than treating it as terminal. Any other scripted kind, and every
// genuine error from the wrapped stream, is returned without waking.
//
// The wrapper itself never spawns work or suspends mid-call.
type AsyncReader[S iox.Reader] struct {
	inner S
	ops   Ops
	waker Waker
}

// NewAsyncReader wraps inner with the given script and waker.
// A nil waker disables re-poll notification.
func NewAsyncReader[S iox.Reader](inner S, ops Ops, waker Waker) *AsyncReader[S] {
	return &AsyncReader[S]{inner: inner, ops: ops, waker: waker}
}

// SetOps replaces the remaining script wholesale. Unconsumed operations of
// the prior script are discarded. Returns r for chaining.
func (r *AsyncReader[S]) SetOps(ops Ops) *AsyncReader[S] {
	r.ops = ops
	return r
}

// SetWaker replaces the waker. Returns r for chaining.
func (r *AsyncReader[S]) SetWaker(waker Waker) *AsyncReader[S] {
	r.waker = waker
	return r
}

// Inner returns the wrapped stream for inspection.
func (r *AsyncReader[S]) Inner() S {
	return r.inner
}

// Unwrap releases the wrapped stream back to the caller and drops the
// remaining script. The wrapper must not be used afterwards.
func (r *AsyncReader[S]) Unwrap() S {
	r.ops = nil
	return r.inner
}

// Read consumes one scripted Op and applies it as (*Reader).Read does.
// A scripted would-block failure additionally wakes the waker.
func (r *AsyncReader[S]) Read(p []byte) (int, error) {
	op := pop(r.ops)
	if op.kind == opFail {
		if r.waker != nil && iox.IsWouldBlock(op.err) {
			// Re-arm before returning so the executor re-polls this call.
			r.waker.Wake()
		}
		return 0, injected(callRead, op.err)
	}
	return r.inner.Read(p[:op.clamp(len(p))])
}

// Write forwards to the wrapped stream unchanged for duplex use.
func (r *AsyncReader[S]) Write(p []byte) (int, error) {
	return forwardWrite(any(r.inner), p)
}

// Flush forwards to the wrapped stream unchanged for duplex use.
func (r *AsyncReader[S]) Flush() error {
	return forwardFlush(any(r.inner))
}

// Close forwards shutdown directly to the wrapped stream. The shutdown
// path is not subject to the script.
func (r *AsyncReader[S]) Close() error {
	return forwardClose(any(r.inner))
}

// AsyncWriter is a Writer for non-blocking streams driven by a cooperative
// executor, with the same would-block wake contract as AsyncReader applied
// to Write and Flush.
type AsyncWriter[S iox.Writer] struct {
	inner S
	ops   Ops
	waker Waker
}

// NewAsyncWriter wraps inner with the given script and waker.
// A nil waker disables re-poll notification.
func NewAsyncWriter[S iox.Writer](inner S, ops Ops, waker Waker) *AsyncWriter[S] {
	return &AsyncWriter[S]{inner: inner, ops: ops, waker: waker}
}

// SetOps replaces the remaining script wholesale. Unconsumed operations of
// the prior script are discarded. Returns w for chaining.
func (w *AsyncWriter[S]) SetOps(ops Ops) *AsyncWriter[S] {
	w.ops = ops
	return w
}

// SetWaker replaces the waker. Returns w for chaining.
func (w *AsyncWriter[S]) SetWaker(waker Waker) *AsyncWriter[S] {
	w.waker = waker
	return w
}

// Inner returns the wrapped stream for inspection.
func (w *AsyncWriter[S]) Inner() S {
	return w.inner
}

// Unwrap releases the wrapped stream back to the caller and drops the
// remaining script. The wrapper must not be used afterwards.
func (w *AsyncWriter[S]) Unwrap() S {
	w.ops = nil
	return w.inner
}

// Write consumes one scripted Op and applies it as (*Writer).Write does.
// A scripted would-block failure additionally wakes the waker.
func (w *AsyncWriter[S]) Write(p []byte) (int, error) {
	op := pop(w.ops)
	if op.kind == opFail {
		if w.waker != nil && iox.IsWouldBlock(op.err) {
			// Re-arm before returning so the executor re-polls this call.
			w.waker.Wake()
		}
		return 0, injected(callWrite, op.err)
	}
	return w.inner.Write(p[:op.clamp(len(p))])
}

// Flush consumes one scripted Op as (*Writer).Flush does. A scripted
// would-block failure additionally wakes the waker.
func (w *AsyncWriter[S]) Flush() error {
	op := pop(w.ops)
	if op.kind == opFail {
		if w.waker != nil && iox.IsWouldBlock(op.err) {
			// Re-arm before returning so the executor re-polls this call.
			w.waker.Wake()
		}
		return injected(callFlush, op.err)
	}
	return forwardFlush(any(w.inner))
}

// Read forwards to the wrapped stream unchanged for duplex use.
func (w *AsyncWriter[S]) Read(p []byte) (int, error) {
	return forwardRead(any(w.inner), p)
}

// Close forwards shutdown directly to the wrapped stream. The shutdown
// path is not subject to the script.
func (w *AsyncWriter[S]) Close() error {
	return forwardClose(any(w.inner))
}
