// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partio

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Result is the resumption value of one stream effect: the byte count and
// error produced by the dispatched call. Genuine stream errors (including
// injected ones that are not would-block) arrive here rather than aborting
// evaluation, so protocols decide how to react.
type Result struct {
	N   int
	Err error
}

// streamContext holds the capability set of the stream behind a Port.
type streamContext struct {
	r iox.Reader
	w iox.Writer
	f Flusher
}

// streamDispatcher is the structural interface for stream operations.
// Dispatch is non-blocking: it returns iox.ErrWouldBlock at the I/O
// boundary when the call made no progress and should be re-polled.
// Every other outcome, including a completion that made progress before
// hitting would-block, resumes the protocol with a Result.
type streamDispatcher interface {
	DispatchStream(ctx *streamContext) (kont.Resumed, error)
}

// Read is the effect operation for one read into Buf.
// Perform(Read{Buf: p}) resumes with the Result of the call.
type Read struct {
	kont.Phantom[Result]
	Buf []byte
}

// DispatchStream handles Read on the port's stream.
// Non-blocking: returns iox.ErrWouldBlock when no bytes were available.
func (op Read) DispatchStream(ctx *streamContext) (kont.Resumed, error) {
	if ctx.r == nil {
		return Result{Err: ErrNotReadable}, nil
	}
	n, err := ctx.r.Read(op.Buf)
	if n == 0 && iox.IsWouldBlock(err) {
		return nil, err
	}
	return Result{N: n, Err: err}, nil
}

// Write is the effect operation for one write of Buf.
// Perform(Write{Buf: p}) resumes with the Result of the call.
type Write struct {
	kont.Phantom[Result]
	Buf []byte
}

// DispatchStream handles Write on the port's stream.
// Non-blocking: returns iox.ErrWouldBlock when no bytes were accepted.
func (op Write) DispatchStream(ctx *streamContext) (kont.Resumed, error) {
	if ctx.w == nil {
		return Result{Err: ErrNotWritable}, nil
	}
	n, err := ctx.w.Write(op.Buf)
	if n == 0 && len(op.Buf) > 0 && iox.IsWouldBlock(err) {
		return nil, err
	}
	return Result{N: n, Err: err}, nil
}

// Flush is the effect operation for one flush.
// Perform(Flush{}) resumes with the Result of the call; a stream with no
// Flush method resumes immediately with a zero Result.
type Flush struct {
	kont.Phantom[Result]
}

// DispatchStream handles Flush on the port's stream.
// Non-blocking: returns iox.ErrWouldBlock when the flush cannot proceed.
func (Flush) DispatchStream(ctx *streamContext) (kont.Resumed, error) {
	if ctx.f == nil {
		return Result{}, nil
	}
	err := ctx.f.Flush()
	if iox.IsWouldBlock(err) {
		return nil, err
	}
	return Result{Err: err}, nil
}

// Port adapts a stream for effect-based evaluation, capturing whichever
// of the read, write, and flush capabilities it offers. Wrapped and bare
// streams are both accepted; effects on a missing capability resume with
// ErrNotReadable or ErrNotWritable in the Result.
type Port struct {
	ctx streamContext
}

// OpenPort adapts stream for use with Exec, Run, Step, and Advance.
func OpenPort(stream any) *Port {
	p := &Port{}
	p.ctx.r, _ = stream.(iox.Reader)
	p.ctx.w, _ = stream.(iox.Writer)
	p.ctx.f, _ = stream.(Flusher)
	return p
}
