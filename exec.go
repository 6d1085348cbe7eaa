// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partio

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// streamHandler implements kont.Handler for stream effects.
// Waits on iox.ErrWouldBlock, converting non-blocking dispatch into
// blocking evaluation for Exec/ExecExpr.
type streamHandler[R any] struct {
	ctx *streamContext
}

// Dispatch implements kont.Handler via structural interface assertion.
// Waits past the iox.ErrWouldBlock boundary with adaptive backoff.
func (h streamHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	sop, ok := op.(streamDispatcher)
	if !ok {
		panic("partio: unhandled effect in streamHandler")
	}
	return dispatchWait(h.ctx, sop), true
}

// dispatchWait blocks until DispatchStream succeeds, backing off on
// iox.ErrWouldBlock with iox.Backoff (I/O readiness waiting).
func dispatchWait(ctx *streamContext, sop streamDispatcher) kont.Resumed {
	var bo iox.Backoff
	for {
		v, err := sop.DispatchStream(ctx)
		if err == nil {
			return v
		}
		bo.Wait()
	}
}

// Exec runs a Cont-world stream protocol against the port.
// Blocks on iox.ErrWouldBlock via adaptive backoff (iox.Backoff),
// without spawning goroutines or creating channels.
func Exec[R any](p *Port, protocol kont.Eff[R]) R {
	h := streamHandler[R]{ctx: &p.ctx}
	return kont.Handle(protocol, h)
}

// ExecExpr runs an Expr-world stream protocol against the port.
// Blocks on iox.ErrWouldBlock via adaptive backoff (iox.Backoff),
// without spawning goroutines or creating channels.
func ExecExpr[R any](p *Port, protocol kont.Expr[R]) R {
	h := streamHandler[R]{ctx: &p.ctx}
	return kont.HandleExpr(protocol, h)
}

// Run interleaves two Cont-world protocols on the calling goroutine,
// typically one per end of a duplex pair such as Pipe, using adaptive
// backoff (iox.Backoff) when neither side can make progress.
// Does not spawn goroutines or create channels.
func Run[A, B any](pa *Port, a kont.Eff[A], pb *Port, b kont.Eff[B]) (A, B) {
	return RunExpr(pa, Reify(a), pb, Reify(b))
}

// RunExpr interleaves two Expr-world protocols on the calling goroutine,
// using adaptive backoff (iox.Backoff) when neither side can make
// progress. Does not spawn goroutines or create channels.
func RunExpr[A, B any](pa *Port, a kont.Expr[A], pb *Port, b kont.Expr[B]) (A, B) {
	resultA, suspA := Step[A](a)
	resultB, suspB := Step[B](b)
	var bo iox.Backoff
	for suspA != nil || suspB != nil {
		progress := false
		if suspA != nil {
			var err error
			resultA, suspA, err = Advance(pa, suspA)
			if err == nil {
				progress = true
			}
		}
		if suspB != nil {
			var err error
			resultB, suspB, err = Advance(pb, suspB)
			if err == nil {
				progress = true
			}
		}
		if !progress {
			bo.Wait()
		} else {
			bo.Reset()
		}
	}
	return resultA, resultB
}
