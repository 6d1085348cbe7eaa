// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partio

import (
	"code.hybscloud.com/kont"
)

// ReadBind reads into buf and passes the Result to f.
// Fuses Perform(Read{Buf: buf}) + Bind.
func ReadBind[B any](buf []byte, f func(Result) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Read{Buf: buf}), f)
}

// WriteBind writes buf and passes the Result to f.
// Fuses Perform(Write{Buf: buf}) + Bind.
func WriteBind[B any](buf []byte, f func(Result) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Write{Buf: buf}), f)
}

// FlushBind flushes and passes the Result to f.
// Fuses Perform(Flush{}) + Bind.
func FlushBind[B any](f func(Result) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Flush{}), f)
}

// Done completes a protocol with a.
func Done[A any](a A) kont.Eff[A] {
	return kont.Pure(a)
}

// Loop runs a recursive stream protocol.
// step returns Left(nextState) to continue or Right(result) to finish.
// Retry loops over partial writes and reads are its main use.
func Loop[S, A any](initial S, step func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	return kont.Bind(step(initial), func(e kont.Either[S, A]) kont.Eff[A] {
		if left, ok := e.GetLeft(); ok {
			return Loop(left, step)
		}
		right, _ := e.GetRight()
		return kont.Pure(right)
	})
}

// WriteAll writes the whole of buf, looping over short writes, and
// resumes f with the final Result. The loop stops at the first error;
// would-block suspension and retry are the driver's concern, so a
// scripted would-block that reaches the protocol ends it like any other
// error.
func WriteAll[B any](buf []byte, f func(Result) kont.Eff[B]) kont.Eff[B] {
	type state struct {
		off int
	}
	return kont.Bind(
		Loop(state{}, func(s state) kont.Eff[kont.Either[state, Result]] {
			return WriteBind(buf[s.off:], func(r Result) kont.Eff[kont.Either[state, Result]] {
				written := s.off + r.N
				if r.Err != nil || written >= len(buf) {
					return kont.Pure(kont.Right[state](Result{N: written, Err: r.Err}))
				}
				return kont.Pure(kont.Left[state, Result](state{off: written}))
			})
		}),
		f,
	)
}

// ReadFull reads until buf is full, looping over short reads, and
// resumes f with the final Result. The loop stops at the first error,
// including EOF.
func ReadFull[B any](buf []byte, f func(Result) kont.Eff[B]) kont.Eff[B] {
	type state struct {
		off int
	}
	return kont.Bind(
		Loop(state{}, func(s state) kont.Eff[kont.Either[state, Result]] {
			return ReadBind(buf[s.off:], func(r Result) kont.Eff[kont.Either[state, Result]] {
				read := s.off + r.N
				if r.Err != nil || read >= len(buf) {
					return kont.Pure(kont.Right[state](Result{N: read, Err: r.Err}))
				}
				return kont.Pure(kont.Left[state, Result](state{off: read}))
			})
		}),
		f,
	)
}
