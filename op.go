// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partio

import (
	"errors"
	"fmt"
)

// Forwarded duplex calls report these when the wrapped stream lacks the
// matching capability.
var (
	ErrNotReadable = errors.New("partio: wrapped stream is not readable")
	ErrNotWritable = errors.New("partio: wrapped stream is not writable")
)

type opKind uint8

const (
	opUnlimited opKind = iota
	opLimited
	opFail
)

// Op is a single scripted instruction governing one intercepted I/O call.
// The zero value is Unlimited.
type Op struct {
	kind opKind
	n    int
	err  error
}

// Unlimited lets the governed call proceed with its full requested length.
func Unlimited() Op {
	return Op{}
}

// Limited caps the governed call at n bytes. n must be non-negative;
// n == 0 is legal and issues a genuine zero-length call, not a skipped one.
func Limited(n int) Op {
	if n < 0 {
		panic("partio: negative byte cap")
	}
	return Op{kind: opLimited, n: n}
}

// Fail makes the governed call fail immediately with the given error kind.
// The wrapped stream is not touched and no bytes are consumed or produced.
func Fail(kind error) Op {
	if kind == nil {
		panic("partio: nil error kind")
	}
	return Op{kind: opFail, err: kind}
}

// clamp returns the effective length for a call requesting n bytes.
func (o Op) clamp(n int) int {
	if o.kind == opLimited && o.n < n {
		return o.n
	}
	return n
}

// Ops is an owned, single-consumer, forward-only supply of operations.
// Next reports the next operation and whether one remained; once it
// reports false, every later intercepted call passes through unchanged.
type Ops interface {
	Next() (Op, bool)
}

// OpsFunc adapts a function to the Ops interface.
type OpsFunc func() (Op, bool)

// Next implements Ops.
func (f OpsFunc) Next() (Op, bool) { return f() }

type script []Op

func (s *script) Next() (Op, bool) {
	if len(*s) == 0 {
		return Op{}, false
	}
	op := (*s)[0]
	*s = (*s)[1:]
	return op, true
}

// Script returns an Ops supply yielding the given operations in order.
// The slice is copied; the supply drains element by element as
// intercepted calls occur.
func Script(ops ...Op) Ops {
	s := make(script, len(ops))
	copy(s, ops)
	return &s
}

// pop consumes the next scripted operation. A nil or exhausted supply
// yields the zero Op (Unlimited) forever; exhaustion is not an error.
func pop(ops Ops) Op {
	if ops == nil {
		return Op{}
	}
	op, ok := ops.Next()
	if !ok {
		return Op{}
	}
	return op
}

// Call names used in fabricated error messages.
const (
	callRead  = "read"
	callWrite = "write"
	callFlush = "flush"
)

// injected fabricates the error for a scripted Fail. The message names the
// intercepted call and this package, so injected failures remain
// distinguishable from genuine stream errors; the scripted kind is wrapped,
// so errors.Is matches it.
func injected(call string, kind error) error {
	return fmt.Errorf("partio: injected %s error: %w", call, kind)
}
