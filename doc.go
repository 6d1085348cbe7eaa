// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package partio injects deterministic partial-operation faults into
// byte-stream I/O for testing retry, buffering, and error-recovery logic.
//
// A wrapper owns an underlying stream and a consumable script of [Op]
// values. Each intercepted Read, Write, or Flush consumes exactly one
// scripted operation: pass the call through unchanged, truncate it to a
// byte cap, or fail it with a chosen error kind before the underlying
// stream is touched. An exhausted script passes everything through.
//
// # Architecture
//
//   - Script: [Op] ([Unlimited], [Limited], [Fail]) consumed one element per
//     intercepted call from an [Ops] supply. [Script] builds a slice-backed
//     supply.
//   - Synchronous: [Reader] and [Writer] wrap blocking streams.
//   - Non-blocking: [AsyncReader] and [AsyncWriter] additionally signal a
//     [Waker] on a scripted [code.hybscloud.com/iox.ErrWouldBlock] failure,
//     so a cooperative executor re-polls the call instead of treating the
//     error as terminal.
//   - Duplex: every wrapper forwards the direction it does not intercept
//     (and Close) unchanged to the wrapped stream.
//   - Transport: [Pipe] is a bounded non-blocking in-memory duplex pair on
//     lock-free SPSC rings via [code.hybscloud.com/lfq], for exercising the
//     non-blocking wrappers without sockets.
//   - Drivers: stream effects [Read], [Write], [Flush] dispatched on a
//     [Port] via [code.hybscloud.com/kont]. [Exec] blocks past
//     iox.ErrWouldBlock with adaptive backoff; [Step] and [Advance]
//     evaluate one effect at a time for event-loop integration.
//
// # Error model
//
// Scripted failures wrap the chosen kind, so errors.Is still matches it,
// under a fixed message naming the intercepted call and this package.
// Errors raised by the wrapped stream itself propagate unmodified.
//
// # Example
//
//	sink := &bytes.Buffer{}
//	w := partio.NewWriter(sink, partio.Script(
//		partio.Fail(iox.ErrWouldBlock),
//		partio.Limited(2),
//	))
//	// First write fails without touching sink; the caller retries.
//	// Second write lands 2 bytes; later writes pass through whole.
package partio
