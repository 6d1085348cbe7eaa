// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partio_test

import (
	"bytes"
	"errors"
	"testing"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/partio"
)

// TestWriterRetryScenario is the canonical retry sequence: a scripted
// would-block failure, then a 2-byte cap, then pass-through, landing the
// whole payload through caller-side retries.
func TestWriterRetryScenario(t *testing.T) {
	sink := &trackWriter{}
	w := partio.NewWriter(sink, partio.Script(
		partio.Fail(iox.ErrWouldBlock),
		partio.Limited(2),
	))

	payload := []byte{1, 2, 3, 4}

	n, err := w.Write(payload)
	if n != 0 || !iox.IsWouldBlock(err) {
		t.Fatalf("first write: n=%d err=%v", n, err)
	}
	if sink.sink.Len() != 0 {
		t.Fatalf("sink received bytes on failed write: %v", sink.sink.Bytes())
	}

	n, err = w.Write(payload)
	if err != nil || n != 2 {
		t.Fatalf("second write: n=%d err=%v", n, err)
	}

	n, err = w.Write(payload[2:])
	if err != nil || n != 2 {
		t.Fatalf("third write: n=%d err=%v", n, err)
	}

	if got := sink.sink.Bytes(); !bytes.Equal(got, payload) {
		t.Fatalf("sink=%v, want %v", got, payload)
	}
	if len(sink.chunks) != 2 || sink.chunks[0] != 2 || sink.chunks[1] != 2 {
		t.Fatalf("chunks=%v", sink.chunks)
	}
}

func TestWriterLimitedForwardsPrefixOnly(t *testing.T) {
	sink := &trackWriter{}
	w := partio.NewWriter(sink, partio.Script(partio.Limited(3)))

	n, err := w.Write([]byte("abcdef"))
	if err != nil || n != 3 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	if sink.sink.String() != "abc" {
		t.Fatalf("sink=%q", sink.sink.String())
	}
}

func TestWriterLimitedZeroForwardsEmptyWrite(t *testing.T) {
	sink := &trackWriter{}
	w := partio.NewWriter(sink, partio.Script(partio.Limited(0)))

	n, err := w.Write([]byte("abc"))
	if n != 0 || err != nil {
		t.Fatalf("n=%d err=%v", n, err)
	}
	// The zero-length call is issued, not skipped.
	if len(sink.chunks) != 1 || sink.chunks[0] != 0 {
		t.Fatalf("chunks=%v, want one 0-length call", sink.chunks)
	}
}

func TestWriterFailLeavesStreamUntouched(t *testing.T) {
	kind := errors.New("injected kind")
	sink := &trackWriter{}
	w := partio.NewWriter(sink, partio.Script(partio.Fail(kind)))

	n, err := w.Write([]byte("abc"))
	if n != 0 || !errors.Is(err, kind) {
		t.Fatalf("n=%d err=%v", n, err)
	}
	if len(sink.chunks) != 0 {
		t.Fatalf("sink was called: %v", sink.chunks)
	}
}

func TestWriterFlushGating(t *testing.T) {
	kind := errors.New("flush kind")
	sink := &trackWriter{}
	w := partio.NewWriter(sink, partio.Script(
		partio.Fail(kind),
		partio.Limited(0),
		partio.Unlimited(),
	))

	// Fail blocks the flush without reaching the stream.
	if err := w.Flush(); !errors.Is(err, kind) {
		t.Fatalf("flush err=%v", err)
	}
	if sink.flushes != 0 {
		t.Fatalf("flushes=%d after scripted failure", sink.flushes)
	}

	// Limited has no byte-length meaning for flush and forwards.
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	// Unlimited forwards, and so does exhaustion afterwards.
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if sink.flushes != 3 {
		t.Fatalf("flushes=%d, want 3", sink.flushes)
	}
}

func TestWriterFlushOnUnflushableIsNoop(t *testing.T) {
	w := partio.NewWriter(&bytes.Buffer{}, nil)
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
}

func TestWriterWriteAndFlushShareOneScript(t *testing.T) {
	// A single wrapper's fuel is consumed by every intercepted call in
	// call order, whichever kind it is.
	kind := errors.New("second call kind")
	sink := &trackWriter{}
	w := partio.NewWriter(sink, partio.Script(
		partio.Limited(1),
		partio.Fail(kind),
	))

	if n, err := w.Write([]byte("ab")); err != nil || n != 1 {
		t.Fatalf("write: n=%d err=%v", n, err)
	}
	if err := w.Flush(); !errors.Is(err, kind) {
		t.Fatalf("flush err=%v", err)
	}
}

func TestWriterInnerErrorPropagatesUnmodified(t *testing.T) {
	innerErr := errors.New("sink rejected")
	s := &errStream{err: innerErr}
	w := partio.NewWriter(s, nil)

	if _, err := w.Write([]byte("x")); err != innerErr {
		t.Fatalf("err=%v, want the identical inner error", err)
	}
	if err := w.Flush(); err != innerErr {
		t.Fatalf("flush err=%v, want the identical inner error", err)
	}
}

func TestWriterDuplexReadUnaffectedByScript(t *testing.T) {
	d := &duplexBuffer{}
	d.in.WriteString("payload")
	w := partio.NewWriter(d, partio.Script(partio.Fail(iox.ErrWouldBlock)))

	buf := make([]byte, 7)
	n, err := w.Read(buf)
	if err != nil || n != 7 || string(buf) != "payload" {
		t.Fatalf("n=%d err=%v buf=%q", n, err, buf)
	}

	// The scripted Fail still governs the next write.
	if _, err := w.Write([]byte("x")); !iox.IsWouldBlock(err) {
		t.Fatalf("want would-block, got %v", err)
	}
}

func TestWriterReadOnNonReadable(t *testing.T) {
	w := partio.NewWriter(&trackWriter{}, nil)
	if _, err := w.Read(make([]byte, 1)); !errors.Is(err, partio.ErrNotReadable) {
		t.Fatalf("err=%v, want ErrNotReadable", err)
	}
}

func TestWriterSetOpsAndUnwrap(t *testing.T) {
	sink := &trackWriter{}
	w := partio.NewWriter(sink, partio.Script(partio.Fail(iox.ErrWouldBlock))).
		SetOps(partio.Script(partio.Limited(1)))

	if n, err := w.Write([]byte("ab")); err != nil || n != 1 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	if w.Inner() != sink {
		t.Fatal("Inner did not expose the wrapped stream")
	}
	if w.Unwrap() != sink {
		t.Fatal("Unwrap did not release the wrapped stream")
	}
}
