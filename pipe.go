// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partio

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// pipeCapacity is the bounded capacity of each pipe direction in bytes.
const pipeCapacity = 64

// PipeEnd is one side of a non-blocking in-memory duplex byte stream.
// Each direction is a single-producer single-consumer bounded ring, so a
// PipeEnd must be used by at most one goroutine at a time.
type PipeEnd struct {
	sendQ    *lfq.SPSC[byte]
	recvQ    *lfq.SPSC[byte]
	closed   *atomix.Uint32
	sendSlot byte
}

// pipePair holds both ends, rings, and the shared close counter in a
// single allocation. SPSC rings are embedded as values; only the ring
// buffers are separate heap objects.
type pipePair struct {
	a      PipeEnd
	b      PipeEnd
	closed atomix.Uint32
	dataAB lfq.SPSC[byte]
	dataBA lfq.SPSC[byte]
}

// Pipe returns a connected pair of non-blocking duplex stream ends.
// Neither end ever blocks: a call that cannot make progress returns
// iox.ErrWouldBlock, and once either end closes, a drained read
// direction reports EOF. Pipe is the in-memory transport for driving
// the non-blocking wrappers without sockets.
func Pipe() (*PipeEnd, *PipeEnd) {
	pair := &pipePair{}
	pair.dataAB.Init(pipeCapacity)
	pair.dataBA.Init(pipeCapacity)

	pair.a = PipeEnd{
		sendQ:  &pair.dataAB,
		recvQ:  &pair.dataBA,
		closed: &pair.closed,
	}
	pair.b = PipeEnd{
		sendQ:  &pair.dataBA,
		recvQ:  &pair.dataAB,
		closed: &pair.closed,
	}
	return &pair.a, &pair.b
}

// Read fills p with buffered bytes. With nothing buffered it returns
// iox.ErrWouldBlock, or EOF once the pipe has been closed.
func (e *PipeEnd) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		b, err := e.recvQ.Dequeue()
		if err != nil {
			break
		}
		p[n] = b
		n++
	}
	if n == 0 && len(p) > 0 {
		if e.closed.Load() > 0 {
			return 0, iox.EOF
		}
		return 0, iox.ErrWouldBlock
	}
	return n, nil
}

// Write enqueues bytes from p. With the ring full it returns
// iox.ErrWouldBlock; partial progress returns the short count together
// with iox.ErrWouldBlock per the iox convention, so callers retry the
// remainder. Writing to a closed pipe returns iox.ErrClosedPipe.
func (e *PipeEnd) Write(p []byte) (int, error) {
	if e.closed.Load() > 0 {
		return 0, iox.ErrClosedPipe
	}
	n := 0
	for n < len(p) {
		e.sendSlot = p[n]
		if err := e.sendQ.Enqueue(&e.sendSlot); err != nil {
			break
		}
		n++
	}
	if n < len(p) {
		return n, iox.ErrWouldBlock
	}
	return n, nil
}

// Close signals shutdown to both directions. Already buffered bytes stay
// readable; a drained read direction then reports EOF. Close never blocks
// and is safe to call more than once.
func (e *PipeEnd) Close() error {
	e.closed.Add(1)
	return nil
}
