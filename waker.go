// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partio

import "code.hybscloud.com/atomix"

// Waker receives readiness notifications for a suspended caller. The
// non-blocking wrappers signal it when a scripted would-block failure is
// returned, telling the driving executor to re-poll the call.
type Waker interface {
	Wake()
}

// WakeFunc adapts a plain function to the Waker interface.
type WakeFunc func()

// Wake implements Waker.
func (f WakeFunc) Wake() { f() }

// WakeCount is a lock-free wake counter for executors that poll readiness
// flags between passes. Wake may be called from the I/O side while the
// executor reads the count; no other coordination is required.
type WakeCount struct {
	n atomix.Uint32
}

// Wake implements Waker.
func (w *WakeCount) Wake() {
	w.n.Add(1)
}

// Wakes returns the number of wake signals received so far.
func (w *WakeCount) Wakes() uint32 {
	return w.n.Load()
}
