package midiwindows

import "sync/atomic"

// sysExInput is the system exclusive receive buffer of an open input.
// winmm fills buf and reports how much it recorded; requeue wakes the
// goroutine that hands the buffer back to the driver.
type sysExInput struct {
	buf     []byte
	requeue chan struct{}
	done    chan struct{}
}

func newSysExInput(size int) *sysExInput {
	return &sysExInput{
		buf:     make([]byte, size),
		requeue: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// sysExSlot publishes the current sysExInput to the winmm callback, which
// runs on a driver thread and must not take the client mutex: midiInReset
// calls back synchronously while stopCapture holds it.
type sysExSlot struct {
	p atomic.Pointer[sysExInput]
}

func (s *sysExSlot) open(in *sysExInput) { s.p.Store(in) }

// close detaches the input and stops its requeue loop. Callbacks that
// arrive afterwards find no input and do nothing.
func (s *sysExSlot) close() *sysExInput {
	in := s.p.Swap(nil)
	if in != nil {
		close(in.done)
	}
	return in
}

// receive copies the n recorded bytes and asks for the buffer to be queued
// again. A zero-length buffer is what midiInReset returns; it yields nil and
// is not requeued.
func (s *sysExSlot) receive(n int) []byte {
	in := s.p.Load()
	if in == nil || n <= 0 || n > len(in.buf) {
		return nil
	}
	data := append([]byte(nil), in.buf[:n]...)
	select {
	case in.requeue <- struct{}{}:
	default:
	}
	return data
}
