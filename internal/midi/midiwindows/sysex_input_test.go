package midiwindows

import (
	"bytes"
	"sync"
	"testing"
)

func TestSysExSlotReceive(t *testing.T) {
	var slot sysExSlot
	if got := slot.receive(4); got != nil {
		t.Fatalf("receive without input = % X", got)
	}

	in := newSysExInput(8)
	copy(in.buf, []byte{0xF0, 0x41, 0x10, 0xF7})
	slot.open(in)

	got := slot.receive(4)
	if !bytes.Equal(got, []byte{0xF0, 0x41, 0x10, 0xF7}) {
		t.Errorf("receive = % X", got)
	}
	in.buf[1] = 0x00
	if got[1] != 0x41 {
		t.Error("received data aliases the driver buffer")
	}
	if len(in.requeue) != 1 {
		t.Errorf("requeue signals = %d", len(in.requeue))
	}

	slot.receive(4)
	if len(in.requeue) != 1 {
		t.Error("second requeue blocked or duplicated")
	}
	<-in.requeue

	if got := slot.receive(0); got != nil || len(in.requeue) != 0 {
		t.Errorf("reset buffer delivered % X or requeued", got)
	}
	if got := slot.receive(9); got != nil {
		t.Errorf("oversized count delivered % X", got)
	}
}

func TestSysExSlotCloseDuringCallbacks(t *testing.T) {
	var slot sysExSlot
	in := newSysExInput(4)
	slot.open(in)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			slot.receive(2)
			select {
			case <-in.requeue:
			default:
			}
		}
	}()

	if slot.close() != in {
		t.Error("close returned a different input")
	}
	wg.Wait()

	select {
	case <-in.done:
	default:
		t.Error("requeue loop not told to stop")
	}
	if slot.close() != nil {
		t.Error("second close returned an input")
	}
	if got := slot.receive(2); got != nil {
		t.Errorf("receive after close = % X", got)
	}
}
