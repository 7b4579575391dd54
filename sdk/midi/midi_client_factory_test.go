package midi

import (
	"errors"
	"testing"

	"github.com/leandrodaf/midikit/internal/logger"
	"github.com/leandrodaf/midikit/sdk/contracts"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func stubRtMidi(t *testing.T) *int {
	t.Helper()
	calls := new(int)
	prev := rtmidiInitializer
	rtmidiInitializer = func(*contracts.ClientOptions) (contracts.ClientMIDI, error) {
		*calls++
		return newFakeClient(), nil
	}
	t.Cleanup(func() { rtmidiInitializer = prev })
	return calls
}

func testOptions(t *testing.T, opts ...contracts.Option) contracts.ClientOptions {
	t.Helper()
	core, _ := observer.New(zapcore.DebugLevel)
	opts = append([]contracts.Option{contracts.WithLogger(logger.NewWithCore(core))}, opts...)
	o, err := applyDefaultOptions(opts...)
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func TestDriverSelection(t *testing.T) {
	calls := stubRtMidi(t)

	o := testOptions(t)
	if _, err := newClient(&o, "linux"); err != nil || *calls != 1 {
		t.Errorf("auto on linux: err=%v rtmidi calls=%d", err, *calls)
	}

	o = testOptions(t, contracts.WithDriver(contracts.DriverRtMidi))
	if _, err := newClient(&o, "darwin"); err != nil || *calls != 2 {
		t.Errorf("forced rtmidi: err=%v rtmidi calls=%d", err, *calls)
	}

	o = testOptions(t, contracts.WithDriver(contracts.DriverNative))
	if _, err := newClient(&o, "plan9"); !errors.Is(err, ErrUnsupportedOS) {
		t.Errorf("native on plan9 = %v", err)
	}
}

func TestApplyDefaultOptions(t *testing.T) {
	o := testOptions(t)
	if o.CoreMIDIConfig == nil || o.CoreMIDIConfig.ClientName != defaultClientName {
		t.Errorf("client name = %+v", o.CoreMIDIConfig)
	}
	if o.PacketBuffer != defaultPacketBuffer || o.Driver != contracts.DriverAuto {
		t.Errorf("buffer = %d driver = %v", o.PacketBuffer, o.Driver)
	}
	if o.EventFilter != nil || o.HUI != nil || o.SysExReassembly {
		t.Errorf("unexpected optional settings: %+v", o)
	}

	if _, err := applyDefaultOptions(contracts.WithPacketBuffer(-1)); err == nil {
		t.Error("negative packet buffer accepted")
	}
	if _, err := applyDefaultOptions(contracts.WithDriver(contracts.Driver(9))); err == nil {
		t.Error("unknown driver accepted")
	}
}
