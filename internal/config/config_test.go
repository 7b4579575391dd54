package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/leandrodaf/midikit/sdk/contracts"
	"github.com/leandrodaf/midikit/sdk/event"
	"github.com/leandrodaf/midikit/sdk/hui"
)

const full = `
log:
  level: debug
  file: /tmp/midikit.log
driver: rtmidi
clientName: studio
packetBuffer: 64
sysexReassembly: true
device:
  midiInName: hui
  midiOutName: HUI
filter:
  mode: drop
  families: [systemRealTime]
  kinds: [sysEx]
  channels: [0, 9]
hui:
  enabled: true
  role: surface
`

func apply(t *testing.T, cfg *Config) contracts.ClientOptions {
	t.Helper()
	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	var o contracts.ClientOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func TestParseFull(t *testing.T) {
	cfg, err := Parse([]byte(full))
	if err != nil {
		t.Fatal(err)
	}
	o := apply(t, cfg)

	if o.LogLevel != contracts.DebugLevel || o.LogFilePath != "/tmp/midikit.log" {
		t.Errorf("log options = %v %q", o.LogLevel, o.LogFilePath)
	}
	if o.Driver != contracts.DriverRtMidi || o.CoreMIDIConfig.ClientName != "studio" {
		t.Errorf("driver = %v client = %+v", o.Driver, o.CoreMIDIConfig)
	}
	if o.PacketBuffer != 64 || !o.SysExReassembly {
		t.Errorf("buffer = %d reassembly = %v", o.PacketBuffer, o.SysExReassembly)
	}
	want := event.Filter{
		Mode:     event.FilterDrop,
		Families: []event.Family{event.FamilySystemRealTime},
		Kinds:    []event.Kind{event.KindSysEx},
		Channels: []uint8{0, 9},
	}
	if o.EventFilter == nil || !reflect.DeepEqual(*o.EventFilter, want) {
		t.Errorf("filter = %+v", o.EventFilter)
	}
	if o.HUI == nil || o.HUI.Role != hui.RoleSurface {
		t.Errorf("hui = %+v", o.HUI)
	}
	if cfg.Device.MidiInName != "hui" || cfg.Device.MidiOutName != "HUI" {
		t.Errorf("device = %+v", cfg.Device)
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	o := apply(t, cfg)
	if o.Driver != contracts.DriverAuto || o.EventFilter != nil || o.HUI != nil || o.CoreMIDIConfig != nil {
		t.Errorf("empty config produced %+v", o)
	}
}

func TestInvalid(t *testing.T) {
	if _, err := Parse([]byte("unknownKey: 1\n")); err == nil {
		t.Error("unknown key accepted")
	}

	cases := map[string]string{
		"level":   "log: {level: loud}",
		"driver":  "driver: alsa",
		"mode":    "filter: {mode: some}",
		"family":  "filter: {mode: only, families: [voice]}",
		"kind":    "filter: {mode: only, kinds: [noteUp]}",
		"channel": "filter: {mode: only, channels: [16]}",
		"role":    "hui: {enabled: true, role: mixer}",
	}
	for name, doc := range cases {
		cfg, err := Parse([]byte(doc))
		if err != nil {
			t.Errorf("%s: parse: %v", name, err)
			continue
		}
		if _, err := cfg.Options(); err == nil {
			t.Errorf("%s: Options accepted %q", name, doc)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "midikit.yaml")
	if err := os.WriteFile(path, []byte("driver: native\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Driver != "native" {
		t.Errorf("driver = %q", cfg.Driver)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
}

type portsClient struct {
	contracts.ClientMIDI
	ins, outs []contracts.DeviceInfo
	in, out   int
}

func (p *portsClient) ListDevices() ([]contracts.DeviceInfo, error)      { return p.ins, nil }
func (p *portsClient) ListDestinations() ([]contracts.DeviceInfo, error) { return p.outs, nil }
func (p *portsClient) SelectDevice(id int) error                         { p.in = id; return nil }
func (p *portsClient) SelectDestination(id int) error                    { p.out = id; return nil }

func TestSelectDevices(t *testing.T) {
	c := &portsClient{
		ins:  []contracts.DeviceInfo{{ID: 0, Name: "IAC Bus"}, {ID: 1, Name: "HUI In"}},
		outs: []contracts.DeviceInfo{{ID: 0, Name: "IAC Bus"}, {ID: 1, Name: "HUI Out"}},
	}
	if err := (Device{MidiInName: "hui", MidiOutName: "hui out"}).SelectDevices(c); err != nil {
		t.Fatal(err)
	}
	if c.in != 1 || c.out != 1 {
		t.Errorf("selected in=%d out=%d", c.in, c.out)
	}

	if err := (Device{}).SelectDevices(c); err != nil || c.in != 0 || c.out != 0 {
		t.Errorf("default selection in=%d out=%d err=%v", c.in, c.out, err)
	}
	if err := (Device{MidiInName: "nanoKONTROL"}).SelectDevices(c); err == nil {
		t.Error("unmatched input accepted")
	}
}
