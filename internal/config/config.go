// Package config loads the YAML files used by the executables and turns
// them into session options.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leandrodaf/midikit/sdk/contracts"
	"github.com/leandrodaf/midikit/sdk/event"
	"github.com/leandrodaf/midikit/sdk/hui"
	"gopkg.in/yaml.v3"
)

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type Device struct {
	MidiInName  string `yaml:"midiInName"`
	MidiOutName string `yaml:"midiOutName"`
}

type Filter struct {
	Mode     string   `yaml:"mode"`
	Families []string `yaml:"families"`
	Kinds    []string `yaml:"kinds"`
	Channels []uint8  `yaml:"channels"`
}

type HUI struct {
	Enabled bool   `yaml:"enabled"`
	Role    string `yaml:"role"`
}

// Config is the file layout. Every field is optional.
type Config struct {
	Log             Log     `yaml:"log"`
	Driver          string  `yaml:"driver"`
	ClientName      string  `yaml:"clientName"`
	PacketBuffer    int     `yaml:"packetBuffer"`
	SysExReassembly bool    `yaml:"sysexReassembly"`
	Device          Device  `yaml:"device"`
	Filter          *Filter `yaml:"filter"`
	HUI             HUI     `yaml:"hui"`
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML document. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

var drivers = map[string]contracts.Driver{
	"":       contracts.DriverAuto,
	"auto":   contracts.DriverAuto,
	"native": contracts.DriverNative,
	"rtmidi": contracts.DriverRtMidi,
}

var filterModes = map[string]event.FilterMode{
	"only": event.FilterOnly,
	"keep": event.FilterKeep,
	"drop": event.FilterDrop,
}

// Options converts the file into session options. Anything left empty falls
// back to the session defaults.
func (c *Config) Options() ([]contracts.Option, error) {
	var opts []contracts.Option

	if c.Log.Level != "" {
		level, err := contracts.ParseLogLevel(c.Log.Level)
		if err != nil {
			return nil, err
		}
		opts = append(opts, contracts.WithLogLevel(level))
	}
	if c.Log.File != "" {
		opts = append(opts, contracts.WithLogFile(c.Log.File))
	}

	driver, ok := drivers[strings.ToLower(c.Driver)]
	if !ok {
		return nil, fmt.Errorf("unknown driver %q", c.Driver)
	}
	opts = append(opts, contracts.WithDriver(driver))

	if c.ClientName != "" {
		opts = append(opts, contracts.WithCoreMIDIConfig(contracts.CoreMIDIConfig{ClientName: c.ClientName}))
	}
	if c.PacketBuffer != 0 {
		opts = append(opts, contracts.WithPacketBuffer(c.PacketBuffer))
	}
	if c.SysExReassembly {
		opts = append(opts, contracts.WithSysExReassembly(true))
	}

	if c.Filter != nil {
		f, err := c.Filter.build()
		if err != nil {
			return nil, err
		}
		opts = append(opts, contracts.WithEventFilter(f))
	}

	if c.HUI.Enabled {
		role, err := hui.ParseRole(c.HUI.Role)
		if err != nil {
			return nil, fmt.Errorf("hui: %w", err)
		}
		opts = append(opts, contracts.WithHUI(role))
	}
	return opts, nil
}

func (f *Filter) build() (event.Filter, error) {
	mode, ok := filterModes[strings.ToLower(f.Mode)]
	if !ok {
		return event.Filter{}, fmt.Errorf("unknown filter mode %q", f.Mode)
	}
	out := event.Filter{Mode: mode}
	for _, name := range f.Families {
		fam, ok := event.ParseFamily(name)
		if !ok {
			return event.Filter{}, fmt.Errorf("unknown event family %q", name)
		}
		out.Families = append(out.Families, fam)
	}
	for _, name := range f.Kinds {
		k, ok := event.ParseKind(name)
		if !ok {
			return event.Filter{}, fmt.Errorf("unknown event kind %q", name)
		}
		out.Kinds = append(out.Kinds, k)
	}
	for _, ch := range f.Channels {
		if ch > 15 {
			return event.Filter{}, fmt.Errorf("filter channel %d out of range", ch)
		}
	}
	out.Channels = f.Channels
	return out, nil
}

// SelectDevices opens the ports named in the file. An empty name selects
// the first port; a name matches the first port whose name contains it.
func (d Device) SelectDevices(client contracts.ClientMIDI) error {
	ins, err := client.ListDevices()
	if err != nil {
		return err
	}
	in, err := match(ins, d.MidiInName)
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}
	if err := client.SelectDevice(in); err != nil {
		return err
	}

	outs, err := client.ListDestinations()
	if err != nil {
		if d.MidiOutName == "" {
			return nil
		}
		return err
	}
	out, err := match(outs, d.MidiOutName)
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return client.SelectDestination(out)
}

func match(devices []contracts.DeviceInfo, name string) (int, error) {
	if len(devices) == 0 {
		return 0, fmt.Errorf("no ports available")
	}
	if name == "" {
		return devices[0].ID, nil
	}
	for _, d := range devices {
		if strings.Contains(strings.ToLower(d.Name), strings.ToLower(name)) {
			return d.ID, nil
		}
	}
	return 0, fmt.Errorf("no port matching %q", name)
}
