package hui_test

import (
	"reflect"
	"testing"

	"github.com/leandrodaf/midikit/sdk/hui"
	"github.com/leandrodaf/midikit/sdk/parser"
)

func TestRoundTripThroughParser(t *testing.T) {
	strip := func(s uint8, fn hui.StripFunction) hui.Switch {
		sw, err := hui.ChannelStripSwitch(s, fn)
		if err != nil {
			t.Fatal(err)
		}
		return sw
	}
	fader, _ := hui.NewFaderLevel(4, 0x1FFF)
	meter, _ := hui.NewLevelMeter(1, hui.Left, 12)
	pot, _ := hui.NewVPotDelta(hui.EditAssignC, -7)
	name, _ := hui.NewSmallDisplay(0, "Gtr")
	large, _ := hui.NewLargeDisplay(0, "Session 1")
	tc, _ := hui.NewTimeDisplay(4, 0x00, 0x01)

	want := []hui.Event{
		hui.Ping{},
		hui.NewSwitchEvent(strip(4, hui.Mute), true),
		fader,
		meter,
		pot,
		hui.SystemReset{},
		name,
		large,
		tc,
		hui.NewSwitchEvent(strip(4, hui.Mute), false),
	}

	enc := hui.NewEncoder(hui.RoleSurface)
	var wire []byte
	for _, e := range want {
		wire = append(wire, enc.Encode(e)...)
	}

	var got []hui.Event
	dec := hui.NewDecoder(hui.HandlerFunc(func(e hui.Event) { got = append(got, e) }))
	events, _ := parser.New().Parse(wire, parser.State{})
	dec.Push(events...)

	if !reflect.DeepEqual(got, want) {
		t.Errorf("decode(bytes)\n got: %v\nwant: %v", got, want)
	}
}

func TestModelFollowsDecoder(t *testing.T) {
	host := hui.NewEncoder(hui.RoleHost)
	model := hui.NewModel()
	dec := hui.NewDecoder(model)

	solo, _ := hui.ChannelStripSwitch(6, hui.Solo)
	fader, _ := hui.NewFaderLevel(6, 0x3000)
	name, _ := hui.NewSmallDisplay(6, "Keys")

	var wire []byte
	for _, e := range []hui.Event{hui.NewSwitchEvent(solo, true), fader, name} {
		wire = append(wire, host.Encode(e)...)
	}
	dec.Push(parser.Decode(wire)...)

	got, _ := model.ChannelStrip(6)
	if !got.Solo || got.FaderLevel != 0x3000 || got.Name != "Keys" {
		t.Errorf("strip 6 = %+v", got)
	}
}
