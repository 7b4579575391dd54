// Package parser turns raw, possibly fragmented MIDI 1.0 byte packets into
// typed events.
//
// The parser itself holds only configuration. Everything that must survive
// from one packet to the next lives in State, which the caller passes in and
// gets back:
//
//	p := parser.New()
//	events, st := p.Parse([]byte{0x92, 0x3C, 0x40}, parser.State{})
//	events, st = p.Parse([]byte{0x3E, 0x42}, st) // running status 0x92 applies
//
// Keep one State per logical input (connection or group); running status
// must never be shared between unrelated streams. Stream wraps that
// bookkeeping for callers that prefer an object.
//
// Malformed input is never an error: incomplete messages are dropped,
// undefined status bytes produce nothing, and stray data bytes are ignored.
package parser

import (
	"github.com/leandrodaf/midikit/sdk/contracts"
	"github.com/leandrodaf/midikit/sdk/event"
)

// State is the parser context carried between packets of one stream.
type State struct {
	// RunningStatus is the last channel-voice status byte, or 0 for none.
	RunningStatus byte
	// SysEx holds the bytes of a system-exclusive message left open at the
	// end of the previous packet. It is only populated when reassembly is
	// enabled; nil means no message is open.
	SysEx []byte
}

// Parser decodes packets. It is immutable and safe for concurrent use; the
// mutable part is the State threaded through Parse.
type Parser struct {
	group      uint8
	reassemble bool
	logger     contracts.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithGroup stamps decoded events with the given group (0-15).
func WithGroup(group uint8) Option {
	return func(p *Parser) {
		p.group = group & 0x0F
	}
}

// WithSysExReassembly keeps an unterminated system-exclusive message open in
// State at the end of a packet instead of emitting it. Only use it when the
// transport delivers one logical stream contiguously.
func WithSysExReassembly(enabled bool) Option {
	return func(p *Parser) {
		p.reassemble = enabled
	}
}

// WithLogger reports dropped fragments at debug level.
func WithLogger(l contracts.Logger) Option {
	return func(p *Parser) {
		p.logger = l
	}
}

// New creates a Parser. By default events are stamped with group 0 and an
// unterminated SysEx is flushed at the end of each packet.
func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Decode parses a single packet with a fresh state and default options.
func Decode(data []byte) []event.Event {
	events, _ := New().Parse(data, State{})
	return events
}

type collector []event.Event

func (c *collector) HandleEvent(e event.Event) { *c = append(*c, e) }

// Parse decodes data and returns the completed events in completion order
// together with the state to pass into the next call for the same stream.
func (p *Parser) Parse(data []byte, state State) ([]event.Event, State) {
	var out collector
	state = p.ParseTo(data, state, &out)
	return out, state
}

// message is a fixed-length message waiting for data bytes.
type message struct {
	status byte
	need   int
	data   [2]byte
	n      int
}

// ParseTo decodes data, pushing each event to sink as soon as it completes.
//
// Real-time bytes are delivered the moment they are seen, so one that
// interrupts a longer message is delivered before that message.
func (p *Parser) ParseTo(data []byte, state State, sink event.Sink) State {
	var (
		rs      = state.RunningStatus
		msg     message
		inMsg   bool
		sysex   []byte
		inSysEx bool
	)
	if state.SysEx != nil {
		sysex = append(make([]byte, 0, len(state.SysEx)+16), state.SysEx...)
		inSysEx = true
	}

	abandon := func() {
		if inMsg {
			p.debug("dropping incomplete message", msg.status, msg.n)
			inMsg = false
		}
	}
	flushSysEx := func() {
		if inSysEx {
			p.emitSysEx(sysex, sink)
			sysex, inSysEx = nil, false
		}
	}
	start := func(status byte) {
		n, _ := event.DataLength(status)
		msg = message{status: status, need: n}
		inMsg = true
	}
	push := func(b byte) {
		msg.data[msg.n] = b
		msg.n++
		if msg.n == msg.need {
			p.emit(msg, sink)
			inMsg = false
		}
	}

	for _, b := range data {
		switch {
		case event.IsRealTime(b):
			if e, ok := event.NewRealTime(b, p.group); ok {
				sink.HandleEvent(e)
			}

		case b == event.StatusSysExStart:
			abandon()
			flushSysEx()
			rs = 0
			sysex, inSysEx = make([]byte, 0, 16), true

		case b == event.StatusSysExEnd:
			abandon()
			flushSysEx()
			rs = 0

		case b > event.StatusSysExStart:
			// System common, including the undefined 0xF4 and 0xF5.
			abandon()
			flushSysEx()
			rs = 0
			n, ok := event.DataLength(b)
			if !ok {
				continue
			}
			if n == 0 {
				p.emit(message{status: b}, sink)
				continue
			}
			start(b)

		case b >= 0x80:
			abandon()
			flushSysEx()
			rs = b
			start(b)

		case inSysEx:
			sysex = append(sysex, b)

		case inMsg:
			push(b)

		case rs != 0:
			start(rs)
			push(b)

		default:
			p.debug("dropping data byte without status", b, 0)
		}
	}

	abandon()
	if inSysEx && p.reassemble {
		return State{RunningStatus: rs, SysEx: sysex}
	}
	flushSysEx()
	return State{RunningStatus: rs}
}

func (p *Parser) emit(msg message, sink event.Sink) {
	if e, ok := event.DecodeStatusMessage(msg.status, msg.data[:msg.n], p.group); ok {
		sink.HandleEvent(e)
	}
}

// emitSysEx closes a system-exclusive message. buf holds everything after
// 0xF0. Messages without a complete manufacturer id are dropped.
func (p *Parser) emitSysEx(buf []byte, sink event.Sink) {
	id, n, ok := event.ParseManufacturerID(buf)
	if !ok {
		p.debug("dropping sysex without manufacturer id", event.StatusSysExStart, len(buf))
		return
	}
	sink.HandleEvent(event.SysEx{
		Manufacturer: id,
		Data:         event.CloneData(buf[n:]),
		Group:        p.group,
	})
}

func (p *Parser) debug(msg string, status byte, have int) {
	if p.logger == nil {
		return
	}
	p.logger.Debug(msg,
		p.logger.Field().Uint8("status", status),
		p.logger.Field().Int("bytes", have),
		p.logger.Field().Uint8("group", p.group),
	)
}
