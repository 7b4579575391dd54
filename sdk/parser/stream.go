package parser

import (
	"github.com/leandrodaf/midikit/sdk/contracts"
	"github.com/leandrodaf/midikit/sdk/event"
)

// Stream owns the State of one logical input. It is not safe for concurrent
// use: packets of a stream must be fed in arrival order from one goroutine.
type Stream struct {
	parser *Parser
	state  State
}

// NewStream creates a Stream with empty state.
func NewStream(p *Parser) *Stream {
	return &Stream{parser: p}
}

// Feed parses one packet and returns its events.
func (s *Stream) Feed(pkt contracts.Packet) []event.Event {
	var events []event.Event
	s.state = s.parser.ParseTo(pkt.Data, s.state, event.SinkFunc(func(e event.Event) {
		events = append(events, e)
	}))
	return events
}

// FeedTo parses one packet, pushing events to sink as they complete.
func (s *Stream) FeedTo(pkt contracts.Packet, sink event.Sink) {
	s.state = s.parser.ParseTo(pkt.Data, s.state, sink)
}

// State returns the state carried into the next packet.
func (s *Stream) State() State { return s.state }

// Reset forgets running status and any open SysEx.
func (s *Stream) Reset() { s.state = State{} }
