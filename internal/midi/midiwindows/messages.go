package midiwindows

import (
	"github.com/leandrodaf/midikit/sdk/event"
	"github.com/leandrodaf/midikit/sdk/parser"
)

// winmm transmits short messages packed into a DWORD and system exclusive
// messages through a separate long-message buffer, so outgoing packets are
// split into single messages first.

// splitMessages cuts an encoded packet into single messages using the
// stream parser, so running status is expanded, real-time bytes become
// messages of their own and an unterminated system exclusive message is
// closed with 0xF7. Stray data bytes and truncated messages are dropped.
func splitMessages(data []byte) [][]byte {
	var out [][]byte
	for _, e := range parser.Decode(data) {
		out = append(out, event.Encode(e))
	}
	return out
}

// packShort packs a short message into the DWORD layout of midiOutShortMsg.
func packShort(msg []byte) uint32 {
	var v uint32
	for i := 0; i < len(msg) && i < 3; i++ {
		v |= uint32(msg[i]) << (8 * i)
	}
	return v
}

// unpackShort is the inverse of packShort for a message arriving with
// MIM_DATA. It returns nil for status bytes that cannot start a short
// message.
func unpackShort(param uint32) []byte {
	status := byte(param)
	n, ok := event.DataLength(status)
	if !ok {
		return nil
	}
	msg := make([]byte, 1+n)
	msg[0] = status
	for i := 1; i <= n; i++ {
		msg[i] = byte(param >> (8 * i))
	}
	return msg
}
