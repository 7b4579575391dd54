package midiwindows

import (
	"reflect"
	"testing"
)

func TestSplitMessages(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want [][]byte
	}{
		{"empty", nil, nil},
		{"single", []byte{0x90, 0x3C, 0x40}, [][]byte{{0x90, 0x3C, 0x40}}},
		{
			"running status expanded",
			[]byte{0x90, 0x3C, 0x40, 0x3D, 0x41},
			[][]byte{{0x90, 0x3C, 0x40}, {0x90, 0x3D, 0x41}},
		},
		{
			"real time inside short message",
			[]byte{0xB0, 0xF8, 0x0F, 0x02},
			[][]byte{{0xF8}, {0xB0, 0x0F, 0x02}},
		},
		{
			"sysex then short",
			[]byte{0xF0, 0x00, 0x00, 0x66, 0x05, 0xF7, 0xC1, 0x05},
			[][]byte{{0xF0, 0x00, 0x00, 0x66, 0x05, 0xF7}, {0xC1, 0x05}},
		},
		{
			"unterminated sysex closed",
			[]byte{0xF0, 0x41, 0x01, 0xFE},
			[][]byte{{0xFE}, {0xF0, 0x41, 0x01, 0xF7}},
		},
		{
			"sysex closed by status",
			[]byte{0xF0, 0x41, 0x90, 0x3C, 0x40},
			[][]byte{{0xF0, 0x41, 0xF7}, {0x90, 0x3C, 0x40}},
		},
		{"truncated dropped", []byte{0x90, 0x3C}, nil},
		{"stray data dropped", []byte{0x3C, 0x40, 0xF6}, [][]byte{{0xF6}}},
		{"undefined status", []byte{0xF4, 0x01, 0xFD}, nil},
		{
			"common clears running status",
			[]byte{0x90, 0x3C, 0x40, 0xF3, 0x01, 0x3D, 0x41},
			[][]byte{{0x90, 0x3C, 0x40}, {0xF3, 0x01}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitMessages(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitMessages(% X) = % X, want % X", tt.in, got, tt.want)
			}
		})
	}
}

func TestShortMessagePacking(t *testing.T) {
	tests := []struct {
		msg    []byte
		packed uint32
	}{
		{[]byte{0x90, 0x3C, 0x40}, 0x00403C90},
		{[]byte{0xC2, 0x05}, 0x000005C2},
		{[]byte{0xF8}, 0x000000F8},
	}
	for _, tt := range tests {
		if got := packShort(tt.msg); got != tt.packed {
			t.Errorf("packShort(% X) = 0x%08X, want 0x%08X", tt.msg, got, tt.packed)
		}
		if got := unpackShort(tt.packed); !reflect.DeepEqual(got, tt.msg) {
			t.Errorf("unpackShort(0x%08X) = % X, want % X", tt.packed, got, tt.msg)
		}
	}

	if got := unpackShort(0x00000045); got != nil {
		t.Errorf("data byte unpacked to % X", got)
	}
}
