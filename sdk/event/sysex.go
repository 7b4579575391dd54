package event

import (
	"fmt"
	"strings"
)

// ManufacturerID identifies the vendor of a system-exclusive message. It is
// either a single non-zero byte or the three-byte form 0x00 b1 b2.
type ManufacturerID struct {
	b0, b1, b2 byte
}

// NewManufacturerID builds the one-byte form. The byte must be 0x01-0x7F;
// zero is reserved as the prefix of the three-byte form.
func NewManufacturerID(b byte) (ManufacturerID, error) {
	if b == 0x00 {
		return ManufacturerID{}, invalid(ErrInvalidManufacturer, "one-byte manufacturer id must be non-zero")
	}
	if err := check7("manufacturer id", b); err != nil {
		return ManufacturerID{}, err
	}
	return ManufacturerID{b0: b}, nil
}

// NewExtendedManufacturerID builds the three-byte form 0x00 b1 b2.
func NewExtendedManufacturerID(b1, b2 byte) (ManufacturerID, error) {
	if err := checkAll(check7("manufacturer id byte 2", b1), check7("manufacturer id byte 3", b2)); err != nil {
		return ManufacturerID{}, err
	}
	return ManufacturerID{b1: b1, b2: b2}, nil
}

// ParseManufacturerID reads a manufacturer id from the start of b and
// reports how many bytes it used. It fails when b is empty or a three-byte
// id is truncated.
func ParseManufacturerID(b []byte) (ManufacturerID, int, bool) {
	if len(b) == 0 {
		return ManufacturerID{}, 0, false
	}
	if b[0] != 0x00 {
		return ManufacturerID{b0: b[0] & 0x7F}, 1, true
	}
	if len(b) < 3 {
		return ManufacturerID{}, 0, false
	}
	return ManufacturerID{b1: b[1] & 0x7F, b2: b[2] & 0x7F}, 3, true
}

// IsExtended reports whether the id uses the three-byte form.
func (m ManufacturerID) IsExtended() bool { return m.b0 == 0x00 }

// Bytes returns the wire bytes of the id.
func (m ManufacturerID) Bytes() []byte {
	if m.IsExtended() {
		return []byte{0x00, m.b1, m.b2}
	}
	return []byte{m.b0}
}

func (m ManufacturerID) String() string {
	if m.IsExtended() {
		return fmt.Sprintf("00 %02X %02X", m.b1, m.b2)
	}
	return fmt.Sprintf("%02X", m.b0)
}

// SysEx is a system-exclusive message. Data holds the payload between the
// manufacturer id and the terminating 0xF7, exclusive of both.
type SysEx struct {
	Manufacturer ManufacturerID
	Data         []byte
	Group        uint8
}

// NewSysEx validates the payload and builds a SysEx. The data slice is
// copied.
func NewSysEx(manufacturer ManufacturerID, data []byte, group uint8) (SysEx, error) {
	if err := checkGroup(group); err != nil {
		return SysEx{}, err
	}
	for i, b := range data {
		if b > 0x7F {
			return SysEx{}, invalid(ErrDataOutOfRange, "sysex data byte %d is 0x%02X", i, b)
		}
	}
	return SysEx{Manufacturer: manufacturer, Data: CloneData(data), Group: group}, nil
}

// CloneData copies a payload. Empty payloads become nil so that events
// built from different sources compare equal with reflect.DeepEqual.
func CloneData(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}
	return append([]byte(nil), data...)
}

func (SysEx) Kind() Kind { return KindSysEx }
func (SysEx) sealed()    {}

func (e SysEx) String() string {
	var sb strings.Builder
	for i, b := range e.Data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return fmt.Sprintf("sysEx(mfr=%s data=[%s] grp=%d)", e.Manufacturer, sb.String(), e.Group)
}
