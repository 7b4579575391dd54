package hui

import (
	"errors"
	"fmt"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
)

var (
	ErrStripOutOfRange = errors.New("channel strip out of range (0-7)")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrUnknownSwitch   = errors.New("unknown switch")
	ErrInvalidText     = errors.New("invalid display text")
)

func invalid(err error, format string, args ...any) error {
	return fault.Wrap(err,
		fmsg.With(fmt.Sprintf(format, args...)),
		ftag.With(ftag.InvalidArgument),
	)
}

func checkStrip(strip uint8) error {
	if strip >= StripCount {
		return invalid(ErrStripOutOfRange, "strip %d", strip)
	}
	return nil
}
