package event

import (
	"errors"
	"fmt"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
)

// Construction errors. Constructors wrap these with context and tag them
// ftag.InvalidArgument, so both errors.Is and ftag.Get work on the result.
var (
	ErrChannelOutOfRange   = errors.New("channel out of range (0-15)")
	ErrGroupOutOfRange     = errors.New("group out of range (0-15)")
	ErrDataOutOfRange      = errors.New("data value out of range")
	ErrInvalidManufacturer = errors.New("invalid manufacturer id")
)

func invalid(err error, format string, args ...any) error {
	return fault.Wrap(err,
		fmsg.With(fmt.Sprintf(format, args...)),
		ftag.With(ftag.InvalidArgument),
	)
}

func checkChannel(channel uint8) error {
	if channel > 0x0F {
		return invalid(ErrChannelOutOfRange, "channel %d", channel)
	}
	return nil
}

func checkGroup(group uint8) error {
	if group > 0x0F {
		return invalid(ErrGroupOutOfRange, "group %d", group)
	}
	return nil
}

func check7(name string, v uint8) error {
	if v > 0x7F {
		return invalid(ErrDataOutOfRange, "%s %d exceeds 7 bits", name, v)
	}
	return nil
}

func check14(name string, v uint16) error {
	if v > 0x3FFF {
		return invalid(ErrDataOutOfRange, "%s %d exceeds 14 bits", name, v)
	}
	return nil
}

// checkAll returns the first non-nil error.
func checkAll(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
