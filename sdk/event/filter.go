package event

// FilterMode selects how a Filter treats the events it names.
type FilterMode int

const (
	// FilterOnly passes only the named families and kinds.
	FilterOnly FilterMode = iota
	// FilterKeep narrows the families touched by the named kinds to just
	// those kinds, and passes every other family untouched.
	FilterKeep
	// FilterDrop removes the named families and kinds.
	FilterDrop
)

// Filter selects which decoded events reach a consumer.
type Filter struct {
	Mode     FilterMode
	Families []Family
	Kinds    []Kind
	// Channels restricts channel-voice events to the listed channels.
	// Empty means all channels. Other families ignore it.
	Channels []uint8
}

// Match reports whether e passes the filter. A filter naming no families
// and no kinds only applies its channel restriction, whatever its mode.
func (f Filter) Match(e Event) bool {
	if !f.matchChannel(e) {
		return false
	}
	if len(f.Families) == 0 && len(f.Kinds) == 0 {
		return true
	}
	switch f.Mode {
	case FilterOnly:
		return f.names(e.Kind())
	case FilterKeep:
		if f.covers(e.Kind().Family()) {
			return f.names(e.Kind())
		}
		return true
	case FilterDrop:
		return !f.names(e.Kind())
	}
	return true
}

// Apply returns the events that pass the filter, in order.
func (f Filter) Apply(events []Event) []Event {
	out := events[:0:0]
	for _, e := range events {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

func (f Filter) names(k Kind) bool {
	fam := k.Family()
	for _, x := range f.Families {
		if x == fam {
			return true
		}
	}
	for _, x := range f.Kinds {
		if x == k {
			return true
		}
	}
	return false
}

func (f Filter) covers(fam Family) bool {
	for _, x := range f.Families {
		if x == fam {
			return true
		}
	}
	for _, k := range f.Kinds {
		if k.Family() == fam {
			return true
		}
	}
	return false
}

func (f Filter) matchChannel(e Event) bool {
	if len(f.Channels) == 0 {
		return true
	}
	ch, ok := ChannelOf(e)
	if !ok {
		return true
	}
	for _, c := range f.Channels {
		if c == ch {
			return true
		}
	}
	return false
}
