package midi

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/leandrodaf/midikit/sdk/contracts"
	"github.com/leandrodaf/midikit/sdk/event"
	"github.com/leandrodaf/midikit/sdk/hui"
	"github.com/leandrodaf/midikit/sdk/parser"
	"go.uber.org/multierr"
)

var (
	// ErrSessionStarted is returned by Start when the packet loop is already running.
	ErrSessionStarted = errors.New("session already started")
	// ErrSessionClosed is returned by operations on a closed session.
	ErrSessionClosed = errors.New("session closed")
	// ErrHUIDisabled is returned by SendHUI when the session was created without WithHUI.
	ErrHUIDisabled = errors.New("HUI is not enabled for this session")
)

// Session reads packets from a transport, parses them with one running
// status per group and hands the events to subscribers and, when enabled,
// to the HUI decoder and shadow model.
type Session struct {
	id      uuid.UUID
	client  contracts.ClientMIDI
	logger  contracts.Logger
	options contracts.ClientOptions
	packets chan contracts.Packet
	events  dispatcher

	procMu sync.Mutex
	groups map[uint8]*groupState

	huiMu    sync.Mutex
	encoder  *hui.Encoder
	model    *hui.Model
	pending  []hui.Event
	handlers []hui.Handler

	runMu   sync.Mutex
	started bool
	closed  bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSession opens the transport chosen by the options and wraps it in a Session.
func NewSession(opts ...contracts.Option) (*Session, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	client, err := NewClient(&options)
	if err != nil {
		return nil, err
	}
	return newSession(client, options), nil
}

// NewSessionWithClient wraps an already opened transport.
func NewSessionWithClient(client contracts.ClientMIDI, opts ...contracts.Option) (*Session, error) {
	if client == nil {
		return nil, errors.New("nil MIDI client")
	}
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	return newSession(client, options), nil
}

func newSession(client contracts.ClientMIDI, options contracts.ClientOptions) *Session {
	s := &Session{
		id:      uuid.New(),
		client:  client,
		logger:  options.Logger,
		options: options,
		packets: make(chan contracts.Packet, options.PacketBuffer),
		groups:  make(map[uint8]*groupState),
	}
	s.events.logger = s.logger
	if options.HUI != nil {
		s.encoder = hui.NewEncoder(options.HUI.Role)
		s.model = hui.NewModel()
	}
	s.logger.Info("MIDI session created", s.idField())
	return s
}

func (s *Session) idField() contracts.Field {
	return s.logger.Field().String("session", s.id.String())
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id.String() }

// Client returns the underlying transport for device selection.
func (s *Session) Client() contracts.ClientMIDI { return s.client }

// Subscribe returns a channel receiving every event that passes the session
// filter and all of the given filters. Delivery never blocks the session; a
// subscriber that falls behind loses events. The channel is closed by Close.
func (s *Session) Subscribe(filters ...event.Filter) <-chan contracts.TimedEvent {
	return s.events.subscribe(filters...)
}

// OnHUIEvent registers h for every decoded HUI event. Handlers run on the
// packet loop after the model has been updated.
func (s *Session) OnHUIEvent(h hui.Handler) {
	s.huiMu.Lock()
	defer s.huiMu.Unlock()
	s.handlers = append(s.handlers, h)
}

// Model returns a snapshot of the HUI shadow model, or nil when HUI is not enabled.
func (s *Session) Model() *hui.Model {
	s.huiMu.Lock()
	defer s.huiMu.Unlock()
	if s.model == nil {
		return nil
	}
	return s.model.Clone()
}

// Start begins capture and processes packets until ctx is done or the
// session is closed.
func (s *Session) Start(ctx context.Context) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.started {
		return ErrSessionStarted
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.client.StartCapture(s.packets)
	go s.loop(ctx)

	s.logger.Info("MIDI session started", s.idField())
	return nil
}

func (s *Session) loop(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("MIDI session loop finished", s.idField())
			return
		case pkt := <-s.packets:
			s.Process(pkt)
		}
	}
}

// Process parses one packet and delivers the resulting events. Start calls
// it for every captured packet; it can also be fed directly.
func (s *Session) Process(pkt contracts.Packet) {
	s.procMu.Lock()
	defer s.procMu.Unlock()

	g := s.group(pkt.Group)
	for _, e := range g.stream.Feed(pkt) {
		if g.decoder != nil {
			s.decodeHUI(g.decoder, e)
		}
		if s.options.EventFilter != nil && !s.options.EventFilter.Match(e) {
			continue
		}
		s.events.dispatch(contracts.TimedEvent{Timestamp: pkt.Timestamp, Event: e})
	}
}

// groupState is the per-group parsing state. Running status and the
// pending halves of HUI switch and fader messages never cross groups.
type groupState struct {
	stream  *parser.Stream
	decoder *hui.Decoder
}

func (s *Session) group(group uint8) *groupState {
	group &= 0x0F
	g, ok := s.groups[group]
	if !ok {
		g = &groupState{stream: parser.NewStream(parser.New(
			parser.WithGroup(group),
			parser.WithSysExReassembly(s.options.SysExReassembly),
			parser.WithLogger(s.logger),
		))}
		if s.model != nil {
			g.decoder = hui.NewDecoder(hui.HandlerFunc(func(e hui.Event) {
				s.pending = append(s.pending, e)
			}))
		}
		s.groups[group] = g
	}
	return g
}

func (s *Session) decodeHUI(dec *hui.Decoder, e event.Event) {
	s.huiMu.Lock()
	dec.HandleEvent(e)
	decoded := s.pending
	s.pending = nil
	for _, he := range decoded {
		s.model.Apply(he)
	}
	handlers := append([]hui.Handler(nil), s.handlers...)
	s.huiMu.Unlock()

	for _, he := range decoded {
		if _, ok := he.(hui.Ping); ok && s.encoder.Role() == hui.RoleSurface {
			if err := s.SendHUI(hui.Ping{}); err != nil {
				s.logger.Debug("Ping reply not sent", s.idField(), s.logger.Field().Error("error", err))
			}
		}
		for _, h := range handlers {
			h.HandleHUIEvent(he)
		}
	}
}

// Send validates and encodes events and transmits them in one write.
// Nothing is sent when any event is out of range.
func (s *Session) Send(events ...event.Event) error {
	if s.isClosed() {
		return ErrSessionClosed
	}
	if err := event.ValidateAll(events...); err != nil {
		return err
	}
	data := event.EncodeAll(events...)
	if len(data) == 0 {
		return nil
	}
	return s.client.Send(data)
}

// SendHUI encodes e in the session's HUI role and transmits it.
func (s *Session) SendHUI(e hui.Event) error {
	if s.encoder == nil {
		return ErrHUIDisabled
	}
	return s.Send(s.encoder.Events(e)...)
}

func (s *Session) isClosed() bool {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	return s.closed
}

// Close stops the packet loop and the transport, closes every subscription
// and flushes a file log. Errors from each step are combined.
func (s *Session) Close() error {
	s.runMu.Lock()
	if s.closed {
		s.runMu.Unlock()
		return nil
	}
	s.closed = true
	cancel, done := s.cancel, s.done
	s.runMu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	err := s.client.Stop()
	s.events.close()
	s.logger.Info("MIDI session closed", s.idField())

	if s.options.LogFilePath != "" {
		if syncer, ok := s.logger.(contracts.Syncer); ok {
			err = multierr.Append(err, syncer.Sync())
		}
	}
	return err
}
