package midi

import (
	"fmt"

	"github.com/leandrodaf/midikit/internal/logger"
	"github.com/leandrodaf/midikit/sdk/contracts"
)

const (
	defaultClientName   = "midikit"
	defaultPacketBuffer = 256
)

// applyDefaultOptions sets default values for ClientOptions if not explicitly provided.
func applyDefaultOptions(opts ...contracts.Option) (contracts.ClientOptions, error) {
	options := &contracts.ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}
	if options.CoreMIDIConfig == nil {
		options.CoreMIDIConfig = &contracts.CoreMIDIConfig{ClientName: defaultClientName}
	}
	if options.PacketBuffer < 0 {
		return contracts.ClientOptions{}, fmt.Errorf("packet buffer must not be negative: %d", options.PacketBuffer)
	}
	if options.PacketBuffer == 0 {
		options.PacketBuffer = defaultPacketBuffer
	}
	if options.Driver < contracts.DriverAuto || options.Driver > contracts.DriverRtMidi {
		return contracts.ClientOptions{}, fmt.Errorf("unknown driver %d", options.Driver)
	}

	options.Logger.SetLevel(options.LogLevel)
	if options.LogFilePath != "" {
		options.Logger.SetDestination(contracts.FileLog, options.LogFilePath)
	}
	return *options, nil
}
