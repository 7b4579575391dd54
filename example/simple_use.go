package main

import (
	"context"
	"fmt"

	"github.com/leandrodaf/midikit/internal/logger"
	"github.com/leandrodaf/midikit/sdk/contracts"
	"github.com/leandrodaf/midikit/sdk/event"
	"github.com/leandrodaf/midikit/sdk/midi"
	"github.com/xlab/closer"
)

func main() {
	defer closer.Close()
	log := logger.NewZapLogger()

	session, err := midi.NewSession(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
		contracts.WithEventFilter(event.Filter{
			Mode:     event.FilterDrop,
			Families: []event.Family{event.FamilySystemRealTime},
		}),
	)
	if err != nil {
		closer.Fatalln("Failed to initialize MIDI session:", err)
	}
	closer.Bind(func() {
		if err := session.Close(); err != nil {
			log.Error("Failed to close MIDI session", log.Field().Error("error", err))
		}
		midi.CloseDrivers()
	})

	client := session.Client()
	devices, err := client.ListDevices()
	if err != nil || len(devices) == 0 {
		closer.Fatalln("No MIDI devices found or error listing devices:", err)
	}
	fmt.Println("Available MIDI devices:", devices)

	if err = client.SelectDevice(0); err != nil {
		closer.Fatalln("Failed to select MIDI device:", err)
	}

	events := session.Subscribe()
	go func() {
		for te := range events {
			fmt.Printf("%d %s % X\n", te.Timestamp, te.Event, event.Encode(te.Event))
		}
	}()

	if err := session.Start(context.Background()); err != nil {
		closer.Fatalln("Failed to start capture:", err)
	}

	fmt.Println("Capturing MIDI events... Press Ctrl+C to exit.")
	closer.Hold()
}
