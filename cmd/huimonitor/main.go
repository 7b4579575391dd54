// Command huimonitor shows the state of a HUI control surface, or of the
// host driving one, in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leandrodaf/midikit/internal/config"
	"github.com/leandrodaf/midikit/sdk/hui"
	"github.com/leandrodaf/midikit/sdk/midi"
)

const defaultLogFile = "huimonitor.log"

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "huimonitor:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg := &config.Config{}
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	// The terminal belongs to the UI, so logs always go to a file.
	if cfg.Log.File == "" {
		cfg.Log.File = defaultLogFile
	}
	if !cfg.HUI.Enabled {
		cfg.HUI = config.HUI{Enabled: true, Role: hui.RoleHost.String()}
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	session, err := midi.NewSession(opts...)
	if err != nil {
		return err
	}
	defer midi.CloseDrivers()
	defer session.Close()

	if err := cfg.Device.SelectDevices(session.Client()); err != nil {
		return err
	}

	updates := make(chan struct{}, 1)
	session.OnHUIEvent(hui.HandlerFunc(func(hui.Event) {
		select {
		case updates <- struct{}{}:
		default:
		}
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := session.Start(ctx); err != nil {
		return err
	}

	_, err = tea.NewProgram(newModel(session, updates), tea.WithAltScreen()).Run()
	return err
}
