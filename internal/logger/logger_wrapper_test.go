package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leandrodaf/midikit/sdk/contracts"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevelFiltering(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewWithCore(core)

	log.Debug("hidden")
	log.Info("shown")
	if logs.Len() != 1 || logs.All()[0].Message != "shown" {
		t.Fatalf("info level entries = %v", logs.All())
	}

	log.SetLevel(contracts.DebugLevel)
	log.Debug("now visible")
	if logs.FilterMessage("now visible").Len() != 1 {
		t.Error("debug entry missing after SetLevel(DebugLevel)")
	}

	log.SetLevel(contracts.ErrorLevel)
	log.Warn("suppressed")
	log.Error("kept")
	if logs.FilterMessage("suppressed").Len() != 0 {
		t.Error("warn entry written at error level")
	}
	if logs.FilterMessage("kept").Len() != 1 {
		t.Error("error entry missing at error level")
	}
}

func TestFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewWithCore(core)

	f := log.Field()
	log.Info("packet",
		f.Bytes("data", []byte{0x90, 0x3C, 0x40}),
		f.Uint8("group", 2),
		f.Int("events", 1),
		f.Bool("sysex", false),
		f.Error("error", errors.New("boom")),
	)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["data"] != "90 3C 40" {
		t.Errorf("data = %v", ctx["data"])
	}
	if ctx["group"] != uint8(2) {
		t.Errorf("group = %#v", ctx["group"])
	}
	if ctx["events"] != int64(1) {
		t.Errorf("events = %#v", ctx["events"])
	}
	if ctx["error"] != "boom" {
		t.Errorf("error = %#v", ctx["error"])
	}
}

func TestCallerPointsAtCallSite(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	NewWithCore(core).Info("here")

	caller := logs.All()[0].Caller
	if !strings.HasSuffix(caller.File, "logger_wrapper_test.go") {
		t.Errorf("caller file = %s", caller.File)
	}
}

func TestFileDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "midi.log")

	log := NewZapLogger().(*ZapLogger)
	log.SetDestination(contracts.FileLog, path)
	log.Info("to file", log.Field().String("device", "HUI"))
	if err := log.Sync(); err != nil {
		t.Fatal(err)
	}
	log.SetDestination(contracts.ConsoleLog)

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"msg":"to file"`) || !strings.Contains(string(raw), `"device":"HUI"`) {
		t.Errorf("log file contents: %s", raw)
	}
}

func TestFileDestinationWithoutPathKeepsLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := NewWithCore(core)

	log.SetDestination(contracts.FileLog)
	if logs.FilterMessage("file log destination requires a path").Len() != 1 {
		t.Fatal("missing error entry")
	}
	log.Info("still here")
	if logs.FilterMessage("still here").Len() != 1 {
		t.Error("logger replaced after failed SetDestination")
	}
}
