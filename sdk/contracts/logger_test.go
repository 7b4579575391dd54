package contracts

import "testing"

func TestParseLogLevel(t *testing.T) {
	for _, l := range []LogLevel{InfoLevel, DebugLevel, ErrorLevel, WarnLevel, FatalLevel} {
		got, err := ParseLogLevel(l.String())
		if err != nil || got != l {
			t.Errorf("ParseLogLevel(%q) = %v, %v", l.String(), got, err)
		}
	}
	if got, err := ParseLogLevel("WARN"); err != nil || got != WarnLevel {
		t.Errorf("ParseLogLevel(WARN) = %v, %v", got, err)
	}
	if _, err := ParseLogLevel("verbose"); err == nil {
		t.Error("unknown level accepted")
	}
	if s := LogLevel(42).String(); s != "LogLevel(42)" {
		t.Errorf("out of range String() = %q", s)
	}
}
