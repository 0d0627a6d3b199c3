package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogLevelFiltering(t *testing.T) {
	tests := []struct {
		level    string
		expected []string
		filtered []string
	}{
		{"trace", []string{"trace msg", "debug msg", "info msg", "warn msg", "error msg"}, nil},
		{"debug", []string{"debug msg", "info msg", "warn msg", "error msg"}, []string{"trace msg"}},
		{"info", []string{"info msg", "warn msg", "error msg"}, []string{"trace msg", "debug msg"}},
		{"warn", []string{"warn msg", "error msg"}, []string{"trace msg", "debug msg", "info msg"}},
		{"error", []string{"error msg"}, []string{"trace msg", "debug msg", "info msg", "warn msg"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewConsoleLogger(&buf, tt.level)

			log.Tracef("trace msg")
			log.Debugf("debug msg")
			log.Infof("info msg")
			log.Warnf("warn msg")
			log.Errorf("error msg")

			out := buf.String()
			for _, want := range tt.expected {
				if !strings.Contains(out, want) {
					t.Errorf("level %s: output missing %q", tt.level, want)
				}
			}
			for _, unwanted := range tt.filtered {
				if strings.Contains(out, unwanted) {
					t.Errorf("level %s: output should not contain %q", tt.level, unwanted)
				}
			}
		})
	}
}

func TestInvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, "verbose")

	log.Debugf("debug msg")
	log.Infof("info msg")

	out := buf.String()
	if strings.Contains(out, "debug msg") {
		t.Error("debug should be filtered at the default level")
	}
	if !strings.Contains(out, "info msg") {
		t.Error("info should pass at the default level")
	}
}

func TestTimestampPrefix(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, "info")

	log.Infof("hello %s", "world")

	out := buf.String()
	if !strings.HasPrefix(out, "[") {
		t.Errorf("expected timestamped line, got %q", out)
	}
	if !strings.Contains(out, "hello world") {
		t.Errorf("expected formatted message, got %q", out)
	}
}

func TestNilWriterIsSafe(t *testing.T) {
	log := NewConsoleLogger(nil, "info")
	log.Infof("goes nowhere")
}

func TestNonTTYOutputIsPlain(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, "error")

	log.Errorf("boom")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected no ANSI escapes for a buffer writer, got %q", buf.String())
	}
}
